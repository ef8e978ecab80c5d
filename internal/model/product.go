package model

import (
	"time"

	"github.com/google/uuid"
)

// Product is a named, priced entry embedded in catalogs and order snapshots.
type Product struct {
	Name  string  `json:"name" validate:"required,max=255"`
	Price float64 `json:"price" validate:"gte=0"`
}

// Catalog is the single product listing owned by one seller.
type Catalog struct {
	ID        uuid.UUID `json:"id" db:"id"`
	SellerID  string    `json:"sellerId" db:"seller_id"`
	Products  []Product `json:"products" db:"products"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// CatalogRequest represents the request payload for creating or replacing a catalog.
type CatalogRequest struct {
	Products []Product `json:"products"`
}
