package model

import (
	"time"

	"github.com/google/uuid"
)

// Order is an immutable snapshot of products a buyer requested from a seller.
type Order struct {
	ID        uuid.UUID `json:"id" db:"id"`
	BuyerID   string    `json:"buyerId" db:"buyer_id"`
	SellerID  string    `json:"sellerId" db:"seller_id"`
	Products  []Product `json:"products" db:"products"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// OrderRequest represents the request payload for creating an order.
type OrderRequest struct {
	Products []Product `json:"products"`
}

// OrderResponse represents the response payload for a created order.
type OrderResponse struct {
	Message string `json:"message"`
	Order   *Order `json:"order"`
}
