package service

import (
	"context"

	"marketplace/internal/model"
)

// UserService defines registration, login and user listing.
type UserService interface {
	// Register validates and stores a new buyer or seller with a hashed password.
	Register(ctx context.Context, req *model.RegisterRequest) error

	// Login checks credentials and issues a bearer token.
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)

	// Logout revokes the presented token.
	Logout(ctx context.Context, token string) error

	// ListSellers returns every registered seller. Buyer only.
	ListSellers(ctx context.Context, principal model.Principal) ([]model.User, error)
}

// CatalogService defines operations on seller catalogs.
type CatalogService interface {
	// CreateCatalog stores the seller's one catalog. Seller only.
	CreateCatalog(ctx context.Context, principal model.Principal, req *model.CatalogRequest) (*model.Catalog, error)

	// UpdateCatalog replaces the seller's product list. Seller only.
	UpdateCatalog(ctx context.Context, principal model.Principal, req *model.CatalogRequest) (*model.Catalog, error)

	// GetCatalog returns the products listed by a seller. Buyer only.
	GetCatalog(ctx context.Context, principal model.Principal, sellerID string) ([]model.Product, error)
}

// OrderService defines operations for order management.
type OrderService interface {
	// CreateOrder snapshots the requested products against an existing seller catalog. Buyer only.
	CreateOrder(ctx context.Context, principal model.Principal, sellerID string, req *model.OrderRequest) (*model.Order, error)

	// ListOrdersForSeller returns the orders placed with the calling seller. Seller only.
	ListOrdersForSeller(ctx context.Context, principal model.Principal) ([]model.Order, error)
}

// CoordinateService stores coordinate samples and averages them.
type CoordinateService interface {
	// AddCoordinates inserts a batch atomically and returns the mean of that batch.
	AddCoordinates(ctx context.Context, inputs []model.CoordinateInput) (*model.CoordinateBatchResponse, error)

	// GetMeanCoordinates returns the mean over every stored sample.
	GetMeanCoordinates(ctx context.Context) (*model.MeanCoordinates, error)
}

func requireRole(principal model.Principal, role model.Role) error {
	if principal.Role != role {
		return model.NewForbiddenError(role)
	}
	return nil
}
