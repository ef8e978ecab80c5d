package repository

import (
	"context"

	"marketplace/internal/model"
)

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	// Create inserts a new user. Duplicate usernames or emails return
	// model.ErrUsernameTaken or model.ErrEmailTaken.
	Create(ctx context.Context, user *model.User) error

	// GetByUsername retrieves a user by username. Returns nil, nil if absent.
	GetByUsername(ctx context.Context, username string) (*model.User, error)

	// ListByRole retrieves every user holding the given role, oldest first.
	ListByRole(ctx context.Context, role model.Role) ([]model.User, error)
}

// CatalogRepository defines the interface for catalog data access operations.
type CatalogRepository interface {
	// Create inserts a catalog. A second catalog for the same seller returns
	// model.ErrCatalogExists.
	Create(ctx context.Context, catalog *model.Catalog) error

	// Update replaces the product list of the seller's catalog and returns the
	// stored row. Returns nil, nil if the seller has no catalog.
	Update(ctx context.Context, catalog *model.Catalog) (*model.Catalog, error)

	// GetBySellerID retrieves the seller's catalog. Returns nil, nil if absent.
	GetBySellerID(ctx context.Context, sellerID string) (*model.Catalog, error)

	// Exists reports whether the seller has a catalog.
	Exists(ctx context.Context, sellerID string) (bool, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// Create inserts a new order snapshot.
	Create(ctx context.Context, order *model.Order) error

	// ListBySeller retrieves every order placed with the seller, oldest first.
	ListBySeller(ctx context.Context, sellerID string) ([]model.Order, error)
}

// CoordinateRepository defines the interface for coordinate sample storage.
type CoordinateRepository interface {
	// InsertBatch stores all coordinates in a single transaction.
	InsertBatch(ctx context.Context, coordinates []model.Coordinate) error

	// BulkInsert streams a large sample set with the COPY protocol and returns
	// the number of rows written.
	BulkInsert(ctx context.Context, coordinates []model.Coordinate) (int64, error)

	// Mean aggregates every stored sample. Count is zero when the store is empty.
	Mean(ctx context.Context) (*model.MeanCoordinates, error)

	// Count returns the number of stored samples.
	Count(ctx context.Context) (int64, error)
}
