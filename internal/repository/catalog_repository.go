package repository

import (
	"context"
	"errors"
	"fmt"

	"marketplace/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// catalogRepository implements the CatalogRepository interface using PostgreSQL.
// Products are stored as a JSONB array on the catalog row.
type catalogRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCatalogRepository creates a new PostgreSQL-backed catalog repository.
func NewCatalogRepository(pool *pgxpool.Pool, logger zerolog.Logger) CatalogRepository {
	return &catalogRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "catalog").Logger(),
	}
}

func (r *catalogRepository) Create(ctx context.Context, catalog *model.Catalog) error {
	query := `
		INSERT INTO catalogs (id, seller_id, products, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	catalog.Products = nonNilProducts(catalog.Products)

	_, err := r.pool.Exec(ctx, query,
		catalog.ID,
		catalog.SellerID,
		catalog.Products,
		catalog.CreatedAt,
		catalog.UpdatedAt,
	)
	if err != nil {
		if conflict := conflictError(err); conflict != nil {
			r.logger.Debug().Str("seller_id", catalog.SellerID).Msg("catalog already exists")
			return conflict
		}
		r.logger.Error().Err(err).Str("seller_id", catalog.SellerID).Msg("failed to create catalog")
		return fmt.Errorf("failed to create catalog: %w", err)
	}

	r.logger.Debug().
		Str("catalog_id", catalog.ID.String()).
		Str("seller_id", catalog.SellerID).
		Int("products", len(catalog.Products)).
		Msg("catalog created successfully")

	return nil
}

func (r *catalogRepository) Update(ctx context.Context, catalog *model.Catalog) (*model.Catalog, error) {
	query := `
		UPDATE catalogs
		SET products = $2, updated_at = $3
		WHERE seller_id = $1
		RETURNING id, seller_id, products, created_at, updated_at
	`

	updated, err := scanCatalog(r.pool.QueryRow(ctx, query,
		catalog.SellerID,
		nonNilProducts(catalog.Products),
		catalog.UpdatedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("seller_id", catalog.SellerID).Msg("catalog not found for update")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("seller_id", catalog.SellerID).Msg("failed to update catalog")
		return nil, fmt.Errorf("failed to update catalog: %w", err)
	}

	r.logger.Debug().
		Str("seller_id", updated.SellerID).
		Int("products", len(updated.Products)).
		Msg("catalog updated successfully")

	return updated, nil
}

func (r *catalogRepository) GetBySellerID(ctx context.Context, sellerID string) (*model.Catalog, error) {
	query := `
		SELECT id, seller_id, products, created_at, updated_at
		FROM catalogs
		WHERE seller_id = $1
	`

	catalog, err := scanCatalog(r.pool.QueryRow(ctx, query, sellerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("seller_id", sellerID).Msg("catalog not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("seller_id", sellerID).Msg("failed to query catalog")
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}

	return catalog, nil
}

func (r *catalogRepository) Exists(ctx context.Context, sellerID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM catalogs WHERE seller_id = $1)`, sellerID).Scan(&exists)
	if err != nil {
		r.logger.Error().Err(err).Str("seller_id", sellerID).Msg("failed to check catalog existence")
		return false, fmt.Errorf("failed to check catalog existence: %w", err)
	}
	return exists, nil
}

func scanCatalog(row pgx.Row) (*model.Catalog, error) {
	var catalog model.Catalog
	err := row.Scan(
		&catalog.ID,
		&catalog.SellerID,
		&catalog.Products,
		&catalog.CreatedAt,
		&catalog.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	catalog.Products = nonNilProducts(catalog.Products)
	return &catalog, nil
}
