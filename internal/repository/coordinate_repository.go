package repository

import (
	"context"
	"fmt"

	"marketplace/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// coordinateRepository implements the CoordinateRepository interface using PostgreSQL.
type coordinateRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCoordinateRepository creates a new PostgreSQL-backed coordinate repository.
func NewCoordinateRepository(pool *pgxpool.Pool, logger zerolog.Logger) CoordinateRepository {
	return &coordinateRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "coordinate").Logger(),
	}
}

// InsertBatch stores all coordinates in one transaction. Nothing is written if
// any row fails.
func (r *coordinateRepository) InsertBatch(ctx context.Context, coordinates []model.Coordinate) error {
	if len(coordinates) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := r.sendBatch(ctx, tx, coordinates); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Msg("failed to commit coordinate batch")
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.logger.Debug().
		Int("count", len(coordinates)).
		Msg("coordinates inserted successfully")

	return nil
}

func (r *coordinateRepository) sendBatch(ctx context.Context, tx pgx.Tx, coordinates []model.Coordinate) error {
	query := `
		INSERT INTO coordinates (id, lat, lon, food_orders, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	batch := &pgx.Batch{}
	for _, c := range coordinates {
		batch.Queue(query, c.ID, c.Lat, c.Lon, foodOrdersValue(c.FoodOrders), c.CreatedAt)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := range coordinates {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().
				Err(err).
				Int("index", i).
				Msg("failed to insert coordinate")
			return fmt.Errorf("failed to insert coordinate %d: %w", i, err)
		}
	}

	return nil
}

// BulkInsert streams coordinates with COPY. Used for seeding large sample files.
func (r *coordinateRepository) BulkInsert(ctx context.Context, coordinates []model.Coordinate) (int64, error) {
	if len(coordinates) == 0 {
		return 0, nil
	}

	n, err := r.pool.CopyFrom(ctx,
		pgx.Identifier{"coordinates"},
		[]string{"id", "lat", "lon", "food_orders", "created_at"},
		pgx.CopyFromSlice(len(coordinates), func(i int) ([]any, error) {
			c := coordinates[i]
			return []any{c.ID, c.Lat, c.Lon, foodOrdersValue(c.FoodOrders), c.CreatedAt}, nil
		}),
	)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(coordinates)).Msg("failed to copy coordinates")
		return 0, fmt.Errorf("failed to copy coordinates: %w", err)
	}

	r.logger.Info().Int64("count", n).Msg("coordinates copied successfully")
	return n, nil
}

// Mean computes the average over every stored sample in a single aggregate.
func (r *coordinateRepository) Mean(ctx context.Context) (*model.MeanCoordinates, error) {
	query := `
		SELECT COALESCE(AVG(lat), 0), COALESCE(AVG(lon), 0), COUNT(*)
		FROM coordinates
	`

	var mean model.MeanCoordinates
	if err := r.pool.QueryRow(ctx, query).Scan(&mean.MeanLat, &mean.MeanLon, &mean.Count); err != nil {
		r.logger.Error().Err(err).Msg("failed to aggregate coordinates")
		return nil, fmt.Errorf("failed to aggregate coordinates: %w", err)
	}

	return &mean, nil
}

// Count returns the number of stored samples.
func (r *coordinateRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM coordinates`).Scan(&count); err != nil {
		r.logger.Error().Err(err).Msg("failed to count coordinates")
		return 0, fmt.Errorf("failed to count coordinates: %w", err)
	}
	return count, nil
}

// foodOrdersValue stores an absent list as SQL NULL.
func foodOrdersValue(orders []model.FoodOrder) any {
	if len(orders) == 0 {
		return nil
	}
	return orders
}
