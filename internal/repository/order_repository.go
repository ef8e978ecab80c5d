package repository

import (
	"context"
	"fmt"

	"marketplace/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// Create inserts a new order snapshot.
func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	query := `
		INSERT INTO orders (id, buyer_id, seller_id, products, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	order.Products = nonNilProducts(order.Products)

	_, err := r.pool.Exec(ctx, query,
		order.ID,
		order.BuyerID,
		order.SellerID,
		order.Products,
		order.CreatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Str("seller_id", order.SellerID).
		Msg("order created successfully")

	return nil
}

// ListBySeller retrieves every order placed with the seller, oldest first.
func (r *orderRepository) ListBySeller(ctx context.Context, sellerID string) ([]model.Order, error) {
	query := `
		SELECT id, buyer_id, seller_id, products, created_at
		FROM orders
		WHERE seller_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.pool.Query(ctx, query, sellerID)
	if err != nil {
		r.logger.Error().Err(err).Str("seller_id", sellerID).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		var order model.Order
		err := rows.Scan(&order.ID, &order.BuyerID, &order.SellerID, &order.Products, &order.CreatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		order.Products = nonNilProducts(order.Products)
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}
