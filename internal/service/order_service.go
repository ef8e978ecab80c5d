package service

import (
	"context"
	"fmt"
	"time"

	"marketplace/internal/events"
	"marketplace/internal/model"
	"marketplace/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	catalogRepo repository.CatalogRepository
	publisher   events.Publisher
	validate    *validator.Validate
	logger      zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	catalogRepo repository.CatalogRepository,
	publisher events.Publisher,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		catalogRepo: catalogRepo,
		publisher:   publisher,
		validate:    newValidator(),
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

// CreateOrder records a snapshot of the requested products. The seller must
// have a catalog; the products themselves are not checked against it.
func (s *orderService) CreateOrder(ctx context.Context, principal model.Principal, sellerID string, req *model.OrderRequest) (*model.Order, error) {
	if err := requireRole(principal, model.RoleBuyer); err != nil {
		return nil, err
	}

	products := []model.Product{}
	if req != nil && req.Products != nil {
		products = req.Products
	}

	if err := validateProducts(s.validate, products); err != nil {
		s.logger.Debug().Err(err).Msg("invalid order product")
		return nil, err
	}

	if sellerID == "" {
		return nil, model.ErrCatalogNotFound
	}

	exists, err := s.catalogRepo.Exists(ctx, sellerID)
	if err != nil {
		s.logger.Error().Err(err).Str("seller_id", sellerID).Msg("failed to check seller catalog")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	if !exists {
		s.logger.Debug().Str("seller_id", sellerID).Msg("order for seller without catalog")
		return nil, model.ErrCatalogNotFound
	}

	order := &model.Order{
		ID:        uuid.New(),
		BuyerID:   principal.Username,
		SellerID:  sellerID,
		Products:  products,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := s.publisher.OrderCreated(ctx, order); err != nil {
		s.logger.Warn().Err(err).Str("order_id", order.ID.String()).Msg("order created event not published")
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("buyer_id", order.BuyerID).
		Str("seller_id", order.SellerID).
		Int("products", len(order.Products)).
		Msg("order created successfully")

	return order, nil
}

// ListOrdersForSeller returns the caller's orders, oldest first.
func (s *orderService) ListOrdersForSeller(ctx context.Context, principal model.Principal) ([]model.Order, error) {
	if err := requireRole(principal, model.RoleSeller); err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.ListBySeller(ctx, principal.Username)
	if err != nil {
		s.logger.Error().Err(err).Str("seller_id", principal.Username).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	s.logger.Debug().
		Str("seller_id", principal.Username).
		Int("count", len(orders)).
		Msg("retrieved seller orders")

	return orders, nil
}
