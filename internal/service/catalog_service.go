package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/events"
	"marketplace/internal/model"
	"marketplace/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// catalogService implements CatalogService.
type catalogService struct {
	catalogRepo repository.CatalogRepository
	publisher   events.Publisher
	validate    *validator.Validate
	logger      zerolog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(
	catalogRepo repository.CatalogRepository,
	publisher events.Publisher,
	logger zerolog.Logger,
) CatalogService {
	return &catalogService{
		catalogRepo: catalogRepo,
		publisher:   publisher,
		validate:    newValidator(),
		logger:      logger.With().Str("service", "catalog").Logger(),
	}
}

// CreateCatalog stores the seller's catalog. A second catalog for the same
// seller is rejected with model.ErrCatalogExists.
func (s *catalogService) CreateCatalog(ctx context.Context, principal model.Principal, req *model.CatalogRequest) (*model.Catalog, error) {
	if err := requireRole(principal, model.RoleSeller); err != nil {
		return nil, err
	}

	products, err := s.products(req)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	catalog := &model.Catalog{
		ID:        uuid.New(),
		SellerID:  principal.Username,
		Products:  products,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.catalogRepo.Create(ctx, catalog); err != nil {
		if errors.Is(err, model.ErrCatalogExists) {
			s.logger.Info().Str("seller_id", principal.Username).Msg("catalog already exists")
			return nil, err
		}
		s.logger.Error().Err(err).Str("seller_id", principal.Username).Msg("failed to create catalog")
		return nil, fmt.Errorf("failed to create catalog: %w", err)
	}

	if err := s.publisher.CatalogCreated(ctx, catalog); err != nil {
		s.logger.Warn().Err(err).Str("seller_id", catalog.SellerID).Msg("catalog created event not published")
	}

	s.logger.Info().
		Str("catalog_id", catalog.ID.String()).
		Str("seller_id", catalog.SellerID).
		Int("products", len(catalog.Products)).
		Msg("catalog created")

	return catalog, nil
}

// UpdateCatalog replaces the product list of an existing catalog.
func (s *catalogService) UpdateCatalog(ctx context.Context, principal model.Principal, req *model.CatalogRequest) (*model.Catalog, error) {
	if err := requireRole(principal, model.RoleSeller); err != nil {
		return nil, err
	}

	products, err := s.products(req)
	if err != nil {
		return nil, err
	}

	catalog, err := s.catalogRepo.Update(ctx, &model.Catalog{
		SellerID:  principal.Username,
		Products:  products,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("seller_id", principal.Username).Msg("failed to update catalog")
		return nil, fmt.Errorf("failed to update catalog: %w", err)
	}

	if catalog == nil {
		s.logger.Debug().Str("seller_id", principal.Username).Msg("no catalog to update")
		return nil, model.ErrCatalogNotFound
	}

	if err := s.publisher.CatalogUpdated(ctx, catalog); err != nil {
		s.logger.Warn().Err(err).Str("seller_id", catalog.SellerID).Msg("catalog updated event not published")
	}

	s.logger.Info().
		Str("seller_id", catalog.SellerID).
		Int("products", len(catalog.Products)).
		Msg("catalog updated")

	return catalog, nil
}

// GetCatalog returns the seller's products, or model.ErrCatalogNotFound.
func (s *catalogService) GetCatalog(ctx context.Context, principal model.Principal, sellerID string) ([]model.Product, error) {
	if err := requireRole(principal, model.RoleBuyer); err != nil {
		return nil, err
	}

	if sellerID == "" {
		return nil, model.ErrCatalogNotFound
	}

	catalog, err := s.catalogRepo.GetBySellerID(ctx, sellerID)
	if err != nil {
		s.logger.Error().Err(err).Str("seller_id", sellerID).Msg("failed to get catalog")
		return nil, fmt.Errorf("failed to get catalog: %w", err)
	}

	if catalog == nil {
		s.logger.Debug().Str("seller_id", sellerID).Msg("catalog not found")
		return nil, model.ErrCatalogNotFound
	}

	return catalog.Products, nil
}

func (s *catalogService) products(req *model.CatalogRequest) ([]model.Product, error) {
	if req == nil || req.Products == nil {
		return []model.Product{}, nil
	}
	if err := validateProducts(s.validate, req.Products); err != nil {
		s.logger.Debug().Err(err).Msg("invalid catalog product")
		return nil, err
	}
	return req.Products, nil
}
