package service

import (
	"context"
	"fmt"
	"time"

	"marketplace/internal/model"
	"marketplace/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// coordinateService implements CoordinateService.
type coordinateService struct {
	coordinateRepo repository.CoordinateRepository
	validate       *validator.Validate
	logger         zerolog.Logger
}

// NewCoordinateService creates a new coordinate service.
func NewCoordinateService(coordinateRepo repository.CoordinateRepository, logger zerolog.Logger) CoordinateService {
	return &coordinateService{
		coordinateRepo: coordinateRepo,
		validate:       newValidator(),
		logger:         logger.With().Str("service", "coordinate").Logger(),
	}
}

// AddCoordinates validates the whole batch before writing any of it, inserts
// it in one transaction and returns the mean of this batch only.
func (s *coordinateService) AddCoordinates(ctx context.Context, inputs []model.CoordinateInput) (*model.CoordinateBatchResponse, error) {
	if len(inputs) == 0 {
		return nil, model.ErrInvalidCoordinates
	}

	now := time.Now().UTC()
	coordinates := make([]model.Coordinate, len(inputs))
	var sumLat, sumLon float64

	for i := range inputs {
		input := &inputs[i]
		for j := range input.FoodOrders {
			if input.FoodOrders[j].Quantity == 0 {
				input.FoodOrders[j].Quantity = 1
			}
		}

		if err := s.validate.Struct(input); err != nil {
			s.logger.Debug().Err(err).Int("index", i).Msg("invalid coordinate")
			return nil, model.NewInvalidCoordinatesError(fmt.Sprintf("coordinate %d: %s", i, validationMessage(err)))
		}

		coordinates[i] = model.Coordinate{
			ID:         uuid.New(),
			Lat:        *input.Lat,
			Lon:        *input.Lon,
			FoodOrders: input.FoodOrders,
			CreatedAt:  now,
		}
		sumLat += *input.Lat
		sumLon += *input.Lon
	}

	if err := s.coordinateRepo.InsertBatch(ctx, coordinates); err != nil {
		s.logger.Error().Err(err).Int("count", len(coordinates)).Msg("failed to insert coordinates")
		return nil, fmt.Errorf("failed to add coordinates: %w", err)
	}

	n := float64(len(coordinates))
	resp := &model.CoordinateBatchResponse{
		Message:       "Coordinates added successfully",
		InsertedCount: len(coordinates),
		MeanLatitude:  sumLat / n,
		MeanLongitude: sumLon / n,
	}

	s.logger.Info().
		Int("count", resp.InsertedCount).
		Float64("mean_lat", resp.MeanLatitude).
		Float64("mean_lon", resp.MeanLongitude).
		Msg("coordinates added")

	return resp, nil
}

// GetMeanCoordinates returns the mean over all samples, or
// model.ErrCoordinatesNotFound when nothing is stored.
func (s *coordinateService) GetMeanCoordinates(ctx context.Context) (*model.MeanCoordinates, error) {
	mean, err := s.coordinateRepo.Mean(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to compute mean coordinates")
		return nil, fmt.Errorf("failed to get mean coordinates: %w", err)
	}

	if mean == nil || mean.Count == 0 {
		return nil, model.ErrCoordinatesNotFound
	}

	return mean, nil
}
