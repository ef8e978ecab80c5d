package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/auth"
	"marketplace/internal/model"
	"marketplace/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// userService implements UserService.
type userService struct {
	userRepo repository.UserRepository
	hasher   auth.PasswordHasher
	tokens   auth.TokenService
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewUserService creates a new user service.
func NewUserService(
	userRepo repository.UserRepository,
	hasher auth.PasswordHasher,
	tokens auth.TokenService,
	logger zerolog.Logger,
) UserService {
	return &userService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		validate: newValidator(),
		logger:   logger.With().Str("service", "user").Logger(),
	}
}

// Register validates and stores a new user.
func (s *userService) Register(ctx context.Context, req *model.RegisterRequest) error {
	if req == nil {
		return model.NewValidationError("request body is required")
	}

	req.Email = emptyToNil(req.Email)
	req.PhoneNumber = emptyToNil(req.PhoneNumber)
	req.Address = emptyToNil(req.Address)

	if err := s.validate.Struct(req); err != nil {
		s.logger.Debug().Err(err).Str("username", req.Username).Msg("registration rejected")
		return model.NewValidationError(validationMessage(err))
	}

	if len(req.Password) > auth.MaxPasswordBytes {
		return model.NewValidationError(fmt.Sprintf("password must be at most %d bytes", auth.MaxPasswordBytes))
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return fmt.Errorf("failed to register user: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Username:     req.Username,
		PasswordHash: hash,
		Role:         req.Type,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		Address:      req.Address,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrUsernameTaken) || errors.Is(err, model.ErrEmailTaken) {
			s.logger.Info().Str("username", req.Username).Err(err).Msg("registration conflict")
			return err
		}
		s.logger.Error().Err(err).Str("username", req.Username).Msg("failed to create user")
		return fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info().
		Str("user_id", user.ID.String()).
		Str("username", user.Username).
		Str("role", user.Role.String()).
		Msg("user registered")

	return nil
}

// Login verifies credentials and issues a token. Unknown users and wrong
// passwords are indistinguishable to the caller.
func (s *userService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	if req == nil {
		return nil, model.NewValidationError("request body is required")
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, model.NewValidationError(validationMessage(err))
	}

	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		s.logger.Error().Err(err).Str("username", req.Username).Msg("failed to look up user")
		return nil, fmt.Errorf("failed to log in: %w", err)
	}

	hash := ""
	if user != nil {
		hash = user.PasswordHash
	}

	if err := s.hasher.Compare(hash, req.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			s.logger.Info().Str("username", req.Username).Msg("invalid credentials")
			return nil, model.ErrInvalidCredentials
		}
		s.logger.Error().Err(err).Str("username", req.Username).Msg("failed to compare password")
		return nil, fmt.Errorf("failed to log in: %w", err)
	}

	token, expiresAt, err := s.tokens.Issue(model.Principal{Username: user.Username, Role: user.Role})
	if err != nil {
		s.logger.Error().Err(err).Str("username", user.Username).Msg("failed to issue token")
		return nil, fmt.Errorf("failed to log in: %w", err)
	}

	s.logger.Info().
		Str("username", user.Username).
		Str("role", user.Role.String()).
		Msg("user logged in")

	return &model.LoginResponse{Token: token, ExpiresAt: expiresAt}, nil
}

// Logout revokes the token the caller authenticated with.
func (s *userService) Logout(ctx context.Context, token string) error {
	if err := s.tokens.Revoke(ctx, token); err != nil {
		if auth.IsAuthError(err) {
			return err
		}
		s.logger.Error().Err(err).Msg("failed to revoke token")
		return fmt.Errorf("failed to log out: %w", err)
	}

	s.logger.Debug().Msg("token revoked")
	return nil
}

// ListSellers returns every registered seller.
func (s *userService) ListSellers(ctx context.Context, principal model.Principal) ([]model.User, error) {
	if err := requireRole(principal, model.RoleBuyer); err != nil {
		return nil, err
	}

	sellers, err := s.userRepo.ListByRole(ctx, model.RoleSeller)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list sellers")
		return nil, fmt.Errorf("failed to list sellers: %w", err)
	}

	s.logger.Debug().Int("count", len(sellers)).Msg("retrieved sellers")
	return sellers, nil
}
