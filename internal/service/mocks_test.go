package service

import (
	"context"
	"time"

	"marketplace/internal/model"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role model.Role) ([]model.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// MockCatalogRepository is a mock implementation of CatalogRepository.
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) Create(ctx context.Context, catalog *model.Catalog) error {
	args := m.Called(ctx, catalog)
	return args.Error(0)
}

func (m *MockCatalogRepository) Update(ctx context.Context, catalog *model.Catalog) (*model.Catalog, error) {
	args := m.Called(ctx, catalog)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Catalog), args.Error(1)
}

func (m *MockCatalogRepository) GetBySellerID(ctx context.Context, sellerID string) (*model.Catalog, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Catalog), args.Error(1)
}

func (m *MockCatalogRepository) Exists(ctx context.Context, sellerID string) (bool, error) {
	args := m.Called(ctx, sellerID)
	return args.Bool(0), args.Error(1)
}

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) ListBySeller(ctx context.Context, sellerID string) ([]model.Order, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

// MockCoordinateRepository is a mock implementation of CoordinateRepository.
type MockCoordinateRepository struct {
	mock.Mock
}

func (m *MockCoordinateRepository) InsertBatch(ctx context.Context, coordinates []model.Coordinate) error {
	args := m.Called(ctx, coordinates)
	return args.Error(0)
}

func (m *MockCoordinateRepository) BulkInsert(ctx context.Context, coordinates []model.Coordinate) (int64, error) {
	args := m.Called(ctx, coordinates)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCoordinateRepository) Mean(ctx context.Context) (*model.MeanCoordinates, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MeanCoordinates), args.Error(1)
}

func (m *MockCoordinateRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockPublisher is a mock implementation of events.Publisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) OrderCreated(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockPublisher) CatalogCreated(ctx context.Context, catalog *model.Catalog) error {
	args := m.Called(ctx, catalog)
	return args.Error(0)
}

func (m *MockPublisher) CatalogUpdated(ctx context.Context, catalog *model.Catalog) error {
	args := m.Called(ctx, catalog)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockPasswordHasher is a mock implementation of auth.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Compare(hash, password string) error {
	args := m.Called(hash, password)
	return args.Error(0)
}

// MockTokenService is a mock implementation of auth.TokenService.
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) Issue(principal model.Principal) (string, time.Time, error) {
	args := m.Called(principal)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) Verify(ctx context.Context, token string) (model.Principal, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(model.Principal), args.Error(1)
}

func (m *MockTokenService) Revoke(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

var (
	buyerAlice = model.Principal{Username: "alice", Role: model.RoleBuyer}
	sellerBob  = model.Principal{Username: "bob", Role: model.RoleSeller}
)
