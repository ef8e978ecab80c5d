package handler

import (
	"context"

	"marketplace/internal/model"

	"github.com/stretchr/testify/mock"
)

// MockUserService is a mock implementation of UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, req *model.RegisterRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockUserService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LoginResponse), args.Error(1)
}

func (m *MockUserService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockUserService) ListSellers(ctx context.Context, principal model.Principal) ([]model.User, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// MockCatalogService is a mock implementation of CatalogService.
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) CreateCatalog(ctx context.Context, principal model.Principal, req *model.CatalogRequest) (*model.Catalog, error) {
	args := m.Called(ctx, principal, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Catalog), args.Error(1)
}

func (m *MockCatalogService) UpdateCatalog(ctx context.Context, principal model.Principal, req *model.CatalogRequest) (*model.Catalog, error) {
	args := m.Called(ctx, principal, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Catalog), args.Error(1)
}

func (m *MockCatalogService) GetCatalog(ctx context.Context, principal model.Principal, sellerID string) ([]model.Product, error) {
	args := m.Called(ctx, principal, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

// MockOrderService is a mock implementation of OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, principal model.Principal, sellerID string, req *model.OrderRequest) (*model.Order, error) {
	args := m.Called(ctx, principal, sellerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderService) ListOrdersForSeller(ctx context.Context, principal model.Principal) ([]model.Order, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

// MockCoordinateService is a mock implementation of CoordinateService.
type MockCoordinateService struct {
	mock.Mock
}

func (m *MockCoordinateService) AddCoordinates(ctx context.Context, inputs []model.CoordinateInput) (*model.CoordinateBatchResponse, error) {
	args := m.Called(ctx, inputs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CoordinateBatchResponse), args.Error(1)
}

func (m *MockCoordinateService) GetMeanCoordinates(ctx context.Context) (*model.MeanCoordinates, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MeanCoordinates), args.Error(1)
}

var (
	buyerAlice = model.Principal{Username: "alice", Role: model.RoleBuyer}
	sellerBob  = model.Principal{Username: "bob", Role: model.RoleSeller}
)

func floatPtr(v float64) *float64 { return &v }
