package repository

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(sellerID string, products []model.Product) *model.Catalog {
	now := time.Now().UTC()
	return &model.Catalog{
		ID:        uuid.New(),
		SellerID:  sellerID,
		Products:  products,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCatalogRepository_CreateAndGet(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewCatalogRepository(pool, zerolog.Nop())
	ctx := context.Background()

	products := []model.Product{
		{Name: "Apple", Price: 1.5},
		{Name: "Banana", Price: 0.25},
	}
	require.NoError(t, repo.Create(ctx, newTestCatalog("alice", products)))

	got, err := repo.GetBySellerID(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alice", got.SellerID)
	assert.Equal(t, products, got.Products)
}

func TestCatalogRepository_Create_EmptyProducts(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewCatalogRepository(pool, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestCatalog("alice", nil)))

	got, err := repo.GetBySellerID(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.NotNil(t, got.Products)
	assert.Empty(t, got.Products)
}

func TestCatalogRepository_Create_Duplicate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewCatalogRepository(pool, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestCatalog("alice", []model.Product{{Name: "Apple", Price: 1}})))

	err := repo.Create(ctx, newTestCatalog("alice", []model.Product{{Name: "Pear", Price: 2}}))
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrCatalogExists)

	// The original catalog is untouched.
	got, err := repo.GetBySellerID(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Apple", got.Products[0].Name)
}

func TestCatalogRepository_GetBySellerID_NotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewCatalogRepository(pool, zerolog.Nop())

	got, err := repo.GetBySellerID(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCatalogRepository_Update(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewCatalogRepository(pool, zerolog.Nop())
	ctx := context.Background()

	original := newTestCatalog("alice", []model.Product{{Name: "Apple", Price: 1}})
	require.NoError(t, repo.Create(ctx, original))

	replacement := []model.Product{{Name: "Cherry", Price: 4}, {Name: "Date", Price: 6}}
	updated, err := repo.Update(ctx, &model.Catalog{
		SellerID:  "alice",
		Products:  replacement,
		UpdatedAt: original.UpdatedAt.Add(time.Minute),
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, original.ID, updated.ID)
	assert.Equal(t, replacement, updated.Products)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
}

func TestCatalogRepository_Update_NotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewCatalogRepository(pool, zerolog.Nop())

	updated, err := repo.Update(context.Background(), &model.Catalog{SellerID: "nobody", UpdatedAt: time.Now()})
	require.NoError(t, err)
	assert.Nil(t, updated)
}

func TestCatalogRepository_Exists(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewCatalogRepository(pool, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newTestCatalog("alice", nil)))

	exists, err := repo.Exists(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, exists)
}
