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

func TestOrderRepository_CreateAndList(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewOrderRepository(pool, zerolog.Nop())
	ctx := context.Background()

	base := time.Now().UTC()
	orders := []*model.Order{
		{
			ID:        uuid.New(),
			BuyerID:   "bob",
			SellerID:  "alice",
			Products:  []model.Product{{Name: "Apple", Price: 1.5}},
			CreatedAt: base,
		},
		{
			ID:        uuid.New(),
			BuyerID:   "carol",
			SellerID:  "sam",
			Products:  []model.Product{{Name: "Fig", Price: 3}},
			CreatedAt: base.Add(time.Second),
		},
		{
			ID:        uuid.New(),
			BuyerID:   "carol",
			SellerID:  "alice",
			Products:  nil,
			CreatedAt: base.Add(2 * time.Second),
		},
	}

	for _, o := range orders {
		require.NoError(t, repo.Create(ctx, o))
	}

	got, err := repo.ListBySeller(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, orders[0].ID, got[0].ID)
	assert.Equal(t, "bob", got[0].BuyerID)
	assert.Equal(t, orders[0].Products, got[0].Products)

	assert.Equal(t, orders[2].ID, got[1].ID)
	assert.NotNil(t, got[1].Products)
	assert.Empty(t, got[1].Products)
}

func TestOrderRepository_ListBySeller_Empty(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewOrderRepository(pool, zerolog.Nop())

	got, err := repo.ListBySeller(context.Background(), "alice")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
