package catalog_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/sneaker-shop/internal/catalog"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/model"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/repository/memory"
	"github.com/tuanvumaihuynh/sneaker-shop/pkg/ptr"
)

func TestProducts(t *testing.T) {
	products := catalog.Products()
	require.Len(t, products, 10)

	products[0].Colors[0] = "Pink"
	assert.Equal(t, "Black", catalog.Products()[0].Colors[0])
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.DiscardHandler)
	store := memory.NewStore()
	repo := memory.NewProductRepository(store)

	require.NoError(t, repo.CreateProduct(ctx, model.Product{ID: uuid.New(), Name: "Leftover"}))

	t.Run("Should clear existing products and insert the catalogue", func(t *testing.T) {
		res, err := catalog.Seed(ctx, store, repo, logger)
		require.NoError(t, err)

		assert.Equal(t, catalog.Result{Cleared: 1, Inserted: 10, Featured: 4, Categories: 10}, res)

		products, err := repo.ListProducts(ctx, model.ProductFilter{})
		require.NoError(t, err)
		require.Len(t, products, 10)
		assert.Equal(t, "Midnight Gold Edition", products[0].Name)
		for _, p := range products {
			assert.NotEqual(t, uuid.Nil, p.ID)
			assert.False(t, p.CreatedAt.IsZero())
		}
	})

	t.Run("Should be idempotent in effect", func(t *testing.T) {
		res, err := catalog.Seed(ctx, store, repo, logger)
		require.NoError(t, err)
		assert.Equal(t, int64(10), res.Cleared)

		products, err := repo.ListProducts(ctx, model.ProductFilter{})
		require.NoError(t, err)
		assert.Len(t, products, 10)
	})

	t.Run("Should keep multi-word colors whole", func(t *testing.T) {
		deepRed, err := repo.ListProducts(ctx, model.ProductFilter{Color: ptr.New("Deep Red")})
		require.NoError(t, err)
		assert.Len(t, deepRed, 3)

		red, err := repo.ListProducts(ctx, model.ProductFilter{Color: ptr.New("Red")})
		require.NoError(t, err)
		assert.Empty(t, red)
	})
}
