package smoke_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/sneaker-shop/internal/client"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/config"
	httpsvc "github.com/tuanvumaihuynh/sneaker-shop/internal/http"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/model"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/repository/memory"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/service"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/smoke"
)

func TestRunner(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.DiscardHandler)

	store := memory.NewStore()
	outboxRepo := memory.NewOutboxMsgRepository(store)
	productRepo := memory.NewProductRepository(store)
	svc := httpsvc.New(
		config.HTTP{APIPrefix: "/api"},
		logger,
		service.NewProductService(store, productRepo, outboxRepo),
		service.NewOrderService(store, memory.NewOrderRepository(store), outboxRepo),
		store,
	)
	router, err := svc.Router()
	require.NoError(t, err)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	c := client.New(srv.URL + "/api")

	t.Run("Should pass every scenario and clean up products", func(t *testing.T) {
		require.NoError(t, smoke.NewRunner(c, logger).Run(ctx))

		products, err := productRepo.ListProducts(ctx, model.ProductFilter{})
		require.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("Should stop at the first failing scenario", func(t *testing.T) {
		var ran []string
		scenario := func(name string, err error) smoke.Scenario {
			return smoke.Scenario{Name: name, Run: func(context.Context, *client.Client, *slog.Logger) error {
				ran = append(ran, name)
				return err
			}}
		}

		err := smoke.NewRunner(c, logger,
			scenario("first", nil),
			scenario("second", smoke.ErrAssertion),
			scenario("third", nil),
		).Run(ctx)

		require.ErrorIs(t, err, smoke.ErrAssertion)
		assert.Contains(t, err.Error(), `"second"`)
		assert.Equal(t, []string{"first", "second"}, ran)
	})
}

func TestRunner_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := smoke.NewRunner(client.New(url+"/api"), slog.New(slog.DiscardHandler)).Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, client.ErrConnection))
	assert.False(t, errors.Is(err, smoke.ErrAssertion))
}
