package client_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/sneaker-shop/internal/client"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/config"
	httpsvc "github.com/tuanvumaihuynh/sneaker-shop/internal/http"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/model"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/repository/memory"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/service"
	"github.com/tuanvumaihuynh/sneaker-shop/pkg/ptr"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := memory.NewStore()
	outboxRepo := memory.NewOutboxMsgRepository(store)
	svc := httpsvc.New(
		config.HTTP{APIPrefix: "/api"},
		slog.New(slog.DiscardHandler),
		service.NewProductService(store, memory.NewProductRepository(store), outboxRepo),
		service.NewOrderService(store, memory.NewOrderRepository(store), outboxRepo),
		nil,
	)
	router, err := svc.Router()
	require.NoError(t, err)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_Products(t *testing.T) {
	ctx := context.Background()
	c := client.New(newTestServer(t).URL + "/api/")

	created, err := c.CreateProduct(ctx, client.ProductInput{
		Name:   "Test Luxury Sneaker",
		Price:  299.99,
		Colors: []string{"Black", "Deep Red"},
		Stock:  10,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)

	t.Run("Should filter by color", func(t *testing.T) {
		products, err := c.ListProducts(ctx, client.ProductQuery{Color: ptr.New("Deep Red")})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, created.ID, products[0].ID)

		products, err = c.ListProducts(ctx, client.ProductQuery{Featured: ptr.New(true)})
		require.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("Should send only patched fields", func(t *testing.T) {
		updated, err := c.UpdateProduct(ctx, created.ID, model.ProductPatch{Price: ptr.New(249.99)})
		require.NoError(t, err)
		assert.Equal(t, 249.99, updated.Price)
		assert.Equal(t, created.Colors, updated.Colors)
	})

	t.Run("Should return ErrNotFound after delete", func(t *testing.T) {
		msg, err := c.DeleteProduct(ctx, created.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, msg)

		_, err = c.GetProduct(ctx, created.ID)
		assert.ErrorIs(t, err, client.ErrNotFound)
	})

	t.Run("Should return StatusError on rejected input", func(t *testing.T) {
		_, err := c.CreateProduct(ctx, client.ProductInput{Name: "Bad", Price: -5})

		var statusErr *client.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
		assert.Equal(t, "validationError", statusErr.Code)
	})
}

func TestClient_Orders(t *testing.T) {
	ctx := context.Background()
	c := client.New(newTestServer(t).URL + "/api")

	created, err := c.CreateOrder(ctx, client.OrderInput{
		Items:         []model.OrderItem{{ProductID: "p-1", ProductName: "Test", Quantity: 2, Price: 299.99, Color: "Black"}},
		Total:         599.98,
		CustomerInfo:  model.CustomerInfo{Name: "Test Customer", Email: "test@example.com"},
		PaymentMethod: model.PaymentMethodCOD,
	})
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, created.Status)

	orders, err := c.ListOrders(ctx, "test@example.com")
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	updated, err := c.UpdateOrderStatus(ctx, created.ID, model.OrderStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusConfirmed, updated.Status)

	got, err := c.GetOrder(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusConfirmed, got.Status)
}

func TestClient_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := client.New(url).ListProducts(context.Background(), client.ProductQuery{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, client.ErrConnection))
	assert.False(t, errors.Is(err, client.ErrNotFound))
}
