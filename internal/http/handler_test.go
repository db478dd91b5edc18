package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apicontract "github.com/tuanvumaihuynh/sneaker-shop/api-contract"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/config"
	httpsvc "github.com/tuanvumaihuynh/sneaker-shop/internal/http"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/http/apierr"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/model"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/repository/memory"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/service"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store := memory.NewStore()
	outboxRepo := memory.NewOutboxMsgRepository(store)
	svc := httpsvc.New(
		config.HTTP{APIPrefix: "/api", Swagger: true, CorsOrigins: []string{"*"}},
		slog.New(slog.DiscardHandler),
		service.NewProductService(store, memory.NewProductRepository(store), outboxRepo),
		service.NewOrderService(store, memory.NewOrderRepository(store), outboxRepo),
		store,
	)

	router, err := svc.Router()
	require.NoError(t, err)
	return router
}

func doJSON(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &v))
	return v
}

func TestProductRoutes(t *testing.T) {
	h := newTestRouter(t)

	monarch := map[string]any{
		"name":     "Air Monarch Premium",
		"price":    299.99,
		"colors":   []string{"Black", "Gold", "Deep Red"},
		"category": "Premium Sneakers",
		"featured": true,
		"stock":    50,
	}
	runner := map[string]any{
		"name":   "Cloud Runner",
		"price":  189.99,
		"colors": []string{"Red", "White"},
		"stock":  3,
	}

	resp := doJSON(t, h, http.MethodPost, "/api/products", monarch)
	require.Equal(t, http.StatusOK, resp.Code)
	created := decode[model.Product](t, resp)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Air Monarch Premium", created.Name)
	assert.Equal(t, []string{"Black", "Gold", "Deep Red"}, created.Colors)

	resp = doJSON(t, h, http.MethodPost, "/api/products", runner)
	require.Equal(t, http.StatusOK, resp.Code)
	other := decode[model.Product](t, resp)
	assert.False(t, other.Featured)

	t.Run("Should list all products in insertion order", func(t *testing.T) {
		resp := doJSON(t, h, http.MethodGet, "/api/products", nil)
		require.Equal(t, http.StatusOK, resp.Code)

		products := decode[[]model.Product](t, resp)
		require.Len(t, products, 2)
		assert.Equal(t, created.ID, products[0].ID)
		assert.Equal(t, other.ID, products[1].ID)
	})

	t.Run("Should filter by exact color", func(t *testing.T) {
		tests := []struct {
			color string
			want  int
		}{
			{color: "Deep Red", want: 1},
			{color: "Red", want: 1},
			{color: "Gold", want: 1},
			{color: "red", want: 0},
			{color: "Deep", want: 0},
		}
		for _, tt := range tests {
			t.Run(tt.color, func(t *testing.T) {
				resp := doJSON(t, h, http.MethodGet, "/api/products?color="+url.QueryEscape(tt.color), nil)
				require.Equal(t, http.StatusOK, resp.Code)

				products := decode[[]model.Product](t, resp)
				assert.Len(t, products, tt.want)
				for _, p := range products {
					assert.Contains(t, p.Colors, tt.color)
				}
			})
		}
	})

	t.Run("Should filter by featured", func(t *testing.T) {
		resp := doJSON(t, h, http.MethodGet, "/api/products?featured=true", nil)
		require.Equal(t, http.StatusOK, resp.Code)

		products := decode[[]model.Product](t, resp)
		require.Len(t, products, 1)
		assert.Equal(t, created.ID, products[0].ID)
	})

	t.Run("Should reject malformed featured filter", func(t *testing.T) {
		resp := doJSON(t, h, http.MethodGet, "/api/products?featured=maybe", nil)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("Should get product by id", func(t *testing.T) {
		resp := doJSON(t, h, http.MethodGet, "/api/products/"+created.ID.String(), nil)
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, created.ID, decode[model.Product](t, resp).ID)
	})

	t.Run("Should update only the supplied fields", func(t *testing.T) {
		resp := doJSON(t, h, http.MethodPut, "/api/products/"+created.ID.String(), map[string]any{
			"price": 279.99,
			"stock": 45,
		})
		require.Equal(t, http.StatusOK, resp.Code)

		updated := decode[model.Product](t, resp)
		assert.Equal(t, 279.99, updated.Price)
		assert.Equal(t, 45, updated.Stock)
		assert.Equal(t, created.Name, updated.Name)
		assert.Equal(t, created.Colors, updated.Colors)
		assert.True(t, updated.Featured)
	})

	t.Run("Should reject negative price", func(t *testing.T) {
		resp := doJSON(t, h, http.MethodPost, "/api/products", map[string]any{"name": "Bad", "price": -1})
		require.Equal(t, http.StatusBadRequest, resp.Code)

		res := decode[apierr.ErrorResponse](t, resp)
		assert.Equal(t, "validationError", res.Code)
		require.NotNil(t, res.Details)
		assert.Equal(t, "price", (*res.Details)[0].Field)
	})

	t.Run("Should reject malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewBufferString("{not json"))
		resp := httptest.NewRecorder()
		h.ServeHTTP(resp, req)

		require.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Equal(t, "INVALID_BODY", decode[apierr.ErrorResponse](t, resp).Code)
	})

	t.Run("Should delete product and then report not found", func(t *testing.T) {
		resp := doJSON(t, h, http.MethodDelete, "/api/products/"+other.ID.String(), nil)
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, "Product deleted successfully", decode[map[string]string](t, resp)["message"])

		resp = doJSON(t, h, http.MethodGet, "/api/products/"+other.ID.String(), nil)
		require.Equal(t, http.StatusNotFound, resp.Code)
		assert.Equal(t, "PRODUCT_NOT_FOUND", decode[apierr.ErrorResponse](t, resp).Code)

		resp = doJSON(t, h, http.MethodDelete, "/api/products/"+other.ID.String(), nil)
		assert.Equal(t, http.StatusNotFound, resp.Code)
	})

	t.Run("Should report not found for a malformed id", func(t *testing.T) {
		resp := doJSON(t, h, http.MethodGet, "/api/products/not-a-uuid", nil)
		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}

func TestOrderRoutes(t *testing.T) {
	h := newTestRouter(t)

	order := map[string]any{
		"items": []map[string]any{{
			"product_id":   "p-1",
			"product_name": "Air Monarch Premium",
			"quantity":     2,
			"price":        299.99,
			"color":        "Black",
		}},
		"total": 599.98,
		"customer_info": map[string]any{
			"name":        "John Doe",
			"email":       "john@example.com",
			"phone":       "+1234567890",
			"address":     "123 Main St",
			"city":        "New York",
			"postal_code": "10001",
		},
		"payment_method": "COD",
		"status":         "delivered",
	}

	resp := doJSON(t, h, http.MethodPost, "/api/orders", order)
	require.Equal(t, http.StatusOK, resp.Code)
	created := decode[model.Order](t, resp)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, model.OrderStatusPending, created.Status)
	assert.Equal(t, 599.98, created.Total)

	t.Run("Should filter by email", func(t *testing.T) {
		resp := doJSON(t, h, http.MethodGet, "/api/orders?email=john%40example.com", nil)
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Len(t, decode[[]model.Order](t, resp), 1)

		resp = doJSON(t, h, http.MethodGet, "/api/orders?email=JOHN%40example.com", nil)
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Empty(t, decode[[]model.Order](t, resp))
	})

	t.Run("Should get order by id", func(t *testing.T) {
		resp := doJSON(t, h, http.MethodGet, "/api/orders/"+created.ID.String(), nil)
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, created.CustomerInfo, decode[model.Order](t, resp).CustomerInfo)
	})

	t.Run("Should update status", func(t *testing.T) {
		resp := doJSON(t, h, http.MethodPatch, "/api/orders/"+created.ID.String()+"/status",
			map[string]string{"status": "confirmed"})
		require.Equal(t, http.StatusOK, resp.Code)

		updated := decode[model.Order](t, resp)
		assert.Equal(t, model.OrderStatusConfirmed, updated.Status)
		assert.Equal(t, created.Items, updated.Items)
	})

	t.Run("Should reject blank status", func(t *testing.T) {
		resp := doJSON(t, h, http.MethodPatch, "/api/orders/"+created.ID.String()+"/status",
			map[string]string{"status": " "})
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("Should reject order without items or with unknown payment", func(t *testing.T) {
		resp := doJSON(t, h, http.MethodPost, "/api/orders", map[string]any{
			"items":          []any{},
			"customer_info":  map[string]any{"email": "john@example.com"},
			"payment_method": "CARD",
		})
		require.Equal(t, http.StatusBadRequest, resp.Code)

		res := decode[apierr.ErrorResponse](t, resp)
		require.NotNil(t, res.Details)
		fields := make([]string, 0, len(*res.Details))
		for _, d := range *res.Details {
			fields = append(fields, d.Field)
		}
		assert.ElementsMatch(t, []string{"items", "payment_method"}, fields)
	})

	t.Run("Should report not found for unknown order", func(t *testing.T) {
		resp := doJSON(t, h, http.MethodGet, "/api/orders/0199e5a4-1b2c-7d3e-8f40-123456789abc", nil)
		require.Equal(t, http.StatusNotFound, resp.Code)
		assert.Equal(t, "ORDER_NOT_FOUND", decode[apierr.ErrorResponse](t, resp).Code)

		resp = doJSON(t, h, http.MethodPatch, "/api/orders/0199e5a4-1b2c-7d3e-8f40-123456789abc/status",
			map[string]string{"status": "shipped"})
		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}

func TestAuxiliaryRoutes(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		target string
		want   int
	}{
		{name: "health", method: http.MethodGet, target: "/healthz", want: http.StatusOK},
		{name: "metrics", method: http.MethodGet, target: "/metrics", want: http.StatusOK},
		{name: "docs", method: http.MethodGet, target: "/docs", want: http.StatusOK},
		{name: "unknown route", method: http.MethodGet, target: "/api/unknown", want: http.StatusNotFound},
		{name: "method not allowed", method: http.MethodPost, target: "/api/orders/x/status", want: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, h, tt.method, tt.target, nil)
			assert.Equal(t, tt.want, resp.Code)
		})
	}
}

func TestRoutesMatchContract(t *testing.T) {
	doc, err := apicontract.Load(context.Background())
	require.NoError(t, err)

	routes, ok := newTestRouter(t).(chi.Routes)
	require.True(t, ok)

	registered := make(map[string]bool)
	err = chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		registered[method+" "+strings.TrimSuffix(route, "/")] = true
		return nil
	})
	require.NoError(t, err)

	for path, item := range doc.Paths.Map() {
		for method := range item.Operations() {
			assert.True(t, registered[method+" /api"+path], "%s %s is documented but not routed", method, path)
		}
	}
}
