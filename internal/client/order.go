package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/tuanvumaihuynh/sneaker-shop/internal/model"
)

// OrderInput is the body of an order creation request.
type OrderInput struct {
	Items         []model.OrderItem   `json:"items"`
	Total         float64             `json:"total"`
	CustomerInfo  model.CustomerInfo  `json:"customer_info"`
	PaymentMethod model.PaymentMethod `json:"payment_method"`
}

type orderStatusInput struct {
	Status model.OrderStatus `json:"status"`
}

func (c *Client) CreateOrder(ctx context.Context, in OrderInput) (model.Order, error) {
	var o model.Order
	err := c.do(ctx, http.MethodPost, "/orders", nil, in, &o)
	return o, err
}

// ListOrders lists orders, restricted to one customer email when email is not empty.
func (c *Client) ListOrders(ctx context.Context, email string) ([]model.Order, error) {
	q := url.Values{}
	if email != "" {
		q.Set("email", email)
	}

	var orders []model.Order
	err := c.do(ctx, http.MethodGet, "/orders", q, nil, &orders)
	return orders, err
}

func (c *Client) GetOrder(ctx context.Context, id uuid.UUID) (model.Order, error) {
	var o model.Order
	err := c.do(ctx, http.MethodGet, "/orders/"+id.String(), nil, nil, &o)
	return o, err
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (model.Order, error) {
	var o model.Order
	err := c.do(ctx, http.MethodPatch, "/orders/"+id.String()+"/status", nil, orderStatusInput{Status: status}, &o)
	return o, err
}
