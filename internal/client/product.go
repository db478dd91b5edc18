package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/tuanvumaihuynh/sneaker-shop/internal/model"
)

// ProductInput is the body of a product creation request.
type ProductInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Colors      []string `json:"colors"`
	Images      []string `json:"images"`
	Category    string   `json:"category"`
	Featured    bool     `json:"featured"`
	Stock       int      `json:"stock"`
}

// ProductQuery narrows ListProducts. Nil fields are not sent.
type ProductQuery struct {
	Color    *string
	Featured *bool
}

func (q ProductQuery) values() url.Values {
	v := url.Values{}
	if q.Color != nil {
		v.Set("color", *q.Color)
	}
	if q.Featured != nil {
		v.Set("featured", strconv.FormatBool(*q.Featured))
	}
	return v
}

type deleteResponse struct {
	Message string `json:"message"`
}

func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (model.Product, error) {
	var p model.Product
	err := c.do(ctx, http.MethodPost, "/products", nil, in, &p)
	return p, err
}

func (c *Client) ListProducts(ctx context.Context, q ProductQuery) ([]model.Product, error) {
	var products []model.Product
	err := c.do(ctx, http.MethodGet, "/products", q.values(), nil, &products)
	return products, err
}

func (c *Client) GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error) {
	var p model.Product
	err := c.do(ctx, http.MethodGet, "/products/"+id.String(), nil, nil, &p)
	return p, err
}

// UpdateProduct sends only the non-nil fields of patch.
func (c *Client) UpdateProduct(ctx context.Context, id uuid.UUID, patch model.ProductPatch) (model.Product, error) {
	var p model.Product
	err := c.do(ctx, http.MethodPut, "/products/"+id.String(), nil, patch, &p)
	return p, err
}

// DeleteProduct returns the confirmation message of the API.
func (c *Client) DeleteProduct(ctx context.Context, id uuid.UUID) (string, error) {
	var res deleteResponse
	err := c.do(ctx, http.MethodDelete, "/products/"+id.String(), nil, nil, &res)
	return res.Message, err
}
