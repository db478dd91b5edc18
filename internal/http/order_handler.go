package http

import (
	"fmt"
	"net/http"

	"github.com/tuanvumaihuynh/sneaker-shop/internal/apperr"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/model"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/service"
	"github.com/tuanvumaihuynh/sneaker-shop/pkg/validator"
)

type orderItemRequest struct {
	ProductID   string  `json:"product_id" validate:"notblank"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity" validate:"gte=1"`
	Price       float64 `json:"price" validate:"gte=0"`
	Color       string  `json:"color"`
}

type customerInfoRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

type createOrderRequest struct {
	Items         []orderItemRequest  `json:"items" validate:"required,min=1,dive"`
	Total         float64             `json:"total" validate:"gte=0"`
	CustomerInfo  customerInfoRequest `json:"customer_info"`
	PaymentMethod model.PaymentMethod `json:"payment_method" validate:"required,enum"`
}

type updateOrderStatusRequest struct {
	Status model.OrderStatus `json:"status" validate:"notblank"`
}

type orderHandler struct {
	orderSvc  service.OrderService
	validator validator.Validator
}

func newOrderHandler(orderSvc service.OrderService, v validator.Validator) *orderHandler {
	return &orderHandler{
		orderSvc:  orderSvc,
		validator: v,
	}
}

func (h *orderHandler) ListOrders(w http.ResponseWriter, r *http.Request) error {
	var filter model.OrderFilter
	if err := queryParam(r, "email", &filter.Email); err != nil {
		return err
	}

	orders, err := h.orderSvc.ListOrders(r.Context(), filter)
	if err != nil {
		return fmt.Errorf("order service list orders: %w", err)
	}

	return writeJSON(w, http.StatusOK, orders)
}

func (h *orderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) error {
	var req createOrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	if err := h.validator.Validate(req); err != nil {
		return err
	}

	items := make([]model.OrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = model.OrderItem(item)
	}

	order, err := h.orderSvc.CreateOrder(r.Context(), service.CreateOrderParams{
		Items:         items,
		Total:         req.Total,
		CustomerInfo:  model.CustomerInfo(req.CustomerInfo),
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		return fmt.Errorf("order service create order: %w", err)
	}

	return writeJSON(w, http.StatusOK, order)
}

func (h *orderHandler) GetOrder(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, apperr.OrderNotFoundErr)
	if err != nil {
		return err
	}

	order, err := h.orderSvc.GetOrder(r.Context(), id)
	if err != nil {
		return fmt.Errorf("order service get order: %w", err)
	}

	return writeJSON(w, http.StatusOK, order)
}

func (h *orderHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, apperr.OrderNotFoundErr)
	if err != nil {
		return err
	}

	var req updateOrderStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	if err := h.validator.Validate(req); err != nil {
		return err
	}

	order, err := h.orderSvc.UpdateOrderStatus(r.Context(), id, req.Status)
	if err != nil {
		return fmt.Errorf("order service update order status: %w", err)
	}

	return writeJSON(w, http.StatusOK, order)
}
