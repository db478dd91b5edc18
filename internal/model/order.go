package model

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

type PaymentMethod string

const (
	// PaymentMethodCOD is cash on delivery.
	PaymentMethodCOD PaymentMethod = "COD"
)

func (m PaymentMethod) Validate() error {
	switch m {
	case PaymentMethodCOD:
		return nil
	default:
		return fmt.Errorf("unknown payment method: %q", string(m))
	}
}

// OrderStatus is free-form; the constants name the values the storefront knows about.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type OrderItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Color       string  `json:"color"`
}

type CustomerInfo struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

type Order struct {
	ID            uuid.UUID     `json:"id"`
	Items         []OrderItem   `json:"items"`
	Total         float64       `json:"total"`
	CustomerInfo  CustomerInfo  `json:"customer_info"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Status        OrderStatus   `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
}

// Clone returns a copy of o that shares no slices with it.
func (o Order) Clone() Order {
	o.Items = slices.Clone(o.Items)
	return o
}

// ItemsTotal is the sum of quantity times unit price over all items.
func (o Order) ItemsTotal() float64 {
	var total float64
	for _, item := range o.Items {
		total += float64(item.Quantity) * item.Price
	}
	return total
}

// OrderFilter narrows an order listing. Nil fields do not filter.
type OrderFilter struct {
	Email *string
}

func (f OrderFilter) Match(order Order) bool {
	if f.Email != nil && order.CustomerInfo.Email != *f.Email {
		return false
	}
	return true
}
