package event

import (
	"github.com/tuanvumaihuynh/sneaker-shop/internal/model"
)

const (
	TopicProductCreated     = "product.created"
	TopicProductUpdated     = "product.updated"
	TopicProductDeleted     = "product.deleted"
	TopicOrderCreated       = "order.created"
	TopicOrderStatusUpdated = "order.status_updated"
)

// Topics lists every topic the event service consumes.
var Topics = []string{
	TopicProductCreated,
	TopicProductUpdated,
	TopicProductDeleted,
	TopicOrderCreated,
	TopicOrderStatusUpdated,
}

type ProductEvent struct {
	ProductID string   `json:"product_id"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	Colors    []string `json:"colors"`
	Category  string   `json:"category"`
	Featured  bool     `json:"featured"`
	Stock     int      `json:"stock"`
}

func NewProductEvent(p model.Product) ProductEvent {
	return ProductEvent{
		ProductID: p.ID.String(),
		Name:      p.Name,
		Price:     p.Price,
		Colors:    p.Colors,
		Category:  p.Category,
		Featured:  p.Featured,
		Stock:     p.Stock,
	}
}

type ProductDeletedEvent struct {
	ProductID string `json:"product_id"`
}

type OrderCreatedEvent struct {
	OrderID       string  `json:"order_id"`
	CustomerEmail string  `json:"customer_email"`
	CustomerName  string  `json:"customer_name"`
	ItemCount     int     `json:"item_count"`
	Total         float64 `json:"total"`
	ItemsTotal    float64 `json:"items_total"`
	PaymentMethod string  `json:"payment_method"`
}

func NewOrderCreatedEvent(o model.Order) OrderCreatedEvent {
	count := 0
	for _, item := range o.Items {
		count += item.Quantity
	}

	return OrderCreatedEvent{
		OrderID:       o.ID.String(),
		CustomerEmail: o.CustomerInfo.Email,
		CustomerName:  o.CustomerInfo.Name,
		ItemCount:     count,
		Total:         o.Total,
		ItemsTotal:    o.ItemsTotal(),
		PaymentMethod: string(o.PaymentMethod),
	}
}

type OrderStatusUpdatedEvent struct {
	OrderID       string `json:"order_id"`
	CustomerEmail string `json:"customer_email"`
	OldStatus     string `json:"old_status"`
	NewStatus     string `json:"new_status"`
}
