package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tuanvumaihuynh/sneaker-shop/internal/model"
	"github.com/tuanvumaihuynh/sneaker-shop/pkg/ptr"
)

func TestPaymentMethodValidate(t *testing.T) {
	assert.NoError(t, model.PaymentMethodCOD.Validate())
	assert.Error(t, model.PaymentMethod("cod").Validate())
	assert.Error(t, model.PaymentMethod("").Validate())
}

func TestOrderItemsTotal(t *testing.T) {
	order := model.Order{Items: []model.OrderItem{
		{Quantity: 2, Price: 199.99},
		{Quantity: 1, Price: 50},
	}}

	assert.InDelta(t, 449.98, order.ItemsTotal(), 1e-9)
}

func TestOrderFilterMatch(t *testing.T) {
	order := model.Order{CustomerInfo: model.CustomerInfo{Email: "john@example.com"}}

	assert.True(t, model.OrderFilter{}.Match(order))
	assert.True(t, model.OrderFilter{Email: ptr.New("john@example.com")}.Match(order))
	assert.False(t, model.OrderFilter{Email: ptr.New("John@example.com")}.Match(order))
	assert.False(t, model.OrderFilter{Email: ptr.New("jane@example.com")}.Match(order))
}
