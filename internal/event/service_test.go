package event_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/sneaker-shop/internal/config"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/event"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/storage/mq"
)

type fakeConsumer struct {
	handlers map[string]mq.HandlerFunc
	running  bool
	stopped  bool
}

func (c *fakeConsumer) RegisterHandler(topic string, handler mq.HandlerFunc) error {
	if c.handlers == nil {
		c.handlers = make(map[string]mq.HandlerFunc)
	}
	c.handlers[topic] = handler
	return nil
}

func (c *fakeConsumer) Run(context.Context) (mq.CleanupFunc, error) {
	c.running = true
	return func() { c.stopped = true }, nil
}

func (c *fakeConsumer) deliver(t *testing.T, topic string, ev any) error {
	t.Helper()

	payload, err := json.Marshal(ev)
	require.NoError(t, err)

	h, ok := c.handlers[topic]
	require.True(t, ok, "no handler for %s", topic)
	return h(context.Background(), topic, payload)
}

func TestService(t *testing.T) {
	var logs bytes.Buffer
	consumer := &fakeConsumer{}
	svc := event.New(
		config.Event{LowStockThreshold: 5},
		slog.New(slog.NewJSONHandler(&logs, nil)),
		consumer,
	)

	cleanup, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, consumer.running)

	t.Run("Should subscribe to every topic", func(t *testing.T) {
		for _, topic := range event.Topics {
			assert.Contains(t, consumer.handlers, topic)
		}
	})

	t.Run("Should warn when stock is low", func(t *testing.T) {
		logs.Reset()
		require.NoError(t, consumer.deliver(t, event.TopicProductUpdated, event.ProductEvent{
			ProductID: "p-1", Name: "Cloud Runner", Stock: 3,
		}))

		assert.Contains(t, logs.String(), "product updated")
		assert.Contains(t, logs.String(), "product stock is low")
	})

	t.Run("Should not warn when stock is above threshold", func(t *testing.T) {
		logs.Reset()
		require.NoError(t, consumer.deliver(t, event.TopicProductCreated, event.ProductEvent{
			ProductID: "p-2", Name: "Air Monarch Premium", Stock: 50,
		}))

		assert.Contains(t, logs.String(), "product created")
		assert.NotContains(t, logs.String(), "product stock is low")
	})

	t.Run("Should log order events", func(t *testing.T) {
		logs.Reset()
		require.NoError(t, consumer.deliver(t, event.TopicOrderCreated, event.OrderCreatedEvent{
			OrderID: "o-1", CustomerEmail: "john@example.com", ItemCount: 2, Total: 599.98, ItemsTotal: 599.98, PaymentMethod: "COD",
		}))
		require.NoError(t, consumer.deliver(t, event.TopicOrderStatusUpdated, event.OrderStatusUpdatedEvent{
			OrderID: "o-1", OldStatus: "pending", NewStatus: "confirmed",
		}))

		assert.Contains(t, logs.String(), `"msg":"order placed"`)
		assert.Contains(t, logs.String(), `"new_status":"confirmed"`)
		assert.NotContains(t, logs.String(), "order total differs from items")
	})

	t.Run("Should warn when order total differs from items", func(t *testing.T) {
		logs.Reset()
		require.NoError(t, consumer.deliver(t, event.TopicOrderCreated, event.OrderCreatedEvent{
			OrderID: "o-2", ItemCount: 1, Total: 10, ItemsTotal: 249.99, PaymentMethod: "COD",
		}))

		assert.Contains(t, logs.String(), `"msg":"order total differs from items"`)
		assert.Contains(t, logs.String(), `"items_total":249.99`)
	})

	t.Run("Should fail on malformed payload", func(t *testing.T) {
		err := consumer.handlers[event.TopicProductDeleted](context.Background(), event.TopicProductDeleted, []byte("{"))
		assert.Error(t, err)
	})

	cleanup()
	assert.True(t, consumer.stopped)
}
