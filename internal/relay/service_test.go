package relay_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/sneaker-shop/internal/config"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/event"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/relay"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/repository"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/repository/memory"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/storage/mq"
	"github.com/tuanvumaihuynh/sneaker-shop/pkg/ptr"
)

type fakeProducer struct {
	mu       sync.Mutex
	produced []mq.ProduceMsg
	failOn   string
}

func (p *fakeProducer) Produce(_ context.Context, msg mq.ProduceMsg) error {
	if msg.Topic == p.failOn {
		return errors.New("broker unavailable")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.produced = append(p.produced, msg)
	return nil
}

func TestService_RelayBatch(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	outboxRepo := memory.NewOutboxMsgRepository(store)
	producer := &fakeProducer{failOn: event.TopicOrderStatusUpdated}

	for _, topic := range []string{event.TopicProductCreated, event.TopicOrderCreated, event.TopicOrderStatusUpdated} {
		require.NoError(t, outboxRepo.CreateOutboxMsg(ctx, repository.CreateOutboxMsgParams{
			Topic:        topic,
			Headers:      map[string]string{"X-Correlation-ID": "corr-1"},
			Payload:      []byte(`{}`),
			PartitionKey: ptr.New("aggregate-1"),
		}))
	}

	svc := relay.NewService(
		config.Relay{BatchSize: 2},
		slog.New(slog.DiscardHandler),
		store,
		outboxRepo,
		producer,
	)

	t.Run("Should relay at most one batch", func(t *testing.T) {
		n, err := svc.RelayBatch(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Len(t, producer.produced, 2)
		assert.Equal(t, ptr.New("aggregate-1"), producer.produced[0].PartitionKey)
	})

	t.Run("Should record produce failures and mark them processed", func(t *testing.T) {
		n, err := svc.RelayBatch(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		msgs := store.OutboxMessages()
		require.Len(t, msgs, 3)
		for _, msg := range msgs {
			assert.NotNil(t, msg.ProcessedAt, msg.Topic)
		}
		require.NotNil(t, msgs[2].Error)
		assert.Contains(t, *msgs[2].Error, "broker unavailable")
		assert.Nil(t, msgs[0].Error)
	})

	t.Run("Should do nothing when the outbox is drained", func(t *testing.T) {
		n, err := svc.RelayBatch(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestService_Run(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	outboxRepo := memory.NewOutboxMsgRepository(store)
	producer := &fakeProducer{}

	for range 5 {
		require.NoError(t, outboxRepo.CreateOutboxMsg(ctx, repository.CreateOutboxMsgParams{
			Topic:   event.TopicProductUpdated,
			Payload: []byte(`{}`),
		}))
	}

	svc := relay.NewService(
		config.Relay{BatchSize: 2, Interval: 10 * time.Millisecond},
		slog.New(slog.DiscardHandler),
		store,
		outboxRepo,
		producer,
	)

	cleanup := svc.Run(ctx)
	assert.Eventually(t, func() bool {
		for _, msg := range store.OutboxMessages() {
			if msg.ProcessedAt == nil {
				return false
			}
		}
		return true
	}, time.Second, 5*time.Millisecond)
	cleanup()

	producer.mu.Lock()
	defer producer.mu.Unlock()
	assert.Len(t, producer.produced, 5)
}
