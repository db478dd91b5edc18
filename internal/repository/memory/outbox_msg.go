package memory

import (
	"context"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/tuanvumaihuynh/sneaker-shop/internal/repository"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/storage/db"
)

var _ repository.OutboxMsgRepository = (*OutboxMsgRepository)(nil)

type OutboxMsgRepository struct {
	store *Store
}

func NewOutboxMsgRepository(store *Store) *OutboxMsgRepository {
	return &OutboxMsgRepository{store: store}
}

func (r *OutboxMsgRepository) WithDB(db.DB) repository.OutboxMsgRepository {
	return r
}

func (r *OutboxMsgRepository) CreateOutboxMsg(_ context.Context, params repository.CreateOutboxMsgParams) error {
	id, err := uuid.NewV7()
	if err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.outbox = append(r.store.outbox, OutboxMsg{
		ID:           id,
		Topic:        params.Topic,
		Headers:      maps.Clone(params.Headers),
		Payload:      slices.Clone(params.Payload),
		PartitionKey: params.PartitionKey,
		CreatedAt:    time.Now(),
	})
	return nil
}

func (r *OutboxMsgRepository) ListUnprocessedOutboxMsgs(_ context.Context, params repository.ListUnprocessedOutboxMsgsParams) ([]repository.ListUnprocessedOutboxMsgsResult, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var results []repository.ListUnprocessedOutboxMsgsResult
	for _, msg := range r.store.outbox {
		if int32(len(results)) >= params.BatchSize {
			break
		}
		if msg.ProcessedAt != nil {
			continue
		}
		results = append(results, repository.ListUnprocessedOutboxMsgsResult{
			ID:           msg.ID,
			Topic:        msg.Topic,
			Headers:      maps.Clone(msg.Headers),
			Payload:      slices.Clone(msg.Payload),
			PartitionKey: msg.PartitionKey,
		})
	}
	return results, nil
}

func (r *OutboxMsgRepository) BulkUpdateOutboxMsgs(_ context.Context, params repository.BulkUpdateOutboxMsgsParams) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now()
	for _, item := range params.Items {
		i := slices.IndexFunc(r.store.outbox, func(m OutboxMsg) bool { return m.ID == item.ID })
		if i < 0 {
			continue
		}
		r.store.outbox[i].ProcessedAt = &now
		r.store.outbox[i].Error = item.Error
	}
	return nil
}
