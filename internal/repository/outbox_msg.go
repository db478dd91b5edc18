package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tuanvumaihuynh/sneaker-shop/internal/storage/db"
)

type CreateOutboxMsgParams struct {
	Topic        string
	Headers      map[string]string
	Payload      json.RawMessage
	PartitionKey *string
}

type ListUnprocessedOutboxMsgsParams struct {
	BatchSize int32
}

type ListUnprocessedOutboxMsgsResult struct {
	ID           uuid.UUID
	Topic        string
	Headers      map[string]string
	Payload      json.RawMessage
	PartitionKey *string
}

type BulkUpdateOutboxMsgsItem struct {
	ID    uuid.UUID
	Error *string
}

type BulkUpdateOutboxMsgsParams struct {
	Items []BulkUpdateOutboxMsgsItem
}

type OutboxMsgRepository interface {
	WithDB(db db.DB) OutboxMsgRepository
	CreateOutboxMsg(ctx context.Context, params CreateOutboxMsgParams) error
	// ListUnprocessedOutboxMsgs locks the oldest unprocessed messages for the surrounding transaction.
	ListUnprocessedOutboxMsgs(ctx context.Context, params ListUnprocessedOutboxMsgsParams) ([]ListUnprocessedOutboxMsgsResult, error)
	BulkUpdateOutboxMsgs(ctx context.Context, params BulkUpdateOutboxMsgsParams) error
}

type outboxMsgRepository struct {
	db db.DB
}

func NewOutboxMsgRepository(db db.DB) OutboxMsgRepository {
	return &outboxMsgRepository{db: db}
}

func (r outboxMsgRepository) WithDB(db db.DB) OutboxMsgRepository {
	return &outboxMsgRepository{db: db}
}

func (r outboxMsgRepository) CreateOutboxMsg(ctx context.Context, params CreateOutboxMsgParams) error {
	headers := params.Headers
	if headers == nil {
		headers = map[string]string{}
	}

	if _, err := r.db.Exec(ctx, `
		INSERT INTO outbox_messages (topic, headers, payload, partition_key, created_at)
		VALUES (@topic, @headers, @payload, @partition_key, @created_at)
	`, pgx.NamedArgs{
		"topic":         params.Topic,
		"headers":       headers,
		"payload":       params.Payload,
		"partition_key": params.PartitionKey,
		"created_at":    time.Now(),
	}); err != nil {
		return fmt.Errorf("insert outbox msg: %w", err)
	}

	return nil
}

type outboxMsgRow struct {
	ID           uuid.UUID         `db:"id"`
	Topic        string            `db:"topic"`
	Headers      map[string]string `db:"headers"`
	Payload      json.RawMessage   `db:"payload"`
	PartitionKey *string           `db:"partition_key"`
}

func (r outboxMsgRepository) ListUnprocessedOutboxMsgs(ctx context.Context, params ListUnprocessedOutboxMsgsParams) ([]ListUnprocessedOutboxMsgsResult, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, COALESCE(headers, '{}'::jsonb) AS headers, topic, payload, partition_key
		FROM outbox_messages
		WHERE processed_at IS NULL
		ORDER BY created_at
		LIMIT @batch_size
		FOR UPDATE SKIP LOCKED
	`, pgx.NamedArgs{
		"batch_size": params.BatchSize,
	})
	if err != nil {
		return nil, fmt.Errorf("query unprocessed outbox msgs: %w", err)
	}

	msgs, err := pgx.CollectRows(rows, pgx.RowToStructByName[outboxMsgRow])
	if err != nil {
		return nil, fmt.Errorf("collect unprocessed outbox msgs: %w", err)
	}

	results := make([]ListUnprocessedOutboxMsgsResult, 0, len(msgs))
	for _, msg := range msgs {
		results = append(results, ListUnprocessedOutboxMsgsResult(msg))
	}

	return results, nil
}

func (r outboxMsgRepository) BulkUpdateOutboxMsgs(ctx context.Context, params BulkUpdateOutboxMsgsParams) error {
	if len(params.Items) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(params.Items))
	errs := make([]*string, 0, len(params.Items))
	for _, item := range params.Items {
		ids = append(ids, item.ID)
		errs = append(errs, item.Error)
	}

	_, err := r.db.Exec(ctx, `
		UPDATE outbox_messages AS o
		SET
			processed_at = NOW(),
			error        = e.error
		FROM (
			SELECT UNNEST(@ids::uuid[])  AS id,
			       UNNEST(@errors::text[]) AS error
		) AS e
		WHERE o.id = e.id;
	`, pgx.NamedArgs{
		"ids":    ids,
		"errors": errs,
	})
	if err != nil {
		return fmt.Errorf("outbox msg bulk update: %w", err)
	}

	return nil
}
