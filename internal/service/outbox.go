package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tuanvumaihuynh/sneaker-shop/internal/repository"
	"github.com/tuanvumaihuynh/sneaker-shop/pkg/outbox"
)

// newOutboxMsg marshals ev and carries the trace context and correlation ID of ctx along with it.
// The aggregate ID is used as partition key so events of one product or order stay ordered.
func newOutboxMsg(ctx context.Context, topic, aggregateID string, ev any) (repository.CreateOutboxMsgParams, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return repository.CreateOutboxMsgParams{}, fmt.Errorf("marshal %s event: %w", topic, err)
	}

	return repository.CreateOutboxMsgParams{
		Topic:        topic,
		Headers:      outbox.BuildHeaders(ctx),
		Payload:      payload,
		PartitionKey: &aggregateID,
	}, nil
}
