package relay

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tuanvumaihuynh/sneaker-shop/internal/config"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/repository"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/storage/db"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/storage/mq"
	"github.com/tuanvumaihuynh/sneaker-shop/pkg/outbox"
	"github.com/tuanvumaihuynh/sneaker-shop/pkg/ptr"
)

// Service moves outbox messages written by the product and order services to Kafka.
type Service struct {
	cfg           config.Relay
	logger        *slog.Logger
	db            db.Transactor
	outboxMsgRepo repository.OutboxMsgRepository
	mqProducer    mq.Producer

	stopChan chan struct{}
}

func NewService(
	cfg config.Relay,
	logger *slog.Logger,
	db db.Transactor,
	outboxMsgRepo repository.OutboxMsgRepository,
	mqProducer mq.Producer,
) *Service {
	return &Service{
		cfg:           cfg,
		logger:        logger.With(slog.String("service", "relay")),
		db:            db,
		outboxMsgRepo: outboxMsgRepo,
		mqProducer:    mqProducer,
		stopChan:      make(chan struct{}),
	}
}

type CleanupFunc func()

func (s *Service) Run(ctx context.Context) CleanupFunc {
	ctx, cancel := context.WithCancel(ctx)

	stoppedChan := make(chan struct{})
	go func() {
		defer close(stoppedChan)
		s.run(ctx)
	}()

	return func() {
		close(s.stopChan)
		select {
		case <-stoppedChan:
		case <-time.After(5 * time.Second):
			cancel()
			<-stoppedChan
		}
		cancel()
	}
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.drain(ctx)
		}
	}
}

// drain relays full batches back to back until the backlog is shorter than one batch.
func (s *Service) drain(ctx context.Context) {
	for {
		n, err := s.RelayBatch(ctx)
		if err != nil {
			s.logger.ErrorContext(ctx, "error relaying outbox msgs", slog.Any("error", err))
			return
		}
		if n < int(s.cfg.BatchSize) || ctx.Err() != nil {
			return
		}
		select {
		case <-s.stopChan:
			return
		default:
		}
	}
}

// RelayBatch produces one batch of unprocessed outbox messages and marks each of them
// processed, recording the produce error for messages that failed. It returns the number
// of messages handled.
func (s *Service) RelayBatch(ctx context.Context) (int, error) {
	var relayed int

	err := s.db.WithTx(ctx, func(db db.DB) error {
		outboxMsgs, err := s.outboxMsgRepo.
			WithDB(db).
			ListUnprocessedOutboxMsgs(ctx, repository.ListUnprocessedOutboxMsgsParams{
				//nolint:gosec
				BatchSize: int32(s.cfg.BatchSize),
			})
		if err != nil {
			return fmt.Errorf("list unprocessed outbox msgs: %w", err)
		}

		if len(outboxMsgs) == 0 {
			return nil
		}

		s.logger.InfoContext(ctx, "relaying outbox msgs", slog.Int("count", len(outboxMsgs)))

		items := make([]repository.BulkUpdateOutboxMsgsItem, len(outboxMsgs))
		var wg sync.WaitGroup
		for i, msg := range outboxMsgs {
			items[i].ID = msg.ID
			wg.Go(func() {
				if err := s.produce(ctx, msg); err != nil {
					s.logger.ErrorContext(outbox.ExtractContextFromHeaders(ctx, msg.Headers),
						"error producing message",
						slog.String("outbox_msg_id", msg.ID.String()),
						slog.String("topic", msg.Topic),
						slog.Any("error", err),
					)
					items[i].Error = ptr.New(err.Error())
				}
			})
		}

		wg.Wait()

		if err := s.outboxMsgRepo.
			WithDB(db).
			BulkUpdateOutboxMsgs(ctx, repository.BulkUpdateOutboxMsgsParams{
				Items: items,
			}); err != nil {
			return fmt.Errorf("bulk update outbox msgs: %w", err)
		}

		relayed = len(items)
		return nil
	})
	if err != nil {
		return 0, err
	}

	return relayed, nil
}

func (s *Service) produce(ctx context.Context, msg repository.ListUnprocessedOutboxMsgsResult) error {
	if s.cfg.ProduceTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.ProduceTimeout)
		defer cancel()
	}

	if err := s.mqProducer.Produce(ctx, mq.ProduceMsg{
		Topic:        msg.Topic,
		Headers:      msg.Headers,
		Payload:      msg.Payload,
		PartitionKey: msg.PartitionKey,
	}); err != nil {
		return fmt.Errorf("produce message: %w", err)
	}

	return nil
}
