package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tuanvumaihuynh/sneaker-shop/internal/config"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/storage/mq"
)

// Service is the event service.
type Service struct {
	cfg        config.Event
	logger     *slog.Logger
	mqConsumer mq.Consumer
}

// New creates a new event service.
func New(
	cfg config.Event,
	logger *slog.Logger,
	mqConsumer mq.Consumer,
) *Service {
	return &Service{
		cfg:        cfg,
		logger:     logger.With(slog.String("service", "event")),
		mqConsumer: mqConsumer,
	}
}

type CleanupFunc func()

func (s *Service) Run(ctx context.Context) (CleanupFunc, error) {
	if err := s.RegisterHandlers(); err != nil {
		return nil, err
	}

	mqCleanup, err := s.mqConsumer.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("run mq consumer: %w", err)
	}

	cleanup := func() {
		mqCleanup()
	}

	return cleanup, nil
}

// RegisterHandlers subscribes the consumer to every topic in Topics.
func (s *Service) RegisterHandlers() error {
	handlers := map[string]mq.HandlerFunc{
		TopicProductCreated:     decode(s.handleProductCreated),
		TopicProductUpdated:     decode(s.handleProductUpdated),
		TopicProductDeleted:     decode(s.handleProductDeleted),
		TopicOrderCreated:       decode(s.handleOrderCreated),
		TopicOrderStatusUpdated: decode(s.handleOrderStatusUpdated),
	}

	for _, topic := range Topics {
		if err := s.mqConsumer.RegisterHandler(topic, handlers[topic]); err != nil {
			return fmt.Errorf("register %s handler: %w", topic, err)
		}
	}

	return nil
}
