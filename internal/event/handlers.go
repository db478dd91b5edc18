package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"

	"github.com/tuanvumaihuynh/sneaker-shop/internal/storage/mq"
)

// decode adapts a typed event handler to a raw topic handler.
func decode[T any](fn func(ctx context.Context, ev T) error) mq.HandlerFunc {
	return func(ctx context.Context, topic string, payload []byte) error {
		var ev T
		if err := json.Unmarshal(payload, &ev); err != nil {
			return fmt.Errorf("unmarshal %s event: %w", topic, err)
		}

		return fn(ctx, ev)
	}
}

func (s *Service) handleProductCreated(ctx context.Context, ev ProductEvent) error {
	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", ev.ProductID),
		slog.String("name", ev.Name),
		slog.String("category", ev.Category),
		slog.Bool("featured", ev.Featured),
	)
	s.checkStock(ctx, ev)
	return nil
}

func (s *Service) handleProductUpdated(ctx context.Context, ev ProductEvent) error {
	s.logger.InfoContext(ctx, "product updated",
		slog.String("product_id", ev.ProductID),
		slog.Float64("price", ev.Price),
		slog.Int("stock", ev.Stock),
	)
	s.checkStock(ctx, ev)
	return nil
}

func (s *Service) handleProductDeleted(ctx context.Context, ev ProductDeletedEvent) error {
	s.logger.InfoContext(ctx, "product deleted", slog.String("product_id", ev.ProductID))
	return nil
}

func (s *Service) handleOrderCreated(ctx context.Context, ev OrderCreatedEvent) error {
	s.logger.InfoContext(ctx, "order placed",
		slog.String("order_id", ev.OrderID),
		slog.String("customer_email", ev.CustomerEmail),
		slog.Int("item_count", ev.ItemCount),
		slog.Float64("total", ev.Total),
		slog.String("payment_method", ev.PaymentMethod),
	)

	// Totals are client supplied and stored as is.
	if math.Abs(ev.Total-ev.ItemsTotal) >= 0.01 {
		s.logger.WarnContext(ctx, "order total differs from items",
			slog.String("order_id", ev.OrderID),
			slog.Float64("total", ev.Total),
			slog.Float64("items_total", ev.ItemsTotal),
		)
	}
	return nil
}

func (s *Service) handleOrderStatusUpdated(ctx context.Context, ev OrderStatusUpdatedEvent) error {
	s.logger.InfoContext(ctx, "order status changed",
		slog.String("order_id", ev.OrderID),
		slog.String("customer_email", ev.CustomerEmail),
		slog.String("old_status", ev.OldStatus),
		slog.String("new_status", ev.NewStatus),
	)
	return nil
}

func (s *Service) checkStock(ctx context.Context, ev ProductEvent) {
	if ev.Stock > s.cfg.LowStockThreshold {
		return
	}

	s.logger.WarnContext(ctx, "product stock is low",
		slog.String("product_id", ev.ProductID),
		slog.String("name", ev.Name),
		slog.Int("stock", ev.Stock),
		slog.Int("threshold", s.cfg.LowStockThreshold),
	)
}
