package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tuanvumaihuynh/sneaker-shop/internal/apperr"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/event"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/model"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/repository"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/storage/db"
)

type CreateOrderParams struct {
	Items         []model.OrderItem
	Total         float64
	CustomerInfo  model.CustomerInfo
	PaymentMethod model.PaymentMethod
}

type OrderService interface {
	// CreateOrder stores a new order. The status always starts as pending and
	// the total is kept as supplied.
	CreateOrder(ctx context.Context, params CreateOrderParams) (model.Order, error)
	ListOrders(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (model.Order, error)
	// UpdateOrderStatus accepts any non-blank status; transitions are not restricted.
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (model.Order, error)
}

type orderService struct {
	db            db.Transactor
	orderRepo     repository.OrderRepository
	outboxMsgRepo repository.OutboxMsgRepository
	now           func() time.Time
}

func NewOrderService(
	db db.Transactor,
	orderRepo repository.OrderRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
) OrderService {
	return &orderService{
		db:            db,
		orderRepo:     orderRepo,
		outboxMsgRepo: outboxMsgRepo,
		now:           time.Now,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, params CreateOrderParams) (model.Order, error) {
	if err := params.PaymentMethod.Validate(); err != nil {
		return model.Order{}, apperr.ValidationErr.WithMsg(err.Error())
	}

	id, err := uuid.NewV7()
	if err != nil {
		return model.Order{}, fmt.Errorf("generate uuid v7: %w", err)
	}

	order := model.Order{
		ID:            id,
		Items:         params.Items,
		Total:         params.Total,
		CustomerInfo:  params.CustomerInfo,
		PaymentMethod: params.PaymentMethod,
		Status:        model.OrderStatusPending,
		CreatedAt:     s.now().UTC().Truncate(time.Microsecond),
	}.Clone()
	if order.Items == nil {
		order.Items = []model.OrderItem{}
	}

	msg, err := newOutboxMsg(ctx, event.TopicOrderCreated, order.ID.String(), event.NewOrderCreatedEvent(order))
	if err != nil {
		return model.Order{}, err
	}

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		if err := s.orderRepo.
			WithDB(db).
			CreateOrder(ctx, order); err != nil {
			return fmt.Errorf("order repository create order: %w", err)
		}

		if err := s.outboxMsgRepo.
			WithDB(db).
			CreateOutboxMsg(ctx, msg); err != nil {
			return fmt.Errorf("outbox msg repository create outbox msg: %w", err)
		}

		return nil
	}); err != nil {
		return model.Order{}, fmt.Errorf("db with tx: %w", err)
	}

	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	orders, err := s.orderRepo.ListOrders(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("order repository list orders: %w", err)
	}

	return orders, nil
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (model.Order, error) {
	order, err := s.orderRepo.GetOrder(ctx, id)
	if err != nil {
		return model.Order{}, orderRepoErr("get order", err)
	}

	return order, nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (model.Order, error) {
	if strings.TrimSpace(string(status)) == "" {
		return model.Order{}, apperr.ValidationErr.WithMsg("status must not be blank")
	}

	var updated model.Order

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		orderRepo := s.orderRepo.WithDB(db)

		current, err := orderRepo.GetOrder(ctx, id)
		if err != nil {
			return orderRepoErr("get order", err)
		}

		updated, err = orderRepo.UpdateOrderStatus(ctx, id, status)
		if err != nil {
			return orderRepoErr("update order status", err)
		}

		msg, err := newOutboxMsg(ctx, event.TopicOrderStatusUpdated, id.String(), event.OrderStatusUpdatedEvent{
			OrderID:       id.String(),
			CustomerEmail: updated.CustomerInfo.Email,
			OldStatus:     string(current.Status),
			NewStatus:     string(updated.Status),
		})
		if err != nil {
			return err
		}

		if err := s.outboxMsgRepo.
			WithDB(db).
			CreateOutboxMsg(ctx, msg); err != nil {
			return fmt.Errorf("outbox msg repository create outbox msg: %w", err)
		}

		return nil
	}); err != nil {
		return model.Order{}, fmt.Errorf("db with tx: %w", err)
	}

	return updated, nil
}

func orderRepoErr(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.OrderNotFoundErr.WrapParent(err)
	}
	return fmt.Errorf("order repository %s: %w", op, err)
}
