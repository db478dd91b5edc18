package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tuanvumaihuynh/sneaker-shop/internal/model"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/storage/db"
)

type OrderRepository interface {
	WithDB(db db.DB) OrderRepository
	CreateOrder(ctx context.Context, order model.Order) error
	GetOrder(ctx context.Context, id uuid.UUID) (model.Order, error)
	ListOrders(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)
	// UpdateOrderStatus replaces the status of the order and returns the updated order.
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (model.Order, error)
}

type orderRepository struct {
	db db.DB
}

func NewOrderRepository(db db.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r orderRepository) WithDB(db db.DB) OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id, items, total, customer_info, payment_method, status, created_at`

type orderRow struct {
	ID            uuid.UUID          `db:"id"`
	Items         []model.OrderItem  `db:"items"`
	Total         pgtype.Numeric     `db:"total"`
	CustomerInfo  model.CustomerInfo `db:"customer_info"`
	PaymentMethod string             `db:"payment_method"`
	Status        string             `db:"status"`
	CreatedAt     time.Time          `db:"created_at"`
}

func (r orderRepository) CreateOrder(ctx context.Context, order model.Order) error {
	total, err := float64ToNumeric(order.Total)
	if err != nil {
		return fmt.Errorf("convert total: %w", err)
	}

	if _, err := r.db.Exec(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES (@id, @items, @total, @customer_info, @payment_method, @status, @created_at)
	`, pgx.NamedArgs{
		"id":             order.ID,
		"items":          nonNil(order.Items),
		"total":          total,
		"customer_info":  order.CustomerInfo,
		"payment_method": string(order.PaymentMethod),
		"status":         string(order.Status),
		"created_at":     order.CreatedAt,
	}); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	return nil
}

func (r orderRepository) GetOrder(ctx context.Context, id uuid.UUID) (model.Order, error) {
	rows, err := r.db.Query(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return model.Order{}, fmt.Errorf("query order: %w", err)
	}

	return collectOneOrder(rows)
}

func (r orderRepository) ListOrders(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE (@email::text IS NULL OR customer_info ->> 'email' = @email::text)
		ORDER BY created_at, id
	`, pgx.NamedArgs{
		"email": filter.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}

	orderRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[orderRow])
	if err != nil {
		return nil, fmt.Errorf("collect orders: %w", err)
	}

	orders := make([]model.Order, 0, len(orderRows))
	for _, row := range orderRows {
		order, err := rowToOrder(row)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, nil
}

func (r orderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (model.Order, error) {
	rows, err := r.db.Query(ctx, `
		UPDATE orders
		SET status = @status
		WHERE id = @id
		RETURNING `+orderColumns,
		pgx.NamedArgs{
			"id":     id,
			"status": string(status),
		})
	if err != nil {
		return model.Order{}, fmt.Errorf("update order status: %w", err)
	}

	return collectOneOrder(rows)
}

func collectOneOrder(rows pgx.Rows) (model.Order, error) {
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[orderRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Order{}, ErrNotFound
		}
		return model.Order{}, fmt.Errorf("collect order: %w", err)
	}

	return rowToOrder(row)
}

func rowToOrder(row orderRow) (model.Order, error) {
	total, err := numericToFloat64(row.Total)
	if err != nil {
		return model.Order{}, fmt.Errorf("convert total: %w", err)
	}

	return model.Order{
		ID:            row.ID,
		Items:         nonNil(row.Items),
		Total:         total,
		CustomerInfo:  row.CustomerInfo,
		PaymentMethod: model.PaymentMethod(row.PaymentMethod),
		Status:        model.OrderStatus(row.Status),
		CreatedAt:     row.CreatedAt,
	}, nil
}
