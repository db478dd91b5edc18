package memory

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/tuanvumaihuynh/sneaker-shop/internal/model"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/repository"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/storage/db"
)

var _ repository.OrderRepository = (*OrderRepository)(nil)

type OrderRepository struct {
	store *Store
}

func NewOrderRepository(store *Store) *OrderRepository {
	return &OrderRepository{store: store}
}

func (r *OrderRepository) WithDB(db.DB) repository.OrderRepository {
	return r
}

func (r *OrderRepository) CreateOrder(_ context.Context, order model.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	order = order.Clone()
	if order.Items == nil {
		order.Items = []model.OrderItem{}
	}
	r.store.orders = append(r.store.orders, order)
	return nil
}

func (r *OrderRepository) GetOrder(_ context.Context, id uuid.UUID) (model.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return model.Order{}, repository.ErrNotFound
	}
	return r.store.orders[i].Clone(), nil
}

func (r *OrderRepository) ListOrders(_ context.Context, filter model.OrderFilter) ([]model.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	orders := make([]model.Order, 0, len(r.store.orders))
	for _, o := range r.store.orders {
		if filter.Match(o) {
			orders = append(orders, o.Clone())
		}
	}
	return orders, nil
}

func (r *OrderRepository) UpdateOrderStatus(_ context.Context, id uuid.UUID, status model.OrderStatus) (model.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return model.Order{}, repository.ErrNotFound
	}

	r.store.orders[i].Status = status
	return r.store.orders[i].Clone(), nil
}

// indexOf must be called with the store lock held.
func (r *OrderRepository) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(r.store.orders, func(o model.Order) bool {
		return o.ID == id
	})
}
