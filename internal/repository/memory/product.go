package memory

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/tuanvumaihuynh/sneaker-shop/internal/model"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/repository"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/storage/db"
)

var _ repository.ProductRepository = (*ProductRepository)(nil)

type ProductRepository struct {
	store *Store
}

func NewProductRepository(store *Store) *ProductRepository {
	return &ProductRepository{store: store}
}

func (r *ProductRepository) WithDB(db.DB) repository.ProductRepository {
	return r
}

func (r *ProductRepository) CreateProduct(_ context.Context, product model.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.products = append(r.store.products, normalizeProduct(product))
	return nil
}

func (r *ProductRepository) GetProduct(_ context.Context, id uuid.UUID) (model.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return model.Product{}, repository.ErrNotFound
	}
	return r.store.products[i].Clone(), nil
}

func (r *ProductRepository) ListProducts(_ context.Context, filter model.ProductFilter) ([]model.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	products := make([]model.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		if filter.Match(p) {
			products = append(products, p.Clone())
		}
	}
	return products, nil
}

func (r *ProductRepository) UpdateProduct(_ context.Context, product model.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	i := r.indexOf(product.ID)
	if i < 0 {
		return repository.ErrNotFound
	}

	updated := normalizeProduct(product)
	updated.CreatedAt = r.store.products[i].CreatedAt
	r.store.products[i] = updated
	return nil
}

func (r *ProductRepository) DeleteProduct(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return repository.ErrNotFound
	}

	r.store.products = slices.Delete(r.store.products, i, i+1)
	return nil
}

func (r *ProductRepository) ReplaceAllProducts(_ context.Context, products []model.Product) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	deleted := int64(len(r.store.products))
	r.store.products = make([]model.Product, 0, len(products))
	for _, p := range products {
		r.store.products = append(r.store.products, normalizeProduct(p))
	}
	return deleted, nil
}

// indexOf must be called with the store lock held.
func (r *ProductRepository) indexOf(id uuid.UUID) int {
	return slices.IndexFunc(r.store.products, func(p model.Product) bool {
		return p.ID == id
	})
}

func normalizeProduct(p model.Product) model.Product {
	p = p.Clone()
	if p.Colors == nil {
		p.Colors = []string{}
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	return p
}
