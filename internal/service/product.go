package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tuanvumaihuynh/sneaker-shop/internal/apperr"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/event"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/model"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/repository"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/storage/db"
)

type CreateProductParams struct {
	Name        string
	Description string
	Price       float64
	Colors      []string
	Images      []string
	Category    string
	Featured    bool
	Stock       int
}

type ProductService interface {
	CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error)
	ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, patch model.ProductPatch) (model.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	db            db.Transactor
	productRepo   repository.ProductRepository
	outboxMsgRepo repository.OutboxMsgRepository
	now           func() time.Time
}

func NewProductService(
	db db.Transactor,
	productRepo repository.ProductRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
) ProductService {
	return &productService{
		db:            db,
		productRepo:   productRepo,
		outboxMsgRepo: outboxMsgRepo,
		now:           time.Now,
	}
}

func (s *productService) CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error) {
	if params.Price < 0 || params.Stock < 0 {
		return model.Product{}, apperr.ValidationErr.WithMsg("price and stock must not be negative")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return model.Product{}, fmt.Errorf("generate uuid v7: %w", err)
	}

	product := model.Product{
		ID:          id,
		Name:        params.Name,
		Description: params.Description,
		Price:       params.Price,
		Colors:      params.Colors,
		Images:      params.Images,
		Category:    params.Category,
		Featured:    params.Featured,
		Stock:       params.Stock,
		CreatedAt:   s.now().UTC().Truncate(time.Microsecond),
	}.Clone()
	if product.Colors == nil {
		product.Colors = []string{}
	}
	if product.Images == nil {
		product.Images = []string{}
	}

	msg, err := newOutboxMsg(ctx, event.TopicProductCreated, product.ID.String(), event.NewProductEvent(product))
	if err != nil {
		return model.Product{}, err
	}

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		if err := s.productRepo.
			WithDB(db).
			CreateProduct(ctx, product); err != nil {
			return fmt.Errorf("product repository create product: %w", err)
		}

		if err := s.outboxMsgRepo.
			WithDB(db).
			CreateOutboxMsg(ctx, msg); err != nil {
			return fmt.Errorf("outbox msg repository create outbox msg: %w", err)
		}

		return nil
	}); err != nil {
		return model.Product{}, fmt.Errorf("db with tx: %w", err)
	}

	return product, nil
}

func (s *productService) ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	products, err := s.productRepo.ListProducts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("product repository list products: %w", err)
	}

	return products, nil
}

func (s *productService) GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error) {
	product, err := s.productRepo.GetProduct(ctx, id)
	if err != nil {
		return model.Product{}, productRepoErr("get product", err)
	}

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uuid.UUID, patch model.ProductPatch) (model.Product, error) {
	var updated model.Product

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		productRepo := s.productRepo.WithDB(db)

		current, err := productRepo.GetProduct(ctx, id)
		if err != nil {
			return productRepoErr("get product", err)
		}

		updated = patch.Apply(current)
		if updated.Price < 0 || updated.Stock < 0 {
			return apperr.ValidationErr.WithMsg("price and stock must not be negative")
		}

		if patch.IsEmpty() {
			return nil
		}

		if err := productRepo.UpdateProduct(ctx, updated); err != nil {
			return productRepoErr("update product", err)
		}

		msg, err := newOutboxMsg(ctx, event.TopicProductUpdated, updated.ID.String(), event.NewProductEvent(updated))
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
		return model.Product{}, fmt.Errorf("db with tx: %w", err)
	}

	return updated, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	msg, err := newOutboxMsg(ctx, event.TopicProductDeleted, id.String(), event.ProductDeletedEvent{
		ProductID: id.String(),
	})
	if err != nil {
		return err
	}

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		if err := s.productRepo.
			WithDB(db).
			DeleteProduct(ctx, id); err != nil {
			return productRepoErr("delete product", err)
		}

		if err := s.outboxMsgRepo.
			WithDB(db).
			CreateOutboxMsg(ctx, msg); err != nil {
			return fmt.Errorf("outbox msg repository create outbox msg: %w", err)
		}

		return nil
	}); err != nil {
		return fmt.Errorf("db with tx: %w", err)
	}

	return nil
}

func productRepoErr(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.ProductNotFoundErr.WrapParent(err)
	}
	return fmt.Errorf("product repository %s: %w", op, err)
}
