package repository

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tuanvumaihuynh/sneaker-shop/internal/model"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/storage/db"
)

type ProductRepository interface {
	WithDB(db db.DB) ProductRepository
	CreateProduct(ctx context.Context, product model.Product) error
	GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error)
	ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)
	// UpdateProduct overwrites every mutable column of the product with the given ID.
	UpdateProduct(ctx context.Context, product model.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	// ReplaceAllProducts deletes every product and inserts the given ones.
	// It returns the number of deleted rows. Callers wrap it in a transaction.
	ReplaceAllProducts(ctx context.Context, products []model.Product) (int64, error)
}

type productRepository struct {
	db db.DB
}

func NewProductRepository(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r productRepository) WithDB(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, name, description, price, colors, images, category, featured, stock, created_at`

var productColumnNames = []string{
	"id", "name", "description", "price", "colors", "images", "category", "featured", "stock", "created_at",
}

type productRow struct {
	ID          uuid.UUID      `db:"id"`
	Name        string         `db:"name"`
	Description string         `db:"description"`
	Price       pgtype.Numeric `db:"price"`
	Colors      []string       `db:"colors"`
	Images      []string       `db:"images"`
	Category    string         `db:"category"`
	Featured    bool           `db:"featured"`
	Stock       int32          `db:"stock"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (r productRepository) CreateProduct(ctx context.Context, product model.Product) error {
	args, err := productNamedArgs(product)
	if err != nil {
		return err
	}

	if _, err := r.db.Exec(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES (@id, @name, @description, @price, @colors, @images, @category, @featured, @stock, @created_at)
	`, args); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

func (r productRepository) GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error) {
	rows, err := r.db.Query(ctx, `SELECT `+productColumns+` FROM products WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return model.Product{}, fmt.Errorf("query product: %w", err)
	}

	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[productRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, ErrNotFound
		}
		return model.Product{}, fmt.Errorf("collect product: %w", err)
	}

	return rowToProduct(row)
}

func (r productRepository) ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE (@color::text IS NULL OR @color::text = ANY (colors))
		  AND (@featured::boolean IS NULL OR featured = @featured::boolean)
		ORDER BY created_at, id
	`, pgx.NamedArgs{
		"color":    filter.Color,
		"featured": filter.Featured,
	})
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}

	productRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[productRow])
	if err != nil {
		return nil, fmt.Errorf("collect products: %w", err)
	}

	products := make([]model.Product, 0, len(productRows))
	for _, row := range productRows {
		product, err := rowToProduct(row)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, nil
}

func (r productRepository) UpdateProduct(ctx context.Context, product model.Product) error {
	args, err := productNamedArgs(product)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET name        = @name,
		    description = @description,
		    price       = @price,
		    colors      = @colors,
		    images      = @images,
		    category    = @category,
		    featured    = @featured,
		    stock       = @stock
		WHERE id = @id
	`, args)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r productRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r productRepository) ReplaceAllProducts(ctx context.Context, products []model.Product) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM products`)
	if err != nil {
		return 0, fmt.Errorf("delete products: %w", err)
	}

	rows := make([][]any, 0, len(products))
	for _, product := range products {
		values, err := productValues(product)
		if err != nil {
			return 0, err
		}
		rows = append(rows, values)
	}

	copied, err := r.db.CopyFrom(ctx, pgx.Identifier{"products"}, productColumnNames, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("copy products: %w", err)
	}
	if copied != int64(len(products)) {
		return 0, fmt.Errorf("copied %d of %d products", copied, len(products))
	}

	return tag.RowsAffected(), nil
}

func productValues(product model.Product) ([]any, error) {
	price, err := float64ToNumeric(product.Price)
	if err != nil {
		return nil, fmt.Errorf("convert price: %w", err)
	}

	if product.Stock > math.MaxInt32 || product.Stock < math.MinInt32 {
		return nil, fmt.Errorf("stock out of range: %d", product.Stock)
	}

	return []any{
		product.ID,
		product.Name,
		product.Description,
		price,
		nonNil(product.Colors),
		nonNil(product.Images),
		product.Category,
		product.Featured,
		int32(product.Stock),
		product.CreatedAt,
	}, nil
}

func productNamedArgs(product model.Product) (pgx.NamedArgs, error) {
	values, err := productValues(product)
	if err != nil {
		return nil, err
	}

	args := make(pgx.NamedArgs, len(values))
	for i, name := range productColumnNames {
		args[name] = values[i]
	}
	return args, nil
}

func rowToProduct(row productRow) (model.Product, error) {
	price, err := numericToFloat64(row.Price)
	if err != nil {
		return model.Product{}, fmt.Errorf("convert price: %w", err)
	}

	return model.Product{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Price:       price,
		Colors:      nonNil(row.Colors),
		Images:      nonNil(row.Images),
		Category:    row.Category,
		Featured:    row.Featured,
		Stock:       int(row.Stock),
		CreatedAt:   row.CreatedAt,
	}, nil
}

// nonNil keeps empty lists encoding as [] rather than NULL or null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
