package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tuanvumaihuynh/sneaker-shop/internal/model"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/repository"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/storage/db"
)

// Result summarizes a seeding run.
type Result struct {
	Cleared    int64
	Inserted   int
	Featured   int
	Categories int
}

// Seed replaces every stored product with the catalogue in a single transaction. Running it
// twice leaves the same set of products behind, under new ids.
func Seed(ctx context.Context, tx db.Transactor, repo repository.ProductRepository, logger *slog.Logger) (Result, error) {
	now := time.Now().UTC()
	items := Products()
	for i := range items {
		id, err := uuid.NewV7()
		if err != nil {
			return Result{}, fmt.Errorf("new product id: %w", err)
		}
		items[i].ID = id
		items[i].CreatedAt = now
	}

	var cleared int64
	if err := tx.WithTx(ctx, func(d db.DB) error {
		n, err := repo.WithDB(d).ReplaceAllProducts(ctx, items)
		if err != nil {
			return fmt.Errorf("replace all products: %w", err)
		}
		cleared = n
		return nil
	}); err != nil {
		return Result{}, err
	}

	res := summarize(items)
	res.Cleared = cleared

	logger.InfoContext(ctx, "cleared existing products", slog.Int64("count", res.Cleared))
	logger.InfoContext(ctx, "inserted products", slog.Int("count", res.Inserted))
	logger.InfoContext(ctx, "products summary",
		slog.Int("total", res.Inserted),
		slog.Int("featured", res.Featured),
		slog.Int("categories", res.Categories),
	)

	return res, nil
}

func summarize(items []model.Product) Result {
	res := Result{Inserted: len(items)}
	categories := make(map[string]struct{})
	for _, p := range items {
		if p.Featured {
			res.Featured++
		}
		categories[p.Category] = struct{}{}
	}
	res.Categories = len(categories)
	return res
}
