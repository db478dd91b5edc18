package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/tuanvumaihuynh/sneaker-shop/internal/catalog"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/config"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/log"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/repository"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/storage/db"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running seed application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log      config.Log
		Postgres config.Postgres
		Seed     config.Seed
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	pgxPool, err := db.NewPgxPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("error creating pgx pool: %w", err)
	}
	defer pgxPool.Close()

	logger.InfoContext(ctx, "connected to database",
		slog.String("host", cfg.Postgres.Host),
		slog.String("database", cfg.Postgres.DB),
	)

	if cfg.Seed.RunMigrations {
		if err := db.Migrate(pgxPool); err != nil {
			return fmt.Errorf("error migrating database: %w", err)
		}
		logger.InfoContext(ctx, "database migration completed successfully")
	}

	dbClient := db.NewClient(pgxPool)

	if _, err := catalog.Seed(ctx, dbClient, repository.NewProductRepository(dbClient), logger); err != nil {
		return fmt.Errorf("error seeding products: %w", err)
	}

	logger.InfoContext(ctx, "database seeding completed successfully")

	return nil
}
