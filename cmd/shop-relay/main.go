package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/tuanvumaihuynh/sneaker-shop/internal/config"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/log"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/relay"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/repository"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/storage/db"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/storage/mq"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/telemetry"
	"github.com/tuanvumaihuynh/sneaker-shop/pkg/cmdutil"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running relay application: %v\n", err)
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
		Relay    config.Relay
		Kafka    config.Kafka
		Otel     config.Otel
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	cleanupTracer, err := telemetry.InitTracer(ctx, cfg.Otel)
	if err != nil {
		return fmt.Errorf("error initializing tracer: %w", err)
	}
	defer func() {
		if err := cleanupTracer(ctx); err != nil {
			logger.ErrorContext(ctx, "error cleaning up tracer", slog.Any("error", err))
		}
	}()

	pgxPool, err := db.NewPgxPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("error creating pgx pool: %w", err)
	}
	defer pgxPool.Close()

	dbClient := db.NewClient(pgxPool)

	kafkaProducer, err := mq.NewKafkaProducer(ctx, cfg.Kafka)
	if err != nil {
		return fmt.Errorf("error creating kafka producer: %w", err)
	}
	defer kafkaProducer.Close()

	svc := relay.NewService(cfg.Relay, logger, dbClient, repository.NewOutboxMsgRepository(dbClient), kafkaProducer)

	return cmdutil.Run(ctx, logger, cmdutil.InterruptChan(), 10*time.Second, cmdutil.Component{
		Name: "relay",
		Start: func(ctx context.Context) (cmdutil.StopFunc, error) {
			return cmdutil.NoErr(svc.Run(ctx)), nil
		},
	})
}
