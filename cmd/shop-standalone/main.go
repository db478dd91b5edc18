package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/tuanvumaihuynh/sneaker-shop/internal/config"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/event"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/http"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/log"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/relay"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/repository"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/service"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/storage/db"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/storage/mq"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/telemetry"
	"github.com/tuanvumaihuynh/sneaker-shop/pkg/cmdutil"
)

type Config struct {
	Log      config.Log
	Postgres config.Postgres
	HTTP     config.HTTP
	Relay    config.Relay
	Kafka    config.Kafka
	Otel     config.Otel
	Event    config.Event
}

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running standalone application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

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

	kafkaProducer, err := mq.NewKafkaProducer(ctx, cfg.Kafka)
	if err != nil {
		return fmt.Errorf("error creating kafka producer: %w", err)
	}
	defer kafkaProducer.Close()

	kafkaConsumer, err := mq.NewKafkaConsumer(ctx, cfg.Kafka, logger)
	if err != nil {
		return fmt.Errorf("error creating kafka consumer: %w", err)
	}
	defer kafkaConsumer.Close()

	dbClient := db.NewClient(pgxPool)
	outboxMsgRepository := repository.NewOutboxMsgRepository(dbClient)
	productService := service.NewProductService(dbClient, repository.NewProductRepository(dbClient), outboxMsgRepository)
	orderService := service.NewOrderService(dbClient, repository.NewOrderRepository(dbClient), outboxMsgRepository)

	httpSvc := http.New(cfg.HTTP, logger, productService, orderService, dbClient)
	eventSvc := event.New(cfg.Event, logger, kafkaConsumer)
	relaySvc := relay.NewService(cfg.Relay, logger, dbClient, outboxMsgRepository, kafkaProducer)

	// The consumer starts first and stops last so that events relayed during shutdown are still handled.
	return cmdutil.Run(ctx, logger, cmdutil.InterruptChan(), 10*time.Second,
		cmdutil.Component{
			Name: "event",
			Start: func(ctx context.Context) (cmdutil.StopFunc, error) {
				cleanup, err := eventSvc.Run(ctx)
				if err != nil {
					return nil, err
				}
				return cmdutil.NoErr(cleanup), nil
			},
		},
		cmdutil.Component{
			Name: "http",
			Start: func(ctx context.Context) (cmdutil.StopFunc, error) {
				cleanup, err := httpSvc.Run(ctx)
				if err != nil {
					return nil, err
				}
				logger.InfoContext(ctx, "http server listening", slog.Uint64("port", uint64(cfg.HTTP.Port)))
				return cmdutil.StopFunc(cleanup), nil
			},
		},
		cmdutil.Component{
			Name: "relay",
			Start: func(ctx context.Context) (cmdutil.StopFunc, error) {
				return cmdutil.NoErr(relaySvc.Run(ctx)), nil
			},
		},
	)
}
