package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/tuanvumaihuynh/sneaker-shop/internal/client"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/config"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/log"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/smoke"
	"github.com/tuanvumaihuynh/sneaker-shop/pkg/correlationid"
)

func main() {
	if err := run(); err != nil {
		if errors.Is(err, client.ErrConnection) {
			fmt.Printf("connection error: could not reach the API, make sure the server is running: %v\n", err)
		} else {
			fmt.Printf("smoke test failed: %v\n", err)
		}
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log   config.Log
		Smoke config.Smoke
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	apiURL := cfg.Smoke.APIBaseURL + cfg.Smoke.APIPrefix
	logger.InfoContext(ctx, "testing api", slog.String("url", apiURL))

	ctx = correlationid.NewContext(ctx, fmt.Sprintf("smoke-%d", time.Now().Unix()))
	c := client.New(apiURL, client.WithTimeout(cfg.Smoke.Timeout))

	return smoke.NewRunner(c, logger).Run(ctx)
}
