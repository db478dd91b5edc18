package db

import (
	"context"
	"fmt"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tuanvumaihuynh/sneaker-shop/internal/config"
)

// NewPgxPool opens a pool whose queries are traced by otelpgx and whose pool statistics are
// exported as OpenTelemetry metrics. The pool is pinged before it is returned.
func NewPgxPool(ctx context.Context, cfg config.Postgres) (*pgxpool.Pool, error) {
	poolCfg, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := otelpgx.RecordStats(pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("record database stats: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database %s: %w", cfg.Host, err)
	}

	return pool, nil
}

func poolConfig(cfg config.Postgres) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime

	connCfg := poolCfg.ConnConfig
	connCfg.ConnectTimeout = cfg.ConnectTimeout
	connCfg.Tracer = otelpgx.NewTracer(otelpgx.WithTrimSQLInSpanName())
	if cfg.ApplicationName != "" {
		connCfg.RuntimeParams["application_name"] = cfg.ApplicationName
	}

	return poolCfg, nil
}
