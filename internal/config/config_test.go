package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/sneaker-shop/internal/config"
)

func TestParse(t *testing.T) {
	type Config struct {
		Log   config.Log
		HTTP  config.HTTP
		Smoke config.Smoke
	}

	t.Run("Should apply defaults", func(t *testing.T) {
		cfg, err := config.Parse[Config]()
		require.NoError(t, err)

		assert.Equal(t, config.LogFormatJSON, cfg.Log.Format)
		assert.Equal(t, slog.LevelInfo, cfg.Log.Level)
		assert.Equal(t, uint32(8000), cfg.HTTP.Port)
		assert.Equal(t, "/api", cfg.HTTP.APIPrefix)
		assert.Equal(t, []string{"*"}, cfg.HTTP.CorsOrigins)
		assert.Equal(t, "http://localhost:8000", cfg.Smoke.APIBaseURL)
		assert.Equal(t, 10*time.Second, cfg.Smoke.Timeout)
	})

	t.Run("Should read environment overrides", func(t *testing.T) {
		t.Setenv("LOG_FORMAT", "text")
		t.Setenv("LOG_LEVEL", "DEBUG")
		t.Setenv("HTTP_PORT", "8001")
		t.Setenv("HTTP_CORS_ORIGINS", "https://a.example,https://b.example")
		t.Setenv("API_BASE_URL", "http://shop:8001")

		cfg, err := config.Parse[Config]()
		require.NoError(t, err)

		assert.Equal(t, config.LogFormatText, cfg.Log.Format)
		assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
		assert.Equal(t, uint32(8001), cfg.HTTP.Port)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.CorsOrigins)
		assert.Equal(t, "http://shop:8001", cfg.Smoke.APIBaseURL)
	})

	t.Run("Should reject unknown log format", func(t *testing.T) {
		t.Setenv("LOG_FORMAT", "xml")

		_, err := config.Parse[Config]()
		assert.Error(t, err)
	})

	t.Run("Should split kafka addresses", func(t *testing.T) {
		t.Setenv("KAFKA_ADDRESSES", "kafka-1:9092,kafka-2:9092")

		cfg, err := config.Parse[struct{ Kafka config.Kafka }]()
		require.NoError(t, err)

		assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Addresses)
		assert.Equal(t, "sneaker-shop", cfg.Kafka.Group)
		assert.Equal(t, 5*time.Second, cfg.Kafka.PingTimeout)
	})

	t.Run("Should require postgres settings", func(t *testing.T) {
		_, err := config.Parse[struct{ Postgres config.Postgres }]()
		assert.Error(t, err)
	})
}

func TestPostgresConnString(t *testing.T) {
	pg := config.Postgres{
		Host:     "db",
		Port:     5432,
		User:     "shop",
		Password: "p@ss word",
		DB:       "shop",
		SSLMode:  "disable",
	}

	assert.Equal(t, "postgres://shop:p%40ss%20word@db:5432/shop?sslmode=disable", pg.ConnString())
}
