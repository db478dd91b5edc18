package log_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/sneaker-shop/internal/config"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/log"
	"github.com/tuanvumaihuynh/sneaker-shop/pkg/correlationid"
)

func TestEnrichedHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(log.NewHandler(&buf, config.Log{
		Format: config.LogFormatJSON,
		Level:  slog.LevelInfo,
	}))

	t.Run("Should add correlation id from context", func(t *testing.T) {
		buf.Reset()
		ctx := correlationid.NewContext(context.Background(), "abc-123")

		logger.With(slog.String("service", "http")).InfoContext(ctx, "product created")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "abc-123", entry["correlation_id"])
		assert.Equal(t, "http", entry["service"])
		assert.NotContains(t, entry, "trace_id")
	})

	t.Run("Should respect level", func(t *testing.T) {
		buf.Reset()
		logger.DebugContext(context.Background(), "hidden")
		assert.Zero(t, buf.Len())
	})
}
