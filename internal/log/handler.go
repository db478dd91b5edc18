package log

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/tuanvumaihuynh/sneaker-shop/pkg/correlationid"
)

var _ slog.Handler = enrichedHandler{}

// enrichedHandler adds request-scoped identifiers to every record.
type enrichedHandler struct {
	next slog.Handler
}

func newEnrichedHandler(next slog.Handler) enrichedHandler {
	return enrichedHandler{next: next}
}

func (h enrichedHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h enrichedHandler) Handle(ctx context.Context, r slog.Record) error {
	r.AddAttrs(contextAttrs(ctx)...)
	return h.next.Handle(ctx, r)
}

func (h enrichedHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newEnrichedHandler(h.next.WithAttrs(attrs))
}

func (h enrichedHandler) WithGroup(name string) slog.Handler {
	return newEnrichedHandler(h.next.WithGroup(name))
}

func contextAttrs(ctx context.Context) []slog.Attr {
	var attrs []slog.Attr

	if id, ok := correlationid.FromContext(ctx); ok {
		attrs = append(attrs, slog.String("correlation_id", id))
	}

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		attrs = append(attrs,
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}

	return attrs
}
