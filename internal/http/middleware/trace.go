package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.9.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/tuanvumaihuynh/sneaker-shop/pkg/correlationid"
)

// DocsPathPrefix covers the Swagger UI and the OpenAPI documents.
const DocsPathPrefix = "/docs"

// Trace starts a server span per request, continuing any trace found in the request headers.
// The span is named after the chi route pattern once routing is done, so /api/products/{id}
// yields one span name for every product.
func Trace(tracer trace.Tracer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !traced(r) {
				next.ServeHTTP(w, r)
				return
			}

			ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := tracer.Start(ctx, r.Method, trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					semconv.HTTPMethodKey.String(r.Method),
					semconv.HTTPTargetKey.String(r.URL.RequestURI()),
					semconv.HTTPUserAgentKey.String(r.UserAgent()),
				),
			)
			defer span.End()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			r = r.WithContext(ctx)
			next.ServeHTTP(ww, r)

			route := routePattern(r)
			span.SetName(fmt.Sprintf("%s %s", r.Method, route))
			span.SetAttributes(
				semconv.HTTPRouteKey.String(route),
				semconv.HTTPStatusCodeKey.Int(ww.Status()),
				semconv.HTTPResponseContentLengthKey.Int(ww.BytesWritten()),
			)
			if id, ok := correlationid.FromContext(r.Context()); ok {
				span.SetAttributes(attribute.String("correlation_id", id))
			}
			if ww.Status() >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(ww.Status()))
			}
		})
	}
}

func traced(r *http.Request) bool {
	switch {
	case r.URL.Path == MetricsPath, r.URL.Path == HealthPath:
		return false
	case strings.HasPrefix(r.URL.Path, DocsPathPrefix):
		return false
	default:
		return true
	}
}
