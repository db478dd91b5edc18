package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tuanvumaihuynh/sneaker-shop/internal/http/apierr"
)

// Recoverer turns a handler panic into a 500 JSON error. The panic is logged with its stack
// and recorded on the request span. http.ErrAbortHandler is re-raised untouched.
func Recoverer(log *slog.Logger) func(http.Handler) http.Handler {
	body, err := json.Marshal(apierr.InternalServerErr)
	if err != nil {
		panic(err)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if err, ok := rvr.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rvr)
				}

				span := trace.SpanFromContext(r.Context())
				span.RecordError(fmt.Errorf("panic: %v", rvr))
				span.SetStatus(codes.Error, "panic in handler")

				log.ErrorContext(r.Context(), "panic serving request",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Any("recover", rvr),
					slog.String("stack", string(debug.Stack())),
				)

				// Headers already went out; the client sees a truncated response.
				if ww.Status() != 0 {
					return
				}
				ww.Header().Set("Content-Type", "application/json")
				ww.WriteHeader(http.StatusInternalServerError)
				//nolint:errcheck
				ww.Write(body)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
