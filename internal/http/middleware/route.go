package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// routePattern returns the matched chi route, e.g. /api/products/{id}. It is only
// complete after the router has served the request.
func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return "<unknown>"
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return "<unknown>"
}
