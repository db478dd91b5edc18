package http

import (
	"fmt"
	"net/http"

	"github.com/tuanvumaihuynh/sneaker-shop/internal/apperr"
	"github.com/tuanvumaihuynh/sneaker-shop/internal/storage/db"
)

type healthResponse struct {
	Status string `json:"status"`
}

type healthHandler struct {
	checker db.HealthChecker
}

func (h *healthHandler) Health(w http.ResponseWriter, r *http.Request) error {
	if h.checker != nil {
		healthy, err := h.checker.IsHealthy(r.Context())
		if err != nil {
			return apperr.UnhealthyErr.WrapParent(fmt.Errorf("db health check: %w", err))
		}
		if !healthy {
			return apperr.UnhealthyErr
		}
	}

	return writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}
