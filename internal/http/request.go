package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/tuanvumaihuynh/sneaker-shop/internal/apperr"
	"github.com/tuanvumaihuynh/sneaker-shop/pkg/zerror"
)

const maxBodyBytes = 1 << 20 // 1 MB

// handlerFunc is an HTTP handler that reports failures through its return value.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// decodeJSON decodes the request body into dst. Unknown fields are ignored so clients may
// send server-owned fields such as id or created_at.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.InvalidBodyErr.WithMsg("request body is empty").WrapParent(err)
		}
		return apperr.InvalidBodyErr.WrapParent(err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	return nil
}

// pathID binds the {id} URL parameter. An id that is not a UUID cannot exist, so it is
// reported as notFound.
func pathID(r *http.Request, notFound zerror.ZError) (uuid.UUID, error) {
	var id uuid.UUID
	if err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		}); err != nil {
		return uuid.Nil, notFound.WrapParent(err)
	}
	return id, nil
}

// queryParam binds an optional query parameter into dst, which must be a pointer to a pointer.
func queryParam(r *http.Request, name string, dst any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dst); err != nil {
		return apperr.ValidationErr.WithMsg(fmt.Sprintf("invalid query parameter %q", name)).WrapParent(err)
	}
	return nil
}

type messageResponse struct {
	Message string `json:"message"`
}
