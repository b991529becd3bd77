package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/glowmart/storefront/internal/adapter/backend"
	"github.com/glowmart/storefront/internal/domain/entity"
	"github.com/glowmart/storefront/internal/platform/logger"
	"github.com/glowmart/storefront/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondError maps the error taxonomy to HTTP statuses: validation failures
// are the caller's fault, backend client errors pass their status through,
// backend transport failures surface as a retryable 502.
func respondError(w http.ResponseWriter, log logger.Logger, err error) {
	var vErr *entity.ValidationError
	if errors.As(err, &vErr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: vErr.Error()})
		return
	}
	if errors.Is(err, service.ErrProductUnavailable) {
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
		return
	}
	if errors.Is(err, service.ErrOrderAccessDenied) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "order not found"})
		return
	}

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		status := http.StatusBadGateway
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
			status = apiErr.StatusCode
		}
		writeJSON(w, status, errorResponse{Error: apiErr.Message})
		return
	}

	log.Errorf("Unhandled error in HTTP handler: %v", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}
