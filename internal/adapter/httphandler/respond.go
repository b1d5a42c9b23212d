package httphandler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/pharmacy/internal/core/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// statusOf maps a service error to the response status and message.
func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, domain.ErrProductNotFound.Error()
	case errors.Is(err, domain.ErrOutOfStock):
		return http.StatusConflict, domain.ErrOutOfStock.Error()
	case errors.Is(err, domain.ErrEmptyCart):
		return http.StatusConflict, domain.ErrEmptyCart.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, domain.ErrInvalidCredentials.Error()
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized, domain.ErrNotAuthenticated.Error()
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusUnauthorized, domain.ErrSessionNotFound.Error()
	case errors.Is(err, domain.ErrPasswordMismatch):
		return http.StatusBadRequest, domain.ErrPasswordMismatch.Error()
	case errors.Is(err, domain.ErrInvalidCheckoutForm):
		return http.StatusBadRequest, domain.ErrInvalidCheckoutForm.Error()
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// fail logs err at a level matching its status and writes the error body.
func fail(w http.ResponseWriter, log *slog.Logger, err error) {
	status, msg := statusOf(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", "err", err)
	} else {
		log.Warn("request rejected", "err", err)
	}
	writeError(w, status, msg)
}

func badJSON(w http.ResponseWriter, log *slog.Logger, err error) {
	log.Warn("failed to parse JSON", "err", err)
	writeError(w, http.StatusBadRequest, "invalid JSON data")
}
