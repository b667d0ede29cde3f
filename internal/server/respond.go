package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"comanda/internal/models"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// RequestIDFrom returns the request correlation id stored in the context
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// WriteError writes an error response in JSON format
func WriteError(w http.ResponseWriter, statusCode int, message, requestID string) {
	WriteJSON(w, statusCode, map[string]interface{}{
		"error":      message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": requestID,
	})
}

// MapError translates a domain error into an HTTP status code.
// Unclassified errors surface as 500 with the underlying message attached,
// never silently swallowed.
func MapError(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrInvalidReference):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// WriteDomainError maps err to a status code and writes the error body
func WriteDomainError(w http.ResponseWriter, err error, requestID string) {
	WriteError(w, MapError(err), err.Error(), requestID)
}
