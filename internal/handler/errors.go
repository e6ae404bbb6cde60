package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hanseo/dearday/backend/internal/domain"
)

// ErrorDetail is the machine-readable error body. Code lets clients choose
// between "show suggestions", "prompt re-login", and "retry later" without
// parsing the message.
type ErrorDetail struct {
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// ErrorResponse wraps an ErrorDetail the way every error body is shaped.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// writeJSON serializes v with the given status. Encoding failures at this
// point cannot be reported to the client; they are logged and dropped.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError writes a standard error body.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// respondServiceError maps a service-layer error onto the HTTP taxonomy.
// Anything outside the known sentinels is an unexpected storage failure:
// logged with the request context and reported as an opaque 500.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var taken *domain.SlugTakenError
	switch {
	case errors.As(err, &taken):
		writeJSON(w, http.StatusConflict, ErrorResponse{Error: ErrorDetail{
			Code:        "slug_taken",
			Message:     "slug is already in use",
			Suggestions: taken.Suggestions,
		}})
	case errors.Is(err, domain.ErrAliasCapacity):
		writeError(w, http.StatusConflict, "alias_capacity", "alias history is full; delete an alias to free a slot")
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", "caller does not own this invitation")
	case errors.Is(err, domain.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "rate_limited", "too many requests")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "not found")
	default:
		slog.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.SlugService.Rename: validation error: slug ..." → "slug ...".
// Validation messages include the normalized candidate, so the client can
// show the user what their input became.
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	if i := strings.LastIndex(msg, "validation error: "); i >= 0 {
		return msg[i+len("validation error: "):]
	}
	return msg
}
