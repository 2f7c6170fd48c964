package handler

import (
	"encoding/json"
	"net/http"

	"pdf-smart-tools/internal/domain"
	"pdf-smart-tools/pkg/errors"
)

type contextKey string

const userContextKey contextKey = "user"

// GetUserFromContext extracts the authenticated user from request context
func GetUserFromContext(r *http.Request) (*domain.SupabaseUser, bool) {
	user, ok := r.Context().Value(userContextKey).(*domain.SupabaseUser)
	return user, ok
}

// writeError writes an error response (helper function)
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeAppError maps err to its HTTP status. Internal failures are logged and
// reported without their cause.
func writeAppError(w http.ResponseWriter, logger domain.Logger, r *http.Request, err error) {
	status := errors.GetStatusCode(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", err, "method", r.Method, "path", r.URL.Path, "request_id", requestID(r))
	}
	writeError(w, status, errors.PublicMessage(err))
}
