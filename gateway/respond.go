package gateway

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kiranahq/lingocache"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a standardized JSON error response: {"error": "..."}.
func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

// writeDomainError maps service error types to HTTP statuses. Anything
// unclassified is a 500, which the translation path never produces.
func writeDomainError(w http.ResponseWriter, err error) {
	var validationErr *lingocache.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, http.StatusBadRequest, validationErr.Message)
		return
	}
	var authErr *lingocache.AuthError
	if errors.As(err, &authErr) {
		writeError(w, http.StatusUnauthorized, authErr.Message)
		return
	}
	if errors.Is(err, lingocache.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "record not found")
		return
	}
	writeError(w, http.StatusInternalServerError, "internal error")
}
