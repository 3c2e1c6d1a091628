package handlers

import (
	"net/http"
)

// ErrMessageInternal is what clients see for any 500 from the auth API.
const ErrMessageInternal = "internal server error"

// JSONError writes {"error": message}. The forum client and the web forms show
// that field verbatim as the form banner.
func JSONError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}

// JSONValidationError writes {"error": message, "fields": {...}}, with fields
// keyed by form field name (email, password, username, confirmPassword).
// fields is omitted when empty.
func JSONValidationError(w http.ResponseWriter, message string, fields map[string]string, status int) {
	body := struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields,omitempty"`
	}{message, fields}
	writeJSON(w, status, body)
}
