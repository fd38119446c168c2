package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
)

// writeJSON writes a success response with the given status code
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes an error response as {"error": "..."} with the
// given status code
func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

// mapError converts service errors to HTTP responses
// Validation failures map to 400, missing entities to 404, everything
// else to 500
func mapError(w http.ResponseWriter, err error) {
	errorMsg := err.Error()

	if strings.Contains(errorMsg, "not found") {
		writeError(w, http.StatusNotFound, err)
		return
	}

	if strings.Contains(errorMsg, "must be") ||
		strings.Contains(errorMsg, "cannot") ||
		strings.Contains(errorMsg, "invalid") ||
		strings.Contains(errorMsg, "already") ||
		strings.Contains(errorMsg, "is not") {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	writeError(w, http.StatusInternalServerError, err)
}
