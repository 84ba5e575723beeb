package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"media-sorter/internal/catalog"
	"media-sorter/internal/engine"
	"media-sorter/internal/logging"
	"media-sorter/internal/preview"
)

// writeJSON encodes v as JSON and writes it to the response writer.
// Any encoding or write errors are logged since we typically cannot
// recover from them in an HTTP handler context.
func writeJSON(w http.ResponseWriter, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode JSON response: %v", err)
	}
}

// writeJSONError writes an error response as JSON with the given status code.
func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	writeJSON(w, map[string]string{"error": message})
}

// writeJSONStatus writes a simple status response as JSON.
func writeJSONStatus(w http.ResponseWriter, status string) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, map[string]string{"status": status})
}

// writeEngineError maps engine errors onto HTTP status codes:
// missing directory 404, unreadable media 422, empty catalog /
// wrong kind / busy session 409, anything else 500.
func writeEngineError(w http.ResponseWriter, err error) {
	var unreadable *preview.UnreadableError

	switch {
	case errors.Is(err, catalog.ErrDirectoryNotFound):
		writeJSONError(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &unreadable):
		writeJSONError(w, unreadable.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, engine.ErrEmpty),
		errors.Is(err, engine.ErrNotVideo),
		errors.Is(err, engine.ErrBusy):
		writeJSONError(w, err.Error(), http.StatusConflict)
	default:
		writeJSONError(w, err.Error(), http.StatusInternalServerError)
	}
}
