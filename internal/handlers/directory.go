package handlers

import (
	"encoding/json"
	"net/http"

	"media-sorter/internal/catalog"
)

type DirectoryRequest struct {
	Path string `json:"path"`
}

// DirectoryResponse describes the currently loaded directory.
type DirectoryResponse struct {
	Directory string          `json:"directory"`
	Entries   []catalog.Entry `json:"entries"`
	Stale     bool            `json:"stale"`
}

// SetDirectory loads a new directory into the engine. On scan failure
// the previously loaded directory stays current, so a mistyped path
// costs nothing.
func (h *Handlers) SetDirectory(w http.ResponseWriter, r *http.Request) {
	var req DirectoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Path == "" {
		writeJSONError(w, "Path is required", http.StatusBadRequest)
		return
	}

	if err := h.engine.LoadDirectory(req.Path); err != nil {
		writeEngineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, h.engine.Status())
}

// GetDirectory returns the loaded directory, its entry listing, and
// whether the catalog has gone stale since the last scan.
func (h *Handlers) GetDirectory(w http.ResponseWriter, _ *http.Request) {
	dir, entries, stale := h.engine.Listing()

	if entries == nil {
		entries = []catalog.Entry{}
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, DirectoryResponse{
		Directory: dir,
		Entries:   entries,
		Stale:     stale,
	})
}

// RefreshDirectory re-scans the loaded directory on the caller's
// thread and returns the renormalized status.
func (h *Handlers) RefreshDirectory(w http.ResponseWriter, _ *http.Request) {
	if err := h.engine.Refresh(); err != nil {
		writeEngineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, h.engine.Status())
}
