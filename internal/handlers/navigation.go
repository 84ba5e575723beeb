package handlers

import (
	"net/http"
)

// NextEntry advances the cursor and returns the new status. At the end
// of the catalog the cursor stays put.
func (h *Handlers) NextEntry(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, h.engine.Next())
}

// PreviousEntry steps the cursor back and returns the new status.
func (h *Handlers) PreviousEntry(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, h.engine.Previous())
}

// GetCurrent returns the status of the current entry.
func (h *Handlers) GetCurrent(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, h.engine.Status())
}

// ToggleFavorite flips the favorite state of the current entry and
// returns the full status so clients see the new state in context.
func (h *Handlers) ToggleFavorite(w http.ResponseWriter, _ *http.Request) {
	if _, err := h.engine.ToggleFavorite(); err != nil {
		writeEngineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, h.engine.Status())
}

// DeleteCurrent removes the current entry from disk and returns the
// status at the renormalized cursor position.
func (h *Handlers) DeleteCurrent(w http.ResponseWriter, _ *http.Request) {
	if err := h.engine.Delete(); err != nil {
		writeEngineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, h.engine.Status())
}
