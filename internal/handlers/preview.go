package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"media-sorter/internal/engine"
	"media-sorter/internal/logging"
)

// maxPreviewDim bounds requested preview dimensions; anything larger
// is treated as unspecified rather than allocating absurd bitmaps.
const maxPreviewDim = 4096

// GetPreview serves the current entry as a JPEG scaled to the
// requested viewport. Without width and height the engine's last-known
// viewport is used. The empty catalog returns a JSON body carrying the
// status message so clients can show it in place of an image.
func (h *Handlers) GetPreview(w http.ResponseWriter, r *http.Request) {
	width, height := 0, 0
	if v, err := strconv.Atoi(r.URL.Query().Get("width")); err == nil && v > 0 && v <= maxPreviewDim {
		width = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("height")); err == nil && v > 0 && v <= maxPreviewDim {
		height = v
	}

	data, err := h.engine.CurrentPreview(r.Context(), width, height)
	if err != nil {
		if errors.Is(err, engine.ErrEmpty) {
			status := h.engine.Status()
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			writeJSON(w, map[string]string{
				"error":   err.Error(),
				"message": status.Message,
			})
			return
		}
		writeEngineError(w, err)
		return
	}

	// Same URL, different content as the cursor moves.
	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	if _, err := w.Write(data); err != nil {
		logging.Debug("Preview write aborted: %v", err)
	}
}
