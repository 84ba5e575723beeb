package handlers

import (
	"net/http"
	"runtime"
	"time"

	"media-sorter/internal/startup"
)

const (
	statusHealthy  = "healthy"
	statusStarting = "starting"
	statusDegraded = "degraded"
)

// HealthResponse contains the health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Ready   bool   `json:"ready"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`

	// Catalog state
	Directory string `json:"directory,omitempty"`
	Entries   int    `json:"entries"`
	Images    int    `json:"images"`
	Videos    int    `json:"videos"`
	Favorites int    `json:"favorites"`
	Stale     bool   `json:"stale"`
	Playing   bool   `json:"playing"`

	// System info
	GoVersion    string `json:"goVersion"`
	NumCPU       int    `json:"numCpu"`
	NumGoroutine int    `json:"numGoroutine"`
}

// HealthCheck returns the health status of the service. A stale
// catalog reports degraded: the on-disk directory changed since the
// last scan and navigation may not match reality until a refresh.
func (h *Handlers) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	status := h.engine.Status()
	stats := h.engine.GetStats()
	ready := h.ready.Load()

	response := HealthResponse{
		Ready:        ready,
		Version:      startup.Version,
		Uptime:       time.Since(h.started).Round(time.Second).String(),
		Directory:    status.Directory,
		Entries:      status.Total,
		Images:       stats.TotalImages,
		Videos:       stats.TotalVideos,
		Favorites:    stats.TotalFavorites,
		Stale:        status.Stale,
		Playing:      status.Playing,
		GoVersion:    runtime.Version(),
		NumCPU:       runtime.NumCPU(),
		NumGoroutine: runtime.NumGoroutine(),
	}

	switch {
	case !ready:
		response.Status = statusStarting
	case status.Stale:
		response.Status = statusDegraded
	default:
		response.Status = statusHealthy
	}

	w.Header().Set("Content-Type", "application/json")

	// Return 503 only if not ready at all
	if !ready {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}

	writeJSON(w, response)
}

// LivenessCheck is a simple liveness probe (always returns 200 if server is running)
func (h *Handlers) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	// For HEAD requests, only send headers (no body)
	if r.Method != http.MethodHead {
		writeJSON(w, map[string]string{
			"status": "alive",
		})
	}
}

// ReadinessCheck returns 200 only when the service is ready to accept traffic
func (h *Handlers) ReadinessCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if h.ready.Load() {
		w.WriteHeader(http.StatusOK)
		writeJSON(w, map[string]string{
			"status": "ready",
		})
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
		writeJSON(w, map[string]string{
			"status": "not_ready",
		})
	}
}
