package handlers

import (
	"sync/atomic"
	"time"

	"media-sorter/internal/engine"
)

// Handlers holds the HTTP surface over the curation engine. The engine
// owns all curation state; handlers only translate requests and map
// errors to status codes.
type Handlers struct {
	engine  *engine.Engine
	started time.Time
	ready   atomic.Bool
}

func New(eng *engine.Engine) *Handlers {
	return &Handlers{
		engine:  eng,
		started: time.Now(),
	}
}

// SetReady marks the service ready to accept traffic. Called once by
// main after startup completes; readiness probes report not_ready
// until then.
func (h *Handlers) SetReady() {
	h.ready.Store(true)
}
