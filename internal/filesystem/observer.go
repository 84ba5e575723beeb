package filesystem

// Observer records filesystem operation metrics. Implementations are provided
// by the metrics package to break the import cycle between filesystem and metrics.
type Observer interface {
	// ObserveRetry records retry-specific metrics for NFS resilience.
	// retryOp is the retry operation: "stat", "open", "readdir", "remove".
	ObserveRetryAttempt(retryOp, volume string)
	ObserveRetrySuccess(retryOp, volume string)
	ObserveRetryFailure(retryOp, volume string)
	ObserveRetryDuration(retryOp, volume string, durationSeconds float64)
	ObserveStaleError(retryOp, volume string)
}

// defaultObserver is the package-level observer set at startup.
var defaultObserver Observer

// SetObserver sets the package-level metrics observer.
// Call this once at startup after creating the observer implementation.
func SetObserver(o Observer) {
	defaultObserver = o
}

// nopObserver discards all observations. It stands in when no observer has
// been registered, which keeps tests free of metrics wiring.
type nopObserver struct{}

func (nopObserver) ObserveRetryAttempt(retryOp, volume string)                           {}
func (nopObserver) ObserveRetrySuccess(retryOp, volume string)                           {}
func (nopObserver) ObserveRetryFailure(retryOp, volume string)                           {}
func (nopObserver) ObserveRetryDuration(retryOp, volume string, durationSeconds float64) {}
func (nopObserver) ObserveStaleError(retryOp, volume string)                             {}

// observe returns the registered observer, or a no-op stand-in.
func observe() Observer {
	if defaultObserver != nil {
		return defaultObserver
	}
	return nopObserver{}
}
