package metrics

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	// --- Catalog scans ---
	for _, status := range []string{"success", "error"} {
		CatalogScansTotal.WithLabelValues(status)
	}

	// --- Watcher events ---
	for _, eventType := range []string{"create", "write", "remove", "rename"} {
		WatcherEventsTotal.WithLabelValues(eventType)
	}

	// --- Preview renders (per kind × status) ---
	for _, kind := range []string{"image", "video"} {
		for _, status := range []string{"success", "error"} {
			PreviewRendersTotal.WithLabelValues(kind, status)
		}
	}

	// --- Playback outcomes ---
	for _, status := range []string{"completed", "stopped", "error"} {
		PlaybackSessionsTotal.WithLabelValues(status)
	}
	for _, status := range []string{"playing", "fallback"} {
		PlaybackAudioTotal.WithLabelValues(status)
	}

	// --- Favorite operations ---
	for _, op := range []string{"add", "remove"} {
		for _, status := range []string{"success", "error"} {
			FavoriteOpsTotal.WithLabelValues(op, status)
		}
	}

	// --- Location state operations ---
	for _, status := range []string{"success", "miss", "stale"} {
		StateOpsTotal.WithLabelValues("load", status)
	}
	for _, status := range []string{"success", "error"} {
		StateOpsTotal.WithLabelValues("save", status)
	}

	// --- Navigation and deletion ---
	for _, op := range []string{"load", "next", "previous", "refresh"} {
		NavigationOpsTotal.WithLabelValues(op)
	}
	for _, status := range []string{"success", "error"} {
		DeleteOpsTotal.WithLabelValues(status)
	}

	// --- Filesystem retry metrics (per retry-operation × volume) ---
	retryOps := []string{"stat", "open", "readdir", "remove"}
	volumes := []string{"media", "cache", "state", "unknown"}

	for _, op := range retryOps {
		for _, vol := range volumes {
			FilesystemRetryAttempts.WithLabelValues(op, vol)
			FilesystemRetrySuccess.WithLabelValues(op, vol)
			FilesystemRetryFailures.WithLabelValues(op, vol)
			FilesystemStaleErrors.WithLabelValues(op, vol)
			FilesystemRetryDuration.WithLabelValues(op, vol)
		}
	}

	// --- Library gauges ---
	for _, kind := range []string{"image", "video"} {
		MediaEntriesTotal.WithLabelValues(kind)
	}
}
