// Package metrics provides Prometheus instrumentation for the media-sorter application.
//
// This package defines and exposes various metrics that can be scraped by Prometheus
// to monitor the health, performance, and behavior of the application. All metrics
// are prefixed with "media_sorter_" to avoid naming collisions with other applications.
//
// # Metric Categories
//
// The metrics are organized into the following categories:
//
// ## HTTP Metrics
//
// Track HTTP request performance and error rates:
//   - HTTPRequestsTotal: Counter of total requests by method, path, and status
//   - HTTPRequestDuration: Histogram of request duration by method and path
//   - HTTPRequestsInFlight: Gauge of currently processing requests
//
// ## Catalog Metrics
//
// Track directory scanning and change watching:
//   - CatalogScansTotal: Counter of directory scans by status
//   - CatalogScanDuration: Histogram of scan duration
//   - CatalogEntriesReturned: Histogram of eligible entries per scan
//   - WatcherEventsTotal: Counter of relevant watcher events by type
//   - WatcherErrors: Counter of watcher errors
//
// ## Preview Metrics
//
// Monitor preview rendering and caching:
//   - PreviewRendersTotal: Counter of renders by kind (image/video) and status
//   - PreviewRenderDuration: Histogram of render time
//   - PreviewCacheHitsTotal: Counter of cache hits
//   - PreviewCacheMissesTotal: Counter of cache misses
//   - PrewarmedPreviewsTotal: Counter of previews produced by background warming
//
// ## Playback Metrics
//
// Track video playback sessions:
//   - PlaybackSessionsTotal: Counter of sessions by outcome (completed/stopped/error)
//   - PlaybackSessionDuration: Histogram of session duration
//   - PlaybackFramesTotal: Counter of presented frames
//   - PlaybackAudioTotal: Counter of sessions by audio outcome (playing/fallback)
//   - PlaybackActive: Gauge indicating whether a session is running
//
// ## Curation Metrics
//
// Track favorites, location state, navigation, and deletion:
//   - FavoriteOpsTotal: Counter of favorite mirror operations by op and status
//   - StateOpsTotal: Counter of last-directory load/save operations
//   - NavigationOpsTotal: Counter of navigation operations by type
//   - DeleteOpsTotal: Counter of delete operations by status
//
// ## Filesystem Metrics
//
// Monitor NFS retry behavior on network-backed volumes:
//   - FilesystemRetryAttempts: Counter of retry attempts by operation and volume
//   - FilesystemRetrySuccess: Counter of successes after retry
//   - FilesystemRetryFailures: Counter of exhausted retries
//   - FilesystemRetryDuration: Histogram of operation duration including retries
//   - FilesystemStaleErrors: Counter of ESTALE errors observed
//
// ## Memory Metrics
//
// Track memory pressure handling:
//   - MemoryUsageRatio: Gauge of memory usage as ratio of limit (0.0-1.0)
//   - MemoryPaused: Gauge indicating if background work is paused due to memory pressure
//
// ## Library Metrics
//
// Refreshed periodically by the Collector from engine statistics:
//   - MediaEntriesTotal: Gauge of loaded entries by kind
//   - MediaFavoritesTotal: Gauge of mirrored favorites
//   - CatalogStale: Gauge indicating the loaded catalog no longer matches the directory
//
// # Usage
//
// Metrics are registered automatically via promauto when the package is
// imported. Call InitializeMetrics once at startup to pre-populate label
// combinations, then expose the standard handler:
//
//	metrics.InitializeMetrics()
//	http.Handle("/metrics", promhttp.Handler())
//
// The Collector periodically refreshes library gauges from a StatsProvider:
//
//	collector := metrics.NewCollector(engine, 30*time.Second)
//	collector.Start()
//	defer collector.Stop()
package metrics
