package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_sorter_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_sorter_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_sorter_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Catalog metrics
var (
	CatalogScansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_sorter_catalog_scans_total",
			Help: "Total number of directory scans",
		},
		[]string{"status"},
	)

	CatalogScanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "media_sorter_catalog_scan_duration_seconds",
			Help:    "Directory scan duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	CatalogEntriesReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "media_sorter_catalog_entries_returned",
			Help:    "Number of eligible entries returned by directory scans",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	WatcherEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_sorter_watcher_events_total",
			Help: "Total number of relevant filesystem watcher events",
		},
		[]string{"event_type"},
	)

	WatcherErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_sorter_watcher_errors_total",
			Help: "Total number of filesystem watcher errors",
		},
	)
)

// Preview metrics
var (
	PreviewRendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_sorter_preview_renders_total",
			Help: "Total number of preview renders",
		},
		[]string{"kind", "status"},
	)

	PreviewRenderDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "media_sorter_preview_render_duration_seconds",
			Help:    "Preview render duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	PreviewCacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_sorter_preview_cache_hits_total",
			Help: "Total number of preview cache hits",
		},
	)

	PreviewCacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_sorter_preview_cache_misses_total",
			Help: "Total number of preview cache misses",
		},
	)

	PrewarmedPreviewsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_sorter_prewarmed_previews_total",
			Help: "Total number of previews rendered by background prewarming",
		},
	)
)

// Playback metrics
var (
	PlaybackSessionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_sorter_playback_sessions_total",
			Help: "Total number of playback sessions by outcome",
		},
		[]string{"status"},
	)

	PlaybackSessionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "media_sorter_playback_session_duration_seconds",
			Help:    "Playback session duration in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	PlaybackFramesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "media_sorter_playback_frames_total",
			Help: "Total number of frames presented during playback",
		},
	)

	PlaybackAudioTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_sorter_playback_audio_total",
			Help: "Playback sessions by audio outcome (playing or silent fallback)",
		},
		[]string{"status"},
	)

	PlaybackActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_sorter_playback_active",
			Help: "Whether a playback session is currently running (1 = active, 0 = idle)",
		},
	)
)

// Favorites metrics
var (
	FavoriteOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_sorter_favorite_ops_total",
			Help: "Total number of favorite mirror operations",
		},
		[]string{"operation", "status"},
	)
)

// Location state metrics
var (
	StateOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_sorter_state_ops_total",
			Help: "Total number of last-directory state operations",
		},
		[]string{"operation", "status"},
	)
)

// Navigation and deletion metrics
var (
	NavigationOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_sorter_navigation_ops_total",
			Help: "Total number of navigation operations",
		},
		[]string{"operation"},
	)

	DeleteOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_sorter_delete_ops_total",
			Help: "Total number of delete operations",
		},
		[]string{"status"},
	)
)

// Filesystem retry metrics for NFS resilience
var (
	FilesystemRetryAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_sorter_filesystem_retry_attempts_total",
			Help: "Total number of filesystem retry attempts",
		},
		[]string{"operation", "volume"},
	)

	FilesystemRetrySuccess = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_sorter_filesystem_retry_success_total",
			Help: "Total number of filesystem operations that succeeded after retries",
		},
		[]string{"operation", "volume"},
	)

	FilesystemRetryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_sorter_filesystem_retry_failures_total",
			Help: "Total number of filesystem operations that exhausted retries",
		},
		[]string{"operation", "volume"},
	)

	FilesystemRetryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "media_sorter_filesystem_retry_duration_seconds",
			Help:    "Duration of filesystem operations including retries",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		},
		[]string{"operation", "volume"},
	)

	FilesystemStaleErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_sorter_filesystem_stale_errors_total",
			Help: "Total number of NFS stale file handle errors observed",
		},
		[]string{"operation", "volume"},
	)
)

// Memory metrics
var (
	MemoryUsageRatio = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_sorter_memory_usage_ratio",
			Help: "Heap usage as a fraction of the configured memory limit",
		},
	)

	MemoryPaused = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_sorter_memory_paused",
			Help: "Whether background work is paused due to memory pressure (1 = paused)",
		},
	)
)

// Library metrics, refreshed by the Collector
var (
	MediaEntriesTotal = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "media_sorter_media_entries",
			Help: "Number of entries in the loaded directory by kind",
		},
		[]string{"kind"},
	)

	MediaFavoritesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_sorter_favorites",
			Help: "Number of favorites mirrored for the loaded directory",
		},
	)

	CatalogStale = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "media_sorter_catalog_stale",
			Help: "Whether the loaded catalog is stale relative to the directory (1 = stale)",
		},
	)
)

// Application info metric
var (
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "media_sorter_app_info",
			Help: "Application information",
		},
		[]string{"version", "commit", "go_version"},
	)
)

// SetAppInfo sets the application info metric
func SetAppInfo(version, commit, goVersion string) {
	AppInfo.WithLabelValues(version, commit, goVersion).Set(1)
}
