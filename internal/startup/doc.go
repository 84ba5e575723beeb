// Package startup handles application initialization, configuration loading,
// and startup/shutdown logging.
//
// This package centralizes all application configuration and provides consistent
// logging throughout the application lifecycle.
//
// # Configuration
//
// All configuration is loaded from environment variables via [LoadConfig].
// The following environment variables are supported:
//
//   - PORT: HTTP server port (default: 8080)
//   - METRICS_PORT: Prometheus metrics server port (default: 9090)
//   - ENABLE_METRICS: Enable or disable the metrics server (default: true)
//   - CACHE_DIR: Preview cache location (default: user cache dir)
//   - STATE_FILE: Last-directory state file (default: user config dir)
//   - MEDIA_DIR: Directory to load at startup, overriding the persisted one
//   - PREWARM: Warm the preview cache after a directory loads (default: true)
//   - PREWARM_WORKERS: Fixed prewarm worker count (default: auto)
//   - LOG_LEVEL: Logging level - debug, info, warn, error (default: info)
//   - LOG_HEALTH_CHECKS: Log health check requests (default: true)
//
// # Directory Setup
//
// The preview cache directory is created and probed for writability; if it
// is unavailable the renderer runs uncached. The start directory is checked
// but never created.
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via [GetBuildInfo]:
//   - Version: Application version
//   - Commit: Git commit hash
//   - BuildTime: Build timestamp
//   - GoVersion: Go compiler version
//
// # Lifecycle Logging
//
// The package provides structured logging functions for consistent output:
//   - [LogTranscoderInit]: ffmpeg and ffprobe availability
//   - [LogHTTPRoutes]: Registered HTTP routes (debug level)
//   - [LogServerStarted]: Server endpoints and startup duration
//   - [LogShutdownInitiated]: Graceful shutdown start
//   - [LogShutdownComplete]: Shutdown completion
package startup
