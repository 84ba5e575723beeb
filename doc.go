// Package main provides the entry point for the Media Sorter service.
//
// Media Sorter is a local media curation engine: it browses a directory
// of photos and videos one entry at a time, renders JPEG previews sized
// to the viewer, mirrors favorites into a subdirectory next to the
// media, deletes rejects, and plays videos as frame-timed MJPEG streams
// with extracted audio. The HTTP surface is a host for these
// operations; all curation semantics live in the internal packages.
//
// # Application Lifecycle
//
// The application follows a structured initialization sequence:
//
//  1. Memory Configuration: Sets GOMEMLIMIT from environment limits
//  2. Configuration Loading: Reads environment variables and validates
//     directories
//  3. Decoder Initialization: Starts libvips and checks for
//     ffmpeg/ffprobe availability
//  4. Component Initialization:
//     - Memory Monitor: Pauses preview prewarming under pressure
//     - Preview Renderer: Disk-cached JPEG rendering
//     - Playback Player: Frame-timed video sessions
//     - Curation Engine: Catalog, cursor, favorites, delete
//     - Metrics Collector: Gathers Prometheus gauges from the engine
//  5. Directory Restore: Reloads the persisted directory, unless
//     MEDIA_DIR overrides it
//  6. HTTP Server Setup: Configures routes, middleware, and starts
//     serving
//  7. Graceful Shutdown: Handles SIGINT/SIGTERM, stops all components
//     cleanly
//
// # HTTP Servers
//
// The application runs two HTTP servers:
//
//  1. Main Server (default port 8080):
//     - Directory loading, listing and refresh
//     - Cursor navigation and status
//     - JPEG preview serving with viewport scaling
//     - Favorite toggling and delete
//     - MJPEG playback streaming
//     - Health, readiness and version endpoints
//
//  2. Metrics Server (default port 9090, optional):
//     - Prometheus metrics endpoint (/metrics)
//
// # Environment Variables
//
// Configuration is primarily through environment variables:
//
//   - MEDIA_DIR: Directory to load at startup (optional; overrides the
//     persisted location)
//   - CACHE_DIR: Directory for rendered previews
//   - STATE_FILE: Path of the persisted last-directory file
//   - PORT: Main HTTP server port (default: 8080)
//   - METRICS_PORT: Metrics server port (default: 9090)
//   - ENABLE_METRICS: Enable the metrics server (default: true)
//   - PREWARM: Render previews for the whole catalog in the background
//     (default: true)
//   - PREWARM_WORKERS: Worker count for prewarming (default: derived
//     from CPU count)
//   - LOG_HEALTH_CHECKS: Log health probe requests (default: true)
//   - LOG_LEVEL: Logging level (debug/info/warn/error)
//   - GOMEMLIMIT / MEMORY_LIMIT / MEMORY_RATIO: Memory limit
//     configuration
//
// # Graceful Shutdown
//
// The application handles SIGINT and SIGTERM signals gracefully:
//
//  1. Stop the engine (playback session, directory watcher, prewarming)
//  2. Stop the metrics collector
//  3. Shutdown the metrics server (if running)
//  4. Shutdown the main HTTP server (30s timeout)
//  5. Stop the memory monitor, kill decoder processes, shut down libvips
//
// # Build Requirements
//
// The application requires CGO for libvips; ffmpeg and ffprobe are
// runtime dependencies used for video decoding and are checked at
// startup. Without them the service still serves images; video
// previews and playback report errors.
//
// # Related Packages
//
//   - [media-sorter/internal/engine]: Curation state and operations
//   - [media-sorter/internal/catalog]: Directory scanning and watching
//   - [media-sorter/internal/preview]: JPEG rendering and caching
//   - [media-sorter/internal/playback]: Frame-timed playback sessions
//   - [media-sorter/internal/streaming]: MJPEG response streaming
//   - [media-sorter/internal/handlers]: HTTP request handlers
//   - [media-sorter/internal/middleware]: HTTP middleware
//   - [media-sorter/internal/startup]: Configuration and initialization
package main
