// Package engine coordinates the curation session: the loaded directory,
// the navigation cursor, favorites, deletion, preview rendering and video
// playback.
//
// It includes:
//   - A single mutex serializing all curation state changes
//   - Directory load/refresh with persisted-location handling
//   - Cursor navigation with clamping and delete renormalization
//   - One-at-a-time playback sessions with cancellation
//   - Stale detection via the catalog watcher
//   - Catalog statistics for the metrics collector
package engine
