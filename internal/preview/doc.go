// Package preview renders display-ready previews for media entries.
//
// The Renderer supports:
//   - Images: decode (libvips, pure-Go, or FFmpeg fallback), alpha
//     flattening, and aspect-preserving viewport fit
//   - Videos: first-frame extraction with a composited playback badge
//
// Rendered previews are JPEG-encoded and cached on disk keyed by path,
// viewport size, and file modification time.
package preview
