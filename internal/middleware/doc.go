// Package middleware provides HTTP middleware for the media sorter service.
//
// It includes:
//   - Request logging in W3C Extended Log Format
//   - Prometheus request metrics keyed by route template
//   - Response compression (gzip) for JSON and text payloads,
//     bypassed for JPEG previews and the MJPEG playback stream
package middleware
