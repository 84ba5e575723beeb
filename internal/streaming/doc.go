/*
Package streaming provides timeout-protected MJPEG frame streaming for
HTTP responses.

# Overview

This package addresses a common problem in HTTP servers that push live
frames: slow or disconnected clients can hold server resources
indefinitely. MJPEGStream writes each frame as one part of a
multipart/x-mixed-replace response and bounds every write with a
timeout, ensuring that stalled connections are detected and terminated
gracefully instead of blocking the playback loop.

# Key Features

  - Per-write timeouts: every frame write is bounded by a configurable timeout
  - Client disconnect detection: leverages the request context for early termination
  - Immediate delivery: frames are flushed as soon as they are written
  - In-place JPEG encoding with a reused buffer to limit allocations

# Basic Usage

	func (h *Handlers) StreamPlayback(w http.ResponseWriter, r *http.Request) {
		stream := streaming.NewMJPEGStream(r.Context(), w, streaming.DefaultMJPEGConfig())
		defer stream.Close()

		for frame := range frames {
			if err := stream.WriteFrame(frame); err != nil {
				if errors.Is(err, streaming.ErrClientGone) {
					return // client went away, not a server error
				}
				log.Printf("Streaming error: %v", err)
				return
			}
		}
	}

# Error Handling

The package defines sentinel errors for specific conditions:

	var (
		// ErrWriteTimeout indicates a frame write exceeded WriteTimeout
		ErrWriteTimeout = errors.New("write timeout exceeded")

		// ErrClientGone indicates the client disconnected
		ErrClientGone = errors.New("client disconnected")

		// ErrStreamCanceled indicates the stream was closed programmatically
		ErrStreamCanceled = errors.New("stream canceled")
	)

These errors can be checked using errors.Is:

	err := stream.WriteFrame(frame)
	if errors.Is(err, streaming.ErrClientGone) {
		// Client disconnected, stop the session quietly
		return
	}
	if errors.Is(err, streaming.ErrWriteTimeout) {
		// Client too slow, connection terminated
		return
	}

# Thread Safety

MJPEGStream is safe for concurrent use, though typical usage involves a
single playback loop writing frames. Closed and Close may be called
from other goroutines to observe or force the end of the stream.

# Performance Considerations

  - Quality trades bandwidth for fidelity; 80 is a good default for
    motion frames.
  - WriteTimeout should be generous enough for slow networks but short
    enough that a stalled client releases the playback session promptly.
  - The write goroutine exists only for the duration of a single write.
*/
package streaming
