package handlers

import (
	"context"
	"errors"
	"image"
	"net/http"

	"media-sorter/internal/engine"
	"media-sorter/internal/logging"
	"media-sorter/internal/streaming"
)

// mjpegViewer adapts an HTTP response into a playback viewer. The
// MJPEG stream is created on the first frame, so failures before any
// frame leave the response untouched and the handler can still send a
// JSON error with a real status code.
type mjpegViewer struct {
	ctx    context.Context
	w      http.ResponseWriter
	config streaming.MJPEGConfig
	stream *streaming.MJPEGStream
}

func newMJPEGViewer(ctx context.Context, w http.ResponseWriter) *mjpegViewer {
	return &mjpegViewer{
		ctx:    ctx,
		w:      w,
		config: streaming.DefaultMJPEGConfig(),
	}
}

func (v *mjpegViewer) Present(frame image.Image) error {
	if v.stream == nil {
		v.stream = streaming.NewMJPEGStream(v.ctx, v.w, v.config)
	}
	return v.stream.WriteFrame(frame)
}

// Closed reports client disconnect; before the first frame that is the
// request context, afterwards the stream's own state.
func (v *mjpegViewer) Closed() bool {
	if v.stream != nil {
		return v.stream.Closed()
	}
	select {
	case <-v.ctx.Done():
		return true
	default:
		return false
	}
}

func (v *mjpegViewer) Close() error {
	if v.stream == nil {
		return nil
	}
	return v.stream.Close()
}

// presented reports whether any frame reached the client, meaning the
// multipart response has already begun.
func (v *mjpegViewer) presented() bool {
	return v.stream != nil
}

// PlayVideo runs a playback session for the current entry, streaming
// frames to the client as multipart MJPEG. The handler blocks for the
// whole session; client disconnect ends it. Failures to even start
// decoding map to 502, catalog conditions to 409.
func (h *Handlers) PlayVideo(w http.ResponseWriter, r *http.Request) {
	viewer := newMJPEGViewer(r.Context(), w)
	defer viewer.Close()

	err := h.engine.PlayCurrent(r.Context(), viewer)
	if err == nil {
		if viewer.presented() {
			frames, bytes, duration := viewer.stream.Stats()
			logging.Debug("Playback stream done: %d frames, %d bytes in %v", frames, bytes, duration)
		}
		return
	}

	// Once frames have been sent the status line is gone; the client
	// sees the stream end instead.
	if viewer.presented() {
		logging.Warn("Playback failed mid-stream: %v", err)
		return
	}

	switch {
	case errors.Is(err, engine.ErrEmpty),
		errors.Is(err, engine.ErrNotVideo),
		errors.Is(err, engine.ErrBusy):
		writeJSONError(w, err.Error(), http.StatusConflict)
	default:
		// The decoder never produced a frame: probe or pipeline
		// startup failed upstream of us.
		writeJSONError(w, err.Error(), http.StatusBadGateway)
	}
}

// StopPlayback cancels the active playback session. Stopping when
// nothing plays is not an error; the response says which it was.
func (h *Handlers) StopPlayback(w http.ResponseWriter, _ *http.Request) {
	if h.engine.StopPlayback() {
		writeJSONStatus(w, "stopped")
	} else {
		writeJSONStatus(w, "idle")
	}
}
