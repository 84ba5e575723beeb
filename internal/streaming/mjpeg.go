package streaming

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"net/http"
	"sync"
	"time"

	"media-sorter/internal/logging"
)

// Sentinel errors for streaming operations.
var (
	// ErrWriteTimeout indicates that a frame write exceeded the configured
	// timeout. This typically occurs when a client is receiving data too
	// slowly.
	ErrWriteTimeout = errors.New("write timeout exceeded")

	// ErrClientGone indicates that the client disconnected before the
	// stream completed. This is detected via the request context being
	// canceled.
	ErrClientGone = errors.New("client disconnected")

	// ErrStreamCanceled indicates that the stream was closed
	// programmatically via Close.
	ErrStreamCanceled = errors.New("stream canceled")
)

// MJPEGConfig configures an MJPEG frame stream.
type MJPEGConfig struct {
	// WriteTimeout is the maximum time to wait for a single frame write.
	WriteTimeout time.Duration
	// Boundary separates the multipart frames.
	Boundary string
	// Quality is the JPEG quality for encoded frames.
	Quality int
}

// DefaultMJPEGConfig returns sensible defaults.
func DefaultMJPEGConfig() MJPEGConfig {
	return MJPEGConfig{
		WriteTimeout: 10 * time.Second,
		Boundary:     "mediasorterframe",
		Quality:      80,
	}
}

// MJPEGStream writes frames as a multipart/x-mixed-replace response,
// one JPEG part per frame, with timeout protection on every write.
type MJPEGStream struct {
	w       http.ResponseWriter
	ctx     context.Context
	cancel  context.CancelFunc
	config  MJPEGConfig
	flusher http.Flusher

	mu           sync.Mutex
	closed       bool
	frames       int64
	bytesWritten int64
	startTime    time.Time

	encodeBuf bytes.Buffer
}

// NewMJPEGStream sets the multipart response headers and returns a
// stream ready for WriteFrame. The stream ends when the client
// disconnects, a write times out, or Close is called.
func NewMJPEGStream(ctx context.Context, w http.ResponseWriter, config MJPEGConfig) *MJPEGStream {
	streamCtx, cancel := context.WithCancel(ctx)

	s := &MJPEGStream{
		w:         w,
		ctx:       streamCtx,
		cancel:    cancel,
		config:    config,
		startTime: time.Now(),
	}

	if flusher, ok := w.(http.Flusher); ok {
		s.flusher = flusher
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary="+config.Boundary)
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "close")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	return s
}

// WriteFrame encodes one frame as JPEG and writes it as a multipart
// part, flushing so the client renders it immediately.
func (s *MJPEGStream) WriteFrame(frame image.Image) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrStreamCanceled
	}
	s.mu.Unlock()

	// Check context before encoding
	select {
	case <-s.ctx.Done():
		return s.contextError()
	default:
	}

	s.encodeBuf.Reset()
	if err := jpeg.Encode(&s.encodeBuf, frame, &jpeg.Options{Quality: s.config.Quality}); err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}

	header := fmt.Sprintf("--%s\r\nContent-Type: image/jpeg\r\nContent-Length: %d\r\n\r\n",
		s.config.Boundary, s.encodeBuf.Len())

	if err := s.writeWithTimeout([]byte(header)); err != nil {
		return err
	}
	if err := s.writeWithTimeout(s.encodeBuf.Bytes()); err != nil {
		return err
	}
	if err := s.writeWithTimeout([]byte("\r\n")); err != nil {
		return err
	}

	if s.flusher != nil {
		s.flusher.Flush()
	}

	s.mu.Lock()
	s.frames++
	s.mu.Unlock()

	return nil
}

// writeWithTimeout performs a single write bounded by WriteTimeout. The
// write runs in a goroutine so a stalled client cannot block forever.
func (s *MJPEGStream) writeWithTimeout(p []byte) error {
	type writeResult struct {
		n   int
		err error
	}
	resultCh := make(chan writeResult, 1)

	go func() {
		n, err := s.w.Write(p)
		resultCh <- writeResult{n, err}
	}()

	select {
	case result := <-resultCh:
		if result.err != nil {
			s.cancel()
			return fmt.Errorf("%w: %v", ErrClientGone, result.err)
		}
		s.mu.Lock()
		s.bytesWritten += int64(result.n)
		s.mu.Unlock()
		return nil

	case <-time.After(s.config.WriteTimeout):
		logging.Warn("MJPEG frame write exceeded %v, dropping client", s.config.WriteTimeout)
		s.cancel()
		return ErrWriteTimeout

	case <-s.ctx.Done():
		return s.contextError()
	}
}

// contextError returns an appropriate error based on context state.
func (s *MJPEGStream) contextError() error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return ErrStreamCanceled
	}
	return ErrClientGone
}

// Closed reports whether the stream can no longer accept frames.
func (s *MJPEGStream) Closed() bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return true
	}
	s.mu.Unlock()

	select {
	case <-s.ctx.Done():
		return true
	default:
		return false
	}
}

// Close marks the stream as finished. Safe to call multiple times.
func (s *MJPEGStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.cancel()

	return nil
}

// Stats returns streaming statistics.
func (s *MJPEGStream) Stats() (frames, bytesWritten int64, duration time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames, s.bytesWritten, time.Since(s.startTime)
}
