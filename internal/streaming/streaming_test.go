package streaming

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testFrame() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 16), G: uint8(y * 16), B: 128, A: 255})
		}
	}
	return img
}

func TestDefaultMJPEGConfig(t *testing.T) {
	config := DefaultMJPEGConfig()

	if config.WriteTimeout != 10*time.Second {
		t.Errorf("Expected WriteTimeout=10s, got %v", config.WriteTimeout)
	}
	if config.Boundary == "" {
		t.Error("Expected non-empty boundary")
	}
	if config.Quality <= 0 || config.Quality > 100 {
		t.Errorf("Expected quality in (0,100], got %d", config.Quality)
	}
}

func TestNewMJPEGStreamHeaders(t *testing.T) {
	rec := httptest.NewRecorder()

	NewMJPEGStream(context.Background(), rec, DefaultMJPEGConfig())

	contentType := rec.Header().Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/x-mixed-replace; boundary=") {
		t.Errorf("Expected multipart content type, got %q", contentType)
	}
	if rec.Header().Get("Cache-Control") != "no-cache" {
		t.Errorf("Expected no-cache, got %q", rec.Header().Get("Cache-Control"))
	}
}

func TestWriteFrame(t *testing.T) {
	rec := httptest.NewRecorder()
	s := NewMJPEGStream(context.Background(), rec, DefaultMJPEGConfig())
	defer s.Close()

	if err := s.WriteFrame(testFrame()); err != nil {
		t.Fatalf("WriteFrame() error = %v", err)
	}

	body := rec.Body.Bytes()
	if !bytes.Contains(body, []byte("--"+s.config.Boundary+"\r\n")) {
		t.Error("Expected boundary marker in body")
	}
	if !bytes.Contains(body, []byte("Content-Type: image/jpeg")) {
		t.Error("Expected JPEG part header in body")
	}
	// JPEG SOI marker must follow the part header.
	if !bytes.Contains(body, []byte{0xFF, 0xD8, 0xFF}) {
		t.Error("Expected JPEG magic bytes in body")
	}

	frames, bytesWritten, _ := s.Stats()
	if frames != 1 {
		t.Errorf("Expected 1 frame, got %d", frames)
	}
	if bytesWritten == 0 {
		t.Error("Expected non-zero bytes written")
	}
}

func TestWriteFrameMultiple(t *testing.T) {
	rec := httptest.NewRecorder()
	s := NewMJPEGStream(context.Background(), rec, DefaultMJPEGConfig())
	defer s.Close()

	for i := 0; i < 3; i++ {
		if err := s.WriteFrame(testFrame()); err != nil {
			t.Fatalf("WriteFrame() %d error = %v", i, err)
		}
	}

	got := bytes.Count(rec.Body.Bytes(), []byte("--"+s.config.Boundary+"\r\n"))
	if got != 3 {
		t.Errorf("Expected 3 multipart parts, got %d", got)
	}

	frames, _, _ := s.Stats()
	if frames != 3 {
		t.Errorf("Expected 3 frames in stats, got %d", frames)
	}
}

func TestWriteFrameAfterClose(t *testing.T) {
	rec := httptest.NewRecorder()
	s := NewMJPEGStream(context.Background(), rec, DefaultMJPEGConfig())

	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if err := s.WriteFrame(testFrame()); !errors.Is(err, ErrStreamCanceled) {
		t.Errorf("Expected ErrStreamCanceled, got %v", err)
	}
}

func TestWriteFrameClientGone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	rec := httptest.NewRecorder()
	s := NewMJPEGStream(ctx, rec, DefaultMJPEGConfig())
	defer s.Close()

	cancel()

	if err := s.WriteFrame(testFrame()); !errors.Is(err, ErrClientGone) {
		t.Errorf("Expected ErrClientGone, got %v", err)
	}
}

func TestClosed(t *testing.T) {
	rec := httptest.NewRecorder()
	s := NewMJPEGStream(context.Background(), rec, DefaultMJPEGConfig())

	if s.Closed() {
		t.Error("Expected fresh stream to be open")
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !s.Closed() {
		t.Error("Expected stream to report closed after Close")
	}

	// Second close is a no-op.
	if err := s.Close(); err != nil {
		t.Errorf("Second Close() error = %v", err)
	}
}

func TestClosedOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	rec := httptest.NewRecorder()
	s := NewMJPEGStream(ctx, rec, DefaultMJPEGConfig())
	defer s.Close()

	cancel()

	if !s.Closed() {
		t.Error("Expected stream to report closed after context cancel")
	}
}

// blockingWriter stalls every write until released, simulating a client
// that stops reading.
type blockingWriter struct {
	header  http.Header
	release chan struct{}
}

func (b *blockingWriter) Header() http.Header { return b.header }

func (b *blockingWriter) Write(p []byte) (int, error) {
	<-b.release
	return len(p), nil
}

func (b *blockingWriter) WriteHeader(int) {}

func TestWriteFrameTimeout(t *testing.T) {
	w := &blockingWriter{header: make(http.Header), release: make(chan struct{})}
	t.Cleanup(func() { close(w.release) })

	config := DefaultMJPEGConfig()
	config.WriteTimeout = 50 * time.Millisecond

	s := NewMJPEGStream(context.Background(), w, config)
	defer s.Close()

	if err := s.WriteFrame(testFrame()); !errors.Is(err, ErrWriteTimeout) {
		t.Errorf("Expected ErrWriteTimeout, got %v", err)
	}

	if !s.Closed() {
		t.Error("Expected stream to close itself after a write timeout")
	}
}
