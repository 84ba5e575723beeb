package playback

import (
	"context"
	"errors"
	"image"
	"io"
	"strings"
	"testing"
	"time"

	"media-sorter/internal/transcoder"
)

type fakeSource struct {
	frames int
	served int
	err    error // returned instead of io.EOF once frames are exhausted
}

func (f *fakeSource) Next() (*image.RGBA, error) {
	if f.served >= f.frames {
		if f.err != nil {
			return nil, f.err
		}
		return nil, io.EOF
	}
	f.served++
	return image.NewRGBA(image.Rect(0, 0, 2, 2)), nil
}

type fakeViewer struct {
	presented  int
	closeAfter int // Closed() reports true once this many frames shown
	failAt     int // Present fails on this 1-based call
	onPresent  func()
	closed     bool
}

func (v *fakeViewer) Present(image.Image) error {
	if v.failAt > 0 && v.presented+1 == v.failAt {
		return errors.New("viewer gone")
	}
	v.presented++
	if v.onPresent != nil {
		v.onPresent()
	}
	return nil
}

func (v *fakeViewer) Closed() bool {
	if v.closeAfter > 0 && v.presented >= v.closeAfter {
		return true
	}
	return v.closed
}

func (v *fakeViewer) Close() error {
	v.closed = true
	return nil
}

func TestRunFrameLoopCompletes(t *testing.T) {
	source := &fakeSource{frames: 5}
	viewer := &fakeViewer{}

	status, frames, err := runFrameLoop(context.Background(), source, viewer, time.Millisecond)
	if err != nil {
		t.Fatalf("runFrameLoop() error = %v", err)
	}

	if status != "completed" {
		t.Errorf("Expected status completed, got %s", status)
	}
	if frames != 5 {
		t.Errorf("Expected 5 frames, got %d", frames)
	}
	if viewer.presented != 5 {
		t.Errorf("Expected viewer to present 5 frames, got %d", viewer.presented)
	}
}

func TestRunFrameLoopViewerCloses(t *testing.T) {
	source := &fakeSource{frames: 10}
	viewer := &fakeViewer{closeAfter: 2}

	status, frames, err := runFrameLoop(context.Background(), source, viewer, time.Millisecond)
	if err != nil {
		t.Fatalf("runFrameLoop() error = %v", err)
	}

	if status != "stopped" {
		t.Errorf("Expected status stopped, got %s", status)
	}
	if frames != 2 {
		t.Errorf("Expected 2 frames before close, got %d", frames)
	}
}

func TestRunFrameLoopPresentFailure(t *testing.T) {
	source := &fakeSource{frames: 10}
	viewer := &fakeViewer{failAt: 3}

	status, frames, err := runFrameLoop(context.Background(), source, viewer, time.Millisecond)
	if err != nil {
		t.Fatalf("runFrameLoop() error = %v", err)
	}

	if status != "stopped" {
		t.Errorf("Expected status stopped, got %s", status)
	}
	if frames != 2 {
		t.Errorf("Expected 2 presented frames before failure, got %d", frames)
	}
}

func TestRunFrameLoopDecodeError(t *testing.T) {
	source := &fakeSource{frames: 1, err: errors.New("pipe broke")}
	viewer := &fakeViewer{}

	_, frames, err := runFrameLoop(context.Background(), source, viewer, time.Millisecond)
	if err == nil {
		t.Fatal("Expected decode error to surface")
	}
	if !strings.Contains(err.Error(), "pipe broke") {
		t.Errorf("Expected wrapped cause, got %v", err)
	}
	if frames != 1 {
		t.Errorf("Expected 1 frame before the error, got %d", frames)
	}
}

func TestRunFrameLoopContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source := &fakeSource{frames: 100}
	viewer := &fakeViewer{onPresent: cancel}

	// Hour-long interval: only the context can end the frame wait.
	status, frames, err := runFrameLoop(ctx, source, viewer, time.Hour)
	if err != nil {
		t.Fatalf("runFrameLoop() error = %v", err)
	}

	if status != "stopped" {
		t.Errorf("Expected status stopped, got %s", status)
	}
	if frames != 1 {
		t.Errorf("Expected cancellation after 1 frame, got %d", frames)
	}
}

func TestFrameInterval(t *testing.T) {
	tests := []struct {
		name string
		fps  float64
		want time.Duration
	}{
		{"Reported30", 30, 33333333},
		{"Unreported", 0, 33333333},
		{"Negative", -1, 33333333},
		{"Sixty", 60, 16666666},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := frameInterval(tt.fps); got != tt.want {
				t.Errorf("frameInterval(%f) = %d, want %d", tt.fps, got, tt.want)
			}
		})
	}
}

func TestPlayUnreadableFile(t *testing.T) {
	player := NewPlayer(transcoder.New())
	viewer := &fakeViewer{}

	err := player.Play(context.Background(), "/nonexistent/video.mov", viewer)
	if err == nil {
		t.Fatal("Expected error for unreadable file")
	}

	if viewer.presented != 0 {
		t.Errorf("Expected no frames presented, got %d", viewer.presented)
	}
}
