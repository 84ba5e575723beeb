package playback

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"time"

	"media-sorter/internal/logging"
	"media-sorter/internal/metrics"
	"media-sorter/internal/transcoder"
)

// DefaultFPS is assumed when the container does not report a frame
// rate.
const DefaultFPS = 30.0

// Viewer receives decoded frames for display. Implementations report
// when the far side has gone away so the session can end early.
type Viewer interface {
	// Present displays one frame. An error means the viewer cannot
	// accept frames anymore.
	Present(frame image.Image) error
	// Closed reports whether the viewer has been torn down. Polled
	// once per frame.
	Closed() bool
	// Close releases the viewer.
	Close() error
}

// frameSource yields decoded frames until io.EOF.
type frameSource interface {
	Next() (*image.RGBA, error)
}

// Player runs modal playback sessions. One session fully owns the
// viewer until it completes.
type Player struct {
	trans *transcoder.Transcoder
}

// NewPlayer creates a player decoding through the given transcoder.
func NewPlayer(trans *transcoder.Transcoder) *Player {
	return &Player{trans: trans}
}

// Play decodes the video at path and presents frames to the viewer at
// the source frame rate, with the audio track playing alongside when it
// can be extracted. Play blocks until the video ends, the viewer goes
// away, or ctx is canceled; cancellation is polled once per frame and
// is not an error.
func (p *Player) Play(ctx context.Context, path string, viewer Viewer) error {
	start := time.Now()

	info, err := p.trans.Probe(ctx, path)
	if err != nil {
		metrics.PlaybackSessionsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("probe %s: %w", path, err)
	}
	if info.Width <= 0 || info.Height <= 0 {
		metrics.PlaybackSessionsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("no decodable video stream in %s", path)
	}

	interval := frameInterval(info.FPS)
	logging.Info("Playing %s: %dx%d, %.2f fps, %.1fs",
		filepath.Base(path), info.Width, info.Height, float64(time.Second)/float64(interval), info.Duration)

	stream, err := p.trans.OpenFrameStream(ctx, path, info.Width, info.Height)
	if err != nil {
		metrics.PlaybackSessionsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("open frame stream for %s: %w", path, err)
	}
	defer stream.Close()

	// Audio is best-effort: any extraction or device failure downgrades
	// to silent playback.
	audio := p.startAudio(ctx, path)
	defer audio.Stop()

	status, frames, err := runFrameLoop(ctx, stream, viewer, interval)
	if err != nil {
		metrics.PlaybackSessionsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.PlaybackSessionsTotal.WithLabelValues(status).Inc()
	metrics.PlaybackSessionDuration.Observe(time.Since(start).Seconds())
	logging.Info("Playback of %s ended (%s) after %d frames", filepath.Base(path), status, frames)
	return nil
}

// runFrameLoop paces frames to the wall clock. It ends on stream EOF
// ("completed") or when the viewer or context goes away ("stopped").
func runFrameLoop(ctx context.Context, stream frameSource, viewer Viewer, interval time.Duration) (string, int, error) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	frames := 0
	for {
		if viewer.Closed() {
			return "stopped", frames, nil
		}

		frame, err := stream.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "completed", frames, nil
			}
			return "", frames, fmt.Errorf("decode frame %d: %w", frames, err)
		}

		if err := viewer.Present(frame); err != nil {
			logging.Debug("Viewer rejected frame %d: %v", frames, err)
			return "stopped", frames, nil
		}
		frames++
		metrics.PlaybackFramesTotal.Inc()

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return "stopped", frames, nil
		}
	}
}

// frameInterval converts a frame rate to the per-frame delay, falling
// back to DefaultFPS for unreported rates.
func frameInterval(fps float64) time.Duration {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Duration(float64(time.Second) / fps)
}
