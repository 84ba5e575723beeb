package transcoder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os/exec"
	"sync"

	"media-sorter/internal/logging"
)

// FirstFrame decodes the first frame of a file into an image. It is
// used for video preview thumbnails, and doubles as the last-resort
// decoder for still formats the native loaders cannot read.
func (t *Transcoder) FirstFrame(ctx context.Context, filePath string) (image.Image, error) {
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-i", filePath,
		"-vframes", "1",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-",
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("extract frame from %s: %w - %s", filePath, err, stderr.String())
	}

	img, err := png.Decode(&stdout)
	if err != nil {
		return nil, fmt.Errorf("decode extracted frame from %s: %w", filePath, err)
	}
	return img, nil
}

// FrameStream is a running ffmpeg decode emitting fixed-size RGBA
// frames from its stdout pipe. Reads pace the decoder: when the
// consumer sleeps between frames, ffmpeg blocks on the full pipe
// instead of racing ahead.
type FrameStream struct {
	cmd       *exec.Cmd
	stdout    io.ReadCloser
	stderr    *bytes.Buffer
	width     int
	height    int
	t         *Transcoder
	key       string
	closeOnce sync.Once
}

// OpenFrameStream starts decoding filePath into raw RGBA frames at the
// given dimensions, which must match the probed stream size. Close must
// be called on every path once the stream is no longer needed.
func (t *Transcoder) OpenFrameStream(ctx context.Context, filePath string, width, height int) (*FrameStream, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame dimensions %dx%d", width, height)
	}

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-i", filePath,
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-",
	)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("create stdout pipe: %w", err)
	}

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start ffmpeg: %w", err)
	}

	key := "frames:" + filePath
	t.track(key, cmd)
	logging.Debug("Opened frame stream for %s (%dx%d)", filePath, width, height)

	return &FrameStream{
		cmd:    cmd,
		stdout: stdout,
		stderr: &stderr,
		width:  width,
		height: height,
		t:      t,
		key:    key,
	}, nil
}

// Next returns the next decoded frame. io.EOF signals the normal end of
// the video; a trailing partial frame is treated the same way.
func (fs *FrameStream) Next() (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, fs.width, fs.height))
	if _, err := io.ReadFull(fs.stdout, img.Pix); err != nil {
		if err == io.EOF || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read frame: %w", err)
	}
	return img, nil
}

// Close stops the decoder and reaps the child process. Safe to call
// more than once.
func (fs *FrameStream) Close() error {
	fs.closeOnce.Do(func() {
		fs.t.untrack(fs.key)
		_ = fs.stdout.Close()
		if fs.cmd.Process != nil {
			_ = fs.cmd.Process.Kill()
		}
		if err := fs.cmd.Wait(); err != nil {
			// Expected when we killed a still-running decode.
			logging.Debug("Frame stream %s exited: %v", fs.key, err)
		}
	})
	return nil
}
