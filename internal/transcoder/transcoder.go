package transcoder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"media-sorter/internal/logging"
)

// ErrNoVideoStream indicates ffprobe found no video stream in the file.
var ErrNoVideoStream = errors.New("no video stream found")

// VideoInfo contains metadata about a video file.
type VideoInfo struct {
	Duration float64 // seconds
	Width    int
	Height   int
	Codec    string
	FPS      float64 // 0 when the container does not report a rate
}

// Transcoder manages ffmpeg processes. Long-running children (frame
// streams, audio extraction) are tracked so Cleanup can kill them on
// shutdown.
type Transcoder struct {
	processes map[string]*exec.Cmd
	processMu sync.Mutex
}

// New creates a new transcoder instance.
func New() *Transcoder {
	return &Transcoder{
		processes: make(map[string]*exec.Cmd),
	}
}

// Probe extracts video metadata using ffprobe.
func (t *Transcoder) Probe(ctx context.Context, filePath string) (*VideoInfo, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		filePath,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe error: %w - %s", err, stderr.String())
	}

	info, err := parseProbeOutput(stdout.Bytes())
	if err != nil {
		return nil, fmt.Errorf("parse ffprobe output for %s: %w", filePath, err)
	}
	return info, nil
}

// probeOutput mirrors the subset of ffprobe's JSON document we consume.
type probeOutput struct {
	Streams []probeStream `json:"streams"`
	Format  probeFormat   `json:"format"`
}

type probeStream struct {
	CodecType    string `json:"codec_type"`
	CodecName    string `json:"codec_name"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	RFrameRate   string `json:"r_frame_rate"`
	AvgFrameRate string `json:"avg_frame_rate"`
}

type probeFormat struct {
	Duration string `json:"duration"`
}

func parseProbeOutput(data []byte) (*VideoInfo, error) {
	var out probeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	var video *probeStream
	for i := range out.Streams {
		if out.Streams[i].CodecType == "video" {
			video = &out.Streams[i]
			break
		}
	}
	if video == nil {
		return nil, ErrNoVideoStream
	}

	info := &VideoInfo{
		Width:  video.Width,
		Height: video.Height,
		Codec:  video.CodecName,
	}

	info.FPS = parseFrameRate(video.RFrameRate)
	if info.FPS == 0 {
		info.FPS = parseFrameRate(video.AvgFrameRate)
	}

	if out.Format.Duration != "" {
		if d, err := strconv.ParseFloat(out.Format.Duration, 64); err == nil {
			info.Duration = d
		}
	}

	return info, nil
}

// parseFrameRate converts ffprobe's rational rate ("30000/1001") to a
// float. Returns 0 for empty, malformed, or zero-denominator input.
func parseFrameRate(rate string) float64 {
	if rate == "" {
		return 0
	}
	num, den, found := strings.Cut(rate, "/")
	if !found {
		f, err := strconv.ParseFloat(rate, 64)
		if err != nil || f < 0 {
			return 0
		}
		return f
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}
	if n < 0 {
		return 0
	}
	return n / d
}

// ExtractAudio writes the file's audio track to a temporary WAV file
// (PCM s16le, 44.1kHz stereo) and returns its path. The caller owns the
// file and must remove it. Files without an audio track return an error.
func (t *Transcoder) ExtractAudio(ctx context.Context, filePath string) (string, error) {
	tmp, err := os.CreateTemp("", "media-sorter-audio-*.wav")
	if err != nil {
		return "", fmt.Errorf("create temp audio file: %w", err)
	}
	tmpPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("close temp audio file: %w", err)
	}

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-i", filePath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", "44100",
		"-ac", "2",
		"-y",
		tmpPath,
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	key := "audio:" + filePath
	t.track(key, cmd)
	defer t.untrack(key)

	if err := cmd.Run(); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("audio extraction failed: %w - %s", err, stderr.String())
	}

	// ffmpeg exits zero but writes nothing useful for some broken
	// containers; treat an empty file the same as no audio.
	fi, err := os.Stat(tmpPath)
	if err != nil || fi.Size() == 0 {
		_ = os.Remove(tmpPath)
		return "", errors.New("audio extraction produced no output")
	}

	logging.Debug("Extracted audio from %s to %s (%d bytes)", filePath, tmpPath, fi.Size())
	return tmpPath, nil
}

func (t *Transcoder) track(key string, cmd *exec.Cmd) {
	t.processMu.Lock()
	t.processes[key] = cmd
	t.processMu.Unlock()
}

func (t *Transcoder) untrack(key string) {
	t.processMu.Lock()
	delete(t.processes, key)
	t.processMu.Unlock()
}

// activeProcesses returns the number of tracked ffmpeg children.
func (t *Transcoder) activeProcesses() int {
	t.processMu.Lock()
	defer t.processMu.Unlock()
	return len(t.processes)
}

// Cleanup stops all active ffmpeg processes. Called on shutdown so no
// children outlive the host.
func (t *Transcoder) Cleanup() {
	t.processMu.Lock()
	defer t.processMu.Unlock()

	for key, cmd := range t.processes {
		if cmd.Process != nil {
			logging.Info("Killing active ffmpeg process: %s", key)
			if err := cmd.Process.Kill(); err != nil {
				logging.Warn("Failed to kill ffmpeg process %s: %v", key, err)
			}
		}
		delete(t.processes, key)
	}
}
