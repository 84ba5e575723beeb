package preview

import (
	"bytes"
	"context"
	"crypto/md5"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"sync"
	"time"

	"media-sorter/internal/catalog"
	"media-sorter/internal/filesystem"
	"media-sorter/internal/logging"
	"media-sorter/internal/memory"
	"media-sorter/internal/metrics"
	"media-sorter/internal/transcoder"

	"github.com/disintegration/imaging"
)

// jpegQuality for cached preview output.
const jpegQuality = 85

// UnreadableError reports a media file that could not be decoded. The
// entry name travels with the error so callers can show it in place of
// the preview without losing navigation.
type UnreadableError struct {
	Name string
	Err  error
}

func (e *UnreadableError) Error() string {
	return fmt.Sprintf("unreadable media %s: %v", e.Name, e.Err)
}

func (e *UnreadableError) Unwrap() error { return e.Err }

// Renderer produces display-ready JPEG previews for catalog entries,
// backed by an on-disk cache keyed by path, viewport, and mtime.
type Renderer struct {
	cacheDir string
	trans    *transcoder.Transcoder
	monitor  *memory.Monitor

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

// NewRenderer creates a renderer caching into cacheDir. The monitor is
// optional; when set, background prewarming pauses under memory
// pressure.
func NewRenderer(cacheDir string, trans *transcoder.Transcoder, monitor *memory.Monitor) *Renderer {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		logging.Warn("Renderer: failed to create cache dir %s: %v", cacheDir, err)
	} else {
		logging.Debug("Renderer: cache dir: %s", cacheDir)
	}
	return &Renderer{
		cacheDir: cacheDir,
		trans:    trans,
		monitor:  monitor,
		locks:    make(map[string]*sync.Mutex),
	}
}

// Render returns JPEG bytes for the entry scaled to the viewport.
// Results are cached on disk; concurrent requests for the same key
// render once.
func (r *Renderer) Render(ctx context.Context, dir string, entry catalog.Entry, targetWidth, targetHeight int) ([]byte, error) {
	path := filepath.Join(dir, entry.Name)

	fi, err := filesystem.StatWithRetry(path, filesystem.DefaultRetryConfig())
	if err != nil {
		metrics.PreviewRendersTotal.WithLabelValues(string(entry.Kind), "error").Inc()
		return nil, &UnreadableError{Name: entry.Name, Err: err}
	}

	cachePath := r.cachePath(path, targetWidth, targetHeight, fi.ModTime())

	if data, err := os.ReadFile(cachePath); err == nil {
		metrics.PreviewCacheHitsTotal.Inc()
		logging.Debug("Preview cache hit: %s", entry.Name)
		return data, nil
	}
	metrics.PreviewCacheMissesTotal.Inc()

	lock := r.lockFor(cachePath)
	lock.Lock()
	defer lock.Unlock()

	// A concurrent caller may have rendered while we waited.
	if data, err := os.ReadFile(cachePath); err == nil {
		return data, nil
	}

	logging.Debug("Rendering preview: %s (%s, viewport %dx%d)", entry.Name, entry.Kind, targetWidth, targetHeight)

	start := time.Now()
	data, err := r.renderEntry(ctx, path, entry, targetWidth, targetHeight)
	if err != nil {
		metrics.PreviewRendersTotal.WithLabelValues(string(entry.Kind), "error").Inc()
		return nil, &UnreadableError{Name: entry.Name, Err: err}
	}
	metrics.PreviewRendersTotal.WithLabelValues(string(entry.Kind), "success").Inc()
	metrics.PreviewRenderDuration.Observe(time.Since(start).Seconds())

	if err := os.WriteFile(cachePath, data, 0644); err != nil {
		logging.Warn("Failed to cache preview %s: %v", cachePath, err)
	}

	return data, nil
}

// renderEntry decodes, scales, and for videos composites the badge.
func (r *Renderer) renderEntry(ctx context.Context, path string, entry catalog.Entry, targetWidth, targetHeight int) ([]byte, error) {
	availW := max(targetWidth-fitMargin, 1)
	availH := max(targetHeight-fitMargin, 1)

	var img image.Image
	var err error

	switch entry.Kind {
	case catalog.KindImage:
		img, err = r.loadStill(ctx, path, availW, availH)
	case catalog.KindVideo:
		img, err = r.trans.FirstFrame(ctx, path)
	default:
		return nil, fmt.Errorf("unsupported media kind: %s", entry.Kind)
	}
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, fmt.Errorf("decode returned nil image")
	}

	fitted := fitWithin(flattenOpaque(img), targetWidth, targetHeight)

	if entry.Kind == catalog.KindVideo {
		frame := imaging.Clone(fitted)
		if err := drawBadge(frame); err != nil {
			return nil, err
		}
		fitted = frame
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, fitted, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) cachePath(path string, width, height int, modTime time.Time) string {
	hash := md5.Sum([]byte(fmt.Sprintf("%s|%d|%d|%d", path, width, height, modTime.UnixNano())))
	return filepath.Join(r.cacheDir, fmt.Sprintf("%x.jpg", hash))
}

// lockFor returns the per-key render lock, creating it on first use.
func (r *Renderer) lockFor(key string) *sync.Mutex {
	r.locksMu.Lock()
	defer r.locksMu.Unlock()
	if m, ok := r.locks[key]; ok {
		return m
	}
	m := &sync.Mutex{}
	r.locks[key] = m
	return m
}
