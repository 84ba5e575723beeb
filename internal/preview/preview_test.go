package preview

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"media-sorter/internal/catalog"
	"media-sorter/internal/transcoder"
)

func writeBytes(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func writeTestPNG(t *testing.T, dir, name string, width, height int) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("creating %s: %v", name, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encoding %s: %v", name, err)
	}
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	return NewRenderer(t.TempDir(), transcoder.New(), nil)
}

func TestNewRendererCreatesCacheDir(t *testing.T) {
	cacheDir := filepath.Join(t.TempDir(), "previews")

	NewRenderer(cacheDir, transcoder.New(), nil)

	fi, err := os.Stat(cacheDir)
	if err != nil || !fi.IsDir() {
		t.Errorf("Expected cache dir to be created, stat: %v", err)
	}
}

func TestRenderImage(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, dir, "photo.png", 100, 50)

	r := newTestRenderer(t)
	entry := catalog.Entry{Name: "photo.png", Kind: catalog.KindImage}

	data, err := r.Render(context.Background(), dir, entry, 220, 220)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Rendered preview is not valid JPEG: %v", err)
	}

	// 100x50 into a 220x220 viewport with the margin leaves 200x200,
	// so the image doubles.
	if img.Bounds().Dx() != 200 || img.Bounds().Dy() != 100 {
		t.Errorf("Expected 200x100 preview, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestRenderCachesResult(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, dir, "photo.png", 40, 40)

	r := newTestRenderer(t)
	entry := catalog.Entry{Name: "photo.png", Kind: catalog.KindImage}

	first, err := r.Render(context.Background(), dir, entry, 200, 200)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	cached, err := os.ReadDir(r.cacheDir)
	if err != nil {
		t.Fatalf("reading cache dir: %v", err)
	}
	if len(cached) != 1 {
		t.Fatalf("Expected 1 cached preview, got %d", len(cached))
	}

	second, err := r.Render(context.Background(), dir, entry, 200, 200)
	if err != nil {
		t.Fatalf("second Render() error = %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("Expected cache hit to return identical bytes")
	}
}

func TestRenderMissingFile(t *testing.T) {
	r := newTestRenderer(t)
	entry := catalog.Entry{Name: "gone.jpg", Kind: catalog.KindImage}

	_, err := r.Render(context.Background(), t.TempDir(), entry, 200, 200)

	var unreadable *UnreadableError
	if !errors.As(err, &unreadable) {
		t.Fatalf("Expected UnreadableError, got %v", err)
	}
	if unreadable.Name != "gone.jpg" {
		t.Errorf("Expected error to carry entry name, got %q", unreadable.Name)
	}
}

func TestRenderCorruptImage(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.jpg"), []byte{}, 0644); err != nil {
		t.Fatal(err)
	}

	r := newTestRenderer(t)
	entry := catalog.Entry{Name: "broken.jpg", Kind: catalog.KindImage}

	_, err := r.Render(context.Background(), dir, entry, 200, 200)

	var unreadable *UnreadableError
	if !errors.As(err, &unreadable) {
		t.Fatalf("Expected UnreadableError for zero-byte file, got %v", err)
	}
}

func TestRenderUndecodableVideo(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.mov"), []byte("not a video"), 0644); err != nil {
		t.Fatal(err)
	}

	r := newTestRenderer(t)
	entry := catalog.Entry{Name: "broken.mov", Kind: catalog.KindVideo}

	_, err := r.Render(context.Background(), dir, entry, 200, 200)

	var unreadable *UnreadableError
	if !errors.As(err, &unreadable) {
		t.Fatalf("Expected UnreadableError for undecodable video, got %v", err)
	}
}

func TestCachePathVariesByInput(t *testing.T) {
	r := newTestRenderer(t)
	now := time.Now()

	base := r.cachePath("/media/a.jpg", 800, 600, now)

	if filepath.Ext(base) != ".jpg" {
		t.Errorf("Expected .jpg cache entry, got %s", base)
	}
	if filepath.Dir(base) != r.cacheDir {
		t.Errorf("Expected cache entry under %s, got %s", r.cacheDir, base)
	}

	if got := r.cachePath("/media/a.jpg", 800, 600, now); got != base {
		t.Error("Expected identical inputs to map to the same cache path")
	}
	if got := r.cachePath("/media/a.jpg", 801, 600, now); got == base {
		t.Error("Expected viewport change to change the cache path")
	}
	if got := r.cachePath("/media/a.jpg", 800, 600, now.Add(time.Second)); got == base {
		t.Error("Expected mtime change to change the cache path")
	}
	if got := r.cachePath("/media/b.jpg", 800, 600, now); got == base {
		t.Error("Expected path change to change the cache path")
	}
}

func TestPrewarm(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, dir, "a.png", 30, 30)
	writeTestPNG(t, dir, "b.png", 30, 30)
	writeTestPNG(t, dir, "c.png", 30, 30)

	r := newTestRenderer(t)
	entries := []catalog.Entry{
		{Name: "a.png", Kind: catalog.KindImage},
		{Name: "b.png", Kind: catalog.KindImage},
		{Name: "c.png", Kind: catalog.KindImage},
	}

	r.Prewarm(context.Background(), dir, entries, 200, 200)

	cached, err := os.ReadDir(r.cacheDir)
	if err != nil {
		t.Fatalf("reading cache dir: %v", err)
	}
	if len(cached) != 3 {
		t.Errorf("Expected 3 cached previews, got %d", len(cached))
	}
}

func TestPrewarmCanceled(t *testing.T) {
	dir := t.TempDir()
	writeTestPNG(t, dir, "a.png", 30, 30)

	r := newTestRenderer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r.Prewarm(ctx, dir, []catalog.Entry{{Name: "a.png", Kind: catalog.KindImage}}, 200, 200)

	cached, err := os.ReadDir(r.cacheDir)
	if err != nil {
		t.Fatalf("reading cache dir: %v", err)
	}
	if len(cached) != 0 {
		t.Errorf("Expected no previews after canceled prewarm, got %d", len(cached))
	}
}

func TestRenderVideoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping ffmpeg test in short mode")
	}
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not found, skipping integration test")
	}

	dir := t.TempDir()
	videoPath := filepath.Join(dir, "clip.mov")
	gen := exec.Command("ffmpeg",
		"-f", "lavfi", "-i", "color=c=red:s=320x240:d=1:r=10",
		"-pix_fmt", "yuv420p", "-y", videoPath,
	)
	if out, err := gen.CombinedOutput(); err != nil {
		t.Skipf("could not synthesize test video: %v (%s)", err, out)
	}

	r := newTestRenderer(t)
	entry := catalog.Entry{Name: "clip.mov", Kind: catalog.KindVideo}

	data, err := r.Render(context.Background(), dir, entry, 800, 600)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Rendered preview is not valid JPEG: %v", err)
	}

	// The badge's play icon sits in the lower-left corner and is
	// blue-dominant even after JPEG round-tripping.
	h := img.Bounds().Dy()
	pr, _, pb, _ := img.At(badgeMargin+33, h-badgeMargin-badgeHeight+35).RGBA()
	if pb <= pr {
		t.Errorf("Expected blue-dominant play icon pixel, got r=%d b=%d", pr, pb)
	}
}
