package preview

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
)

func TestFitWithin(t *testing.T) {
	tests := []struct {
		name         string
		imgW, imgH   int
		targetW      int
		targetH      int
		wantW, wantH int
	}{
		{"UpscaleSmall", 100, 50, 220, 220, 200, 100},
		{"DownscaleLarge", 4000, 2000, 820, 620, 800, 400},
		{"ExactFit", 200, 100, 220, 120, 200, 100},
		{"PortraitIntoLandscape", 300, 600, 820, 620, 300, 600},
		{"TinyViewportClamps", 100, 50, 10, 10, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := imaging.New(tt.imgW, tt.imgH, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
			got := fitWithin(img, tt.targetW, tt.targetH)

			if got.Bounds().Dx() != tt.wantW || got.Bounds().Dy() != tt.wantH {
				t.Errorf("fitWithin(%dx%d, %dx%d) = %dx%d, want %dx%d",
					tt.imgW, tt.imgH, tt.targetW, tt.targetH,
					got.Bounds().Dx(), got.Bounds().Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestFlattenOpaqueTransparentImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	// Remaining pixels stay fully transparent.

	got := flattenOpaque(img)

	flat, ok := got.(interface{ Opaque() bool })
	if !ok || !flat.Opaque() {
		t.Fatal("Expected flattened image to be opaque")
	}

	r, g, b, _ := got.At(1, 1).RGBA()
	if r != 0xFFFF || g != 0xFFFF || b != 0xFFFF {
		t.Errorf("Expected transparent pixel to flatten to white, got r=%d g=%d b=%d", r, g, b)
	}

	r, _, _, _ = got.At(0, 0).RGBA()
	if r != 0xFFFF {
		t.Errorf("Expected solid pixel to keep its color, got r=%d", r)
	}
}

func TestFlattenOpaquePassthrough(t *testing.T) {
	img := imaging.New(4, 4, color.NRGBA{R: 50, G: 60, B: 70, A: 255})

	got := flattenOpaque(img)

	if got != image.Image(img) {
		t.Error("Expected opaque image to pass through unchanged")
	}
}

func TestSniffFormat(t *testing.T) {
	tests := []struct {
		name   string
		header []byte
		want   string
	}{
		{"JPEG", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, "jpeg"},
		{"PNG", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0, 0, 0, 0, 0}, "png"},
		{"GIF", []byte("GIF89a0000000000"), "gif"},
		{"BMP", []byte{0x42, 0x4D, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, "bmp"},
		{"HEIC", append([]byte{0, 0, 0, 0x18}, []byte("ftypheic0000")...), "heif"},
		{"QuickTime", append([]byte{0, 0, 0, 0x14}, []byte("ftypqt  0000")...), "quicktime"},
		{"MP4", append([]byte{0, 0, 0, 0x18}, []byte("ftypisom0000")...), "mp4-container"},
		{"Unknown", []byte("plain text here!"), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeBytes(t, tt.name, tt.header)
			got, err := sniffFormat(path)
			if err != nil {
				t.Fatalf("sniffFormat() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("sniffFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSniffFormatMissingFile(t *testing.T) {
	if _, err := sniffFormat("/nonexistent/file.bin"); err == nil {
		t.Error("Expected error for missing file")
	}
}
