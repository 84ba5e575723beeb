package preview

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"os"

	"media-sorter/internal/logging"

	"github.com/disintegration/imaging"
)

// fitMargin is the total breathing room kept between the scaled media
// and the viewport edges.
const fitMargin = 20

// loadStill decodes a still image, trying the decoders from cheapest to
// most forgiving: libvips (decode-time shrink, native HEIC), then the
// pure-Go imaging decoders, then ffmpeg as a last resort.
func (r *Renderer) loadStill(ctx context.Context, path string, availWidth, availHeight int) (image.Image, error) {
	if IsVipsAvailable() {
		img, err := LoadImageWithVips(path, availWidth, availHeight)
		if err == nil {
			return img, nil
		}
		logging.Debug("vips decode failed for %s: %v, trying imaging", path, err)
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err == nil {
		return img, nil
	}

	if format, sniffErr := sniffFormat(path); sniffErr == nil {
		logging.Debug("imaging.Open failed for %s (detected format: %s): %v, trying ffmpeg fallback", path, format, err)
	} else {
		logging.Debug("imaging.Open failed for %s: %v, trying ffmpeg fallback", path, err)
	}

	img, err = r.trans.FirstFrame(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("all image decode methods failed for %s: %w", path, err)
	}
	return img, nil
}

// flattenOpaque composites an image with transparency onto a white
// background. Opaque images pass through untouched.
func flattenOpaque(img image.Image) image.Image {
	if op, ok := img.(interface{ Opaque() bool }); ok && op.Opaque() {
		return img
	}
	b := img.Bounds()
	base := imaging.New(b.Dx(), b.Dy(), color.White)
	return imaging.Overlay(base, img, image.Point{}, 1.0)
}

// fitWithin scales an image, preserving aspect ratio, so it fits inside
// the viewport minus the margin. Small images scale up, large ones
// down.
func fitWithin(img image.Image, targetWidth, targetHeight int) image.Image {
	availW := max(targetWidth-fitMargin, 1)
	availH := max(targetHeight-fitMargin, 1)

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return img
	}

	scale := math.Min(float64(availW)/float64(w), float64(availH)/float64(h))
	newW := max(int(float64(w)*scale), 1)
	newH := max(int(float64(h)*scale), 1)
	if newW == w && newH == h {
		return img
	}

	return imaging.Resize(img, newW, newH, imaging.Lanczos)
}

// sniffFormat identifies a file's real format from its magic bytes,
// for diagnostics when decoding fails on a misleading extension.
func sniffFormat(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	header := make([]byte, 16)
	n, err := file.Read(header)
	if err != nil {
		return "", err
	}
	header = header[:n]

	switch {
	case len(header) >= 3 && header[0] == 0xFF && header[1] == 0xD8 && header[2] == 0xFF:
		return "jpeg", nil
	case len(header) >= 4 && header[0] == 0x89 && header[1] == 0x50 && header[2] == 0x4E && header[3] == 0x47:
		return "png", nil
	case len(header) >= 4 && header[0] == 0x47 && header[1] == 0x49 && header[2] == 0x46 && header[3] == 0x38:
		return "gif", nil
	case len(header) >= 2 && header[0] == 0x42 && header[1] == 0x4D:
		return "bmp", nil
	case len(header) >= 12 && header[4] == 0x66 && header[5] == 0x74 && header[6] == 0x79 && header[7] == 0x70:
		brand := string(header[8:12])
		switch brand {
		case "heic", "heix", "hevc", "hevx", "mif1", "msf1":
			return "heif", nil
		case "qt  ":
			return "quicktime", nil
		}
		return "mp4-container", nil
	}

	return "unknown", nil
}
