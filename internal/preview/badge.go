package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Badge geometry and palette. The panel sits in the lower-left corner
// of the rendered frame and is the visual cue that an entry is playable.
const (
	badgeWidth  = 320
	badgeHeight = 70
	badgeMargin = 30
	badgeRadius = 12

	badgeTitle = "VIDEO"
	badgeHint  = "Press Space to play"
)

var (
	badgePanelColor = color.NRGBA{R: 20, G: 20, B: 20, A: 200}
	badgeIconColor  = color.NRGBA{R: 0x3B, G: 0x82, B: 0xF6, A: 0xFF}
	badgeTitleColor = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	badgeHintColor  = color.NRGBA{R: 0xA3, G: 0xA3, B: 0xA3, A: 0xFF}
)

var (
	badgeFontOnce sync.Once
	badgeFontErr  error
	titleFace     font.Face
	hintFace      font.Face
)

// badgeFaces lazily builds the two text faces from the bundled Go
// Regular font so rendering never depends on system fonts.
func badgeFaces() (font.Face, font.Face, error) {
	badgeFontOnce.Do(func() {
		parsed, err := opentype.Parse(goregular.TTF)
		if err != nil {
			badgeFontErr = fmt.Errorf("parse badge font: %w", err)
			return
		}
		titleFace, err = opentype.NewFace(parsed, &opentype.FaceOptions{Size: 20, DPI: 72, Hinting: font.HintingFull})
		if err != nil {
			badgeFontErr = fmt.Errorf("build title face: %w", err)
			return
		}
		hintFace, err = opentype.NewFace(parsed, &opentype.FaceOptions{Size: 14, DPI: 72, Hinting: font.HintingFull})
		if err != nil {
			badgeFontErr = fmt.Errorf("build hint face: %w", err)
		}
	})
	return titleFace, hintFace, badgeFontErr
}

// drawBadge composites the playback badge onto a video frame in place.
// Frames smaller than the panel get a clipped badge rather than none.
func drawBadge(frame *image.NRGBA) error {
	title, hint, err := badgeFaces()
	if err != nil {
		return err
	}

	b := frame.Bounds()
	origin := image.Pt(b.Min.X+badgeMargin, b.Max.Y-badgeHeight-badgeMargin)
	panel := image.Rect(0, 0, badgeWidth, badgeHeight).Add(origin)

	mask := roundedRectMask(badgeWidth, badgeHeight, badgeRadius)
	draw.DrawMask(frame, panel, image.NewUniform(badgePanelColor), image.Point{}, mask, image.Point{}, draw.Over)

	fillTriangle(frame,
		origin.Add(image.Pt(25, 20)),
		origin.Add(image.Pt(25, 50)),
		origin.Add(image.Pt(50, 35)),
		badgeIconColor,
	)

	drawText(frame, title, badgeTitleColor, origin.Add(image.Pt(70, 30)), badgeTitle)
	drawText(frame, hint, badgeHintColor, origin.Add(image.Pt(70, 54)), badgeHint)
	return nil
}

func drawText(dst draw.Image, face font.Face, c color.Color, baseline image.Point, s string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(baseline.X, baseline.Y),
	}
	d.DrawString(s)
}

// roundedRectMask builds an alpha mask for a w x h rectangle with
// quarter-circle corners of the given radius.
func roundedRectMask(w, h, radius int) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	r2 := radius * radius
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cx, cy := x, y
			if x < radius {
				cx = radius
			} else if x >= w-radius {
				cx = w - radius - 1
			}
			if y < radius {
				cy = radius
			} else if y >= h-radius {
				cy = h - radius - 1
			}
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r2 {
				mask.SetAlpha(x, y, color.Alpha{A: 0xFF})
			}
		}
	}
	return mask
}

// fillTriangle rasterizes a solid triangle by testing each pixel of the
// bounding box. Fine for glyph-sized shapes.
func fillTriangle(dst *image.NRGBA, p1, p2, p3 image.Point, c color.Color) {
	minX := min(p1.X, p2.X, p3.X)
	maxX := max(p1.X, p2.X, p3.X)
	minY := min(p1.Y, p2.Y, p3.Y)
	maxY := max(p1.Y, p2.Y, p3.Y)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if pointInTriangle(x, y, p1, p2, p3) {
				dst.Set(x, y, c)
			}
		}
	}
}

func pointInTriangle(x, y int, a, b, c image.Point) bool {
	d1 := edgeSign(x, y, a, b)
	d2 := edgeSign(x, y, b, c)
	d3 := edgeSign(x, y, c, a)

	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func edgeSign(x, y int, a, b image.Point) int {
	return (x-b.X)*(a.Y-b.Y) - (a.X-b.X)*(y-b.Y)
}
