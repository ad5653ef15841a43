// Package render draws detection results and diagnostic overlays. It is a
// presentation adapter: nothing in the detection pipeline depends on it.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/blend"

	"github.com/parasight/celldetect/internal/detection"
)

// Ring colors: a dark outer ring at r+1 under a bright ring at r makes the
// marker readable on both pale and stained tissue.
var (
	infectedOuter = color.RGBA{R: 120, A: 255}
	infectedInner = color.RGBA{R: 255, G: 40, B: 40, A: 255}
	normalOuter   = color.RGBA{G: 120, A: 255}
	normalInner   = color.RGBA{G: 255, B: 80, A: 255}
)

// Annotate renders detections onto a copy of the source image: red ring
// pairs for infected cells, green for normal. Rings are clipped to the
// image bounds.
func Annotate(src image.Image, infected, normal []detection.Circle) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, src.Bounds().Dx(), src.Bounds().Dy()))
	draw.Draw(out, out.Bounds(), src, src.Bounds().Min, draw.Src)

	for _, c := range normal {
		drawRing(out, c.Col, c.Row, c.Radius+1, normalOuter)
		drawRing(out, c.Col, c.Row, c.Radius, normalInner)
	}
	for _, c := range infected {
		drawRing(out, c.Col, c.Row, c.Radius+1, infectedOuter)
		drawRing(out, c.Col, c.Row, c.Radius, infectedInner)
	}
	return out
}

// drawRing plots a circle perimeter with the midpoint circle algorithm.
func drawRing(img *image.RGBA, cx, cy, r int, col color.RGBA) {
	if r < 0 {
		return
	}
	set := func(x, y int) {
		if image.Pt(x, y).In(img.Bounds()) {
			img.SetRGBA(x, y, col)
		}
	}

	x := r
	y := 0
	err := 0
	for x >= y {
		set(cx+x, cy+y)
		set(cx+y, cy+x)
		set(cx-y, cy+x)
		set(cx-x, cy+y)
		set(cx-x, cy-y)
		set(cx-y, cy-x)
		set(cx+y, cy-x)
		set(cx+x, cy-y)

		if err <= 0 {
			y++
			err += 2*y + 1
		}
		if err > 0 {
			x--
			err -= 2*x + 1
		}
	}
}

// OverlayMask blends a tinted rendering of a binary mask over the source
// image. Opacity is in [0,1]; foreground pixels get the tint at that opacity,
// background pixels stay untouched.
func OverlayMask(src image.Image, mask [][]bool, tint color.RGBA, opacity float64) *image.RGBA {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}

	bounds := image.Rect(0, 0, src.Bounds().Dx(), src.Bounds().Dy())
	fg := image.NewRGBA(bounds)
	// blend.Normal reads channels as straight alpha, so the tint is stored
	// unpremultiplied.
	alpha := uint8(opacity * 255)
	for y := range mask {
		for x := range mask[y] {
			if mask[y][x] {
				fg.SetRGBA(x, y, color.RGBA{R: tint.R, G: tint.G, B: tint.B, A: alpha})
			}
		}
	}

	base := image.NewRGBA(bounds)
	draw.Draw(base, bounds, src, src.Bounds().Min, draw.Src)
	return blend.Normal(base, fg)
}

// MaskImage renders a binary mask as a grayscale image, foreground white.
// Handy for dumping intermediate masks to disk.
func MaskImage(mask [][]bool) *image.Gray {
	height := len(mask)
	width := 0
	if height > 0 {
		width = len(mask[0])
	}
	out := image.NewGray(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if mask[y][x] {
				out.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return out
}
