package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/parallel"
	"github.com/lucasb-eyer/go-colorful"
)

// SplitHSV decomposes a color image into hue, saturation and value planes.
//
// All three channels are normalized to [0,1]. Hue is circular: 0 and 1 are
// the same red, so color bands crossing the boundary must be tested with
// wraparound (see detection.ClassifyInfection). Giemsa-stained parasites sit
// in the purple/magenta hue band, which is why the infection classifier works
// in this space rather than RGB.
func SplitHSV(img image.Image) (hue, sat, val [][]float64) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	hue = newPlane(width, height)
	sat = newPlane(width, height)
	val = newPlane(width, height)

	parallel.Line(height, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < width; x++ {
				r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
				c := colorful.Color{
					R: float64(r>>8) / 255.0,
					G: float64(g>>8) / 255.0,
					B: float64(b>>8) / 255.0,
				}
				h, s, v := c.Hsv()
				hue[y][x] = h / 360.0
				sat[y][x] = s
				val[y][x] = v
			}
		}
	})
	return hue, sat, val
}
