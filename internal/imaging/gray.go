package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/parallel"
	"github.com/disintegration/imaging"
)

// GrayPlane converts an image to a grayscale intensity plane.
//
// Values are normalized to [0,1]. The conversion uses the same luminance
// weighting as imaging.Grayscale (0.299*R + 0.587*G + 0.114*B), so results
// match what a human-facing grayscale rendering of the smear would show.
//
// Rows are filled in parallel; the output is identical regardless of how the
// work is scheduled.
func GrayPlane(img image.Image) [][]float64 {
	gray := imaging.Grayscale(img)
	width := gray.Bounds().Dx()
	height := gray.Bounds().Dy()

	plane := newPlane(width, height)
	parallel.Line(height, func(start, end int) {
		for y := start; y < end; y++ {
			row := plane[y]
			for x := 0; x < width; x++ {
				// Grayscale output has R == G == B; read the red channel.
				row[x] = float64(gray.Pix[y*gray.Stride+x*4]) / 255.0
			}
		}
	})
	return plane
}

// newPlane allocates a zeroed height×width float plane.
func newPlane(width, height int) [][]float64 {
	plane := make([][]float64, height)
	for y := range plane {
		plane[y] = make([]float64, width)
	}
	return plane
}

// newMask allocates a zeroed height×width binary mask.
func newMask(width, height int) [][]bool {
	mask := make([][]bool, height)
	for y := range mask {
		mask[y] = make([]bool, width)
	}
	return mask
}

// planeDims returns (width, height) of a plane. An empty plane is (0, 0).
func planeDims(plane [][]float64) (int, int) {
	if len(plane) == 0 {
		return 0, 0
	}
	return len(plane[0]), len(plane)
}

// MaskDims returns (width, height) of a binary mask. An empty mask is (0, 0).
func MaskDims(mask [][]bool) (int, int) {
	if len(mask) == 0 {
		return 0, 0
	}
	return len(mask[0]), len(mask)
}
