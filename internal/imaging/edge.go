package imaging

import (
	"fmt"
	"math"

	"github.com/anthonynsimon/bild/parallel"
)

// gradientEpsilon is far below the smallest real gradient a [0,1] plane
// quantized from 8-bit pixels can produce (1/255 per kernel tap), but above
// the float64 cancellation residue of a uniform neighborhood.
const gradientEpsilon = 1e-9

// Sobel computes the gradient magnitude of a grayscale plane.
//
// The standard 3x3 Sobel operators are applied in X and Y and combined as
// sqrt(Gx² + Gy²), so every output value is non-negative. Border pixels use
// clamped (replicated) edge values.
//
// A uniform input produces an all-zero magnitude plane; callers treat that as
// a valid degenerate case, not a failure. The kernel sums cancel only
// approximately in floating point (residues around 1e-16 for most gray
// values), so magnitudes below a small epsilon are snapped to zero. Without
// the snap, the relative threshold in Binarize would latch onto the residue
// noise of a featureless image and mark most of it foreground.
func Sobel(gray [][]float64) [][]float64 {
	width, height := planeDims(gray)
	magnitude := newPlane(width, height)
	if width == 0 || height == 0 {
		return magnitude
	}

	sobelX := [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY := [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}

	parallel.Line(height, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < width; x++ {
				var gx, gy float64
				for ky := -1; ky <= 1; ky++ {
					for kx := -1; kx <= 1; kx++ {
						py := clamp(y+ky, 0, height-1)
						px := clamp(x+kx, 0, width-1)
						gx += gray[py][px] * sobelX[ky+1][kx+1]
						gy += gray[py][px] * sobelY[ky+1][kx+1]
					}
				}
				m := math.Sqrt(gx*gx + gy*gy)
				if m < gradientEpsilon {
					m = 0
				}
				magnitude[y][x] = m
			}
		}
	})
	return magnitude
}

// Binarize turns a grayscale plane into a denoised foreground mask.
//
// It computes the Sobel edge map, thresholds it at max(edges) × multiplier
// (pixels strictly above the threshold become foreground), and cleans the
// result with morphological closing then opening using a disk of radius 1.
// Closing runs first so thin cell-boundary bridges survive before opening
// strips isolated noise.
//
// The threshold is relative and recomputed per image; illumination varies
// between smear photographs, so an absolute cutoff would not transfer.
//
// Returns the mask and the raw edge map (kept for diagnostics). On a uniform
// image the threshold is zero, nothing exceeds it, and the mask is
// all-background, a valid outcome rather than an error.
//
// The multiplier must lie in (0,1); anything else is a configuration error.
func Binarize(gray [][]float64, multiplier float64) ([][]bool, [][]float64, error) {
	if multiplier <= 0 || multiplier >= 1 {
		return nil, nil, fmt.Errorf("binarize: threshold multiplier %g outside (0,1)", multiplier)
	}

	edges := Sobel(gray)
	width, height := planeDims(edges)

	var max float64
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if edges[y][x] > max {
				max = edges[y][x]
			}
		}
	}

	threshold := max * multiplier
	mask := newMask(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			mask[y][x] = edges[y][x] > threshold
		}
	}

	mask = Close(mask, 1)
	mask = Open(mask, 1)
	return mask, edges, nil
}

// MaskEdges extracts the boundary of a binary mask: foreground pixels with at
// least one background 4-neighbor. Pixels on the image border count as
// boundary when set. This is the per-class edge map handed to circle
// detection.
func MaskEdges(mask [][]bool) [][]bool {
	width, height := MaskDims(mask)
	edges := newMask(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !mask[y][x] {
				continue
			}
			if y == 0 || y == height-1 || x == 0 || x == width-1 ||
				!mask[y-1][x] || !mask[y+1][x] || !mask[y][x-1] || !mask[y][x+1] {
				edges[y][x] = true
			}
		}
	}
	return edges
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in convolution operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
