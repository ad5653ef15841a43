package detection

import (
	"fmt"
	"image"

	img "github.com/parasight/celldetect/internal/imaging"
)

// InfectionOptions configures the HSV band-pass infection classifier.
//
// All channel bounds are in [0,1]. The hue band is circular: HueMin > HueMax
// means the band wraps across the 0/1 boundary (Giemsa purple sits near it),
// accepting hues ≥ HueMin or ≤ HueMax. It is never treated as an empty range.
type InfectionOptions struct {
	HueMin float64
	HueMax float64
	SatMin float64
	SatMax float64
	ValMin float64
	ValMax float64

	// CloseRadius and OpenRadius are the disk radii for mask cleanup,
	// applied in that order. Zero disables the corresponding operation.
	CloseRadius int
	OpenRadius  int

	// MinArea drops connected stained regions smaller than this many
	// pixels; speckle can pass the color filter but is too small to be a
	// real parasite.
	MinArea int
}

// InfectionChannels carries every intermediate artifact of the classifier for
// diagnostic rendering. Downstream detection logic consumes only the final
// mask, never these.
type InfectionChannels struct {
	Hue [][]float64
	Sat [][]float64
	Val [][]float64

	// HueMask, SatMask and ValMask are the per-channel range filters on
	// the whole image, before the cell mask is applied. Comparing them
	// against BandMask shows which channel rejected a pixel.
	HueMask [][]bool
	SatMask [][]bool
	ValMask [][]bool

	// BandMask is the raw three-channel band-pass intersected with the
	// cell mask, before morphology.
	BandMask [][]bool

	// CleanedMask is BandMask after closing and opening, before the
	// minimum-area filter.
	CleanedMask [][]bool
}

// ClassifyInfection marks the pixels of a smear image that look parasitized.
//
// The image is decomposed into HSV planes; each channel is independently
// range-filtered and the three masks are ANDed together, then intersected
// with cellMask so infection is only flagged where a cell was already
// found. Morphological closing then opening cleans the mask, and connected
// regions below MinArea are discarded.
//
// The returned mask is always a subset of cellMask: the classifier removes
// pixels, never adds ones outside it.
func ClassifyInfection(src image.Image, cellMask [][]bool, opts InfectionOptions) ([][]bool, *InfectionChannels, error) {
	bounds := src.Bounds()
	width, height := img.MaskDims(cellMask)
	if width != bounds.Dx() || height != bounds.Dy() {
		return nil, nil, fmt.Errorf("classify: cell mask %dx%d does not match image %dx%d",
			width, height, bounds.Dx(), bounds.Dy())
	}
	if opts.MinArea < 0 {
		return nil, nil, fmt.Errorf("classify: min area %d must not be negative", opts.MinArea)
	}
	if opts.CloseRadius < 0 || opts.OpenRadius < 0 {
		return nil, nil, fmt.Errorf("classify: morphology radii (%d, %d) must not be negative",
			opts.CloseRadius, opts.OpenRadius)
	}

	hue, sat, val := img.SplitHSV(src)

	hueMask := make([][]bool, height)
	satMask := make([][]bool, height)
	valMask := make([][]bool, height)
	band := make([][]bool, height)
	for y := 0; y < height; y++ {
		hueMask[y] = make([]bool, width)
		satMask[y] = make([]bool, width)
		valMask[y] = make([]bool, width)
		band[y] = make([]bool, width)
		for x := 0; x < width; x++ {
			hueMask[y][x] = hueInBand(hue[y][x], opts.HueMin, opts.HueMax)
			satMask[y][x] = sat[y][x] >= opts.SatMin && sat[y][x] <= opts.SatMax
			valMask[y][x] = val[y][x] >= opts.ValMin && val[y][x] <= opts.ValMax
			band[y][x] = cellMask[y][x] && hueMask[y][x] && satMask[y][x] && valMask[y][x]
		}
	}

	cleaned := img.Open(img.Close(band, opts.CloseRadius), opts.OpenRadius)
	// Closing can grow the mask past cell boundaries; clip it back so the
	// subset invariant holds.
	cleaned = img.Intersect(cleaned, cellMask)

	final := img.FilterArea(cleaned, opts.MinArea)

	return final, &InfectionChannels{
		Hue:         hue,
		Sat:         sat,
		Val:         val,
		HueMask:     hueMask,
		SatMask:     satMask,
		ValMask:     valMask,
		BandMask:    band,
		CleanedMask: cleaned,
	}, nil
}

// hueInBand tests a circular hue band. When min > max the band wraps across
// the 0/1 boundary and accepts either side of it.
func hueInBand(h, min, max float64) bool {
	if min > max {
		return h >= min || h <= max
	}
	return h >= min && h <= max
}
