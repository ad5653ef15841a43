package pipeline

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/parasight/celldetect/internal/detection"
)

// Diagnostics carries every intermediate artifact of a run for inspection.
// Core stages never read from it; only external collaborators (annotation
// rendering, mask dumps) consume it.
type Diagnostics struct {
	// Gray is the grayscale plane derived from the input.
	Gray [][]float64

	// EdgeMap is the raw Sobel magnitude plane of the grayscale image.
	EdgeMap [][]float64

	// EdgeHistogram is the distribution of edge magnitudes, the same view
	// a histogram plot of the edge map would give when tuning the
	// threshold multiplier.
	EdgeHistogram Histogram

	// CellMask is the binarized all-cells foreground mask.
	CellMask [][]bool

	// Infection holds the classifier's per-channel planes and masks.
	Infection *detection.InfectionChannels

	// InfectionMask is the final infected-tissue mask.
	InfectionMask [][]bool

	// InfectedMask and InfectedEdges are the infected-cell binary mask and
	// its boundary map fed to the infected Hough pass.
	InfectedMask  [][]bool
	InfectedEdges [][]bool

	// NormalMask and NormalEdges are the same for the normal-cell pass,
	// after the dilated infected mask was subtracted.
	NormalMask  [][]bool
	NormalEdges [][]bool
}

// Histogram is a fixed-bin distribution over edge magnitudes.
type Histogram struct {
	// Dividers are the bins + 1 boundaries; bin i covers
	// [Dividers[i], Dividers[i+1]).
	Dividers []float64

	// Counts holds the number of pixels per bin.
	Counts []float64
}

// edgeHistogramBins matches the 256-bin view conventionally used when
// eyeballing edge-magnitude distributions.
const edgeHistogramBins = 256

// edgeHistogram bins all magnitudes of an edge plane over [0, max]. A
// degenerate all-zero plane bins everything into the first bucket.
func edgeHistogram(edges [][]float64, bins int) Histogram {
	n := 0
	for _, row := range edges {
		n += len(row)
	}
	flat := make([]float64, 0, n)
	max := 0.0
	for _, row := range edges {
		for _, v := range row {
			flat = append(flat, v)
			if v > max {
				max = v
			}
		}
	}
	if max <= 0 {
		max = 1
	}
	sort.Float64s(flat)

	dividers := make([]float64, bins+1)
	// Upper divider sits just past max so the maximum value lands in the
	// last bin rather than outside it.
	floats.Span(dividers, 0, max*(1+1e-9))
	counts := stat.Histogram(nil, dividers, flat, nil)

	return Histogram{Dividers: dividers, Counts: counts}
}
