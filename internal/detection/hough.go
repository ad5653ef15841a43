package detection

import (
	"fmt"
	"image"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"
)

// HoughParams configures a circular Hough detection pass.
type HoughParams struct {
	// RadiusMin is the smallest candidate radius in pixels (inclusive).
	RadiusMin int

	// RadiusMax is the upper bound of the sweep (exclusive).
	RadiusMax int

	// RadiusStep is the spacing between candidate radii.
	RadiusStep int

	// MinDistance is the coarse per-axis separation enforced between
	// accepted peaks at extraction time. The overlap resolver applies the
	// stricter Euclidean test afterwards.
	MinDistance int

	// MaxPeaks caps the number of returned detections.
	MaxPeaks int
}

// radii expands the sweep into its discrete candidate radii:
// RadiusMin, RadiusMin+RadiusStep, … strictly below RadiusMax.
func (p HoughParams) radii() []int {
	var rs []int
	for r := p.RadiusMin; r < p.RadiusMax; r += p.RadiusStep {
		rs = append(rs, r)
	}
	return rs
}

// validate rejects parameter sets that produce an empty or nonsensical sweep.
// An empty candidate set must surface as an error, never as a silent empty
// detection result.
func (p HoughParams) validate() error {
	if p.RadiusStep <= 0 {
		return fmt.Errorf("hough: radius step %d must be positive", p.RadiusStep)
	}
	if p.RadiusMin < 1 {
		return fmt.Errorf("hough: minimum radius %d must be at least 1", p.RadiusMin)
	}
	if p.RadiusMax <= p.RadiusMin {
		return fmt.Errorf("hough: radius range [%d,%d) is empty", p.RadiusMin, p.RadiusMax)
	}
	if p.MaxPeaks < 1 {
		return fmt.Errorf("hough: max peaks %d must be at least 1", p.MaxPeaks)
	}
	if p.MinDistance < 0 {
		return fmt.Errorf("hough: min distance %d must not be negative", p.MinDistance)
	}
	return nil
}

// DetectCircles runs a circular Hough transform over a binary edge image.
//
// For every candidate radius an accumulator counts, per center position, the
// edge pixels lying on a circle of that radius around it. Accumulation is
// independent across radii and runs concurrently; accumulators are merged in
// radius order once all finish, so the result does not depend on scheduling.
//
// Peaks are local maxima extracted jointly across all radius accumulators,
// strongest first. A candidate is suppressed when it sits within MinDistance
// of an already accepted peak on both spatial axes; ResolveOverlaps applies
// the stricter Euclidean test later.
// At most MaxPeaks circles are returned, each scored with its normalized
// accumulator value.
//
// An edge image with no set pixels yields an empty, nil-error result: zero
// detections is a normal outcome the caller reports, not a failure.
func DetectCircles(edges [][]bool, p HoughParams) ([]Circle, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	height := len(edges)
	width := 0
	if height > 0 {
		width = len(edges[0])
	}
	if width == 0 || height == 0 {
		return []Circle{}, nil
	}

	radii := p.radii()
	perimeters := make([][]image.Point, len(radii))
	for i, r := range radii {
		perimeters[i] = perimeterOffsets(r)
	}

	accumulators := make([][][]int, len(radii))
	var g errgroup.Group
	for i := range radii {
		i := i
		g.Go(func() error {
			accumulators[i] = accumulate(edges, width, height, perimeters[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Collect per-radius local maxima in fixed (radius, row, col) order so
	// the stable sort below breaks score ties reproducibly.
	var candidates []Circle
	for i, r := range radii {
		acc := accumulators[i]
		norm := float64(len(perimeters[i]))
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				votes := acc[y][x]
				if votes == 0 || !isLocalMax(acc, x, y, width, height) {
					continue
				}
				candidates = append(candidates, Circle{
					Row:    y,
					Col:    x,
					Radius: r,
					Score:  float64(votes) / norm,
				})
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	accepted := make([]Circle, 0, p.MaxPeaks)
	for _, c := range candidates {
		if len(accepted) == p.MaxPeaks {
			break
		}
		tooClose := false
		for _, a := range accepted {
			if abs(c.Row-a.Row) < p.MinDistance && abs(c.Col-a.Col) < p.MinDistance {
				tooClose = true
				break
			}
		}
		if !tooClose {
			accepted = append(accepted, c)
		}
	}
	return accepted, nil
}

// accumulate votes one radius: every edge pixel casts a vote at each possible
// center position on its perimeter offsets.
func accumulate(edges [][]bool, width, height int, perimeter []image.Point) [][]int {
	acc := make([][]int, height)
	for y := range acc {
		acc[y] = make([]int, width)
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !edges[y][x] {
				continue
			}
			for _, off := range perimeter {
				cy := y + off.Y
				cx := x + off.X
				if cy >= 0 && cy < height && cx >= 0 && cx < width {
					acc[cy][cx]++
				}
			}
		}
	}
	return acc
}

// perimeterOffsets returns the distinct pixel offsets on a circle of radius r,
// sampled at one-degree resolution. The offset set is symmetric, so voting
// from an edge pixel over these offsets covers every center the pixel could
// belong to.
func perimeterOffsets(r int) []image.Point {
	seen := make(map[image.Point]struct{}, 8*r)
	var offsets []image.Point
	for deg := 0; deg < 360; deg++ {
		rad := float64(deg) * math.Pi / 180
		p := image.Point{
			X: int(math.Round(float64(r) * math.Cos(rad))),
			Y: int(math.Round(float64(r) * math.Sin(rad))),
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		offsets = append(offsets, p)
	}
	return offsets
}

// isLocalMax reports whether (x, y) holds the maximum vote count of its 3x3
// neighborhood. Plateau cells all qualify; peak suppression deduplicates them.
func isLocalMax(acc [][]int, x, y, width, height int) bool {
	v := acc[y][x]
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			ny, nx := y+dy, x+dx
			if ny >= 0 && ny < height && nx >= 0 && nx < width && acc[ny][nx] > v {
				return false
			}
		}
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
