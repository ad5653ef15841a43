package detection

import "math"

// Circle is a single detected cell candidate.
//
// Coordinates are image positions: Row is the Y coordinate of the center,
// Col the X coordinate. Radius always comes from the discrete candidate list
// the detector was configured with.
type Circle struct {
	// Row is the center's row (Y) coordinate.
	Row int `json:"row"`

	// Col is the center's column (X) coordinate.
	Col int `json:"col"`

	// Radius is the detected radius in pixels.
	Radius int `json:"radius"`

	// Score is the normalized Hough accumulator value at this peak.
	// Higher means more edge support; it is not a probability.
	Score float64 `json:"score"`
}

// distance returns the Euclidean distance between two circle centers.
func distance(a, b Circle) float64 {
	dr := float64(a.Row - b.Row)
	dc := float64(a.Col - b.Col)
	return math.Sqrt(dr*dr + dc*dc)
}
