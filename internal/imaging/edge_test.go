package imaging

import (
	"testing"
)

// uniformPlane creates a constant-valued grayscale plane
func uniformPlane(width, height int, v float64) [][]float64 {
	plane := make([][]float64, height)
	for y := range plane {
		plane[y] = make([]float64, width)
		for x := range plane[y] {
			plane[y][x] = v
		}
	}
	return plane
}

// stepPlane creates a plane that is dark left of split and bright right of it
func stepPlane(width, height, split int) [][]float64 {
	plane := uniformPlane(width, height, 0)
	for y := 0; y < height; y++ {
		for x := split; x < width; x++ {
			plane[y][x] = 1
		}
	}
	return plane
}

func TestSobel_VerticalEdge(t *testing.T) {
	plane := stepPlane(50, 50, 25)

	mag := Sobel(plane)

	// Magnitude should concentrate around the step
	found := false
	for y := 1; y < 49; y++ {
		for x := 23; x <= 26; x++ {
			if mag[y][x] > 1 {
				found = true
			}
		}
	}
	if !found {
		t.Error("Sobel should respond to a vertical step edge")
	}

	// Far from the step the plane is flat
	if mag[25][5] != 0 {
		t.Errorf("Expected zero magnitude in flat region, got %g", mag[25][5])
	}
}

func TestSobel_Uniform(t *testing.T) {
	// Gray levels chosen so the kernel sums do not all cancel exactly in
	// floating point; residues must still come out as exact zeros.
	for _, v := range []float64{0, 0.353, 0.5, 0.7, 90.0 / 255.0, 1} {
		mag := Sobel(uniformPlane(30, 30, v))

		for y := range mag {
			for x := range mag[y] {
				if mag[y][x] != 0 {
					t.Fatalf("Uniform plane at %g should have zero gradient, got %g at (%d,%d)",
						v, mag[y][x], x, y)
				}
			}
		}
	}
}

func TestSobel_NonNegative(t *testing.T) {
	plane := stepPlane(20, 20, 10)
	// Invert so gradients point the other way
	for y := range plane {
		for x := range plane[y] {
			plane[y][x] = 1 - plane[y][x]
		}
	}

	mag := Sobel(plane)
	for y := range mag {
		for x := range mag[y] {
			if mag[y][x] < 0 {
				t.Fatalf("Gradient magnitude must be non-negative, got %g", mag[y][x])
			}
		}
	}
}

func TestBinarize_Ramp(t *testing.T) {
	// A linear ramp has uniform nonzero gradient, so the relative
	// threshold keeps nearly everything.
	plane := make([][]float64, 40)
	for y := range plane {
		plane[y] = make([]float64, 40)
		for x := range plane[y] {
			plane[y][x] = float64(x) / 40.0
		}
	}

	mask, edges, err := Binarize(plane, 0.05)
	if err != nil {
		t.Fatalf("Binarize failed: %v", err)
	}
	if len(edges) != 40 || len(edges[0]) != 40 {
		t.Fatalf("Edge map dimensions %dx%d do not match input", len(edges[0]), len(edges))
	}

	kept := CountTrue(mask)
	if kept < 40*40*9/10 {
		t.Errorf("Ramp should keep most pixels as foreground, kept %d of %d", kept, 40*40)
	}
}

func TestBinarize_UniformImage(t *testing.T) {
	mask, edges, err := Binarize(uniformPlane(30, 30, 0.7), 0.05)
	if err != nil {
		t.Fatalf("Uniform image must be a valid degenerate case, got error: %v", err)
	}

	if CountTrue(mask) != 0 {
		t.Errorf("Uniform image should produce an all-background mask, got %d foreground pixels", CountTrue(mask))
	}
	for y := range edges {
		for x := range edges[y] {
			if edges[y][x] != 0 {
				t.Fatalf("Uniform image should have an all-zero edge map")
			}
		}
	}
}

func TestBinarize_InvalidMultiplier(t *testing.T) {
	plane := uniformPlane(10, 10, 0)

	for _, m := range []float64{0, -0.5, 1, 1.5} {
		if _, _, err := Binarize(plane, m); err == nil {
			t.Errorf("Binarize should reject multiplier %g", m)
		}
	}
}

func TestMaskEdges(t *testing.T) {
	mask := newMask(20, 20)
	for y := 5; y <= 14; y++ {
		for x := 5; x <= 14; x++ {
			mask[y][x] = true
		}
	}

	edges := MaskEdges(mask)

	if !edges[5][5] || !edges[5][14] || !edges[14][5] {
		t.Error("Square corners should be boundary pixels")
	}
	if edges[10][10] {
		t.Error("Interior pixels should not be boundary")
	}
	if edges[0][0] {
		t.Error("Background pixels should not be boundary")
	}
}

func TestMaskEdges_BorderForeground(t *testing.T) {
	mask := newMask(10, 10)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			mask[y][x] = true
		}
	}

	edges := MaskEdges(mask)
	if !edges[0][0] || !edges[0][5] {
		t.Error("Foreground touching the image border counts as boundary")
	}
	if edges[5][5] {
		t.Error("Interior of a full mask should not be boundary")
	}
}
