package imaging

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func singlePixel(c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, c)
	return img
}

func TestSplitHSV_Primaries(t *testing.T) {
	cases := []struct {
		name    string
		col     color.RGBA
		h, s, v float64
	}{
		{"red", color.RGBA{255, 0, 0, 255}, 0, 1, 1},
		{"green", color.RGBA{0, 255, 0, 255}, 1.0 / 3.0, 1, 1},
		{"blue", color.RGBA{0, 0, 255, 255}, 2.0 / 3.0, 1, 1},
		{"gray", color.RGBA{128, 128, 128, 255}, 0, 0, 128.0 / 255.0},
		{"white", color.RGBA{255, 255, 255, 255}, 0, 0, 1},
	}

	for _, tc := range cases {
		hue, sat, val := SplitHSV(singlePixel(tc.col))

		if math.Abs(hue[0][0]-tc.h) > 0.01 {
			t.Errorf("%s: hue = %g, want %g", tc.name, hue[0][0], tc.h)
		}
		if math.Abs(sat[0][0]-tc.s) > 0.01 {
			t.Errorf("%s: sat = %g, want %g", tc.name, sat[0][0], tc.s)
		}
		if math.Abs(val[0][0]-tc.v) > 0.01 {
			t.Errorf("%s: val = %g, want %g", tc.name, val[0][0], tc.v)
		}
	}
}

func TestSplitHSV_Range(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{uint8(x * 30), uint8(y * 30), 200, 255})
		}
	}

	hue, sat, val := SplitHSV(img)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			for name, plane := range map[string][][]float64{"hue": hue, "sat": sat, "val": val} {
				if plane[y][x] < 0 || plane[y][x] > 1 {
					t.Fatalf("%s out of [0,1] at (%d,%d): %g", name, x, y, plane[y][x])
				}
			}
		}
	}
}

func TestGrayPlane(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.White)
		}
	}
	img.Set(0, 0, color.Black)

	plane := GrayPlane(img)

	if len(plane) != 2 || len(plane[0]) != 4 {
		t.Fatalf("Plane dimensions %dx%d, want 4x2", len(plane[0]), len(plane))
	}
	if plane[0][0] != 0 {
		t.Errorf("Black pixel should be 0, got %g", plane[0][0])
	}
	if plane[1][3] != 1 {
		t.Errorf("White pixel should be 1, got %g", plane[1][3])
	}
}
