package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/parasight/celldetect/internal/detection"
)

func grayField(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 128, G: 128, B: 128, A: 255})
		}
	}
	return img
}

func TestAnnotate_RingColors(t *testing.T) {
	src := grayField(100, 100)
	infected := []detection.Circle{{Row: 30, Col: 30, Radius: 10, Score: 1}}
	normal := []detection.Circle{{Row: 70, Col: 70, Radius: 10, Score: 1}}

	out := Annotate(src, infected, normal)

	// Rightmost ring pixel sits at (col+radius, row)
	if got := out.RGBAAt(40, 30); got != infectedInner {
		t.Errorf("Infected ring pixel %v, want %v", got, infectedInner)
	}
	if got := out.RGBAAt(41, 30); got != infectedOuter {
		t.Errorf("Infected outer ring pixel %v, want %v", got, infectedOuter)
	}
	if got := out.RGBAAt(80, 70); got != normalInner {
		t.Errorf("Normal ring pixel %v, want %v", got, normalInner)
	}
	if got := out.RGBAAt(30, 30); got.R != 128 {
		t.Errorf("Ring center should keep the source color, got %v", got)
	}
}

func TestAnnotate_SourceUntouched(t *testing.T) {
	src := grayField(50, 50)

	Annotate(src, []detection.Circle{{Row: 25, Col: 25, Radius: 5}}, nil)

	if got := src.RGBAAt(30, 25); got.R != 128 {
		t.Error("Annotate must draw on a copy, not the input")
	}
}

func TestAnnotate_ClipsToBounds(t *testing.T) {
	src := grayField(40, 40)
	// Circle hanging over every edge
	circles := []detection.Circle{{Row: 0, Col: 0, Radius: 30, Score: 1}}

	out := Annotate(src, circles, nil)

	if out.Bounds().Dx() != 40 || out.Bounds().Dy() != 40 {
		t.Errorf("Output bounds changed: %v", out.Bounds())
	}
}

func TestOverlayMask(t *testing.T) {
	src := grayField(10, 10)
	mask := make([][]bool, 10)
	for y := range mask {
		mask[y] = make([]bool, 10)
	}
	mask[5][5] = true

	out := OverlayMask(src, mask, color.RGBA{R: 255, A: 255}, 1.0)

	tinted := out.RGBAAt(5, 5)
	if tinted.R != 255 || tinted.G != 0 {
		t.Errorf("Full-opacity foreground pixel %v, want pure tint", tinted)
	}
	plain := out.RGBAAt(0, 0)
	if plain.R != 128 || plain.G != 128 {
		t.Errorf("Background pixel changed: %v", plain)
	}
}

func TestOverlayMask_HalfOpacity(t *testing.T) {
	src := grayField(4, 4)
	mask := [][]bool{
		{true, false, false, false},
		{false, false, false, false},
		{false, false, false, false},
		{false, false, false, false},
	}

	out := OverlayMask(src, mask, color.RGBA{R: 255, A: 255}, 0.5)

	got := out.RGBAAt(0, 0)
	if got.R <= 128 {
		t.Errorf("Red channel should rise toward the tint, got %d", got.R)
	}
	if got.G >= 128 {
		t.Errorf("Green channel should fall toward zero, got %d", got.G)
	}
}

func TestMaskImage(t *testing.T) {
	mask := [][]bool{
		{true, false},
		{false, true},
	}

	out := MaskImage(mask)

	if out.Bounds().Dx() != 2 || out.Bounds().Dy() != 2 {
		t.Fatalf("Bounds %v, want 2x2", out.Bounds())
	}
	if out.GrayAt(0, 0).Y != 255 {
		t.Error("Foreground pixel should be white")
	}
	if out.GrayAt(1, 0).Y != 0 {
		t.Error("Background pixel should be black")
	}
}

func TestMaskImage_Empty(t *testing.T) {
	out := MaskImage(nil)
	if !out.Bounds().Empty() {
		t.Errorf("Empty mask should give empty bounds, got %v", out.Bounds())
	}
}
