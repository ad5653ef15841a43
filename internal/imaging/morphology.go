package imaging

import "image"

// diskOffsets returns the neighborhood offsets of a disk structuring element
// with the given radius: every (dx, dy) with dx²+dy² ≤ r². Radius 1 yields
// the 4-connected cross.
func diskOffsets(radius int) []image.Point {
	offsets := make([]image.Point, 0, (2*radius+1)*(2*radius+1))
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				offsets = append(offsets, image.Point{X: dx, Y: dy})
			}
		}
	}
	return offsets
}

// Dilate expands foreground regions by a disk of the given radius.
// A radius ≤ 0 returns an unmodified copy.
func Dilate(mask [][]bool, radius int) [][]bool {
	width, height := MaskDims(mask)
	out := newMask(width, height)
	if radius <= 0 {
		for y := 0; y < height; y++ {
			copy(out[y], mask[y])
		}
		return out
	}

	offsets := diskOffsets(radius)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			for _, off := range offsets {
				ny, nx := y+off.Y, x+off.X
				if ny >= 0 && ny < height && nx >= 0 && nx < width && mask[ny][nx] {
					out[y][x] = true
					break
				}
			}
		}
	}
	return out
}

// Erode shrinks foreground regions by a disk of the given radius. Pixels
// outside the image count as background, so foreground touching the border
// erodes inward. A radius ≤ 0 returns an unmodified copy.
func Erode(mask [][]bool, radius int) [][]bool {
	width, height := MaskDims(mask)
	out := newMask(width, height)
	if radius <= 0 {
		for y := 0; y < height; y++ {
			copy(out[y], mask[y])
		}
		return out
	}

	offsets := diskOffsets(radius)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			all := true
			for _, off := range offsets {
				ny, nx := y+off.Y, x+off.X
				if ny < 0 || ny >= height || nx < 0 || nx >= width || !mask[ny][nx] {
					all = false
					break
				}
			}
			out[y][x] = all
		}
	}
	return out
}

// Close fills gaps smaller than the disk radius: dilation followed by erosion.
func Close(mask [][]bool, radius int) [][]bool {
	return Erode(Dilate(mask, radius), radius)
}

// Open removes protrusions and speckle smaller than the disk radius: erosion
// followed by dilation.
func Open(mask [][]bool, radius int) [][]bool {
	return Dilate(Erode(mask, radius), radius)
}
