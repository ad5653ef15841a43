package imaging

// Intersect returns the logical AND of two masks of identical dimensions.
func Intersect(a, b [][]bool) [][]bool {
	width, height := MaskDims(a)
	out := newMask(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			out[y][x] = a[y][x] && b[y][x]
		}
	}
	return out
}

// Subtract returns a with every pixel set in b cleared (a AND NOT b).
func Subtract(a, b [][]bool) [][]bool {
	width, height := MaskDims(a)
	out := newMask(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			out[y][x] = a[y][x] && !b[y][x]
		}
	}
	return out
}

// CountTrue returns the number of foreground pixels in a mask.
func CountTrue(mask [][]bool) int {
	count := 0
	for y := range mask {
		for x := range mask[y] {
			if mask[y][x] {
				count++
			}
		}
	}
	return count
}

// SameDims reports whether two masks have identical dimensions.
func SameDims(a, b [][]bool) bool {
	aw, ah := MaskDims(a)
	bw, bh := MaskDims(b)
	return aw == bw && ah == bh
}
