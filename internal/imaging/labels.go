package imaging

import "image"

// Components partitions a binary mask into its 8-connected foreground
// regions. Each region is returned as the list of its pixel coordinates.
//
// Uses a stack-based flood fill (not recursive) so large regions cannot
// overflow the stack.
func Components(mask [][]bool) [][]image.Point {
	width, height := MaskDims(mask)
	visited := newMask(width, height)

	regions := make([][]image.Point, 0)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !mask[y][x] || visited[y][x] {
				continue
			}
			region := floodFill(mask, visited, x, y, width, height)
			regions = append(regions, region)
		}
	}
	return regions
}

// floodFill collects the 8-connected region containing (startX, startY),
// marking every collected pixel as visited.
func floodFill(mask, visited [][]bool, startX, startY, width, height int) []image.Point {
	region := make([]image.Point, 0)
	stack := []image.Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		if visited[p.Y][p.X] || !mask[p.Y][p.X] {
			continue
		}

		visited[p.Y][p.X] = true
		region = append(region, p)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, image.Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}
	return region
}

// FilterArea returns a new mask with every connected region smaller than
// minArea pixels removed. Regions of exactly minArea pixels survive. This
// suppresses speckle that passes per-pixel filters but is too small to be a
// real structure. A minArea ≤ 0 keeps everything.
func FilterArea(mask [][]bool, minArea int) [][]bool {
	width, height := MaskDims(mask)
	out := newMask(width, height)

	for _, region := range Components(mask) {
		if minArea > 0 && len(region) < minArea {
			continue
		}
		for _, p := range region {
			out[p.Y][p.X] = true
		}
	}
	return out
}
