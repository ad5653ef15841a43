// Package imaging provides the raster plumbing for the cell detection pipeline.
//
// This package converts images into the plane representations the detection
// stages consume and implements the low-level raster operations they share:
// grayscale and HSV plane extraction, Sobel edge maps, relative-threshold
// binarization, binary morphology, and connected-component labeling.
//
// # Plane Representation
//
// Images are decomposed into row-major 2D planes indexed [y][x]:
//   - [][]float64 for intensity-like data (grayscale, edge magnitudes, HSV
//     channels), values normalized to [0,1]
//   - [][]bool for binary masks, true marking foreground
//
// Every function returns a freshly allocated plane and never mutates its
// input; a derived plane always shares dimensions with its source. This keeps
// stages safe to run concurrently over different images without any locking.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with origin at the top-left corner:
// X (column) increases rightward, Y (row) increases downward.
//
// # Degenerate Inputs
//
// A uniform image is valid input: its edge map is all zeros, the relative
// threshold collapses to zero, and binarization yields an all-background
// mask rather than an error. Downstream stages report zero detections.
package imaging
