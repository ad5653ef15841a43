package imaging

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// OpenFile loads a smear image from disk, honoring EXIF orientation so that
// photographs taken with a rotated camera come out upright. Supported formats
// are PNG, JPEG, GIF, TIFF and BMP.
func OpenFile(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	return img, nil
}

// FileInfo contains metadata about an image file.
type FileInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the image format guessed from the file extension:
	// "png", "jpeg", "gif", "tiff", "bmp" or "unknown".
	Format string `json:"format"`

	// FileSizeBytes is the size of the file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// Inspect loads an image and returns its metadata. Used by callers that want
// to log what they are about to process.
func Inspect(path string) (*FileInfo, error) {
	img, err := OpenFile(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	switch filepath.Ext(path) {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	case ".tif", ".tiff":
		format = "tiff"
	case ".bmp":
		format = "bmp"
	}

	bounds := img.Bounds()
	return &FileInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		FileSizeBytes: stat.Size(),
	}, nil
}

// CropRegion extracts a rectangular region of interest from an image.
//
// The rectangle must be non-empty and lie fully inside the image bounds;
// analysis restricted to a region must never silently read pixels outside it.
func CropRegion(img image.Image, r image.Rectangle) (image.Image, error) {
	bounds := img.Bounds()
	if r.Empty() {
		return nil, fmt.Errorf("empty crop region %v", r)
	}
	if !r.In(bounds) {
		return nil, fmt.Errorf("crop region %v outside image bounds %v", r, bounds)
	}
	return imaging.Crop(img, r), nil
}
