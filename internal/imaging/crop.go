package imaging

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/disintegration/imaging"
)

// CropRegion extracts a rectangular sub-image.
//
// Parameters:
//   - img: Source image. Never mutated; the result is a new image.
//   - x1, y1: Top-left corner of the region (inclusive).
//   - x2, y2: Bottom-right corner of the region (exclusive).
//
// Returns an error if the region is degenerate (x1 >= x2 or y1 >= y2) or
// lies outside the image bounds. Used by the OCR layer to isolate the text
// band next to a detected button before recognition.
func CropRegion(img image.Image, x1, y1, x2, y2 int) (image.Image, error) {
	bounds := img.Bounds()

	if x1 >= x2 || y1 >= y2 {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}
	if x1 < bounds.Min.X || y1 < bounds.Min.Y || x2 > bounds.Max.X || y2 > bounds.Max.Y {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			x1, y1, x2, y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}

	return imaging.Crop(img, image.Rect(x1, y1, x2, y2)), nil
}

// ScaleRegion extracts a rectangular sub-image and resizes it by scale.
//
// Upscaling small text regions (scale 2–3) before OCR measurably improves
// recognition of the thin UI fonts this detector targets. Scale must be
// positive; 1.0 is equivalent to CropRegion.
func ScaleRegion(img image.Image, x1, y1, x2, y2 int, scale float64) (image.Image, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("scale must be positive, got %v", scale)
	}

	cropped, err := CropRegion(img, x1, y1, x2, y2)
	if err != nil {
		return nil, err
	}
	if scale == 1.0 {
		return cropped, nil
	}

	newWidth := int(float64(cropped.Bounds().Dx()) * scale)
	newHeight := int(float64(cropped.Bounds().Dy()) * scale)
	return imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos), nil
}

// SaveTempPNG writes img to a uniquely named PNG in the system temp
// directory and returns its path. Exists for external tools that want a file
// path rather than pixels (Tesseract, mainly).
//
// The caller is responsible for removing the file with os.Remove.
func SaveTempPNG(img image.Image, prefix string) (string, error) {
	f, err := os.CreateTemp("", prefix+"-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	path := f.Name()

	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to encode temp image: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}
