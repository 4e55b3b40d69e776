package imaging

import (
	"image/color"
	"image/png"
	"os"
	"strings"
	"testing"
)

func TestCropRegion(t *testing.T) {
	img := createUniformImage(100, 100, color.RGBA{255, 0, 0, 255})

	cropped, err := CropRegion(img, 10, 20, 60, 50)
	if err != nil {
		t.Fatalf("CropRegion failed: %v", err)
	}

	if cropped.Bounds().Dx() != 50 || cropped.Bounds().Dy() != 30 {
		t.Errorf("dimensions: got %dx%d, want 50x30", cropped.Bounds().Dx(), cropped.Bounds().Dy())
	}
}

func TestCropRegion_Invalid(t *testing.T) {
	img := createUniformImage(100, 100, color.RGBA{255, 0, 0, 255})

	tests := []struct {
		name           string
		x1, y1, x2, y2 int
	}{
		{"x1 >= x2", 50, 0, 50, 50},
		{"y1 > y2", 0, 60, 50, 50},
		{"x1 negative", -1, 0, 50, 50},
		{"x2 too large", 0, 0, 101, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := CropRegion(img, tt.x1, tt.y1, tt.x2, tt.y2); err == nil {
				t.Error("CropRegion should fail")
			}
		})
	}
}

func TestScaleRegion(t *testing.T) {
	img := createUniformImage(100, 100, color.RGBA{0, 255, 0, 255})

	scaled, err := ScaleRegion(img, 0, 0, 50, 50, 2.0)
	if err != nil {
		t.Fatalf("ScaleRegion failed: %v", err)
	}

	if scaled.Bounds().Dx() != 100 || scaled.Bounds().Dy() != 100 {
		t.Errorf("dimensions: got %dx%d, want 100x100", scaled.Bounds().Dx(), scaled.Bounds().Dy())
	}
}

func TestScaleRegion_InvalidScale(t *testing.T) {
	img := createUniformImage(100, 100, color.RGBA{0, 255, 0, 255})

	for _, scale := range []float64{0, -1} {
		if _, err := ScaleRegion(img, 0, 0, 50, 50, scale); err == nil {
			t.Errorf("ScaleRegion should fail for scale %v", scale)
		}
	}
}

func TestSaveTempPNG(t *testing.T) {
	img := createUniformImage(20, 10, color.RGBA{0, 0, 255, 255})

	path, err := SaveTempPNG(img, "crop-test")
	if err != nil {
		t.Fatalf("SaveTempPNG failed: %v", err)
	}
	defer os.Remove(path)

	if !strings.HasSuffix(path, ".png") {
		t.Errorf("path %q should end in .png", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening saved file: %v", err)
	}
	defer f.Close()

	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding saved file: %v", err)
	}
	if decoded.Bounds().Dx() != 20 || decoded.Bounds().Dy() != 10 {
		t.Errorf("dimensions: got %dx%d, want 20x10",
			decoded.Bounds().Dx(), decoded.Bounds().Dy())
	}
}

func TestSaveTempPNG_UniquePaths(t *testing.T) {
	img := createUniformImage(5, 5, color.RGBA{0, 0, 0, 255})

	first, err := SaveTempPNG(img, "crop-test")
	if err != nil {
		t.Fatalf("SaveTempPNG failed: %v", err)
	}
	defer os.Remove(first)

	second, err := SaveTempPNG(img, "crop-test")
	if err != nil {
		t.Fatalf("SaveTempPNG failed: %v", err)
	}
	defer os.Remove(second)

	if first == second {
		t.Errorf("two saves produced the same path %q", first)
	}
}
