package imaging

import (
	"image/color"
	"testing"

	"github.com/ironsheep/icon-detect-mcp/internal/geometry"
)

func TestMeanRegionColor_Uniform(t *testing.T) {
	img := createUniformImage(40, 40, color.RGBA{255, 0, 0, 255})

	got := MeanRegionColor(img, geometry.Rect{X: 5, Y: 5, Width: 10, Height: 10})

	if got.Hex != "#ff0000" {
		t.Errorf("Hex = %s, want #ff0000", got.Hex)
	}
	if got.RGB != (RGBColor{R: 255, G: 0, B: 0}) {
		t.Errorf("RGB = %+v, want {255 0 0}", got.RGB)
	}
	if got.HSL.H != 0 || got.HSL.S != 100 || got.HSL.L != 50 {
		t.Errorf("HSL = %+v, want {0 100 50}", got.HSL)
	}
}

func TestMeanRegionColor_Mixed(t *testing.T) {
	// Half black, half white rows: mean should land mid-gray.
	img := createUniformImage(10, 10, color.RGBA{0, 0, 0, 255})
	for y := 0; y < 5; y++ {
		for x := 0; x < 10; x++ {
			img.Set(x, y, color.RGBA{255, 255, 255, 255})
		}
	}

	got := MeanRegionColor(img, geometry.Rect{X: 0, Y: 0, Width: 10, Height: 10})

	// 127.5 rounds to 128.
	if got.RGB.R != 128 || got.RGB.G != 128 || got.RGB.B != 128 {
		t.Errorf("RGB = %+v, want {128 128 128}", got.RGB)
	}
}

func TestMeanRegionColor_OutsideBounds(t *testing.T) {
	img := createUniformImage(20, 20, color.RGBA{255, 255, 255, 255})

	got := MeanRegionColor(img, geometry.Rect{X: 100, Y: 100, Width: 10, Height: 10})
	if got.Hex != "#000000" {
		t.Errorf("Hex for empty clip = %s, want #000000", got.Hex)
	}
}
