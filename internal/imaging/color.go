package imaging

import (
	"image"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/icon-detect-mcp/internal/geometry"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 100=white)
}

// RegionColor is the average color of a pixel region in multiple
// representations.
//
// The HSL form is the most useful one when tuning brightness thresholds by
// eye: an "available" button region typically has L well above 50 while a
// dimmed one sits below it.
type RegionColor struct {
	Hex string   `json:"hex"` // Hex format "#rrggbb"
	RGB RGBColor `json:"rgb"` // RGB components
	HSL HSLColor `json:"hsl"` // HSL representation
}

// MeanRegionColor computes the channel-wise average color of the pixels of
// img covered by r, clipped to the image bounds.
//
// Returns the zero RegionColor (black, "#000000") if the clipped region
// contains no pixels. Alpha is ignored; the mean is over raw channel values.
func MeanRegionColor(img image.Image, r geometry.Rect) RegionColor {
	clipped := ClipRect(r, img.Bounds())
	if clipped.Empty() {
		return regionColorFromRGB(0, 0, 0)
	}

	var sumR, sumG, sumB float64
	for y := clipped.Y; y < clipped.Y+clipped.Height; y++ {
		for x := clipped.X; x < clipped.X+clipped.Width; x++ {
			cr, cg, cb, _ := img.At(x, y).RGBA()
			sumR += float64(cr >> 8)
			sumG += float64(cg >> 8)
			sumB += float64(cb >> 8)
		}
	}

	n := float64(clipped.Area())
	return regionColorFromRGB(
		uint8(sumR/n+0.5),
		uint8(sumG/n+0.5),
		uint8(sumB/n+0.5),
	)
}

// regionColorFromRGB builds the multi-representation RegionColor from 8-bit
// components, using go-colorful for the hex and HSL conversions.
func regionColorFromRGB(r, g, b uint8) RegionColor {
	c := colorful.Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}
	h, s, l := c.Hsl()
	return RegionColor{
		Hex: c.Hex(),
		RGB: RGBColor{R: r, G: g, B: b},
		HSL: HSLColor{
			H: int(h + 0.5),
			S: int(s*100 + 0.5),
			L: int(l*100 + 0.5),
		},
	}
}
