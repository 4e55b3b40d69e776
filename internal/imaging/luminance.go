package imaging

import (
	"image"

	"github.com/ironsheep/icon-detect-mcp/internal/geometry"
)

// BrightnessSample records the brightness classification of one detected
// rectangle.
//
// Samples are produced for every rectangle that survives de-duplication,
// including the ones later filtered out as dark, so callers can inspect why
// a detection was (or was not) considered available.
type BrightnessSample struct {
	// Rect is the classified rectangle in screenshot coordinates.
	Rect geometry.Rect `json:"rect"`

	// Brightness is the mean BT.601 luminance over the (clipped) region,
	// in the range 0–255.
	Brightness float64 `json:"brightness"`

	// Available is true when Brightness >= the classification threshold.
	// In the game UIs this detector was built for, enabled buttons render
	// bright and disabled ones render dimmed.
	Available bool `json:"available"`

	// MeanColor is the average color of the region, for diagnostics and
	// the debug-image legend.
	MeanColor RegionColor `json:"mean_color"`
}

// Luminance returns the BT.601 weighted luminance of 8-bit RGB components,
// in the range 0–255.
//
// This is the single brightness metric used by the whole pipeline (see the
// package documentation); the classification threshold default of 100 is
// calibrated against it.
func Luminance(r, g, b uint8) float64 {
	return 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
}

// ClipRect clips a rectangle to an image's bounds.
//
// Template matches near the screenshot edge can produce rectangles that
// extend past the image; those are scored on whatever pixels exist rather
// than rejected. The result may be empty if the rectangle lies entirely
// outside the image.
func ClipRect(r geometry.Rect, bounds image.Rectangle) geometry.Rect {
	return r.Intersect(geometry.FromBounds(bounds))
}

// RegionLuminance computes the mean BT.601 luminance of the pixels of img
// covered by r, clipped to the image bounds.
//
// Returns 0 if the clipped region contains no pixels.
func RegionLuminance(img image.Image, r geometry.Rect) float64 {
	clipped := ClipRect(r, img.Bounds())
	if clipped.Empty() {
		return 0
	}

	var sum float64
	for y := clipped.Y; y < clipped.Y+clipped.Height; y++ {
		for x := clipped.X; x < clipped.X+clipped.Width; x++ {
			cr, cg, cb, _ := img.At(x, y).RGBA()
			sum += Luminance(uint8(cr>>8), uint8(cg>>8), uint8(cb>>8))
		}
	}
	return sum / float64(clipped.Area())
}

// ClassifyRegion measures the mean luminance of the region of img bounded by
// r and labels it available or dark against brightnessThreshold.
//
// Parameters:
//   - img: The screenshot to sample. Never mutated.
//   - r: The rectangle to classify. Clipped to the image bounds; a
//     rectangle entirely outside the image classifies as dark with
//     brightness 0.
//   - brightnessThreshold: Minimum mean luminance (0–255) for the region to
//     count as available.
//
// The returned sample always carries the ORIGINAL rectangle, not the clipped
// one, so downstream consumers keep the matcher's geometry.
func ClassifyRegion(img image.Image, r geometry.Rect, brightnessThreshold float64) BrightnessSample {
	brightness := RegionLuminance(img, r)
	return BrightnessSample{
		Rect:       r,
		Brightness: brightness,
		Available:  brightness >= brightnessThreshold,
		MeanColor:  MeanRegionColor(img, r),
	}
}
