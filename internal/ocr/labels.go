package ocr

import (
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/ironsheep/icon-detect-mcp/internal/geometry"
	"github.com/ironsheep/icon-detect-mcp/internal/imaging"
)

// labelBandWidthFactor sizes the text band searched to the left of a button,
// as a multiple of the button width. Three button-widths covers the longest
// skill names observed without swallowing the neighboring column.
const labelBandWidthFactor = 3

// labelScale is the upscale factor applied to the cropped band before OCR.
// Tesseract reads the small UI fonts far more reliably at 2x.
const labelScale = 2.0

// ButtonLabel pairs a detected button with the text recognized next to it.
type ButtonLabel struct {
	// Rect is the button rectangle the label belongs to, unchanged from the
	// detection result.
	Rect geometry.Rect `json:"rect"`

	// Text is the recognized label, whitespace-trimmed. Empty when nothing
	// readable was found.
	Text string `json:"text"`

	// Confidence is the mean word confidence Tesseract reported for the
	// label (0.0 to 1.0), 0 when Text is empty.
	Confidence float64 `json:"confidence"`
}

// LabelRegion returns the rectangle to the left of button where its text
// label is expected, clipped to bounds.
//
// The band shares the button's vertical extent and reaches three button
// widths to the left (or to the image edge, whichever comes first). The
// result may be empty when the button sits at the left edge of the image.
func LabelRegion(button geometry.Rect, bounds image.Rectangle) geometry.Rect {
	band := geometry.Rect{
		X:      button.X - labelBandWidthFactor*button.Width,
		Y:      button.Y,
		Width:  labelBandWidthFactor * button.Width,
		Height: button.Height,
	}
	if band.X < bounds.Min.X {
		band.Width -= bounds.Min.X - band.X
		band.X = bounds.Min.X
	}
	return band.Intersect(geometry.FromBounds(bounds))
}

// ExtractButtonLabels recognizes the text label next to each button
// rectangle.
//
// Parameters:
//   - img: The screenshot the buttons were detected in. Never mutated.
//   - buttons: Button rectangles, typically a detection result's Locations.
//   - language: Tesseract language code (e.g., "eng").
//
// Returns one ButtonLabel per input rectangle, in input order. A region
// whose recognition fails, or that clips to nothing, contributes an empty
// label; only a failure to reach Tesseract at all is an error.
func ExtractButtonLabels(img image.Image, buttons []geometry.Rect, language string) ([]ButtonLabel, error) {
	labels := make([]ButtonLabel, 0, len(buttons))
	for _, button := range buttons {
		label := ButtonLabel{Rect: button}

		band := LabelRegion(button, img.Bounds())
		if !band.Empty() {
			text, confidence, err := recognizeRegion(img, band, language)
			if err == nil {
				label.Text = text
				label.Confidence = confidence
			}
		}
		labels = append(labels, label)
	}
	return labels, nil
}

// recognizeRegion crops and upscales one text band, writes it to a temporary
// PNG, and runs Tesseract over it. Returns the trimmed text and the mean
// word confidence.
func recognizeRegion(img image.Image, band geometry.Rect, language string) (string, float64, error) {
	scaled, err := imaging.ScaleRegion(img,
		band.X, band.Y, band.X+band.Width, band.Y+band.Height, labelScale)
	if err != nil {
		return "", 0, fmt.Errorf("cropping label band: %w", err)
	}

	tmpPath, err := imaging.SaveTempPNG(scaled, "icon-label")
	if err != nil {
		return "", 0, fmt.Errorf("writing temp image: %w", err)
	}
	defer os.Remove(tmpPath)

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return "", 0, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImage(tmpPath); err != nil {
		return "", 0, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", 0, fmt.Errorf("OCR failed: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", 0, nil
	}

	return text, meanWordConfidence(client), nil
}

// meanWordConfidence averages Tesseract's per-word confidence, scaled to
// 0–1. Returns 0 when boxes are unavailable, which some Tesseract builds
// cannot produce; the text itself is still usable then.
func meanWordConfidence(client *gosseract.Client) float64 {
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return 0
	}
	var sum float64
	for _, box := range boxes {
		sum += float64(box.Confidence)
	}
	return sum / float64(len(boxes)) / 100.0
}
