package detection

import (
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/parallel"

	"github.com/ironsheep/icon-detect-mcp/internal/geometry"
	"github.com/ironsheep/icon-detect-mcp/internal/imaging"
)

// Candidate is a template-sized rectangle with its matching score.
//
// Candidates are transient: the matcher produces them and de-duplication
// consumes them. Score is in [0, 1] where 1.0 means the window is
// pixel-identical to the template (up to brightness/contrast normalization).
type Candidate struct {
	Rect  geometry.Rect `json:"rect"`
	Score float64       `json:"score"`
}

// grayPlane holds a grayscale copy of an image plus summed-area tables of
// the values and their squares, allowing O(1) window mean/variance queries.
type grayPlane struct {
	gray       []float64
	integral   []float64
	integralSq []float64
	w, h       int
}

// templateStats holds a grayscale template and its precomputed statistics.
type templateStats struct {
	gray []float64
	w, h int
	mean float64
	std  float64
}

// varianceEpsilon is the variance below which a window or template is
// considered flat (uniform color). NCC is undefined for flat signals.
const varianceEpsilon = 1e-9

// FindCandidates scores every template-sized window of screenshot against
// template using normalized cross-correlation and returns the windows whose
// score reaches confidence.
//
// Both images are converted to BT.601 grayscale before comparison, so the
// result is independent of channel ordering and identical across platforms
// that hand over the same pixel values.
//
// Parameters:
//   - screenshot: The image to search. Must be at least as large as the
//     template in both dimensions.
//   - template: The reference icon to locate.
//   - confidence: Minimum NCC score in [0, 1] for a window to become a
//     candidate. Negative correlation never matches, regardless of
//     confidence.
//
// Returns candidates in scan order (row-major by window origin). Scoring is
// parallelized across rows; the ordering is unaffected.
//
// Errors:
//   - ErrInvalidConfiguration if confidence is outside [0, 1]
//   - ErrInvalidImage if either image is nil or zero-sized, or the template
//     does not fit inside the screenshot
//
// # Flat Templates
//
// A template with zero variance (uniform color) has no defined correlation.
// Such templates match exactly the windows that are themselves flat with the
// same mean value, with score 1.0.
func FindCandidates(screenshot, template image.Image, confidence float64) ([]Candidate, error) {
	if confidence < 0 || confidence > 1 {
		return nil, fmt.Errorf("%w: confidence %v outside [0, 1]", ErrInvalidConfiguration, confidence)
	}
	if err := validateImagePair(screenshot, template); err != nil {
		return nil, err
	}

	frame := buildGrayPlane(screenshot)
	tmpl := buildTemplateStats(template)

	tw, th := tmpl.w, tmpl.h
	rows := frame.h - th + 1
	cols := frame.w - tw + 1
	n := float64(tw * th)

	// One slot per row keeps candidate assembly deterministic regardless of
	// how the rows are split across goroutines.
	rowHits := make([][]Candidate, rows)

	origin := screenshot.Bounds().Min

	parallel.Line(rows, func(start, end int) {
		for y := start; y < end; y++ {
			var hits []Candidate
			for x := 0; x < cols; x++ {
				score, ok := scoreWindow(frame, tmpl, x, y, n)
				if !ok || score < confidence {
					continue
				}
				hits = append(hits, Candidate{
					Rect: geometry.Rect{
						X:      x + origin.X,
						Y:      y + origin.Y,
						Width:  tw,
						Height: th,
					},
					Score: score,
				})
			}
			rowHits[y] = hits
		}
	})

	candidates := make([]Candidate, 0)
	for _, hits := range rowHits {
		candidates = append(candidates, hits...)
	}
	return candidates, nil
}

// scoreWindow computes the NCC score of the template against the window at
// (x, y). The second return value is false when the score is undefined or
// the window cannot match (negative correlation, flat mismatch).
func scoreWindow(frame *grayPlane, tmpl *templateStats, x, y int, n float64) (float64, bool) {
	sumF := integralSum(frame.integral, frame.w, x, y, x+tmpl.w-1, y+tmpl.h-1)
	sumF2 := integralSum(frame.integralSq, frame.w, x, y, x+tmpl.w-1, y+tmpl.h-1)
	meanF := sumF / n
	varF := (sumF2 - sumF*sumF/n) / n

	if tmpl.std <= varianceEpsilon {
		// Flat template: matches only flat windows with the same mean.
		if varF <= varianceEpsilon && math.Abs(meanF-tmpl.mean) <= 1e-6 {
			return 1.0, true
		}
		return 0, false
	}
	if varF <= varianceEpsilon {
		// Flat window against a textured template: uncorrelated.
		return 0, false
	}

	var sumFT float64
	for ty := 0; ty < tmpl.h; ty++ {
		frameRow := (y + ty) * frame.w
		tmplRow := ty * tmpl.w
		for tx := 0; tx < tmpl.w; tx++ {
			sumFT += frame.gray[frameRow+x+tx] * tmpl.gray[tmplRow+tx]
		}
	}

	stdF := math.Sqrt(varF)
	score := (sumFT - n*meanF*tmpl.mean) / (n * stdF * tmpl.std)
	if score < 0 {
		return 0, false
	}
	if score > 1 {
		score = 1 // numeric noise above perfect correlation
	}
	return score, true
}

// validateImagePair checks that both images exist, have positive dimensions,
// and that the template fits inside the screenshot.
func validateImagePair(screenshot, template image.Image) error {
	if screenshot == nil {
		return fmt.Errorf("%w: screenshot is nil", ErrInvalidImage)
	}
	if template == nil {
		return fmt.Errorf("%w: template is nil", ErrInvalidImage)
	}
	sb := screenshot.Bounds()
	tb := template.Bounds()
	if sb.Dx() <= 0 || sb.Dy() <= 0 {
		return fmt.Errorf("%w: screenshot has zero size", ErrInvalidImage)
	}
	if tb.Dx() <= 0 || tb.Dy() <= 0 {
		return fmt.Errorf("%w: template has zero size", ErrInvalidImage)
	}
	if tb.Dx() > sb.Dx() || tb.Dy() > sb.Dy() {
		return fmt.Errorf("%w: template %dx%d larger than screenshot %dx%d",
			ErrInvalidImage, tb.Dx(), tb.Dy(), sb.Dx(), sb.Dy())
	}
	return nil
}

// buildGrayPlane converts an image to BT.601 grayscale and computes its
// summed-area tables.
func buildGrayPlane(img image.Image) *grayPlane {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	p := &grayPlane{
		gray:       make([]float64, w*h),
		integral:   make([]float64, w*h),
		integralSq: make([]float64, w*h),
		w:          w,
		h:          h,
	}
	for y := 0; y < h; y++ {
		var rowSum, rowSumSq float64
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			gray := imaging.Luminance(uint8(r>>8), uint8(g>>8), uint8(bl>>8))
			off := y*w + x
			p.gray[off] = gray
			rowSum += gray
			rowSumSq += gray * gray
			if y == 0 {
				p.integral[off] = rowSum
				p.integralSq[off] = rowSumSq
			} else {
				p.integral[off] = p.integral[(y-1)*w+x] + rowSum
				p.integralSq[off] = p.integralSq[(y-1)*w+x] + rowSumSq
			}
		}
	}
	return p
}

// buildTemplateStats converts a template to grayscale and precomputes its
// mean and standard deviation.
func buildTemplateStats(img image.Image) *templateStats {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	t := &templateStats{
		gray: make([]float64, w*h),
		w:    w,
		h:    h,
	}
	var sum, sumSq float64
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			gray := imaging.Luminance(uint8(r>>8), uint8(g>>8), uint8(bl>>8))
			t.gray[y*w+x] = gray
			sum += gray
			sumSq += gray * gray
		}
	}
	n := float64(w * h)
	t.mean = sum / n
	if variance := (sumSq - sum*sum/n) / n; variance > 0 {
		t.std = math.Sqrt(variance)
	}
	return t
}

// integralSum returns the inclusive sum over the rectangle [x0..x1]x[y0..y1]
// from a summed-area table stored row-major with width w.
func integralSum(table []float64, w, x0, y0, x1, y1 int) float64 {
	at := func(x, y int) float64 {
		if x < 0 || y < 0 {
			return 0
		}
		return table[y*w+x]
	}
	return at(x1, y1) - at(x0-1, y1) - at(x1, y0-1) + at(x0-1, y0-1)
}
