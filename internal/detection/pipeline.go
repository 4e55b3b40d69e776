package detection

import (
	"errors"
	"fmt"
	"image"
	"log"
	"sort"

	"github.com/ironsheep/icon-detect-mcp/internal/geometry"
	"github.com/ironsheep/icon-detect-mcp/internal/imaging"
)

// Default configuration values. These match the behavior the detector was
// calibrated against; see Config for the meaning of each field.
const (
	DefaultConfidence          = 0.8
	DefaultOverlapThreshold    = 0.5
	DefaultBrightnessThreshold = 100.0
	DefaultDebugDir            = "debug_images"
)

// Config carries every tunable of the detection pipeline.
//
// Construct with DefaultConfig and override fields as needed; pass by value
// into Detect. The zero Config is NOT valid (a zero overlap threshold is out
// of range), which keeps accidental unconfigured calls from silently running
// with meaningless thresholds.
type Config struct {
	// Confidence is the minimum NCC score in [0, 1] for a window to be
	// considered a match. Default 0.8.
	Confidence float64 `json:"confidence"`

	// OverlapThreshold is the overlap ratio in (0, 1] at which two boxes
	// are considered duplicates. Default 0.5.
	OverlapThreshold float64 `json:"overlap_threshold"`

	// FilterDark controls whether detections below BrightnessThreshold are
	// excluded from the reported locations. Default true.
	FilterDark bool `json:"filter_dark"`

	// BrightnessThreshold is the minimum mean BT.601 luminance in [0, 255]
	// for a detection to count as available. Default 100.
	BrightnessThreshold float64 `json:"brightness_threshold"`

	// DebugImage controls whether an annotated copy of the screenshot is
	// rendered and persisted. Default true.
	DebugImage bool `json:"debug_image"`

	// DebugDir is the directory debug images are written to.
	// Default "debug_images".
	DebugDir string `json:"debug_dir,omitempty"`
}

// DefaultConfig returns the documented default configuration.
func DefaultConfig() Config {
	return Config{
		Confidence:          DefaultConfidence,
		OverlapThreshold:    DefaultOverlapThreshold,
		FilterDark:          true,
		BrightnessThreshold: DefaultBrightnessThreshold,
		DebugImage:          true,
		DebugDir:            DefaultDebugDir,
	}
}

// Validate checks every field against its documented domain. All violations
// wrap ErrInvalidConfiguration. Validation happens before any image work.
func (c Config) Validate() error {
	if c.Confidence < 0 || c.Confidence > 1 {
		return fmt.Errorf("%w: confidence %v outside [0, 1]", ErrInvalidConfiguration, c.Confidence)
	}
	if c.OverlapThreshold <= 0 || c.OverlapThreshold > 1 {
		return fmt.Errorf("%w: overlap_threshold %v outside (0, 1]", ErrInvalidConfiguration, c.OverlapThreshold)
	}
	if c.BrightnessThreshold < 0 || c.BrightnessThreshold > 255 {
		return fmt.Errorf("%w: brightness_threshold %v outside [0, 255]", ErrInvalidConfiguration, c.BrightnessThreshold)
	}
	return nil
}

// Result is the terminal output of one Detect call. It is a pure value: it
// owns no resources and has no lifecycle beyond being read.
//
// Invariants:
//   - DeduplicatedMatches <= RawMatches
//   - Count + DarkFiltered == DeduplicatedMatches when FilterDark is on
//   - Count == DeduplicatedMatches and DarkFiltered == 0 when off
type Result struct {
	// Count is the number of available detections; len(Locations).
	Count int `json:"count"`

	// Locations are the available rectangles, ordered row-major by origin
	// (ascending Y, then X). Callers index into this positionally, so the
	// ordering is part of the contract.
	Locations []geometry.Rect `json:"locations"`

	// RawMatches is the number of candidates the matcher produced.
	RawMatches int `json:"raw_matches"`

	// DeduplicatedMatches is the number of rectangles after overlap
	// removal.
	DeduplicatedMatches int `json:"deduplicated_matches"`

	// DarkFiltered is the number of deduplicated rectangles excluded for
	// being below the brightness threshold. Always 0 when FilterDark is
	// off.
	DarkFiltered int `json:"dark_buttons_filtered"`

	// Samples holds one brightness sample per deduplicated rectangle,
	// including the dark ones, in the same row-major order.
	Samples []imaging.BrightnessSample `json:"brightness_info"`

	// Thresholds actually used, echoed for diagnostics.
	ConfidenceUsed          float64 `json:"confidence_used"`
	OverlapThresholdUsed    float64 `json:"overlap_threshold_used"`
	BrightnessThresholdUsed float64 `json:"brightness_threshold_used"`

	// DebugImagePath is the rendered debug image location, empty when
	// rendering was disabled or failed.
	DebugImagePath string `json:"debug_image_path,omitempty"`

	// RenderWarning describes a debug-render failure. Detection results
	// are complete and valid even when this is set.
	RenderWarning string `json:"render_warning,omitempty"`
}

// Detect runs the full pipeline on one screenshot: match, de-duplicate,
// classify, filter, optionally render a debug image.
//
// The screenshot and template are never mutated. Any error before the render
// step aborts the call with no partial result. A render failure alone does
// not: the result is returned with RenderWarning set and DebugImagePath
// empty, and the failure logged, since detection itself succeeded.
//
// Errors: ErrInvalidConfiguration, ErrInvalidImage (both before any pixel
// work on the failing input).
func Detect(screenshot, template image.Image, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	candidates, err := FindCandidates(screenshot, template, cfg.Confidence)
	if err != nil {
		return nil, err
	}

	deduped := dedupeCandidates(candidates, cfg.OverlapThreshold)

	samples := make([]imaging.BrightnessSample, 0, len(deduped))
	for _, r := range deduped {
		samples = append(samples, imaging.ClassifyRegion(screenshot, r, cfg.BrightnessThreshold))
	}

	locations := make([]geometry.Rect, 0, len(samples))
	dark := 0
	for _, s := range samples {
		if cfg.FilterDark && !s.Available {
			dark++
			continue
		}
		locations = append(locations, s.Rect)
	}

	res := &Result{
		Count:                   len(locations),
		Locations:               locations,
		RawMatches:              len(candidates),
		DeduplicatedMatches:     len(deduped),
		DarkFiltered:            dark,
		Samples:                 samples,
		ConfidenceUsed:          cfg.Confidence,
		OverlapThresholdUsed:    cfg.OverlapThreshold,
		BrightnessThresholdUsed: cfg.BrightnessThreshold,
	}

	if cfg.DebugImage {
		dir := cfg.DebugDir
		if dir == "" {
			dir = DefaultDebugDir
		}
		path, err := RenderDebug(screenshot, res, dir)
		if err != nil {
			log.Printf("warning: %v", err)
			res.RenderWarning = err.Error()
		} else {
			res.DebugImagePath = path
		}
	}

	return res, nil
}

// DetectFromFiles loads the screenshot and template through the cache and
// runs Detect.
//
// A template load failure is reported as ErrTemplateMissing; a screenshot
// load failure as ErrInvalidImage. Configuration is validated first, before
// any file I/O.
func DetectFromFiles(cache *imaging.ImageCache, screenshotPath, templatePath string, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	template, err := cache.Load(templatePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateMissing, templatePath, err)
	}
	screenshot, err := cache.Load(screenshotPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidImage, screenshotPath, err)
	}

	return Detect(screenshot, template, cfg)
}

// LocateResult is the outcome of a best-single-match search.
type LocateResult struct {
	// Found is true when the best window reached the confidence threshold.
	Found bool `json:"found"`

	// Rect is the best-scoring window (only meaningful when Found).
	Rect geometry.Rect `json:"rect"`

	// CenterX, CenterY is the center of Rect, the point a caller would
	// tap or click.
	CenterX int `json:"center_x"`
	CenterY int `json:"center_y"`

	// Score is the best NCC score observed, even when below threshold.
	Score float64 `json:"score"`
}

// LocateBest finds the single highest-scoring occurrence of template in
// screenshot.
//
// Unlike Detect this never classifies brightness and reports at most one
// rectangle; it exists for "find this one button and tell me where to tap"
// callers. Returns Found=false with the best observed score when no window
// reaches confidence.
func LocateBest(screenshot, template image.Image, confidence float64) (*LocateResult, error) {
	if confidence < 0 || confidence > 1 {
		return nil, fmt.Errorf("%w: confidence %v outside [0, 1]", ErrInvalidConfiguration, confidence)
	}

	// Collect every non-negative score so the best sub-threshold score can
	// be reported for tuning.
	candidates, err := FindCandidates(screenshot, template, 0)
	if err != nil {
		return nil, err
	}

	res := &LocateResult{}
	best := -1.0
	for _, c := range candidates {
		if c.Score > best {
			best = c.Score
			res.Rect = c.Rect
		}
	}
	if best < 0 {
		return res, nil
	}

	res.Score = best
	res.Found = best >= confidence
	res.CenterX, res.CenterY = res.Rect.Center()
	return res, nil
}

// dedupeCandidates orders candidates by descending score (scan order breaks
// ties) so the strongest box of each overlap cluster survives, removes
// overlaps, then re-sorts the survivors row-major for the positional
// ordering contract.
func dedupeCandidates(candidates []Candidate, overlapThreshold float64) []geometry.Rect {
	byScore := make([]Candidate, len(candidates))
	copy(byScore, candidates)
	sort.SliceStable(byScore, func(i, j int) bool {
		return byScore[i].Score > byScore[j].Score
	})

	rects := make([]geometry.Rect, len(byScore))
	for i, c := range byScore {
		rects[i] = c.Rect
	}

	kept := geometry.RemoveOverlapping(rects, overlapThreshold)

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Y != kept[j].Y {
			return kept[i].Y < kept[j].Y
		}
		return kept[i].X < kept[j].X
	})
	return kept
}

// IsConfigurationError reports whether err stems from out-of-range
// configuration rather than bad input data.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration)
}
