// Package imaging provides image loading and pixel-level analysis for the
// icon detection pipeline.
//
// This package implements the two input collaborators of the detector (the
// screenshot provider and the template store) as a thread-safe decoded-image
// cache, plus the region-level pixel statistics (luminance, mean color) used
// to classify detections as available or dark.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//
// # Luminance Metric
//
// All brightness values in this package use ITU-R BT.601 weighted luminance:
//
//	Y = 0.299*R + 0.587*G + 0.114*B
//
// scaled to the 0–255 range. The template matcher converts images to
// grayscale with the same weights, so a single calibrated threshold (the
// documented default is 100) is meaningful across the whole pipeline. Do not
// mix in a different luminance formula without recalibrating thresholds.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Region statistics functions are
// pure and can be called concurrently on shared immutable images.
package imaging
