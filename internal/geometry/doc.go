// Package geometry provides axis-aligned rectangle math for detection results.
//
// The central operation is RemoveOverlapping, which collapses clusters of
// near-identical bounding boxes (as produced by template matching at adjacent
// pixel offsets) into a single representative rectangle.
//
// # Overlap Metric
//
// Overlap between two rectangles is measured as the intersection area divided
// by the area of the SMALLER rectangle, not intersection-over-union. This
// rewards near-containment: a box that sits almost entirely inside another is
// a duplicate even when the two boxes differ slightly in size due to matching
// jitter.
//
// # Coordinate System
//
// Rectangles use image pixel coordinates with the origin at the top-left
// corner: X increases rightward, Y increases downward. Width and Height are
// always positive for valid rectangles.
package geometry
