package geometry

import "image"

// Rect represents an axis-aligned rectangle in image pixel coordinates.
//
// (X, Y) is the top-left corner; Width and Height extend rightward and
// downward. A Rect is a plain value and is never mutated after creation.
type Rect struct {
	X      int `json:"x"`      // Left edge (inclusive)
	Y      int `json:"y"`      // Top edge (inclusive)
	Width  int `json:"width"`  // Horizontal extent in pixels
	Height int `json:"height"` // Vertical extent in pixels
}

// Area returns the rectangle's area in square pixels.
// Rectangles with non-positive dimensions have area 0.
func (r Rect) Area() int {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return r.Width * r.Height
}

// Empty reports whether the rectangle encloses no pixels.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Center returns the center point of the rectangle (integer division).
func (r Rect) Center() (x, y int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Bounds converts the rectangle to a standard image.Rectangle with the
// usual inclusive-min, exclusive-max convention.
func (r Rect) Bounds() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// FromBounds converts a standard image.Rectangle into a Rect.
func FromBounds(b image.Rectangle) Rect {
	return Rect{X: b.Min.X, Y: b.Min.Y, Width: b.Dx(), Height: b.Dy()}
}

// Intersect returns the intersection of two rectangles. If the rectangles
// do not overlap, the result is empty (Area() == 0).
func (r Rect) Intersect(other Rect) Rect {
	x1 := maxInt(r.X, other.X)
	y1 := maxInt(r.Y, other.Y)
	x2 := minInt(r.X+r.Width, other.X+other.Width)
	y2 := minInt(r.Y+r.Height, other.Y+other.Height)
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}

// OverlapRatio measures how much two rectangles overlap, as the intersection
// area divided by the area of the smaller rectangle.
//
// The result is in [0, 1]:
//   - 0.0 = no overlap at all
//   - 1.0 = the smaller rectangle lies entirely inside the larger one
//     (for equal-size rectangles this means they are identical)
//
// If either rectangle is empty, the ratio is 0.
func OverlapRatio(a, b Rect) float64 {
	smaller := a.Area()
	if ba := b.Area(); ba < smaller {
		smaller = ba
	}
	if smaller == 0 {
		return 0
	}
	inter := a.Intersect(b).Area()
	return float64(inter) / float64(smaller)
}

// RemoveOverlapping filters a sequence of rectangles so that no two survivors
// overlap by overlapThreshold or more (per OverlapRatio).
//
// The algorithm is greedy: rectangles are processed in input order, and each
// candidate is compared against every already-accepted rectangle. A candidate
// whose overlap ratio with any accepted rectangle reaches the threshold is
// discarded; otherwise it is accepted. Callers that have confidence scores
// should sort by descending confidence before calling so that the strongest
// detection in each cluster survives.
//
// Accepted rectangles are returned in their original input order. The input
// slice is never modified.
//
// # Threshold Semantics
//
//   - overlapThreshold near 0 treats any touching rectangles as duplicates
//   - overlapThreshold of 1.0 removes only rectangles whose smaller member
//     is fully contained in an accepted one (exact duplicates, for
//     equal-size rectangles)
//
// Complexity is O(n²) in the number of rectangles, which is fine for the
// expected tens of template-match candidates. Re-architect around a spatial
// index before reusing this for thousands of boxes.
func RemoveOverlapping(rects []Rect, overlapThreshold float64) []Rect {
	accepted := make([]Rect, 0, len(rects))
	for _, r := range rects {
		duplicate := false
		for _, a := range accepted {
			if OverlapRatio(r, a) >= overlapThreshold {
				duplicate = true
				break
			}
		}
		if !duplicate {
			accepted = append(accepted, r)
		}
	}
	return accepted
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
