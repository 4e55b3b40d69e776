package geometry

import (
	"reflect"
	"testing"
)

func TestRect_Area(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		want int
	}{
		{"unit", Rect{0, 0, 1, 1}, 1},
		{"normal", Rect{10, 20, 30, 40}, 1200},
		{"zero width", Rect{0, 0, 0, 10}, 0},
		{"zero height", Rect{0, 0, 10, 0}, 0},
		{"negative width", Rect{0, 0, -5, 10}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Area(); got != tt.want {
				t.Errorf("Area() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRect_Intersect(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want Rect
	}{
		{"identical", Rect{0, 0, 10, 10}, Rect{0, 0, 10, 10}, Rect{0, 0, 10, 10}},
		{"partial", Rect{0, 0, 10, 10}, Rect{5, 5, 10, 10}, Rect{5, 5, 5, 5}},
		{"contained", Rect{0, 0, 20, 20}, Rect{5, 5, 5, 5}, Rect{5, 5, 5, 5}},
		{"disjoint", Rect{0, 0, 10, 10}, Rect{20, 20, 10, 10}, Rect{}},
		{"edge touching", Rect{0, 0, 10, 10}, Rect{10, 0, 10, 10}, Rect{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Intersect(tt.b)
			if got != tt.want {
				t.Errorf("Intersect() = %+v, want %+v", got, tt.want)
			}
			// Intersection is symmetric
			if rev := tt.b.Intersect(tt.a); rev != got {
				t.Errorf("Intersect not symmetric: %+v vs %+v", got, rev)
			}
		})
	}
}

func TestOverlapRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want float64
	}{
		{"identical", Rect{0, 0, 10, 10}, Rect{0, 0, 10, 10}, 1.0},
		{"disjoint", Rect{0, 0, 10, 10}, Rect{50, 50, 10, 10}, 0.0},
		{"half overlap equal size", Rect{0, 0, 10, 10}, Rect{5, 0, 10, 10}, 0.5},
		{"small inside large", Rect{0, 0, 100, 100}, Rect{10, 10, 5, 5}, 1.0},
		{"quarter overlap", Rect{0, 0, 10, 10}, Rect{5, 5, 10, 10}, 0.25},
		{"empty rectangle", Rect{0, 0, 0, 0}, Rect{0, 0, 10, 10}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OverlapRatio(tt.a, tt.b); got != tt.want {
				t.Errorf("OverlapRatio() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOverlapRatio_UsesSmallerArea(t *testing.T) {
	// A 10x10 box near-contained in a 30x30 box: ratio should be measured
	// against the 10x10 area, giving a high ratio even though IoU is low.
	big := Rect{0, 0, 30, 30}
	small := Rect{22, 0, 10, 10}

	got := OverlapRatio(big, small)
	want := 0.8 // 8x10 intersection over 100
	if got != want {
		t.Errorf("OverlapRatio() = %v, want %v", got, want)
	}
}

func TestRemoveOverlapping(t *testing.T) {
	tests := []struct {
		name      string
		rects     []Rect
		threshold float64
		want      []Rect
	}{
		{
			name:      "empty input",
			rects:     nil,
			threshold: 0.5,
			want:      []Rect{},
		},
		{
			name:      "single rectangle",
			rects:     []Rect{{0, 0, 10, 10}},
			threshold: 0.5,
			want:      []Rect{{0, 0, 10, 10}},
		},
		{
			name: "jittered cluster collapses to first",
			rects: []Rect{
				{100, 100, 20, 20},
				{101, 100, 20, 20},
				{100, 102, 20, 20},
			},
			threshold: 0.5,
			want:      []Rect{{100, 100, 20, 20}},
		},
		{
			name: "distant rectangles all survive",
			rects: []Rect{
				{0, 0, 20, 20},
				{100, 0, 20, 20},
				{0, 100, 20, 20},
			},
			threshold: 0.5,
			want: []Rect{
				{0, 0, 20, 20},
				{100, 0, 20, 20},
				{0, 100, 20, 20},
			},
		},
		{
			name: "threshold 1.0 keeps overlapping non-duplicates",
			rects: []Rect{
				{0, 0, 20, 20},
				{10, 0, 20, 20},
			},
			threshold: 1.0,
			want: []Rect{
				{0, 0, 20, 20},
				{10, 0, 20, 20},
			},
		},
		{
			name: "threshold 1.0 removes exact duplicates",
			rects: []Rect{
				{5, 5, 20, 20},
				{5, 5, 20, 20},
			},
			threshold: 1.0,
			want: []Rect{{5, 5, 20, 20}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RemoveOverlapping(tt.rects, tt.threshold)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("RemoveOverlapping() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRemoveOverlapping_NeverGrows(t *testing.T) {
	rects := []Rect{
		{0, 0, 10, 10},
		{2, 2, 10, 10},
		{50, 50, 10, 10},
		{51, 50, 10, 10},
		{200, 0, 10, 10},
	}

	for _, threshold := range []float64{0.1, 0.3, 0.5, 0.8, 1.0} {
		got := RemoveOverlapping(rects, threshold)
		if len(got) > len(rects) {
			t.Errorf("threshold %v: output length %d exceeds input %d", threshold, len(got), len(rects))
		}
	}
}

func TestRemoveOverlapping_Idempotent(t *testing.T) {
	rects := []Rect{
		{0, 0, 20, 20},
		{5, 5, 20, 20},
		{100, 100, 20, 20},
		{104, 100, 20, 20},
		{300, 10, 20, 20},
	}

	first := RemoveOverlapping(rects, 0.5)
	second := RemoveOverlapping(first, 0.5)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("second pass changed the set: %+v vs %+v", first, second)
	}
}

func TestRemoveOverlapping_PreservesInputOrder(t *testing.T) {
	rects := []Rect{
		{300, 0, 10, 10},
		{0, 0, 10, 10},
		{150, 0, 10, 10},
	}

	got := RemoveOverlapping(rects, 0.5)
	if !reflect.DeepEqual(got, rects) {
		t.Errorf("order changed: %+v, want %+v", got, rects)
	}
}
