package detection

import (
	"image"
	"image/png"
	"os"
	"testing"

	"github.com/ironsheep/icon-detect-mcp/internal/geometry"
	"github.com/ironsheep/icon-detect-mcp/internal/imaging"
)

// writePNG encodes img to path, failing the test on any error.
func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encoding %s: %v", path, err)
	}
}

func renderFixture() (*image.RGBA, *Result) {
	shot := makeScreenshot(160, 120, 40, nil)
	res := &Result{
		Count:                   1,
		Locations:               []geometry.Rect{{X: 30, Y: 30, Width: 20, Height: 20}},
		RawMatches:              3,
		DeduplicatedMatches:     2,
		DarkFiltered:            1,
		ConfidenceUsed:          0.8,
		OverlapThresholdUsed:    0.5,
		BrightnessThresholdUsed: 100,
		Samples: []imaging.BrightnessSample{
			{Rect: geometry.Rect{X: 30, Y: 30, Width: 20, Height: 20}, Brightness: 150, Available: true},
			{Rect: geometry.Rect{X: 90, Y: 60, Width: 20, Height: 20}, Brightness: 45, Available: false},
		},
	}
	return shot, res
}

func TestRenderDebug_WritesFile(t *testing.T) {
	shot, res := renderFixture()
	dir := t.TempDir()

	path, err := RenderDebug(shot, res, dir)
	if err != nil {
		t.Fatalf("RenderDebug failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening rendered file: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding rendered file: %v", err)
	}
	if got := img.Bounds(); got.Dx() != 160 || got.Dy() != 120 {
		t.Errorf("rendered image %dx%d, want 160x120", got.Dx(), got.Dy())
	}
}

func TestRenderDebug_DoesNotMutateScreenshot(t *testing.T) {
	shot, res := renderFixture()
	before := make([]uint8, len(shot.Pix))
	copy(before, shot.Pix)

	if _, err := RenderDebug(shot, res, t.TempDir()); err != nil {
		t.Fatalf("RenderDebug failed: %v", err)
	}

	for i := range before {
		if shot.Pix[i] != before[i] {
			t.Fatal("screenshot pixels changed during rendering")
		}
	}
}

func TestRenderDebug_MarksDetections(t *testing.T) {
	shot, res := renderFixture()
	dir := t.TempDir()

	path, err := RenderDebug(shot, res, dir)
	if err != nil {
		t.Fatalf("RenderDebug failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening rendered file: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding rendered file: %v", err)
	}

	// The top edge of each box must carry the marker color.
	checkEdge := func(r geometry.Rect, want [3]uint8) {
		t.Helper()
		px := img.At(r.X+r.Width/2, r.Y)
		cr, cg, cb, _ := px.RGBA()
		got := [3]uint8{uint8(cr >> 8), uint8(cg >> 8), uint8(cb >> 8)}
		if got != want {
			t.Errorf("edge of %+v colored %v, want %v", r, got, want)
		}
	}
	checkEdge(res.Samples[0].Rect, [3]uint8{0, 200, 80})
	checkEdge(res.Samples[1].Rect, [3]uint8{220, 50, 50})
}

func TestRenderDebug_UniqueFilenames(t *testing.T) {
	shot, res := renderFixture()
	dir := t.TempDir()

	first, err := RenderDebug(shot, res, dir)
	if err != nil {
		t.Fatalf("RenderDebug failed: %v", err)
	}
	second, err := RenderDebug(shot, res, dir)
	if err != nil {
		t.Fatalf("RenderDebug failed: %v", err)
	}
	if first == second {
		t.Errorf("two renders produced the same path %q", first)
	}
}
