package detection

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/anthonynsimon/bild/clone"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/icon-detect-mcp/internal/geometry"
)

// Marker colors for the debug overlay. Available detections get green boxes,
// dark ones red, so a human can verify the brightness split at a glance.
var (
	availableColor = color.RGBA{0, 200, 80, 255}
	darkColor      = color.RGBA{220, 50, 50, 255}
	labelTextColor = color.RGBA{255, 255, 255, 255}
	labelBackColor = color.RGBA{0, 0, 0, 200}
)

// RenderDebug draws the detection result onto a copy of the screenshot and
// writes it to dir as a PNG.
//
// Each brightness sample gets a bounding box (green = available, red =
// dark), its sequence number, and its measured brightness. A summary block
// in the top-left corner shows the counts, the thresholds used, and the
// color legend. The screenshot itself is never mutated.
//
// The file name is derived from the wall clock at nanosecond resolution
// (icon-detect-20060102-150405.000000000.png), so concurrent calls do not
// collide. The directory is created if missing.
//
// Returns the path of the written file. All failures wrap ErrRenderFailure;
// callers treat them as warnings because the detection they annotate has
// already succeeded.
func RenderDebug(screenshot image.Image, res *Result, dir string) (string, error) {
	canvas := clone.AsRGBA(screenshot)

	for i, s := range res.Samples {
		boxColor := darkColor
		if s.Available {
			boxColor = availableColor
		}
		drawBox(canvas, s.Rect, boxColor)
		drawLabel(canvas, s.Rect.X, s.Rect.Y-13,
			fmt.Sprintf("%d %.1f", i+1, s.Brightness))
	}

	summary := []string{
		fmt.Sprintf("available %d  dark %d  raw %d  deduped %d",
			res.Count, res.DarkFiltered, res.RawMatches, res.DeduplicatedMatches),
		fmt.Sprintf("confidence %.2f  overlap %.2f  brightness %.0f",
			res.ConfidenceUsed, res.OverlapThresholdUsed, res.BrightnessThresholdUsed),
		"green box = available, red box = dark",
	}
	for i, line := range summary {
		drawLabel(canvas, 4, 4+i*14, line)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: creating %s: %v", ErrRenderFailure, dir, err)
	}

	name := fmt.Sprintf("icon-detect-%s.png", time.Now().Format("20060102-150405.000000000"))
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: creating %s: %v", ErrRenderFailure, path, err)
	}
	defer f.Close()

	if err := png.Encode(f, canvas); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("%w: encoding %s: %v", ErrRenderFailure, path, err)
	}

	return path, nil
}

// drawBox draws a 2-pixel rectangle outline, clipped to the canvas.
func drawBox(canvas *image.RGBA, r geometry.Rect, c color.RGBA) {
	x1, y1 := r.X, r.Y
	x2, y2 := r.X+r.Width-1, r.Y+r.Height-1

	for t := 0; t < 2; t++ {
		for x := x1; x <= x2; x++ {
			setIfInside(canvas, x, y1+t, c)
			setIfInside(canvas, x, y2-t, c)
		}
		for y := y1; y <= y2; y++ {
			setIfInside(canvas, x1+t, y, c)
			setIfInside(canvas, x2-t, y, c)
		}
	}
}

func setIfInside(canvas *image.RGBA, x, y int, c color.RGBA) {
	if image.Pt(x, y).In(canvas.Bounds()) {
		canvas.Set(x, y, c)
	}
}

// drawLabel draws one line of text at (x, y) on a filled background using
// the 7x13 basic font. Labels that would start above or left of the canvas
// are nudged inside so edge detections stay annotated.
func drawLabel(canvas *image.RGBA, x, y int, text string) {
	const charWidth, charHeight = 7, 13

	bounds := canvas.Bounds()
	if x < bounds.Min.X {
		x = bounds.Min.X
	}
	if y < bounds.Min.Y {
		y = bounds.Min.Y
	}

	bg := image.Rect(x, y, x+len(text)*charWidth+2, y+charHeight).Intersect(bounds)
	for py := bg.Min.Y; py < bg.Max.Y; py++ {
		for px := bg.Min.X; px < bg.Max.X; px++ {
			canvas.Set(px, py, labelBackColor)
		}
	}

	d := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(labelTextColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x+1, y+charHeight-3),
	}
	d.DrawString(text)
}
