package calibrate

import (
	"image"
	"image/color"
	"testing"

	"graphdig/internal/frame"
	"graphdig/pkg/geometry"

	"gocv.io/x/gocv"
)

// labeledChart renders only axis labels around an otherwise empty frame
// region, isolating OCR calibration from frame and marker detection.
func labeledChart() (gocv.Mat, frame.Frame) {
	img := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(255, 255, 255, 0), 600, 800, gocv.MatTypeCV8UC3)
	black := color.RGBA{A: 255}
	font := gocv.FontHersheySimplex

	// X labels below the frame region, clear of the Y strip
	gocv.PutText(&img, "0", image.Point{X: 110, Y: 560}, font, 1.5, black, 2)
	gocv.PutText(&img, "10", image.Point{X: 660, Y: 560}, font, 1.5, black, 2)

	// Y labels left of the frame region, clear of the X strip
	gocv.PutText(&img, "100", image.Point{X: 10, Y: 120}, font, 1.2, black, 2)
	gocv.PutText(&img, "0", image.Point{X: 40, Y: 490}, font, 1.2, black, 2)

	f := frame.Frame{
		TopLeft:     geometry.PointInt{X: 100, Y: 100},
		TopRight:    geometry.PointInt{X: 700, Y: 100},
		BottomLeft:  geometry.PointInt{X: 100, Y: 500},
		BottomRight: geometry.PointInt{X: 700, Y: 500},
		Width:       600,
		Height:      400,
	}
	return img, f
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine()
	if err != nil {
		t.Skipf("OCR engine unavailable: %v", err)
	}
	t.Cleanup(func() { engine.Close() })
	return engine
}

func TestCalibrateXFromLabels(t *testing.T) {
	img, f := labeledChart()
	defer img.Close()
	engine := newTestEngine(t)

	cal := New(img, f, engine, DefaultConfig()).CalibrateX()
	if cal.Degraded() {
		t.Fatalf("X calibration degraded despite rendered labels: %+v", cal)
	}
	if cal.MinValue != 0 || cal.MaxValue != 10 {
		t.Errorf("X calibration = [%g, %g], want [0, 10]", cal.MinValue, cal.MaxValue)
	}
}

func TestCalibrateYFromLabels(t *testing.T) {
	img, f := labeledChart()
	defer img.Close()
	engine := newTestEngine(t)

	cal := New(img, f, engine, DefaultConfig()).CalibrateY()
	if cal.Degraded() {
		t.Fatalf("Y calibration degraded despite rendered labels: %+v", cal)
	}
	if cal.MinValue != 0 || cal.MaxValue != 100 {
		t.Errorf("Y calibration = [%g, %g], want [0, 100]", cal.MinValue, cal.MaxValue)
	}
}

func TestCalibrateDegradesWithoutEngine(t *testing.T) {
	img, f := labeledChart()
	defer img.Close()

	cal := New(img, f, nil, DefaultConfig())
	if x := cal.CalibrateX(); !x.Degraded() {
		t.Errorf("X calibration without an engine should degrade, got %+v", x)
	}
	if y := cal.CalibrateY(); !y.Degraded() {
		t.Errorf("Y calibration without an engine should degrade, got %+v", y)
	}
}
