package mapping

import (
	"math"
	"testing"

	"graphdig/internal/calibrate"
	"graphdig/internal/frame"
	"graphdig/pkg/geometry"
)

const tolerance = 1e-9

func testFrame() frame.Frame {
	return frame.Frame{
		TopLeft:     geometry.PointInt{X: 100, Y: 50},
		TopRight:    geometry.PointInt{X: 500, Y: 50},
		BottomLeft:  geometry.PointInt{X: 100, Y: 350},
		BottomRight: geometry.PointInt{X: 500, Y: 350},
		Width:       400,
		Height:      300,
	}
}

func TestMapAffine(t *testing.T) {
	m := New(testFrame(), calibrate.Manual(0, 10), calibrate.Manual(0, 100))

	tests := []struct {
		name  string
		pixel geometry.PointInt
		wantX float64
		wantY float64
	}{
		{"bottom-left corner", geometry.PointInt{X: 100, Y: 350}, 0, 0},
		{"top-right corner", geometry.PointInt{X: 500, Y: 50}, 10, 100},
		{"center", geometry.PointInt{X: 300, Y: 200}, 5, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := m.Map(tt.pixel)
			if math.Abs(x-tt.wantX) > tolerance || math.Abs(y-tt.wantY) > tolerance {
				t.Errorf("Map(%v) = (%.6f, %.6f), want (%.1f, %.1f)", tt.pixel, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestValueAtZeroCrossing(t *testing.T) {
	zero := 0.4
	cal := calibrate.Calibration{MinValue: -4, MaxValue: 6, ZeroPosition: &zero, IsSymmetric: true}

	// At the zero position the positive branch starts from 0
	if got := ValueAt(0.4, cal); math.Abs(got) > tolerance {
		t.Errorf("ValueAt(0.4) = %.6f, want 0", got)
	}
	// Right edge reaches max
	if got := ValueAt(1.0, cal); math.Abs(got-6) > tolerance {
		t.Errorf("ValueAt(1.0) = %.6f, want 6", got)
	}
	// Midpoint of the positive span
	if got := ValueAt(0.7, cal); math.Abs(got-3) > tolerance {
		t.Errorf("ValueAt(0.7) = %.6f, want 3", got)
	}
}

func TestRoundTrip(t *testing.T) {
	zero := 0.4
	cals := map[string]calibrate.Calibration{
		"affine":        calibrate.Manual(-3, 17),
		"zero-crossing": {MinValue: -4, MaxValue: 6, ZeroPosition: &zero, IsSymmetric: true},
	}

	for name, cal := range cals {
		t.Run(name, func(t *testing.T) {
			for norm := 0.01; norm < 1.0; norm += 0.07 {
				value := ValueAt(norm, cal)
				back := NormAt(value, cal)
				if math.Abs(back-norm) > 1e-9 {
					t.Errorf("norm %.2f -> value %.4f -> norm %.6f", norm, value, back)
				}
			}
		})
	}
}

func TestYAxisIgnoresZeroPosition(t *testing.T) {
	// The zero-crossing form applies only to X. A Y calibration carrying
	// a zero position must still map through the plain affine form.
	zero := 0.5
	yCal := calibrate.Calibration{MinValue: -10, MaxValue: 10, ZeroPosition: &zero, IsSymmetric: true}
	m := New(testFrame(), calibrate.Manual(0, 1), yCal)

	// Pixel at 3/4 frame height from the bottom: normY = 0.75
	_, y := m.Map(geometry.PointInt{X: 100, Y: 125})
	want := -10 + 0.75*20
	if math.Abs(y-want) > tolerance {
		t.Errorf("y = %.6f, want %.6f (affine)", y, want)
	}
}
