// Package mapping converts pixel-space coordinates to calibrated data
// values given a frame and per-axis calibrations.
package mapping

import (
	"graphdig/internal/calibrate"
	"graphdig/internal/frame"
	"graphdig/pkg/geometry"
)

// Mapper converts pixel positions inside a frame to data values.
type Mapper struct {
	frame frame.Frame
	xCal  calibrate.Calibration
	yCal  calibrate.Calibration
}

// New creates a mapper for one frame/calibration pair.
func New(f frame.Frame, xCal, yCal calibrate.Calibration) *Mapper {
	return &Mapper{frame: f, xCal: xCal, yCal: yCal}
}

// Map converts an absolute pixel position to calibrated data values.
// Pixel Y grows downward while data Y grows upward, so the normalized Y
// coordinate is flipped.
func (m *Mapper) Map(p geometry.PointInt) (x, y float64) {
	normX := (float64(p.X) - float64(m.frame.TopLeft.X)) / float64(m.frame.Width)
	normY := 1 - (float64(p.Y)-float64(m.frame.TopLeft.Y))/float64(m.frame.Height)

	// The zero-crossing form applies to X only; symmetric Y axes use the
	// plain affine form regardless of calibration flags.
	x = ValueAt(normX, m.xCal)
	y = affine(normY, m.yCal)
	return x, y
}

// ValueAt maps a normalized [0,1] coordinate through a calibration. When
// the calibration has a zero position the mapping is piecewise-linear
// around it, modeling axes whose visual zero is not at a frame edge;
// otherwise it is plain affine.
func ValueAt(norm float64, cal calibrate.Calibration) float64 {
	if cal.ZeroPosition == nil {
		return affine(norm, cal)
	}

	zero := *cal.ZeroPosition
	if norm < zero {
		return cal.MinValue * (norm / zero)
	}
	return cal.MaxValue * ((norm - zero) / (1 - zero))
}

// NormAt inverts ValueAt, recovering the normalized coordinate for a data
// value. Used for overlay rendering and round-trip verification.
func NormAt(value float64, cal calibrate.Calibration) float64 {
	if cal.ZeroPosition == nil {
		if cal.MaxValue == cal.MinValue {
			return 0
		}
		return (value - cal.MinValue) / (cal.MaxValue - cal.MinValue)
	}

	zero := *cal.ZeroPosition
	if value < 0 && cal.MinValue != 0 {
		return zero * (value / cal.MinValue)
	}
	if cal.MaxValue == 0 {
		return zero
	}
	return zero + (value/cal.MaxValue)*(1-zero)
}

func affine(norm float64, cal calibrate.Calibration) float64 {
	return cal.MinValue + norm*(cal.MaxValue-cal.MinValue)
}
