// Package frame locates a chart's axis lines and its rectangular plot frame.
package frame

import (
	"math"

	"graphdig/pkg/geometry"
)

// Axis represents a detected axis line segment.
type Axis struct {
	P1         geometry.PointInt `json:"p1"`
	P2         geometry.PointInt `json:"p2"`
	Horizontal bool              `json:"horizontal"`
}

// Length returns the segment length in pixels.
func (a Axis) Length() float64 {
	dx := float64(a.P2.X - a.P1.X)
	dy := float64(a.P2.Y - a.P1.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Center returns the segment's center position along its perpendicular
// direction: the mean Y for a horizontal axis, the mean X for a vertical one.
func (a Axis) Center() float64 {
	if a.Horizontal {
		return float64(a.P1.Y+a.P2.Y) / 2
	}
	return float64(a.P1.X+a.P2.X) / 2
}

// Frame is the rectangular pixel region bounded by the plot's axis lines.
type Frame struct {
	TopLeft     geometry.PointInt `json:"top_left"`
	TopRight    geometry.PointInt `json:"top_right"`
	BottomLeft  geometry.PointInt `json:"bottom_left"`
	BottomRight geometry.PointInt `json:"bottom_right"`
	Width       int               `json:"width"`
	Height      int               `json:"height"`
}

// Interior returns the frame's pixel rectangle.
func (f Frame) Interior() geometry.RectInt {
	return geometry.RectInt{
		X:      f.TopLeft.X,
		Y:      f.TopLeft.Y,
		Width:  f.Width,
		Height: f.Height,
	}
}

// Valid reports whether the frame encloses a usable area.
func (f Frame) Valid() bool {
	return f.Width > 0 && f.Height > 0
}
