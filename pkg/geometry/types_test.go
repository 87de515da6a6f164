package geometry

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b Point2D
		want float64
	}{
		{"same point", NewPoint2D(3, 4), NewPoint2D(3, 4), 0},
		{"3-4-5 triangle", NewPoint2D(0, 0), NewPoint2D(3, 4), 5},
		{"negative coords", NewPoint2D(-1, -1), NewPoint2D(2, 3), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Distance(tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Distance(%v, %v) = %g, want %g", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestPointIntToFloat(t *testing.T) {
	p := PointInt{X: 7, Y: -2}.ToFloat()
	if p.X != 7 || p.Y != -2 {
		t.Errorf("ToFloat = %v, want (7, -2)", p)
	}
}

func TestCentroid(t *testing.T) {
	tests := []struct {
		name   string
		points []Point2D
		want   Point2D
	}{
		{"empty", nil, Point2D{}},
		{"single", []Point2D{{X: 2, Y: 3}}, Point2D{X: 2, Y: 3}},
		{"square corners", []Point2D{{0, 0}, {4, 0}, {4, 4}, {0, 4}}, Point2D{X: 2, Y: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Centroid(tt.points)
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
				t.Errorf("Centroid(%v) = %v, want %v", tt.points, got, tt.want)
			}
		})
	}
}
