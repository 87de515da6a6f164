package series

import (
	"fmt"
)

// DataPoint is one extracted sample in calibrated data units, with the
// marker type it was detected as.
type DataPoint struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	MarkerType string  `json:"type"`
}

// Key identifies one series: canonical color plus whether the points came
// from discrete markers or a sampled curve. Markers and curves of the same
// color stay in separate series.
type Key struct {
	Color ColorName `json:"color"`
	Curve bool      `json:"curve"`
}

// String renders the key in the Color_points / Color_line convention.
func (k Key) String() string {
	if k.Curve {
		return fmt.Sprintf("%s_line", k.Color)
	}
	return fmt.Sprintf("%s_points", k.Color)
}

// Series is an ordered collection of data points sharing one key.
type Series struct {
	Key    Key         `json:"key"`
	Points []DataPoint `json:"points"`
}

// MarkerTypes returns the distinct marker types present, in first-seen order.
func (s Series) MarkerTypes() []string {
	seen := make(map[string]bool)
	var types []string
	for _, p := range s.Points {
		if !seen[p.MarkerType] {
			seen[p.MarkerType] = true
			types = append(types, p.MarkerType)
		}
	}
	return types
}

// XRange returns the min and max X among the points.
func (s Series) XRange() (lo, hi float64) {
	if len(s.Points) == 0 {
		return 0, 0
	}
	lo, hi = s.Points[0].X, s.Points[0].X
	for _, p := range s.Points[1:] {
		if p.X < lo {
			lo = p.X
		}
		if p.X > hi {
			hi = p.X
		}
	}
	return lo, hi
}

// YRange returns the min and max Y among the points.
func (s Series) YRange() (lo, hi float64) {
	if len(s.Points) == 0 {
		return 0, 0
	}
	lo, hi = s.Points[0].Y, s.Points[0].Y
	for _, p := range s.Points[1:] {
		if p.Y < lo {
			lo = p.Y
		}
		if p.Y > hi {
			hi = p.Y
		}
	}
	return lo, hi
}
