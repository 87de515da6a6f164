package marker

import (
	"graphdig/pkg/colorutil"
	"graphdig/pkg/geometry"
)

// Marker type vocabulary. Shape names come from contour classification;
// TypeCurve tags grid-sampled trace pixels.
const (
	TypeCircle    = "circle"
	TypeSquare    = "square"
	TypeRectangle = "rectangle"
	TypeTriangle  = "triangle"
	TypePoint     = "point"
	TypePolygon   = "polygon"
	TypeCurve     = "curve"
)

// Candidate is a raw, not-yet-deduplicated detection. Pixel coordinates
// are absolute image coordinates inside the frame interior.
type Candidate struct {
	Pos   geometry.PointInt `json:"pos"`
	Color colorutil.RGB     `json:"color"`
	Type  string            `json:"type"`
}

// IsCurve reports whether the candidate came from the grid curve layer.
func (c Candidate) IsCurve() bool {
	return c.Type == TypeCurve
}
