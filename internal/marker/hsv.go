package marker

import (
	"image"

	"graphdig/pkg/geometry"

	"gocv.io/x/gocv"
)

// detectHueMarkers finds markers by masking each canonical hue window,
// extracting external contours in the configured area window, and
// classifying each contour's shape. The sampled color is read back from
// the source pixels at the contour centroid, not from the mask, so the
// later color classification sees the true rendered color.
func (d *Detector) detectHueMarkers(roi gocv.Mat, offset image.Point) []Candidate {
	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(roi, &hsv, gocv.ColorBGRToHSV)

	var out []Candidate
	for _, hr := range d.params.HueRanges {
		mask := gocv.NewMat()
		gocv.InRangeWithScalar(hsv,
			gocv.NewScalar(hr.HMin, hr.SMin, hr.VMin, 0),
			gocv.NewScalar(hr.HMax, hr.SMax, hr.VMax, 0),
			&mask)

		out = append(out, d.contourMarkers(roi, mask, offset, d.params.HueAreaMin, d.params.HueAreaMax)...)
		mask.Close()
	}
	return out
}

// contourMarkers extracts external contours from a binary mask and emits
// one candidate per contour whose area falls in [areaMin, areaMax].
// Neutral centroid colors are rejected; those are frame lines and grid
// lines, not markers.
func (d *Detector) contourMarkers(roi, mask gocv.Mat, offset image.Point, areaMin, areaMax float64) []Candidate {
	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	var out []Candidate
	for i := 0; i < contours.Size(); i++ {
		contour := contours.At(i)

		area := gocv.ContourArea(contour)
		if area <= areaMin || area >= areaMax {
			continue
		}

		c := contourCentroid(contour)
		cx, cy := c.X, c.Y
		if cx < 0 || cx >= roi.Cols() || cy < 0 || cy >= roi.Rows() {
			continue
		}

		color := sampleColor(roi, cx, cy)
		if color.IsNeutral() {
			continue
		}

		out = append(out, Candidate{
			Pos:   geometry.PointInt{X: offset.X + cx, Y: offset.Y + cy},
			Color: color,
			Type:  classifyShape(contour),
		})
	}
	return out
}

// contourCentroid returns the mean position of a contour's vertices. For
// the small convex blobs markers produce this tracks the center of mass
// closely enough to sample the fill color.
func contourCentroid(contour gocv.PointVector) geometry.PointInt {
	n := contour.Size()
	if n == 0 {
		return geometry.PointInt{}
	}

	pts := make([]geometry.Point2D, n)
	for i := 0; i < n; i++ {
		p := contour.At(i)
		pts[i] = geometry.NewPoint2D(float64(p.X), float64(p.Y))
	}
	c := geometry.Centroid(pts)
	return geometry.PointInt{X: int(c.X), Y: int(c.Y)}
}

// classifyShape names a contour by its approximating polygon's vertex
// count: 3 is a triangle, 4 splits square/rectangle on aspect ratio,
// more than 6 rounds off to a circle, anything else is a generic point.
func classifyShape(contour gocv.PointVector) string {
	epsilon := 0.04 * gocv.ArcLength(contour, true)
	approx := gocv.ApproxPolyDP(contour, epsilon, true)
	defer approx.Close()

	switch vertices := approx.Size(); {
	case vertices == 3:
		return TypeTriangle
	case vertices == 4:
		rect := gocv.BoundingRect(contour)
		if rect.Dy() == 0 {
			return TypePolygon
		}
		aspect := float64(rect.Dx()) / float64(rect.Dy())
		if aspect >= 0.9 && aspect <= 1.1 {
			return TypeSquare
		}
		return TypeRectangle
	case vertices > 6:
		return TypeCircle
	default:
		return TypePoint
	}
}
