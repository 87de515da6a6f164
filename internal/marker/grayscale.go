package marker

import (
	"image"
	"sort"

	"graphdig/pkg/geometry"

	"gocv.io/x/gocv"
)

// detectGrayMarkers catches markers too dark or desaturated for the hue
// windows: an inverted binarization at several fixed thresholds isolates
// dark blobs, which go through the same contour/area/shape path as the
// hue pass.
func (d *Detector) detectGrayMarkers(roi, gray gocv.Mat, offset image.Point) []Candidate {
	var out []Candidate
	for _, thresh := range d.params.GrayThresholds {
		binary := gocv.NewMat()
		gocv.Threshold(gray, &binary, float32(thresh), 255, gocv.ThresholdBinaryInv)

		out = append(out, d.contourMarkers(roi, binary, offset, d.params.GrayAreaMin, d.params.GrayAreaMax)...)
		binary.Close()
	}
	return out
}

// detectCircles runs Hough circle detection over the grayscale interior.
// Each circle is validated by the lower brightness percentile of its
// inscribed region: a filled marker is dark inside, while hollow rings,
// frame corners, and white blobs are not and get rejected.
func (d *Detector) detectCircles(roi, gray gocv.Mat, offset image.Point) []Candidate {
	p := d.params

	circles := gocv.NewMat()
	defer circles.Close()
	gocv.HoughCirclesWithParams(gray, &circles, gocv.HoughGradient,
		1, p.CircleMinDist, p.CircleParam1, p.CircleParam2,
		p.CircleMinRadius, p.CircleMaxRadius)

	var out []Candidate
	for i := 0; i < circles.Cols(); i++ {
		v := circles.GetVecfAt(0, i)
		if len(v) < 3 {
			continue
		}
		cx, cy, r := int(v[0]), int(v[1]), int(v[2])
		if cx < 0 || cx >= roi.Cols() || cy < 0 || cy >= roi.Rows() {
			continue
		}

		if darkness30(gray, cx, cy, r) >= p.CircleDarknessMax {
			continue
		}

		color := sampleColor(roi, cx, cy)
		if color.IsNeutral() {
			continue
		}

		out = append(out, Candidate{
			Pos:   geometry.PointInt{X: offset.X + cx, Y: offset.Y + cy},
			Color: color,
			Type:  TypeCircle,
		})
	}
	return out
}

// darkness30 returns the 30th brightness percentile of the square region
// inscribed in a circle (side 0.6·r on either side of the center). Missing
// regions count as fully bright so they never validate.
func darkness30(gray gocv.Mat, cx, cy, r int) float64 {
	inner := int(float64(r) * 0.6)
	x1 := max(0, cx-inner)
	y1 := max(0, cy-inner)
	x2 := min(gray.Cols(), cx+inner)
	y2 := min(gray.Rows(), cy+inner)

	if x2 <= x1 || y2 <= y1 {
		return 255
	}

	vals := make([]float64, 0, (x2-x1)*(y2-y1))
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			vals = append(vals, float64(gray.GetUCharAt(y, x)))
		}
	}

	sort.Float64s(vals)
	return vals[len(vals)*30/100]
}
