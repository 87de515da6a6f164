package frame

import (
	"errors"
	"image"
	"image/color"
	"log"
	"math"
	"sort"

	"graphdig/pkg/geometry"

	"gocv.io/x/gocv"
)

// ErrNoFrame is returned when no axis of some orientation survives
// detection, including the border fallback. It is the extraction
// pipeline's only fatal condition.
var ErrNoFrame = errors.New("frame: no usable axes detected")

// Config holds axis and frame detection parameters.
type Config struct {
	// Segments within AngleTolerance degrees of 0/180 (or 90) qualify as
	// horizontal (or vertical) candidates.
	AngleTolerance float64

	// A qualifying segment must span at least this fraction of the image
	// along its orientation. Shorter segments are tick marks or glyph
	// strokes, not axes.
	MinLengthFrac float64

	// Axes of the same orientation whose center positions differ by less
	// than MergeThreshold pixels collapse to the longer segment.
	MergeThreshold float64

	// Fraction of the smaller image dimension used as margin when falling
	// back to the image border as a synthetic axis pair.
	BorderMarginFrac float64
}

// DefaultConfig returns detection parameters tuned for typical published
// charts at screen-to-print resolutions.
func DefaultConfig() Config {
	return Config{
		AngleTolerance:   5,
		MinLengthFrac:    0.5,
		MergeThreshold:   10,
		BorderMarginFrac: 0.1,
	}
}

// segment is a raw Hough line before orientation classification.
type segment struct {
	x1, y1, x2, y2 int
}

// DetectAxes finds axis line segments using three independent strategies:
// standard blur+Canny+Hough, the same after a morphological closing to
// bridge small gaps, and Hough over a plain brightness threshold. Candidates
// from all three are unioned before classification and merging. If nothing
// qualifies, the image border is returned as a synthetic axis pair so the
// pipeline always has some frame to work with.
func DetectAxes(img gocv.Mat, cfg Config) []Axis {
	if img.Empty() {
		return nil
	}

	w, h := img.Cols(), img.Rows()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{5, 5}, 0, 0, gocv.BorderDefault)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(blurred, &edges, 50, 150)

	// Strategy 1: Hough over raw edges
	all := houghSegments(edges, 100, 100, 10)

	// Strategy 2: dilate/erode closing bridges small gaps in dashed or
	// anti-aliased axis lines, then a more permissive Hough
	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{3, 3})
	defer kernel.Close()

	closed := gocv.NewMat()
	defer closed.Close()
	gocv.DilateWithParams(edges, &closed, kernel, image.Point{-1, -1}, 2, int(gocv.BorderConstant), color.RGBA{})
	gocv.ErodeWithParams(closed, &closed, kernel, image.Point{-1, -1}, 2, int(gocv.BorderConstant))
	all = append(all, houghSegments(closed, 80, 80, 20)...)

	// Strategy 3: a plain brightness threshold isolates axes drawn as
	// solid dark strokes on a light page that Canny fragments
	binary := gocv.NewMat()
	defer binary.Close()
	gocv.Threshold(gray, &binary, 200, 255, gocv.ThresholdBinaryInv)
	all = append(all, houghSegments(binary, 100, 100, 15)...)

	if len(all) == 0 {
		log.Printf("frame: no line segments detected, falling back to image border")
		return borderAxes(w, h, cfg)
	}

	hAxes, vAxes := categorize(all, w, h, cfg)
	hAxes = mergeSimilar(hAxes, cfg.MergeThreshold)
	vAxes = mergeSimilar(vAxes, cfg.MergeThreshold)

	if len(hAxes) == 0 && len(vAxes) == 0 {
		log.Printf("frame: no segments survived classification, falling back to image border")
		return borderAxes(w, h, cfg)
	}

	log.Printf("frame: detected %d horizontal, %d vertical axes", len(hAxes), len(vAxes))
	return append(hAxes, vAxes...)
}

// houghSegments runs probabilistic Hough on a binary image.
func houghSegments(binary gocv.Mat, threshold int, minLen, maxGap float32) []segment {
	lines := gocv.NewMat()
	defer lines.Close()
	gocv.HoughLinesPWithParams(binary, &lines, 1, math.Pi/180, threshold, minLen, maxGap)

	segs := make([]segment, 0, lines.Rows())
	for i := 0; i < lines.Rows(); i++ {
		v := lines.GetVeciAt(i, 0)
		if len(v) < 4 {
			continue
		}
		segs = append(segs, segment{
			x1: int(v[0]), y1: int(v[1]),
			x2: int(v[2]), y2: int(v[3]),
		})
	}
	return segs
}

// categorize splits raw segments into horizontal and vertical axis
// candidates. Segments meeting neither orientation test are discarded.
func categorize(segs []segment, imgW, imgH int, cfg Config) (hAxes, vAxes []Axis) {
	for _, s := range segs {
		angle := math.Abs(math.Atan2(float64(s.y2-s.y1), float64(s.x2-s.x1)) * 180 / math.Pi)
		length := math.Hypot(float64(s.x2-s.x1), float64(s.y2-s.y1))

		switch {
		case (angle < cfg.AngleTolerance || angle > 180-cfg.AngleTolerance) &&
			length > cfg.MinLengthFrac*float64(imgW):
			hAxes = append(hAxes, Axis{
				P1:         geometry.PointInt{X: s.x1, Y: s.y1},
				P2:         geometry.PointInt{X: s.x2, Y: s.y2},
				Horizontal: true,
			})
		case angle > 90-cfg.AngleTolerance && angle < 90+cfg.AngleTolerance &&
			length > cfg.MinLengthFrac*float64(imgH):
			vAxes = append(vAxes, Axis{
				P1: geometry.PointInt{X: s.x1, Y: s.y1},
				P2: geometry.PointInt{X: s.x2, Y: s.y2},
			})
		}
	}
	return hAxes, vAxes
}

// mergeSimilar collapses axes of one orientation whose center positions are
// within threshold pixels, keeping the longer segment of each group.
func mergeSimilar(axes []Axis, threshold float64) []Axis {
	if len(axes) == 0 {
		return nil
	}

	sort.Slice(axes, func(i, j int) bool {
		return axes[i].Center() < axes[j].Center()
	})

	merged := []Axis{axes[0]}
	for _, a := range axes[1:] {
		last := &merged[len(merged)-1]
		if math.Abs(a.Center()-last.Center()) < threshold {
			if a.Length() > last.Length() {
				*last = a
			}
		} else {
			merged = append(merged, a)
		}
	}
	return merged
}

// borderAxes synthesizes a horizontal+vertical axis pair from the image
// border, inset by a margin. Precision is traded for availability: the
// pipeline can always proceed, and the caller sees a frame spanning most
// of the image.
func borderAxes(imgW, imgH int, cfg Config) []Axis {
	margin := int(cfg.BorderMarginFrac * float64(min(imgW, imgH)))

	return []Axis{
		{
			P1:         geometry.PointInt{X: margin, Y: imgH - margin},
			P2:         geometry.PointInt{X: imgW - margin, Y: imgH - margin},
			Horizontal: true,
		},
		{
			P1: geometry.PointInt{X: margin, Y: margin},
			P2: geometry.PointInt{X: margin, Y: imgH - margin},
		},
	}
}

// FindFrame assembles the plot frame from detected axes. With at least two
// axes of each orientation it uses the two topmost horizontals as top and
// bottom and the extreme verticals as left and right; horizontals beyond
// the second are ignored so legend borders and secondary grid lines don't
// stretch the frame. With exactly one axis of either orientation a partial
// frame is synthesized from image-relative margins. With fewer, it fails
// with ErrNoFrame.
func FindFrame(axes []Axis, imgW, imgH int) (Frame, error) {
	var hAxes, vAxes []Axis
	for _, a := range axes {
		if a.Horizontal {
			hAxes = append(hAxes, a)
		} else {
			vAxes = append(vAxes, a)
		}
	}

	if len(hAxes) >= 2 && len(vAxes) >= 2 {
		sort.Slice(hAxes, func(i, j int) bool {
			return min(hAxes[i].P1.Y, hAxes[i].P2.Y) < min(hAxes[j].P1.Y, hAxes[j].P2.Y)
		})
		sort.Slice(vAxes, func(i, j int) bool {
			return min(vAxes[i].P1.X, vAxes[i].P2.X) < min(vAxes[j].P1.X, vAxes[j].P2.X)
		})

		top := hAxes[0]
		bottom := hAxes[1]
		left := vAxes[0]
		right := vAxes[len(vAxes)-1]

		x1 := min(left.P1.X, left.P2.X)
		x2 := max(right.P1.X, right.P2.X)
		y1 := min(top.P1.Y, top.P2.Y)
		y2 := max(bottom.P1.Y, bottom.P2.Y)

		f := Frame{
			TopLeft:     geometry.PointInt{X: x1, Y: y1},
			TopRight:    geometry.PointInt{X: x2, Y: y1},
			BottomLeft:  geometry.PointInt{X: x1, Y: y2},
			BottomRight: geometry.PointInt{X: x2, Y: y2},
			Width:       x2 - x1,
			Height:      y2 - y1,
		}
		log.Printf("frame: %dx%d pixels", f.Width, f.Height)
		return f, nil
	}

	if len(hAxes) >= 1 && len(vAxes) >= 1 {
		// Partial frame: one side of each orientation is real, the rest
		// comes from image-relative margins
		log.Printf("frame: partial frame from %d horizontal, %d vertical axes", len(hAxes), len(vAxes))

		h := hAxes[len(hAxes)-1]
		v := vAxes[0]

		x1 := min(v.P1.X, v.P2.X)
		x2 := int(0.9 * float64(imgW))
		y1 := int(0.1 * float64(imgH))
		y2 := max(h.P1.Y, h.P2.Y)

		return Frame{
			TopLeft:     geometry.PointInt{X: x1, Y: y1},
			TopRight:    geometry.PointInt{X: x2, Y: y1},
			BottomLeft:  geometry.PointInt{X: x1, Y: y2},
			BottomRight: geometry.PointInt{X: x2, Y: y2},
			Width:       x2 - x1,
			Height:      y2 - y1,
		}, nil
	}

	return Frame{}, ErrNoFrame
}
