package marker

import (
	"image"
	"log"

	"graphdig/internal/frame"
	"graphdig/pkg/colorutil"

	"gocv.io/x/gocv"
)

// Detector finds candidate data points strictly inside a frame's interior.
type Detector struct {
	img    gocv.Mat
	frame  frame.Frame
	params DetectionParams
}

// NewDetector creates a detector for one extraction run. The image is
// shared read-only state; the detector never modifies it.
func NewDetector(img gocv.Mat, f frame.Frame, params DetectionParams) *Detector {
	return &Detector{img: img, frame: f, params: params}
}

// DetectAll runs both detection layers and returns the union of their
// candidates: discrete markers from the hue, grayscale, and circle passes,
// and curve points from the grid scan. A degenerate frame yields an empty
// set, not an error.
func (d *Detector) DetectAll() []Candidate {
	in := d.frame.Interior()
	x1, y1 := in.X, in.Y
	x2, y2 := in.X+in.Width, in.Y+in.Height

	imgW, imgH := d.img.Cols(), d.img.Rows()
	x1, y1 = max(x1, 0), max(y1, 0)
	x2, y2 = min(x2, imgW), min(y2, imgH)

	if x2 <= x1 || y2 <= y1 {
		return nil
	}

	roi := d.img.Region(image.Rect(x1, y1, x2, y2))
	defer roi.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(roi, &gray, gocv.ColorBGRToGray)

	offset := image.Point{X: x1, Y: y1}

	markers := d.detectHueMarkers(roi, offset)
	log.Printf("marker: hue pass found %d candidates", len(markers))

	grayMarkers := d.detectGrayMarkers(roi, gray, offset)
	log.Printf("marker: grayscale pass found %d candidates", len(grayMarkers))
	markers = append(markers, grayMarkers...)

	circles := d.detectCircles(roi, gray, offset)
	log.Printf("marker: circle pass found %d candidates", len(circles))
	markers = append(markers, circles...)

	curves := d.detectCurveGrid(roi, gray, offset)
	log.Printf("marker: grid pass found %d curve points", len(curves))

	return append(markers, curves...)
}

// sampleColor reads the BGR pixel at (x, y) in roi as an RGB sample.
func sampleColor(roi gocv.Mat, x, y int) colorutil.RGB {
	return colorutil.RGB{
		B: roi.GetUCharAt(y, x*3+0),
		G: roi.GetUCharAt(y, x*3+1),
		R: roi.GetUCharAt(y, x*3+2),
	}
}
