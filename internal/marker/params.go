// Package marker finds candidate data-point pixels inside a chart frame:
// discrete markers via color and contour analysis, and curve traces via
// fixed-grid sampling.
package marker

// HueRange is an HSV window (OpenCV convention: H 0-180, S and V 0-255)
// bounding one canonical marker color.
type HueRange struct {
	Name             string
	HMin, SMin, VMin float64
	HMax, SMax, VMax float64
}

// DetectionParams configures marker and curve detection. Carried as an
// explicit value so tests can pin every constant.
type DetectionParams struct {
	// HSV windows for the hue-bucket marker pass. Red wraps around the
	// hue circle and needs two windows; black is caught by low value
	// alone.
	HueRanges []HueRange

	// Contour area window for hue-bucket detections, in px².
	HueAreaMin, HueAreaMax float64

	// Inverted-binary threshold sweep for the grayscale marker pass,
	// catching markers too dark or desaturated for the hue windows.
	GrayThresholds []int

	// Contour area window for the grayscale pass.
	GrayAreaMin, GrayAreaMax float64

	// Hough circle parameters for the dedicated circle pass.
	CircleMinRadius, CircleMaxRadius int
	CircleMinDist                    float64
	CircleParam1, CircleParam2       float64

	// A circle candidate is kept only when the 30th brightness
	// percentile of its inscribed region is below this value. Hollow and
	// white blobs (frame corners, legend boxes) fail the test.
	CircleDarknessMax float64

	// Curve grid edge length. The frame interior is partitioned into
	// GridSize×GridSize cells, each contributing at most one curve point.
	GridSize int

	// Cell selection mode: pick the most chromatically salient pixel, or
	// the center of any cell containing a Canny edge.
	UseEdgeGrid bool

	// Minimum Lab chroma-salience score for a grid cell to emit a point.
	// In go-colorful Lab units (~0.01 of the classic 0-255-offset scale).
	MinChromaScore float64

	// Worker goroutines scanning grid rows.
	GridWorkers int
}

// DefaultParams returns detection parameters tuned for published charts.
func DefaultParams() DetectionParams {
	return DetectionParams{
		HueRanges: []HueRange{
			{Name: "blue", HMin: 100, SMin: 50, VMin: 50, HMax: 130, SMax: 255, VMax: 255},
			{Name: "red1", HMin: 0, SMin: 50, VMin: 50, HMax: 10, SMax: 255, VMax: 255},
			{Name: "red2", HMin: 170, SMin: 50, VMin: 50, HMax: 180, SMax: 255, VMax: 255},
			{Name: "green", HMin: 40, SMin: 50, VMin: 50, HMax: 80, SMax: 255, VMax: 255},
			{Name: "orange", HMin: 10, SMin: 100, VMin: 100, HMax: 25, SMax: 255, VMax: 255},
			{Name: "yellow", HMin: 25, SMin: 100, VMin: 100, HMax: 35, SMax: 255, VMax: 255},
			{Name: "black", HMin: 0, SMin: 0, VMin: 0, HMax: 180, SMax: 255, VMax: 50},
		},
		HueAreaMin: 15,
		HueAreaMax: 1000,

		GrayThresholds: []int{30, 50, 70, 90, 110, 130},
		GrayAreaMin:    20,
		GrayAreaMax:    1500,

		CircleMinRadius:   5,
		CircleMaxRadius:   30,
		CircleMinDist:     10,
		CircleParam1:      50,
		CircleParam2:      25,
		CircleDarknessMax: 200,

		GridSize:       100,
		UseEdgeGrid:    false,
		MinChromaScore: 0.04,
		GridWorkers:    8,
	}
}
