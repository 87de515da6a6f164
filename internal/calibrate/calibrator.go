package calibrate

import (
	"image"
	"log"
	"sort"

	"graphdig/internal/frame"

	"github.com/otiai10/gosseract/v2"
	"gocv.io/x/gocv"
)

// Calibration maps normalized frame-relative position to data values for
// one axis. Immutable once computed; a caller-supplied manual calibration
// replaces it wholesale rather than mutating it.
type Calibration struct {
	MinValue float64 `json:"min_value"`
	MaxValue float64 `json:"max_value"`

	// ZeroPosition is the fractional position of data-zero along the
	// normalized axis, set only when zero is visible inside the range.
	ZeroPosition *float64 `json:"zero_position,omitempty"`

	// IsSymmetric marks axes whose labels include both signs.
	IsSymmetric bool `json:"is_symmetric"`
}

// Default returns the degraded [0,1] calibration used when label
// recognition fails. Callers should treat it as low-confidence and offer
// a manual override.
func Default() Calibration {
	return Calibration{MinValue: 0, MaxValue: 1}
}

// Manual builds a caller-supplied calibration that bypasses OCR entirely.
func Manual(minValue, maxValue float64) Calibration {
	return Calibration{MinValue: minValue, MaxValue: maxValue}
}

// Degraded reports whether this is the fallback [0,1] calibration.
func (c Calibration) Degraded() bool {
	return c.MinValue == 0 && c.MaxValue == 1 && !c.IsSymmetric && c.ZeroPosition == nil
}

// Config holds calibration parameters.
type Config struct {
	// Fixed binarization sweep applied at both polarities.
	Thresholds []int

	// Tesseract page-segmentation modes tried per variant. Sparse modes
	// catch isolated labels that block mode misgroups.
	PSMModes []gosseract.PageSegMode

	// X-axis label region: below the frame, widened sideways so edge
	// labels aren't clipped.
	XMarginBelow int
	XMarginSide  int

	// Y-axis label region: left of the frame, extended vertically.
	YMarginLeft int
	YMarginVert int

	// Plausibility window for Y labels. Values outside are discarded
	// before the two-number minimum is checked.
	YValueMin float64
	YValueMax float64

	// Above this many unique values the IQR outlier filter runs.
	MaxUniqueBeforeFilter int
}

// DefaultConfig returns calibration parameters tuned for typical charts.
func DefaultConfig() Config {
	return Config{
		Thresholds: []int{30, 50, 70, 90, 110, 130, 150, 170, 190, 210},
		PSMModes: []gosseract.PageSegMode{
			gosseract.PSM_SINGLE_BLOCK,
			gosseract.PSM_SPARSE_TEXT,
			gosseract.PSM_SPARSE_TEXT_OSD,
		},
		XMarginBelow:          250,
		XMarginSide:           80,
		YMarginLeft:           300,
		YMarginVert:           50,
		YValueMin:             0,
		YValueMax:             200,
		MaxUniqueBeforeFilter: 4,
	}
}

// Calibrator recognizes axis tick labels around a located frame.
type Calibrator struct {
	img    gocv.Mat
	frame  frame.Frame
	engine *Engine
	cfg    Config
}

// New creates a calibrator for one extraction run. The image is shared
// read-only state; the calibrator never modifies it.
func New(img gocv.Mat, f frame.Frame, engine *Engine, cfg Config) *Calibrator {
	return &Calibrator{img: img, frame: f, engine: engine, cfg: cfg}
}

// CalibrateX determines the X axis range from labels below the frame.
// Never fails outward: any internal failure degrades to [0,1].
func (c *Calibrator) CalibrateX() Calibration {
	imgH, imgW := c.img.Rows(), c.img.Cols()

	x1 := c.frame.BottomLeft.X
	x2 := c.frame.BottomRight.X
	y2 := c.frame.BottomLeft.Y

	marginV := min(c.cfg.XMarginBelow, imgH-y2)
	if marginV <= 0 {
		log.Printf("calibrate: no room below frame for X labels, using [0, 1]")
		return Default()
	}

	roi := image.Rect(
		max(0, x1-c.cfg.XMarginSide),
		y2,
		min(x2+c.cfg.XMarginSide, imgW),
		min(y2+marginV, imgH),
	)

	numbers := c.extractNumbers(roi)
	if len(numbers) < 2 {
		log.Printf("calibrate: X axis OCR found %d numbers, using [0, 1]", len(numbers))
		return Default()
	}

	cal := fromNumbers(numbers)
	log.Printf("calibrate: X axis %v -> [%.2f, %.2f]", numbers, cal.MinValue, cal.MaxValue)
	return cal
}

// CalibrateY determines the Y axis range from labels left of the frame.
// Recognized values outside the configured plausibility window are
// discarded first. Never fails outward.
func (c *Calibrator) CalibrateY() Calibration {
	imgH := c.img.Rows()

	x1 := c.frame.TopLeft.X
	y1 := c.frame.TopLeft.Y
	y2 := c.frame.BottomLeft.Y

	marginH := min(c.cfg.YMarginLeft, x1)
	if marginH <= 0 {
		log.Printf("calibrate: no room left of frame for Y labels, using [0, 1]")
		return Default()
	}

	roi := image.Rect(
		max(0, x1-marginH),
		max(0, y1-c.cfg.YMarginVert),
		x1,
		min(y2+c.cfg.YMarginVert, imgH),
	)

	all := c.extractNumbers(roi)
	var numbers []float64
	for _, n := range all {
		if n >= c.cfg.YValueMin && n <= c.cfg.YValueMax {
			numbers = append(numbers, n)
		}
	}

	if len(numbers) < 2 {
		log.Printf("calibrate: Y axis OCR found %d plausible numbers, using [0, 1]", len(numbers))
		return Default()
	}

	cal := Calibration{MinValue: numbers[0], MaxValue: numbers[len(numbers)-1]}
	log.Printf("calibrate: Y axis %v -> [%.2f, %.2f]", numbers, cal.MinValue, cal.MaxValue)
	return cal
}

// extractNumbers OCRs every preprocessing variant of the region under every
// configured page-segmentation mode and unions the recognized numbers.
// Each attempt is individually fault-isolated: one bad variant never
// affects its siblings or aborts calibration. Returns sorted unique values,
// outlier-filtered when there are many.
func (c *Calibrator) extractNumbers(roi image.Rectangle) []float64 {
	if c.engine == nil {
		return nil
	}
	roi = roi.Intersect(image.Rect(0, 0, c.img.Cols(), c.img.Rows()))
	if roi.Dx() < 10 || roi.Dy() < 10 {
		return nil
	}

	region := c.img.Region(roi)
	defer region.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(region, &gray, gocv.ColorBGRToGray)

	seen := make(map[float64]bool)
	variants := buildVariants(gray, c.cfg)
	for _, variant := range variants {
		for _, psm := range c.cfg.PSMModes {
			text, err := c.engine.Recognize(variant, psm)
			if err != nil {
				continue // one failed attempt must not abort calibration
			}
			for _, n := range ParseNumbers(text) {
				seen[n] = true
			}
		}
		variant.Close()
	}

	unique := make([]float64, 0, len(seen))
	for n := range seen {
		unique = append(unique, n)
	}
	sort.Float64s(unique)

	if len(unique) > c.cfg.MaxUniqueBeforeFilter {
		unique = FilterOutliers(unique)
	}
	return unique
}

// fromNumbers builds a calibration from at least two recognized values,
// detecting symmetric axes and the zero-crossing position.
func fromNumbers(numbers []float64) Calibration {
	minVal := numbers[0]
	maxVal := numbers[len(numbers)-1]

	var hasNegative, hasPositive, hasZero bool
	for _, n := range numbers {
		switch {
		case n < 0:
			hasNegative = true
		case n > 0:
			hasPositive = true
		default:
			hasZero = true
		}
	}

	cal := Calibration{
		MinValue:    minVal,
		MaxValue:    maxVal,
		IsSymmetric: hasNegative && hasPositive,
	}

	if (hasZero || cal.IsSymmetric) && minVal < 0 && maxVal > 0 {
		zero := -minVal / (maxVal - minVal)
		cal.ZeroPosition = &zero
	}

	return cal
}
