// Package extract sequences the full graph extraction pipeline: image to
// frame to calibration to candidates to deduplicated, classified,
// calibrated series.
package extract

import (
	"fmt"
	"log"
	"sort"

	"graphdig/internal/calibrate"
	"graphdig/internal/cluster"
	"graphdig/internal/frame"
	"graphdig/internal/mapping"
	"graphdig/internal/marker"
	"graphdig/internal/series"

	"gocv.io/x/gocv"
)

// Options configures one extraction run.
type Options struct {
	Frame     frame.Config
	Calibrate calibrate.Config
	Marker    marker.DetectionParams
	Cluster   cluster.Params
}

// DefaultOptions returns the tuned defaults of every stage.
func DefaultOptions() Options {
	return Options{
		Frame:     frame.DefaultConfig(),
		Calibrate: calibrate.DefaultConfig(),
		Marker:    marker.DefaultParams(),
		Cluster:   cluster.DefaultParams(),
	}
}

// WithGridSize returns options with the curve grid resolution replaced.
// The intended range is 50-200 cells per side.
func (o Options) WithGridSize(g int) Options {
	o.Marker.GridSize = g
	return o
}

// Result holds everything one extraction produced.
type Result struct {
	Frame  frame.Frame
	XCal   calibrate.Calibration
	YCal   calibrate.Calibration
	Series []series.Series

	// candidates retains the deduplicated pixel-space detections so a
	// manual recalibration can re-map them without re-detecting.
	candidates []marker.Candidate
}

// Extractor runs the pipeline. Stages are strictly sequential: the frame
// must exist before calibration, and calibration before mapping. The
// source image is read-only shared state across all stages.
type Extractor struct {
	img    gocv.Mat
	opts   Options
	engine *calibrate.Engine
}

// New creates an extractor over a decoded BGR image.
func New(img gocv.Mat, engine *calibrate.Engine, opts Options) *Extractor {
	return &Extractor{img: img, opts: opts, engine: engine}
}

// Run executes the full pipeline. The only fatal condition is frame
// detection failure; calibration failures degrade to [0,1] and detection
// failures degrade to empty series.
func (e *Extractor) Run() (*Result, error) {
	if e.img.Empty() {
		return nil, fmt.Errorf("extract: empty image")
	}

	log.Printf("extract: step 1/4 detecting axes")
	axes := frame.DetectAxes(e.img, e.opts.Frame)

	log.Printf("extract: step 2/4 locating frame")
	f, err := frame.FindFrame(axes, e.img.Cols(), e.img.Rows())
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	log.Printf("extract: step 3/4 calibrating axes")
	cal := calibrate.New(e.img, f, e.engine, e.opts.Calibrate)
	xCal := cal.CalibrateX()
	yCal := cal.CalibrateY()
	if xCal.Degraded() || yCal.Degraded() {
		log.Printf("extract: calibration degraded (x=%v y=%v), consider a manual override",
			xCal.Degraded(), yCal.Degraded())
	}

	log.Printf("extract: step 4/4 detecting points")
	detector := marker.NewDetector(e.img, f, e.opts.Marker)
	candidates := cluster.Deduplicate(detector.DetectAll(), e.opts.Cluster)

	res := &Result{
		Frame:      f,
		XCal:       xCal,
		YCal:       yCal,
		candidates: candidates,
	}
	res.Series = buildSeries(candidates, f, xCal, yCal)

	log.Printf("extract: %d series, %d points", len(res.Series), totalPoints(res.Series))
	return res, nil
}

// SetManualCalibration replaces both axis calibrations with caller-supplied
// ranges, bypassing OCR, and re-maps the already-detected candidates.
func (r *Result) SetManualCalibration(xMin, xMax, yMin, yMax float64) {
	r.XCal = calibrate.Manual(xMin, xMax)
	r.YCal = calibrate.Manual(yMin, yMax)
	r.Series = buildSeries(r.candidates, r.Frame, r.XCal, r.YCal)
	log.Printf("extract: manual calibration applied, x=[%g, %g] y=[%g, %g]", xMin, xMax, yMin, yMax)
}

// RemoveSeries drops a whole series by key. Returns true when it existed.
func (r *Result) RemoveSeries(key series.Key) bool {
	for i, s := range r.Series {
		if s.Key == key {
			r.Series = append(r.Series[:i], r.Series[i+1:]...)
			return true
		}
	}
	return false
}

// Summary computes the display statistics for this result.
func (r *Result) Summary() series.Summary {
	return series.Summarize(r.Series, series.CalibrationSummary{
		XMin: r.XCal.MinValue,
		XMax: r.XCal.MaxValue,
		YMin: r.YCal.MinValue,
		YMax: r.YCal.MaxValue,
	})
}

// buildSeries classifies candidates into canonical colors, maps their
// pixel positions through the calibrations, and groups them into series
// keyed by color and marker-vs-curve sub-type. Within each series, points
// are ordered by ascending X.
func buildSeries(candidates []marker.Candidate, f frame.Frame, xCal, yCal calibrate.Calibration) []series.Series {
	m := mapping.New(f, xCal, yCal)

	grouped := make(map[series.Key][]series.DataPoint)
	for _, c := range candidates {
		x, y := m.Map(c.Pos)
		key := series.Key{Color: series.ClassifyColor(c.Color), Curve: c.IsCurve()}
		grouped[key] = append(grouped[key], series.DataPoint{X: x, Y: y, MarkerType: c.Type})
	}

	out := make([]series.Series, 0, len(grouped))
	for key, points := range grouped {
		sort.Slice(points, func(i, j int) bool { return points[i].X < points[j].X })
		out = append(out, series.Series{Key: key, Points: points})
	}

	// Stable result order for callers and tests
	sort.Slice(out, func(i, j int) bool { return out[i].Key.String() < out[j].Key.String() })
	return out
}

func totalPoints(all []series.Series) int {
	n := 0
	for _, s := range all {
		n += len(s.Points)
	}
	return n
}
