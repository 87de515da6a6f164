package series

// SeriesSummary describes one series for external display.
type SeriesSummary struct {
	Points      int       `json:"points"`
	MarkerTypes []string  `json:"marker_types"`
	XRange      []float64 `json:"x_range"`
	YRange      []float64 `json:"y_range"`
}

// CalibrationSummary echoes the axis ranges used for mapping.
type CalibrationSummary struct {
	XMin float64 `json:"x_min"`
	XMax float64 `json:"x_max"`
	YMin float64 `json:"y_min"`
	YMax float64 `json:"y_max"`
}

// Summary holds the extraction statistics exposed to callers.
type Summary struct {
	TotalSeries int                      `json:"total_series"`
	TotalPoints int                      `json:"total_points"`
	Calibration CalibrationSummary       `json:"calibration"`
	Series      map[string]SeriesSummary `json:"series"`
}

// Summarize computes display statistics over a set of series.
func Summarize(all []Series, cal CalibrationSummary) Summary {
	s := Summary{
		Calibration: cal,
		Series:      make(map[string]SeriesSummary, len(all)),
	}

	for _, sr := range all {
		xLo, xHi := sr.XRange()
		yLo, yHi := sr.YRange()
		s.Series[sr.Key.String()] = SeriesSummary{
			Points:      len(sr.Points),
			MarkerTypes: sr.MarkerTypes(),
			XRange:      []float64{xLo, xHi},
			YRange:      []float64{yLo, yHi},
		}
		s.TotalSeries++
		s.TotalPoints += len(sr.Points)
	}

	return s
}
