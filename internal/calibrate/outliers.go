package calibrate

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// FilterOutliers drops values outside [Q1 - 3*IQR, Q3 + 3*IQR]. The 3x
// multiplier is deliberately permissive: axis labels legitimately span
// orders of magnitude, and only gross OCR misreads should go. The filter
// never empties a non-empty input; if everything would be rejected it
// returns the input unchanged.
func FilterOutliers(values []float64) []float64 {
	if len(values) < 4 {
		return values
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	q1 := stat.Quantile(0.25, stat.Empirical, sorted, nil)
	q3 := stat.Quantile(0.75, stat.Empirical, sorted, nil)
	iqr := q3 - q1

	lower := q1 - 3*iqr
	upper := q3 + 3*iqr

	var filtered []float64
	for _, v := range values {
		if v >= lower && v <= upper {
			filtered = append(filtered, v)
		}
	}

	if len(filtered) == 0 {
		return values
	}
	return filtered
}
