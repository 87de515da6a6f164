// Package series groups extracted data points into per-color series and
// summarizes them.
package series

import (
	"graphdig/pkg/colorutil"
)

// ColorName is a canonical series color.
type ColorName string

// Canonical color vocabulary. Every sampled pixel maps to exactly one.
const (
	Red    ColorName = "Red"
	Blue   ColorName = "Blue"
	Green  ColorName = "Green"
	Black  ColorName = "Black"
	Yellow ColorName = "Yellow"
	Orange ColorName = "Orange"
	Purple ColorName = "Purple"
)

// ClassifyColor maps a sampled pixel color to its canonical series name.
// Pure, deterministic, and total: identical input always yields identical
// output, and every input yields exactly one name.
//
// Known limitation carried over from tuning on real charts: ambiguous dim
// colors fall through to Black, which can merge visually distinct
// dark-colored series into one bucket. Splitting them heuristically
// produced more spurious series than it fixed.
func ClassifyColor(c colorutil.RGB) ColorName {
	r, g, b := int(c.R), int(c.G), int(c.B)
	maxVal := max(r, max(g, b))

	// Near-black first, before saturation is meaningful
	if maxVal < 80 {
		return Black
	}

	_, s, _ := colorutil.RGBToHSV(float64(c.R), float64(c.G), float64(c.B))
	saturation := s / 255

	if saturation > 0.3 {
		switch {
		case r == maxVal && r > 130:
			// Green-leaning red with suppressed blue reads orange
			if g > 100 && b < 100 {
				return Orange
			}
			return Red
		case b == maxVal && b > 130:
			if r > 100 && g < 100 {
				return Purple
			}
			return Blue
		case g == maxVal && g > 130:
			if r > 100 && b < 100 {
				return Yellow
			}
			return Green
		}
	}

	// Low-saturation mid-gray merges into the black bucket rather than
	// becoming a spurious "Gray" series
	if maxVal <= 150 && saturation < 0.2 {
		return Black
	}

	// Remaining ambiguous bright colors: whichever channel dominates
	switch {
	case r > g && r > b:
		return Red
	case b > r && b > g:
		return Blue
	case g > r && g > b:
		return Green
	}
	return Black
}
