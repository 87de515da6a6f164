// Package colorutil provides shared color utilities for graph digitizing.
package colorutil

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an 8-bit-per-channel color sampled from the source image.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// RGBToHSV converts RGB (0-255) to HSV (OpenCV convention: H 0-180, S 0-255, V 0-255).
func RGBToHSV(r, g, b float64) (h, s, v float64) {
	r /= 255.0
	g /= 255.0
	b /= 255.0

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	diff := maxC - minC

	v = maxC * 255.0 // V in 0-255

	if maxC == 0 {
		s = 0
	} else {
		s = (diff / maxC) * 255.0 // S in 0-255
	}

	if diff == 0 {
		h = 0
	} else if maxC == r {
		h = 60 * math.Mod((g-b)/diff, 6)
	} else if maxC == g {
		h = 60 * ((b-r)/diff + 2)
	} else {
		h = 60 * ((r-g)/diff + 4)
	}

	if h < 0 {
		h += 360
	}

	h = h / 2 // Convert to OpenCV's 0-180 range

	return h, s, v
}

// IsNeutral reports whether a color is near-white or near-gray: the kind of
// pixel that belongs to the page background, grid lines, or the frame itself
// rather than to a plotted series.
func (c RGB) IsNeutral() bool {
	r, g, b := float64(c.R), float64(c.G), float64(c.B)

	// Near-white
	if r > 230 && g > 230 && b > 230 {
		return true
	}

	// Bright gray: high average brightness, low cross-channel variance
	avg := (r + g + b) / 3
	dev := math.Max(math.Abs(r-avg), math.Max(math.Abs(g-avg), math.Abs(b-avg)))
	return avg > 180 && dev < 20
}

// ChromaScore rates how chromatically salient a color is: Lab chroma
// penalized toward very light and very dark pixels. Anti-aliased curve
// pixels on a white page score well; background and shadow pixels do not.
func (c RGB) ChromaScore() float64 {
	col := colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
	l, a, b := col.Lab()

	chroma := math.Sqrt(a*a + b*b)
	lightnessPenalty := math.Abs(l-0.5) * 2

	return chroma * (1 - 0.5*lightnessPenalty)
}
