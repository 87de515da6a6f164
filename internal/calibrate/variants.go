package calibrate

import (
	"image"

	"gocv.io/x/gocv"
)

// buildVariants produces independently preprocessed renditions of a label
// region. Tick labels vary wildly in contrast, polarity, and compression
// noise; no single binarization works for all of them, so every variant is
// OCR'd separately and the recognized numbers are unioned. The caller must
// Close every returned Mat.
func buildVariants(gray gocv.Mat, cfg Config) []gocv.Mat {
	var out []gocv.Mat

	// Raw grayscale
	out = append(out, gray.Clone())

	// Fixed threshold sweep, both polarities. Dark-on-light and
	// light-on-dark labels each get a variant that isolates them cleanly
	// at some threshold.
	for _, thresh := range cfg.Thresholds {
		binary := gocv.NewMat()
		gocv.Threshold(gray, &binary, float32(thresh), 255, gocv.ThresholdBinary)
		out = append(out, binary)

		inverted := gocv.NewMat()
		gocv.Threshold(gray, &inverted, float32(thresh), 255, gocv.ThresholdBinaryInv)
		out = append(out, inverted)
	}

	// Adaptive thresholds handle uneven illumination / JPEG shadows
	adaptiveMean := gocv.NewMat()
	gocv.AdaptiveThreshold(gray, &adaptiveMean, 255, gocv.AdaptiveThresholdMean, gocv.ThresholdBinary, 15, 5)
	out = append(out, adaptiveMean)

	adaptiveGauss := gocv.NewMat()
	gocv.AdaptiveThreshold(gray, &adaptiveGauss, 255, gocv.AdaptiveThresholdGaussian, gocv.ThresholdBinary, 15, 5)
	out = append(out, adaptiveGauss)

	// Otsu picks its own global threshold
	otsu := gocv.NewMat()
	gocv.Threshold(gray, &otsu, 0, 255, gocv.ThresholdBinary|gocv.ThresholdOtsu)
	out = append(out, otsu)

	// Contrast enhancement for washed-out scans
	clahe := gocv.NewCLAHEWithParams(2.5, image.Point{8, 8})
	enhanced := gocv.NewMat()
	clahe.Apply(gray, &enhanced)
	clahe.Close()
	out = append(out, enhanced)

	// Morphological close knits broken glyph strokes back together
	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{2, 2})
	closed := gocv.NewMat()
	gocv.MorphologyEx(gray, &closed, gocv.MorphClose, kernel)
	kernel.Close()

	closedBin := gocv.NewMat()
	gocv.Threshold(closed, &closedBin, 127, 255, gocv.ThresholdBinary)
	closed.Close()
	out = append(out, closedBin)

	return out
}
