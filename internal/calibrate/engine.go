// Package calibrate determines each axis's numeric range by recognizing
// tick-label text in regions adjacent to the plot frame.
package calibrate

import (
	"fmt"
	"image"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"gocv.io/x/gocv"
)

// NumericChars is the character whitelist for tick-label OCR. Axis labels
// are numbers; restricting the alphabet keeps Tesseract from "reading"
// grid-line fragments as letters.
const NumericChars = "0123456789.,-"

// Engine performs OCR on preprocessed axis-label regions using Tesseract.
type Engine struct {
	client *gosseract.Client
}

// NewEngine creates a new OCR engine.
func NewEngine() (*Engine, error) {
	client := gosseract.NewClient()

	if err := client.SetLanguage("eng"); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set OCR language: %w", err)
	}

	// Disable dictionary-based word correction - tick labels aren't words
	_ = client.SetVariable("load_system_dawg", "false")
	_ = client.SetVariable("load_freq_dawg", "false")

	if err := client.SetWhitelist(NumericChars); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set whitelist: %w", err)
	}

	return &Engine{client: client}, nil
}

// Close releases OCR resources.
func (e *Engine) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// Recognize runs OCR over one preprocessed image variant under the given
// page-segmentation mode and returns the raw recognized text.
func (e *Engine) Recognize(img gocv.Mat, psm gosseract.PageSegMode) (string, error) {
	if img.Empty() {
		return "", fmt.Errorf("empty image")
	}

	// Upscale small regions; Tesseract needs reasonably sized glyphs
	prepared := upscaleForOCR(img, 800)
	defer prepared.Close()

	buf, err := gocv.IMEncode(gocv.PNGFileExt, prepared)
	if err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	defer buf.Close()

	if err := e.client.SetPageSegMode(psm); err != nil {
		return "", fmt.Errorf("failed to set PSM: %w", err)
	}
	if err := e.client.SetImageFromBytes(buf.GetBytes()); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := e.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return strings.TrimSpace(text), nil
}

// upscaleForOCR resizes an image so its width is at least minWidth pixels.
// The caller owns the returned Mat.
func upscaleForOCR(img gocv.Mat, minWidth int) gocv.Mat {
	w := img.Cols()
	if w >= minWidth || w == 0 {
		return img.Clone()
	}

	scale := float64(minWidth) / float64(w)
	scaled := gocv.NewMat()
	gocv.Resize(img, &scaled, image.Point{}, scale, scale, gocv.InterpolationCubic)
	return scaled
}
