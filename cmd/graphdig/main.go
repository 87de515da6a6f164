// Command graphdig extracts quantitative data series from a raster image
// of an X-Y chart and prints a summary of what it found.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"graphdig/internal/calibrate"
	"graphdig/internal/extract"
	"graphdig/internal/imageio"
	"graphdig/internal/version"
)

func main() {
	imagePath := flag.String("image", "", "Path to chart image (PNG, JPEG, TIFF, or BMP)")
	gridSize := flag.Int("grid", 100, "Curve sampling grid size (50-200 recommended)")
	xRange := flag.String("xrange", "", "Manual X calibration as min,max (bypasses OCR)")
	yRange := flag.String("yrange", "", "Manual Y calibration as min,max (bypasses OCR)")
	asJSON := flag.Bool("json", false, "Print the summary as JSON")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if *showVersion {
		fmt.Printf("graphdig %s (commit %s, built %s)\n",
			version.Version, version.GitCommit, version.BuildTime)
		return
	}

	if *imagePath == "" {
		fmt.Println("Usage: graphdig -image <path> [-grid 100] [-xrange min,max] [-yrange min,max]")
		os.Exit(1)
	}

	img, err := imageio.Load(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}
	defer img.Close()

	fmt.Printf("Loaded image: %dx%d pixels\n", img.Cols(), img.Rows())

	engine, err := calibrate.NewEngine()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start OCR engine: %v\n", err)
		os.Exit(1)
	}
	defer engine.Close()

	opts := extract.DefaultOptions().WithGridSize(*gridSize)
	result, err := extract.New(img, engine, opts).Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Extraction failed: %v\n", err)
		os.Exit(1)
	}

	// Manual ranges replace whatever OCR produced and re-map the
	// already-detected points
	if *xRange != "" || *yRange != "" {
		xMin, xMax := result.XCal.MinValue, result.XCal.MaxValue
		yMin, yMax := result.YCal.MinValue, result.YCal.MaxValue
		if *xRange != "" {
			xMin, xMax = parseRange(*xRange, "xrange")
		}
		if *yRange != "" {
			yMin, yMax = parseRange(*yRange, "yrange")
		}
		result.SetManualCalibration(xMin, xMax, yMin, yMax)
	} else if result.XCal.Degraded() || result.YCal.Degraded() {
		fmt.Println("Warning: axis label recognition failed; values are in [0,1] units.")
		fmt.Println("Re-run with -xrange/-yrange to apply the true axis ranges.")
	}

	summary := result.Summary()

	if *asJSON {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode summary: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
		return
	}

	fmt.Printf("\nFrame: %dx%d px at (%d, %d)\n",
		result.Frame.Width, result.Frame.Height,
		result.Frame.TopLeft.X, result.Frame.TopLeft.Y)
	fmt.Printf("Calibration: X [%g, %g], Y [%g, %g]\n",
		summary.Calibration.XMin, summary.Calibration.XMax,
		summary.Calibration.YMin, summary.Calibration.YMax)
	fmt.Printf("Series: %d, points: %d\n", summary.TotalSeries, summary.TotalPoints)

	for name, s := range summary.Series {
		fmt.Printf("  %s: %d points, types %v, x [%.3g, %.3g], y [%.3g, %.3g]\n",
			name, s.Points, s.MarkerTypes,
			s.XRange[0], s.XRange[1], s.YRange[0], s.YRange[1])
	}
}

// parseRange parses a "min,max" flag value.
func parseRange(s, name string) (lo, hi float64) {
	if _, err := fmt.Sscanf(s, "%f,%f", &lo, &hi); err != nil || lo >= hi {
		fmt.Fprintf(os.Stderr, "Invalid -%s %q: want min,max with min < max\n", name, s)
		os.Exit(1)
	}
	return lo, hi
}
