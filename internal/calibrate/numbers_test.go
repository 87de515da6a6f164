package calibrate

import (
	"math"
	"sort"
	"testing"
)

func TestParseNumbersExact(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []float64
	}{
		// Labels arrive newline-separated from OCR; spaces inside a line
		// are stripped as glyph-spacing noise
		{"plain integers", "0\n5\n10", []float64{0, 5, 10}},
		{"year stays whole", "1995", []float64{1995}},
		{"spaced digits rejoin", "1 0", []float64{10}},
		{"noise outside sanity range", "999999", nil},
		{"no digits", "---..,x", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := uniqueSorted(ParseNumbers(tt.text))
			if len(got) != len(tt.want) {
				t.Fatalf("ParseNumbers(%q) = %v, want %v", tt.text, got, tt.want)
			}
			for i := range tt.want {
				if math.Abs(got[i]-tt.want[i]) > 1e-9 {
					t.Fatalf("ParseNumbers(%q) = %v, want %v", tt.text, got, tt.want)
				}
			}
		})
	}
}

// The cascade deliberately over-extracts: every pattern contributes, so a
// token like "1,000" also yields its sub-tokens. Calibration depends only
// on the true value being among the union; dedup and the IQR filter deal
// with the rest.
func TestParseNumbersContains(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"1,000", 1000},
		{"-7", -7},
		{"3.5", 3.5},
		{"-2,5", -2.5},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			for _, n := range ParseNumbers(tt.text) {
				if math.Abs(n-tt.want) < 1e-9 {
					return
				}
			}
			t.Fatalf("ParseNumbers(%q) missing %g", tt.text, tt.want)
		})
	}
}

func uniqueSorted(values []float64) []float64 {
	seen := make(map[float64]bool)
	var out []float64
	for _, n := range values {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	sort.Float64s(out)
	return out
}

func TestFilterOutliers(t *testing.T) {
	got := FilterOutliers([]float64{1, 2, 3, 4, 100})

	if len(got) != 4 {
		t.Fatalf("FilterOutliers = %v, want the 100 removed", got)
	}
	for _, v := range got {
		if v == 100 {
			t.Fatalf("outlier 100 survived: %v", got)
		}
	}
}

func TestFilterOutliersNeverEmpties(t *testing.T) {
	inputs := [][]float64{
		{5},
		{1, 1000000000},
		{-3, -2, -1, 0, 1, 2, 3},
	}
	for _, in := range inputs {
		if got := FilterOutliers(in); len(got) == 0 {
			t.Errorf("FilterOutliers(%v) returned empty set", in)
		}
	}
}

func TestFromNumbers(t *testing.T) {
	t.Run("symmetric with zero crossing", func(t *testing.T) {
		cal := fromNumbers([]float64{-4, 0, 6})
		if !cal.IsSymmetric {
			t.Error("expected symmetric")
		}
		if cal.ZeroPosition == nil {
			t.Fatal("expected a zero position")
		}
		if math.Abs(*cal.ZeroPosition-0.4) > 1e-9 {
			t.Errorf("zero position = %.4f, want 0.4", *cal.ZeroPosition)
		}
	})

	t.Run("positive range has no zero position", func(t *testing.T) {
		cal := fromNumbers([]float64{2, 4, 8})
		if cal.IsSymmetric || cal.ZeroPosition != nil {
			t.Errorf("unexpected symmetry or zero position: %+v", cal)
		}
		if cal.MinValue != 2 || cal.MaxValue != 8 {
			t.Errorf("range = [%g, %g], want [2, 8]", cal.MinValue, cal.MaxValue)
		}
	})

	t.Run("zero position stays in bounds", func(t *testing.T) {
		cal := fromNumbers([]float64{-100, -50, 1})
		if cal.ZeroPosition == nil {
			t.Fatal("expected a zero position")
		}
		if *cal.ZeroPosition < 0 || *cal.ZeroPosition > 1 {
			t.Errorf("zero position %.4f out of [0,1]", *cal.ZeroPosition)
		}
		if cal.MinValue > cal.MaxValue {
			t.Errorf("min %g > max %g", cal.MinValue, cal.MaxValue)
		}
	})
}
