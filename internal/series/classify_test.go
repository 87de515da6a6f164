package series

import (
	"testing"

	"graphdig/pkg/colorutil"
)

func TestClassifyColorKnown(t *testing.T) {
	tests := []struct {
		name  string
		color colorutil.RGB
		want  ColorName
	}{
		{"near black", colorutil.RGB{R: 10, G: 10, B: 10}, Black},
		{"pure red", colorutil.RGB{R: 220, G: 20, B: 20}, Red},
		{"pure blue", colorutil.RGB{R: 20, G: 20, B: 220}, Blue},
		{"pure green", colorutil.RGB{R: 20, G: 220, B: 20}, Green},
		{"orange", colorutil.RGB{R: 240, G: 140, B: 30}, Orange},
		{"yellow", colorutil.RGB{R: 200, G: 210, B: 40}, Yellow},
		{"purple", colorutil.RGB{R: 140, G: 40, B: 200}, Purple},
		{"dark gray merges into black", colorutil.RGB{R: 100, G: 105, B: 100}, Black},
		{"dim maroon falls back to black bucket", colorutil.RGB{R: 75, G: 60, B: 60}, Black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyColor(tt.color); got != tt.want {
				t.Errorf("ClassifyColor(%v) = %s, want %s", tt.color, got, tt.want)
			}
		})
	}
}

func TestClassifyColorDeterministicAndTotal(t *testing.T) {
	// Sample the color cube coarsely: every input must yield exactly one
	// canonical name, and repeated calls must agree.
	valid := map[ColorName]bool{
		Red: true, Blue: true, Green: true, Black: true,
		Yellow: true, Orange: true, Purple: true,
	}

	for r := 0; r < 256; r += 17 {
		for g := 0; g < 256; g += 17 {
			for b := 0; b < 256; b += 17 {
				c := colorutil.RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
				first := ClassifyColor(c)
				if !valid[first] {
					t.Fatalf("ClassifyColor(%v) = %q, not a canonical name", c, first)
				}
				if again := ClassifyColor(c); again != first {
					t.Fatalf("ClassifyColor(%v) not deterministic: %s then %s", c, first, again)
				}
			}
		}
	}
}
