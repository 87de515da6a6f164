package colorutil

import (
	"math"
	"testing"
)

func TestRGBToHSV(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b float64
		h, s, v float64
	}{
		{"pure red", 255, 0, 0, 0, 255, 255},
		{"pure green", 0, 255, 0, 60, 255, 255},
		{"pure blue", 0, 0, 255, 120, 255, 255},
		{"white", 255, 255, 255, 0, 0, 255},
		{"black", 0, 0, 0, 0, 0, 0},
		{"mid gray", 128, 128, 128, 0, 0, 128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, s, v := RGBToHSV(tt.r, tt.g, tt.b)
			if math.Abs(h-tt.h) > 0.5 || math.Abs(s-tt.s) > 0.5 || math.Abs(v-tt.v) > 0.5 {
				t.Errorf("RGBToHSV(%g, %g, %g) = (%.1f, %.1f, %.1f), want (%g, %g, %g)",
					tt.r, tt.g, tt.b, h, s, v, tt.h, tt.s, tt.v)
			}
		})
	}
}

func TestIsNeutral(t *testing.T) {
	tests := []struct {
		name string
		c    RGB
		want bool
	}{
		{"white page", RGB{R: 250, G: 248, B: 252}, true},
		{"light gray", RGB{R: 200, G: 205, B: 198}, true},
		{"black", RGB{R: 5, G: 5, B: 5}, false},
		{"saturated red", RGB{R: 220, G: 30, B: 30}, false},
		{"pale but tinted", RGB{R: 240, G: 180, B: 180}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.IsNeutral(); got != tt.want {
				t.Errorf("IsNeutral(%v) = %v, want %v", tt.c, got, tt.want)
			}
		})
	}
}

func TestChromaScoreOrdersSalience(t *testing.T) {
	red := RGB{R: 220, G: 30, B: 30}
	faded := RGB{R: 180, G: 140, B: 140}
	gray := RGB{R: 128, G: 128, B: 128}

	if red.ChromaScore() <= faded.ChromaScore() {
		t.Errorf("saturated red (%g) should outscore faded red (%g)",
			red.ChromaScore(), faded.ChromaScore())
	}
	if faded.ChromaScore() <= gray.ChromaScore() {
		t.Errorf("faded red (%g) should outscore gray (%g)",
			faded.ChromaScore(), gray.ChromaScore())
	}
	if gray.ChromaScore() > 0.01 {
		t.Errorf("gray chroma score = %g, want near zero", gray.ChromaScore())
	}
}
