package series

import (
	"testing"
)

func TestKeyString(t *testing.T) {
	if got := (Key{Color: Red, Curve: false}).String(); got != "Red_points" {
		t.Errorf("marker key = %q, want Red_points", got)
	}
	if got := (Key{Color: Blue, Curve: true}).String(); got != "Blue_line" {
		t.Errorf("curve key = %q, want Blue_line", got)
	}
}

func TestSummarize(t *testing.T) {
	all := []Series{
		{
			Key: Key{Color: Red},
			Points: []DataPoint{
				{X: 1, Y: 10, MarkerType: "circle"},
				{X: 2, Y: 30, MarkerType: "circle"},
				{X: 3, Y: 20, MarkerType: "square"},
			},
		},
		{
			Key: Key{Color: Blue, Curve: true},
			Points: []DataPoint{
				{X: 0.5, Y: 5, MarkerType: "curve"},
			},
		},
	}

	s := Summarize(all, CalibrationSummary{XMin: 0, XMax: 10, YMin: 0, YMax: 100})

	if s.TotalSeries != 2 || s.TotalPoints != 4 {
		t.Fatalf("totals = (%d series, %d points), want (2, 4)", s.TotalSeries, s.TotalPoints)
	}

	red, ok := s.Series["Red_points"]
	if !ok {
		t.Fatal("missing Red_points summary")
	}
	if red.Points != 3 {
		t.Errorf("Red_points count = %d, want 3", red.Points)
	}
	if len(red.MarkerTypes) != 2 {
		t.Errorf("Red_points marker types = %v, want [circle square]", red.MarkerTypes)
	}
	if red.XRange[0] != 1 || red.XRange[1] != 3 {
		t.Errorf("Red_points x range = %v, want [1 3]", red.XRange)
	}
	if red.YRange[0] != 10 || red.YRange[1] != 30 {
		t.Errorf("Red_points y range = %v, want [10 30]", red.YRange)
	}
}
