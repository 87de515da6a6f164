// Package cluster reconciles duplicate marker detections. The hue,
// grayscale, and circle passes frequently re-detect the same physical
// marker; density-based clustering collapses each group to one point.
package cluster

import (
	"log"

	"graphdig/internal/marker"
	"graphdig/pkg/colorutil"
	"graphdig/pkg/geometry"

	"gonum.org/v1/gonum/stat"
)

// Params configures deduplication.
type Params struct {
	// Eps is the clustering radius in pixels: two marker detections
	// closer than this are the same physical marker.
	Eps float64
}

// DefaultParams returns the clustering radius tuned for typical marker sizes.
func DefaultParams() Params {
	return Params{Eps: 8}
}

// Deduplicate collapses redundant marker candidates. Only marker-type
// candidates are clustered; curve candidates are already grid-spaced one
// per cell and pass through untouched. Each cluster of size one passes
// through unchanged; larger clusters collapse to the mean pixel position
// with the most frequent color and marker type among members.
func Deduplicate(candidates []marker.Candidate, p Params) []marker.Candidate {
	var markers, curves []marker.Candidate
	for _, c := range candidates {
		if c.IsCurve() {
			curves = append(curves, c)
		} else {
			markers = append(markers, c)
		}
	}

	if len(markers) == 0 {
		return curves
	}

	labels := dbscan(markers, p.Eps)

	nClusters := 0
	for _, l := range labels {
		if l+1 > nClusters {
			nClusters = l + 1
		}
	}

	out := make([]marker.Candidate, 0, nClusters+len(curves))
	for label := 0; label < nClusters; label++ {
		var members []marker.Candidate
		for i, l := range labels {
			if l == label {
				members = append(members, markers[i])
			}
		}
		out = append(out, collapse(members))
	}

	log.Printf("cluster: %d marker detections -> %d points", len(markers), nClusters)
	return append(out, curves...)
}

// dbscan assigns cluster labels by density reachability with minPts=1:
// every point belongs to a cluster, and clusters are the transitive
// closure of the eps-neighborhood relation. Quadratic neighbor search is
// fine at marker counts (hundreds, not millions).
func dbscan(points []marker.Candidate, eps float64) []int {
	n := len(points)
	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}

	next := 0
	for i := 0; i < n; i++ {
		if labels[i] != -1 {
			continue
		}
		// Flood-fill the eps-connected component
		labels[i] = next
		queue := []int{i}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for j := 0; j < n; j++ {
				if labels[j] != -1 {
					continue
				}
				if dist(points[cur], points[j]) <= eps {
					labels[j] = next
					queue = append(queue, j)
				}
			}
		}
		next++
	}
	return labels
}

func dist(a, b marker.Candidate) float64 {
	return a.Pos.ToFloat().Distance(b.Pos.ToFloat())
}

// collapse merges cluster members into a single candidate at the mean
// position, voting on color and marker type.
func collapse(members []marker.Candidate) marker.Candidate {
	if len(members) == 1 {
		return members[0]
	}

	xs := make([]float64, len(members))
	ys := make([]float64, len(members))
	for i, m := range members {
		xs[i] = float64(m.Pos.X)
		ys[i] = float64(m.Pos.Y)
	}

	colorVotes := make(map[colorutil.RGB]int)
	typeVotes := make(map[string]int)
	for _, m := range members {
		colorVotes[m.Color]++
		typeVotes[m.Type]++
	}

	return marker.Candidate{
		Pos: geometry.PointInt{
			X: int(stat.Mean(xs, nil)),
			Y: int(stat.Mean(ys, nil)),
		},
		Color: majorityColor(colorVotes),
		Type:  majorityType(typeVotes),
	}
}

// Vote ties are broken by a fixed ordering so a collapsed candidate is
// identical run-to-run regardless of map iteration order.
func majorityColor(votes map[colorutil.RGB]int) colorutil.RGB {
	var best colorutil.RGB
	bestN := -1
	for c, n := range votes {
		if n > bestN || (n == bestN && rgbLess(c, best)) {
			best, bestN = c, n
		}
	}
	return best
}

func majorityType(votes map[string]int) string {
	best := marker.TypePoint
	bestN := -1
	for t, n := range votes {
		if n > bestN || (n == bestN && t < best) {
			best, bestN = t, n
		}
	}
	return best
}

func rgbLess(a, b colorutil.RGB) bool {
	if a.R != b.R {
		return a.R < b.R
	}
	if a.G != b.G {
		return a.G < b.G
	}
	return a.B < b.B
}
