package marker

import (
	"image"
	"image/color"
	"sync"

	"graphdig/pkg/geometry"

	"gocv.io/x/gocv"
)

// detectCurveGrid partitions the frame interior into a GridSize×GridSize
// grid and emits at most one curve-tagged candidate per cell, bounding the
// sample count to GridSize² regardless of image resolution or curve count
// while guaranteeing uniform spatial coverage. Cells have no
// cross-dependencies, so grid rows fan out over a worker pool; results are
// appended under a mutex and their order carries no meaning.
func (d *Detector) detectCurveGrid(roi, gray gocv.Mat, offset image.Point) []Candidate {
	p := d.params
	h, w := roi.Rows(), roi.Cols()
	if h == 0 || w == 0 || p.GridSize <= 0 {
		return nil
	}

	var edges gocv.Mat
	if p.UseEdgeGrid {
		edges = cannyEdges(gray)
		defer edges.Close()
	}

	cellH := float64(h) / float64(p.GridSize)
	cellW := float64(w) / float64(p.GridSize)

	workers := p.GridWorkers
	if workers < 1 {
		workers = 1
	}

	var mu sync.Mutex
	var out []Candidate
	var wg sync.WaitGroup

	rows := make(chan int)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var local []Candidate
			for row := range rows {
				for col := 0; col < p.GridSize; col++ {
					y1, y2 := int(float64(row)*cellH), int(float64(row+1)*cellH)
					x1, x2 := int(float64(col)*cellW), int(float64(col+1)*cellW)

					var cand *Candidate
					if p.UseEdgeGrid {
						cand = d.edgeCell(roi, edges, x1, y1, x2, y2)
					} else {
						cand = d.salientCell(roi, x1, y1, x2, y2)
					}
					if cand != nil {
						cand.Pos.X += offset.X
						cand.Pos.Y += offset.Y
						local = append(local, *cand)
					}
				}
			}
			mu.Lock()
			out = append(out, local...)
			mu.Unlock()
		}()
	}

	for row := 0; row < p.GridSize; row++ {
		rows <- row
	}
	close(rows)
	wg.Wait()

	return out
}

// salientCell picks the most chromatically salient non-neutral pixel in a
// cell, or nothing when the whole cell is background. Salience is Lab
// chroma penalized toward extreme lightness, so anti-aliased curve pixels
// beat both the white page and near-black frame remnants.
func (d *Detector) salientCell(roi gocv.Mat, x1, y1, x2, y2 int) *Candidate {
	bestScore := d.params.MinChromaScore
	var best *Candidate

	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			c := sampleColor(roi, x, y)
			if c.IsNeutral() {
				continue
			}
			if score := c.ChromaScore(); score > bestScore {
				bestScore = score
				best = &Candidate{
					Pos:   geometry.PointInt{X: x, Y: y},
					Color: c,
					Type:  TypeCurve,
				}
			}
		}
	}
	return best
}

// edgeCell emits the cell center when the cell contains any detected edge
// pixel and the center color is not neutral.
func (d *Detector) edgeCell(roi, edges gocv.Mat, x1, y1, x2, y2 int) *Candidate {
	found := false
	for y := y1; y < y2 && !found; y++ {
		for x := x1; x < x2; x++ {
			if edges.GetUCharAt(y, x) > 0 {
				found = true
				break
			}
		}
	}
	if !found {
		return nil
	}

	cx, cy := (x1+x2)/2, (y1+y2)/2
	if cx >= roi.Cols() || cy >= roi.Rows() {
		return nil
	}

	c := sampleColor(roi, cx, cy)
	if c.IsNeutral() {
		return nil
	}

	return &Candidate{
		Pos:   geometry.PointInt{X: cx, Y: cy},
		Color: c,
		Type:  TypeCurve,
	}
}

// cannyEdges builds a lightly dilated edge mask so thin curve strokes
// still register in coarse grid cells.
func cannyEdges(gray gocv.Mat) gocv.Mat {
	edges := gocv.NewMat()
	gocv.Canny(gray, &edges, 30, 100)

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{2, 2})
	defer kernel.Close()
	gocv.DilateWithParams(edges, &edges, kernel, image.Point{-1, -1}, 1, int(gocv.BorderConstant), color.RGBA{})

	return edges
}
