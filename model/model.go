package model

import "gonum.org/v1/gonum/floats"

// Hist2D is a binned 2D density grid. Grid is indexed [row=y][col=x], one
// row per y bin, matching the orientation contour renderers expect. The
// edge slices are one longer than the corresponding grid dimension.
type Hist2D struct {
	Grid   [][]float64
	XEdges []float64
	YEdges []float64
}

func (h *Hist2D) NumX() int {
	return len(h.XEdges) - 1
}

func (h *Hist2D) NumY() int {
	return len(h.YEdges) - 1
}

// Flatten returns all cell values as a single slice, row by row. This is
// the form the percentile level inverter consumes.
func (h *Hist2D) Flatten() []float64 {
	res := make([]float64, 0, h.NumX()*h.NumY())
	for _, row := range h.Grid {
		res = append(res, row...)
	}
	return res
}

func (h *Hist2D) MaxCell() float64 {
	flat := h.Flatten()
	if len(flat) == 0 {
		return 0
	}
	return floats.Max(flat)
}
