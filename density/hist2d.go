// Package density turns 2D point clouds into binned density grids. Bins
// are chosen per axis by the binning package, counts can be weighted, and
// the grid can be smoothed with a Gaussian kernel so sparse data still
// produces usable contours. Axes may be binned in log space.
package density

import (
	"math"
	"sort"

	"github.com/contourkit/contourkit/binning"
	"github.com/contourkit/contourkit/common"
	"github.com/contourkit/contourkit/model"
	"github.com/contourkit/contourkit/utils"
	"github.com/contourkit/contourkit/validate"
)

// Options configures SmartHist2D. BinSize, Padding and Smoothing each take
// nil (use the default), a single value applied to both axes, or an (x, y)
// pair. Weights, when set, must match the data length. LogX and LogY bin
// the corresponding axis in log10 space, so bin sizes, padding and
// smoothing for that axis are in dex.
type Options struct {
	BinSize   []float64
	Padding   []float64
	Smoothing []float64
	Weights   []float64
	LogX      bool
	LogY      bool
}

// axisParams normalizes one of the per-axis option slices against its
// default value.
func axisParams(vals []float64, def float64) ([2]float64, error) {
	if vals == nil {
		return [2]float64{def, def}, nil
	}
	return validate.TwoItem(vals)
}

// binIndex locates the bin holding v. Values on an edge fall into the bin
// to the right, the numpy histogram convention.
func binIndex(edges []float64, v float64) int {
	i := sort.SearchFloat64s(edges, v)
	if i < len(edges) && edges[i] == v {
		return i
	}
	return i - 1
}

// SmartHist2D bins the (x, y) points into a 2D grid. Bin edges come from
// the automatic width selection unless opt.BinSize overrides it, and the
// grid is smoothed when opt.Smoothing is set. The returned grid is indexed
// [row=y][col=x].
func SmartHist2D(xs, ys []float64, opt Options) (*model.Hist2D, error) {
	if len(xs) != len(ys) {
		return nil, common.ValueErrorf("x and y data must be the same length.")
	}
	if len(xs) == 0 {
		return nil, common.ValueErrorf("Empty list is not valid for data.")
	}
	if err := validate.FiniteSlice(xs, "x data must contain only finite values"); err != nil {
		return nil, err
	}
	if err := validate.FiniteSlice(ys, "y data must contain only finite values"); err != nil {
		return nil, err
	}

	weights := opt.Weights
	if weights == nil {
		weights = utils.Ones(len(xs))
	}
	if len(weights) != len(xs) {
		return nil, common.ValueErrorf("Weights and data need to have the same length.")
	}
	for _, w := range weights {
		if !validate.IsFinite(w) || w < 0 {
			return nil, common.ValueErrorf("Weights must be non-negative.")
		}
	}

	var binSize [2]float64
	autoBins := opt.BinSize == nil
	if !autoBins {
		pair, err := validate.TwoItem(opt.BinSize)
		if err != nil {
			return nil, err
		}
		for _, b := range pair {
			if !validate.IsFinite(b) || b <= 0 {
				return nil, common.ValueErrorf("Bin size must be positive.")
			}
		}
		binSize = pair
	}

	padding, err := axisParams(opt.Padding, 0)
	if err != nil {
		return nil, err
	}
	for _, p := range padding {
		if !validate.IsFinite(p) || p < 0 {
			return nil, common.ValueErrorf("Padding must be non-negative.")
		}
	}

	smoothing, err := axisParams(opt.Smoothing, 0)
	if err != nil {
		return nil, err
	}
	for _, s := range smoothing {
		if !validate.IsFinite(s) || s < 0 {
			return nil, common.ValueErrorf("Smoothing must be nonnegative.")
		}
	}

	xVals, err := axisValues(xs, opt.LogX)
	if err != nil {
		return nil, err
	}
	yVals, err := axisValues(ys, opt.LogY)
	if err != nil {
		return nil, err
	}

	makeEdges := func(vals []float64, axis int) ([]float64, error) {
		if autoBins {
			return binning.MakeBins(vals, padding[axis])
		}
		return binning.MakeBinsWidth(vals, binSize[axis], padding[axis])
	}
	xEdges, err := makeEdges(xVals, 0)
	if err != nil {
		return nil, err
	}
	yEdges, err := makeEdges(yVals, 1)
	if err != nil {
		return nil, err
	}

	numX, numY := len(xEdges)-1, len(yEdges)-1
	grid := make([][]float64, numY)
	for r := range grid {
		grid[r] = make([]float64, numX)
	}
	for i := range xVals {
		xi := clamp(binIndex(xEdges, xVals[i]), numX)
		yi := clamp(binIndex(yEdges, yVals[i]), numY)
		grid[yi][xi] += weights[i]
	}

	if smoothing[0] > 0 || smoothing[1] > 0 {
		sigmaCol := smoothing[0] / (xEdges[1] - xEdges[0])
		sigmaRow := smoothing[1] / (yEdges[1] - yEdges[0])
		grid = GaussianFilter2D(grid, sigmaRow, sigmaCol)
	}

	if opt.LogX {
		xEdges = pow10Edges(xEdges)
	}
	if opt.LogY {
		yEdges = pow10Edges(yEdges)
	}

	return &model.Hist2D{Grid: grid, XEdges: xEdges, YEdges: yEdges}, nil
}

// axisValues returns the coordinates the axis is actually binned on,
// taking log10 for log axes.
func axisValues(data []float64, log bool) ([]float64, error) {
	if !log {
		return data, nil
	}
	res := make([]float64, len(data))
	for i, v := range data {
		if v <= 0 {
			return nil, common.ValueErrorf("All data must be positive for a log axis.")
		}
		res[i] = math.Log10(v)
	}
	return res, nil
}

func pow10Edges(edges []float64) []float64 {
	res := make([]float64, len(edges))
	for i, e := range edges {
		res[i] = math.Pow(10, e)
	}
	return res
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
