package density

import (
	"math"
	"testing"

	"github.com/contourkit/contourkit/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gridSum(grid [][]float64) float64 {
	sum := 0.0
	for _, row := range grid {
		for _, v := range row {
			sum += v
		}
	}
	return sum
}

func TestSmartHist2DOrientation(t *testing.T) {
	// wide in x, single bin in y: one row, three columns
	xs := []float64{0.5, 1.5, 2.5}
	ys := []float64{0.5, 0.5, 0.5}
	h, err := SmartHist2D(xs, ys, Options{BinSize: []float64{1}})
	require.NoError(t, err)

	assert.Equal(t, 3, h.NumX())
	assert.Equal(t, 1, h.NumY())
	require.Len(t, h.Grid, 1)
	assert.Equal(t, []float64{1, 1, 1}, h.Grid[0])
}

func TestSmartHist2DEdgeValueGoesRight(t *testing.T) {
	h, err := SmartHist2D([]float64{1}, []float64{0.5}, Options{BinSize: []float64{1}})
	require.NoError(t, err)

	// x edges are [0, 1, 2]; a point exactly on the interior edge lands in
	// the right bin
	assert.Equal(t, []float64{0, 1, 2}, h.XEdges)
	assert.Equal(t, []float64{0, 1}, h.Grid[0])
}

func TestSmartHist2DWeights(t *testing.T) {
	xs := []float64{0.2, 0.7}
	ys := []float64{0.2, 0.2}
	h, err := SmartHist2D(xs, ys, Options{
		BinSize: []float64{0.5},
		Weights: []float64{2, 3},
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3}, h.Grid[0])
}

func TestSmartHist2DScalarBinSizeAppliesToBothAxes(t *testing.T) {
	xs := []float64{0.5, 1.5}
	ys := []float64{0.5, 1.5}
	h, err := SmartHist2D(xs, ys, Options{BinSize: []float64{1}})
	require.NoError(t, err)
	assert.Equal(t, h.XEdges, h.YEdges)
	assert.Equal(t, 1.0, h.Grid[0][0])
	assert.Equal(t, 1.0, h.Grid[1][1])
}

func TestSmartHist2DPerAxisBinSize(t *testing.T) {
	xs := []float64{0.5, 3.5}
	ys := []float64{0.5, 3.5}
	h, err := SmartHist2D(xs, ys, Options{BinSize: []float64{1, 2}})
	require.NoError(t, err)
	assert.InDelta(t, 1, h.XEdges[1]-h.XEdges[0], 1e-10)
	assert.InDelta(t, 2, h.YEdges[1]-h.YEdges[0], 1e-10)
}

func TestSmartHist2DSmoothingPreservesMass(t *testing.T) {
	xs := []float64{5, 5.1, 4.9, 5}
	ys := []float64{5, 5, 5.1, 4.9}
	h, err := SmartHist2D(xs, ys, Options{
		BinSize:   []float64{0.5},
		Padding:   []float64{3},
		Smoothing: []float64{1},
	})
	require.NoError(t, err)
	assert.InDelta(t, 4, gridSum(h.Grid), 1e-9)

	// smoothing spreads the peak down
	unsmoothed, err := SmartHist2D(xs, ys, Options{
		BinSize: []float64{0.5},
		Padding: []float64{3},
	})
	require.NoError(t, err)
	assert.Less(t, h.MaxCell(), unsmoothed.MaxCell())
}

func TestSmartHist2DLogAxis(t *testing.T) {
	xs := []float64{1, 10, 100}
	ys := []float64{0.5, 0.5, 0.5}
	h, err := SmartHist2D(xs, ys, Options{BinSize: []float64{1}, LogX: true})
	require.NoError(t, err)

	// binned on log10(x) with 1 dex bins, edges returned in linear space
	want := []float64{0.1, 1, 10, 100, 1000}
	require.Len(t, h.XEdges, len(want))
	for i := range want {
		assert.InDelta(t, want[i], h.XEdges[i], 1e-9)
	}
	// log10 of the data is 0, 1, 2, each landing on an interior edge and
	// falling into the bin to its right
	assert.Equal(t, []float64{0, 1, 1, 1}, h.Grid[0])
}

func TestSmartHist2DLogAxisRejectsNonPositive(t *testing.T) {
	_, err := SmartHist2D([]float64{0, 1}, []float64{1, 1},
		Options{BinSize: []float64{1}, LogX: true})
	assert.ErrorContains(t, err, "All data must be positive for a log axis.")

	_, err = SmartHist2D([]float64{1, 1}, []float64{-2, 1},
		Options{BinSize: []float64{1}, LogY: true})
	assert.ErrorContains(t, err, "All data must be positive for a log axis.")
}

func TestSmartHist2DErrors(t *testing.T) {
	xs := []float64{1, 2}
	ys := []float64{1, 2}

	_, err := SmartHist2D(xs, []float64{1}, Options{})
	assert.ErrorContains(t, err, "x and y data must be the same length.")

	_, err = SmartHist2D(nil, nil, Options{})
	assert.ErrorContains(t, err, "Empty list is not valid for data.")

	_, err = SmartHist2D(xs, ys, Options{BinSize: []float64{1, 2, 3}})
	assert.ErrorContains(t, err, "An iterable must have length two.")

	_, err = SmartHist2D(xs, ys, Options{BinSize: []float64{0}})
	assert.ErrorContains(t, err, "Bin size must be positive.")

	_, err = SmartHist2D(xs, ys, Options{BinSize: []float64{1}, Padding: []float64{-1}})
	assert.ErrorContains(t, err, "Padding must be non-negative.")

	_, err = SmartHist2D(xs, ys, Options{BinSize: []float64{1}, Smoothing: []float64{-1}})
	assert.ErrorContains(t, err, "Smoothing must be nonnegative.")

	_, err = SmartHist2D(xs, ys, Options{Weights: []float64{1}})
	assert.ErrorContains(t, err, "Weights and data need to have the same length.")

	_, err = SmartHist2D(xs, ys, Options{Weights: []float64{1, -1}})
	assert.ErrorContains(t, err, "Weights must be non-negative.")

	_, err = SmartHist2D([]float64{1, math.NaN()}, ys, Options{})
	assert.ErrorIs(t, err, common.ErrorInvalidValue)
}
