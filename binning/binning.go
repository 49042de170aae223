// Package binning selects histogram bin widths and builds bin edges that
// line up with round numbers. Widths come from the Freedman-Diaconis rule
// rounded to a "nice" magnitude, and edges are anchored to integer
// multiples of the width rather than to the data minimum, so histograms
// land on axis ticks.
package binning

import (
	"math"
	"sort"

	"github.com/contourkit/contourkit/common"
	"github.com/contourkit/contourkit/validate"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FreedmanDiaconisCore computes the Freedman-Diaconis bin width
// 2 * iqr * n^(-1/3) from a precomputed interquartile range and sample
// size. Degenerate data (zero IQR) is rejected; the caller should pass an
// explicit bin size instead.
func FreedmanDiaconisCore(iqr float64, n int) (float64, error) {
	if n <= 0 {
		return 0, common.ValueErrorf(
			"The number of data points must be positive in Freedman Diaconis binning.")
	}
	if !validate.IsFinite(iqr) || iqr <= 0 {
		return 0, common.ValueErrorf(
			"The Freeman-Diaconis default binning relies on inter-quartile range, " +
				"and your data has zero.\nTry passing your own bin size.")
	}
	return 2 * iqr * math.Pow(float64(n), -1.0/3.0), nil
}

// FreedmanDiaconis computes the bin width for data from its empirical
// interquartile range.
func FreedmanDiaconis(data []float64) (float64, error) {
	if len(data) == 0 {
		return FreedmanDiaconisCore(0, 0)
	}
	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)
	iqr := stat.Quantile(0.75, stat.Empirical, sorted, nil) -
		stat.Quantile(0.25, stat.Empirical, sorted, nil)
	return FreedmanDiaconisCore(iqr, len(data))
}

// RoundToNiceWidth rounds a positive width to the nearest of
// {1, 2, 5, 10} * 10^floor(log10(width)), ties going to the larger
// candidate. These divide evenly into powers of ten, so the resulting bins
// line up with typical axis ticks.
func RoundToNiceWidth(width float64) (float64, error) {
	if !validate.IsFinite(width) || width <= 0 {
		return 0, common.ValueErrorf("Bin width must be positive.")
	}
	factor := math.Pow(10, math.Floor(math.Log10(width)))
	best := factor
	bestDiff := math.Abs(width - factor)
	for _, c := range []float64{2, 5, 10} {
		cand := c * factor
		if diff := math.Abs(width - cand); diff <= bestDiff {
			best, bestDiff = cand, diff
		}
	}
	return best, nil
}

// RoundedBinWidth is the standard automatic width: Freedman-Diaconis
// rounded to a nice magnitude.
func RoundedBinWidth(data []float64) (float64, error) {
	w, err := FreedmanDiaconis(data)
	if err != nil {
		return 0, err
	}
	return RoundToNiceWidth(w)
}

// Binning builds the bin edges covering [min-padding, max+padding]. Every
// edge is an integer multiple of binSize, and the sequence is extended by
// one width past the maximum so the largest value sits strictly inside the
// last bin. When the lower limit lands exactly on a multiple of binSize the
// sequence is shifted down one more bin, so the minimum value never sits on
// an edge.
func Binning(min, max, binSize, padding float64) ([]float64, error) {
	if !validate.IsFinite(binSize) || binSize <= 0 {
		return nil, common.ValueErrorf("Bin size must be positive.")
	}
	if !validate.IsFinite(padding) || padding < 0 {
		return nil, common.ValueErrorf("Padding must be non-negative.")
	}
	if !validate.IsFinite(min) || !validate.IsFinite(max) {
		return nil, common.ValueErrorf("Min and max must be finite values.")
	}
	if min > max {
		return nil, common.ValueErrorf("Min must be smaller than max.")
	}

	lower := math.Floor((min - padding) / binSize)
	upper := math.Floor((max+padding)/binSize) + 1

	rem := (min - padding) - binSize*lower
	if rem <= 1e-8*binSize {
		lower--
	}

	edges := make([]float64, 0, int(upper-lower)+1)
	for m := lower; m <= upper; m++ {
		edges = append(edges, m*binSize)
	}
	return edges, nil
}

// BinCenters returns the midpoint of each adjacent pair of edges.
func BinCenters(edges []float64) ([]float64, error) {
	if len(edges) < 2 {
		return nil, common.ValueErrorf("Need at least two edges to calculate centers.")
	}
	centers := make([]float64, len(edges)-1)
	for i := range centers {
		centers[i] = (edges[i] + edges[i+1]) / 2
	}
	return centers, nil
}

// MakeBins builds edges for data with an automatically selected width.
func MakeBins(data []float64, padding float64) ([]float64, error) {
	if len(data) == 0 {
		return nil, common.ValueErrorf("Empty list is not valid for data.")
	}
	w, err := RoundedBinWidth(data)
	if err != nil {
		return nil, err
	}
	return MakeBinsWidth(data, w, padding)
}

// MakeBinsWidth builds edges for data with an explicit bin width.
func MakeBinsWidth(data []float64, binSize, padding float64) ([]float64, error) {
	if len(data) == 0 {
		return nil, common.ValueErrorf("Empty list is not valid for data.")
	}
	if err := validate.FiniteSlice(data, "data must contain only finite values"); err != nil {
		return nil, err
	}
	return Binning(floats.Min(data), floats.Max(data), binSize, padding)
}
