package density

import (
	"math"

	"github.com/contourkit/contourkit/common"
	"github.com/contourkit/contourkit/validate"
)

// Gaussian evaluates the normalized Gaussian probability density at x.
func Gaussian(x, mean, sigma float64) float64 {
	u := (x - mean) / sigma
	return math.Exp(-u*u/2) / (sigma * math.Sqrt(2*math.Pi))
}

// PaddingFromSmoothing converts per-axis smoothing lengths into the padding
// the histogram needs so the smoothed density can fall off to zero inside
// the grid instead of being clipped at the data range. Five smoothing
// lengths is past the point where the kernel contributes anything visible.
func PaddingFromSmoothing(smoothing []float64) ([2]float64, error) {
	pair, err := validate.TwoItem(smoothing)
	if err != nil {
		return [2]float64{}, err
	}
	for _, s := range pair {
		if !validate.IsFinite(s) || s < 0 {
			return [2]float64{}, common.ValueErrorf("Smoothing must be nonnegative.")
		}
	}
	return [2]float64{5 * pair[0], 5 * pair[1]}, nil
}

// gaussianKernel builds a normalized 1D kernel truncated at four standard
// deviations, the cutoff scipy's gaussian_filter uses.
func gaussianKernel(sigma float64) []float64 {
	radius := int(4 * sigma)
	if radius < 1 {
		radius = 1
	}
	kernel := make([]float64, 2*radius+1)
	sum := 0.0
	for i := range kernel {
		kernel[i] = Gaussian(float64(i-radius), 0, sigma)
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// reflectIndex maps an out-of-range index back into [0, n) by mirroring
// about the array edges, repeating the edge sample.
func reflectIndex(i, n int) int {
	for i < 0 || i >= n {
		if i < 0 {
			i = -i - 1
		} else {
			i = 2*n - i - 1
		}
	}
	return i
}

// convolve1D applies kernel to data with reflected boundaries.
func convolve1D(data, kernel []float64) []float64 {
	n := len(data)
	radius := len(kernel) / 2
	res := make([]float64, n)
	for i := 0; i < n; i++ {
		acc := 0.0
		for k, w := range kernel {
			acc += w * data[reflectIndex(i+k-radius, n)]
		}
		res[i] = acc
	}
	return res
}

// GaussianFilter2D smooths grid with a separable Gaussian kernel. The
// sigmas are in cell units: sigmaRow acts along columns (the y direction
// for a [row=y][col=x] grid) and sigmaCol along rows. A nonpositive sigma
// skips that axis. The total mass of the grid is preserved up to the
// reflected-boundary approximation.
func GaussianFilter2D(grid [][]float64, sigmaRow, sigmaCol float64) [][]float64 {
	rows := len(grid)
	if rows == 0 {
		return grid
	}
	cols := len(grid[0])

	res := make([][]float64, rows)
	for r := range res {
		res[r] = append([]float64(nil), grid[r]...)
	}

	if sigmaCol > 0 {
		kernel := gaussianKernel(sigmaCol)
		for r := 0; r < rows; r++ {
			res[r] = convolve1D(res[r], kernel)
		}
	}
	if sigmaRow > 0 {
		kernel := gaussianKernel(sigmaRow)
		col := make([]float64, rows)
		for c := 0; c < cols; c++ {
			for r := 0; r < rows; r++ {
				col[r] = res[r][c]
			}
			smoothed := convolve1D(col, kernel)
			for r := 0; r < rows; r++ {
				res[r][c] = smoothed[r]
			}
		}
	}
	return res
}
