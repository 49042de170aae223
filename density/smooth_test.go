package density

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGaussian(t *testing.T) {
	assert.InDelta(t, 1/math.Sqrt(2*math.Pi), Gaussian(0, 0, 1), 1e-12)
	assert.InDelta(t, Gaussian(1, 0, 1), Gaussian(-1, 0, 1), 1e-12)
	assert.InDelta(t, Gaussian(0, 0, 1), 2*Gaussian(0, 0, 2), 1e-12)
	assert.Greater(t, Gaussian(0, 0, 1), Gaussian(0.5, 0, 1))
}

func TestPaddingFromSmoothing(t *testing.T) {
	got, err := PaddingFromSmoothing([]float64{3.33, 9.33})
	require.NoError(t, err)
	assert.InDelta(t, 16.65, got[0], 1e-10)
	assert.InDelta(t, 46.65, got[1], 1e-10)

	got, err = PaddingFromSmoothing([]float64{2})
	require.NoError(t, err)
	assert.Equal(t, [2]float64{10, 10}, got)
}

func TestPaddingFromSmoothingErrors(t *testing.T) {
	_, err := PaddingFromSmoothing([]float64{1, 2, 3})
	assert.ErrorContains(t, err, "An iterable must have length two.")

	_, err = PaddingFromSmoothing([]float64{-1})
	assert.ErrorContains(t, err, "Smoothing must be nonnegative.")
}

func TestGaussianKernelNormalized(t *testing.T) {
	for _, sigma := range []float64{0.5, 1, 2.7} {
		kernel := gaussianKernel(sigma)
		sum := 0.0
		for _, w := range kernel {
			sum += w
		}
		assert.InDelta(t, 1, sum, 1e-12, "sigma %v", sigma)
		// symmetric about the center
		for i, j := 0, len(kernel)-1; i < j; i, j = i+1, j-1 {
			assert.InDelta(t, kernel[j], kernel[i], 1e-12)
		}
	}
}

func TestGaussianFilter2DPreservesMass(t *testing.T) {
	grid := [][]float64{
		{0, 0, 0, 0, 0},
		{0, 0, 4, 0, 0},
		{0, 0, 0, 0, 1},
	}
	smoothed := GaussianFilter2D(grid, 1, 1)
	assert.InDelta(t, gridSum(grid), gridSum(smoothed), 1e-9)
	// input untouched
	assert.Equal(t, 4.0, grid[1][2])
}

func TestGaussianFilter2DSpreadsPeak(t *testing.T) {
	grid := make([][]float64, 9)
	for r := range grid {
		grid[r] = make([]float64, 9)
	}
	grid[4][4] = 1

	smoothed := GaussianFilter2D(grid, 1, 1)
	assert.Less(t, smoothed[4][4], 1.0)
	assert.Greater(t, smoothed[4][4], smoothed[4][5])
	assert.Greater(t, smoothed[4][5], smoothed[4][6])
	// separable kernel is symmetric in both axes
	assert.InDelta(t, smoothed[4][3], smoothed[4][5], 1e-12)
	assert.InDelta(t, smoothed[3][4], smoothed[5][4], 1e-12)
}

func TestGaussianFilter2DSkipsNonPositiveSigma(t *testing.T) {
	grid := [][]float64{{1, 2}, {3, 4}}
	assert.Equal(t, grid, GaussianFilter2D(grid, 0, 0))
}
