package utils

import "math"

// IsClose reports whether a and b agree within the usual relative and
// absolute tolerances (1e-5 and 1e-8).
func IsClose(a, b float64) bool {
	return math.Abs(a-b) <= 1e-8+1e-5*math.Abs(b)
}

// Ones returns a weight vector of n ones, the default when the caller does
// not weight the sample points.
func Ones(n int) []float64 {
	res := make([]float64, n)
	for i := range res {
		res[i] = 1
	}
	return res
}

// AllEqual reports whether every element of data equals the first one.
// True for empty input.
func AllEqual(data []float64) bool {
	for i := 1; i < len(data); i++ {
		if data[i] != data[0] {
			return false
		}
	}
	return true
}
