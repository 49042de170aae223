// Package validate coerces loosely typed inputs (parsed JSON, CSV cells,
// caller-supplied any values) into float scalars and flat float slices.
// Every public entry point of the binning and density packages funnels
// untyped data through here before using it.
package validate

import (
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/contourkit/contourkit/common"
)

const (
	defaultScalarMessage = "This item cannot be cast to a scalar float."
	defaultListMessage   = "This item cannot be cast to a float array."
)

// coerce converts a single non-sequence value to float64. Numeric strings
// count as numbers, matching what plotting callers tend to feed in.
func coerce(item interface{}) (float64, bool) {
	switch v := item.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	}
	return 0, false
}

// NumericScalar turns item into a single float64. Accepts real numbers,
// numeric strings and one-element sequences (recursively). Maps, empty or
// multi-element sequences and non-numeric strings fail with
// common.ErrorInvalidType carrying message (or a default one).
func NumericScalar(item interface{}, message string) (float64, error) {
	if message == "" {
		message = defaultScalarMessage
	}
	if f, ok := coerce(item); ok {
		return f, nil
	}
	rv := reflect.ValueOf(item)
	if rv.IsValid() && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) {
		if rv.Len() != 1 {
			return 0, common.TypeErrorf("%s", message)
		}
		return NumericScalar(rv.Index(0).Interface(), message)
	}
	return 0, common.TypeErrorf("%s", message)
}

// NumericList1D turns item into a flat []float64. Scalars wrap into a one
// element slice. Elements may be numbers or numeric strings. Nested
// sequences are a shape error (common.ErrorInvalidValue); anything else
// that fails coercion is common.ErrorInvalidType. Empty input is valid.
func NumericList1D(item interface{}, message string) ([]float64, error) {
	if message == "" {
		message = defaultListMessage
	}
	if f, ok := coerce(item); ok {
		return []float64{f}, nil
	}
	rv := reflect.ValueOf(item)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, common.TypeErrorf("%s", message)
	}
	res := make([]float64, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i).Interface()
		ev := reflect.ValueOf(elem)
		if ev.IsValid() && (ev.Kind() == reflect.Slice || ev.Kind() == reflect.Array) {
			return nil, common.ValueErrorf("%s", message)
		}
		f, ok := coerce(elem)
		if !ok {
			return nil, common.TypeErrorf("%s", message)
		}
		res = append(res, f)
	}
	return res, nil
}

// TwoItem normalizes a per-axis parameter to an (x, y) pair. A one element
// slice is duplicated onto both axes, a two element slice is used as is.
func TwoItem(vals []float64) ([2]float64, error) {
	switch len(vals) {
	case 1:
		return [2]float64{vals[0], vals[0]}, nil
	case 2:
		return [2]float64{vals[0], vals[1]}, nil
	}
	return [2]float64{}, common.ValueErrorf("An iterable must have length two.")
}

// IsFinite reports whether v is a usable real number.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FiniteSlice fails with common.ErrorInvalidValue if any element of data is
// NaN or infinite.
func FiniteSlice(data []float64, message string) error {
	for _, v := range data {
		if !IsFinite(v) {
			return common.ValueErrorf("%s", message)
		}
	}
	return nil
}
