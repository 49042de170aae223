package common

import (
	"errors"
	"fmt"
)

var (
	// ErrorInvalidValue marks inputs that are numerically well formed but
	// semantically invalid (negative bin size, out of range percentage, ...).
	ErrorInvalidValue = errors.New("invalid value")

	// ErrorInvalidType marks inputs that cannot be coerced to the expected
	// numeric shape at all.
	ErrorInvalidType = errors.New("invalid type")
)

func ValueErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrorInvalidValue, fmt.Sprintf(format, args...))
}

func TypeErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrorInvalidType, fmt.Sprintf(format, args...))
}
