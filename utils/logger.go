package utils

import (
	"context"
	"runtime"

	"go.uber.org/zap"
)

const loggerName = "contourkit"

func init() {
	zap.ReplaceGlobals(zap.Must(zap.NewProduction()))
}

// GetLogger returns the library logger. The context is accepted so call
// sites can later carry a request-scoped logger without changing shape.
func GetLogger(ctx context.Context) *zap.Logger {
	return zap.L().Named(loggerName)
}

// GetPanicInfo captures the current goroutine's stack for recover logging.
func GetPanicInfo() string {
	buf := make([]byte, 16384)
	l := runtime.Stack(buf, false)
	return string(buf[:l])
}
