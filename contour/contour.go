// Package contour ties the pipeline together: it bins a 2D point cloud
// into a density grid, smooths it, and converts enclosed-mass percentages
// into the density levels a contour renderer draws.
package contour

import (
	"context"
	"math"

	"github.com/contourkit/contourkit/binning"
	"github.com/contourkit/contourkit/common"
	"github.com/contourkit/contourkit/density"
	"github.com/contourkit/contourkit/levels"
	"github.com/contourkit/contourkit/model"
	"github.com/contourkit/contourkit/utils"
	"github.com/contourkit/contourkit/validate"
	"go.uber.org/zap"
)

// DefaultPercentLevels are the enclosed-mass fractions contoured when the
// caller does not pick their own.
var DefaultPercentLevels = []float64{0.25, 0.5, 0.75, 0.95}

// Config configures Levels. All fields are optional. BinSize and Smoothing
// take a single value for both axes or an (x, y) pair; PercentLevels
// defaults to DefaultPercentLevels; Weights must match the data length.
type Config struct {
	BinSize       []float64
	PercentLevels []float64
	Smoothing     []float64
	Weights       []float64
	LogX          bool
	LogY          bool
}

// Result is the full output of Levels: the density grid, the bin centers
// the grid should be plotted against, and the contour levels with the
// percentages they correspond to.
type Result struct {
	Hist        *model.Hist2D
	XCenters    []float64
	YCenters    []float64
	Levels      []float64
	Percentages []float64
	Warnings    []levels.Warning
}

// Levels runs the whole contour pipeline on the (x, y) points. Padding is
// derived automatically: five smoothing lengths when smoothing is on, two
// automatic bin widths otherwise. A zero-percent level is always prepended
// so the outermost contour encloses all of the mass. Advisory warnings
// from the level inversion are logged and returned; duplicate final levels
// are an error since contour renderers require increasing levels.
func Levels(ctx context.Context, xs, ys []float64, cfg Config) (*Result, error) {
	logger := utils.GetLogger(ctx)

	defer func() {
		if err := recover(); err != nil {
			logger.Error("contour Levels recover panic error!", zap.Any("err", err),
				zap.String("panic info", utils.GetPanicInfo()),
				zap.Int("points", len(xs)))
		}
	}()

	smoothOn := false
	for _, s := range cfg.Smoothing {
		if s > 0 {
			smoothOn = true
		}
	}

	// A single repeated point has no spread to bin; only smoothing can
	// turn it into a density.
	if len(xs) > 0 && utils.AllEqual(xs) && utils.AllEqual(ys) && !smoothOn {
		logger.Error("all points are identical and no smoothing is set",
			zap.Int("points", len(xs)))
		return nil, common.ValueErrorf(
			"All points are identical. Set smoothing to turn them into a density.")
	}

	padding, err := autoPadding(xs, ys, cfg)
	if err != nil {
		logger.Error("autoPadding failed", zap.Error(err))
		return nil, err
	}

	hist, err := density.SmartHist2D(xs, ys, density.Options{
		BinSize:   cfg.BinSize,
		Padding:   padding,
		Smoothing: cfg.Smoothing,
		Weights:   cfg.Weights,
		LogX:      cfg.LogX,
		LogY:      cfg.LogY,
	})
	if err != nil {
		logger.Error("SmartHist2D failed", zap.Error(err))
		return nil, err
	}

	xCenters, err := binning.BinCenters(hist.XEdges)
	if err != nil {
		return nil, err
	}
	yCenters, err := binning.BinCenters(hist.YEdges)
	if err != nil {
		return nil, err
	}

	percents := cfg.PercentLevels
	if percents == nil {
		percents = DefaultPercentLevels
	}
	// The zero level caps the level list from above so every cell with
	// mass ends up inside some contour.
	percents = append([]float64{0}, percents...)

	lvls, warnings, err := levels.PercentileLevels(hist.Flatten(), percents)
	if err != nil {
		logger.Error("PercentileLevels failed", zap.Error(err))
		return nil, err
	}
	for _, w := range warnings {
		logger.Warn("percentile level advisory", zap.String("detail", w.Message),
			zap.Float64s("percentages", w.Percentages))
	}

	for i := 1; i < len(lvls); i++ {
		if lvls[i] == lvls[i-1] {
			logger.Error("duplicate contour levels", zap.Float64s("levels", lvls))
			return nil, common.ValueErrorf(
				"The percent levels chosen lead to duplicate levels.\n" +
					"Contour levels must be increasing - try fewer percent levels.")
		}
	}

	return &Result{
		Hist:        hist,
		XCenters:    xCenters,
		YCenters:    yCenters,
		Levels:      lvls,
		Percentages: percents,
		Warnings:    warnings,
	}, nil
}

// autoPadding picks the histogram padding: room for the smoothing kernel
// to decay when smoothing is set, otherwise two automatic bin widths per
// axis. Data too degenerate for the automatic width gets no padding.
func autoPadding(xs, ys []float64, cfg Config) ([]float64, error) {
	smoothOn := false
	for _, s := range cfg.Smoothing {
		if s > 0 {
			smoothOn = true
		}
	}
	if smoothOn {
		pair, err := density.PaddingFromSmoothing(cfg.Smoothing)
		if err != nil {
			return nil, err
		}
		return []float64{pair[0], pair[1]}, nil
	}

	padding := make([]float64, 2)
	for axis, data := range [][]float64{xs, ys} {
		vals := data
		if (axis == 0 && cfg.LogX) || (axis == 1 && cfg.LogY) {
			var err error
			vals, err = logValues(data)
			if err != nil {
				return nil, err
			}
		}
		w, err := binning.RoundedBinWidth(vals)
		if err != nil {
			padding[axis] = 0
			continue
		}
		padding[axis] = 2 * w
	}
	return padding, nil
}

func logValues(data []float64) ([]float64, error) {
	res := make([]float64, len(data))
	for i, v := range data {
		if v <= 0 {
			return nil, common.ValueErrorf("All data must be positive for a log axis.")
		}
		if !validate.IsFinite(v) {
			return nil, common.ValueErrorf("data must contain only finite values")
		}
		res[i] = math.Log10(v)
	}
	return res, nil
}
