// Package levels inverts enclosed-mass percentages into density contour
// levels. Given the cell values of a density grid and a percentage p, it
// finds the density threshold whose super-level set holds fraction p of
// the total mass, the standard way "50% contour" lines are drawn.
package levels

import (
	"fmt"
	"sort"

	"github.com/contourkit/contourkit/common"
	"github.com/contourkit/contourkit/utils"
	"github.com/contourkit/contourkit/validate"
	"gonum.org/v1/gonum/floats"
)

// WarningKind classifies the advisories PercentileLevels can attach to a
// result.
type WarningKind int

const (
	// WarnPoorlyConstrained means the requested percentage fell between two
	// widely separated mass fractions, so the returned level is uncertain.
	WarnPoorlyConstrained WarningKind = iota
	// WarnDuplicateLevel means several distinct percentages resolved to the
	// same density level.
	WarnDuplicateLevel
)

// Warning is a non-fatal advisory about a computed level.
type Warning struct {
	Kind        WarningKind
	Message     string
	Percentages []float64
	Level       float64
}

// UniqueTotalSorted returns the distinct values of data in ascending order
// together with the total mass carried at each value, i.e. value times its
// multiplicity. Grouping is by exact equality.
func UniqueTotalSorted(data []float64) ([]float64, []float64, error) {
	if len(data) == 0 {
		return nil, nil, common.ValueErrorf("Empty density array not allowed")
	}
	if err := validate.FiniteSlice(data, "data must contain only finite values"); err != nil {
		return nil, nil, err
	}
	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)

	var values, totals []float64
	for i := 0; i < len(sorted); {
		j := i
		for j < len(sorted) && sorted[j] == sorted[i] {
			j++
		}
		values = append(values, sorted[i])
		totals = append(totals, sorted[i]*float64(j-i))
		i = j
	}
	return values, totals, nil
}

// massCurve holds densities from highest to lowest with the cumulative
// fraction of total mass held at or above each one.
type massCurve struct {
	density []float64
	cum     []float64
}

func buildMassCurve(densities []float64) (*massCurve, error) {
	values, totals, err := UniqueTotalSorted(densities)
	if err != nil {
		return nil, err
	}
	total := floats.Sum(totals)
	if total <= 0 {
		return nil, common.ValueErrorf("Density must have some mass to contour.")
	}
	n := len(values)
	curve := &massCurve{
		density: make([]float64, n),
		cum:     make([]float64, n),
	}
	running := 0.0
	for i := 0; i < n; i++ {
		curve.density[i] = values[n-1-i]
		running += totals[n-1-i]
		curve.cum[i] = running / total
	}
	return curve, nil
}

// levelFor inverts a single percentage against the curve. The returned
// level always sits strictly between two adjacent density values (or just
// below the lowest one), so contour routines never pass exactly through a
// plateau of cells.
func (c *massCurve) levelFor(p float64) (float64, *Warning) {
	n := len(c.density)
	switch p {
	case 0:
		return 1.02 * c.density[0], nil
	case 1:
		return 0.98 * c.density[n-1], nil
	}

	i := 0
	for i < n-1 && c.cum[i] < p && !utils.IsClose(c.cum[i], p) {
		i++
	}

	level := 0.99 * c.density[i]
	if i < n-1 {
		level = (c.density[i] + c.density[i+1]) / 2
	}

	var warn *Warning
	if !utils.IsClose(c.cum[i], p) {
		gap := c.cum[i]
		if i > 0 {
			gap = c.cum[i] - c.cum[i-1]
		}
		if i == 0 || gap > 0.01 {
			warn = &Warning{
				Kind:        WarnPoorlyConstrained,
				Percentages: []float64{p},
				Level:       level,
				Message: fmt.Sprintf(
					"The percentile %g is not well constrained by the data. "+
						"Consider adding more data points.", p),
			}
		}
	}
	return level, warn
}

// PercentileLevels converts enclosed-mass percentages into density levels.
// The returned levels are sorted ascending regardless of the order of
// percentages. Warnings flag percentages the data cannot pin down and
// levels shared by several percentages; neither is an error.
func PercentileLevels(densities, percentages []float64) ([]float64, []Warning, error) {
	for _, d := range densities {
		if !validate.IsFinite(d) || d < 0 {
			return nil, nil, common.ValueErrorf("Density must be non-negative.")
		}
	}
	for _, p := range percentages {
		if !validate.IsFinite(p) || p < 0 || p > 1 {
			return nil, nil, common.ValueErrorf("Percentages must be between 0 and 1.")
		}
	}
	curve, err := buildMassCurve(densities)
	if err != nil {
		return nil, nil, err
	}

	result := make([]float64, len(percentages))
	var warnings []Warning
	for i, p := range percentages {
		level, warn := curve.levelFor(p)
		result[i] = level
		if warn != nil {
			warnings = append(warnings, *warn)
		}
	}

	warnings = append(warnings, duplicateWarnings(percentages, result)...)
	sort.Float64s(result)
	return result, warnings, nil
}

// duplicateWarnings emits one warning per level that more than one
// distinct percentage mapped onto.
func duplicateWarnings(percentages, lvls []float64) []Warning {
	var warnings []Warning
	seen := make(map[float64]bool)
	for _, level := range lvls {
		if seen[level] {
			continue
		}
		var ps []float64
		for j, other := range lvls {
			if other == level {
				ps = append(ps, percentages[j])
			}
		}
		if len(ps) > 1 && !utils.AllEqual(ps) {
			warnings = append(warnings, Warning{
				Kind:        WarnDuplicateLevel,
				Percentages: ps,
				Level:       level,
				Message: fmt.Sprintf(
					"The percentiles %v share the density level %g. "+
						"Consider using fewer contour levels.", ps, level),
			})
		}
		seen[level] = true
	}
	return warnings
}

// PercentileLevel is the scalar form of PercentileLevels.
func PercentileLevel(densities []float64, percentage float64) (float64, []Warning, error) {
	lvls, warnings, err := PercentileLevels(densities, []float64{percentage})
	if err != nil {
		return 0, nil, err
	}
	return lvls[0], warnings, nil
}
