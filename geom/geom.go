// Package geom provides the small amount of polygon geometry needed to
// work with closed contour lines: point-in-polygon tests, picking the
// outermost contours out of a nested set, and masking points against them.
package geom

// Point is a 2D point.
type Point struct {
	X, Y float64
}

// Contour is a closed polygon given as its vertices in order. The closing
// edge from the last vertex back to the first is implicit.
type Contour []Point

// Contains reports whether p lies inside the polygon, by ray casting
// against each edge. Points exactly on an edge may land on either side.
func (c Contour) Contains(p Point) bool {
	inside := false
	n := len(c)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := c[i], c[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// containsContour reports whether every vertex of other lies inside c.
// Contours from a density grid never cross, so vertex containment is
// enough to establish nesting.
func (c Contour) containsContour(other Contour) bool {
	for _, p := range other {
		if !c.Contains(p) {
			return false
		}
	}
	return true
}

// OuterContours filters contours down to the ones not enclosed by any
// other contour in the set. These are the boundaries of the region a
// contour level encloses; inner rings around local peaks are dropped.
func OuterContours(contours []Contour) []Contour {
	var outer []Contour
	for i, c := range contours {
		enclosed := false
		for j, o := range contours {
			if i == j {
				continue
			}
			if o.containsContour(c) {
				enclosed = true
				break
			}
		}
		if !enclosed {
			outer = append(outer, c)
		}
	}
	return outer
}

// InsideMask reports, for each (x, y) point, whether it falls inside any
// of the given contours. xs and ys must have the same length.
func InsideMask(contours []Contour, xs, ys []float64) []bool {
	mask := make([]bool, len(xs))
	for i := range xs {
		p := Point{X: xs[i], Y: ys[i]}
		for _, c := range contours {
			if c.Contains(p) {
				mask[i] = true
				break
			}
		}
	}
	return mask
}
