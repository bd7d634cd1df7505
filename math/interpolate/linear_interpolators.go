/*package interpolate contains one-dimensional table interpolators used for
turbine power and thrust curves.
*/
package interpolate

import (
	"fmt"
	"sort"
)

///////////////////////////
// Linear Implementation //
///////////////////////////

// Linear is a piecewise linear interpolator over a strictly increasing
// sequence of points. Lookups outside the tabulated range are clamped to the
// end values.
type Linear struct {
	xs, vals []float64
}

// NewLinear creates a linear interpolator for a sequence of strictly
// increasing points, xs, which take on the values given by vals.
//
// xs and vals are copied. NewLinear panics if the lengths differ, if fewer
// than one point is given, or if xs is not strictly increasing.
func NewLinear(xs, vals []float64) *Linear {
	if len(xs) != len(vals) {
		panic(fmt.Sprintf(
			"len(xs) = %d, but len(vals) = %d", len(xs), len(vals),
		))
	} else if len(xs) == 0 {
		panic("Table given to NewLinear() is empty.")
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			panic(fmt.Sprintf(
				"Table given to NewLinear() not strictly increasing at "+
					"index %d: %g <= %g.", i, xs[i], xs[i-1],
			))
		}
	}

	lin := &Linear{
		xs:   make([]float64, len(xs)),
		vals: make([]float64, len(vals)),
	}
	copy(lin.xs, xs)
	copy(lin.vals, vals)
	return lin
}

// Eval returns the interpolated value at x. Values of x below the first point
// return the first value and values above the last point return the last
// value.
func (lin *Linear) Eval(x float64) float64 {
	n := len(lin.xs)
	if x <= lin.xs[0] {
		return lin.vals[0]
	} else if x >= lin.xs[n-1] {
		return lin.vals[n-1]
	}

	// i2 is the first index with xs[i2] >= x, so xs[i2-1] < x <= xs[i2].
	i2 := sort.SearchFloat64s(lin.xs, x)
	i1 := i2 - 1
	x1, x2 := lin.xs[i1], lin.xs[i2]
	v1, v2 := lin.vals[i1], lin.vals[i2]

	return ((v2-v1)/(x2-x1))*(x-x1) + v1
}

// Range returns the first and last tabulated points.
func (lin *Linear) Range() (lo, hi float64) {
	return lin.xs[0], lin.xs[len(lin.xs)-1]
}
