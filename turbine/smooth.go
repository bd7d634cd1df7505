package turbine

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultSmoothTolerance is the power difference, in the curve's own units,
// below which two neighboring samples are considered flat.
const DefaultSmoothTolerance = 1e-3

// shutdownFraction marks a curve as having a shutdown region when its final
// sample drops below this fraction of the peak.
const shutdownFraction = 0.95

// CheckSmooth reports whether a power curve sampled at increasing wind speeds
// is free of wiggles, using DefaultSmoothTolerance.
func CheckSmooth(power []float64) bool {
	return CheckSmoothTol(power, DefaultSmoothTolerance)
}

// CheckSmoothTol reports whether a power curve is free of wiggles.
//
// Each first difference is reduced to a direction: +1, -1, or 0 when its
// magnitude is at or below tol. The magnitudes of the differences of those
// directions are summed. A physical curve rises and then flattens (one
// change), or additionally falls off in a shutdown region (two changes). Any
// more than that means the curve oscillates. Curves shorter than three
// samples are smooth.
func CheckSmoothTol(power []float64, tol float64) bool {
	if len(power) < 3 {
		return true
	}

	allowed := 1.0
	if power[len(power)-1] < shutdownFraction*floats.Max(power) {
		allowed = 2
	}

	changes := 0.0
	prev := direction(power[1]-power[0], tol)
	for i := 2; i < len(power); i++ {
		dir := direction(power[i]-power[i-1], tol)
		changes += math.Abs(dir - prev)
		prev = dir
	}

	return changes <= allowed
}

func direction(dp, tol float64) float64 {
	switch {
	case dp > tol:
		return 1
	case dp < -tol:
		return -1
	default:
		return 0
	}
}
