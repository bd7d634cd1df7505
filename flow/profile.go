package flow

import (
	"math"
)

// Profile is the ambient streamwise wind speed as a function of height,
// following the power law u(z) = Speed (z / RefHeight)^Exponent.
type Profile struct {
	Speed, Exponent, RefHeight float64
}

// At returns the ambient wind speed at height z. Heights at or below the
// ground have zero speed unless the profile is uniform.
func (p Profile) At(z float64) float64 {
	if p.Exponent == 0 {
		return p.Speed
	} else if z <= 0 || p.RefHeight <= 0 {
		return 0
	}
	return p.Speed * math.Pow(z/p.RefHeight, p.Exponent)
}
