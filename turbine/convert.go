package turbine

import (
	"math"
)

// RotorArea returns the swept area of a rotor with diameter d.
func RotorArea(d float64) float64 {
	return math.Pi * d * d / 4
}

// PowerFromCoefficient converts a power coefficient at wind speed v into
// absolute power in kW.
func PowerFromCoefficient(cp, v, rho, eta, d float64) float64 {
	return 0.5 * rho * eta * RotorArea(d) * cp * v * v * v / 1000
}

// PowerCoefficientFromPower converts absolute power in kW at wind speed v back
// into a power coefficient. It returns 0 for v <= 0.
func PowerCoefficientFromPower(p, v, rho, eta, d float64) float64 {
	if v <= 0 {
		return 0
	}
	return p * 1000 / (0.5 * rho * eta * RotorArea(d) * v * v * v)
}

// ThrustFromCoefficient converts a thrust coefficient at wind speed v into
// absolute thrust in kN.
func ThrustFromCoefficient(ct, v, rho, d float64) float64 {
	return 0.5 * rho * RotorArea(d) * ct * v * v / 1000
}

// ThrustCoefficientFromThrust converts absolute thrust in kN at wind speed v
// into a thrust coefficient. It returns 0 for v <= 0.
func ThrustCoefficientFromThrust(t, v, rho, d float64) float64 {
	if v <= 0 {
		return 0
	}
	return t * 1000 / (0.5 * rho * RotorArea(d) * v * v)
}
