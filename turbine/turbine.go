/*package turbine normalizes power/thrust tables into a single canonical
turbine representation and evaluates its operating point under yaw and tilt
misalignment.
*/
package turbine

import (
	"math"

	"github.com/phil-mansfield/gowake/math/interpolate"
)

// Thrust coefficients are clipped to maxCt before computing axial induction.
const maxCt = 0.9999

// Curve is a canonical power curve: absolute power in kW and thrust
// coefficient, indexed by strictly increasing wind speed in m/s.
type Curve struct {
	WindSpeed, Power, ThrustCoefficient []float64
}

// Turbine is a normalized turbine definition. It is created by Build and must
// not be modified afterwards; its methods are safe for concurrent use.
type Turbine struct {
	Name string

	RotorDiameter, HubHeight, TSR float64
	RefAirDensity, RefTilt        float64

	CosineLossExponentYaw, CosineLossExponentTilt float64

	Curve Curve

	// Warnings holds non-fatal problems found while building, such as a
	// *NonSmoothCurveWarning.
	Warnings []error

	power, thrust *interpolate.Linear
}

// EffectiveVelocity applies the cosine-loss model to an incident wind speed.
// yaw and tilt are in degrees.
func (t *Turbine) EffectiveVelocity(v, yaw, tilt float64) float64 {
	cy := math.Max(cosd(yaw), 0)
	ct := math.Max(cosd(tilt-t.RefTilt), 0)
	return v * math.Pow(cy, t.CosineLossExponentYaw) *
		math.Pow(ct, t.CosineLossExponentTilt)
}

// Power returns the power in kW produced at incident wind speed v. Speeds
// below the first tabulated speed produce nothing, and speeds above the last
// hold the last tabulated value.
func (t *Turbine) Power(v, yaw, tilt float64) float64 {
	ve := t.EffectiveVelocity(v, yaw, tilt)
	if lo, _ := t.power.Range(); ve < lo {
		return 0
	}
	return t.power.Eval(ve)
}

// ThrustCoefficient returns the thrust coefficient at incident wind speed v,
// clamped to the tabulated end values outside the table.
func (t *Turbine) ThrustCoefficient(v, yaw, tilt float64) float64 {
	return t.thrust.Eval(t.EffectiveVelocity(v, yaw, tilt))
}

// AxialInduction returns the rotor's axial induction factor at incident wind
// speed v.
func (t *Turbine) AxialInduction(v, yaw, tilt float64) float64 {
	return AxialInduction(t.ThrustCoefficient(v, yaw, tilt), yaw)
}

// DensityCorrectedVelocity scales a wind speed so that the turbine's
// reference-density table gives the power produced at air density rho.
func (t *Turbine) DensityCorrectedVelocity(v, rho float64) float64 {
	if rho <= 0 || rho == t.RefAirDensity {
		return v
	}
	return v * math.Cbrt(rho/t.RefAirDensity)
}

// AxialInduction converts a thrust coefficient into an axial induction
// factor for a rotor yawed by yaw degrees.
func AxialInduction(ct, yaw float64) float64 {
	if ct <= 0 {
		return 0
	}
	ct = math.Min(ct, maxCt)
	c := cosd(yaw)
	if c < 1e-6 {
		return ct / 4
	}
	return 0.5 / c * (1 - math.Sqrt(1-ct*c))
}

func cosd(deg float64) float64 {
	return math.Cos(deg * math.Pi / 180)
}
