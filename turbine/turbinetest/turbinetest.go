/*package turbinetest provides a synthetic 5 MW-class turbine for tests.

The curve is not any manufacturer's data: the power coefficient is constant up
to rated speed and then falls off so that power is exactly rated, and the
thrust coefficient falls off as (rated/v)^2.
*/
package turbinetest

import (
	"math"

	"github.com/phil-mansfield/gowake/turbine"
)

const (
	Diameter   = 126.0
	HubHeight  = 90.0
	Density    = 1.225
	Efficiency = 0.944
	RatedSpeed = 11.0
	CutIn      = 3.0
	CutOut     = 25.0

	regionTwoCp = 0.45
	regionTwoCt = 0.8
)

// Params returns the build parameters of the synthetic turbine.
func Params() turbine.Params {
	return turbine.Params{
		RotorDiameter:          Diameter,
		HubHeight:              HubHeight,
		TSR:                    8,
		RefAirDensity:          Density,
		RefTilt:                5,
		CosineLossExponentYaw:  1.88,
		CosineLossExponentTilt: 1.88,
		GeneratorEfficiency:    Efficiency,
	}
}

// CoefficientTable returns the legacy Cp/Ct table of the synthetic turbine,
// sampled every 1 m/s from cut-in to cut-out.
func CoefficientTable() *turbine.CoefficientTable {
	tab := &turbine.CoefficientTable{}
	for v := CutIn; v <= CutOut; v++ {
		cp, ct := regionTwoCp, regionTwoCt
		if v > RatedSpeed {
			r := RatedSpeed / v
			cp *= r * r * r
			ct *= r * r
		}
		tab.WindSpeed = append(tab.WindSpeed, v)
		tab.PowerCoefficient = append(tab.PowerCoefficient, cp)
		tab.ThrustCoefficient = append(tab.ThrustCoefficient, ct)
	}
	return tab
}

// RatedPower returns the rated power of the synthetic turbine in kW.
func RatedPower() float64 {
	return turbine.PowerFromCoefficient(
		regionTwoCp, RatedSpeed, Density, Efficiency, Diameter,
	)
}

// New builds the synthetic turbine. It panics if the build fails, which would
// be a bug in this package.
func New() *turbine.Turbine {
	t, err := turbine.Build("test_5MW", CoefficientTable(), Params())
	if err != nil {
		panic(err.Error())
	}
	if math.IsNaN(t.Power(RatedSpeed, 0, 5)) {
		panic("synthetic turbine produced NaN power")
	}
	return t
}
