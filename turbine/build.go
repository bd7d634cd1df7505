package turbine

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/gowake/math/interpolate"
)

// Table is a raw power/thrust table. It is implemented only by
// CoefficientTable and AbsoluteTable.
type Table interface {
	speeds() []float64
	normalize(name string, p *Params) (*Curve, error)
}

var (
	_ Table = &CoefficientTable{}
	_ Table = &AbsoluteTable{}
)

// CoefficientTable is the legacy representation: dimensionless power and
// thrust coefficients indexed by wind speed.
type CoefficientTable struct {
	WindSpeed, PowerCoefficient, ThrustCoefficient []float64
}

// AbsoluteTable gives power in kW and either absolute thrust in kN or thrust
// coefficients. Exactly one of Thrust and ThrustCoefficient must be set.
type AbsoluteTable struct {
	WindSpeed, Power []float64
	Thrust, ThrustCoefficient []float64
}

// Params holds everything besides the table that is needed to build a
// Turbine. GeneratorEfficiency is only read for CoefficientTables, where it
// is required.
type Params struct {
	RotorDiameter, HubHeight float64
	TSR                      float64

	RefAirDensity, RefTilt float64

	CosineLossExponentYaw, CosineLossExponentTilt float64

	GeneratorEfficiency float64

	// SmoothTolerance overrides DefaultSmoothTolerance when positive.
	SmoothTolerance float64
}

// Build normalizes a raw table into a Turbine with an absolute power curve
// (kW) and a thrust coefficient curve. A power curve that fails CheckSmooth
// is recorded in Turbine.Warnings and does not cause an error.
func Build(name string, table Table, p Params) (*Turbine, error) {
	if table == nil {
		return nil, &TableError{name, "no power/thrust table given"}
	}
	if p.RotorDiameter <= 0 {
		return nil, &MissingParameterError{name, "rotor_diameter"}
	} else if !(p.HubHeight > 0) {
		return nil, &MissingParameterError{name, "hub_height"}
	} else if p.RefAirDensity <= 0 {
		return nil, &MissingParameterError{name, "ref_air_density"}
	}
	if err := checkSpeeds(name, table.speeds()); err != nil {
		return nil, err
	}

	curve, err := table.normalize(name, &p)
	if err != nil {
		return nil, err
	}

	t := &Turbine{
		Name:                   name,
		RotorDiameter:          p.RotorDiameter,
		HubHeight:              p.HubHeight,
		TSR:                    p.TSR,
		RefAirDensity:          p.RefAirDensity,
		RefTilt:                p.RefTilt,
		CosineLossExponentYaw:  p.CosineLossExponentYaw,
		CosineLossExponentTilt: p.CosineLossExponentTilt,
		Curve:                  *curve,
	}
	t.power = interpolate.NewLinear(curve.WindSpeed, curve.Power)
	t.thrust = interpolate.NewLinear(curve.WindSpeed, curve.ThrustCoefficient)

	tol := p.SmoothTolerance
	if tol <= 0 {
		tol = DefaultSmoothTolerance
	}
	if !CheckSmoothTol(curve.Power, tol) {
		t.Warnings = append(t.Warnings, &NonSmoothCurveWarning{name, tol})
	}

	return t, nil
}

func (tab *CoefficientTable) speeds() []float64 { return tab.WindSpeed }

func (tab *CoefficientTable) normalize(name string, p *Params) (*Curve, error) {
	n := len(tab.WindSpeed)
	if len(tab.PowerCoefficient) != n || len(tab.ThrustCoefficient) != n {
		return nil, &TableError{name, fmt.Sprintf(
			"len(wind_speed) = %d, but len(power_coefficient) = %d and "+
				"len(thrust_coefficient) = %d",
			n, len(tab.PowerCoefficient), len(tab.ThrustCoefficient),
		)}
	}
	if p.GeneratorEfficiency <= 0 {
		return nil, &MissingParameterError{name, "generator_efficiency"}
	}

	c := newCurve(tab.WindSpeed)
	for i, v := range tab.WindSpeed {
		c.Power[i] = PowerFromCoefficient(
			tab.PowerCoefficient[i], v,
			p.RefAirDensity, p.GeneratorEfficiency, p.RotorDiameter,
		)
	}
	copy(c.ThrustCoefficient, tab.ThrustCoefficient)
	return c, nil
}

func (tab *AbsoluteTable) speeds() []float64 { return tab.WindSpeed }

func (tab *AbsoluteTable) normalize(name string, p *Params) (*Curve, error) {
	n := len(tab.WindSpeed)
	if len(tab.Power) != n {
		return nil, &TableError{name, fmt.Sprintf(
			"len(wind_speed) = %d, but len(power) = %d", n, len(tab.Power),
		)}
	}

	hasThrust, hasCt := tab.Thrust != nil, tab.ThrustCoefficient != nil
	switch {
	case hasThrust && hasCt:
		return nil, &TableError{name,
			"both thrust and thrust_coefficient given; they are exclusive"}
	case !hasThrust && !hasCt:
		return nil, &MissingParameterError{name, "thrust"}
	case hasThrust && len(tab.Thrust) != n:
		return nil, &TableError{name, fmt.Sprintf(
			"len(wind_speed) = %d, but len(thrust) = %d", n, len(tab.Thrust),
		)}
	case hasCt && len(tab.ThrustCoefficient) != n:
		return nil, &TableError{name, fmt.Sprintf(
			"len(wind_speed) = %d, but len(thrust_coefficient) = %d",
			n, len(tab.ThrustCoefficient),
		)}
	}

	c := newCurve(tab.WindSpeed)
	copy(c.Power, tab.Power)
	if hasCt {
		copy(c.ThrustCoefficient, tab.ThrustCoefficient)
	} else {
		for i, v := range tab.WindSpeed {
			c.ThrustCoefficient[i] = ThrustCoefficientFromThrust(
				tab.Thrust[i], v, p.RefAirDensity, p.RotorDiameter,
			)
		}
	}
	return c, nil
}

func newCurve(ws []float64) *Curve {
	c := &Curve{
		WindSpeed:         make([]float64, len(ws)),
		Power:             make([]float64, len(ws)),
		ThrustCoefficient: make([]float64, len(ws)),
	}
	copy(c.WindSpeed, ws)
	return c
}

func checkSpeeds(name string, ws []float64) error {
	if len(ws) == 0 {
		return &TableError{name, "wind_speed is empty"}
	}
	for i, v := range ws {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return &TableError{name, fmt.Sprintf(
				"wind_speed[%d] = %g is not a valid speed", i, v,
			)}
		}
		if i > 0 && v <= ws[i-1] {
			return &TableError{name, fmt.Sprintf(
				"wind_speed must be strictly increasing, but "+
					"wind_speed[%d] = %g follows %g", i, v, ws[i-1],
			)}
		}
	}
	return nil
}
