package farm

import (
	"fmt"
	"math"
)

// Condition is one ambient inflow state.
type Condition struct {
	// Speed is the wind speed in m/s at the farm's reference height.
	Speed float64
	// Direction is the meteorological direction the wind blows from, in
	// degrees clockwise from north.
	Direction float64
	// TurbulenceIntensity is the ambient turbulence intensity as a fraction.
	TurbulenceIntensity float64
	// Shear is the exponent of the vertical power-law profile.
	Shear float64
	// AirDensity in kg/m^3. Zero means each turbine's reference density.
	AirDensity float64
}

func (c Condition) String() string {
	return fmt.Sprintf("%.2f m/s from %.1f deg", c.Speed, c.Direction)
}

// Validate checks that the condition defines a usable ambient flow.
func (c *Condition) Validate() error {
	switch {
	case !finite(c.Speed) || c.Speed <= 0:
		return Configurationf("no ambient wind speed defined (speed = %g)", c.Speed)
	case !finite(c.Direction):
		return Configurationf("no ambient wind direction defined (direction = %g)",
			c.Direction)
	case !finite(c.TurbulenceIntensity) || c.TurbulenceIntensity < 0:
		return Configurationf("turbulence intensity %g is invalid",
			c.TurbulenceIntensity)
	case !finite(c.Shear):
		return Configurationf("shear exponent %g is invalid", c.Shear)
	case !finite(c.AirDensity) || c.AirDensity < 0:
		return Configurationf("air density %g is invalid", c.AirDensity)
	}
	return nil
}

// Conditions pairs wind speeds with directions. A list of length one is
// repeated to match the other. Any other length mismatch is a
// ConfigurationError.
func Conditions(
	speeds, directions []float64, ti, shear, rho float64,
) ([]Condition, error) {
	n := len(speeds)
	if len(directions) > n {
		n = len(directions)
	}
	if len(speeds) == 0 || len(directions) == 0 {
		return nil, Configurationf(
			"%d wind speeds and %d wind directions given; both are required",
			len(speeds), len(directions),
		)
	}
	if (len(speeds) != n && len(speeds) != 1) ||
		(len(directions) != n && len(directions) != 1) {
		return nil, Configurationf(
			"%d wind speeds cannot be paired with %d wind directions",
			len(speeds), len(directions),
		)
	}

	out := make([]Condition, n)
	for i := range out {
		out[i] = Condition{
			Speed:               speeds[min(i, len(speeds)-1)],
			Direction:           directions[min(i, len(directions)-1)],
			TurbulenceIntensity: ti,
			Shear:               shear,
			AirDensity:          rho,
		}
		if err := out[i].Validate(); err != nil {
			return nil, fmt.Errorf("condition %d: %w", i, err)
		}
	}
	return out, nil
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
