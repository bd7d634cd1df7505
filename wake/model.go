/*package wake implements the velocity deficit models that describe a single
turbine's wake, the rules used to combine overlapping wakes, and the
wake-added turbulence model.

All positions are in the wind frame: x is streamwise, y is crosswise and z is
height. Deficits are fractions of the ambient velocity in [0, 1].
*/
package wake

import (
	"fmt"

	"github.com/phil-mansfield/gowake/geom"
)

// Source describes the rotor that casts a wake.
type Source struct {
	// Position is the rotor hub in the wind frame.
	Position geom.Vec

	Diameter, Ct, AxialInduction float64
	// Yaw is the misalignment between rotor and flow, in degrees.
	Yaw float64
	// TI is the turbulence intensity incident on the rotor.
	TI float64
}

// Model computes the fractional velocity deficit that a Source induces at a
// point. Points that are not strictly downstream of the rotor get zero.
// Implementations are stateless and safe for concurrent use.
type Model interface {
	Deficit(p geom.Vec, s *Source) float64
	Name() string
}

// Kind names one of the available deficit models.
type Kind string

const (
	None   Kind = "None"
	Jensen Kind = "Jensen"
	Gauss  Kind = "Gauss"
)

var (
	_ Model = NoWake{}
	_ Model = &JensenModel{}
	_ Model = &GaussModel{}
)

// NewModel is a factory returning the deficit model of the given kind with its
// default parameters.
func NewModel(kind Kind) (Model, error) {
	switch kind {
	case None:
		return NoWake{}, nil
	case Jensen:
		return DefaultJensen(), nil
	case Gauss:
		return DefaultGauss(), nil
	default:
		return nil, fmt.Errorf("unsupported wake model: '%s'", kind)
	}
}

// NoWake is the model with zero deficit everywhere. It is useful as a
// baseline for computing wake losses.
type NoWake struct{}

func (NoWake) Deficit(p geom.Vec, s *Source) float64 { return 0 }
func (NoWake) Name() string { return string(None) }
