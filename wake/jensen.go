package wake

import (
	"math"

	"github.com/phil-mansfield/gowake/geom"
)

// JensenModel is the top-hat wake of Jensen (1983): a uniform deficit inside
// a cone that grows linearly with distance behind the rotor.
type JensenModel struct {
	// Expansion is the rate at which the wake radius grows per meter
	// downstream.
	Expansion  float64
	Deflection Jimenez
}

// DefaultJensen returns the model with a wake expansion of 0.05.
func DefaultJensen() *JensenModel {
	return &JensenModel{Expansion: 0.05, Deflection: DefaultJimenez()}
}

func (m *JensenModel) Name() string { return string(Jensen) }

// Deficit returns 2a (r0 / (r0 + k dx))^2 inside the wake and 0 outside of
// it.
func (m *JensenModel) Deficit(p geom.Vec, s *Source) float64 {
	dx := p[0] - s.Position[0]
	if dx <= 0 || s.AxialInduction <= 0 {
		return 0
	}

	r0 := s.Diameter / 2
	rw := r0 + m.Expansion*dx
	dy := p[1] - s.Position[1] - m.Deflection.Offset(dx, s)
	dz := p[2] - s.Position[2]
	if dy*dy+dz*dz > rw*rw {
		return 0
	}

	c := r0 / rw
	return math.Min(2*s.AxialInduction*c*c, 1)
}
