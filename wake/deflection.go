package wake

import (
	"math"
)

// Jimenez is the Jiménez (2010) model for the lateral deflection of a yawed
// rotor's wake centerline.
type Jimenez struct {
	// Kd is the wake expansion parameter used by the deflection integral.
	Kd float64
}

// DefaultJimenez returns the model with Kd = 0.05.
func DefaultJimenez() Jimenez { return Jimenez{Kd: 0.05} }

// Offset returns the crosswise offset of the wake center dx meters behind
// the rotor. Positive yaw deflects the wake towards positive y.
func (j Jimenez) Offset(dx float64, s *Source) float64 {
	if s.Yaw == 0 || dx <= 0 || s.Ct <= 0 {
		return 0
	}
	d := s.Diameter
	rad := s.Yaw * math.Pi / 180
	xi := math.Cos(rad) * math.Sin(rad) * s.Ct / 2

	base := 2*j.Kd*dx/d + 1
	b2 := base * base
	a := 15*b2*b2 + xi*xi
	b := (30 * j.Kd / d) * b2 * b2 * base
	c := xi * d * (15 + xi*xi)
	e := 30 * j.Kd

	return c/e - xi*a/b
}
