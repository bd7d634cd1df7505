package wake

import (
	"math"

	"github.com/phil-mansfield/gowake/geom"
)

// GaussModel is the self-similar Gaussian wake of Bastankhah and Porté-Agel
// (2014, 2016). The wake width grows linearly at a rate set by the turbulence
// intensity incident on the rotor.
type GaussModel struct {
	// The wake growth rate is Ka * TI + Kb.
	Ka, Kb     float64
	Deflection Jimenez
}

// DefaultGauss returns the model with Ka = 0.38 and Kb = 0.004.
func DefaultGauss() *GaussModel {
	return &GaussModel{Ka: 0.38, Kb: 0.004, Deflection: DefaultJimenez()}
}

func (m *GaussModel) Name() string { return string(Gauss) }

// Deficit returns C exp(-dy^2/(2 sy^2) - dz^2/(2 sz^2)), where the wake widths
// sy and sz and the center deficit C follow from the source's thrust
// coefficient, yaw and turbulence intensity.
func (m *GaussModel) Deficit(p geom.Vec, s *Source) float64 {
	dx := p[0] - s.Position[0]
	if dx <= 0 || s.Ct <= 0 {
		return 0
	}

	ct := math.Min(s.Ct, maxCt)
	d := s.Diameter
	cy := math.Cos(s.Yaw * math.Pi / 180)

	sq := math.Sqrt(1 - ct)
	beta := 0.5 * (1 + sq) / sq
	eps := 0.2 * math.Sqrt(beta)
	kStar := m.Ka*s.TI + m.Kb

	sz := (kStar*dx/d + eps) * d
	sy := (kStar*dx/d + eps*cy) * d

	// Capped at the fully expanded actuator disc deficit.
	arg := 1 - ct*cy*d*d/(8*sy*sz)
	c := math.Min(1-math.Sqrt(math.Max(arg, 0)), 1-sq)

	dy := p[1] - s.Position[1] - m.Deflection.Offset(dx, s)
	dz := p[2] - s.Position[2]
	r := dy*dy/(2*sy*sy) + dz*dz/(2*sz*sz)

	return c * math.Exp(-r)
}

// Thrust coefficients are clipped below 1 so that the near-wake terms stay
// finite.
const maxCt = 0.9999
