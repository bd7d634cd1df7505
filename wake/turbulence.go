package wake

import (
	"fmt"
	"math"
)

// TurbulenceModel gives the turbulence intensity that a wake adds dx meters
// behind a rotor of diameter d with axial induction a, in ambient turbulence
// intensity ti0.
type TurbulenceModel interface {
	Added(dx, d, a, ti0 float64) float64
	Name() string
}

// TurbulenceKind names one of the available wake-added turbulence models.
type TurbulenceKind string

const (
	NoTurbulence              TurbulenceKind = "None"
	CrespoHernandezTurbulence TurbulenceKind = "CrespoHernandez"
)

// NewTurbulence is a factory returning the model of the given kind. It
// returns a nil model for NoTurbulence, which disables turbulence feedback.
func NewTurbulence(kind TurbulenceKind) (TurbulenceModel, error) {
	switch kind {
	case NoTurbulence, "":
		return nil, nil
	case CrespoHernandezTurbulence:
		return DefaultCrespoHernandez(), nil
	default:
		return nil, fmt.Errorf("unsupported turbulence model: '%s'", kind)
	}
}

// CrespoHernandez is the empirical wake-added turbulence of Crespo and
// Hernández (1996):
//
//	TI+ = Constant a^AI ti0^Initial (dx/d)^Downstream
type CrespoHernandez struct {
	Constant, AI, Initial, Downstream float64
}

// DefaultCrespoHernandez returns the model with its published coefficients.
func DefaultCrespoHernandez() *CrespoHernandez {
	return &CrespoHernandez{
		Constant: 0.5, AI: 0.8, Initial: 0.1, Downstream: -0.32,
	}
}

func (m *CrespoHernandez) Name() string { return string(CrespoHernandezTurbulence) }

func (m *CrespoHernandez) Added(dx, d, a, ti0 float64) float64 {
	if dx <= 0 || a <= 0 || ti0 <= 0 {
		return 0
	}
	return m.Constant * math.Pow(a, m.AI) * math.Pow(ti0, m.Initial) *
		math.Pow(dx/d, m.Downstream)
}

// CombineTurbulence returns the turbulence intensity at a rotor given the
// ambient value and the overlap-weighted additions of each upstream wake.
// Only the strongest addition counts.
func CombineTurbulence(ti0 float64, added []float64) float64 {
	max := 0.0
	for _, ti := range added {
		max = math.Max(max, ti)
	}
	return math.Hypot(ti0, max)
}
