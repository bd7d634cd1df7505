package wake

import (
	"fmt"
	"math"
)

// Superposition merges the deficit already accumulated at a point with the
// deficit of one more wake. Every rule is commutative and associative over
// non-negative deficits, so the result does not depend on the order in which
// wakes are applied.
type Superposition interface {
	Combine(existing, new float64) float64
	Name() string
}

// SuperpositionKind names one of the available combination rules.
type SuperpositionKind string

const (
	LinearSum    SuperpositionKind = "Linear"
	SumOfSquares SuperpositionKind = "SumOfSquares"
	MaxDeficit   SuperpositionKind = "Max"
)

var (
	_ Superposition = Linear{}
	_ Superposition = RootSumSquare{}
	_ Superposition = Max{}
)

// NewSuperposition is a factory returning the rule of the given kind.
func NewSuperposition(kind SuperpositionKind) (Superposition, error) {
	switch kind {
	case LinearSum:
		return Linear{}, nil
	case SumOfSquares:
		return RootSumSquare{}, nil
	case MaxDeficit:
		return Max{}, nil
	default:
		return nil, fmt.Errorf("unsupported superposition rule: '%s'", kind)
	}
}

// Linear adds deficits, saturating at a full stop.
type Linear struct{}

func (Linear) Combine(existing, new float64) float64 {
	return math.Min(existing+new, 1)
}
func (Linear) Name() string { return string(LinearSum) }

// RootSumSquare adds deficits in quadrature.
type RootSumSquare struct{}

func (RootSumSquare) Combine(existing, new float64) float64 {
	return math.Min(math.Hypot(existing, new), 1)
}
func (RootSumSquare) Name() string { return string(SumOfSquares) }

// Max keeps the strongest single deficit.
type Max struct{}

func (Max) Combine(existing, new float64) float64 {
	return math.Max(existing, new)
}
func (Max) Name() string { return string(MaxDeficit) }
