package solver

import (
	"fmt"
)

// State is the stage a solve has reached. A solve moves through
// Unsolved -> Ordering -> Iterating and ends in Converged or
// MaxItersReached.
type State int

const (
	Unsolved State = iota
	Ordering
	Iterating
	Converged
	MaxItersReached
)

func (s State) String() string {
	switch s {
	case Unsolved:
		return "Unsolved"
	case Ordering:
		return "Ordering"
	case Iterating:
		return "Iterating"
	case Converged:
		return "Converged"
	case MaxItersReached:
		return "MaxItersReached"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Done returns true for the two terminal states.
func (s State) Done() bool { return s == Converged || s == MaxItersReached }
