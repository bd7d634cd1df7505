package solver

import (
	"fmt"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/phil-mansfield/gowake/wake"
)

// NumCores is the default number of goroutines used to stamp wakes and to
// solve batches of conditions.
var NumCores = runtime.NumCPU()

// Config selects the models used by a Solver and controls its iteration.
type Config struct {
	// Log receives progress at debug level and non-convergence at warn
	// level. A nil Log discards everything.
	Log *zerolog.Logger

	WakeModel     wake.Kind
	Superposition wake.SuperpositionKind
	Turbulence    wake.TurbulenceKind

	// RotorPoints is the number of samples along each axis of a rotor disc.
	RotorPoints int
	// MaxIterations caps the number of passes when turbulence feedback is
	// enabled.
	MaxIterations int
	// Tolerance is the largest change in any rotor velocity, in m/s, between
	// two passes for the solve to count as converged.
	Tolerance float64
	// Workers is the number of goroutines to use. Zero means NumCores.
	Workers int
}

// DefaultConfig returns a Gaussian wake with sum-of-squares superposition and
// no turbulence feedback.
func DefaultConfig() Config {
	return Config{
		WakeModel:     wake.Gauss,
		Superposition: wake.SumOfSquares,
		Turbulence:    wake.NoTurbulence,
		RotorPoints:   3,
		MaxIterations: 10,
		Tolerance:     1e-6,
	}
}

// CheckInit returns an error if the numeric fields of the Config are out of
// range.
func (c *Config) CheckInit() error {
	switch {
	case c.RotorPoints < 1:
		return fmt.Errorf("RotorPoints must be positive, got %d", c.RotorPoints)
	case c.MaxIterations < 1:
		return fmt.Errorf(
			"MaxIterations must be positive, got %d", c.MaxIterations,
		)
	case !(c.Tolerance > 0):
		return fmt.Errorf("Tolerance must be positive, got %g", c.Tolerance)
	case c.Workers < 0:
		return fmt.Errorf("Workers cannot be negative, got %d", c.Workers)
	}
	return nil
}

func (c *Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	if NumCores < 1 {
		return 1
	}
	return NumCores
}
