package turbine

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingParameter is matched by every MissingParameterError.
	ErrMissingParameter = errors.New("missing turbine parameter")
	// ErrInvalidTable is matched by every TableError.
	ErrInvalidTable = errors.New("invalid power/thrust table")
)

// MissingParameterError is returned by Build when an input needed to
// normalize a turbine's curve is absent. It is never silently defaulted.
type MissingParameterError struct {
	Turbine, Parameter string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf(
		"turbine '%s': parameter '%s' is required", e.Turbine, e.Parameter,
	)
}

func (e *MissingParameterError) Is(target error) bool {
	return target == ErrMissingParameter
}

// TableError reports a structurally invalid power/thrust table.
type TableError struct {
	Turbine, Reason string
}

func (e *TableError) Error() string {
	return fmt.Sprintf("turbine '%s': %s", e.Turbine, e.Reason)
}

func (e *TableError) Is(target error) bool {
	return target == ErrInvalidTable
}

// NonSmoothCurveWarning is attached to a Turbine whose absolute power curve
// fails CheckSmooth. It does not prevent solving.
type NonSmoothCurveWarning struct {
	Turbine   string
	Tolerance float64
}

func (w *NonSmoothCurveWarning) Error() string {
	return fmt.Sprintf(
		"turbine '%s': power curve is not smooth at tolerance %g",
		w.Turbine, w.Tolerance,
	)
}
