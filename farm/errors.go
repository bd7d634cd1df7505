package farm

import (
	"errors"
	"fmt"
)

// ErrConfiguration is matched by every ConfigurationError.
var ErrConfiguration = errors.New("invalid farm configuration")

// ConfigurationError reports a structurally invalid farm or ambient
// condition. It is returned before any solve work begins.
type ConfigurationError struct {
	Reason string
}

// Configurationf returns a ConfigurationError with a formatted reason.
func Configurationf(format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{fmt.Sprintf(format, args...)}
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}
