package particle

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is matched by every *ConfigError.
	ErrInvalidConfig = errors.New("particle: invalid configuration")

	// ErrCapacityExceeded is reported when the active buffer rejects a particle.
	ErrCapacityExceeded = errors.New("particle: capacity exceeded")

	// ErrPoolConstruction wraps failures of a Pool factory.
	ErrPoolConstruction = errors.New("particle: pool construction failed")

	// ErrReentrant is returned when Update or Draw is called while a frame is in flight.
	ErrReentrant = errors.New("particle: reentrant call")
)

// ConfigError describes a rejected configuration value.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("particle: invalid %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

func configErr(field, format string, args ...any) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
