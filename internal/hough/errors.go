package hough

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is the sentinel wrapped by every ConfigError.
//
// Callers that only care about the category can test with
// errors.Is(err, hough.ErrInvalidConfig).
var ErrInvalidConfig = errors.New("invalid hough configuration")

// ConfigError reports a configuration value rejected before any voting begins.
type ConfigError struct {
	// Field is the name of the offending setting (e.g. "rho_resolution").
	Field string

	// Value is the rejected value.
	Value float64

	// Reason describes the constraint that was violated.
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s %v %s", ErrInvalidConfig, e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

func configError(field string, value float64, reason string) error {
	return &ConfigError{Field: field, Value: value, Reason: reason}
}
