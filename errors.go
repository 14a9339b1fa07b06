package motion

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownPreset is returned when a preset name is not registered.
	ErrUnknownPreset = errors.New("unknown preset")
	// ErrInvalidDuration is returned for non-positive durations.
	ErrInvalidDuration = errors.New("duration must be positive")
	// ErrDegeneratePath is returned for a path with no usable length.
	ErrDegeneratePath = errors.New("degenerate path")
	// ErrDuplicatePreset is returned when a preset name is registered twice.
	ErrDuplicatePreset = errors.New("preset already registered")
	// ErrDuplicateName is returned when a Stage already holds a live animator
	// of the same kind under the requested name.
	ErrDuplicateName = errors.New("animator name already in use")
	// ErrInvalidConfig covers every other malformed setting.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ConfigError reports a malformed setting found at setup or registration.
// Use errors.Is against the sentinel errors to classify it.
type ConfigError struct {
	Field string
	Value any
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("motion: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("motion: %s=%v: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
