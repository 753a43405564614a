package wheel

import (
	"errors"
	"fmt"
)

// Configuration errors.
var (
	// ErrNonPositiveRadius indicates a radius of zero or less.
	ErrNonPositiveRadius = errors.New("wheel: radius must be positive")

	// ErrNonPositiveInertia indicates a rotational inertia of zero or less.
	ErrNonPositiveInertia = errors.New("wheel: rotational inertia must be positive")

	// ErrNonPositiveTravel indicates a suspension travel of zero or less.
	ErrNonPositiveTravel = errors.New("wheel: suspension travel must be positive")

	// ErrNegativeRate indicates a negative spring, damper or grip rate.
	ErrNegativeRate = errors.New("wheel: rate must be non-negative")

	// ErrNonFinite indicates a NaN or infinite tunable.
	ErrNonFinite = errors.New("wheel: value must be finite")

	// ErrNonUnitScale indicates wheel geometry that is not at unit scale.
	ErrNonUnitScale = errors.New("wheel: transform scale must be (1,1,1)")
)

// ConfigurationError reports one invalid static parameter of a named wheel.
type ConfigurationError struct {
	Wheel string
	Field string
	Value float64
	Err   error
}

func (e *ConfigurationError) Error() string {
	name := e.Wheel
	if name == "" {
		name = "<unnamed>"
	}
	return fmt.Sprintf("wheel %s: %s=%g: %v", name, e.Field, e.Value, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
