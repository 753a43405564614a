package sim

import (
	"errors"
	"fmt"
)

var (
	ErrWheelFault      = errors.New("sim: wheel faulted (non-finite state)")
	ErrInvalidDuration = errors.New("sim: duration must be positive")
	ErrNilDriver       = errors.New("sim: nil driver")
)

// SimulationError wraps an error with the tick it happened on.
type SimulationError struct {
	Step    int
	Time    float64
	Wheel   string
	Wrapped error
}

func (e *SimulationError) Error() string {
	if e.Wheel != "" {
		return fmt.Sprintf("step %d (t=%.4f) wheel %s: %v", e.Step, e.Time, e.Wheel, e.Wrapped)
	}
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
