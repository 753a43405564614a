// Package driver produces per-tick vehicle inputs.
package driver

import (
	"sync"

	"github.com/san-kum/trackdrive/internal/vehicle"
)

// Driver computes the input for the next tick from the last snapshot.
type Driver interface {
	Command(s vehicle.Snapshot) vehicle.Input
}

// Constant holds one input forever.
type Constant struct {
	Input vehicle.Input
}

func NewConstant(throttle, brake float64) *Constant {
	return &Constant{Input: vehicle.Input{Throttle: throttle, Brake: brake}}
}

func (c *Constant) Command(vehicle.Snapshot) vehicle.Input { return c.Input }

// Pulse applies Throttle until Until seconds, then Brake.
type Pulse struct {
	Throttle float64
	Brake    float64
	Until    float64
}

func NewPulse(throttle, brake, until float64) *Pulse {
	return &Pulse{Throttle: throttle, Brake: brake, Until: until}
}

func (p *Pulse) Command(s vehicle.Snapshot) vehicle.Input {
	if s.Time < p.Until {
		return vehicle.Input{Throttle: p.Throttle}
	}
	return vehicle.Input{Brake: p.Brake}
}

// Manual returns whatever was last set. Safe to Set from another goroutine.
type Manual struct {
	mu    sync.Mutex
	input vehicle.Input
}

func NewManual() *Manual { return &Manual{} }

func (m *Manual) Set(in vehicle.Input) {
	m.mu.Lock()
	m.input = in
	m.mu.Unlock()
}

func (m *Manual) Command(vehicle.Snapshot) vehicle.Input {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.input
}
