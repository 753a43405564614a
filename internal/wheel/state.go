package wheel

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// State is the physical state of one wheel. Angular velocity is in radians
// per second.
type State struct {
	Config

	AngularVelocity float64
	MotorTorque     float64
	BrakeTorque     float64

	// Grounded and ContactPoint are owned by the suspension model.
	// ContactPoint keeps the last hit after the wheel leaves the ground.
	Grounded     bool
	ContactPoint mgl64.Vec3

	// Faulted is set by the integrator once an output has gone non-finite.
	// A faulted wheel takes no further part in torque distribution.
	Faulted bool
}

func NewState(cfg Config) *State {
	return &State{Config: cfg}
}

// Valid reports whether the per-tick divisions by radius and inertia are safe.
func (s *State) Valid() bool {
	return s.Radius > 0 && s.RotationalInertia > 0
}

// Momentum is the wheel's angular momentum about its axle.
func (s *State) Momentum() float64 {
	return s.AngularVelocity * s.RotationalInertia
}

func (s *State) RPM() float64 {
	return RPMFromAngular(s.AngularVelocity)
}

// Finite reports whether every output written per tick is a usable number.
func (s *State) Finite() bool {
	for _, v := range [3]float64{s.AngularVelocity, s.MotorTorque, s.BrakeTorque} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func RPMFromAngular(omega float64) float64 {
	return omega * 60 / (2 * math.Pi)
}

func AngularFromRPM(rpm float64) float64 {
	return rpm * 2 * math.Pi / 60
}
