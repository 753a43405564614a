package wheel

import (
	"math"
	"testing"
)

func TestStateValid(t *testing.T) {
	s := NewState(DefaultConfig("w"))
	if !s.Valid() {
		t.Error("default state should be valid")
	}
	s.RotationalInertia = 0
	if s.Valid() {
		t.Error("zero inertia should be invalid")
	}
}

func TestStateMomentum(t *testing.T) {
	s := NewState(DefaultConfig("w"))
	s.RotationalInertia = 3
	s.AngularVelocity = 10
	if s.Momentum() != 30 {
		t.Errorf("expected momentum 30, got %f", s.Momentum())
	}
}

func TestRPMRoundTrip(t *testing.T) {
	omega := 2 * math.Pi
	if math.Abs(RPMFromAngular(omega)-60) > 1e-9 {
		t.Errorf("expected 60 rpm, got %f", RPMFromAngular(omega))
	}
	if math.Abs(AngularFromRPM(RPMFromAngular(3.7))-3.7) > 1e-12 {
		t.Error("rpm conversion should round trip")
	}
}

func TestStateFinite(t *testing.T) {
	s := NewState(DefaultConfig("w"))
	if !s.Finite() {
		t.Error("zero state should be finite")
	}
	s.MotorTorque = math.NaN()
	if s.Finite() {
		t.Error("NaN torque should not be finite")
	}
	s.MotorTorque = 0
	s.AngularVelocity = math.Inf(-1)
	if s.Finite() {
		t.Error("infinite spin should not be finite")
	}
}
