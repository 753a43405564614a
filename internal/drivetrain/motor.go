package drivetrain

import (
	"math"

	"github.com/san-kum/trackdrive/internal/wheel"
)

// Motor produces a group-level torque that falls off linearly to zero at
// MaxRPM when spinning in the commanded direction. MaxRPM <= 0 disables the
// falloff.
type Motor struct {
	MaxTorque float64 `yaml:"max_torque" json:"max_torque"`
	MaxRPM    float64 `yaml:"max_rpm" json:"max_rpm"`
}

// Torque returns the output for a throttle in [-1, 1] at the given rpm.
func (m Motor) Torque(throttle, rpm float64) float64 {
	throttle = clamp(throttle, -1, 1)
	if throttle == 0 || m.MaxTorque == 0 {
		return 0
	}
	falloff := 1.0
	if m.MaxRPM > 0 && rpm*throttle > 0 {
		falloff = clamp(1-math.Abs(rpm)/m.MaxRPM, 0, 1)
	}
	return m.MaxTorque * throttle * falloff
}

// Track reports the belt readout used by visual consumers.
type Track struct {
	SpeedMult float64 `yaml:"speed_mult" json:"speed_mult"`
}

// RPM is the reference wheel's rpm scaled by the track speed multiplier.
func (t Track) RPM(g *Group) float64 {
	mult := t.SpeedMult
	if mult == 0 {
		mult = 1
	}
	return g.ReferenceRPM() * mult
}

// LinearSpeed is the belt speed in length units per second.
func (t Track) LinearSpeed(g *Group) float64 {
	w := g.Reference()
	if w == nil {
		return 0
	}
	return wheel.AngularFromRPM(t.RPM(g)) * w.Radius
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
