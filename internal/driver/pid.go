package driver

import (
	"math"

	"github.com/san-kum/trackdrive/internal/vehicle"
)

// PID holds the mean reference rpm of all groups at Target by throttle.
type PID struct {
	Kp       float64
	Ki       float64
	Kd       float64
	Target   float64
	integral float64
	prevErr  float64
	prevT    float64
	first    bool
}

func NewPID(kp, ki, kd, target float64) *PID {
	return &PID{
		Kp:     kp,
		Ki:     ki,
		Kd:     kd,
		Target: target,
		first:  true,
	}
}

func (p *PID) Command(s vehicle.Snapshot) vehicle.Input {
	if len(s.Groups) == 0 {
		return vehicle.Input{}
	}
	var rpm float64
	for _, g := range s.Groups {
		rpm += g.ReferenceRPM
	}
	rpm /= float64(len(s.Groups))

	err := p.Target - rpm
	t := s.Time

	if p.first {
		p.prevErr = err
		p.prevT = t
		p.first = false
		return throttle(p.Kp * err)
	}

	dt := t - p.prevT
	if dt > 0 {
		p.integral += err * dt
		derivative := (err - p.prevErr) / dt

		u := p.Kp*err + p.Ki*p.integral + p.Kd*derivative

		p.prevErr = err
		p.prevT = t

		return throttle(u)
	}
	return throttle(p.Kp * err)
}

func throttle(u float64) vehicle.Input {
	return vehicle.Input{Throttle: math.Max(-1, math.Min(1, u))}
}
