package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/trackdrive/internal/suspension"
	"github.com/san-kum/trackdrive/internal/wheel"
)

// SuspensionJoint realizes a JointSpec between a chassis body and a wheel's
// contact probe. The anchor is Mount in the body frame.
type SuspensionJoint struct {
	Spec  suspension.JointSpec
	Body  *Body
	Mount mgl64.Vec3
	Probe *wheel.ContactProbe

	prev    mgl64.Vec3
	hasPrev bool

	// outputs of the last Solve
	Force     mgl64.Vec3
	Offset    mgl64.Vec3
	AtLimit   bool
	LimitHits int
}

func NewSuspensionJoint(spec suspension.JointSpec, body *Body, mount mgl64.Vec3, probe *wheel.ContactProbe) *SuspensionJoint {
	return &SuspensionJoint{Spec: spec, Body: body, Mount: mount, Probe: probe}
}

// Anchor is the wheel origin in world space.
func (j *SuspensionJoint) Anchor() mgl64.Vec3 {
	return j.Body.ToWorld(j.Mount)
}

// Solve applies one tick of the constraint. A pinned probe pushes the body
// through the travel and lateral drives and the bump stop. A free probe has
// no mass, so it transmits nothing; it is kept inside the limit and relaxed
// toward the target at the massless spring-damper rate.
func (j *SuspensionJoint) Solve(dt float64) {
	anchor := j.Anchor()
	inv := j.Body.Rotation.Conjugate()
	local := inv.Rotate(j.Probe.Position.Sub(anchor))

	j.Force = mgl64.Vec3{}
	j.AtLimit = false

	if !j.Probe.Kinematic {
		local = j.relax(local, dt)
		j.Probe.Position = anchor.Add(j.Body.Rotation.Rotate(local))
		j.Offset = local
		j.prev, j.hasPrev = local, true
		return
	}

	var rate mgl64.Vec3
	if j.hasPrev && dt > 0 {
		rate = local.Sub(j.prev).Mul(1 / dt)
	}

	compression := local.Y() - j.Spec.Target.Y()
	fy := drive(j.Spec.TravelDrive, compression, rate.Y())
	fx := drive(j.Spec.LateralDrive, local.X()-j.Spec.Target.X(), rate.X())
	if j.Spec.LateralMotion == suspension.Free {
		fx = 0
	}

	j.Force = j.Body.Rotation.Rotate(mgl64.Vec3{fx, fy, 0})
	j.Body.AddForce(j.Force)

	if compression >= j.Spec.Limit {
		excess := compression - j.Spec.Limit
		j.Body.Translate(j.Body.Up().Mul(excess))
		j.Body.Arrest(j.Body.Down(), j.Spec.Bounciness)
		local[1] -= excess
		j.AtLimit = true
		j.LimitHits++
	}

	j.Offset = local
	j.prev, j.hasPrev = local, true
}

func (j *SuspensionJoint) relax(local mgl64.Vec3, dt float64) mgl64.Vec3 {
	if l := local.Len(); l > j.Spec.Limit && l > 0 {
		local = local.Mul(j.Spec.Limit / l)
	}

	k, c := j.Spec.TravelDrive.Spring, j.Spec.TravelDrive.Damper
	var alpha float64
	switch {
	case k <= 0:
		alpha = 0
	case c <= 0:
		alpha = 1
	default:
		alpha = 1 - math.Exp(-k/c*dt)
	}

	target := j.Spec.Target
	local[0] += (target[0] - local[0]) * alpha
	local[1] += (target[1] - local[1]) * alpha
	return local
}

func drive(d suspension.Drive, offset, rate float64) float64 {
	f := d.Spring*offset + d.Damper*rate
	if d.MaxForce > 0 {
		f = math.Max(-d.MaxForce, math.Min(d.MaxForce, f))
	}
	return f
}
