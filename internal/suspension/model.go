package suspension

import (
	"errors"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/trackdrive/internal/logging"
	"github.com/san-kum/trackdrive/internal/wheel"
)

// DefaultClearance shortens the ray so a wheel resting exactly at full travel
// reads as airborne.
const DefaultClearance = 0.1

var (
	ErrNilWheel  = errors.New("suspension: nil wheel")
	ErrNilCaster = errors.New("suspension: nil ray caster")
)

// Pose is the wheel frame at setup. A zero Scale means unit scale.
type Pose struct {
	Origin      mgl64.Vec3
	Down        mgl64.Vec3
	Orientation mgl64.Quat
	Scale       mgl64.Vec3
}

// Options configure a Model. ExcludeMask lists the layers the ray skips; the
// wheel's own layer should be in it. The zero value tests every layer.
type Options struct {
	ExcludeMask LayerMask
	Clearance   float64
	Logger      *slog.Logger
}

// Model is the per-wheel suspension and contact model.
type Model struct {
	wheel     *wheel.State
	probe     *wheel.ContactProbe
	caster    RayCaster
	mask      LayerMask
	clearance float64
	joint     JointSpec
	issues    error

	distance float64
}

// New creates the model and its probe at the fully extended rest position.
// Invalid tunables or a non-unit scale are logged and kept in Issues; the
// model is still usable for contact.
func New(w *wheel.State, caster RayCaster, pose Pose, opts Options) (*Model, error) {
	if w == nil {
		return nil, ErrNilWheel
	}
	if caster == nil {
		return nil, ErrNilCaster
	}
	log := logging.OrNop(opts.Logger)

	clearance := opts.Clearance
	if clearance <= 0 {
		clearance = DefaultClearance
	}

	scale := pose.Scale
	if scale == (mgl64.Vec3{}) {
		scale = mgl64.Vec3{1, 1, 1}
	}
	issues := errors.Join(w.Config.Validate(), wheel.CheckScale(w.Name, scale))
	if issues != nil {
		log.Warn("wheel configuration invalid", "wheel", w.Name, "err", issues)
	}

	down := normalizeOr(pose.Down, mgl64.Vec3{0, -1, 0})
	m := &Model{
		wheel:     w,
		caster:    caster,
		mask:      opts.ExcludeMask,
		clearance: clearance,
		joint:     NewJointSpec(w.Config),
		issues:    issues,
	}
	m.probe = wheel.NewContactProbe(m.RestPosition(pose.Origin, down), pose.Orientation)
	return m, nil
}

func (m *Model) Wheel() *wheel.State        { return m.wheel }
func (m *Model) Probe() *wheel.ContactProbe { return m.probe }
func (m *Model) Joint() JointSpec           { return m.joint }
func (m *Model) Mask() LayerMask            { return m.mask }

// Issues returns the configuration findings recorded at construction.
func (m *Model) Issues() error { return m.issues }

// RayLength is the distance within which a hit counts as ground contact.
func (m *Model) RayLength() float64 {
	return m.wheel.SuspensionTravel - m.clearance
}

// RestPosition is the probe position at full extension below origin.
func (m *Model) RestPosition(origin, down mgl64.Vec3) mgl64.Vec3 {
	return origin.Add(down.Mul(m.wheel.SuspensionTravel + m.wheel.Radius))
}

// Compression is how far the suspension is pushed in from full extension, or
// zero while airborne.
func (m *Model) Compression() float64 {
	if !m.wheel.Grounded {
		return 0
	}
	return m.wheel.SuspensionTravel - m.distance
}

// UpdateContact casts from origin along down and writes the grounded flag,
// the contact point and the probe pose. A zero down axis leaves every field
// unchanged.
func (m *Model) UpdateContact(origin, down mgl64.Vec3, orientation mgl64.Quat) bool {
	if down.Len() == 0 {
		return m.wheel.Grounded
	}
	down = down.Normalize()

	length := m.RayLength()
	var (
		hit Hit
		ok  bool
	)
	if length > 0 {
		hit, ok = m.caster.Raycast(origin, down, length, m.mask)
	}

	if ok {
		m.wheel.Grounded = true
		m.wheel.ContactPoint = hit.Point
		m.distance = hit.Distance
		m.probe.Kinematic = true
		m.probe.Position = hit.Point
		m.probe.Orientation = orientation
		return true
	}

	m.wheel.Grounded = false
	m.distance = 0
	m.probe.Kinematic = false
	m.probe.Position = m.RestPosition(origin, down)
	m.probe.Orientation = orientation
	return false
}

func normalizeOr(v, fallback mgl64.Vec3) mgl64.Vec3 {
	if v.Len() == 0 {
		return fallback
	}
	return v.Normalize()
}
