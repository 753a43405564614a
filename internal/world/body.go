package world

import "github.com/go-gl/mathgl/mgl64"

// Body is a translating rigid body. Axes flagged in KinematicAxes keep their
// velocity and ignore forces; a Kinematic body or one without mass ignores
// forces on every axis.
type Body struct {
	Position      mgl64.Vec3
	Rotation      mgl64.Quat
	Velocity      mgl64.Vec3
	Mass          float64
	Kinematic     bool
	KinematicAxes [3]bool

	force mgl64.Vec3
}

func NewBody(position mgl64.Vec3, mass float64) *Body {
	return &Body{Position: position, Rotation: mgl64.QuatIdent(), Mass: mass}
}

func (b *Body) Up() mgl64.Vec3   { return b.Rotation.Rotate(mgl64.Vec3{0, 1, 0}) }
func (b *Body) Down() mgl64.Vec3 { return b.Rotation.Rotate(mgl64.Vec3{0, -1, 0}) }

// ToWorld maps a point in the body frame to world space.
func (b *Body) ToWorld(local mgl64.Vec3) mgl64.Vec3 {
	return b.Position.Add(b.Rotation.Rotate(local))
}

func (b *Body) AddForce(f mgl64.Vec3) {
	b.force = b.force.Add(f)
}

// Force is the force accumulated since the last Integrate.
func (b *Body) Force() mgl64.Vec3 { return b.force }

func (b *Body) dynamic(axis int) bool {
	return !b.Kinematic && b.Mass > 0 && !b.KinematicAxes[axis]
}

// Integrate advances the body with semi-implicit Euler and clears forces.
func (b *Body) Integrate(dt float64, gravity mgl64.Vec3) {
	for i := 0; i < 3; i++ {
		if b.dynamic(i) {
			b.Velocity[i] += (b.force[i]/b.Mass + gravity[i]) * dt
		}
	}
	b.Position = b.Position.Add(b.Velocity.Mul(dt))
	b.force = mgl64.Vec3{}
}

// Translate moves the body along dynamic axes only.
func (b *Body) Translate(delta mgl64.Vec3) {
	for i := 0; i < 3; i++ {
		if b.dynamic(i) {
			b.Position[i] += delta[i]
		}
	}
}

// Arrest removes the velocity component along axis (unit) that points the
// same way as axis, scaled by -bounce. Kinematic axes are untouched.
func (b *Body) Arrest(axis mgl64.Vec3, bounce float64) {
	along := b.Velocity.Dot(axis)
	if along <= 0 {
		return
	}
	dv := axis.Mul(-along * (1 + bounce))
	for i := 0; i < 3; i++ {
		if b.dynamic(i) {
			b.Velocity[i] += dv[i]
		}
	}
}
