package wheel

import "github.com/go-gl/mathgl/mgl64"

// ContactProbe marks where a wheel touches the ground, or where it rests at
// full extension while airborne. It has no mass and no logic; the suspension
// model writes its pose each tick.
type ContactProbe struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat

	// Kinematic is true while pinned to a ray hit and false while the probe is
	// a free body that the suspension constraint may pull back in.
	Kinematic bool
}

func NewContactProbe(position mgl64.Vec3, orientation mgl64.Quat) *ContactProbe {
	return &ContactProbe{Position: position, Orientation: orientation}
}
