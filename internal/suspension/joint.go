package suspension

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/trackdrive/internal/wheel"
)

const (
	// LateralDamping is the fixed damper of the lateral grip drive.
	LateralDamping = 100.0

	// MaxDriveForce caps both drives.
	MaxDriveForce = 1e7
)

// Motion is the freedom of one constraint axis.
type Motion int

const (
	Locked Motion = iota
	Limited
	Free
)

func (m Motion) String() string {
	switch m {
	case Locked:
		return "locked"
	case Limited:
		return "limited"
	case Free:
		return "free"
	default:
		return "unknown"
	}
}

// Drive is a spring-damper acting along one axis.
type Drive struct {
	Spring   float64
	Damper   float64
	MaxForce float64
}

// JointSpec is the suspension constraint between a wheel and its probe,
// expressed in the wheel's local frame.
type JointSpec struct {
	LateralAxis mgl64.Vec3
	TravelAxis  mgl64.Vec3
	RollingAxis mgl64.Vec3

	LateralMotion Motion
	TravelMotion  Motion
	RollingMotion Motion
	AngularMotion Motion

	// Target is where the drives pull the probe: full extension.
	Target mgl64.Vec3

	// Limit is the bump stop distance; Bounciness 0 adds no rebound energy.
	Limit       float64
	Bounciness  float64
	LimitSpring Drive

	TravelDrive  Drive
	LateralDrive Drive
}

// NewJointSpec builds the constraint for a wheel. The rolling axis is left
// free: longitudinal tire force is not modeled.
func NewJointSpec(cfg wheel.Config) JointSpec {
	return JointSpec{
		LateralAxis:   mgl64.Vec3{1, 0, 0},
		TravelAxis:    mgl64.Vec3{0, 1, 0},
		RollingAxis:   mgl64.Vec3{0, 0, 1},
		LateralMotion: Limited,
		TravelMotion:  Limited,
		RollingMotion: Free,
		AngularMotion: Free,
		Target:        mgl64.Vec3{0, -cfg.SuspensionTravel, 0},
		Limit:         cfg.SuspensionTravel,
		Bounciness:    0,
		TravelDrive: Drive{
			Spring:   cfg.SpringRate,
			Damper:   cfg.DamperRate,
			MaxForce: MaxDriveForce,
		},
		LateralDrive: Drive{
			Spring:   cfg.LateralGrip,
			Damper:   LateralDamping,
			MaxForce: MaxDriveForce,
		},
	}
}
