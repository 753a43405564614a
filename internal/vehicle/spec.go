package vehicle

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/trackdrive/internal/drivetrain"
	"github.com/san-kum/trackdrive/internal/suspension"
	"github.com/san-kum/trackdrive/internal/wheel"
)

var (
	ErrNoWheels       = errors.New("vehicle: no wheels")
	ErrUnknownGroup   = errors.New("vehicle: wheel references unknown group")
	ErrDuplicateGroup = errors.New("vehicle: duplicate group name")
	ErrDuplicateWheel = errors.New("vehicle: duplicate wheel name")
	ErrChassisMass    = errors.New("vehicle: chassis mass must be positive")
)

// WheelSpec places one wheel on the chassis. An empty Group leaves the wheel
// undriven.
type WheelSpec struct {
	Config wheel.Config
	Mount  mgl64.Vec3
	Scale  mgl64.Vec3
	Group  string
}

// GroupSpec describes one drive output and the wheels it turns.
type GroupSpec struct {
	Name           string
	Motor          drivetrain.Motor
	Track          drivetrain.Track
	MaxBrakeTorque float64
}

// Spec is a fully resolved vehicle description.
type Spec struct {
	Name            string
	ChassisMass     float64
	StartHeight     float64
	ForwardSpeed    float64
	Gravity         float64
	RollingCoupling float64
	// ExcludeMask lists the layers every wheel ray skips. Zero tests all.
	ExcludeMask     suspension.LayerMask
	Wheels          []WheelSpec
	Groups          []GroupSpec
}

// Validate checks the structural parts of a Spec. Per-wheel tunables are not
// fatal here; invalid wheels are excluded from distribution at assembly.
func (s Spec) Validate() error {
	var errs []error
	if !(s.ChassisMass > 0) {
		errs = append(errs, fmt.Errorf("%w, got %g", ErrChassisMass, s.ChassisMass))
	}
	if len(s.Wheels) == 0 {
		errs = append(errs, ErrNoWheels)
	}
	names := make(map[string]bool, len(s.Groups))
	for _, g := range s.Groups {
		if names[g.Name] {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateGroup, g.Name))
		}
		names[g.Name] = true
	}
	wheels := make(map[string]bool, len(s.Wheels))
	for _, w := range s.Wheels {
		if wheels[w.Config.Name] {
			errs = append(errs, fmt.Errorf("%w: %s", ErrDuplicateWheel, w.Config.Name))
		}
		wheels[w.Config.Name] = true
		if w.Group != "" && !names[w.Group] {
			errs = append(errs, fmt.Errorf("%w: wheel %s, group %s", ErrUnknownGroup, w.Config.Name, w.Group))
		}
	}
	return errors.Join(errs...)
}
