package wheel

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultRadius      = 0.5
	DefaultTravel      = 2.0
	DefaultSpring      = 2000.0
	DefaultDamper      = 200.0
	DefaultLateralGrip = 2000.0
	DefaultInertia     = 1.0

	// scaleTolerance bounds how far a transform scale component may sit from 1.
	scaleTolerance = 1e-6
)

// Config is the tunable record for one wheel.
type Config struct {
	Name              string  `yaml:"name" json:"name"`
	Radius            float64 `yaml:"radius" json:"radius"`
	SuspensionTravel  float64 `yaml:"travel" json:"travel"`
	SpringRate        float64 `yaml:"spring" json:"spring"`
	DamperRate        float64 `yaml:"damper" json:"damper"`
	LateralGrip       float64 `yaml:"lateral_grip" json:"lateral_grip"`
	RotationalInertia float64 `yaml:"inertia" json:"inertia"`
}

func DefaultConfig(name string) Config {
	return Config{
		Name:              name,
		Radius:            DefaultRadius,
		SuspensionTravel:  DefaultTravel,
		SpringRate:        DefaultSpring,
		DamperRate:        DefaultDamper,
		LateralGrip:       DefaultLateralGrip,
		RotationalInertia: DefaultInertia,
	}
}

// Validate returns every invalid field as a joined set of *ConfigurationError,
// or nil when the record is usable.
func (c Config) Validate() error {
	var errs []error
	check := func(field string, v float64, positive bool) {
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			errs = append(errs, &ConfigurationError{Wheel: c.Name, Field: field, Value: v, Err: ErrNonFinite})
		case positive && v <= 0:
			errs = append(errs, &ConfigurationError{Wheel: c.Name, Field: field, Value: v, Err: positiveErr(field)})
		case !positive && v < 0:
			errs = append(errs, &ConfigurationError{Wheel: c.Name, Field: field, Value: v, Err: ErrNegativeRate})
		}
	}

	check("radius", c.Radius, true)
	check("travel", c.SuspensionTravel, true)
	check("inertia", c.RotationalInertia, true)
	check("spring", c.SpringRate, false)
	check("damper", c.DamperRate, false)
	check("lateral_grip", c.LateralGrip, false)

	return errors.Join(errs...)
}

func positiveErr(field string) error {
	switch field {
	case "radius":
		return ErrNonPositiveRadius
	case "inertia":
		return ErrNonPositiveInertia
	default:
		return ErrNonPositiveTravel
	}
}

// CheckScale flags geometry that is not at unit scale. All travel and force
// computations assume unscaled geometry.
func CheckScale(name string, scale mgl64.Vec3) error {
	var errs []error
	for i, axis := range [3]string{"scale.x", "scale.y", "scale.z"} {
		if math.Abs(scale[i]-1) > scaleTolerance {
			errs = append(errs, &ConfigurationError{Wheel: name, Field: axis, Value: scale[i], Err: ErrNonUnitScale})
		}
	}
	return errors.Join(errs...)
}
