package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/trackdrive/internal/drivetrain"
	"github.com/san-kum/trackdrive/internal/suspension"
	"github.com/san-kum/trackdrive/internal/vehicle"
	"github.com/san-kum/trackdrive/internal/wheel"
	"github.com/san-kum/trackdrive/internal/world"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt          = 0.01
	DefaultDuration    = 10.0
	DefaultGravity     = -9.81
	DefaultMass        = 200.0
	DefaultSampleEvery = 5

	// IgnoredLayer is the chassis self-collision layer the wheel rays skip
	// unless a scenario overrides ignore_layers.
	IgnoredLayer = 26
)

var (
	ErrInvalidDt       = errors.New("config: dt must be positive")
	ErrInvalidDuration = errors.New("config: duration must be positive")
	ErrInvalidLayer    = errors.New("config: layer must be in [0, 31]")
)

type Config struct {
	Name         string        `yaml:"name"`
	Dt           float64       `yaml:"dt"`
	Duration     float64       `yaml:"duration"`
	SampleEvery  int           `yaml:"sample_every"`
	Gravity      float64       `yaml:"gravity"`
	Chassis      ChassisConfig `yaml:"chassis"`
	IgnoreLayers []int         `yaml:"ignore_layers"`
	Groups       []GroupConfig `yaml:"groups"`
	Wheels       []WheelConfig `yaml:"wheels"`
	Terrain      []BoxConfig   `yaml:"terrain"`
	Driver       DriverConfig  `yaml:"driver"`
}

type ChassisConfig struct {
	Mass            float64 `yaml:"mass"`
	StartHeight     float64 `yaml:"start_height"`
	ForwardSpeed    float64 `yaml:"forward_speed"`
	RollingCoupling float64 `yaml:"rolling_coupling"`
}

type GroupConfig struct {
	Name           string           `yaml:"name"`
	Motor          drivetrain.Motor `yaml:"motor"`
	Track          drivetrain.Track `yaml:"track"`
	MaxBrakeTorque float64          `yaml:"max_brake_torque"`
}

// WheelConfig is a wheel's tunables plus its placement. Fields missing from
// a file keep the wheel defaults.
type WheelConfig struct {
	wheel.Config `yaml:",inline"`
	Mount        [3]float64 `yaml:"mount"`
	Scale        [3]float64 `yaml:"scale,omitempty"`
	Group        string     `yaml:"group,omitempty"`
}

func (w *WheelConfig) UnmarshalYAML(value *yaml.Node) error {
	type plain WheelConfig
	raw := plain{Config: wheel.DefaultConfig("")}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*w = WheelConfig(raw)
	return nil
}

type BoxConfig struct {
	Name  string     `yaml:"name"`
	Min   [3]float64 `yaml:"min"`
	Max   [3]float64 `yaml:"max"`
	Layer int        `yaml:"layer,omitempty"`
}

type DriverConfig struct {
	Name   string             `yaml:"name"`
	Params map[string]float64 `yaml:"params,omitempty"`
}

func DefaultConfig() *Config {
	return flat()
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes yaml over the defaults. Lists in the document replace the
// default lists wholesale.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports problems that prevent a run. Wheel tunables are not
// checked here; see Issues.
func (c *Config) Validate() error {
	var errs []error
	if !(c.Dt > 0) {
		errs = append(errs, fmt.Errorf("%w, got %f", ErrInvalidDt, c.Dt))
	}
	if !(c.Duration > 0) {
		errs = append(errs, fmt.Errorf("%w, got %f", ErrInvalidDuration, c.Duration))
	}
	for _, l := range c.IgnoreLayers {
		if l < 0 || l > 31 {
			errs = append(errs, fmt.Errorf("%w, got %d", ErrInvalidLayer, l))
		}
	}
	for _, b := range c.Terrain {
		if b.Layer < 0 || b.Layer > 31 {
			errs = append(errs, fmt.Errorf("%w: box %s, got %d", ErrInvalidLayer, b.Name, b.Layer))
		}
	}
	errs = append(errs, c.ToSpec().Validate())
	return errors.Join(errs...)
}

// Issues returns the per-wheel configuration findings. A wheel with issues
// still runs but is left out of torque distribution.
func (c *Config) Issues() error {
	var errs []error
	for _, w := range c.Wheels {
		if err := w.Config.Validate(); err != nil {
			errs = append(errs, err)
		}
		if w.Scale != ([3]float64{}) {
			if err := wheel.CheckScale(w.Name, mgl64.Vec3(w.Scale)); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (c *Config) ToSpec() vehicle.Spec {
	spec := vehicle.Spec{
		Name:            c.Name,
		ChassisMass:     c.Chassis.Mass,
		StartHeight:     c.Chassis.StartHeight,
		ForwardSpeed:    c.Chassis.ForwardSpeed,
		Gravity:         c.Gravity,
		RollingCoupling: c.Chassis.RollingCoupling,
		ExcludeMask:     suspension.ExcludeLayers(c.IgnoreLayers...),
		Wheels:          make([]vehicle.WheelSpec, len(c.Wheels)),
		Groups:          make([]vehicle.GroupSpec, len(c.Groups)),
	}
	for i, w := range c.Wheels {
		spec.Wheels[i] = vehicle.WheelSpec{
			Config: w.Config,
			Mount:  mgl64.Vec3(w.Mount),
			Scale:  mgl64.Vec3(w.Scale),
			Group:  w.Group,
		}
	}
	for i, g := range c.Groups {
		spec.Groups[i] = vehicle.GroupSpec{
			Name:           g.Name,
			Motor:          g.Motor,
			Track:          g.Track,
			MaxBrakeTorque: g.MaxBrakeTorque,
		}
	}
	return spec
}

func (c *Config) BuildTerrain() *world.Terrain {
	t := world.NewTerrain()
	for _, b := range c.Terrain {
		t.Add(world.Box{
			Name:  b.Name,
			Min:   mgl64.Vec3(b.Min),
			Max:   mgl64.Vec3(b.Max),
			Layer: b.Layer,
		})
	}
	return t
}
