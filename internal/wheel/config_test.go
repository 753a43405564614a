package wheel

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig("front")
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
		field  string
	}{
		{"zero radius", func(c *Config) { c.Radius = 0 }, ErrNonPositiveRadius, "radius"},
		{"negative radius", func(c *Config) { c.Radius = -0.5 }, ErrNonPositiveRadius, "radius"},
		{"zero inertia", func(c *Config) { c.RotationalInertia = 0 }, ErrNonPositiveInertia, "inertia"},
		{"zero travel", func(c *Config) { c.SuspensionTravel = 0 }, ErrNonPositiveTravel, "travel"},
		{"negative spring", func(c *Config) { c.SpringRate = -1 }, ErrNegativeRate, "spring"},
		{"negative grip", func(c *Config) { c.LateralGrip = -1 }, ErrNegativeRate, "lateral_grip"},
		{"nan damper", func(c *Config) { c.DamperRate = math.NaN() }, ErrNonFinite, "damper"},
		{"inf radius", func(c *Config) { c.Radius = math.Inf(1) }, ErrNonFinite, "radius"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig("w")
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			var cerr *ConfigurationError
			if !errors.As(err, &cerr) {
				t.Fatalf("expected *ConfigurationError, got %T", err)
			}
			if cerr.Field != tt.field {
				t.Errorf("expected field %s, got %s", tt.field, cerr.Field)
			}
			if cerr.Wheel != "w" {
				t.Errorf("expected wheel name w, got %s", cerr.Wheel)
			}
		})
	}
}

func TestValidateReportsEveryField(t *testing.T) {
	cfg := Config{Name: "bad"}
	err := cfg.Validate()
	for _, want := range []error{ErrNonPositiveRadius, ErrNonPositiveInertia, ErrNonPositiveTravel} {
		if !errors.Is(err, want) {
			t.Errorf("expected %v in %v", want, err)
		}
	}
}

func TestZeroRatesAllowed(t *testing.T) {
	cfg := DefaultConfig("soft")
	cfg.SpringRate, cfg.DamperRate, cfg.LateralGrip = 0, 0, 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("zero rates should be valid, got %v", err)
	}
}

func TestCheckScale(t *testing.T) {
	if err := CheckScale("w", mgl64.Vec3{1, 1, 1}); err != nil {
		t.Errorf("unit scale flagged: %v", err)
	}

	err := CheckScale("w", mgl64.Vec3{1, 2, 1})
	if !errors.Is(err, ErrNonUnitScale) {
		t.Fatalf("expected ErrNonUnitScale, got %v", err)
	}
	var cerr *ConfigurationError
	if !errors.As(err, &cerr) || cerr.Field != "scale.y" {
		t.Errorf("expected scale.y finding, got %v", err)
	}
}

func TestConfigurationErrorMessage(t *testing.T) {
	err := &ConfigurationError{Field: "radius", Value: -1, Err: ErrNonPositiveRadius}
	want := "wheel <unnamed>: radius=-1: wheel: radius must be positive"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}
