package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/trackdrive/internal/vehicle"
	"github.com/san-kum/trackdrive/internal/wheel"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if len(cfg.Wheels) != 4 {
		t.Errorf("expected 4 wheels, got %d", len(cfg.Wheels))
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestPresetsValid(t *testing.T) {
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			cfg := GetPreset(name)
			if cfg == nil {
				t.Fatal("expected preset, got nil")
			}
			if cfg.Name != name {
				t.Errorf("expected name %s, got %s", name, cfg.Name)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("invalid: %v", err)
			}
			if err := cfg.Issues(); err != nil {
				t.Errorf("wheel issues: %v", err)
			}
		})
	}
}

func TestGetPresetFresh(t *testing.T) {
	a := GetPreset("flat")
	a.Wheels[0].Radius = 99
	b := GetPreset("flat")
	if b.Wheels[0].Radius == 99 {
		t.Error("presets should not share state")
	}
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	want := []string{"bumps", "flat", "gap", "tank"}
	got := ListPresets()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("presets[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tank.yaml")
	orig := GetPreset("tank")
	if err := Save(path, orig); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(loaded.Wheels) != len(orig.Wheels) {
		t.Fatalf("expected %d wheels, got %d", len(orig.Wheels), len(loaded.Wheels))
	}
	if loaded.Wheels[0] != orig.Wheels[0] {
		t.Errorf("wheel mismatch: %+v vs %+v", loaded.Wheels[0], orig.Wheels[0])
	}
	if loaded.Groups[1].Track.SpeedMult != 1.2 {
		t.Errorf("expected speed mult 1.2, got %f", loaded.Groups[1].Track.SpeedMult)
	}
	if loaded.Driver.Params["target"] != 60 {
		t.Errorf("expected driver target 60, got %v", loaded.Driver.Params)
	}
}

func TestParseAppliesWheelDefaults(t *testing.T) {
	doc := []byte(`
name: custom
groups:
  - name: main
    motor: {max_torque: 50}
wheels:
  - name: solo
    radius: 0.8
    mount: [0, 0, 0]
    group: main
`)
	cfg, err := Parse(doc)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Dt != DefaultDt {
		t.Errorf("expected default dt, got %f", cfg.Dt)
	}
	if len(cfg.Wheels) != 1 {
		t.Fatalf("expected 1 wheel, got %d", len(cfg.Wheels))
	}
	w := cfg.Wheels[0]
	if w.Radius != 0.8 {
		t.Errorf("expected radius 0.8, got %f", w.Radius)
	}
	if w.SpringRate != wheel.DefaultSpring || w.RotationalInertia != wheel.DefaultInertia {
		t.Errorf("expected defaults for unset fields, got %+v", w.Config)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero dt", func(c *Config) { c.Dt = 0 }, ErrInvalidDt},
		{"negative duration", func(c *Config) { c.Duration = -1 }, ErrInvalidDuration},
		{"bad ignore layer", func(c *Config) { c.IgnoreLayers = []int{40} }, ErrInvalidLayer},
		{"bad box layer", func(c *Config) { c.Terrain[0].Layer = -1 }, ErrInvalidLayer},
		{"no wheels", func(c *Config) { c.Wheels = nil }, vehicle.ErrNoWheels},
		{"unknown group", func(c *Config) { c.Wheels[0].Group = "middle" }, vehicle.ErrUnknownGroup},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestIssues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Wheels[1].RotationalInertia = 0
	cfg.Wheels[2].Scale = [3]float64{1, 2, 1}

	err := cfg.Issues()
	if !errors.Is(err, wheel.ErrNonPositiveInertia) {
		t.Errorf("expected inertia finding, got %v", err)
	}
	if !errors.Is(err, wheel.ErrNonUnitScale) {
		t.Errorf("expected scale finding, got %v", err)
	}
	if cfg.Validate() != nil {
		t.Error("wheel issues should not fail Validate")
	}
}

func TestToSpec(t *testing.T) {
	cfg := GetPreset("gap")
	spec := cfg.ToSpec()

	if spec.ChassisMass != cfg.Chassis.Mass {
		t.Errorf("mass not carried over")
	}
	if spec.ExcludeMask.Includes(IgnoredLayer) {
		t.Error("layer 26 should be excluded")
	}
	if !spec.ExcludeMask.Includes(0) {
		t.Error("layer 0 should be included")
	}
	if len(spec.Wheels) != 4 || spec.Wheels[0].Mount.Z() != 1.5 {
		t.Errorf("unexpected wheels %+v", spec.Wheels)
	}

	terrain := cfg.BuildTerrain()
	if len(terrain.Boxes()) != 3 {
		t.Errorf("expected 3 boxes, got %d", len(terrain.Boxes()))
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestBuild(t *testing.T) {
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			cfg := GetPreset(name)
			v, d, err := cfg.Build(nil, nil)
			if err != nil {
				t.Fatal(err)
			}
			if d == nil {
				t.Fatal("expected driver")
			}
			if len(v.Wheels()) != len(cfg.Wheels) {
				t.Errorf("expected %d wheels, got %d", len(cfg.Wheels), len(v.Wheels()))
			}
			if len(v.Drives()) != len(cfg.Groups) {
				t.Errorf("expected %d drives, got %d", len(cfg.Groups), len(v.Drives()))
			}
			snap := v.Step()
			if snap.GroundedCount() != len(cfg.Wheels) {
				t.Errorf("expected all wheels grounded at start, got %d", snap.GroundedCount())
			}
		})
	}
}

func TestBuildUnknownDriver(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Driver.Name = "autopilot"
	if _, _, err := cfg.Build(nil, nil); err == nil {
		t.Error("expected error for unknown driver")
	}
}
