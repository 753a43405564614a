package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/trackdrive/internal/config"
	"github.com/spf13/cobra"
)

func parsed(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	configFile = ""
	cmd := &cobra.Command{Use: "run"}
	addScenarioFlags(cmd)
	if err := cmd.Flags().Parse(args); err != nil {
		t.Fatal(err)
	}
	return cmd
}

func TestLoadScenarioDefaults(t *testing.T) {
	cfg, err := loadScenario(parsed(t), nil)
	if err != nil {
		t.Fatal(err)
	}
	want := config.GetPreset("flat")
	if cfg.Duration != want.Duration || cfg.Driver.Name != want.Driver.Name {
		t.Errorf("unset flags should keep preset values, got %+v", cfg)
	}
}

func TestLoadScenarioOverrides(t *testing.T) {
	cmd := parsed(t, "--time", "3", "--driver", "constant", "--throttle", "0.4", "--speed", "1")
	cfg, err := loadScenario(cmd, []string{"tank"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Name != "tank" {
		t.Errorf("expected tank, got %s", cfg.Name)
	}
	if cfg.Duration != 3 || cfg.Chassis.ForwardSpeed != 1 {
		t.Errorf("overrides not applied: duration=%f speed=%f", cfg.Duration, cfg.Chassis.ForwardSpeed)
	}
	if cfg.Driver.Name != "constant" || cfg.Driver.Params["throttle"] != 0.4 {
		t.Errorf("unexpected driver %+v", cfg.Driver)
	}
	if _, ok := cfg.Driver.Params["target"]; ok {
		t.Error("changing driver should drop the preset's params")
	}
}

func TestLoadScenarioFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	cfg := config.GetPreset("bumps")
	cfg.Name = "custom"
	if err := config.Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	cmd := parsed(t)
	configFile = path
	defer func() { configFile = "" }()

	got, err := loadScenario(cmd, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "custom" || len(got.Terrain) != len(cfg.Terrain) {
		t.Errorf("file not loaded: %+v", got)
	}
}

func TestResolveErrors(t *testing.T) {
	if _, err := resolve("moon"); err == nil {
		t.Error("expected unknown preset error")
	}
	if _, err := resolve(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestLoadScenarioInvalid(t *testing.T) {
	cmd := parsed(t, "--dt", "0")
	if _, err := loadScenario(cmd, nil); err == nil {
		t.Error("expected validation error for zero dt")
	}
}
