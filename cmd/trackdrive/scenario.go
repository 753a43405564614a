package main

import (
	"fmt"
	"strings"

	"github.com/san-kum/trackdrive/internal/config"
	"github.com/spf13/cobra"
)

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().IntVar(&sampleEvery, "sample", config.DefaultSampleEvery, "store every Nth tick")
	cmd.Flags().Float64Var(&forwardSpeed, "speed", 2, "chassis forward speed")
	cmd.Flags().Float64Var(&coupling, "coupling", 5, "rolling coupling to ground speed")
	cmd.Flags().StringVar(&driverName, "driver", "pulse", "driver (idle, constant, pulse, pid)")
	cmd.Flags().Float64Var(&throttle, "throttle", 1, "throttle for constant/pulse drivers")
	cmd.Flags().Float64Var(&brake, "brake", 1, "brake for pulse driver")
	cmd.Flags().Float64Var(&until, "until", 2, "pulse driver switch time")
	cmd.Flags().Float64Var(&kp, "kp", 0.02, "pid kp")
	cmd.Flags().Float64Var(&ki, "ki", 0.01, "pid ki")
	cmd.Flags().Float64Var(&kd, "kd", 0, "pid kd")
	cmd.Flags().Float64Var(&target, "target", 60, "pid target rpm")
}

// resolve treats names ending in .yaml/.yml as files, anything else as a
// preset.
func resolve(name string) (*config.Config, error) {
	if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
		cfg, err := config.Load(name)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return cfg, nil
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
	}
	return cfg, nil
}

// loadScenario starts from the named preset (default flat), replaces it with
// --config when given, then applies the flags that were set explicitly.
func loadScenario(cmd *cobra.Command, args []string) (*config.Config, error) {
	name := "flat"
	if len(args) > 0 {
		name = args[0]
	}
	if configFile != "" {
		name = configFile
	}
	cfg, err := resolve(name)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("sample") {
		cfg.SampleEvery = sampleEvery
	}
	if flags.Changed("speed") {
		cfg.Chassis.ForwardSpeed = forwardSpeed
	}
	if flags.Changed("coupling") {
		cfg.Chassis.RollingCoupling = coupling
	}
	if flags.Changed("driver") {
		cfg.Driver.Name = driverName
		cfg.Driver.Params = nil
	}

	params := map[string]float64{
		"throttle": throttle,
		"brake":    brake,
		"until":    until,
		"kp":       kp,
		"ki":       ki,
		"kd":       kd,
		"target":   target,
	}
	for name, value := range params {
		if !flags.Changed(name) {
			continue
		}
		if cfg.Driver.Params == nil {
			cfg.Driver.Params = make(map[string]float64)
		}
		cfg.Driver.Params[name] = value
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", cfg.Name, err)
	}
	return cfg, nil
}
