package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/trackdrive/internal/drivetrain"
	"github.com/san-kum/trackdrive/internal/wheel"
)

// Presets build a fresh scenario on each call.
var Presets = map[string]func() *Config{
	"flat":  flat,
	"bumps": bumps,
	"gap":   gap,
	"tank":  tank,
}

func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func floor() BoxConfig {
	return BoxConfig{Name: "floor", Min: [3]float64{-20, -1, -20}, Max: [3]float64{20, 0, 400}}
}

func defaultWheel(name string, x, z float64, group string) WheelConfig {
	return WheelConfig{
		Config: wheel.DefaultConfig(name),
		Mount:  [3]float64{x, 0, z},
		Group:  group,
	}
}

func sideGroups(torque, rpm, brake float64) []GroupConfig {
	return []GroupConfig{
		{Name: "left", Motor: drivetrain.Motor{MaxTorque: torque, MaxRPM: rpm}, Track: drivetrain.Track{SpeedMult: 1}, MaxBrakeTorque: brake},
		{Name: "right", Motor: drivetrain.Motor{MaxTorque: torque, MaxRPM: rpm}, Track: drivetrain.Track{SpeedMult: 1}, MaxBrakeTorque: brake},
	}
}

// four default wheels, static equilibrium near 0.245 compression
func flat() *Config {
	return &Config{
		Name:         "flat",
		Dt:           DefaultDt,
		Duration:     DefaultDuration,
		SampleEvery:  DefaultSampleEvery,
		Gravity:      DefaultGravity,
		IgnoreLayers: []int{IgnoredLayer},
		Chassis: ChassisConfig{
			Mass:            DefaultMass,
			StartHeight:     1.75,
			ForwardSpeed:    2,
			RollingCoupling: 5,
		},
		Groups: sideGroups(200, 600, 100),
		Wheels: []WheelConfig{
			defaultWheel("front_left", -1, 1.5, "left"),
			defaultWheel("rear_left", -1, -1.5, "left"),
			defaultWheel("front_right", 1, 1.5, "right"),
			defaultWheel("rear_right", 1, -1.5, "right"),
		},
		Terrain: []BoxConfig{floor()},
		Driver: DriverConfig{
			Name:   "pulse",
			Params: map[string]float64{"throttle": 1, "brake": 1, "until": 6},
		},
	}
}

func bumps() *Config {
	cfg := flat()
	cfg.Name = "bumps"
	cfg.Chassis.ForwardSpeed = 3
	for i := 0; i < 6; i++ {
		z := 6 + float64(i)*4
		cfg.Terrain = append(cfg.Terrain, BoxConfig{
			Name: fmt.Sprintf("bump_%d", i),
			Min:  [3]float64{-20, 0, z},
			Max:  [3]float64{20, 0.3, z + 0.8},
		})
	}
	return cfg
}

// The floor stops short of z=8 and resumes at z=10. A layer 26 plate spans
// the gap; wheel rays ignore it.
func gap() *Config {
	cfg := flat()
	cfg.Name = "gap"
	cfg.Chassis.ForwardSpeed = 4
	cfg.Duration = 6
	cfg.Terrain = []BoxConfig{
		{Name: "near", Min: [3]float64{-20, -1, -20}, Max: [3]float64{20, 0, 8}},
		{Name: "far", Min: [3]float64{-20, -1, 10}, Max: [3]float64{20, 0, 400}},
		{Name: "sensor_plate", Min: [3]float64{-20, -0.05, 8}, Max: [3]float64{20, 0, 10}, Layer: IgnoredLayer},
	}
	cfg.Driver = DriverConfig{Name: "constant", Params: map[string]float64{"throttle": 0.5}}
	return cfg
}

// Two tracks of five wheels each. Sprocket and idler differ from the road
// wheels so the shares are uneven.
func tank() *Config {
	cfg := flat()
	cfg.Name = "tank"
	cfg.Chassis.Mass = 600
	cfg.Chassis.StartHeight = 1.7
	cfg.Chassis.ForwardSpeed = 1.5
	cfg.Chassis.RollingCoupling = 8
	cfg.Groups = sideGroups(800, 400, 400)
	cfg.Groups[0].Track.SpeedMult = 1.2
	cfg.Groups[1].Track.SpeedMult = 1.2

	cfg.Wheels = nil
	for _, side := range []struct {
		name string
		x    float64
	}{{"left", -1.2}, {"right", 1.2}} {
		for i, z := range []float64{2.4, 1.2, 0, -1.2, -2.4} {
			w := defaultWheel(fmt.Sprintf("%s_%d", side.name, i), side.x, z, side.name)
			switch i {
			case 0:
				w.Name = side.name + "_sprocket"
				w.Radius, w.RotationalInertia = 0.4, 2
			case 4:
				w.Name = side.name + "_idler"
				w.Radius, w.RotationalInertia = 0.35, 0.8
			default:
				w.RotationalInertia = 1.5
			}
			cfg.Wheels = append(cfg.Wheels, w)
		}
	}
	cfg.Driver = DriverConfig{Name: "pid", Params: map[string]float64{"kp": 0.02, "ki": 0.01, "target": 60}}
	return cfg
}
