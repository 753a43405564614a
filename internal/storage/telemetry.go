package storage

import (
	"fmt"
	"sort"

	"github.com/san-kum/trackdrive/internal/vehicle"
	"github.com/san-kum/trackdrive/internal/wheel"
)

// TelemetryRow is one wheel at one sampled tick.
type TelemetryRow struct {
	Step            int     `csv:"step"`
	Time            float64 `csv:"time"`
	ChassisHeight   float64 `csv:"chassis_height"`
	Distance        float64 `csv:"distance"`
	Throttle        float64 `csv:"throttle"`
	Brake           float64 `csv:"brake"`
	Wheel           string  `csv:"wheel"`
	Group           string  `csv:"group"`
	Grounded        bool    `csv:"grounded"`
	Compression     float64 `csv:"compression"`
	SuspensionForce float64 `csv:"suspension_force"`
	AngularVelocity float64 `csv:"angular_velocity"`
	RPM             float64 `csv:"rpm"`
	MotorTorque     float64 `csv:"motor_torque"`
	BrakeTorque     float64 `csv:"brake_torque"`
	Faulted         bool    `csv:"faulted"`
	GroupAirborne   int     `csv:"group_airborne"`
	GroupSkipped    bool    `csv:"group_skipped"`
}

func Rows(snaps []vehicle.Snapshot) []TelemetryRow {
	var rows []TelemetryRow
	for _, s := range snaps {
		reports := make(map[string]vehicle.GroupSample, len(s.Groups))
		for _, g := range s.Groups {
			reports[g.Name] = g
		}
		for _, w := range s.Wheels {
			g := reports[w.Group]
			rows = append(rows, TelemetryRow{
				Step:            s.Step,
				Time:            s.Time,
				ChassisHeight:   s.ChassisHeight,
				Distance:        s.Distance,
				Throttle:        s.Input.Throttle,
				Brake:           s.Input.Brake,
				Wheel:           w.Name,
				Group:           w.Group,
				Grounded:        w.Grounded,
				Compression:     w.Compression,
				SuspensionForce: w.SuspensionForce,
				AngularVelocity: w.AngularVelocity,
				RPM:             wheel.RPMFromAngular(w.AngularVelocity),
				MotorTorque:     w.MotorTorque,
				BrakeTorque:     w.BrakeTorque,
				Faulted:         w.Faulted,
				GroupAirborne:   g.Report.Airborne,
				GroupSkipped:    g.Report.Skipped,
			})
		}
	}
	return rows
}

// Wheels lists the distinct wheel names in row order.
func Wheels(rows []TelemetryRow) []string {
	seen := make(map[string]bool)
	var names []string
	for _, r := range rows {
		if !seen[r.Wheel] {
			seen[r.Wheel] = true
			names = append(names, r.Wheel)
		}
	}
	return names
}

var seriesFields = map[string]func(TelemetryRow) float64{
	"time":        func(r TelemetryRow) float64 { return r.Time },
	"height":      func(r TelemetryRow) float64 { return r.ChassisHeight },
	"distance":    func(r TelemetryRow) float64 { return r.Distance },
	"compression": func(r TelemetryRow) float64 { return r.Compression },
	"force":       func(r TelemetryRow) float64 { return r.SuspensionForce },
	"omega":       func(r TelemetryRow) float64 { return r.AngularVelocity },
	"rpm":         func(r TelemetryRow) float64 { return r.RPM },
	"motor":       func(r TelemetryRow) float64 { return r.MotorTorque },
	"brake":       func(r TelemetryRow) float64 { return r.BrakeTorque },
}

func SeriesFields() []string {
	names := make([]string, 0, len(seriesFields))
	for name := range seriesFields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Series extracts one field per sample for the named wheel. An empty wheel
// selects the first wheel.
func Series(rows []TelemetryRow, field, wheelName string) ([]float64, error) {
	fn, ok := seriesFields[field]
	if !ok {
		return nil, fmt.Errorf("unknown field: %s", field)
	}
	if wheelName == "" {
		if len(rows) == 0 {
			return []float64{}, nil
		}
		wheelName = rows[0].Wheel
	}

	out := make([]float64, 0, len(rows))
	for _, r := range rows {
		if r.Wheel == wheelName {
			out = append(out, fn(r))
		}
	}
	if len(out) == 0 && len(rows) > 0 {
		return nil, fmt.Errorf("unknown wheel: %s", wheelName)
	}
	return out, nil
}
