package sim

import "github.com/san-kum/trackdrive/internal/vehicle"

type Metric interface {
	Name() string
	Observe(s vehicle.Snapshot)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s vehicle.Snapshot)
}

type ObserverFunc func(s vehicle.Snapshot)

func (f ObserverFunc) OnStep(s vehicle.Snapshot) { f(s) }

type Config struct {
	Duration float64
	// SampleEvery keeps every Nth snapshot in the result; 0 keeps all.
	SampleEvery int
	// StopOnFault ends the run with an error when a wheel faults.
	StopOnFault bool
}

type Result struct {
	Snapshots  []vehicle.Snapshot
	Metrics    map[string]float64
	StepsTaken int
	Faults     []string
}

// Final is the last recorded snapshot.
func (r *Result) Final() vehicle.Snapshot {
	if len(r.Snapshots) == 0 {
		return vehicle.Snapshot{}
	}
	return r.Snapshots[len(r.Snapshots)-1]
}
