package sim

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/trackdrive/internal/driver"
	"github.com/san-kum/trackdrive/internal/logging"
	"github.com/san-kum/trackdrive/internal/vehicle"
)

type Simulator struct {
	vehicle   *vehicle.Vehicle
	driver    driver.Driver
	metrics   []Metric
	observers []Observer
	log       *slog.Logger
}

func New(v *vehicle.Vehicle, d driver.Driver, log *slog.Logger) *Simulator {
	return &Simulator{
		vehicle:   v,
		driver:    d,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		log:       logging.OrNop(log),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Vehicle() *vehicle.Vehicle { return s.vehicle }

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	dt := s.vehicle.Scheduler().Dt()
	steps := int(math.Round(cfg.Duration / dt))
	every := cfg.SampleEvery
	if every <= 0 {
		every = 1
	}

	result := &Result{
		Snapshots: make([]vehicle.Snapshot, 0, steps/every+2),
		Metrics:   make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	snap := s.vehicle.Snapshot()
	result.Snapshots = append(result.Snapshots, snap)
	faulted := make(map[string]bool)

	s.log.Debug("run started", "steps", steps, "dt", dt)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			s.finish(result)
			return result, ctx.Err()
		default:
		}

		s.vehicle.SetInput(s.driver.Command(snap))
		snap = s.vehicle.Step()
		result.StepsTaken++

		for _, m := range s.metrics {
			m.Observe(snap)
		}
		for _, obs := range s.observers {
			obs.OnStep(snap)
		}

		if (i+1)%every == 0 || i == steps-1 {
			result.Snapshots = append(result.Snapshots, snap)
		}

		for _, w := range snap.Wheels {
			if !w.Faulted || faulted[w.Name] {
				continue
			}
			faulted[w.Name] = true
			result.Faults = append(result.Faults, w.Name)
			if cfg.StopOnFault {
				s.finish(result)
				return result, &SimulationError{Step: snap.Step, Time: snap.Time, Wheel: w.Name, Wrapped: ErrWheelFault}
			}
		}
	}

	s.finish(result)
	s.log.Debug("run finished", "steps", result.StepsTaken, "faults", len(result.Faults))
	return result, nil
}

func (s *Simulator) finish(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) validateConfig(cfg Config) error {
	if s.driver == nil {
		return ErrNilDriver
	}
	if !(cfg.Duration > 0) {
		return fmt.Errorf("%w, got %f", ErrInvalidDuration, cfg.Duration)
	}
	return nil
}
