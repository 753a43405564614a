package world

import (
	"errors"
	"fmt"
)

// Stage orders the per-tick callbacks.
type Stage int

const (
	StageSuspension Stage = iota
	StageForces
	StageDrivetrain
	StageIntegrate
	StageObserve
	numStages
)

func (s Stage) String() string {
	switch s {
	case StageSuspension:
		return "suspension"
	case StageForces:
		return "forces"
	case StageDrivetrain:
		return "drivetrain"
	case StageIntegrate:
		return "integrate"
	case StageObserve:
		return "observe"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Tick identifies one fixed step. Time is the simulation time at its start.
type Tick struct {
	Step int
	Time float64
	Dt   float64
}

// System is a per-tick callback.
type System func(Tick)

type namedSystem struct {
	name string
	fn   System
}

var (
	ErrNonPositiveDt = errors.New("world: timestep must be positive")
	ErrUnknownStage  = errors.New("world: unknown stage")
)

const DefaultMaxSubsteps = 8

// Scheduler runs registered systems once per fixed tick, stage by stage, in
// registration order within a stage. It is single-threaded.
type Scheduler struct {
	dt   float64
	step int
	time float64
	acc  float64

	// MaxSubsteps bounds how many ticks one Advance may run.
	MaxSubsteps int

	systems [numStages][]namedSystem
}

func NewScheduler(dt float64) (*Scheduler, error) {
	if !(dt > 0) {
		return nil, fmt.Errorf("%w, got %g", ErrNonPositiveDt, dt)
	}
	return &Scheduler{dt: dt, MaxSubsteps: DefaultMaxSubsteps}, nil
}

// Use registers fn in stage. Registering into an unknown stage panics with
// an error wrapping ErrUnknownStage.
func (s *Scheduler) Use(stage Stage, name string, fn System) *Scheduler {
	if stage < 0 || stage >= numStages {
		panic(fmt.Errorf("%w: %v", ErrUnknownStage, stage))
	}
	s.systems[stage] = append(s.systems[stage], namedSystem{name: name, fn: fn})
	return s
}

// Systems lists the names registered in stage.
func (s *Scheduler) Systems(stage Stage) []string {
	if stage < 0 || stage >= numStages {
		return nil
	}
	names := make([]string, len(s.systems[stage]))
	for i, sys := range s.systems[stage] {
		names[i] = sys.name
	}
	return names
}

func (s *Scheduler) Dt() float64   { return s.dt }
func (s *Scheduler) Step() int     { return s.step }
func (s *Scheduler) Time() float64 { return s.time }

// Tick runs one full tick.
func (s *Scheduler) Tick() Tick {
	t := Tick{Step: s.step, Time: s.time, Dt: s.dt}
	for stage := range s.systems {
		for _, sys := range s.systems[stage] {
			sys.fn(t)
		}
	}
	s.step++
	s.time = float64(s.step) * s.dt
	return t
}

// Advance accumulates wall time and runs the whole ticks it covers, up to
// MaxSubsteps. Time beyond that is dropped. It returns the ticks run.
func (s *Scheduler) Advance(elapsed float64) int {
	if elapsed <= 0 {
		return 0
	}
	s.acc += elapsed
	limit := s.MaxSubsteps
	if limit <= 0 {
		limit = DefaultMaxSubsteps
	}
	n := 0
	for s.acc >= s.dt && n < limit {
		s.Tick()
		s.acc -= s.dt
		n++
	}
	if n == limit && s.acc >= s.dt {
		s.acc = 0
	}
	return n
}
