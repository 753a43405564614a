package drivetrain

import (
	"errors"
	"log/slog"
	"math"

	"github.com/san-kum/trackdrive/internal/logging"
	"github.com/san-kum/trackdrive/internal/wheel"
)

var (
	ErrEmptyGroup = errors.New("drivetrain: group has no valid members")
	ErrNilMember  = errors.New("drivetrain: nil group member")
)

// Report describes one Distribute call.
type Report struct {
	FactorSum   float64 `json:"factor_sum"`
	SystemState float64 `json:"system_state"`
	Members     int     `json:"members"`
	Airborne    int     `json:"airborne"`
	Skipped     bool    `json:"skipped"`
}

// Group is a fixed set of mechanically coupled wheels.
type Group struct {
	name     string
	members  []*wheel.State
	excluded error

	// scratch, sized once with the group
	factors []float64
	shares  []float64

	log        *slog.Logger
	degenerate logging.Once
	last       Report
}

// NewGroup assembles a group. Members with a non-positive radius or inertia
// are excluded and logged; the findings are kept in Excluded. An error is
// returned only when no member survives or a member is nil.
func NewGroup(name string, members []*wheel.State, log *slog.Logger) (*Group, error) {
	log = logging.OrNop(log).With("group", name)

	valid := make([]*wheel.State, 0, len(members))
	var excluded []error
	for _, w := range members {
		if w == nil {
			return nil, ErrNilMember
		}
		if err := memberError(w); err != nil {
			log.Warn("wheel excluded from torque distribution", "wheel", w.Name, "err", err)
			excluded = append(excluded, err)
			continue
		}
		valid = append(valid, w)
	}
	if len(valid) == 0 {
		return nil, errors.Join(append([]error{ErrEmptyGroup}, excluded...)...)
	}

	return &Group{
		name:     name,
		members:  valid,
		excluded: errors.Join(excluded...),
		factors:  make([]float64, len(valid)),
		shares:   make([]float64, len(valid)),
		log:      log,
	}, nil
}

func memberError(w *wheel.State) error {
	var errs []error
	if !(w.Radius > 0) {
		errs = append(errs, &wheel.ConfigurationError{Wheel: w.Name, Field: "radius", Value: w.Radius, Err: wheel.ErrNonPositiveRadius})
	}
	if !(w.RotationalInertia > 0) {
		errs = append(errs, &wheel.ConfigurationError{Wheel: w.Name, Field: "inertia", Value: w.RotationalInertia, Err: wheel.ErrNonPositiveInertia})
	}
	return errors.Join(errs...)
}

func (g *Group) Name() string { return g.name }

// Members returns the group's wheels in assembly order. The slice must not
// be modified.
func (g *Group) Members() []*wheel.State { return g.members }

// Excluded returns the findings for wheels rejected at assembly.
func (g *Group) Excluded() error { return g.excluded }

// LastReport returns the report of the most recent Distribute call.
func (g *Group) LastReport() Report { return g.last }

// Shares returns the torque shares computed by the last successful
// Distribute, indexed like Members. Faulted members hold 0.
func (g *Group) Shares() []float64 { return g.shares }

// Distribute shares the group-level torques across members and resynchronizes
// their angular velocities. Faulted members are left out. If the factor sum
// is not positive the tick is skipped and every member keeps its last
// torques and velocity.
func (g *Group) Distribute(totalMotorTorque, totalBrakeTorque float64) Report {
	var rep Report
	for i, w := range g.members {
		if w.Faulted {
			g.factors[i] = 0
			continue
		}
		g.factors[i] = w.RotationalInertia / w.Radius
		rep.FactorSum += g.factors[i]
		rep.SystemState += w.AngularVelocity * w.RotationalInertia
		rep.Members++
		if !w.Grounded {
			rep.Airborne++
		}
	}

	if !(rep.FactorSum > 0) || math.IsInf(rep.FactorSum, 0) {
		rep.Skipped = true
		g.degenerate.Do(func() {
			g.log.Warn("degenerate group state, distribution skipped",
				"factor_sum", rep.FactorSum, "members", rep.Members)
		})
		g.last = rep
		return rep
	}
	if g.degenerate.Reset() {
		g.log.Info("distribution resumed", "factor_sum", rep.FactorSum)
	}

	for i, w := range g.members {
		if w.Faulted {
			g.shares[i] = 0
			continue
		}
		share := g.factors[i] / rep.FactorSum
		g.shares[i] = share
		w.MotorTorque = share * totalMotorTorque
		w.BrakeTorque = share * totalBrakeTorque
		w.AngularVelocity = share * rep.SystemState / w.RotationalInertia
	}

	g.last = rep
	return rep
}

// BeltSpeed is the common rim speed the group converges to: the aggregate
// momentum over the factor sum. It is zero for an empty or degenerate group.
func (g *Group) BeltSpeed() float64 {
	var momentum, factorSum float64
	for _, w := range g.members {
		if w.Faulted {
			continue
		}
		momentum += w.Momentum()
		factorSum += w.RotationalInertia / w.Radius
	}
	if !(factorSum > 0) {
		return 0
	}
	return momentum / factorSum
}

// Reference returns the first non-faulted member, or nil.
func (g *Group) Reference() *wheel.State {
	for _, w := range g.members {
		if !w.Faulted {
			return w
		}
	}
	return nil
}

// ReferenceRPM is the spin of the reference member in revolutions per minute.
func (g *Group) ReferenceRPM() float64 {
	if w := g.Reference(); w != nil {
		return w.RPM()
	}
	return 0
}
