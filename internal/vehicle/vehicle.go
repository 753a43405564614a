package vehicle

import (
	"errors"
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/trackdrive/internal/drivetrain"
	"github.com/san-kum/trackdrive/internal/logging"
	"github.com/san-kum/trackdrive/internal/suspension"
	"github.com/san-kum/trackdrive/internal/wheel"
	"github.com/san-kum/trackdrive/internal/world"
)

// Input is the driver command for one tick. Throttle is in [-1, 1]; Brake is
// a fraction of each group's MaxBrakeTorque in [0, 1].
type Input struct {
	Throttle float64 `json:"throttle"`
	Brake    float64 `json:"brake"`
}

// Wheel bundles one wheel's state, its suspension model and its joint.
type Wheel struct {
	State    *wheel.State
	Model    *suspension.Model
	Joint    *world.SuspensionJoint
	Group    string
	Excluded bool

	fault logging.Once
}

// Drive is a group with its motor and the figures of its latest tick.
type Drive struct {
	Group *drivetrain.Group
	Spec  GroupSpec

	TotalMotorTorque float64
	TotalBrakeTorque float64
	Report           drivetrain.Report
	MotorTorqueSum   float64
	BrakeTorqueSum   float64
	MomentumAfter    float64
}

// Vehicle couples a chassis body, its wheels and drive groups to a
// fixed-timestep scheduler.
type Vehicle struct {
	spec    Spec
	chassis *world.Body
	wheels  []*Wheel
	drives  []*Drive
	sched   *world.Scheduler
	gravity mgl64.Vec3
	input   Input
	log     *slog.Logger
}

// New assembles the vehicle and registers its per-tick systems.
func New(spec Spec, caster suspension.RayCaster, dt float64, log *slog.Logger) (*Vehicle, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	sched, err := world.NewScheduler(dt)
	if err != nil {
		return nil, err
	}
	log = logging.OrNop(log).With("vehicle", spec.Name)

	chassis := world.NewBody(mgl64.Vec3{0, spec.StartHeight, 0}, spec.ChassisMass)
	chassis.KinematicAxes = [3]bool{true, false, true}
	chassis.Velocity = mgl64.Vec3{0, 0, spec.ForwardSpeed}

	v := &Vehicle{
		spec:    spec,
		chassis: chassis,
		sched:   sched,
		gravity: mgl64.Vec3{0, spec.Gravity, 0},
		log:     log,
	}

	members := make(map[string][]*wheel.State)
	for _, ws := range spec.Wheels {
		w, err := v.buildWheel(ws, caster)
		if err != nil {
			return nil, err
		}
		v.wheels = append(v.wheels, w)
		if w.Group != "" && !w.Excluded {
			members[w.Group] = append(members[w.Group], w.State)
		}
	}

	for _, gs := range spec.Groups {
		if len(members[gs.Name]) == 0 {
			log.Warn("group has no usable wheels", "group", gs.Name)
			continue
		}
		g, err := drivetrain.NewGroup(gs.Name, members[gs.Name], log)
		if err != nil {
			return nil, err
		}
		v.drives = append(v.drives, &Drive{Group: g, Spec: gs})
	}

	v.sched.
		Use(world.StageSuspension, "contact", v.updateContacts).
		Use(world.StageForces, "joints", v.solveJoints).
		Use(world.StageDrivetrain, "distribute", v.distribute).
		Use(world.StageIntegrate, "wheels", v.integrateWheels).
		Use(world.StageIntegrate, "chassis", v.integrateChassis)

	return v, nil
}

func (v *Vehicle) buildWheel(ws WheelSpec, caster suspension.RayCaster) (*Wheel, error) {
	state := wheel.NewState(ws.Config)
	pose := suspension.Pose{
		Origin:      v.chassis.ToWorld(ws.Mount),
		Down:        v.chassis.Down(),
		Orientation: v.chassis.Rotation,
		Scale:       ws.Scale,
	}
	model, err := suspension.New(state, caster, pose, suspension.Options{
		ExcludeMask: v.spec.ExcludeMask,
		Logger:      v.log,
	})
	if err != nil {
		return nil, err
	}
	joint := world.NewSuspensionJoint(model.Joint(), v.chassis, ws.Mount, model.Probe())
	return &Wheel{
		State:    state,
		Model:    model,
		Joint:    joint,
		Group:    ws.Group,
		Excluded: model.Issues() != nil,
	}, nil
}

func (v *Vehicle) Spec() Spec                  { return v.spec }
func (v *Vehicle) Chassis() *world.Body        { return v.chassis }
func (v *Vehicle) Wheels() []*Wheel            { return v.wheels }
func (v *Vehicle) Drives() []*Drive            { return v.drives }
func (v *Vehicle) Scheduler() *world.Scheduler { return v.sched }
func (v *Vehicle) Input() Input                { return v.input }

// SetInput sets the command used from the next tick on.
func (v *Vehicle) SetInput(in Input) {
	v.input = Input{
		Throttle: math.Max(-1, math.Min(1, in.Throttle)),
		Brake:    math.Max(0, math.Min(1, in.Brake)),
	}
}

// Step runs one tick and returns the resulting snapshot.
func (v *Vehicle) Step() Snapshot {
	v.sched.Tick()
	return v.Snapshot()
}

// Issues joins the configuration findings of every wheel.
func (v *Vehicle) Issues() error {
	var errs []error
	for _, w := range v.wheels {
		if err := w.Model.Issues(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (v *Vehicle) updateContacts(world.Tick) {
	down := v.chassis.Down()
	for _, w := range v.wheels {
		w.Model.UpdateContact(w.Joint.Anchor(), down, v.chassis.Rotation)
	}
}

func (v *Vehicle) solveJoints(t world.Tick) {
	for _, w := range v.wheels {
		w.Joint.Solve(t.Dt)
	}
}

func (v *Vehicle) distribute(t world.Tick) {
	for _, w := range v.wheels {
		if !w.State.Faulted && w.State.Valid() && !w.State.Finite() {
			v.faultWheel(w, t)
		}
	}
	for _, d := range v.drives {
		d.TotalMotorTorque = d.Spec.Motor.Torque(v.input.Throttle, d.Group.ReferenceRPM())
		d.TotalBrakeTorque = v.input.Brake * d.Spec.MaxBrakeTorque
		d.Report = d.Group.Distribute(d.TotalMotorTorque, d.TotalBrakeTorque)

		d.MotorTorqueSum, d.BrakeTorqueSum, d.MomentumAfter = 0, 0, 0
		for _, w := range d.Group.Members() {
			if w.Faulted {
				continue
			}
			d.MotorTorqueSum += w.MotorTorque
			d.BrakeTorqueSum += w.BrakeTorque
			d.MomentumAfter += w.Momentum()
		}
	}
}

func (v *Vehicle) integrateWheels(t world.Tick) {
	groundSpeed := v.chassis.Velocity.Z()
	for _, w := range v.wheels {
		s := w.State
		if s.Faulted || !s.Valid() {
			continue
		}
		if !s.Finite() {
			v.faultWheel(w, t)
			continue
		}

		torque := s.MotorTorque
		if s.Grounded && v.spec.RollingCoupling > 0 {
			slip := s.AngularVelocity*s.Radius - groundSpeed
			torque -= v.spec.RollingCoupling * slip * s.Radius
		}
		omega := s.AngularVelocity + torque/s.RotationalInertia*t.Dt

		if s.BrakeTorque > 0 {
			dw := s.BrakeTorque / s.RotationalInertia * t.Dt
			if math.Abs(omega) <= dw {
				omega = 0
			} else {
				omega -= math.Copysign(dw, omega)
			}
		}

		s.AngularVelocity = omega
		if !s.Finite() {
			v.faultWheel(w, t)
		}
	}
}

func (v *Vehicle) faultWheel(w *Wheel, t world.Tick) {
	s := w.State
	w.fault.Do(func() {
		v.log.Error("non-finite wheel output, wheel faulted",
			"wheel", s.Name, "step", t.Step,
			"angular_velocity", s.AngularVelocity, "motor_torque", s.MotorTorque, "brake_torque", s.BrakeTorque)
	})
	s.Faulted = true
	s.AngularVelocity, s.MotorTorque, s.BrakeTorque = 0, 0, 0
}

func (v *Vehicle) integrateChassis(t world.Tick) {
	v.chassis.Integrate(t.Dt, v.gravity)
}
