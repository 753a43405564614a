package vehicle

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/trackdrive/internal/drivetrain"
)

// WheelSample is the read-only view of one wheel after a tick.
type WheelSample struct {
	Name            string     `json:"name"`
	Group           string     `json:"group"`
	Grounded        bool       `json:"grounded"`
	ProbeKinematic  bool       `json:"probe_kinematic"`
	ContactPoint    mgl64.Vec3 `json:"contact_point"`
	ProbePosition   mgl64.Vec3 `json:"probe_position"`
	Compression     float64    `json:"compression"`
	SuspensionForce float64    `json:"suspension_force"`
	AtLimit         bool       `json:"at_limit"`
	AngularVelocity float64    `json:"angular_velocity"`
	MotorTorque     float64    `json:"motor_torque"`
	BrakeTorque     float64    `json:"brake_torque"`
	Faulted         bool       `json:"faulted"`
	Excluded        bool       `json:"excluded"`
}

// GroupSample is the read-only view of one drive group after a tick.
type GroupSample struct {
	Name             string            `json:"name"`
	TotalMotorTorque float64           `json:"total_motor_torque"`
	TotalBrakeTorque float64           `json:"total_brake_torque"`
	MotorTorqueSum   float64           `json:"motor_torque_sum"`
	BrakeTorqueSum   float64           `json:"brake_torque_sum"`
	MomentumAfter    float64           `json:"momentum_after"`
	Report           drivetrain.Report `json:"report"`
	ReferenceRPM     float64           `json:"reference_rpm"`
	TrackRPM         float64           `json:"track_rpm"`
	BeltSpeed        float64           `json:"belt_speed"`
	AngularVelocity  []float64         `json:"angular_velocity"`
}

// Snapshot is the vehicle state at the end of a tick.
type Snapshot struct {
	Step                 int           `json:"step"`
	Time                 float64       `json:"time"`
	ChassisHeight        float64       `json:"chassis_height"`
	ChassisVerticalSpeed float64       `json:"chassis_vertical_speed"`
	Distance             float64       `json:"distance"`
	Input                Input         `json:"input"`
	Wheels               []WheelSample `json:"wheels"`
	Groups               []GroupSample `json:"groups"`
}

// Snapshot copies the current state. The result shares nothing with the
// vehicle.
func (v *Vehicle) Snapshot() Snapshot {
	s := Snapshot{
		Step:                 v.sched.Step(),
		Time:                 v.sched.Time(),
		ChassisHeight:        v.chassis.Position.Y(),
		ChassisVerticalSpeed: v.chassis.Velocity.Y(),
		Distance:             v.chassis.Position.Z(),
		Input:                v.input,
		Wheels:               make([]WheelSample, len(v.wheels)),
		Groups:               make([]GroupSample, len(v.drives)),
	}

	for i, w := range v.wheels {
		st := w.State
		s.Wheels[i] = WheelSample{
			Name:            st.Name,
			Group:           w.Group,
			Grounded:        st.Grounded,
			ProbeKinematic:  w.Model.Probe().Kinematic,
			ContactPoint:    st.ContactPoint,
			ProbePosition:   w.Model.Probe().Position,
			Compression:     w.Model.Compression(),
			SuspensionForce: w.Joint.Force.Len(),
			AtLimit:         w.Joint.AtLimit,
			AngularVelocity: st.AngularVelocity,
			MotorTorque:     st.MotorTorque,
			BrakeTorque:     st.BrakeTorque,
			Faulted:         st.Faulted,
			Excluded:        w.Excluded,
		}
	}

	for i, d := range v.drives {
		members := d.Group.Members()
		omega := make([]float64, 0, len(members))
		for _, w := range members {
			if !w.Faulted {
				omega = append(omega, w.AngularVelocity)
			}
		}
		s.Groups[i] = GroupSample{
			Name:             d.Group.Name(),
			TotalMotorTorque: d.TotalMotorTorque,
			TotalBrakeTorque: d.TotalBrakeTorque,
			MotorTorqueSum:   d.MotorTorqueSum,
			BrakeTorqueSum:   d.BrakeTorqueSum,
			MomentumAfter:    d.MomentumAfter,
			Report:           d.Report,
			ReferenceRPM:     d.Group.ReferenceRPM(),
			TrackRPM:         d.Spec.Track.RPM(d.Group),
			BeltSpeed:        d.Group.BeltSpeed(),
			AngularVelocity:  omega,
		}
	}
	return s
}

// Wheel returns the sample for the named wheel.
func (s Snapshot) Wheel(name string) (WheelSample, bool) {
	for _, w := range s.Wheels {
		if w.Name == name {
			return w, true
		}
	}
	return WheelSample{}, false
}

// GroundedCount counts wheels in contact.
func (s Snapshot) GroundedCount() int {
	n := 0
	for _, w := range s.Wheels {
		if w.Grounded {
			n++
		}
	}
	return n
}
