// Package metrics reduces vehicle snapshots to scalar run figures.
package metrics

import (
	"math"

	"github.com/san-kum/trackdrive/internal/vehicle"
)

// TorqueResidual is the largest |sum of shares - total| seen for motor or
// brake torque over all groups and ticks. Should stay at rounding level.
type TorqueResidual struct {
	max float64
}

func NewTorqueResidual() *TorqueResidual { return &TorqueResidual{} }

func (m *TorqueResidual) Name() string { return "torque_residual" }

func (m *TorqueResidual) Observe(s vehicle.Snapshot) {
	for _, g := range s.Groups {
		if g.Report.Skipped {
			continue
		}
		m.max = math.Max(m.max, math.Abs(g.MotorTorqueSum-g.TotalMotorTorque))
		m.max = math.Max(m.max, math.Abs(g.BrakeTorqueSum-g.TotalBrakeTorque))
	}
}

func (m *TorqueResidual) Value() float64 { return m.max }
func (m *TorqueResidual) Reset()         { m.max = 0 }

// MomentumResidual is the largest change in group angular momentum across a
// distribution call.
type MomentumResidual struct {
	max float64
}

func NewMomentumResidual() *MomentumResidual { return &MomentumResidual{} }

func (m *MomentumResidual) Name() string { return "momentum_residual" }

func (m *MomentumResidual) Observe(s vehicle.Snapshot) {
	for _, g := range s.Groups {
		if g.Report.Skipped {
			continue
		}
		m.max = math.Max(m.max, math.Abs(g.MomentumAfter-g.Report.SystemState))
	}
}

func (m *MomentumResidual) Value() float64 { return m.max }
func (m *MomentumResidual) Reset()         { m.max = 0 }

// SkippedTicks counts group distributions skipped as degenerate.
type SkippedTicks struct {
	count int
}

func NewSkippedTicks() *SkippedTicks { return &SkippedTicks{} }

func (m *SkippedTicks) Name() string { return "skipped_ticks" }

func (m *SkippedTicks) Observe(s vehicle.Snapshot) {
	for _, g := range s.Groups {
		if g.Report.Skipped {
			m.count++
		}
	}
}

func (m *SkippedTicks) Value() float64 { return float64(m.count) }
func (m *SkippedTicks) Reset()         { m.count = 0 }
