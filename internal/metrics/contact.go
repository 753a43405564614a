package metrics

import (
	"math"

	"github.com/san-kum/trackdrive/internal/sim"
	"github.com/san-kum/trackdrive/internal/vehicle"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// GroundedRatio is the mean fraction of wheels in contact per tick.
type GroundedRatio struct {
	ratios []float64
}

func NewGroundedRatio() *GroundedRatio { return &GroundedRatio{} }

func (m *GroundedRatio) Name() string { return "grounded_ratio" }

func (m *GroundedRatio) Observe(s vehicle.Snapshot) {
	if len(s.Wheels) == 0 {
		return
	}
	m.ratios = append(m.ratios, float64(s.GroundedCount())/float64(len(s.Wheels)))
}

func (m *GroundedRatio) Value() float64 {
	if len(m.ratios) == 0 {
		return 0
	}
	return stat.Mean(m.ratios, nil)
}

func (m *GroundedRatio) Reset() { m.ratios = m.ratios[:0] }

// VelocitySpread is the mean over ticks and groups of the standard deviation
// of member angular velocities.
type VelocitySpread struct {
	spreads []float64
}

func NewVelocitySpread() *VelocitySpread { return &VelocitySpread{} }

func (m *VelocitySpread) Name() string { return "velocity_spread" }

func (m *VelocitySpread) Observe(s vehicle.Snapshot) {
	for _, g := range s.Groups {
		if len(g.AngularVelocity) < 2 {
			continue
		}
		m.spreads = append(m.spreads, stat.PopStdDev(g.AngularVelocity, nil))
	}
}

func (m *VelocitySpread) Value() float64 {
	if len(m.spreads) == 0 {
		return 0
	}
	return stat.Mean(m.spreads, nil)
}

func (m *VelocitySpread) Reset() { m.spreads = m.spreads[:0] }

// PeakCompression is the largest suspension compression seen on any wheel.
type PeakCompression struct {
	peak    float64
	scratch []float64
}

func NewPeakCompression() *PeakCompression { return &PeakCompression{} }

func (m *PeakCompression) Name() string { return "peak_compression" }

func (m *PeakCompression) Observe(s vehicle.Snapshot) {
	if len(s.Wheels) == 0 {
		return
	}
	m.scratch = m.scratch[:0]
	for _, w := range s.Wheels {
		m.scratch = append(m.scratch, w.Compression)
	}
	m.peak = math.Max(m.peak, floats.Max(m.scratch))
}

func (m *PeakCompression) Value() float64 { return m.peak }
func (m *PeakCompression) Reset()         { m.peak = 0 }

// Default returns a fresh set of every metric in this package.
func Default() []sim.Metric {
	return []sim.Metric{
		NewTorqueResidual(),
		NewMomentumResidual(),
		NewGroundedRatio(),
		NewVelocitySpread(),
		NewPeakCompression(),
		NewSkippedTicks(),
	}
}
