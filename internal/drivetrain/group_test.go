package drivetrain_test

import (
	"bytes"
	"log/slog"
	"math"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/trackdrive/internal/drivetrain"
	"github.com/san-kum/trackdrive/internal/wheel"
)

const tol = 1e-9

func member(name string, radius, inertia, omega float64) *wheel.State {
	cfg := wheel.DefaultConfig(name)
	cfg.Radius = radius
	cfg.RotationalInertia = inertia
	w := wheel.NewState(cfg)
	w.AngularVelocity = omega
	w.Grounded = true
	return w
}

func mustGroup(members ...*wheel.State) *drivetrain.Group {
	g, err := drivetrain.NewGroup("track", members, nil)
	Expect(err).NotTo(HaveOccurred())
	return g
}

func sum(members []*wheel.State, f func(*wheel.State) float64) float64 {
	total := 0.0
	for _, w := range members {
		total += f(w)
	}
	return total
}

var _ = Describe("Group", func() {
	Describe("two wheels with inertia 1 and 3", func() {
		var a, b *wheel.State

		BeforeEach(func() {
			a = member("a", 0.5, 1.0, 10)
			b = member("b", 0.5, 3.0, 10)
		})

		It("shares torque by inertia over radius and keeps synchronized spin", func() {
			g := mustGroup(a, b)
			rep := g.Distribute(100, 0)

			Expect(rep.Skipped).To(BeFalse())
			Expect(rep.FactorSum).To(BeNumerically("~", 8.0, tol))
			Expect(rep.SystemState).To(BeNumerically("~", 40.0, tol))
			Expect(g.Shares()).To(HaveLen(2))
			Expect(g.Shares()[0]).To(BeNumerically("~", 0.25, tol))
			Expect(g.Shares()[1]).To(BeNumerically("~", 0.75, tol))

			Expect(a.MotorTorque).To(BeNumerically("~", 25, tol))
			Expect(b.MotorTorque).To(BeNumerically("~", 75, tol))
			Expect(a.BrakeTorque).To(BeZero())
			Expect(b.BrakeTorque).To(BeZero())
			Expect(a.AngularVelocity).To(BeNumerically("~", 10, tol))
			Expect(b.AngularVelocity).To(BeNumerically("~", 10, tol))
		})

		It("pulls a slipping wheel to the common rate", func() {
			b.AngularVelocity = 0
			g := mustGroup(a, b)
			rep := g.Distribute(100, 0)

			Expect(rep.SystemState).To(BeNumerically("~", 10.0, tol))
			Expect(a.AngularVelocity).To(BeNumerically("~", 2.5, tol))
			Expect(b.AngularVelocity).To(BeNumerically("~", 2.5, tol))
		})

		It("shares brake torque with the same weights", func() {
			g := mustGroup(a, b)
			g.Distribute(0, 40)

			Expect(a.BrakeTorque).To(BeNumerically("~", 10, tol))
			Expect(b.BrakeTorque).To(BeNumerically("~", 30, tol))
		})
	})

	Describe("conservation", func() {
		var members []*wheel.State

		BeforeEach(func() {
			members = []*wheel.State{
				member("w0", 0.3, 0.4, 12),
				member("w1", 0.45, 1.1, -3),
				member("w2", 0.6, 2.7, 7.5),
				member("w3", 0.5, 0.9, 0),
				member("w4", 0.25, 0.2, 40),
			}
		})

		It("conserves total motor and brake torque", func() {
			g := mustGroup(members...)
			g.Distribute(-315.5, 82.25)

			Expect(sum(members, func(w *wheel.State) float64 { return w.MotorTorque })).To(BeNumerically("~", -315.5, 1e-9))
			Expect(sum(members, func(w *wheel.State) float64 { return w.BrakeTorque })).To(BeNumerically("~", 82.25, 1e-9))
		})

		It("conserves aggregate angular momentum", func() {
			before := sum(members, (*wheel.State).Momentum)
			g := mustGroup(members...)
			rep := g.Distribute(50, 0)

			Expect(rep.SystemState).To(BeNumerically("~", before, 1e-9))
			Expect(sum(members, (*wheel.State).Momentum)).To(BeNumerically("~", before, 1e-9))
		})

		It("converges members to one rim speed", func() {
			g := mustGroup(members...)
			g.Distribute(0, 0)

			rim := members[0].AngularVelocity * members[0].Radius
			for _, w := range members[1:] {
				Expect(w.AngularVelocity * w.Radius).To(BeNumerically("~", rim, 1e-9))
			}
			Expect(g.BeltSpeed()).To(BeNumerically("~", rim, 1e-9))
		})
	})

	Describe("order independence", func() {
		build := func(order []int) map[string][3]float64 {
			base := []*wheel.State{
				member("w0", 0.3, 0.4, 12),
				member("w1", 0.45, 1.1, -3),
				member("w2", 0.6, 2.7, 7.5),
				member("w3", 0.5, 0.9, 0),
			}
			ordered := make([]*wheel.State, len(order))
			for i, idx := range order {
				ordered[i] = base[idx]
			}
			mustGroup(ordered...).Distribute(120, 15)

			out := make(map[string][3]float64, len(base))
			for _, w := range base {
				out[w.Name] = [3]float64{w.MotorTorque, w.BrakeTorque, w.AngularVelocity}
			}
			return out
		}

		DescribeTable("permuted members give the same per-wheel result",
			func(order []int) {
				want := build([]int{0, 1, 2, 3})
				got := build(order)
				for name, w := range want {
					for k := range w {
						Expect(got[name][k]).To(BeNumerically("~", w[k], 1e-9), "wheel %s field %d", name, k)
					}
				}
			},
			Entry("reversed", []int{3, 2, 1, 0}),
			Entry("rotated", []int{1, 2, 3, 0}),
			Entry("swapped pairs", []int{1, 0, 3, 2}),
		)
	})

	Describe("degenerate state", func() {
		It("leaves torques and velocities unchanged when every inertia is zero", func() {
			var buf bytes.Buffer
			log := slog.New(slog.NewTextHandler(&buf, nil))

			a := member("a", 0.5, 1, 4)
			b := member("b", 0.5, 2, 6)
			a.MotorTorque, b.MotorTorque = 11, 22
			a.BrakeTorque, b.BrakeTorque = 1, 2
			g, err := drivetrain.NewGroup("track", []*wheel.State{a, b}, log)
			Expect(err).NotTo(HaveOccurred())

			a.RotationalInertia, b.RotationalInertia = 0, 0
			for i := 0; i < 5; i++ {
				rep := g.Distribute(100, 50)
				Expect(rep.Skipped).To(BeTrue())
			}

			Expect(a.MotorTorque).To(Equal(11.0))
			Expect(b.MotorTorque).To(Equal(22.0))
			Expect(a.BrakeTorque).To(Equal(1.0))
			Expect(a.AngularVelocity).To(Equal(4.0))
			Expect(b.AngularVelocity).To(Equal(6.0))
			Expect(math.IsNaN(a.AngularVelocity)).To(BeFalse())
			Expect(strings.Count(buf.String(), "degenerate group state")).To(Equal(1))

			a.RotationalInertia, b.RotationalInertia = 1, 2
			Expect(g.Distribute(0, 0).Skipped).To(BeFalse())
			Expect(buf.String()).To(ContainSubstring("distribution resumed"))
		})
	})

	Describe("faulted and airborne members", func() {
		It("leaves a faulted member out of the shares", func() {
			a := member("a", 0.5, 1, 10)
			b := member("b", 0.5, 1, 10)
			c := member("c", 0.5, 1, 10)
			g := mustGroup(a, b, c)

			c.Faulted = true
			c.MotorTorque = -1
			rep := g.Distribute(90, 0)

			Expect(rep.Members).To(Equal(2))
			Expect(a.MotorTorque).To(BeNumerically("~", 45, tol))
			Expect(b.MotorTorque).To(BeNumerically("~", 45, tol))
			Expect(c.MotorTorque).To(Equal(-1.0))
			Expect(g.Shares()[2]).To(BeZero())
			Expect(g.Reference()).To(BeIdenticalTo(a))
		})

		It("counts airborne members without changing the algorithm", func() {
			a := member("a", 0.5, 1, 10)
			b := member("b", 0.5, 1, 0)
			b.Grounded = false
			g := mustGroup(a, b)

			rep := g.Distribute(10, 0)
			Expect(rep.Airborne).To(Equal(1))
			Expect(b.AngularVelocity).To(BeNumerically("~", 5, tol))
			Expect(g.LastReport()).To(Equal(rep))
		})
	})

	Describe("assembly", func() {
		It("excludes members with invalid radius or inertia", func() {
			good := member("good", 0.5, 1, 0)
			bad := member("bad", 0, 1, 0)
			g, err := drivetrain.NewGroup("track", []*wheel.State{good, bad}, nil)

			Expect(err).NotTo(HaveOccurred())
			Expect(g.Members()).To(ConsistOf(good))
			Expect(g.Excluded()).To(MatchError(wheel.ErrNonPositiveRadius))
		})

		It("fails when nothing survives", func() {
			_, err := drivetrain.NewGroup("track", []*wheel.State{member("bad", 0.5, 0, 0)}, nil)
			Expect(err).To(MatchError(drivetrain.ErrEmptyGroup))
			Expect(err).To(MatchError(wheel.ErrNonPositiveInertia))
		})

		It("rejects nil members", func() {
			_, err := drivetrain.NewGroup("track", []*wheel.State{nil}, nil)
			Expect(err).To(MatchError(drivetrain.ErrNilMember))
		})
	})
})
