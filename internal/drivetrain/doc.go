// Package drivetrain couples a set of wheels that share one driven output,
// such as the road wheels under a track belt.
//
// Each tick a [Group] receives a single total motor torque and brake torque
// and fans them out in proportion to each member's inertia per unit radius.
// In the same pass it redistributes the group's aggregate angular momentum by
// those shares, which pulls any wheel that drifted (slip, airborne spin) back
// to the common rim speed. This is an algebraic stand-in for a rigid coupling
// constraint with a fixed per-tick cost.
//
// A Group is not safe for concurrent use. Membership is fixed at assembly.
package drivetrain
