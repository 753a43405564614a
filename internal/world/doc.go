// Package world is a small reference host for the wheel models: layered box
// terrain with ray casting, rigid bodies, the suspension joint that realizes
// a suspension.JointSpec, and a fixed-timestep scheduler.
//
// It exists so scenarios can run end to end from the CLI and tests. A real
// vehicle would plug the suspension and drivetrain packages into its own
// physics engine through the same boundary.
package world
