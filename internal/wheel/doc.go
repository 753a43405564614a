// Package wheel holds the per-wheel tunables and physical state shared by the
// suspension and drivetrain models.
//
//   - [Config]: the flat configuration record exposed to vehicle tooling
//   - [State]: radius, inertia, spin, commanded torques and contact state
//   - [ContactProbe]: the marker placed where the wheel touches the ground
//
// A [Config] is validated once at construction time. The per-tick models
// assume [State.Valid] holds for every wheel they are handed.
package wheel
