// Package vehicle assembles a chassis, its suspended wheels and their drive
// groups, and steps them on a fixed-timestep scheduler.
//
// Each tick runs, in order: ground contact, joint forces, torque
// distribution, then wheel spin and chassis integration. The chassis moves
// forward at a prescribed speed and is free only along its vertical axis.
package vehicle
