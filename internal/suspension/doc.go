// Package suspension places each wheel's contact probe by ray casting along
// the wheel's down axis once per fixed tick, and describes the constraint the
// host engine uses to turn probe displacement into spring, damper and lateral
// grip forces.
//
// The model computes no forces itself. [NewJointSpec] captures the
// constraint parameters once at wheel creation; [Model.UpdateContact] only
// decides grounded versus airborne and writes the probe pose.
package suspension
