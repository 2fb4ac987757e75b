package ports

import (
	"github.com/golang/geo/r3"

	"github.com/seqplan/seqplan/pkg/domain"
)

// KinematicModel exposes the per-group lookups the sequencer needs: blend
// eligibility and Cartesian tip positions for the overlap check.
type KinematicModel interface {
	// HasGroup reports whether the named group exists in the model.
	HasGroup(group string) bool

	// HasSolver reports whether the group has an inverse-kinematics solver.
	// Blending requires one; groups without a solver degrade to zero radius.
	HasSolver(group string) bool

	// TipFrame returns the group's designated tip frame identifier,
	// typically the end effector link.
	TipFrame(group string) (string, error)

	// TipPosition computes the Cartesian position of the given frame for a
	// robot state of the group.
	TipPosition(group, frame string, state domain.RobotState) (r3.Vector, error)

	// JointNames returns the group's controllable joints in planning order.
	JointNames(group string) ([]string, error)
}
