package domain

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Pose is a Cartesian position and orientation expressed in a named frame.
type Pose struct {
	Position    r3.Vector   `json:"position" yaml:"position"`
	Orientation quat.Number `json:"orientation" yaml:"orientation"`
}

// JointState captures named joint values. All slices are parallel to Names;
// empty slices mean "not specified".
type JointState struct {
	Names      []string  `json:"names,omitempty" yaml:"names,omitempty"`
	Positions  []float64 `json:"positions,omitempty" yaml:"positions,omitempty"`
	Velocities []float64 `json:"velocities,omitempty" yaml:"velocities,omitempty"`
	Efforts    []float64 `json:"efforts,omitempty" yaml:"efforts,omitempty"`
}

// IsZero reports whether no joint field is populated.
// A request whose start state is zero lets the planner pick its own default.
func (s JointState) IsZero() bool {
	return len(s.Names) == 0 && len(s.Positions) == 0 && len(s.Velocities) == 0 && len(s.Efforts) == 0
}

// RobotState is a full robot configuration snapshot.
type RobotState struct {
	Joints JointState `json:"joints" yaml:"joints"`
}

// IsZero reports whether the state carries no information.
func (s RobotState) IsZero() bool {
	return s.Joints.IsZero()
}

// Goal is the target of a single motion request. Exactly one of Joints or
// Pose should be set; planners reject goals they cannot interpret.
type Goal struct {
	// Joints is a joint-space target, parallel to the group's joint names.
	Joints []float64 `json:"joints,omitempty" yaml:"joints,omitempty"`

	// Pose is a Cartesian target for the group's tip frame.
	Pose *Pose `json:"pose,omitempty" yaml:"pose,omitempty"`
}

// MotionRequest is one kinematic planning problem: move a group from a start
// state to a goal.
type MotionRequest struct {
	// Group names the kinematic group this request plans for.
	Group string `json:"group" yaml:"group"`

	// Goal is the target configuration.
	Goal Goal `json:"goal" yaml:"goal"`

	// StartState is the explicit start configuration. A zero value means the
	// start is inherited (from the previous segment of the same group) or
	// defaulted by the planner.
	StartState RobotState `json:"start_state,omitempty" yaml:"start_state,omitempty"`

	// VelocityScaling and AccelerationScaling damp the group's limits,
	// in (0, 1]. Zero means "use 1".
	VelocityScaling     float64 `json:"velocity_scaling,omitempty" yaml:"velocity_scaling,omitempty"`
	AccelerationScaling float64 `json:"acceleration_scaling,omitempty" yaml:"acceleration_scaling,omitempty"`
}

// SequenceItem is one segment of a motion sequence: a planning request plus
// the blend radius into the following segment.
type SequenceItem struct {
	Req MotionRequest `json:"req" yaml:"req"`

	// BlendRadius is the distance (meters) around this segment's endpoint
	// within which the transition into the next segment is smoothed.
	// Zero disables blending. Must be non-negative, and zero on the last item.
	BlendRadius float64 `json:"blend_radius" yaml:"blend_radius"`
}

// SequenceRequest is an ordered list of segments. List order defines
// execution order.
type SequenceRequest struct {
	Items []SequenceItem `json:"items" yaml:"items"`
}

// Scene is the planning scene handed through to the planner service and the
// trajectory builder. The sequencer never inspects it.
type Scene interface{}
