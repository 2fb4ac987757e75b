// Package memory provides a static, table-driven kinematic model built from
// configuration. It serves deployments whose group metadata is known up
// front and every test that needs a ports.KinematicModel.
package memory

import (
	"fmt"

	"github.com/golang/geo/r3"

	"github.com/seqplan/seqplan/pkg/domain"
)

// ForwardKinematics computes the Cartesian position of a frame for a robot
// state of the given group.
type ForwardKinematics func(group, frame string, state domain.RobotState) (r3.Vector, error)

// JointSpec describes one joint of a group.
type JointSpec struct {
	Name  string            `json:"name" yaml:"name"`
	Limit domain.JointLimit `json:"limit,omitempty" yaml:"limit,omitempty"`
}

// GroupSpec describes one kinematic group.
type GroupSpec struct {
	Name     string      `json:"name" yaml:"name"`
	TipFrame string      `json:"tip_frame" yaml:"tip_frame"`
	Solver   bool        `json:"solver" yaml:"solver"`
	Joints   []JointSpec `json:"joints" yaml:"joints"`
}

// Model implements ports.KinematicModel from a static group table.
type Model struct {
	groups map[string]GroupSpec
	fk     ForwardKinematics
}

// Option configures the model.
type Option func(*Model)

// WithForwardKinematics replaces the default kinematics function.
func WithForwardKinematics(fk ForwardKinematics) Option {
	return func(m *Model) {
		m.fk = fk
	}
}

// New builds a model from group specs. Without WithForwardKinematics the
// model uses Cartesian joint kinematics: the first three joint positions are
// taken as the tip's xyz coordinates, which fits gantry-style groups whose
// joints are prismatic axes.
func New(groups []GroupSpec, opts ...Option) (*Model, error) {
	m := &Model{groups: make(map[string]GroupSpec, len(groups)), fk: cartesianJointFK}
	for _, g := range groups {
		if g.Name == "" {
			return nil, fmt.Errorf("group with empty name")
		}
		if _, dup := m.groups[g.Name]; dup {
			return nil, fmt.Errorf("duplicate group %q", g.Name)
		}
		m.groups[g.Name] = g
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// HasGroup reports whether the named group exists.
func (m *Model) HasGroup(group string) bool {
	_, ok := m.groups[group]
	return ok
}

// HasSolver reports whether the group declares an IK solver.
func (m *Model) HasSolver(group string) bool {
	return m.groups[group].Solver
}

// TipFrame returns the group's tip frame identifier.
func (m *Model) TipFrame(group string) (string, error) {
	g, ok := m.groups[group]
	if !ok {
		return "", fmt.Errorf("unknown group %q", group)
	}
	if g.TipFrame == "" {
		return "", fmt.Errorf("group %q has no tip frame", group)
	}
	return g.TipFrame, nil
}

// TipPosition computes the frame position via the configured kinematics.
func (m *Model) TipPosition(group, frame string, state domain.RobotState) (r3.Vector, error) {
	if !m.HasGroup(group) {
		return r3.Vector{}, fmt.Errorf("unknown group %q", group)
	}
	return m.fk(group, frame, state)
}

// JointNames returns the group's joints in declaration order.
func (m *Model) JointNames(group string) ([]string, error) {
	g, ok := m.groups[group]
	if !ok {
		return nil, fmt.Errorf("unknown group %q", group)
	}
	names := make([]string, len(g.Joints))
	for i, j := range g.Joints {
		names[i] = j.Name
	}
	return names, nil
}

// BaseLimits collects the per-joint limits declared across all groups,
// keyed by joint name. This is the robot-description side of limit
// aggregation.
func (m *Model) BaseLimits() map[string]domain.JointLimit {
	out := make(map[string]domain.JointLimit)
	for _, g := range m.groups {
		for _, j := range g.Joints {
			out[j.Name] = j.Limit
		}
	}
	return out
}

func cartesianJointFK(group, frame string, state domain.RobotState) (r3.Vector, error) {
	p := state.Joints.Positions
	if len(p) < 3 {
		return r3.Vector{}, fmt.Errorf("cartesian joint kinematics needs at least 3 positions for group %q, got %d", group, len(p))
	}
	return r3.Vector{X: p[0], Y: p[1], Z: p[2]}, nil
}
