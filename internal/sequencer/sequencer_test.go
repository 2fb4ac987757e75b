package sequencer

import (
	"context"
	"fmt"
	"time"

	"github.com/golang/geo/r3"

	"github.com/seqplan/seqplan/pkg/domain"
)

// Shared fakes for the sequencer tests. The fake model treats the first
// three joint positions of a state as the tip's xyz coordinates, which keeps
// overlap geometry easy to stage.

type fakeGroup struct {
	solver bool
	tip    string
	joints []string
}

type fakeModel struct {
	groups map[string]fakeGroup
}

func newFakeModel() *fakeModel {
	return &fakeModel{groups: map[string]fakeGroup{
		"manipulator": {solver: true, tip: "tool0", joints: []string{"j1", "j2", "j3"}},
		"gripper":     {solver: false, tip: "finger", joints: []string{"g1", "g2", "g3"}},
	}}
}

func (m *fakeModel) HasGroup(group string) bool {
	_, ok := m.groups[group]
	return ok
}

func (m *fakeModel) HasSolver(group string) bool {
	return m.groups[group].solver
}

func (m *fakeModel) TipFrame(group string) (string, error) {
	g, ok := m.groups[group]
	if !ok {
		return "", fmt.Errorf("unknown group %q", group)
	}
	return g.tip, nil
}

func (m *fakeModel) TipPosition(group, frame string, state domain.RobotState) (r3.Vector, error) {
	p := state.Joints.Positions
	if len(p) < 3 {
		return r3.Vector{}, fmt.Errorf("state for group %q has fewer than 3 positions", group)
	}
	return r3.Vector{X: p[0], Y: p[1], Z: p[2]}, nil
}

func (m *fakeModel) JointNames(group string) ([]string, error) {
	g, ok := m.groups[group]
	if !ok {
		return nil, fmt.Errorf("unknown group %q", group)
	}
	return g.joints, nil
}

// fakePlanner produces a two-point trajectory from the request's start state
// to its joint goal, and records every request it sees.
type fakePlanner struct {
	requests []domain.MotionRequest
	failAt   int // index at which to fail; -1 never fails
	failCode domain.ErrorCode
	err      error
}

func newFakePlanner() *fakePlanner {
	return &fakePlanner{failAt: -1, failCode: domain.CodeFailure}
}

func (p *fakePlanner) GeneratePlan(ctx context.Context, scene domain.Scene, req domain.MotionRequest) (domain.MotionResponse, error) {
	idx := len(p.requests)
	p.requests = append(p.requests, req)

	if idx == p.failAt {
		if p.err != nil {
			return domain.MotionResponse{Code: p.failCode}, p.err
		}
		return domain.MotionResponse{Code: p.failCode}, nil
	}

	start := req.StartState.Joints.Positions
	if len(start) == 0 {
		start = make([]float64, len(req.Goal.Joints))
	}
	traj := &domain.Trajectory{
		Group: req.Group,
		Points: []domain.Waypoint{
			{State: jointState(start...), TimeFromStart: 0},
			{State: jointState(req.Goal.Joints...), TimeFromStart: time.Second},
		},
	}
	return domain.MotionResponse{Trajectory: traj, Code: domain.CodeSuccess}, nil
}

// fakeBuilder records appended segments and returns them unmerged, letting
// the tests inspect the exact radii the assembler fed in.
type fakeBuilder struct {
	resets int
	radii  []float64
	trajs  []*domain.Trajectory
	out    []*domain.Trajectory // overrides Build output when set
	err    error
}

func (b *fakeBuilder) Reset() {
	b.resets++
	b.radii = nil
	b.trajs = nil
}

func (b *fakeBuilder) Append(scene domain.Scene, traj *domain.Trajectory, blendRadius float64) error {
	b.trajs = append(b.trajs, traj)
	b.radii = append(b.radii, blendRadius)
	return b.err
}

func (b *fakeBuilder) Build() ([]*domain.Trajectory, error) {
	if b.out != nil {
		return b.out, nil
	}
	return b.trajs, nil
}

func jointState(positions ...float64) domain.RobotState {
	names := make([]string, len(positions))
	for i := range names {
		names[i] = fmt.Sprintf("j%d", i+1)
	}
	return domain.RobotState{Joints: domain.JointState{Names: names, Positions: positions}}
}

func item(group string, radius float64, goal ...float64) domain.SequenceItem {
	return domain.SequenceItem{
		Req:         domain.MotionRequest{Group: group, Goal: domain.Goal{Joints: goal}},
		BlendRadius: radius,
	}
}
