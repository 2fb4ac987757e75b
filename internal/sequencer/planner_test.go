package sequencer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqplan/seqplan/internal/logging"
	"github.com/seqplan/seqplan/pkg/domain"
)

func TestSolveSequenceItems_ChainsEndStates(t *testing.T) {
	planner := newFakePlanner()
	items := []domain.SequenceItem{
		item("manipulator", 0, 1, 1, 1),
		item("gripper", 0, 5, 5, 5),
		item("manipulator", 0, 2, 2, 2),
	}

	responses, err := solveSequenceItems(t.Context(), nil, planner, items, logging.NewNop())
	require.NoError(t, err)
	require.Len(t, responses, 3)
	require.Len(t, planner.requests, 3)

	// First requests of each group keep their own (empty) start state.
	assert.True(t, planner.requests[0].StartState.IsZero())
	assert.True(t, planner.requests[1].StartState.IsZero())

	// The third item revisits "manipulator": its start must be the end of
	// the most recent manipulator response, not of the gripper segment.
	assert.Equal(t, []float64{1, 1, 1}, planner.requests[2].StartState.Joints.Positions)
}

func TestSolveSequenceItems_MostRecentResponseWins(t *testing.T) {
	planner := newFakePlanner()
	items := []domain.SequenceItem{
		item("manipulator", 0, 1, 0, 0),
		item("manipulator", 0, 2, 0, 0),
		item("manipulator", 0, 3, 0, 0),
	}

	_, err := solveSequenceItems(t.Context(), nil, planner, items, logging.NewNop())
	require.NoError(t, err)

	// Each segment starts where the previous one ended.
	assert.Equal(t, []float64{1, 0, 0}, planner.requests[1].StartState.Joints.Positions)
	assert.Equal(t, []float64{2, 0, 0}, planner.requests[2].StartState.Joints.Positions)
}

func TestSolveSequenceItems_FailFast(t *testing.T) {
	planner := newFakePlanner()
	planner.failAt = 1
	planner.failCode = domain.CodeInvalidGoal

	items := []domain.SequenceItem{
		item("manipulator", 0, 1, 0, 0),
		item("manipulator", 0, 2, 0, 0),
		item("manipulator", 0, 3, 0, 0),
	}

	responses, err := solveSequenceItems(t.Context(), nil, planner, items, logging.NewNop())
	assert.Nil(t, responses, "no partial result may survive a failed segment")

	var failed *domain.PlanningFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, 1, failed.Index)
	assert.Equal(t, domain.CodeInvalidGoal, failed.Code)

	// The third item must never reach the planner.
	assert.Len(t, planner.requests, 2)
}

func TestSolveSequenceItems_PlannerErrorWrapped(t *testing.T) {
	planner := newFakePlanner()
	planner.failAt = 0
	planner.err = errors.New("planner crashed")

	_, err := solveSequenceItems(t.Context(), nil, planner,
		[]domain.SequenceItem{item("manipulator", 0, 1, 0, 0)}, logging.NewNop())

	var failed *domain.PlanningFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, 0, failed.Index)
	assert.Equal(t, domain.CodeFailure, failed.Code)
	assert.ErrorContains(t, err, "planner crashed")
}

func TestSolveSequenceItems_ErrorKeepsResponseCode(t *testing.T) {
	planner := newFakePlanner()
	planner.failAt = 0
	planner.failCode = domain.CodeTimedOut
	planner.err = errors.New("deadline exceeded")

	_, err := solveSequenceItems(t.Context(), nil, planner,
		[]domain.SequenceItem{item("manipulator", 0, 1, 0, 0)}, logging.NewNop())

	// A planner that classifies its failure alongside the error keeps the
	// specific code instead of the generic failure.
	var failed *domain.PlanningFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, domain.CodeTimedOut, failed.Code)
	assert.ErrorContains(t, err, "deadline exceeded")
}

func TestSolveSequenceItems_ErrorWithoutCodeFallsBack(t *testing.T) {
	planner := newFakePlanner()
	planner.failAt = 0
	planner.failCode = 0
	planner.err = errors.New("planner crashed")

	_, err := solveSequenceItems(t.Context(), nil, planner,
		[]domain.SequenceItem{item("manipulator", 0, 1, 0, 0)}, logging.NewNop())

	var failed *domain.PlanningFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, domain.CodeFailure, failed.Code)
}

func TestPreviousEndState(t *testing.T) {
	responses := []domain.MotionResponse{
		{Trajectory: &domain.Trajectory{Group: "manipulator", Points: []domain.Waypoint{{State: jointState(1, 0, 0)}}}},
		{Trajectory: &domain.Trajectory{Group: "gripper", Points: []domain.Waypoint{{State: jointState(9, 9, 9)}}}},
		{Trajectory: &domain.Trajectory{Group: "manipulator", Points: []domain.Waypoint{{State: jointState(2, 0, 0)}}}},
	}

	state, ok := previousEndState(responses, "manipulator")
	require.True(t, ok)
	assert.Equal(t, []float64{2, 0, 0}, state.Joints.Positions)

	_, ok = previousEndState(responses, "torso")
	assert.False(t, ok)

	_, ok = previousEndState(nil, "manipulator")
	assert.False(t, ok)
}
