package sequencer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqplan/seqplan/pkg/domain"
)

func TestManagerSolve_EmptyRequest(t *testing.T) {
	mgr := NewManager(newFakeModel(), &fakeBuilder{}, nil)

	got, err := mgr.Solve(t.Context(), nil, newFakePlanner(), domain.SequenceRequest{})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestManagerSolve_SingleItem(t *testing.T) {
	builder := &fakeBuilder{}
	mgr := NewManager(newFakeModel(), builder, nil)

	req := domain.SequenceRequest{Items: []domain.SequenceItem{
		item("manipulator", 0, 1, 2, 3),
	}}

	got, err := mgr.Solve(t.Context(), nil, newFakePlanner(), req)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []float64{0}, builder.radii, "a lone segment gets no incoming blend")
	assert.Equal(t, "manipulator", got[0].Group)
}

func TestManagerSolve_LastSegmentRadiusRejected(t *testing.T) {
	mgr := NewManager(newFakeModel(), &fakeBuilder{}, nil)

	req := domain.SequenceRequest{Items: []domain.SequenceItem{
		item("manipulator", 0, 1, 0, 0),
		item("manipulator", 0.5, 2, 0, 0),
	}}

	_, err := mgr.Solve(t.Context(), nil, newFakePlanner(), req)
	var lastErr *domain.LastSegmentBlendRadiusError
	require.ErrorAs(t, err, &lastErr)
}

func TestManagerSolve_StartStateConflictRejected(t *testing.T) {
	mgr := NewManager(newFakeModel(), &fakeBuilder{}, nil)

	req := domain.SequenceRequest{Items: []domain.SequenceItem{
		item("manipulator", 0, 1, 0, 0),
		item("manipulator", 0, 2, 0, 0),
	}}
	req.Items[1].Req.StartState = jointState(9, 9, 9)

	_, err := mgr.Solve(t.Context(), nil, newFakePlanner(), req)
	var conflict *domain.StartStateConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestManagerSolve_OverlappingRadiiRejected(t *testing.T) {
	mgr := NewManager(newFakeModel(), &fakeBuilder{}, nil)

	// Three same-group segments; endpoints of segments 0 and 1 end up 8.0
	// apart (fake planner makes the goal the endpoint), radii sum to 10.0.
	req := domain.SequenceRequest{Items: []domain.SequenceItem{
		item("manipulator", 5, 0, 0, 0),
		item("manipulator", 5, 8, 0, 0),
		item("manipulator", 0, 30, 0, 0),
	}}

	_, err := mgr.Solve(t.Context(), nil, newFakePlanner(), req)
	var overlap *domain.OverlappingBlendRadiiError
	require.ErrorAs(t, err, &overlap)
	assert.Equal(t, 0, overlap.PairIndex)
}

func TestManagerSolve_CrossGroupRadiiDegradeInsteadOfOverlap(t *testing.T) {
	builder := &fakeBuilder{}
	mgr := NewManager(newFakeModel(), builder, nil)

	// Same geometry as the overlap case, but segment 1 targets another
	// group: the resolver zeroes the radii, so no overlap can trigger.
	req := domain.SequenceRequest{Items: []domain.SequenceItem{
		item("manipulator", 5, 0, 0, 0),
		item("gripper", 5, 8, 0, 0),
		item("manipulator", 0, 8.5, 0, 0),
	}}

	got, err := mgr.Solve(t.Context(), nil, newFakePlanner(), req)
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, []float64{0, 0, 0}, builder.radii)
}

func TestManagerSolve_BlendedHappyPath(t *testing.T) {
	builder := &fakeBuilder{}
	mgr := NewManager(newFakeModel(), builder, nil)

	req := domain.SequenceRequest{Items: []domain.SequenceItem{
		item("manipulator", 0.2, 1, 0, 0),
		item("manipulator", 0.2, 30, 0, 0),
		item("manipulator", 0, 60, 0, 0),
	}}

	got, err := mgr.Solve(t.Context(), nil, newFakePlanner(), req)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []float64{0, 0.2, 0.2}, builder.radii)
}
