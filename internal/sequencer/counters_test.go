package sequencer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seqplan/seqplan/pkg/domain"
)

// countingSink records pipeline events for assertions.
type countingSink struct {
	degraded int
	deduped  int
}

func (c *countingSink) BlendDegraded()   { c.degraded++ }
func (c *countingSink) WaypointDeduped() { c.deduped++ }

func TestSolveCountsDegradedBlends(t *testing.T) {
	sink := &countingSink{}
	mgr := NewManager(newFakeModel(), &fakeBuilder{}, nil, WithCounters(sink))

	// A cross-group transition and a solver-less pair both degrade; the
	// final in-group transition with zero radius does not.
	items := []domain.SequenceItem{
		item("manipulator", 0.3, 1, 0, 0),
		item("gripper", 0.2, 5, 5, 5),
		item("gripper", 0, 6, 6, 6),
	}

	_, err := mgr.Solve(t.Context(), nil, newFakePlanner(), domain.SequenceRequest{Items: items})
	require.NoError(t, err)
	assert.Equal(t, 2, sink.degraded)
	assert.Zero(t, sink.deduped)
}

func TestSolveCountsDedupedWaypoints(t *testing.T) {
	merged := &domain.Trajectory{Group: "manipulator", Points: []domain.Waypoint{
		wp([]float64{0, 0, 0}, 0),
		wp([]float64{1, 0, 0}, time.Second),
		wp([]float64{1, 5, 0}, time.Second),
		wp([]float64{2, 0, 0}, 2*time.Second),
	}}
	builder := &fakeBuilder{out: []*domain.Trajectory{merged}}

	sink := &countingSink{}
	mgr := NewManager(newFakeModel(), builder, nil, WithCounters(sink))

	got, err := mgr.Solve(t.Context(), nil, newFakePlanner(),
		domain.SequenceRequest{Items: []domain.SequenceItem{item("manipulator", 0, 1, 0, 0)}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, sink.deduped)
	assert.Zero(t, sink.degraded)
}
