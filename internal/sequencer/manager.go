// Package sequencer turns an ordered list of motion requests into continuous
// per-group trajectories: it validates the list, drives the planner service
// across it with end-state chaining, checks blend-sphere geometry, and feeds
// the trajectory builder.
package sequencer

import (
	"context"
	"log/slog"

	"github.com/seqplan/seqplan/internal/logging"
	"github.com/seqplan/seqplan/pkg/domain"
	"github.com/seqplan/seqplan/pkg/ports"
)

// Counters receives countable pipeline events. Implementations must be safe
// for use from a single solve at a time; the manager never calls them
// concurrently.
type Counters interface {
	// BlendDegraded is called once per transition whose requested radius
	// was reset to zero instead of failing the solve.
	BlendDegraded()

	// WaypointDeduped is called once per waypoint removed for sharing its
	// predecessor's timestamp.
	WaypointDeduped()
}

type nopCounters struct{}

func (nopCounters) BlendDegraded()   {}
func (nopCounters) WaypointDeduped() {}

// Manager owns one solve pipeline. The model is read-only and shared; the
// builder is mutated during a solve, so a Manager must not run concurrent
// Solve calls without external synchronization.
type Manager struct {
	model    ports.KinematicModel
	builder  ports.TrajectoryBuilder
	log      *slog.Logger
	counters Counters
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithCounters reports pipeline events to the given sink.
func WithCounters(c Counters) ManagerOption {
	return func(m *Manager) {
		m.counters = c
	}
}

// NewManager wires a manager from its collaborators. A nil logger discards
// diagnostics.
func NewManager(model ports.KinematicModel, builder ports.TrajectoryBuilder, log *slog.Logger, opts ...ManagerOption) *Manager {
	if log == nil {
		log = logging.NewNop()
	}
	m := &Manager{model: model, builder: builder, log: log, counters: nopCounters{}}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Solve runs the full pipeline for one sequence request and returns the
// merged trajectories, one per maximal run of same-group segments.
//
// Stages, in order: structural validation, fail-fast sequential planning,
// blend radius resolution, overlap checking, assembly with duplicate
// timestamp removal. Every returned error is terminal for this call; nothing
// is retried internally.
func (m *Manager) Solve(ctx context.Context, scene domain.Scene, planner ports.PlannerService,
	req domain.SequenceRequest) ([]*domain.Trajectory, error) {
	if len(req.Items) == 0 {
		return nil, nil
	}

	if err := Validate(req.Items); err != nil {
		return nil, err
	}

	responses, err := solveSequenceItems(ctx, scene, planner, req.Items, m.log)
	if err != nil {
		return nil, err
	}

	radii := extractBlendRadii(m.model, req.Items, m.log, m.counters)
	if err := checkOverlappingRadii(m.model, responses, radii); err != nil {
		return nil, err
	}

	return assemble(scene, m.builder, responses, radii, m.log, m.counters)
}
