package seqplan

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/seqplan/seqplan/internal/logging"
	"github.com/seqplan/seqplan/internal/sequencer"
	"github.com/seqplan/seqplan/pkg/adapters/blender"
	"github.com/seqplan/seqplan/pkg/domain"
	"github.com/seqplan/seqplan/pkg/observability"
	"github.com/seqplan/seqplan/pkg/ports"
)

// Engine is the high-level entry point for the seqplan library. It wraps the
// internal sequencer and owns the trajectory builder, which is exclusive to
// one in-flight solve at a time.
type Engine struct {
	model   ports.KinematicModel
	builder ports.TrajectoryBuilder
	limits  domain.Limits
	store   ports.ResultStore
	metrics *observability.Metrics
	logger  *slog.Logger

	mu      sync.Mutex
	manager *sequencer.Manager
}

// Result is the outcome of one successful solve.
type Result struct {
	// ID identifies the solve; when a store is configured the result is
	// retrievable under it.
	ID string

	// Trajectories holds one merged trajectory per maximal run of
	// same-group segments, in sequence order.
	Trajectories []*domain.Trajectory
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithBuilder injects a custom trajectory builder, bypassing the default
// transition-window blender.
func WithBuilder(b ports.TrajectoryBuilder) Option {
	return func(e *Engine) {
		e.builder = b
	}
}

// WithLimits sets the aggregated motion limits used to configure the
// default builder.
func WithLimits(limits domain.Limits) Option {
	return func(e *Engine) {
		e.limits = limits
	}
}

// WithStore persists solve results under their IDs.
func WithStore(store ports.ResultStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithMetrics records solve outcomes on the given collector set.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

// New initializes an engine around a kinematic model. Without WithBuilder
// the engine uses the transition-window blender configured with WithLimits.
func New(model ports.KinematicModel, opts ...Option) (*Engine, error) {
	if model == nil {
		return nil, errors.New("kinematic model is required")
	}
	eng := &Engine{model: model}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.builder == nil {
		eng.builder = blender.New(model, eng.limits)
	}
	var managerOpts []sequencer.ManagerOption
	if eng.metrics != nil {
		managerOpts = append(managerOpts, sequencer.WithCounters(eng.metrics))
	}
	eng.manager = sequencer.NewManager(model, eng.builder, eng.logger, managerOpts...)
	return eng, nil
}

// Solve plans the whole sequence and assembles the merged trajectories.
// The call blocks until every segment is planned; the planner service may
// itself block indefinitely, so arm ctx when an upper bound is needed.
// Concurrent calls serialize on the builder.
func (e *Engine) Solve(ctx context.Context, scene domain.Scene, planner ports.PlannerService, req domain.SequenceRequest) (*Result, error) {
	start := time.Now()

	e.mu.Lock()
	trajectories, err := e.manager.Solve(ctx, scene, planner, req)
	e.mu.Unlock()

	e.observe(err, len(req.Items), time.Since(start))
	if err != nil {
		return nil, err
	}

	result := &Result{ID: uuid.NewString(), Trajectories: trajectories}
	if e.store != nil && len(trajectories) > 0 {
		stored := &ports.SolveResult{ID: result.ID, Trajectories: trajectories, CreatedAt: time.Now().UTC()}
		if err := e.store.Save(ctx, stored); err != nil {
			// The solve itself succeeded; a failed save only costs
			// retrievability.
			e.logger.Warn("failed to store solve result", "id", result.ID, "err", err)
		}
	}
	return result, nil
}

// Validate runs the structural checks on a sequence without planning.
func (e *Engine) Validate(req domain.SequenceRequest) error {
	return sequencer.Validate(req.Items)
}

// Limits returns the aggregated limits the engine was configured with.
func (e *Engine) Limits() domain.Limits {
	return e.limits
}

// Model returns the engine's kinematic model.
func (e *Engine) Model() ports.KinematicModel {
	return e.model
}

func (e *Engine) observe(err error, segments int, elapsed time.Duration) {
	if e.metrics == nil {
		return
	}
	e.metrics.ObserveSolve(outcome(err), segments, elapsed)
}

func outcome(err error) string {
	var (
		negative *domain.NegativeBlendRadiusError
		last     *domain.LastSegmentBlendRadiusError
		conflict *domain.StartStateConflictError
		failed   *domain.PlanningFailedError
		overlap  *domain.OverlappingBlendRadiiError
	)
	switch {
	case err == nil:
		return observability.OutcomeOK
	case errors.As(err, &negative), errors.As(err, &last), errors.As(err, &conflict):
		return observability.OutcomeInvalid
	case errors.As(err, &failed):
		return observability.OutcomePlanFailed
	case errors.As(err, &overlap):
		return observability.OutcomeOverlap
	default:
		return observability.OutcomeError
	}
}
