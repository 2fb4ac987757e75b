package ports

import (
	"context"

	"github.com/seqplan/seqplan/pkg/domain"
)

// PlannerService solves a single motion planning request against a scene.
// Implementations may block for a planner-dependent duration; the sequencer
// imposes no timeout of its own, so callers wanting one must arm the context.
type PlannerService interface {
	// GeneratePlan returns a response whose Code distinguishes success from
	// failure. A non-nil error, or any code other than domain.CodeSuccess,
	// aborts the sequence solve. On success the response trajectory has at
	// least one waypoint and carries the request's group name.
	GeneratePlan(ctx context.Context, scene domain.Scene, req domain.MotionRequest) (domain.MotionResponse, error)
}
