package domain

import (
	"errors"
	"fmt"
)

// ErrResultNotFound is returned when a solve ID cannot be found in the store.
var ErrResultNotFound = errors.New("solve result not found")

// NegativeBlendRadiusError reports a sequence item declaring a blend radius
// below zero.
type NegativeBlendRadiusError struct {
	Index  int
	Radius float64
}

func (e *NegativeBlendRadiusError) Error() string {
	return fmt.Sprintf("blend radius of item %d is negative (%g); all blend radii must be non-negative", e.Index, e.Radius)
}

// LastSegmentBlendRadiusError reports a nonzero blend radius on the final
// sequence item, which has no following segment to blend into.
type LastSegmentBlendRadiusError struct {
	Radius float64
}

func (e *LastSegmentBlendRadiusError) Error() string {
	return fmt.Sprintf("blend radius of last item must be zero, got %g", e.Radius)
}

// StartStateConflictError reports an explicit start state on a segment that
// is not the first segment of its group. Later segments inherit their start
// from the previous segment's computed end state.
type StartStateConflictError struct {
	Group string
	Index int
}

func (e *StartStateConflictError) Error() string {
	return fmt.Sprintf("only the first request of group %q may set a start state; item %d violates the rule", e.Group, e.Index)
}

// PlanningFailedError reports that the planner service could not solve the
// segment at Index. The whole sequence solve is aborted; no partial result
// is returned.
type PlanningFailedError struct {
	Index int
	Code  ErrorCode
	Err   error
}

func (e *PlanningFailedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("could not solve sequence item %d (code %s): %v", e.Index, e.Code, e.Err)
	}
	return fmt.Sprintf("could not solve sequence item %d (code %s)", e.Index, e.Code)
}

// Unwrap exposes the planner's underlying error, if any.
func (e *PlanningFailedError) Unwrap() error {
	return e.Err
}

// OverlappingBlendRadiiError reports that the blend spheres of segments
// PairIndex and PairIndex+1 intersect, making the blended path ambiguous.
type OverlappingBlendRadiiError struct {
	PairIndex int
}

func (e *OverlappingBlendRadiiError) Error() string {
	return fmt.Sprintf("overlapping blend radii between commands [%d] and [%d]", e.PairIndex, e.PairIndex+1)
}
