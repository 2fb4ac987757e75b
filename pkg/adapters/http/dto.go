package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/seqplan/seqplan/pkg/domain"
)

// Error kinds reported in error responses.
const (
	kindBadRequest     = "bad_request"
	kindInvalidSeq     = "invalid_sequence"
	kindPlanningFailed = "planning_failed"
	kindOverlap        = "overlapping_blend_radii"
	kindNotFound       = "not_found"
	kindNotImplemented = "not_implemented"
	kindInternal       = "internal"
)

// SolveResponse is the body of a successful solve.
type SolveResponse struct {
	ID           string              `json:"id"`
	Trajectories []TrajectoryPayload `json:"trajectories"`
}

// ResultResponse is the body of a stored-result lookup.
type ResultResponse struct {
	ID           string              `json:"id"`
	CreatedAt    time.Time           `json:"created_at"`
	Trajectories []TrajectoryPayload `json:"trajectories"`
}

// TrajectoryPayload is the wire form of a merged trajectory. Waypoint times
// are expressed in seconds rather than nanosecond durations.
type TrajectoryPayload struct {
	Group  string            `json:"group"`
	Points []WaypointPayload `json:"points"`
}

// WaypointPayload is the wire form of a single waypoint.
type WaypointPayload struct {
	Names         []string  `json:"names,omitempty"`
	Positions     []float64 `json:"positions"`
	Velocities    []float64 `json:"velocities,omitempty"`
	TimeFromStart float64   `json:"time_from_start"`
}

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
	Index *int   `json:"index,omitempty"`
}

func trajectoryPayloads(trajectories []*domain.Trajectory) []TrajectoryPayload {
	payloads := make([]TrajectoryPayload, len(trajectories))
	for i, traj := range trajectories {
		points := make([]WaypointPayload, len(traj.Points))
		for j, wp := range traj.Points {
			points[j] = WaypointPayload{
				Names:         wp.State.Joints.Names,
				Positions:     wp.State.Joints.Positions,
				Velocities:    wp.State.Joints.Velocities,
				TimeFromStart: wp.TimeFromStart.Seconds(),
			}
		}
		payloads[i] = TrajectoryPayload{Group: traj.Group, Points: points}
	}
	return payloads
}

func mapError(err error) (int, errorResponse) {
	var (
		negative *domain.NegativeBlendRadiusError
		last     *domain.LastSegmentBlendRadiusError
		conflict *domain.StartStateConflictError
		failed   *domain.PlanningFailedError
		overlap  *domain.OverlappingBlendRadiiError
	)
	switch {
	case errors.As(err, &negative):
		return http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Kind: kindInvalidSeq, Index: ptr(negative.Index)}
	case errors.As(err, &last):
		return http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Kind: kindInvalidSeq}
	case errors.As(err, &conflict):
		return http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Kind: kindInvalidSeq, Index: ptr(conflict.Index)}
	case errors.As(err, &failed):
		return http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Kind: kindPlanningFailed, Index: ptr(failed.Index)}
	case errors.As(err, &overlap):
		return http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Kind: kindOverlap, Index: ptr(overlap.PairIndex)}
	default:
		return http.StatusInternalServerError, errorResponse{Error: err.Error(), Kind: kindInternal}
	}
}

func writeJSON(w http.ResponseWriter, status int, body any, log *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("response encode failed", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, resp errorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

func ptr[T any](v T) *T {
	return &v
}
