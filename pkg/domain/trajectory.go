package domain

import "time"

// Waypoint is a robot configuration at a point in time along a trajectory.
type Waypoint struct {
	State RobotState `json:"state" yaml:"state"`

	// TimeFromStart is the offset of this waypoint from trajectory start.
	// Within a trajectory it is non-decreasing; execution controllers
	// additionally require it to be strictly increasing.
	TimeFromStart time.Duration `json:"time_from_start" yaml:"time_from_start"`
}

// Trajectory is an ordered waypoint sequence for one kinematic group.
type Trajectory struct {
	Group  string     `json:"group" yaml:"group"`
	Points []Waypoint `json:"points" yaml:"points"`
}

// Size returns the number of waypoints.
func (t *Trajectory) Size() int {
	return len(t.Points)
}

// Last returns the final waypoint. It panics on an empty trajectory; the
// planner contract guarantees at least one waypoint on success.
func (t *Trajectory) Last() Waypoint {
	return t.Points[len(t.Points)-1]
}

// TimeFromStart returns the time offset of waypoint i.
func (t *Trajectory) TimeFromStart(i int) time.Duration {
	return t.Points[i].TimeFromStart
}

// RemovePoint deletes the waypoint at index i, preserving order.
func (t *Trajectory) RemovePoint(i int) {
	t.Points = append(t.Points[:i], t.Points[i+1:]...)
}

// ErrorCode classifies the outcome of a single planning request.
type ErrorCode int32

const (
	CodeSuccess        ErrorCode = 1
	CodeFailure        ErrorCode = -1
	CodeInvalidGoal    ErrorCode = -2
	CodeInvalidGroup   ErrorCode = -3
	CodeTimedOut       ErrorCode = -4
	CodeSceneInvalid   ErrorCode = -5
	CodeLimitsViolated ErrorCode = -6
)

// String returns a short diagnostic name for the code.
func (c ErrorCode) String() string {
	switch c {
	case CodeSuccess:
		return "success"
	case CodeFailure:
		return "failure"
	case CodeInvalidGoal:
		return "invalid_goal"
	case CodeInvalidGroup:
		return "invalid_group"
	case CodeTimedOut:
		return "timed_out"
	case CodeSceneInvalid:
		return "scene_invalid"
	case CodeLimitsViolated:
		return "limits_violated"
	default:
		return "unknown"
	}
}

// MotionResponse is the result of solving one sequence item. Immutable once
// created; downstream stages hold references, not copies.
type MotionResponse struct {
	Trajectory *Trajectory
	Code       ErrorCode
}
