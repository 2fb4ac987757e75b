// Package ptp implements a joint-space point-to-point planner: all joints
// start and stop together on a shared trapezoidal velocity profile, scaled
// so the slowest joint dictates the pace. It implements ports.PlannerService
// for deployments without an external planning stack and for the CLI's
// offline plan command.
package ptp

import (
	"context"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/seqplan/seqplan/pkg/domain"
	"github.com/seqplan/seqplan/pkg/ports"
)

const (
	defaultMaxVelocity     = 1.0 // rad/s, joints without a configured bound
	defaultMaxAcceleration = 2.0 // rad/s^2
	defaultSampleStep      = 100 * time.Millisecond
)

// Planner plans synchronized joint-space point-to-point motions.
type Planner struct {
	model  ports.KinematicModel
	limits domain.Limits
	step   time.Duration
}

// Option configures the planner.
type Option func(*Planner)

// WithSampleStep sets the trajectory sampling interval.
func WithSampleStep(step time.Duration) Option {
	return func(p *Planner) {
		p.step = step
	}
}

// New creates a planner bound to a kinematic model and aggregated limits.
func New(model ports.KinematicModel, limits domain.Limits, opts ...Option) *Planner {
	p := &Planner{model: model, limits: limits, step: defaultSampleStep}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GeneratePlan solves one joint-space request. Failures are reported through
// the response code; the error return is reserved for infrastructure faults.
func (p *Planner) GeneratePlan(ctx context.Context, scene domain.Scene, req domain.MotionRequest) (domain.MotionResponse, error) {
	if err := ctx.Err(); err != nil {
		return domain.MotionResponse{Code: domain.CodeTimedOut}, err
	}

	if !p.model.HasGroup(req.Group) {
		return domain.MotionResponse{Code: domain.CodeInvalidGroup}, nil
	}
	names, err := p.model.JointNames(req.Group)
	if err != nil {
		return domain.MotionResponse{Code: domain.CodeInvalidGroup}, nil
	}

	goal := req.Goal.Joints
	if len(goal) == 0 {
		// Cartesian goals need an IK pass this planner does not have.
		return domain.MotionResponse{Code: domain.CodeInvalidGoal}, nil
	}
	if len(goal) != len(names) {
		return domain.MotionResponse{Code: domain.CodeInvalidGoal}, nil
	}

	start := req.StartState.Joints.Positions
	if len(start) == 0 {
		start = make([]float64, len(names))
	}
	if len(start) != len(names) {
		return domain.MotionResponse{Code: domain.CodeInvalidGoal}, nil
	}

	profile := p.leadAxisProfile(names, start, goal, req)
	traj := p.sample(req.Group, names, start, goal, profile)
	return domain.MotionResponse{Trajectory: traj, Code: domain.CodeSuccess}, nil
}

// trapezoid is a normalized velocity profile over path parameter s in [0,1].
type trapezoid struct {
	accel  float64 // normalized acceleration
	cruise float64 // normalized cruise velocity
	tAcc   float64 // seconds spent accelerating (== decelerating)
	tFlat  float64 // seconds at cruise velocity
}

func (tr trapezoid) duration() float64 {
	return 2*tr.tAcc + tr.tFlat
}

// at returns the path parameter s at time t.
func (tr trapezoid) at(t float64) float64 {
	switch {
	case t <= 0:
		return 0
	case t < tr.tAcc:
		return 0.5 * tr.accel * t * t
	case t < tr.tAcc+tr.tFlat:
		return 0.5*tr.accel*tr.tAcc*tr.tAcc + tr.cruise*(t-tr.tAcc)
	case t < tr.duration():
		rem := tr.duration() - t
		return 1 - 0.5*tr.accel*rem*rem
	default:
		return 1
	}
}

// leadAxisProfile finds the joint that constrains the motion most and builds
// the shared profile from its limits. All deltas are normalized against the
// lead axis so every joint finishes at the same instant.
func (p *Planner) leadAxisProfile(names []string, start, goal []float64, req domain.MotionRequest) trapezoid {
	velScale := scaling(req.VelocityScaling)
	accScale := scaling(req.AccelerationScaling)

	// Normalized bounds: the admissible rate of the shared path parameter.
	vNorm := math.Inf(1)
	aNorm := math.Inf(1)
	for i, name := range names {
		delta := math.Abs(goal[i] - start[i])
		if delta == 0 {
			continue
		}
		vMax, aMax := p.jointBounds(name)
		vNorm = math.Min(vNorm, velScale*vMax/delta)
		aNorm = math.Min(aNorm, accScale*aMax/delta)
	}
	if math.IsInf(vNorm, 1) {
		// Zero-displacement request: a single-instant profile.
		return trapezoid{accel: 1, cruise: 1}
	}

	tAcc := vNorm / aNorm
	if 0.5*aNorm*tAcc*tAcc*2 >= 1 {
		// Triangle profile: cruise velocity is never reached.
		tAcc = math.Sqrt(1 / aNorm)
		return trapezoid{accel: aNorm, cruise: aNorm * tAcc, tAcc: tAcc}
	}
	tFlat := (1 - aNorm*tAcc*tAcc) / vNorm
	return trapezoid{accel: aNorm, cruise: vNorm, tAcc: tAcc, tFlat: tFlat}
}

func (p *Planner) jointBounds(name string) (vMax, aMax float64) {
	vMax, aMax = defaultMaxVelocity, defaultMaxAcceleration
	if limit, ok := p.limits.Joints[name]; ok {
		if limit.HasVelocity {
			vMax = limit.MaxVelocity
		}
		if limit.HasAcceleration {
			aMax = limit.MaxAcceleration
		}
	}
	return vMax, aMax
}

func (p *Planner) sample(group string, names []string, start, goal []float64, profile trapezoid) *domain.Trajectory {
	total := profile.duration()
	delta := make([]float64, len(start))
	floats.SubTo(delta, goal, start)

	traj := &domain.Trajectory{Group: group}
	step := p.step.Seconds()
	for i := 0; float64(i)*step < total; i++ {
		t := float64(i) * step
		traj.Points = append(traj.Points, waypointAt(names, start, delta, profile.at(t), t))
	}
	// Land exactly on the goal.
	traj.Points = append(traj.Points, waypointAt(names, start, delta, 1, total))
	return traj
}

func waypointAt(names []string, start, delta []float64, s, t float64) domain.Waypoint {
	pos := make([]float64, len(start))
	floats.AddScaledTo(pos, start, s, delta)
	return domain.Waypoint{
		State: domain.RobotState{Joints: domain.JointState{
			Names:     append([]string(nil), names...),
			Positions: pos,
		}},
		TimeFromStart: time.Duration(t * float64(time.Second)),
	}
}

func scaling(v float64) float64 {
	if v <= 0 || v > 1 {
		return 1
	}
	return v
}

var _ ports.PlannerService = (*Planner)(nil)

// String identifies the planner in diagnostics.
func (p *Planner) String() string {
	return fmt.Sprintf("ptp(step=%s)", p.step)
}
