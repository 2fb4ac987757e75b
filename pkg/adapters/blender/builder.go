// Package blender implements ports.TrajectoryBuilder with a transition
// window strategy: where a blend radius is requested, the tail of the
// previous segment and the head of the next one are replaced by a smooth
// joint-space transition inside the sphere the radius spans around the
// segment boundary.
package blender

import (
	"fmt"
	"math"
	"time"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/floats"

	"github.com/seqplan/seqplan/pkg/domain"
	"github.com/seqplan/seqplan/pkg/ports"
)

const defaultCycleTime = 100 * time.Millisecond

// Builder merges appended segment trajectories. One builder serves one
// solve at a time.
type Builder struct {
	model  ports.KinematicModel
	limits domain.Limits
	cycle  time.Duration

	current *domain.Trajectory
	out     []*domain.Trajectory
	err     error
}

// Option configures the builder.
type Option func(*Builder)

// WithCycleTime sets the sampling interval of blended transitions.
func WithCycleTime(cycle time.Duration) Option {
	return func(b *Builder) {
		b.cycle = cycle
	}
}

// New creates a builder. The limits bound the Cartesian tip velocity of
// blended transitions; a zero MaxTransVelocity disables that check.
func New(model ports.KinematicModel, limits domain.Limits, opts ...Option) *Builder {
	b := &Builder{model: model, limits: limits, cycle: defaultCycleTime}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Reset discards all state from a previous solve.
func (b *Builder) Reset() {
	b.current = nil
	b.out = nil
	b.err = nil
}

// Append adds the next segment. A group change flushes the current run; a
// zero radius concatenates; a positive radius blends the seam.
func (b *Builder) Append(scene domain.Scene, traj *domain.Trajectory, blendRadius float64) error {
	if b.err != nil {
		return b.err
	}
	if traj == nil || traj.Size() == 0 {
		b.err = fmt.Errorf("appending empty trajectory")
		return b.err
	}

	switch {
	case b.current == nil:
		b.current = clone(traj)
	case traj.Group != b.current.Group:
		if blendRadius > 0 {
			b.err = fmt.Errorf("cannot blend across groups %q and %q", b.current.Group, traj.Group)
			return b.err
		}
		b.out = append(b.out, b.current)
		b.current = clone(traj)
	case blendRadius == 0:
		b.concatenate(traj)
	default:
		b.err = b.blend(traj, blendRadius)
	}
	return b.err
}

// Build finalizes and returns the merged trajectories.
func (b *Builder) Build() ([]*domain.Trajectory, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.current != nil {
		b.out = append(b.out, b.current)
		b.current = nil
	}
	return b.out, nil
}

// concatenate appends traj to the current run with times continuing from the
// run's end. The first waypoint is dropped when it repeats the run's final
// configuration, which segment chaining guarantees for planned sequences.
func (b *Builder) concatenate(traj *domain.Trajectory) {
	offset := b.current.Last().TimeFromStart
	points := traj.Points
	if samePositions(points[0].State, b.current.Last().State) {
		points = points[1:]
	}
	for _, pt := range points {
		pt.TimeFromStart += offset
		b.current.Points = append(b.current.Points, pt)
	}
}

// blend replaces the seam between the current run and traj with a sampled
// transition window. The window spans the waypoints whose tip positions lie
// within radius of the boundary on both sides.
func (b *Builder) blend(traj *domain.Trajectory, radius float64) error {
	group := b.current.Group
	frame, err := b.model.TipFrame(group)
	if err != nil {
		return err
	}

	tailIdx, err := b.windowOnTail(frame, radius)
	if err != nil {
		return err
	}
	headIdx, err := b.windowOnHead(frame, traj, radius)
	if err != nil {
		return err
	}

	tailStart := b.current.TimeFromStart(tailIdx)
	tailDur := b.current.Last().TimeFromStart - tailStart
	headDur := traj.TimeFromStart(headIdx)
	window := maxDuration(tailDur, headDur)
	if window == 0 {
		// Degenerate window: nothing inside the sphere to smooth over.
		b.concatenate(traj)
		return nil
	}

	merged := append([]domain.Waypoint(nil), b.current.Points[:tailIdx+1]...)
	steps := int(window / b.cycle)
	for i := 1; i <= steps; i++ {
		u := float64(i) / float64(steps+1)
		alpha := 0.5 * (1 - math.Cos(math.Pi*u))

		posA := interpolate(b.current, tailStart+scaleDuration(tailDur, u))
		posB := interpolate(traj, scaleDuration(headDur, u))

		pos := make([]float64, len(posA))
		floats.ScaleTo(pos, 1-alpha, posA)
		floats.AddScaled(pos, alpha, posB)

		merged = append(merged, domain.Waypoint{
			State: domain.RobotState{Joints: domain.JointState{
				Names:     append([]string(nil), traj.Points[0].State.Joints.Names...),
				Positions: pos,
			}},
			TimeFromStart: tailStart + scaleDuration(window, u),
		})
	}

	// Continue with the remainder of traj after the blend window.
	offset := tailStart + window - traj.TimeFromStart(headIdx)
	for _, pt := range traj.Points[headIdx:] {
		pt.TimeFromStart += offset
		merged = append(merged, pt)
	}

	b.current.Points = merged
	if err := b.checkTipVelocity(frame); err != nil {
		return err
	}
	return nil
}

// windowOnTail returns the first index of the current run whose tip lies
// inside the blend sphere around the run's endpoint.
func (b *Builder) windowOnTail(frame string, radius float64) (int, error) {
	end, err := b.tip(frame, b.current.Last().State)
	if err != nil {
		return 0, err
	}
	idx := b.current.Size() - 1
	for idx > 0 {
		pos, err := b.tip(frame, b.current.Points[idx-1].State)
		if err != nil {
			return 0, err
		}
		if pos.Sub(end).Norm() > radius {
			break
		}
		idx--
	}
	return idx, nil
}

// windowOnHead returns the last index of traj whose tip lies inside the
// blend sphere around its start.
func (b *Builder) windowOnHead(frame string, traj *domain.Trajectory, radius float64) (int, error) {
	start, err := b.tip(frame, traj.Points[0].State)
	if err != nil {
		return 0, err
	}
	idx := 0
	for idx < traj.Size()-1 {
		pos, err := b.tip(frame, traj.Points[idx+1].State)
		if err != nil {
			return 0, err
		}
		if pos.Sub(start).Norm() > radius {
			break
		}
		idx++
	}
	return idx, nil
}

// checkTipVelocity rejects a merged run whose tip moves faster than the
// configured Cartesian bound.
func (b *Builder) checkTipVelocity(frame string) error {
	vMax := b.limits.Cartesian.MaxTransVelocity
	if vMax <= 0 {
		return nil
	}
	for i := 1; i < b.current.Size(); i++ {
		dt := (b.current.TimeFromStart(i) - b.current.TimeFromStart(i-1)).Seconds()
		if dt <= 0 {
			continue
		}
		prev, err := b.tip(frame, b.current.Points[i-1].State)
		if err != nil {
			return err
		}
		cur, err := b.tip(frame, b.current.Points[i].State)
		if err != nil {
			return err
		}
		if v := cur.Sub(prev).Norm() / dt; v > vMax {
			return fmt.Errorf("blended trajectory exceeds Cartesian velocity limit: %.3f > %.3f m/s at waypoint %d", v, vMax, i)
		}
	}
	return nil
}

func (b *Builder) tip(frame string, state domain.RobotState) (r3.Vector, error) {
	return b.model.TipPosition(b.current.Group, frame, state)
}

// interpolate linearly interpolates joint positions of traj at time t,
// clamping outside the trajectory's time range.
func interpolate(traj *domain.Trajectory, t time.Duration) []float64 {
	points := traj.Points
	if t <= points[0].TimeFromStart {
		return points[0].State.Joints.Positions
	}
	for i := 1; i < len(points); i++ {
		if t > points[i].TimeFromStart {
			continue
		}
		span := points[i].TimeFromStart - points[i-1].TimeFromStart
		if span == 0 {
			return points[i].State.Joints.Positions
		}
		u := float64(t-points[i-1].TimeFromStart) / float64(span)
		a := points[i-1].State.Joints.Positions
		bpos := points[i].State.Joints.Positions
		out := make([]float64, len(a))
		floats.ScaleTo(out, 1-u, a)
		floats.AddScaled(out, u, bpos)
		return out
	}
	return points[len(points)-1].State.Joints.Positions
}

func clone(traj *domain.Trajectory) *domain.Trajectory {
	return &domain.Trajectory{
		Group:  traj.Group,
		Points: append([]domain.Waypoint(nil), traj.Points...),
	}
}

func samePositions(a, b domain.RobotState) bool {
	if len(a.Joints.Positions) != len(b.Joints.Positions) {
		return false
	}
	return floats.EqualApprox(a.Joints.Positions, b.Joints.Positions, 1e-9)
}

func maxDuration(a, b time.Duration) time.Duration {
	if a > b {
		return a
	}
	return b
}

func scaleDuration(d time.Duration, u float64) time.Duration {
	return time.Duration(float64(d) * u)
}

var _ ports.TrajectoryBuilder = (*Builder)(nil)
