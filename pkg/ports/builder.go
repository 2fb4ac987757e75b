package ports

import "github.com/seqplan/seqplan/pkg/domain"

// TrajectoryBuilder composes per-segment trajectories into merged execution
// trajectories. It is stateful: one builder serves one solve at a time, and
// Reset must be called before the first Append of a solve.
//
// Build returns one trajectory per maximal run of same-group segments; a
// group change forces a split. A positive blend radius smooths the handoff
// from the previously appended trajectory into the new one; zero radius
// concatenates with strictly increasing time.
type TrajectoryBuilder interface {
	// Reset discards all state from a previous solve.
	Reset()

	// Append adds the next segment trajectory. blendRadius is the radius of
	// the blend *into* this segment, i.e. the previous item's declared
	// radius; it is zero for the first segment.
	Append(scene domain.Scene, traj *domain.Trajectory, blendRadius float64) error

	// Build finalizes and returns the merged trajectories in order.
	Build() ([]*domain.Trajectory, error)
}
