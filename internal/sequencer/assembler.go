package sequencer

import (
	"fmt"
	"log/slog"

	"github.com/seqplan/seqplan/pkg/domain"
	"github.com/seqplan/seqplan/pkg/ports"
)

// assemble feeds the per-segment trajectories into the builder and returns
// the merged result. Each segment is appended with the radius of the blend
// into it (see incomingRadius), then duplicate-timestamp waypoints are
// stripped from the built trajectories.
func assemble(scene domain.Scene, builder ports.TrajectoryBuilder,
	responses []domain.MotionResponse, radii []float64, log *slog.Logger, counters Counters) ([]*domain.Trajectory, error) {
	builder.Reset()
	for i, resp := range responses {
		if err := builder.Append(scene, resp.Trajectory, incomingRadius(radii, i)); err != nil {
			return nil, fmt.Errorf("appending segment %d to builder: %w", i, err)
		}
	}

	trajectories, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("building merged trajectories: %w", err)
	}

	for _, traj := range trajectories {
		dedupeWaypoints(traj, log, counters)
	}
	return trajectories, nil
}

// dedupeWaypoints removes waypoints sharing the exact time-from-start of
// their predecessor; the first occurrence wins. Controllers reject
// trajectories whose timestamps are not strictly increasing, and the blend
// seams occasionally produce such duplicates.
func dedupeWaypoints(traj *domain.Trajectory, log *slog.Logger, counters Counters) {
	for i := 0; i+1 < traj.Size(); {
		if traj.TimeFromStart(i) == traj.TimeFromStart(i+1) {
			log.Warn("removed duplicate trajectory point", "time", traj.TimeFromStart(i).Seconds())
			counters.WaypointDeduped()
			traj.RemovePoint(i + 1)
			continue
		}
		i++
	}
}
