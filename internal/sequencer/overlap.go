package sequencer

import (
	"fmt"

	"github.com/seqplan/seqplan/pkg/domain"
	"github.com/seqplan/seqplan/pkg/ports"
)

// checkOverlappingRadii verifies that no two consecutive blend spheres
// intersect. Fewer than three responses cannot produce an overlap within a
// blend window, so the check is skipped.
func checkOverlappingRadii(model ports.KinematicModel, responses []domain.MotionResponse, radii []float64) error {
	if len(responses) < 3 {
		return nil
	}
	for i := 0; i+2 < len(responses); i++ {
		overlap, err := radiiOverlap(model, responses[i].Trajectory, radii[i], responses[i+1].Trajectory, radii[i+1])
		if err != nil {
			return fmt.Errorf("overlap check for commands [%d] and [%d]: %w", i, i+1, err)
		}
		if overlap {
			return &domain.OverlappingBlendRadiiError{PairIndex: i}
		}
	}
	return nil
}

// radiiOverlap reports whether the blend spheres at the endpoints of the two
// trajectories intersect. Different groups never blend, and a zero radius
// sum means no blending takes place at either endpoint.
func radiiOverlap(model ports.KinematicModel, a *domain.Trajectory, radiusA float64,
	b *domain.Trajectory, radiusB float64) (bool, error) {
	if a.Group != b.Group {
		return false, nil
	}

	sum := radiusA + radiusB
	if sum == 0 {
		return false, nil
	}

	frame, err := model.TipFrame(a.Group)
	if err != nil {
		return false, err
	}
	endA, err := model.TipPosition(a.Group, frame, a.Last().State)
	if err != nil {
		return false, err
	}
	endB, err := model.TipPosition(b.Group, frame, b.Last().State)
	if err != nil {
		return false, err
	}

	return endA.Sub(endB).Norm() <= sum, nil
}
