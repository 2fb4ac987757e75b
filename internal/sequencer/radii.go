package sequencer

import (
	"log/slog"

	"github.com/seqplan/seqplan/pkg/domain"
	"github.com/seqplan/seqplan/pkg/ports"
)

// extractBlendRadii computes the effective blend radius for every adjacent
// pair of items. The table has len(items)-1 entries; entry i describes the
// blend between items i and i+1. Invalid configurations degrade to zero
// radius with a warning instead of failing the solve.
func extractBlendRadii(model ports.KinematicModel, items []domain.SequenceItem, log *slog.Logger, counters Counters) []float64 {
	if len(items) == 0 {
		return nil
	}
	radii := make([]float64, len(items)-1)
	for i := 0; i < len(radii); i++ {
		if invalidBlendRadii(model, items[i], items[i+1], log) {
			log.Warn("invalid blend radii between commands, blend radius set to zero",
				"first", i, "second", i+1)
			counters.BlendDegraded()
			continue
		}
		radii[i] = items[i].BlendRadius
	}
	return radii
}

// invalidBlendRadii reports whether a requested blend between the two items
// cannot be honored. A zero radius requests no blend and is always valid.
func invalidBlendRadii(model ports.KinematicModel, a, b domain.SequenceItem, log *slog.Logger) bool {
	if a.BlendRadius == 0 {
		return false
	}

	if a.Req.Group != b.Req.Group {
		log.Warn("blending between different groups not allowed",
			"first_group", a.Req.Group, "second_group", b.Req.Group)
		return true
	}

	if !model.HasSolver(a.Req.Group) {
		log.Warn("blending for groups without solver not allowed", "group", a.Req.Group)
		return true
	}

	return false
}

// incomingRadius returns the blend radius attached to response i: the radius
// of the blend *into* segment i, which is the table entry of the preceding
// pair. The first segment has nothing blending into it.
//
// The table entry for pair (i-1, i) deliberately travels with the second
// segment of the pair; keep this shift in one place.
func incomingRadius(radii []float64, i int) float64 {
	if i == 0 {
		return 0
	}
	return radii[i-1]
}
