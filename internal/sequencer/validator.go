package sequencer

import "github.com/seqplan/seqplan/pkg/domain"

// Validate runs every structural check on a raw sequence without touching a
// planner: non-negative radii, zero radius on the last item, and the
// one-explicit-start-state-per-group rule.
func Validate(items []domain.SequenceItem) error {
	if err := checkNonNegativeRadii(items); err != nil {
		return err
	}
	if err := checkLastBlendRadiusZero(items); err != nil {
		return err
	}
	return checkStartStates(items)
}

// checkNonNegativeRadii rejects any item declaring a blend radius below zero.
func checkNonNegativeRadii(items []domain.SequenceItem) error {
	for i, item := range items {
		if item.BlendRadius < 0 {
			return &domain.NegativeBlendRadiusError{Index: i, Radius: item.BlendRadius}
		}
	}
	return nil
}

// checkLastBlendRadiusZero rejects a nonzero radius on the final item; there
// is no following segment to blend into.
func checkLastBlendRadiusZero(items []domain.SequenceItem) error {
	if len(items) == 0 {
		return nil
	}
	if r := items[len(items)-1].BlendRadius; r != 0 {
		return &domain.LastSegmentBlendRadiusError{Radius: r}
	}
	return nil
}

// checkStartStates enforces that within each group only the first occurrence
// may carry an explicit start state. Later occurrences inherit the previous
// segment's computed end state, so an explicit value there would be silently
// ignored or contradict it.
func checkStartStates(items []domain.SequenceItem) error {
	if len(items) <= 1 {
		return nil
	}
	for _, group := range groupNames(items) {
		if err := checkStartStatesOfGroup(items, group); err != nil {
			return err
		}
	}
	return nil
}

func checkStartStatesOfGroup(items []domain.SequenceItem, group string) error {
	first := true
	for i, item := range items {
		if item.Req.Group != group {
			continue
		}
		if first {
			first = false
			continue
		}
		if !item.Req.StartState.IsZero() {
			return &domain.StartStateConflictError{Group: group, Index: i}
		}
	}
	return nil
}

// groupNames returns the distinct group names in first-appearance order.
func groupNames(items []domain.SequenceItem) []string {
	var names []string
	seen := make(map[string]bool)
	for _, item := range items {
		if !seen[item.Req.Group] {
			seen[item.Req.Group] = true
			names = append(names, item.Req.Group)
		}
	}
	return names
}
