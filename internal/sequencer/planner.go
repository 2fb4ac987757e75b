package sequencer

import (
	"context"
	"log/slog"

	"github.com/seqplan/seqplan/pkg/domain"
	"github.com/seqplan/seqplan/pkg/ports"
)

// solveSequenceItems plans every item in order, threading each segment's
// computed end state into the next segment of the same group. The first
// failure aborts the whole sequence; partial results are discarded.
func solveSequenceItems(ctx context.Context, scene domain.Scene, planner ports.PlannerService,
	items []domain.SequenceItem, log *slog.Logger) ([]domain.MotionResponse, error) {
	responses := make([]domain.MotionResponse, 0, len(items))
	for i, item := range items {
		req := item.Req
		if prev, ok := previousEndState(responses, req.Group); ok {
			req.StartState = prev
		}

		resp, err := planner.GeneratePlan(ctx, scene, req)
		if err != nil {
			log.Error("generating a plan with the planner service failed", "item", i, "err", err)
			code := domain.CodeFailure
			if resp.Code != 0 && resp.Code != domain.CodeSuccess {
				// Planners may classify the failure alongside the error;
				// keep the more specific code.
				code = resp.Code
			}
			return nil, &domain.PlanningFailedError{Index: i, Code: code, Err: err}
		}
		if resp.Code != domain.CodeSuccess {
			return nil, &domain.PlanningFailedError{Index: i, Code: resp.Code}
		}

		responses = append(responses, resp)
		log.Debug("solved sequence item", "item", i+1, "of", len(items))
	}
	return responses, nil
}

// previousEndState scans the responses collected so far, most recent first,
// for the latest trajectory of the given group and returns its final
// waypoint state. The response list is append-only, so a plain reverse
// iteration is all the bookkeeping this needs.
func previousEndState(responses []domain.MotionResponse, group string) (domain.RobotState, bool) {
	for i := len(responses) - 1; i >= 0; i-- {
		if responses[i].Trajectory.Group == group {
			return responses[i].Trajectory.Last().State, true
		}
	}
	return domain.RobotState{}, false
}
