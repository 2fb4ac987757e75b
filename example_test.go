package seqplan_test

import (
	"context"
	"fmt"
	"log"

	"github.com/seqplan/seqplan"
	"github.com/seqplan/seqplan/pkg/adapters/memory"
	"github.com/seqplan/seqplan/pkg/adapters/ptp"
	"github.com/seqplan/seqplan/pkg/domain"
)

// ExampleNew demonstrates planning a two-segment sequence with the built-in
// point-to-point planner and an in-memory kinematic model.
func ExampleNew() {
	model, err := memory.New([]memory.GroupSpec{
		{
			Name:     "gantry",
			TipFrame: "tool0",
			Solver:   true,
			Joints:   []memory.JointSpec{{Name: "x"}, {Name: "y"}, {Name: "z"}},
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	engine, err := seqplan.New(model)
	if err != nil {
		log.Fatal(err)
	}
	planner := ptp.New(model, engine.Limits())

	req := domain.SequenceRequest{Items: []domain.SequenceItem{
		{
			Req: domain.MotionRequest{
				Group:      "gantry",
				Goal:       domain.Goal{Joints: []float64{1, 0, 0}},
				StartState: domain.RobotState{Joints: domain.JointState{Positions: []float64{0, 0, 0}}},
			},
		},
		{
			Req: domain.MotionRequest{
				Group: "gantry",
				Goal:  domain.Goal{Joints: []float64{1, 1, 0}},
			},
		},
	}}

	result, err := engine.Solve(context.Background(), nil, planner, req)
	if err != nil {
		log.Fatal(err)
	}

	traj := result.Trajectories[0]
	fmt.Println(traj.Group, len(result.Trajectories))
	// Output: gantry 1
}
