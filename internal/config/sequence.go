package config

import (
	"fmt"
	"os"

	"github.com/golang/geo/r3"
	"github.com/mitchellh/mapstructure"
	"gonum.org/v1/gonum/num/quat"
	"gopkg.in/yaml.v3"

	"github.com/seqplan/seqplan/pkg/domain"
)

// sequenceFile is the on-disk shape of a sequence definition. Fields are
// decoded weakly so hand-written YAML may use integers where the domain
// types want floats.
type sequenceFile struct {
	Items []sequenceItem `mapstructure:"items"`
}

type sequenceItem struct {
	Group       string       `mapstructure:"group"`
	BlendRadius float64      `mapstructure:"blend_radius"`
	Goal        sequenceGoal `mapstructure:"goal"`

	Start struct {
		Names     []string  `mapstructure:"names"`
		Positions []float64 `mapstructure:"positions"`
	} `mapstructure:"start"`

	VelocityScaling     float64 `mapstructure:"velocity_scaling"`
	AccelerationScaling float64 `mapstructure:"acceleration_scaling"`
}

type sequenceGoal struct {
	Joints []float64     `mapstructure:"joints"`
	Pose   *sequencePose `mapstructure:"pose"`
}

type sequencePose struct {
	Position    []float64 `mapstructure:"position"`
	Orientation struct {
		W float64 `mapstructure:"w"`
		X float64 `mapstructure:"x"`
		Y float64 `mapstructure:"y"`
		Z float64 `mapstructure:"z"`
	} `mapstructure:"orientation"`
}

// LoadSequence reads a sequence definition file and converts it into a
// planning request.
func LoadSequence(path string) (domain.SequenceRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.SequenceRequest{}, fmt.Errorf("read sequence: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return domain.SequenceRequest{}, fmt.Errorf("parse sequence %s: %w", path, err)
	}

	var file sequenceFile
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &file,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return domain.SequenceRequest{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return domain.SequenceRequest{}, fmt.Errorf("decode sequence %s: %w", path, err)
	}

	req := domain.SequenceRequest{Items: make([]domain.SequenceItem, len(file.Items))}
	for i, item := range file.Items {
		if item.Group == "" {
			return domain.SequenceRequest{}, fmt.Errorf("sequence item %d: group must not be empty", i)
		}
		goal, err := decodeGoal(i, item.Goal)
		if err != nil {
			return domain.SequenceRequest{}, err
		}
		req.Items[i] = domain.SequenceItem{
			Req: domain.MotionRequest{
				Group: item.Group,
				Goal:  goal,
				StartState: domain.RobotState{Joints: domain.JointState{
					Names:     item.Start.Names,
					Positions: item.Start.Positions,
				}},
				VelocityScaling:     item.VelocityScaling,
				AccelerationScaling: item.AccelerationScaling,
			},
			BlendRadius: item.BlendRadius,
		}
	}
	return req, nil
}

// decodeGoal converts a file goal into a domain goal. Exactly one of the
// joint-space and Cartesian targets must be given.
func decodeGoal(i int, goal sequenceGoal) (domain.Goal, error) {
	if len(goal.Joints) > 0 && goal.Pose != nil {
		return domain.Goal{}, fmt.Errorf("sequence item %d: goal declares both joints and a pose", i)
	}

	if goal.Pose != nil {
		if len(goal.Pose.Position) != 3 {
			return domain.Goal{}, fmt.Errorf("sequence item %d: pose position needs exactly 3 coordinates, got %d",
				i, len(goal.Pose.Position))
		}
		orientation := quat.Number{
			Real: goal.Pose.Orientation.W,
			Imag: goal.Pose.Orientation.X,
			Jmag: goal.Pose.Orientation.Y,
			Kmag: goal.Pose.Orientation.Z,
		}
		if orientation == (quat.Number{}) {
			// An omitted orientation means "keep the tip level".
			orientation = quat.Number{Real: 1}
		}
		return domain.Goal{Pose: &domain.Pose{
			Position:    r3.Vector{X: goal.Pose.Position[0], Y: goal.Pose.Position[1], Z: goal.Pose.Position[2]},
			Orientation: orientation,
		}}, nil
	}

	if len(goal.Joints) == 0 {
		return domain.Goal{}, fmt.Errorf("sequence item %d: goal needs joints or a pose", i)
	}
	return domain.Goal{Joints: goal.Joints}, nil
}
