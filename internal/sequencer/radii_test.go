package sequencer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/seqplan/seqplan/internal/logging"
	"github.com/seqplan/seqplan/pkg/domain"
)

func TestExtractBlendRadii(t *testing.T) {
	model := newFakeModel()
	log := logging.NewNop()

	cases := []struct {
		name  string
		items []domain.SequenceItem
		want  []float64
	}{
		{
			name: "declared radii accepted verbatim",
			items: []domain.SequenceItem{
				item("manipulator", 0.3, 1, 0, 0),
				item("manipulator", 0.2, 2, 0, 0),
				item("manipulator", 0, 3, 0, 0),
			},
			want: []float64{0.3, 0.2},
		},
		{
			name: "cross-group pair degrades to zero",
			items: []domain.SequenceItem{
				item("manipulator", 0.3, 1, 0, 0),
				item("gripper", 0, 2, 0, 0),
			},
			want: []float64{0},
		},
		{
			name: "group without solver degrades to zero",
			items: []domain.SequenceItem{
				item("gripper", 0.3, 1, 0, 0),
				item("gripper", 0, 2, 0, 0),
			},
			want: []float64{0},
		},
		{
			name: "zero radius short-circuits solver check",
			items: []domain.SequenceItem{
				item("gripper", 0, 1, 0, 0),
				item("gripper", 0, 2, 0, 0),
			},
			want: []float64{0},
		},
		{
			name:  "single item yields empty table",
			items: []domain.SequenceItem{item("manipulator", 0, 1, 0, 0)},
			want:  []float64{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := extractBlendRadii(model, tc.items, log, nopCounters{})
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("radii mismatch (-want +got):\n%s", diff)
			}
			// The table always pairs up: one entry per adjacent pair.
			assert.Len(t, got, len(tc.items)-1)
		})
	}
}

func TestExtractBlendRadii_Idempotent(t *testing.T) {
	model := newFakeModel()
	log := logging.NewNop()
	items := []domain.SequenceItem{
		item("manipulator", 0.3, 1, 0, 0),
		item("gripper", 0.1, 2, 0, 0),
		item("gripper", 0, 3, 0, 0),
	}

	first := extractBlendRadii(model, items, log, nopCounters{})
	second := extractBlendRadii(model, items, log, nopCounters{})
	assert.Equal(t, first, second)
}

// Pins the off-by-one attachment: the radius of pair (i-1, i) travels with
// segment i, so a 4-segment sequence with table [r0 r1 r2] feeds the builder
// [0 r0 r1 r2].
func TestIncomingRadius_FourSegments(t *testing.T) {
	radii := []float64{0.1, 0.2, 0.3}

	got := make([]float64, 4)
	for i := range got {
		got[i] = incomingRadius(radii, i)
	}
	assert.Equal(t, []float64{0, 0.1, 0.2, 0.3}, got)
}
