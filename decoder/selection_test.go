package decoder

import (
	"testing"
)

// rapidlyDroppingScorer penalises a hypothesis by 100 per unit of its last
// label, so higher labels are only kept when nothing else is allowed.
type rapidlyDroppingScorer struct{}

func (rapidlyDroppingScorer) InitializeState(root *int) { *root = 0 }

func (rapidlyDroppingScorer) ExpandState(_ *int, _ int, to *int, toLabel int) {
	*to = toLabel
}

func (rapidlyDroppingScorer) ExpandStateEnd(*int) {}

func (rapidlyDroppingScorer) StateExpansionScore(state *int, previous float64) float64 {
	return previous - 100*float64(*state)
}

func (rapidlyDroppingScorer) StateEndExpansionScore(*int) float64 {
	return 0
}

func TestLabelSelection(t *testing.T) {
	inputs := [][]float64{
		{-1e6, 1, 2, 3, 4, -1e6},
		{1e6, 0, 0, 0, 0, -1e6},
		{-1e6, 1.1, 2.2, 3.3, 4.4, -1e6},
	}
	unrestricted := []want{
		{[]int{1, 0, 1}, 999802.1},
		{[]int{1, 0, 2}, 999703.2},
		{[]int{2, 0, 1}, 999703.1},
		{[]int{1, 0, 3}, 999604.3},
		{[]int{2, 0, 2}, 999604.2},
	}
	topTwo := []want{
		{[]int{3, 0, 3}, 999406.3},
		{[]int{3, 0, 4}, 999307.4},
		{[]int{4, 0, 3}, 999307.3},
		{[]int{4, 0, 4}, 999208.4},
		{[]int{3}, -293.7},
	}

	tests := []struct {
		name   string
		size   int
		margin float64
		want   []want
	}{
		{name: "off", size: 0, margin: -1, want: unrestricted},
		{name: "size", size: 2, margin: -1, want: topTwo},
		{
			name: "margin", size: 0, margin: 2.0,
			want: []want{
				{[]int{2, 0, 3}, 999505.3},
				{[]int{2, 0, 4}, 999406.4},
				{[]int{3, 0, 3}, 999406.3},
				{[]int{3, 0, 4}, 999307.4},
				{[]int{4, 0, 3}, 999307.3},
			},
		},
		{name: "size and margin", size: 2, margin: 2.0, want: topTwo},
		{name: "loose", size: 4, margin: 3.3001, want: unrestricted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig(numClasses)
			cfg.BeamWidth = 5
			cfg.LabelSelectionSize = tt.size
			cfg.LabelSelectionMargin = tt.margin
			res := decode[int](t, cfg, rapidlyDroppingScorer{}, inputs, 5)
			assertPaths(t, tt.want, res, 1e-6)
		})
	}
}
