package decoder

// BeamScorer lets a caller attach state to every beam hypothesis and
// adjust its score as the hypothesis grows. S is the per-hypothesis state.
//
// The decoder calls InitializeState on the root when it is reset,
// ExpandState each time a hypothesis extends its parent by toLabel, and
// StateExpansionScore to rescale the parent's probability for that
// extension. At the end of the sequence ExpandStateEnd and
// StateEndExpansionScore run once per surviving hypothesis. A score of
// mathutil.LogZero rejects the hypothesis.
//
// Implementations are shared by concurrent decoders and must not mutate
// anything except the states passed to them.
type BeamScorer[S any] interface {
	InitializeState(root *S)
	ExpandState(from *S, fromLabel int, to *S, toLabel int)
	ExpandStateEnd(state *S)
	StateExpansionScore(state *S, previous float64) float64
	StateEndExpansionScore(state *S) float64
}

// DefaultScorer leaves scores unchanged.
type DefaultScorer[S any] struct{}

func (DefaultScorer[S]) InitializeState(*S) {}
func (DefaultScorer[S]) ExpandState(*S, int, *S, int) {}
func (DefaultScorer[S]) ExpandStateEnd(*S) {}

func (DefaultScorer[S]) StateExpansionScore(_ *S, previous float64) float64 {
	return previous
}

func (DefaultScorer[S]) StateEndExpansionScore(*S) float64 {
	return 0
}
