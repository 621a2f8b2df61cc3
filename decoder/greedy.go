package decoder

import (
	"math"

	"github.com/ieee0824/ctcdecode/internal/mathutil"
	"github.com/pkg/errors"
)

// Greedy picks the most likely class at every step and collapses the
// result: blanks are dropped and, with MergeRepeated, consecutive repeats
// are emitted once. LogProb is the score of the chosen alignment.
func Greedy(cfg Config, inputs [][]float64, seqLen int) (Path, error) {
	if err := cfg.Validate(); err != nil {
		return Path{}, err
	}
	if seqLen < 0 || seqLen > len(inputs) {
		return Path{}, errors.Wrapf(ErrInvalidInput, "sequence length %d, have %d steps", seqLen, len(inputs))
	}
	blank := cfg.Blank()
	p := Path{Labels: []int{}}
	prev := -1
	for t := 0; t < seqLen; t++ {
		row := inputs[t]
		if len(row) != cfg.NumClasses {
			return Path{}, errors.Wrapf(ErrInvalidInput, "step %d has %d classes, want %d", t, len(row), cfg.NumClasses)
		}
		for i, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 1) {
				return Path{}, errors.Wrapf(ErrInvalidInput, "step %d class %d: score %v", t, i, v)
			}
		}
		l := mathutil.ArgMax(row)
		p.LogProb = mathutil.LogMul(p.LogProb, mathutil.Clamp(row[l]))
		if l != blank && !(cfg.MergeRepeated && l == prev) {
			p.Labels = append(p.Labels, l)
		}
		prev = l
	}
	return p, nil
}
