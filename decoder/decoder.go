// Package decoder implements CTC prefix beam search with a pluggable
// scorer that can attach state to hypotheses and constrain them.
package decoder

import (
	"math"
	"sort"

	"github.com/ieee0824/ctcdecode/internal/mathutil"
	"github.com/pkg/errors"
)

// BeamSearchDecoder decodes one sequence at a time. It is not safe for
// concurrent use; run one decoder per goroutine and share the scorer.
type BeamSearchDecoder[S any] struct {
	cfg    Config
	scorer BeamScorer[S]

	root      *beamEntry[S]
	leaves    []*beamEntry[S]
	finalized bool
	steps     int

	candidates []*beamEntry[S]
	input      []float64
	sorted     []float64
}

// New creates a decoder. The scorer must be safe for concurrent reads if it
// is shared between decoders.
func New[S any](cfg Config, scorer BeamScorer[S]) (*BeamSearchDecoder[S], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if scorer == nil {
		return nil, errors.Wrap(ErrConfig, "nil scorer")
	}
	d := &BeamSearchDecoder[S]{
		cfg:    cfg,
		scorer: scorer,
		input:  make([]float64, cfg.NumClasses),
		sorted: make([]float64, cfg.NumClasses),
	}
	d.Reset()
	return d, nil
}

// Config returns the decoder configuration.
func (d *BeamSearchDecoder[S]) Config() Config {
	return d.cfg
}

// Steps returns the number of time steps consumed since the last Reset.
func (d *BeamSearchDecoder[S]) Steps() int {
	return d.steps
}

// Reset discards all hypotheses and starts a new sequence.
func (d *BeamSearchDecoder[S]) Reset() {
	d.root = newBeamEntry[S](nil, -1)
	d.root.newp.total = 0
	d.root.newp.blank = 0
	d.scorer.InitializeState(&d.root.state)
	d.root.inBeam = true
	d.leaves = append(d.leaves[:0], d.root)
	d.finalized = false
	d.steps = 0
}

// Step consumes one time step of log probabilities, one per class.
func (d *BeamSearchDecoder[S]) Step(input []float64) error {
	if d.finalized {
		return ErrFinalized
	}
	if len(input) != d.cfg.NumClasses {
		return errors.Wrapf(ErrInvalidInput, "step has %d classes, want %d", len(input), d.cfg.NumClasses)
	}
	for i, v := range input {
		if math.IsNaN(v) || math.IsInf(v, 1) {
			return errors.Wrapf(ErrInvalidInput, "class %d: score %v", i, v)
		}
		d.input[i] = mathutil.Clamp(v)
	}
	in := d.input
	blank := d.cfg.Blank()
	merge := d.cfg.MergeRepeated
	threshold := d.labelThreshold(in)

	branches := d.leaves
	for _, b := range branches {
		b.oldp = b.newp
	}

	// Extend every surviving prefix without growing it.
	for _, b := range branches {
		if b.parent != nil {
			label := mathutil.LogZero
			if merge {
				label = b.oldp.label
			}
			if p := b.parent; p.inBeam {
				previous := p.oldp.total
				if merge && b.label == p.label {
					previous = p.oldp.blank
				}
				label = mathutil.LogAdd(label, d.scorer.StateExpansionScore(&b.state, previous))
			}
			b.newp.label = mathutil.LogMul(label, in[b.label])
		}
		b.newp.blank = mathutil.LogMul(b.oldp.total, in[blank])
		b.newp.total = mathutil.LogAdd(b.newp.blank, b.newp.label)
	}

	// Grow every prefix by one label.
	d.candidates = append(d.candidates[:0], branches...)
	for _, b := range branches {
		if mathutil.IsLogZero(b.oldp.total) {
			continue
		}
		for l, logit := range in {
			if l == blank || mathutil.IsLogZero(logit) || logit < threshold {
				continue
			}
			c := b.child(l)
			if c.inBeam {
				continue
			}
			d.scorer.ExpandState(&b.state, b.label, &c.state, l)
			previous := b.oldp.total
			if merge && l == b.label {
				previous = b.oldp.blank
			}
			c.newp.reset()
			c.newp.label = mathutil.LogMul(logit, d.scorer.StateExpansionScore(&c.state, previous))
			c.newp.total = c.newp.label
			// A rejected child never takes a slot, even when the beam has
			// room for it, so it cannot surface at finalization as a
			// LogZero path ahead of the padding.
			if mathutil.IsLogZero(c.newp.total) {
				c.newp.reset()
				continue
			}
			d.candidates = append(d.candidates, c)
		}
	}

	sort.SliceStable(d.candidates, func(i, j int) bool {
		return d.candidates[i].newp.total > d.candidates[j].newp.total
	})
	keep := d.candidates
	if len(keep) > d.cfg.BeamWidth {
		for _, e := range keep[d.cfg.BeamWidth:] {
			e.oldp.reset()
			e.newp.reset()
		}
		keep = keep[:d.cfg.BeamWidth]
	}
	for _, b := range branches {
		b.inBeam = false
	}
	for _, e := range keep {
		e.inBeam = true
	}
	d.leaves = append(d.leaves[:0], keep...)
	d.steps++
	return nil
}

// labelThreshold returns the lowest score a label may have to be expanded.
func (d *BeamSearchDecoder[S]) labelThreshold(in []float64) float64 {
	threshold := mathutil.LogZero
	if k := d.cfg.LabelSelectionSize; k > 0 && k < len(in) {
		copy(d.sorted, in)
		sort.Sort(sort.Reverse(sort.Float64Slice(d.sorted)))
		threshold = math.Max(threshold, d.sorted[k-1])
	}
	if margin := d.cfg.LabelSelectionMargin; margin >= 0 {
		best := in[mathutil.ArgMax(in)]
		threshold = math.Max(threshold, best-margin)
	}
	return threshold
}

// TopPaths finalizes the beam and returns the n best label sequences.
// Missing paths are padded with empty sequences scored mathutil.LogZero.
func (d *BeamSearchDecoder[S]) TopPaths(n int) (Result, error) {
	if n < 1 {
		return Result{}, errors.Wrapf(ErrInvalidInput, "top paths %d", n)
	}
	if n > d.cfg.BeamWidth {
		return Result{}, errors.Wrapf(ErrConfig, "top paths %d exceeds beam width %d", n, d.cfg.BeamWidth)
	}
	if !d.finalized {
		for _, e := range d.leaves {
			d.scorer.ExpandStateEnd(&e.state)
			e.newp.total = mathutil.LogMul(e.newp.total, d.scorer.StateEndExpansionScore(&e.state))
		}
		sort.SliceStable(d.leaves, func(i, j int) bool {
			return d.leaves[i].newp.total > d.leaves[j].newp.total
		})
		d.finalized = true
	}

	res := Result{Paths: make([]Path, 0, n)}
	for _, e := range d.leaves {
		if len(res.Paths) == n {
			break
		}
		res.Paths = append(res.Paths, Path{Labels: e.labels(), LogProb: e.newp.total})
	}
	for len(res.Paths) < n {
		res.Paths = append(res.Paths, Path{Labels: []int{}, LogProb: mathutil.LogZero})
	}
	return res, nil
}

// Decode resets the decoder, consumes the first seqLen rows of inputs and
// returns the topPaths best sequences.
func (d *BeamSearchDecoder[S]) Decode(inputs [][]float64, seqLen, topPaths int) (Result, error) {
	if seqLen < 0 || seqLen > len(inputs) {
		return Result{}, errors.Wrapf(ErrInvalidInput, "sequence length %d, have %d steps", seqLen, len(inputs))
	}
	if topPaths < 1 {
		return Result{}, errors.Wrapf(ErrInvalidInput, "top paths %d", topPaths)
	}
	if topPaths > d.cfg.BeamWidth {
		return Result{}, errors.Wrapf(ErrConfig, "top paths %d exceeds beam width %d", topPaths, d.cfg.BeamWidth)
	}
	d.Reset()
	for t := 0; t < seqLen; t++ {
		if err := d.Step(inputs[t]); err != nil {
			return Result{}, errors.Wrapf(err, "step %d", t)
		}
	}
	return d.TopPaths(topPaths)
}
