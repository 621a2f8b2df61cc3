package decoder

import "github.com/ieee0824/ctcdecode/internal/mathutil"

// probs holds the log probabilities of a prefix at one time step.
type probs struct {
	total float64 // blank + label
	blank float64 // paths ending in blank
	label float64 // paths ending in the prefix's last label
}

func (p *probs) reset() {
	p.total = mathutil.LogZero
	p.blank = mathutil.LogZero
	p.label = mathutil.LogZero
}

// beamEntry is a node of the prefix tree built during search. The label
// sequence of a hypothesis is the path from the root to its entry.
type beamEntry[S any] struct {
	parent   *beamEntry[S]
	label    int
	children map[int]*beamEntry[S]
	oldp     probs
	newp     probs
	state    S
	inBeam   bool
}

func newBeamEntry[S any](parent *beamEntry[S], label int) *beamEntry[S] {
	e := &beamEntry[S]{parent: parent, label: label}
	e.oldp.reset()
	e.newp.reset()
	return e
}

// child returns the entry for label, creating it on first use.
func (e *beamEntry[S]) child(label int) *beamEntry[S] {
	if c, ok := e.children[label]; ok {
		return c
	}
	if e.children == nil {
		e.children = make(map[int]*beamEntry[S])
	}
	c := newBeamEntry(e, label)
	e.children[label] = c
	return c
}

func (e *beamEntry[S]) labels() []int {
	n := 0
	for c := e; c.parent != nil; c = c.parent {
		n++
	}
	out := make([]int, n)
	for c := e; c.parent != nil; c = c.parent {
		n--
		out[n] = c.label
	}
	return out
}
