package decoder

import "github.com/ieee0824/ctcdecode/internal/mathutil"

// Path is one decoded label sequence with its log probability.
type Path struct {
	Labels  []int
	LogProb float64
}

// Rejected reports whether the path was rejected by the scorer.
func (p Path) Rejected() bool {
	return mathutil.IsLogZero(p.LogProb)
}

// Result holds the recognition output, best path first.
type Result struct {
	Paths []Path
}

// Best returns the highest scoring path.
func (r Result) Best() Path {
	if len(r.Paths) == 0 {
		return Path{LogProb: mathutil.LogZero}
	}
	return r.Paths[0]
}

// AllRejected reports whether no path survived.
func (r Result) AllRejected() bool {
	for _, p := range r.Paths {
		if !p.Rejected() {
			return false
		}
	}
	return true
}
