package decoder

import "github.com/pkg/errors"

// Config holds beam search parameters.
type Config struct {
	NumClasses           int     // output classes, blank included
	BeamWidth            int     // maximum number of hypotheses kept per step
	MergeRepeated        bool    // collapse repeated labels not separated by blank
	LabelSelectionSize   int     // expand only the top-K classes per step; 0 disables
	LabelSelectionMargin float64 // expand only classes within margin of the best; < 0 disables
}

// DefaultConfig returns reasonable default parameters.
func DefaultConfig(numClasses int) Config {
	return Config{
		NumClasses:           numClasses,
		BeamWidth:            100,
		MergeRepeated:        true,
		LabelSelectionSize:   0,
		LabelSelectionMargin: -1,
	}
}

// Blank returns the blank label, always the last class.
func (c Config) Blank() int {
	return c.NumClasses - 1
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.NumClasses < 2 {
		return errors.Wrapf(ErrConfig, "num classes %d, need at least 2", c.NumClasses)
	}
	if c.BeamWidth < 1 {
		return errors.Wrapf(ErrConfig, "beam width %d", c.BeamWidth)
	}
	if c.LabelSelectionSize < 0 {
		return errors.Wrapf(ErrConfig, "label selection size %d", c.LabelSelectionSize)
	}
	return nil
}
