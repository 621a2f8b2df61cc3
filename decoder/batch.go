package decoder

import (
	"context"
	"runtime"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Observer is notified after every sequence decoded by DecodeBatch.
type Observer interface {
	ObserveDecode(timesteps int, elapsed time.Duration, res Result)
}

type batchOptions struct {
	workers  int
	observer Observer
}

// BatchOption configures DecodeBatch.
type BatchOption func(*batchOptions)

// WithWorkers limits the number of sequences decoded concurrently.
// Values below one fall back to GOMAXPROCS.
func WithWorkers(n int) BatchOption {
	return func(o *batchOptions) { o.workers = n }
}

// WithObserver reports every decoded sequence to o.
func WithObserver(o Observer) BatchOption {
	return func(opts *batchOptions) { opts.observer = o }
}

// DecodeBatch decodes every sequence of a batch with its own decoder and a
// shared scorer. The whole batch is validated before any decoding starts.
// Cancellation of ctx is checked between sequences.
func DecodeBatch[S any](ctx context.Context, cfg Config, scorer BeamScorer[S], inputs [][][]float64, seqLens []int, topPaths int, opts ...BatchOption) ([]Result, error) {
	o := batchOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = runtime.GOMAXPROCS(0)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if scorer == nil {
		return nil, errors.Wrap(ErrConfig, "nil scorer")
	}
	if err := validateBatch(cfg, inputs, seqLens, topPaths); err != nil {
		return nil, err
	}

	results := make([]Result, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i := range inputs {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			d, err := New(cfg, scorer)
			if err != nil {
				return err
			}
			start := time.Now()
			res, err := d.Decode(inputs[i], seqLens[i], topPaths)
			if err != nil {
				return errors.Wrapf(err, "batch element %d", i)
			}
			if o.observer != nil {
				o.observer.ObserveDecode(seqLens[i], time.Since(start), res)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func validateBatch(cfg Config, inputs [][][]float64, seqLens []int, topPaths int) error {
	if len(seqLens) != len(inputs) {
		return errors.Wrapf(ErrInvalidInput, "%d sequence lengths for %d sequences", len(seqLens), len(inputs))
	}
	if topPaths < 1 {
		return errors.Wrapf(ErrInvalidInput, "top paths %d", topPaths)
	}
	if topPaths > cfg.BeamWidth {
		return errors.Wrapf(ErrConfig, "top paths %d exceeds beam width %d", topPaths, cfg.BeamWidth)
	}
	for i, n := range seqLens {
		if n < 0 || n > len(inputs[i]) {
			return errors.Wrapf(ErrInvalidInput, "batch element %d: sequence length %d, have %d steps", i, n, len(inputs[i]))
		}
		for t := 0; t < n; t++ {
			if len(inputs[i][t]) != cfg.NumClasses {
				return errors.Wrapf(ErrInvalidInput, "batch element %d: step %d has %d classes, want %d", i, t, len(inputs[i][t]), cfg.NumClasses)
			}
		}
	}
	return nil
}
