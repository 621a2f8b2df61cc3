// Package ctcdecode turns per-step class scores from a CTC acoustic model
// into label sequences, optionally restricted to a dictionary.
package ctcdecode

import (
	"context"
	"os"

	"github.com/ieee0824/ctcdecode/decoder"
	"github.com/ieee0824/ctcdecode/lexicon"
	"github.com/ieee0824/ctcdecode/trie"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Recognizer is the top-level CTC decoder. It is safe for concurrent use;
// every call runs on its own beam search decoder.
type Recognizer struct {
	DecCfg    decoder.Config
	TopPaths  int
	MultiWord bool
	Alphabet  *lexicon.Alphabet
	Log       *logrus.Logger
	Workers   int // batch parallelism, 0 = GOMAXPROCS
	Observer  decoder.Observer

	scorer decoder.BeamScorer[decoder.TrieState]
	dict   *trie.Node
}

// Option configures a Recognizer.
type Option func(*Recognizer)

// WithDecoderConfig sets custom decoder parameters. A zero NumClasses is
// filled in from the constructor argument.
func WithDecoderConfig(cfg decoder.Config) Option {
	return func(r *Recognizer) {
		r.DecCfg = cfg
	}
}

// WithTopPaths sets how many paths Recognize returns.
func WithTopPaths(n int) Option {
	return func(r *Recognizer) {
		r.TopPaths = n
	}
}

// WithMultiWord lets dictionary recognizers accept sequences of words.
func WithMultiWord(enabled bool) Option {
	return func(r *Recognizer) {
		r.MultiWord = enabled
	}
}

// WithAlphabet sets the symbols used to read dictionaries and render text.
func WithAlphabet(a *lexicon.Alphabet) Option {
	return func(r *Recognizer) {
		r.Alphabet = a
	}
}

// WithLogger sets the logger used while loading dictionaries.
func WithLogger(l *logrus.Logger) Option {
	return func(r *Recognizer) {
		r.Log = l
	}
}

// WithWorkers limits RecognizeBatch parallelism.
func WithWorkers(n int) Option {
	return func(r *Recognizer) {
		r.Workers = n
	}
}

// WithObserver reports every decoded sequence to o.
func WithObserver(o decoder.Observer) Option {
	return func(r *Recognizer) {
		r.Observer = o
	}
}

func newRecognizer(numClasses int, opts []Option) (*Recognizer, error) {
	r := &Recognizer{
		DecCfg:   decoder.DefaultConfig(numClasses),
		TopPaths: 1,
		Alphabet: lexicon.MustAlphabet(lexicon.DefaultAlphabet),
		Log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.DecCfg.NumClasses == 0 {
		r.DecCfg.NumClasses = numClasses
	}
	if r.DecCfg.NumClasses != numClasses {
		return nil, errors.Wrapf(decoder.ErrConfig, "decoder config has %d classes, recognizer %d", r.DecCfg.NumClasses, numClasses)
	}
	if err := r.DecCfg.Validate(); err != nil {
		return nil, err
	}
	if r.TopPaths < 1 || r.TopPaths > r.DecCfg.BeamWidth {
		return nil, errors.Wrapf(decoder.ErrConfig, "top paths %d, beam width %d", r.TopPaths, r.DecCfg.BeamWidth)
	}
	if r.Alphabet == nil {
		return nil, errors.Wrap(decoder.ErrConfig, "nil alphabet")
	}
	return r, nil
}

// NewRecognizer creates a Recognizer without dictionary constraints.
func NewRecognizer(numClasses int, opts ...Option) (*Recognizer, error) {
	r, err := newRecognizer(numClasses, opts)
	if err != nil {
		return nil, err
	}
	r.scorer = decoder.DefaultScorer[decoder.TrieState]{}
	return r, nil
}

// NewDictionaryRecognizer creates a Recognizer restricted to the words of a
// vocabulary file, one word per line.
func NewDictionaryRecognizer(numClasses int, dictPath string, opts ...Option) (*Recognizer, error) {
	r, err := newRecognizer(numClasses, opts)
	if err != nil {
		return nil, err
	}
	v, err := lexicon.LoadFile(dictPath, r.Alphabet)
	if err != nil {
		return nil, errors.Wrap(err, "load dictionary")
	}
	r.useTrie(trie.Build(v.Words()), v.Size())
	return r, nil
}

// NewTrieRecognizer creates a Recognizer from a trie written by gentrie.
func NewTrieRecognizer(numClasses int, triePath string, opts ...Option) (*Recognizer, error) {
	r, err := newRecognizer(numClasses, opts)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(triePath)
	if err != nil {
		return nil, errors.Wrap(err, "open trie")
	}
	defer f.Close()
	root, err := trie.Read(f)
	if err != nil {
		return nil, errors.Wrap(err, "load trie")
	}
	r.useTrie(root, -1)
	return r, nil
}

// NewWordsRecognizer creates a Recognizer restricted to the given words,
// spelled with the recognizer's alphabet.
func NewWordsRecognizer(numClasses int, words []string, opts ...Option) (*Recognizer, error) {
	r, err := newRecognizer(numClasses, opts)
	if err != nil {
		return nil, err
	}
	root := trie.New()
	for _, w := range words {
		labels, err := r.Alphabet.Encode(w)
		if err != nil {
			return nil, errors.Wrapf(err, "word %q", w)
		}
		root.Insert(labels)
	}
	r.useTrie(root, len(words))
	return r, nil
}

func (r *Recognizer) useTrie(root *trie.Node, words int) {
	r.dict = root
	r.scorer = decoder.NewTrieScorer(root, r.DecCfg.Blank(), r.MultiWord)

	fields := logrus.Fields{"nodes": root.Size(), "multiWord": r.MultiWord}
	if words >= 0 {
		fields["words"] = words
	}
	r.Log.WithFields(fields).Info("Dictionary loaded")
	if l := root.MaxLabel(); l >= r.DecCfg.Blank() {
		r.Log.WithFields(logrus.Fields{"label": l, "blank": r.DecCfg.Blank()}).
			Warn("Dictionary uses labels the model can never emit")
	}
}

// Dictionary returns the dictionary trie, or nil for an unconstrained recognizer.
func (r *Recognizer) Dictionary() *trie.Node {
	return r.dict
}

// Recognize decodes one sequence of per-step log probabilities.
func (r *Recognizer) Recognize(inputs [][]float64) (decoder.Result, error) {
	res, err := r.RecognizeBatch(context.Background(), [][][]float64{inputs}, []int{len(inputs)})
	if err != nil {
		return decoder.Result{}, err
	}
	return res[0], nil
}

// RecognizeBatch decodes several sequences in parallel. seqLens[i] steps of
// inputs[i] are used.
func (r *Recognizer) RecognizeBatch(ctx context.Context, inputs [][][]float64, seqLens []int) ([]decoder.Result, error) {
	opts := []decoder.BatchOption{decoder.WithWorkers(r.Workers)}
	if r.Observer != nil {
		opts = append(opts, decoder.WithObserver(r.Observer))
	}
	return decoder.DecodeBatch(ctx, r.DecCfg, r.scorer, inputs, seqLens, r.TopPaths, opts...)
}

// Greedy returns the best alignment path, ignoring the dictionary.
func (r *Recognizer) Greedy(inputs [][]float64, seqLen int) (decoder.Path, error) {
	return decoder.Greedy(r.DecCfg, inputs, seqLen)
}

// Text renders labels with the recognizer's alphabet.
func (r *Recognizer) Text(labels []int) string {
	return r.Alphabet.Decode(labels)
}
