// Package document holds the request and response documents shared by the
// decode command and the HTTP service.
package document

import (
	"io"

	"github.com/ieee0824/ctcdecode/decoder"
	"github.com/ieee0824/ctcdecode/internal/mathutil"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Sequence is one input sequence. Length defaults to len(Steps). Reference
// is the expected text, used to report label errors.
type Sequence struct {
	Length    *int        `yaml:"length,omitempty" json:"length,omitempty"`
	Reference string      `yaml:"reference,omitempty" json:"reference,omitempty"`
	Steps     [][]float64 `yaml:"steps" json:"steps"`
}

// Input is a batch of sequences. Steps hold log probabilities unless
// Probabilities is set.
type Input struct {
	Probabilities bool       `yaml:"probabilities,omitempty" json:"probabilities,omitempty"`
	Sequences     []Sequence `yaml:"sequences" json:"sequences"`
}

// Read parses a YAML input document. JSON documents are accepted as well.
func Read(r io.Reader) (*Input, error) {
	var in Input
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&in); err != nil {
		if errors.Is(err, io.EOF) {
			return &in, nil
		}
		return nil, errors.Wrap(err, "parse input document")
	}
	return &in, nil
}

// Batch converts the document into decoder inputs.
func (in *Input) Batch() ([][][]float64, []int) {
	inputs := make([][][]float64, len(in.Sequences))
	seqLens := make([]int, len(in.Sequences))
	for i, s := range in.Sequences {
		inputs[i] = s.Steps
		if in.Probabilities {
			inputs[i] = mathutil.LogMat(s.Steps)
		}
		seqLens[i] = len(s.Steps)
		if s.Length != nil {
			seqLens[i] = *s.Length
		}
	}
	return inputs, seqLens
}

// Path is one decoded label sequence.
type Path struct {
	Labels   []int   `yaml:"labels,flow" json:"labels"`
	Text     string  `yaml:"text,omitempty" json:"text,omitempty"`
	LogProb  float64 `yaml:"logProb" json:"logProb"`
	Rejected bool    `yaml:"rejected,omitempty" json:"rejected,omitempty"`
}

// Result holds the paths of one sequence, best first.
type Result struct {
	Paths  []Path `yaml:"paths" json:"paths"`
	Greedy *Path  `yaml:"greedy,omitempty" json:"greedy,omitempty"`
	// Errors is the edit distance between the best path and the reference.
	Errors *int `yaml:"errors,omitempty" json:"errors,omitempty"`
}

// Output is the response document.
type Output struct {
	Results []Result `yaml:"results" json:"results"`
}

// NewOutput converts decoder results. text renders labels and may be nil.
func NewOutput(results []decoder.Result, text func([]int) string) *Output {
	out := &Output{Results: make([]Result, len(results))}
	for i, r := range results {
		paths := make([]Path, len(r.Paths))
		for j, p := range r.Paths {
			paths[j] = NewPath(p, text)
		}
		out.Results[i] = Result{Paths: paths}
	}
	return out
}

// NewPath converts one decoder path.
func NewPath(p decoder.Path, text func([]int) string) Path {
	res := Path{Labels: p.Labels, LogProb: p.LogProb, Rejected: p.Rejected()}
	if res.Labels == nil {
		res.Labels = []int{}
	}
	if text != nil {
		res.Text = text(p.Labels)
	}
	return res
}

// Write encodes out as YAML.
func Write(w io.Writer, out *Output) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(err, "write output document")
	}
	return enc.Close()
}
