package lexicon

import (
	"strings"

	"github.com/pkg/errors"
)

// DefaultAlphabet maps 'a'..'z' to labels 0..25.
const DefaultAlphabet = "abcdefghijklmnopqrstuvwxyz"

// ErrFormat is returned when a vocabulary source cannot be parsed.
var ErrFormat = errors.New("lexicon: format error")

// Alphabet maps symbols to contiguous labels starting at 0.
type Alphabet struct {
	symbols []rune
	index   map[rune]int
}

// NewAlphabet builds an alphabet where the i-th rune of symbols gets label i.
func NewAlphabet(symbols string) (*Alphabet, error) {
	if symbols == "" {
		return nil, errors.Wrap(ErrFormat, "empty alphabet")
	}
	a := &Alphabet{index: make(map[rune]int)}
	for _, r := range symbols {
		if _, dup := a.index[r]; dup {
			return nil, errors.Wrapf(ErrFormat, "duplicate alphabet symbol %q", r)
		}
		a.index[r] = len(a.symbols)
		a.symbols = append(a.symbols, r)
	}
	return a, nil
}

// MustAlphabet is like NewAlphabet but panics on error.
func MustAlphabet(symbols string) *Alphabet {
	a, err := NewAlphabet(symbols)
	if err != nil {
		panic(err)
	}
	return a
}

// Size returns the number of symbols.
func (a *Alphabet) Size() int {
	return len(a.symbols)
}

// Label returns the label for r.
func (a *Alphabet) Label(r rune) (int, bool) {
	l, ok := a.index[r]
	return l, ok
}

// Encode converts a word into labels.
func (a *Alphabet) Encode(word string) ([]int, error) {
	labels := make([]int, 0, len(word))
	for _, r := range word {
		l, ok := a.index[r]
		if !ok {
			return nil, errors.Wrapf(ErrFormat, "symbol %q not in alphabet", r)
		}
		labels = append(labels, l)
	}
	return labels, nil
}

// Decode converts labels back to text. Labels outside the alphabet are skipped.
func (a *Alphabet) Decode(labels []int) string {
	var sb strings.Builder
	for _, l := range labels {
		if l >= 0 && l < len(a.symbols) {
			sb.WriteRune(a.symbols[l])
		}
	}
	return sb.String()
}
