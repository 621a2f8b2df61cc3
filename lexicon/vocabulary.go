package lexicon

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// Vocabulary is an ordered, immutable list of words, each a sequence of labels.
type Vocabulary struct {
	words [][]int
}

// NewVocabulary creates a vocabulary from caller-supplied label sequences.
// The words are copied. Only non-negativity of labels is checked.
func NewVocabulary(words [][]int) (*Vocabulary, error) {
	v := &Vocabulary{words: make([][]int, len(words))}
	for i, w := range words {
		for _, l := range w {
			if l < 0 {
				return nil, errors.Wrapf(ErrFormat, "word %d: negative label %d", i, l)
			}
		}
		v.words[i] = append([]int(nil), w...)
	}
	return v, nil
}

// Load reads a vocabulary with one word per line, mapping each symbol through a.
// Empty lines and lines starting with '#' are skipped.
func Load(r io.Reader, a *Alphabet) (*Vocabulary, error) {
	v := &Vocabulary{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		labels, err := a.Encode(line)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", lineNum)
		}
		v.words = append(v.words, labels)
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read vocabulary")
	}
	return v, nil
}

// LoadFile is a convenience wrapper that opens a file path.
func LoadFile(path string, a *Alphabet) (*Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f, a)
}

// Size returns the number of words.
func (v *Vocabulary) Size() int {
	return len(v.words)
}

// Words returns the words in insertion order. The result must not be modified.
func (v *Vocabulary) Words() [][]int {
	return v.words
}
