package decoder

import (
	"github.com/ieee0824/ctcdecode/internal/mathutil"
	"github.com/ieee0824/ctcdecode/lexicon"
	"github.com/ieee0824/ctcdecode/trie"
)

// TrieState tracks where a hypothesis sits in the dictionary trie.
type TrieState struct {
	node *trie.Node
	word []int
}

// Node returns the current trie node, nil once the hypothesis is rejected.
func (s *TrieState) Node() *trie.Node {
	return s.node
}

// Word returns the labels of the word being spelled.
func (s *TrieState) Word() []int {
	return s.word
}

// Rejected reports whether the hypothesis left the dictionary.
func (s *TrieState) Rejected() bool {
	return s.node == nil
}

// TrieScorer restricts hypotheses to words of a dictionary trie. In
// multi-word mode a hypothesis that completes a word starts over at the
// root, so sequences of dictionary words are accepted. The reset happens
// on every completed word, so a longer word sharing that prefix can only be
// matched as a sequence of shorter ones.
type TrieScorer struct {
	root      *trie.Node
	blank     int
	multiWord bool
}

var _ BeamScorer[TrieState] = (*TrieScorer)(nil)

// NewTrieScorer creates a scorer over an existing trie.
func NewTrieScorer(root *trie.Node, blank int, multiWord bool) *TrieScorer {
	return &TrieScorer{root: root, blank: blank, multiWord: multiWord}
}

// NewVocabularyScorer builds a trie from v and returns a scorer over it.
func NewVocabularyScorer(v *lexicon.Vocabulary, blank int, multiWord bool) *TrieScorer {
	return NewTrieScorer(trie.Build(v.Words()), blank, multiWord)
}

// Root returns the dictionary trie.
func (s *TrieScorer) Root() *trie.Node {
	return s.root
}

func (s *TrieScorer) InitializeState(root *TrieState) {
	root.node = s.root
	root.word = root.word[:0]
}

func (s *TrieScorer) ExpandState(from *TrieState, fromLabel int, to *TrieState, toLabel int) {
	if from.node == nil {
		to.node = nil
		to.word = to.word[:0]
		return
	}
	node := from.node
	word := from.word
	if s.multiWord && node.IsEndOfWord() {
		node = s.root
		word = nil
	}
	to.word = append(to.word[:0], word...)
	if toLabel == s.blank {
		to.node = node
		return
	}
	to.node = node.ChildAt(toLabel)
	to.word = append(to.word, toLabel)
}

func (s *TrieScorer) ExpandStateEnd(state *TrieState) {
	if state.node != nil && !state.node.IsEndOfWord() {
		state.node = nil
		state.word = state.word[:0]
	}
}

func (s *TrieScorer) StateExpansionScore(state *TrieState, previous float64) float64 {
	if state.node == nil {
		return mathutil.LogZero
	}
	return previous
}

func (s *TrieScorer) StateEndExpansionScore(state *TrieState) float64 {
	if state.node == nil {
		return mathutil.LogZero
	}
	return 0
}
