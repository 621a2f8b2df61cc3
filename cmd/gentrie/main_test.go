package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ieee0824/ctcdecode/lexicon"
	"github.com/ieee0824/ctcdecode/trie"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	vocab := filepath.Join(dir, "vocab.txt")
	out := filepath.Join(dir, "vocab.trie")
	require.NoError(t, os.WriteFile(vocab, []byte("cat\ncar\n# comment\ndog\n"), 0o644))

	words, nodes, err := generate(vocab, out, lexicon.DefaultAlphabet)
	require.NoError(t, err)
	assert.Equal(t, 3, words)
	assert.Equal(t, 8, nodes)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	root, err := trie.Read(f)
	require.NoError(t, err)
	assert.True(t, root.Contains([]int{2, 0, 19}))
	assert.True(t, root.Contains([]int{3, 14, 6}))
	assert.False(t, root.Contains([]int{2, 0}))
}

func TestGenerate_CustomAlphabet(t *testing.T) {
	dir := t.TempDir()
	vocab := filepath.Join(dir, "vocab.txt")
	require.NoError(t, os.WriteFile(vocab, []byte("ba\n"), 0o644))

	words, nodes, err := generate(vocab, filepath.Join(dir, "out"), "ba")
	require.NoError(t, err)
	assert.Equal(t, 1, words)
	assert.Equal(t, 3, nodes)
}

func TestGenerate_Errors(t *testing.T) {
	dir := t.TempDir()
	vocab := filepath.Join(dir, "vocab.txt")
	require.NoError(t, os.WriteFile(vocab, []byte("Cat\n"), 0o644))

	_, _, err := generate(vocab, filepath.Join(dir, "out"), lexicon.DefaultAlphabet)
	assert.True(t, errors.Is(err, lexicon.ErrFormat))

	_, _, err = generate(filepath.Join(dir, "missing"), filepath.Join(dir, "out"), lexicon.DefaultAlphabet)
	assert.Error(t, err)

	_, _, err = generate(vocab, filepath.Join(dir, "out"), "")
	assert.True(t, errors.Is(err, lexicon.ErrFormat))
}
