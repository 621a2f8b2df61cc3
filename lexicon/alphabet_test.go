package lexicon

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAlphabet(t *testing.T) {
	a := MustAlphabet(DefaultAlphabet)
	assert.Equal(t, 26, a.Size())
	l, ok := a.Label('a')
	assert.True(t, ok)
	assert.Equal(t, 0, l)
	l, ok = a.Label('z')
	assert.True(t, ok)
	assert.Equal(t, 25, l)
	_, ok = a.Label('A')
	assert.False(t, ok)
}

func TestAlphabetEncodeDecode(t *testing.T) {
	a := MustAlphabet(DefaultAlphabet)
	labels, err := a.Encode("lazy")
	require.NoError(t, err)
	assert.Equal(t, []int{11, 0, 25, 24}, labels)
	assert.Equal(t, "lazy", a.Decode(labels))
	assert.Equal(t, "az", a.Decode([]int{0, 26, -1, 25}))
}

func TestNewAlphabet_Errors(t *testing.T) {
	_, err := NewAlphabet("")
	assert.True(t, errors.Is(err, ErrFormat))
	_, err = NewAlphabet("abca")
	assert.True(t, errors.Is(err, ErrFormat))
}

func TestMustAlphabet_Panics(t *testing.T) {
	assert.Panics(t, func() { MustAlphabet("aa") })
}
