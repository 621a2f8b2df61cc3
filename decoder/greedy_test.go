package decoder

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inf() float64 { return math.Inf(1) }

func TestGreedy(t *testing.T) {
	cfg := DefaultConfig(numClasses)
	inputs := oneHot(2, 2, blank, 2, 1, 1)

	p, err := Greedy(cfg, inputs, len(inputs))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2, 1}, p.Labels)
	assert.InDelta(t, 6*math.Log(0.9), p.LogProb, 1e-12)

	cfg.MergeRepeated = false
	p, err = Greedy(cfg, inputs, len(inputs))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2, 2, 1, 1}, p.Labels)
}

func TestGreedy_Empty(t *testing.T) {
	p, err := Greedy(DefaultConfig(numClasses), nil, 0)
	require.NoError(t, err)
	assert.Empty(t, p.Labels)
	assert.Equal(t, 0.0, p.LogProb)
}

func TestGreedy_Errors(t *testing.T) {
	cfg := DefaultConfig(numClasses)
	_, err := Greedy(cfg, oneHot(1), 2)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = Greedy(cfg, [][]float64{{0, 0}}, 1)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	in := oneHot(1)
	in[0][3] = math.NaN()
	_, err = Greedy(cfg, in, 1)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = Greedy(Config{NumClasses: 1}, nil, 0)
	assert.True(t, errors.Is(err, ErrConfig))
}
