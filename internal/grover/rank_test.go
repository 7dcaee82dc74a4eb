package grover

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/motifqu/motifqu/internal/backend"
)

func TestRankOrdersByProbability(t *testing.T) {
	probs := backend.Distribution{0.1, 0.6, 0.3}

	got := Rank(probs, 2)

	assert.Equal(t, []Outcome{{Index: 1, Prob: 0.6}, {Index: 2, Prob: 0.3}}, got)
}

func TestRankTiesBreakByIndex(t *testing.T) {
	probs := backend.Distribution{0.25, 0.25, 0.25, 0.25}

	got := Rank(probs, 4)

	for i, o := range got {
		assert.Equal(t, i, o.Index, "equal probabilities must rank by ascending index")
	}
}

func TestRankCapsAtSpaceSize(t *testing.T) {
	probs := backend.Distribution{0.5, 0.5}

	got := Rank(probs, 10)

	assert.Len(t, got, 2)
}

func TestRankNonPositiveK(t *testing.T) {
	probs := backend.Distribution{1.0}

	assert.Nil(t, Rank(probs, 0))
	assert.Nil(t, Rank(probs, -1))
}
