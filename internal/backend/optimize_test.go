package backend

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motifqu/motifqu/internal/circuit"
)

func TestOptimizeLevelZeroIsIdentity(t *testing.T) {
	c := circuit.New(2)
	c.H(0)
	c.H(0)

	out := Optimize(c, 0)
	assert.Len(t, out.Gates, 2)
	assert.Len(t, c.Gates, 2, "input untouched")
}

func TestOptimizeCancelsAdjacentPairs(t *testing.T) {
	c := circuit.New(2)
	c.H(0)
	c.X(1)
	c.X(1)
	c.H(0)

	out := Optimize(c, 1)
	assert.Empty(t, out.Gates, "nested self-inverse pairs collapse")
}

func TestOptimizeCommuteAware(t *testing.T) {
	c := circuit.New(3)
	c.X(0)
	c.H(1) // disjoint line between the X pair
	c.X(0)

	assert.Len(t, Optimize(c, 1).Gates, 3, "level 1 only sees adjacency")
	assert.Len(t, Optimize(c, 3).Gates, 1, "level 3 cancels across disjoint gates")
}

func TestOptimizeKeepsNonCancellable(t *testing.T) {
	c := circuit.New(2)
	c.X(0)
	c.MCX([]int{0}, 1) // shares line 0, blocks cancellation
	c.X(0)

	assert.Len(t, Optimize(c, 3).Gates, 3)
}

// Tuning levels are performance transforms only; the observable
// distribution must be identical at every level.
func TestOptimizeNeverChangesDistribution(t *testing.T) {
	c := circuit.New(3)
	c.HAll()
	for i := 0; i < 2; i++ {
		require.NoError(t, circuit.Oracle(c, []int{0, 4}))
		circuit.Diffuser(c)
	}

	var base Distribution
	for level := 0; level <= 3; level++ {
		res, err := NewStatevector(zerolog.Nop()).Execute(context.Background(), c, Options{OptLevel: level})
		require.NoError(t, err)
		if base == nil {
			base = res.Probs
			continue
		}
		require.Len(t, res.Probs, len(base))
		for i := range base {
			assert.InDelta(t, base[i], res.Probs[i], 1e-12, "level %d index %d", level, i)
		}
	}
}

func TestStatevectorExactMass(t *testing.T) {
	c := circuit.New(4)
	c.HAll()

	res, err := NewStatevector(zerolog.Nop()).Execute(context.Background(), c, Options{})
	require.NoError(t, err)
	assert.Len(t, res.Probs, 16)
	assert.InDelta(t, 1.0, res.Probs.Total(), 1e-9)
	assert.Nil(t, res.Counts)
	assert.Equal(t, "statevector", res.Backend)
}
