package backend

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motifqu/motifqu/internal/circuit"
)

func TestEmulatedCountsSumToShots(t *testing.T) {
	c := circuit.New(3)
	c.HAll()

	const shots = 1000
	res, err := NewEmulated(7, zerolog.Nop()).Execute(context.Background(), c, Options{Shots: shots})
	require.NoError(t, err)

	total := 0
	for _, n := range res.Counts {
		total += n
	}
	assert.Equal(t, shots, total)
	assert.InDelta(t, 1.0, res.Probs.Total(), 1e-12)
	assert.NotEmpty(t, res.JobID)
	assert.Equal(t, "emulated", res.Backend)
}

func TestEmulatedDeterministicWithSeed(t *testing.T) {
	c := circuit.New(2)
	c.HAll()

	run := func() map[string]int {
		res, err := NewEmulated(42, zerolog.Nop()).Execute(context.Background(), c, Options{Shots: 256})
		require.NoError(t, err)
		return res.Counts
	}
	assert.Equal(t, run(), run())
}

func TestEmulatedConcentratesOnCertainOutcome(t *testing.T) {
	// |0> -X-> |1> on line 1: every shot lands on index 2.
	c := circuit.New(2)
	c.X(1)

	res, err := NewEmulated(1, zerolog.Nop()).Execute(context.Background(), c, Options{Shots: 128})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"01": 128}, res.Counts)
	assert.InDelta(t, 1.0, res.Probs[2], 1e-12)
}

func TestEmulatedRequiresShots(t *testing.T) {
	c := circuit.New(1)
	c.H(0)
	_, err := NewEmulated(1, zerolog.Nop()).Execute(context.Background(), c, Options{})
	assert.ErrorContains(t, err, "must be positive")
}
