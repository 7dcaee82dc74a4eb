package backend

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/motifqu/motifqu/internal/circuit"
	"github.com/motifqu/motifqu/internal/sim"
)

// Emulated is a local shot-based sampler: it evaluates the exact
// distribution, then draws a finite shot budget from it. Useful for
// exercising the sampling code path without a provider, and for tests.
// Counts sum to the shot budget exactly by construction.
type Emulated struct {
	seed int64
	log  zerolog.Logger
}

// NewEmulated creates the emulated sampler. A zero seed draws a fresh seed
// per execution; a fixed seed makes sampling reproducible.
func NewEmulated(seed int64, log zerolog.Logger) *Emulated {
	return &Emulated{seed: seed, log: log}
}

func (b *Emulated) Name() string { return "emulated" }

func (b *Emulated) Execute(ctx context.Context, c *circuit.Circuit, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Shots <= 0 {
		return nil, fmt.Errorf("shot count must be positive, got %d", opts.Shots)
	}

	state, err := sim.Run(Optimize(c, opts.OptLevel))
	if err != nil {
		return nil, err
	}
	exact := sim.Probabilities(state)

	seed := b.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	counts := make(map[string]int)
	for shot := 0; shot < opts.Shots; shot++ {
		counts[IndexToBits(draw(rng, exact), c.Qubits)]++
	}

	jobID := uuid.NewString()
	b.log.Debug().Str("job_id", jobID).Int("shots", opts.Shots).Int("unique_outcomes", len(counts)).Msg("emulated sampling done")

	probs, err := CountsToDistribution(counts, c.Qubits, opts.Shots)
	if err != nil {
		return nil, err
	}

	if opts.OutputDir != "" {
		art := Artifact{
			JobID:      jobID,
			Backend:    b.Name(),
			Shots:      opts.Shots,
			OptLevel:   opts.OptLevel,
			Depth:      c.Depth(),
			GateCounts: c.GateCounts(),
			Qubits:     c.Qubits,
			Counts:     counts,
			CreatedAt:  time.Now().UTC(),
		}
		if _, err := WriteArtifact(opts.OutputDir, art); err != nil {
			return nil, fmt.Errorf("persist job record: %w", err)
		}
	}

	return &Result{Probs: probs, Counts: counts, JobID: jobID, Backend: b.Name()}, nil
}

// draw samples one outcome index from a probability vector by inverse
// transform. Residual float mass lands on the last index.
func draw(rng *rand.Rand, probs []float64) int {
	r := rng.Float64()
	acc := 0.0
	for i, p := range probs {
		acc += p
		if r < acc {
			return i
		}
	}
	return len(probs) - 1
}
