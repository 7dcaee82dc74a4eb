package backend

import (
	"context"
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/motifqu/motifqu/internal/circuit"
	"github.com/motifqu/motifqu/internal/sim"
)

// Statevector is the exact-simulation variant: it evaluates the full complex
// amplitude vector and returns the squared-magnitude distribution. No
// sampling noise, deterministic for a fixed circuit.
type Statevector struct {
	log zerolog.Logger
}

// NewStatevector creates the exact-simulation backend with an injected
// diagnostic sink.
func NewStatevector(log zerolog.Logger) *Statevector {
	return &Statevector{log: log}
}

func (b *Statevector) Name() string { return "statevector" }

// Execute optimizes, simulates, and returns the exact distribution.
// Optimization is purely a performance transform; the observable
// distribution is identical at every level.
func (b *Statevector) Execute(ctx context.Context, c *circuit.Circuit, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tc := Optimize(c, opts.OptLevel)
	logTranspile(b.log, tc, opts.OptLevel, len(c.Gates))

	state, err := sim.Run(tc)
	if err != nil {
		return nil, err
	}
	probs := Distribution(sim.Probabilities(state))

	if drift := math.Abs(1 - probs.Total()); drift > 1e-9 {
		// Accumulated float error, not a failure.
		b.log.Warn().Float64("drift", drift).Msg("probability mass drifted from 1")
	}

	return &Result{Probs: probs, Backend: b.Name()}, nil
}

// logTranspile emits the depth and gate breakdown of the circuit about to
// execute, largest gate class first.
func logTranspile(log zerolog.Logger, c *circuit.Circuit, level, rawGates int) {
	counts := c.GateCounts()
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	ev := log.Debug().
		Int("opt_level", level).
		Int("depth", c.Depth()).
		Int("gates", len(c.Gates)).
		Int("gates_before_opt", rawGates).
		Int("qubits", c.Qubits)
	breakdown := zerolog.Dict()
	for _, name := range names {
		breakdown = breakdown.Int(name, counts[name])
	}
	ev.Dict("gate_counts", breakdown).Msg("circuit prepared")
}
