// Package backend reduces two very different execution models, exact
// statevector evaluation and shot-based sampling, to one contract: run a
// circuit, get back a probability distribution over every index of the
// register's outcome space.
package backend

import (
	"context"

	"gonum.org/v1/gonum/floats"

	"github.com/motifqu/motifqu/internal/circuit"
)

// Distribution maps outcome index to probability. Length is always 2^n for
// the executed register width; entries are non-negative and sum to 1 within
// the tolerance of the producing variant.
type Distribution []float64

// Total returns the summed probability mass.
func (d Distribution) Total() float64 {
	return floats.Sum(d)
}

// Options carries backend tuning supplied by the caller.
type Options struct {
	// Shots is the measurement budget for sampling variants. Ignored by the
	// exact variant.
	Shots int

	// OptLevel is the gate-optimization aggressiveness, 0-3. Optimization is
	// a performance transform only and never changes the distribution.
	OptLevel int

	// OutputDir, when set, persists the raw job record of sampling runs.
	OutputDir string
}

// Result is the outcome of one execution.
type Result struct {
	// Probs covers every index in [0, 2^n).
	Probs Distribution

	// Counts holds raw sampled outcomes keyed by bit-pattern string; nil for
	// the exact variant.
	Counts map[string]int

	// JobID identifies the sampling job, empty for the exact variant.
	JobID string

	// Backend names the concrete backend that produced the result.
	Backend string
}

// Backend executes circuits. Implementations must be safe for sequential
// reuse across invocations; they hold no per-run state.
type Backend interface {
	Name() string
	Execute(ctx context.Context, c *circuit.Circuit, opts Options) (*Result, error)
}
