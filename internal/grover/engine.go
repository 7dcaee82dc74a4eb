// Package grover implements amplitude-amplification search over the index
// space of candidate motif positions: a classical pre-scan marks the
// matching indices, a phase oracle and an inversion-about-mean diffuser
// amplify them over an n-line register, and an execution backend turns the
// final state into a ranked probability distribution mapped back to genomic
// coordinates.
package grover

import (
	"context"
	"errors"
	"math"
	"math/bits"

	"github.com/rs/zerolog"

	"github.com/motifqu/motifqu/internal/backend"
	"github.com/motifqu/motifqu/internal/circuit"
	"github.com/motifqu/motifqu/internal/genome"
)

// Request carries one search invocation. All fields are value data; the
// engine never retains them past the call.
type Request struct {
	Contig string
	Genome string
	Motif  string

	// Mismatches is the Hamming tolerance of the classical pre-scan.
	Mismatches int

	// TopK is the ranked-outcome count, capped at the padded space size.
	TopK int

	// ProgressEvery logs a progress line every k iterations; 0 disables.
	ProgressEvery int

	// ForceIters overrides the analytic iteration count when positive.
	ForceIters int

	// Exec is passed through to the backend.
	Exec backend.Options
}

// Engine runs amplitude-amplification searches on an injected backend.
// Single-threaded and synchronous per invocation; concurrent independent
// invocations are safe because each call owns its own buffers.
type Engine struct {
	backend backend.Backend
	log     zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger injects the diagnostic sink. Logging is a side channel:
// disabling it changes no return value.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// New creates an Engine on the given execution backend.
func New(b backend.Backend, opts ...Option) *Engine {
	e := &Engine{backend: b, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RegisterWidth returns the smallest n with 2^n >= numPositions, floored at
// one line so the register stays well-formed for single-position inputs.
func RegisterWidth(numPositions int) int {
	if numPositions <= 1 {
		return 1
	}
	return bits.Len(uint(numPositions - 1))
}

// Search executes one amplitude-amplification search.
//
// Fatal preconditions surface as coded RunErrors: empty motif, motif longer
// than the genome, negative tolerance or top-k (INVALID_PARAMETER), and a
// scan with zero matches (EMPTY_MARKED_SET). Backend failures map to
// BACKEND_UNAVAILABLE or REMOTE_EXECUTION.
func (e *Engine) Search(ctx context.Context, req Request) (*Result, error) {
	g := genome.Normalize(req.Genome)
	motif := genome.Normalize(req.Motif)

	if len(motif) == 0 {
		return nil, newRunError(CodeInvalidParameter, "motif is empty")
	}
	if len(motif) > len(g) {
		return nil, newRunError(CodeInvalidParameter, "motif length %d exceeds sequence length %d", len(motif), len(g))
	}
	if req.Mismatches < 0 {
		return nil, newRunError(CodeInvalidParameter, "mismatch tolerance must be >= 0, got %d", req.Mismatches)
	}
	if req.TopK <= 0 {
		return nil, newRunError(CodeInvalidParameter, "top-k must be positive, got %d", req.TopK)
	}

	hits := genome.Scan(g, motif, req.Mismatches)
	if len(hits) == 0 {
		return nil, newRunError(CodeEmptyMarkedSet, "no positions within %d mismatches of %s", req.Mismatches, motif)
	}

	numPositions := len(g) - len(motif) + 1
	n := RegisterWidth(numPositions)
	if n > 30 {
		return nil, newRunError(CodeInvalidParameter, "register width %d is beyond simulable range", n)
	}
	paddedN := 1 << uint(n)
	iters := Iterations(paddedN, len(hits), req.ForceIters)

	e.log.Info().
		Int("hits", len(hits)).
		Int("qubits", n).
		Int("padded_n", paddedN).
		Int("positions", numPositions).
		Int("iterations", iters).
		Str("backend", e.backend.Name()).
		Msg("search configured")

	qc, err := e.compose(n, hits, iters, req.ProgressEvery)
	if err != nil {
		return nil, err
	}

	exec, err := e.backend.Execute(ctx, qc, req.Exec)
	if err != nil {
		return nil, wrapBackendError(err)
	}

	res := &Result{
		Contig:       req.Contig,
		Motif:        motif,
		Ranked:       Rank(exec.Probs, req.TopK),
		Circuit:      qc,
		Probs:        exec.Probs,
		Hits:         hits,
		NumPositions: numPositions,
		Qubits:       n,
		PaddedN:      paddedN,
		Iterations:   iters,
		JobID:        exec.JobID,
		Backend:      exec.Backend,
		hitSet:       make(map[int]bool, len(hits)),
	}
	for _, h := range hits {
		res.hitSet[h] = true
	}

	res.BestIndex = res.Ranked[0].Index
	res.BestProb = res.Ranked[0].Prob
	res.BestDistance = -1
	if res.BestIndex < numPositions {
		// Classical sanity check of the quantum outcome. Informational only,
		// never alters the ranking.
		window := g[res.BestIndex : res.BestIndex+len(motif)]
		res.BestDistance = genome.Hamming(window, motif)
	}

	e.logOutcome(res)
	return res, nil
}

// compose builds the full search circuit: uniform superposition, then iters
// strictly sequential oracle+diffuser rounds.
func (e *Engine) compose(n int, hits []int, iters, progressEvery int) (*circuit.Circuit, error) {
	qc := circuit.New(n)
	qc.HAll()
	for k := 1; k <= iters; k++ {
		if err := circuit.Oracle(qc, hits); err != nil {
			// Only fails on an empty marked set, which the scan check
			// already rules out.
			return nil, newRunError(CodeEmptyMarkedSet, "%v", err)
		}
		circuit.Diffuser(qc)
		if progressEvery > 0 && (k%progressEvery == 0 || k == iters) {
			e.log.Info().Int("iteration", k).Int("total", iters).Msg("amplification round composed")
		}
	}
	return qc, nil
}

func (e *Engine) logOutcome(res *Result) {
	best := e.log.Info().
		Int("index", res.BestIndex).
		Float64("prob", res.BestProb)
	if ann := res.Annotate(res.BestIndex); ann.IsPad {
		best.Bool("pad", true).Msg("top outcome in pad region")
	} else {
		best.Str("coord", ann.Coord.String()).Int("hamming", res.BestDistance).Msg("top outcome")
	}

	for rank, o := range res.Ranked {
		ann := res.Annotate(o.Index)
		ev := e.log.Debug().
			Int("rank", rank+1).
			Int("index", o.Index).
			Float64("prob", o.Prob).
			Bool("hit", ann.IsHit).
			Bool("pad", ann.IsPad)
		if ann.Coord != nil {
			ev.Str("coord", ann.Coord.String())
		}
		ev.Msg("ranked outcome")
	}
}

// wrapBackendError maps backend failures onto the engine's error taxonomy.
func wrapBackendError(err error) error {
	switch {
	case errors.Is(err, backend.ErrUnavailable):
		return &RunError{Code: CodeBackendUnavailable, Message: "sampling provider not configured", Err: err}
	case backend.IsRemoteExecution(err):
		return &RunError{Code: CodeRemoteExecution, Message: "remote job did not complete", Err: err}
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		return &RunError{Code: CodeRemoteExecution, Message: "execution cancelled", Err: err}
	default:
		return err
	}
}

// TheoreticalPeak is the success probability textbook amplitude
// amplification predicts for the configured geometry after iters rounds.
// Exposed for diagnostics and tests.
func TheoreticalPeak(totalN, markedM, iters int) float64 {
	theta := math.Asin(math.Sqrt(float64(markedM) / float64(totalN)))
	s := math.Sin(float64(2*iters+1) * theta)
	return s * s
}
