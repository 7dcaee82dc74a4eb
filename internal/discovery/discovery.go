// Package discovery finds over-represented k-mers in a sequence and runs an
// amplitude-amplification search per candidate to locate them.
package discovery

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/motifqu/motifqu/internal/genome"
	"github.com/motifqu/motifqu/internal/grover"
)

// Options tunes one discovery run.
type Options struct {
	Contig string
	Genome string

	// K is the candidate k-mer length.
	K int

	// MinCount drops candidates occurring fewer times.
	MinCount int

	// TopK caps the candidate list after ordering.
	TopK int

	// RevComp folds each window onto its canonical strand form.
	RevComp bool

	// Workers bounds concurrent searches; values below 1 mean 1.
	Workers int

	// Search is applied to every candidate. Motif and Contig are filled per
	// candidate; the rest passes through untouched.
	Search grover.Request
}

// Motif is one discovered candidate with its located positions.
type Motif struct {
	Kmer  string
	Count int
	Best  *grover.Result
}

// Kmers counts every length-k window of the sequence that consists solely of
// A, C, G, and T. With revcomp on, a window and its reverse complement count
// as one canonical k-mer, the lexicographically smaller of the two.
func Kmers(seq string, k int, revcomp bool) map[string]int {
	seq = genome.Normalize(seq)
	counts := make(map[string]int)
	if k <= 0 || k > len(seq) {
		return counts
	}
	for i := 0; i+k <= len(seq); i++ {
		window := seq[i : i+k]
		if strings.ContainsFunc(window, func(r rune) bool {
			return r != 'A' && r != 'C' && r != 'G' && r != 'T'
		}) {
			continue
		}
		if revcomp {
			if rc := genome.ReverseComplement(window); rc < window {
				window = rc
			}
		}
		counts[window]++
	}
	return counts
}

// candidates orders the counted k-mers by count descending, ties by k-mer
// ascending, then applies the MinCount and TopK cuts.
func candidates(counts map[string]int, minCount, topK int) []Motif {
	out := make([]Motif, 0, len(counts))
	for kmer, count := range counts {
		if count >= minCount {
			out = append(out, Motif{Kmer: kmer, Count: count})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Kmer < out[j].Kmer
	})
	if topK > 0 && len(out) > topK {
		out = out[:topK]
	}
	return out
}

// Runner discovers motifs with an injected search engine.
type Runner struct {
	engine *grover.Engine
	log    zerolog.Logger
}

// NewRunner creates a discovery runner.
func NewRunner(engine *grover.Engine, log zerolog.Logger) *Runner {
	return &Runner{engine: engine, log: log}
}

// Discover counts k-mers, selects candidates, and runs one search per
// candidate over a bounded worker pool. Results come back in candidate
// order. The first search failure cancels the remaining work and is
// returned; no partial candidate is dropped silently on success.
func (r *Runner) Discover(ctx context.Context, opts Options) ([]Motif, error) {
	counts := Kmers(opts.Genome, opts.K, opts.RevComp)
	found := candidates(counts, opts.MinCount, opts.TopK)
	r.log.Info().
		Int("k", opts.K).
		Int("distinct", len(counts)).
		Int("candidates", len(found)).
		Bool("revcomp", opts.RevComp).
		Msg("candidate k-mers selected")
	if len(found) == 0 {
		return nil, nil
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(found) {
		workers = len(found)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	jobs := make(chan int)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				req := opts.Search
				req.Contig = opts.Contig
				req.Genome = opts.Genome
				req.Motif = found[i].Kmer
				res, err := r.engine.Search(ctx, req)
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
						cancel()
					}
					mu.Unlock()
					return
				}
				mu.Lock()
				found[i].Best = res
				mu.Unlock()
			}
		}()
	}

feed:
	for i := range found {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return found, nil
}
