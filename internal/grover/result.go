package grover

import (
	"fmt"

	"github.com/motifqu/motifqu/internal/backend"
	"github.com/motifqu/motifqu/internal/circuit"
)

// Coord is a genomic window in both coordinate conventions.
type Coord struct {
	Contig string `json:"contig"`
	Start1 int    `json:"start_1based"` // 1-based inclusive
	End1   int    `json:"end_1based"`
	Start0 int    `json:"start_0based"` // 0-based half-open
	End0   int    `json:"end_0based"`
}

func (c Coord) String() string {
	return fmt.Sprintf("%s:%d-%d (1-based) | [%d,%d) (0-based)", c.Contig, c.Start1, c.End1, c.Start0, c.End0)
}

// Annotation tags a ranked index: whether it is a classically verified hit,
// whether it lies in the pad region, and its genomic coordinate when real.
type Annotation struct {
	IsHit bool   `json:"is_hit"`
	IsPad bool   `json:"is_pad"`
	Coord *Coord `json:"coord,omitempty"`
}

// Result is the immutable outcome of one search invocation. All fields are
// value data owned by the caller; nothing is shared with later invocations.
type Result struct {
	Contig string
	Motif  string

	// BestIndex and BestProb describe the top-ranked outcome.
	BestIndex int
	BestProb  float64

	// BestDistance is the recomputed Hamming distance of the best window to
	// the motif: a classical sanity check, -1 when the best index is pad.
	BestDistance int

	// Ranked is the top-k outcome list, probability descending.
	Ranked []Outcome

	// Circuit is the executed operator sequence.
	Circuit *circuit.Circuit

	// Probs is the full distribution over the padded index space.
	Probs backend.Distribution

	// Hits is the classically determined marked-index set, ascending.
	Hits []int

	// Register geometry and schedule.
	NumPositions int
	Qubits       int
	PaddedN      int
	Iterations   int

	// Sampling metadata, empty for the exact variant.
	JobID   string
	Backend string

	hitSet map[int]bool
}

// Annotate classifies an outcome index against the search geometry.
// Pad indices carry no coordinate.
func (r *Result) Annotate(idx int) Annotation {
	a := Annotation{IsHit: r.hitSet[idx]}
	if idx >= r.NumPositions {
		a.IsPad = true
		return a
	}
	a.Coord = &Coord{
		Contig: r.Contig,
		Start1: idx + 1,
		End1:   idx + len(r.Motif),
		Start0: idx,
		End0:   idx + len(r.Motif),
	}
	return a
}
