package grover

import (
	"sort"

	"github.com/motifqu/motifqu/internal/backend"
)

// Outcome is one ranked entry of the measured distribution.
type Outcome struct {
	Index int     `json:"index"`
	Prob  float64 `json:"prob"`
}

// Rank returns the topK highest-probability indices, descending. Ties break
// by ascending index, so ranking is deterministic for a fixed distribution.
// topK is capped at the outcome-space size.
func Rank(probs backend.Distribution, topK int) []Outcome {
	if topK > len(probs) {
		topK = len(probs)
	}
	if topK <= 0 {
		return nil
	}

	outcomes := make([]Outcome, len(probs))
	for i, p := range probs {
		outcomes[i] = Outcome{Index: i, Prob: p}
	}
	// Stable sort over the natural index order: equal probabilities keep
	// ascending indices.
	sort.SliceStable(outcomes, func(i, j int) bool {
		return outcomes[i].Prob > outcomes[j].Prob
	})
	return outcomes[:topK]
}
