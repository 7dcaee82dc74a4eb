package pattern

import (
	"fmt"
	"sort"
)

// iupac maps each IUPAC ambiguity code to the concrete bases it admits.
// Entry order is fixed so expansions enumerate deterministically.
var iupac = map[byte]string{
	'A': "A",
	'C': "C",
	'G': "G",
	'T': "T",
	'R': "AG",
	'Y': "CT",
	'S': "CG",
	'W': "AT",
	'K': "GT",
	'M': "AC",
	'B': "CGT",
	'D': "AGT",
	'H': "ACT",
	'V': "ACG",
	'N': "ACGT",
}

// MaxExpansions bounds the number of concrete sequences a single pattern may
// expand to. A pattern of all-N positions grows 4^L, which gets out of hand
// quickly for the register sizes this tool targets.
const MaxExpansions = 4096

// Expand enumerates every concrete ACGT sequence matched by an IUPAC
// pattern, in lexicographic order. The pattern must already be uppercase.
func Expand(p string) ([]string, error) {
	if p == "" {
		return nil, fmt.Errorf("empty pattern")
	}

	total := 1
	for i := 0; i < len(p); i++ {
		bases, ok := iupac[p[i]]
		if !ok {
			return nil, fmt.Errorf("invalid IUPAC code %q at position %d", p[i], i)
		}
		total *= len(bases)
		if total > MaxExpansions {
			return nil, fmt.Errorf("pattern %s expands to more than %d sequences", p, MaxExpansions)
		}
	}

	out := []string{""}
	for i := 0; i < len(p); i++ {
		bases := iupac[p[i]]
		next := make([]string, 0, len(out)*len(bases))
		for _, prefix := range out {
			for j := 0; j < len(bases); j++ {
				next = append(next, prefix+string(bases[j]))
			}
		}
		out = next
	}
	sort.Strings(out)
	return out, nil
}

// Degeneracy returns the number of concrete sequences a pattern expands to
// without materializing them. Invalid codes count as zero.
func Degeneracy(p string) int {
	if p == "" {
		return 0
	}
	total := 1
	for i := 0; i < len(p); i++ {
		bases, ok := iupac[p[i]]
		if !ok {
			return 0
		}
		total *= len(bases)
	}
	return total
}
