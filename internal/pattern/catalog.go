package pattern

import "fmt"

// Motif is a named biological consensus pattern in IUPAC notation.
type Motif struct {
	Name        string
	Consensus   string
	Description string
}

// catalog holds the built-in motifs in display order.
var catalog = []Motif{
	{"tata-box", "TATAWAW", "Core promoter element ~25-30bp upstream of TSS"},
	{"caat-box", "GGCCAATCT", "Promoter element ~75-80bp upstream of TSS"},
	{"gc-box", "GGGCGG", "SP1 transcription factor binding site"},
	{"e-box", "CANNTG", "Enhancer box bound by bHLH transcription factors"},
	{"kozak", "GCCRCCATGG", "Translation initiation context around ATG"},
	{"polya-signal", "AATAAA", "Polyadenylation signal"},
	{"cre", "TGACGTCA", "cAMP response element"},
	{"nf-kb", "GGGRNNYYCC", "NF-kB binding consensus"},
	{"ecori", "GAATTC", "EcoRI restriction site"},
	{"chi-site", "GCTGGTGG", "RecBCD recombination hotspot (E. coli)"},
}

// Catalog returns the built-in motif list in display order.
// The returned slice is a copy; callers may not mutate the catalog.
func Catalog() []Motif {
	out := make([]Motif, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a catalog motif by name.
func Lookup(name string) (Motif, error) {
	for _, m := range catalog {
		if m.Name == name {
			return m, nil
		}
	}
	return Motif{}, fmt.Errorf("unknown motif %q", name)
}
