package genome

import (
	"fmt"
	"strings"
)

// complement maps each nucleotide to its Watson-Crick partner.
// Ambiguous or unknown characters map to N.
var complement = func() [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = 'N'
	}
	t['A'], t['T'] = 'T', 'A'
	t['C'], t['G'] = 'G', 'C'
	t['N'] = 'N'
	return t
}()

// Normalize uppercases a sequence or pattern string.
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ReverseComplement returns the reverse complement of an uppercase
// nucleotide string.
func ReverseComplement(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		out[len(s)-1-i] = complement[s[i]]
	}
	return string(out)
}

// ValidatePattern checks that a normalized pattern contains only the search
// alphabet {A,C,G,T,N}.
func ValidatePattern(p string) error {
	for i := 0; i < len(p); i++ {
		switch p[i] {
		case 'A', 'C', 'G', 'T', 'N':
		default:
			return fmt.Errorf("pattern contains invalid character %q at position %d", p[i], i)
		}
	}
	return nil
}
