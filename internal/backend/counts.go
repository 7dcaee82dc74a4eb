package backend

import "fmt"

// Outcome bit-pattern strings list register line 0 FIRST: character i is the
// measured value of line i. The internal index encoding puts line q at bit q
// (weight 2^q), so the string reads reversed relative to a plain
// most-significant-bit-first binary parse. Getting this reversal wrong moves
// every peak to the bit-mirrored index.

// BitsToIndex converts an outcome bit-pattern into its register index.
func BitsToIndex(s string) (int, error) {
	idx := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '1':
			idx |= 1 << uint(i)
		case '0':
		default:
			return 0, fmt.Errorf("bit pattern %q: invalid character %q", s, s[i])
		}
	}
	return idx, nil
}

// IndexToBits renders an index as an n-character outcome bit-pattern.
func IndexToBits(idx, n int) string {
	b := make([]byte, n)
	for i := 0; i < n; i++ {
		if idx&(1<<uint(i)) != 0 {
			b[i] = '1'
		} else {
			b[i] = '0'
		}
	}
	return string(b)
}

// CountsToDistribution turns raw shot counts into an empirical distribution
// over the full 2^n outcome space. Unobserved indices get probability 0; the
// result sums to (observed shots)/shots, which is exactly 1 when the
// provider returns every shot.
func CountsToDistribution(counts map[string]int, n, shots int) (Distribution, error) {
	if shots <= 0 {
		return nil, fmt.Errorf("shot count must be positive, got %d", shots)
	}
	probs := make(Distribution, 1<<uint(n))
	for pattern, count := range counts {
		if len(pattern) != n {
			return nil, fmt.Errorf("bit pattern %q: want %d bits", pattern, n)
		}
		if count < 0 {
			return nil, fmt.Errorf("bit pattern %q: negative count %d", pattern, count)
		}
		idx, err := BitsToIndex(pattern)
		if err != nil {
			return nil, err
		}
		probs[idx] += float64(count) / float64(shots)
	}
	return probs, nil
}
