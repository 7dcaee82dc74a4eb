package genome

// Hamming returns the positional mismatch count between two equal-length
// strings. Comparing strings of different lengths is a programming error;
// the shorter length bounds the comparison and the difference counts as
// mismatches.
func Hamming(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	d := 0
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			d++
		}
	}
	if len(a) != len(b) {
		d += len(a) - n + len(b) - n
	}
	return d
}

// Scan slides a window of len(pattern) across seq and returns every 0-based
// start offset whose window is within tolerance Hamming mismatches of the
// pattern, in ascending order.
//
// An empty pattern or a pattern longer than the sequence yields an empty
// result; callers decide whether that is fatal. Deterministic and stateless.
func Scan(seq, pattern string, tolerance int) []int {
	l := len(pattern)
	if l == 0 || l > len(seq) || tolerance < 0 {
		return nil
	}
	var hits []int
	for i := 0; i+l <= len(seq); i++ {
		if withinTolerance(seq[i:i+l], pattern, tolerance) {
			hits = append(hits, i)
		}
	}
	return hits
}

// withinTolerance is Hamming with an early exit once the budget is spent.
func withinTolerance(window, pattern string, tolerance int) bool {
	d := 0
	for i := 0; i < len(pattern); i++ {
		if window[i] != pattern[i] {
			d++
			if d > tolerance {
				return false
			}
		}
	}
	return true
}
