package grover

import "math"

// Iterations returns the number of oracle+diffuser applications. A positive
// force value overrides the analytic count. Otherwise the standard optimum
// round(pi/4 * sqrt(N/M)) for M marked states in an N-index space applies.
// Never returns less than 1: zero iterations is a no-op no caller wants.
func Iterations(totalN, markedM, force int) int {
	if force > 0 {
		return force
	}
	iters := int(math.Round(math.Pi / 4 * math.Sqrt(float64(totalN)/float64(markedM))))
	if iters < 1 {
		return 1
	}
	return iters
}
