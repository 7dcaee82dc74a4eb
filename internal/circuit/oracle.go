package circuit

import "errors"

// ErrEmptyMarkedSet is returned when an oracle is requested for zero marked
// indices. Amplitude amplification is undefined with no target states.
var ErrEmptyMarkedSet = errors.New("oracle requires at least one marked index")

// Oracle appends a phase-marking operator to c: the sign of every amplitude
// whose index is in marked flips, all other amplitudes are untouched.
//
// Per marked index the bits that are 0 get NOT-conjugated so the all-ones
// pattern uniquely selects that index, then a multi-controlled phase flip
// fires. Phase contributions from distinct indices commute, so the per-index
// blocks compose in any order; marked order is preserved for determinism.
func Oracle(c *Circuit, marked []int) error {
	if len(marked) == 0 {
		return ErrEmptyMarkedSet
	}
	n := c.Qubits
	for _, idx := range marked {
		for q := 0; q < n; q++ {
			if (idx>>q)&1 == 0 {
				c.X(q)
			}
		}
		mcz(c)
		for q := 0; q < n; q++ {
			if (idx>>q)&1 == 0 {
				c.X(q)
			}
		}
	}
	return nil
}

// Diffuser appends the inversion-about-mean operator: Hadamard and NOT every
// line, flip the phase of the all-ones pattern, undo. Independent of the
// marked set, so one build serves every iteration.
func Diffuser(c *Circuit) {
	c.HAll()
	c.XAll()
	mcz(c)
	c.XAll()
	c.HAll()
}

// mcz appends a phase flip on the all-ones pattern, realized as a
// Hadamard-MCX-Hadamard sandwich on the top line. With a single line this
// degenerates to HXH, a plain Z.
func mcz(c *Circuit) {
	n := c.Qubits
	target := n - 1
	controls := make([]int, 0, n-1)
	for q := 0; q < n-1; q++ {
		controls = append(controls, q)
	}
	c.H(target)
	c.MCX(controls, target)
	c.H(target)
}
