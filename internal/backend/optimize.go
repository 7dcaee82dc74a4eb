package backend

import "github.com/motifqu/motifqu/internal/circuit"

// Optimize applies gate-level simplification before execution. Every
// primitive in the op language is self-inverse, so the only rewrite is
// cancelling pairs of identical gates, which preserves the statevector
// exactly. Levels:
//
//	0: no optimization
//	1: cancel directly adjacent identical gates, single pass
//	2: level 1 iterated to a fixpoint
//	3: level 2, additionally cancelling across gates on disjoint lines
//
// The input circuit is never mutated.
func Optimize(c *circuit.Circuit, level int) *circuit.Circuit {
	out := c.Clone()
	if level <= 0 {
		return out
	}

	commute := level >= 3
	for {
		reduced := cancelPass(out, commute)
		if len(reduced.Gates) == len(out.Gates) || level < 2 {
			return reduced
		}
		out = reduced
	}
}

// cancelPass removes self-inverse gate pairs in one left-to-right sweep.
// With commute set, a gate may cancel against an earlier identical gate as
// long as everything between them acts on disjoint register lines.
func cancelPass(c *circuit.Circuit, commute bool) *circuit.Circuit {
	out := &circuit.Circuit{Qubits: c.Qubits}
	for _, g := range c.Gates {
		if i, ok := cancelTarget(out.Gates, g, commute); ok {
			out.Gates = append(out.Gates[:i], out.Gates[i+1:]...)
			continue
		}
		out.Gates = append(out.Gates, g)
	}
	return out
}

// cancelTarget finds the index of an earlier gate that g cancels against.
func cancelTarget(gates []circuit.Gate, g circuit.Gate, commute bool) (int, bool) {
	for i := len(gates) - 1; i >= 0; i-- {
		if sameGate(gates[i], g) {
			return i, true
		}
		if !commute || !disjoint(gates[i], g) {
			return 0, false
		}
	}
	return 0, false
}

func sameGate(a, b circuit.Gate) bool {
	if a.Name != b.Name || a.Target != b.Target || len(a.Controls) != len(b.Controls) {
		return false
	}
	for i := range a.Controls {
		if a.Controls[i] != b.Controls[i] {
			return false
		}
	}
	return true
}

// disjoint reports whether two gates touch no common register line.
// Gates on disjoint lines commute, so cancellation may reach across them.
func disjoint(a, b circuit.Gate) bool {
	for _, qa := range a.Lines() {
		for _, qb := range b.Lines() {
			if qa == qb {
				return false
			}
		}
	}
	return true
}
