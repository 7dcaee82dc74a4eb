// Package sim evaluates circuits exactly: the full complex amplitude vector
// is held in memory and every gate is applied by index arithmetic. Register
// line q corresponds to bit q of the amplitude index, matching the index
// encoding the oracle builder uses, so amplitude i IS outcome index i.
package sim

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/motifqu/motifqu/internal/circuit"
)

// MaxQubits bounds the register width; 2^26 complex128 amplitudes is 1 GiB,
// which is already past what a laptop run should attempt.
const MaxQubits = 26

var invSqrt2 = complex(1/math.Sqrt2, 0)

// Run evaluates the circuit from |0...0> and returns the final amplitude
// vector of length 2^n. Deterministic: the same circuit always yields the
// same state.
func Run(c *circuit.Circuit) ([]complex128, error) {
	n := c.Qubits
	if n < 1 || n > MaxQubits {
		return nil, fmt.Errorf("register width %d outside [1, %d]", n, MaxQubits)
	}

	state := make([]complex128, 1<<uint(n))
	state[0] = 1

	for _, g := range c.Gates {
		switch g.Name {
		case circuit.GateH:
			applyH(state, g.Target)
		case circuit.GateX:
			applyX(state, g.Target)
		case circuit.GateMCX:
			applyMCX(state, g.Controls, g.Target)
		default:
			return nil, fmt.Errorf("unknown gate %q", g.Name)
		}
	}
	return state, nil
}

// Probabilities returns the squared-magnitude distribution of a state.
func Probabilities(state []complex128) []float64 {
	probs := make([]float64, len(state))
	for i, a := range state {
		probs[i] = real(a)*real(a) + imag(a)*imag(a)
	}
	return probs
}

// TotalMass sums a probability vector. Unitary circuits keep this at 1
// within floating-point tolerance.
func TotalMass(probs []float64) float64 {
	return floats.Sum(probs)
}

func applyH(state []complex128, q int) {
	mask := 1 << uint(q)
	for i := range state {
		if i&mask == 0 {
			j := i | mask
			a, b := state[i], state[j]
			state[i] = (a + b) * invSqrt2
			state[j] = (a - b) * invSqrt2
		}
	}
}

func applyX(state []complex128, q int) {
	mask := 1 << uint(q)
	for i := range state {
		if i&mask == 0 {
			j := i | mask
			state[i], state[j] = state[j], state[i]
		}
	}
}

func applyMCX(state []complex128, controls []int, target int) {
	cmask := 0
	for _, q := range controls {
		cmask |= 1 << uint(q)
	}
	tmask := 1 << uint(target)
	for i := range state {
		if i&cmask == cmask && i&tmask == 0 {
			j := i | tmask
			state[i], state[j] = state[j], state[i]
		}
	}
}
