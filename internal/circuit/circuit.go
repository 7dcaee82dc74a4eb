// Package circuit holds the small operator-composition language the search
// engine assembles oracles and diffusers from: single-line Hadamard and NOT
// gates plus a multi-controlled NOT. Anything a backend executes is a flat
// sequence of these primitives.
package circuit

// Gate names used throughout. These are the only primitives backends must
// understand.
const (
	GateH   = "h"
	GateX   = "x"
	GateMCX = "mcx"
)

// Gate is one primitive operation on the index register.
// Controls is nil for single-line gates. An MCX with zero controls
// degenerates to a plain X on the target.
type Gate struct {
	Name     string
	Controls []int
	Target   int
}

// Lines returns every register line the gate touches.
func (g Gate) Lines() []int {
	lines := make([]int, 0, len(g.Controls)+1)
	lines = append(lines, g.Controls...)
	return append(lines, g.Target)
}

// Circuit is an ordered gate sequence over an n-line index register.
// Line q corresponds to bit q of the outcome index.
type Circuit struct {
	Qubits int
	Gates  []Gate
}

// New creates an empty circuit over n register lines.
func New(n int) *Circuit {
	return &Circuit{Qubits: n}
}

// H appends a Hadamard on line q.
func (c *Circuit) H(q int) {
	c.Gates = append(c.Gates, Gate{Name: GateH, Target: q})
}

// X appends a NOT on line q.
func (c *Circuit) X(q int) {
	c.Gates = append(c.Gates, Gate{Name: GateX, Target: q})
}

// MCX appends a multi-controlled NOT: target flips when every control line
// is 1. The controls slice is copied.
func (c *Circuit) MCX(controls []int, target int) {
	var cp []int
	if len(controls) > 0 {
		cp = make([]int, len(controls))
		copy(cp, controls)
	}
	c.Gates = append(c.Gates, Gate{Name: GateMCX, Controls: cp, Target: target})
}

// HAll appends a Hadamard on every line, low line first.
func (c *Circuit) HAll() {
	for q := 0; q < c.Qubits; q++ {
		c.H(q)
	}
}

// XAll appends a NOT on every line, low line first.
func (c *Circuit) XAll() {
	for q := 0; q < c.Qubits; q++ {
		c.X(q)
	}
}

// Clone returns a deep copy of the circuit.
func (c *Circuit) Clone() *Circuit {
	out := &Circuit{Qubits: c.Qubits, Gates: make([]Gate, len(c.Gates))}
	copy(out.Gates, c.Gates)
	for i, g := range c.Gates {
		if len(g.Controls) > 0 {
			ctrl := make([]int, len(g.Controls))
			copy(ctrl, g.Controls)
			out.Gates[i].Controls = ctrl
		}
	}
	return out
}
