package circuit

import (
	"fmt"
	"strings"
)

// QASM renders the circuit as OpenQASM 2.0 text, the wire format submitted
// to sampling providers. Multi-controlled NOTs with one or two controls use
// the standard cx/ccx gates; wider ones use the provider's mcx extension.
// When measure is set, every line is measured into its classical bit.
func QASM(c *Circuit, measure bool) string {
	var b strings.Builder
	b.WriteString("OPENQASM 2.0;\n")
	b.WriteString("include \"qelib1.inc\";\n")
	fmt.Fprintf(&b, "qreg q[%d];\n", c.Qubits)
	if measure {
		fmt.Fprintf(&b, "creg c[%d];\n", c.Qubits)
	}
	for _, g := range c.Gates {
		b.WriteString(renderGate(g))
		b.WriteByte('\n')
	}
	if measure {
		for q := 0; q < c.Qubits; q++ {
			fmt.Fprintf(&b, "measure q[%d] -> c[%d];\n", q, q)
		}
	}
	return b.String()
}

func renderGate(g Gate) string {
	switch g.Name {
	case GateH:
		return fmt.Sprintf("h q[%d];", g.Target)
	case GateX:
		return fmt.Sprintf("x q[%d];", g.Target)
	case GateMCX:
		name := mcxName(len(g.Controls))
		args := make([]string, 0, len(g.Controls)+1)
		for _, ctrl := range g.Controls {
			args = append(args, fmt.Sprintf("q[%d]", ctrl))
		}
		args = append(args, fmt.Sprintf("q[%d]", g.Target))
		return fmt.Sprintf("%s %s;", name, strings.Join(args, ","))
	default:
		return fmt.Sprintf("// unknown gate %q", g.Name)
	}
}

func mcxName(controls int) string {
	switch controls {
	case 0:
		return "x"
	case 1:
		return "cx"
	case 2:
		return "ccx"
	default:
		return "mcx"
	}
}
