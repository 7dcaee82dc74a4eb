package circuit

// Depth returns the circuit depth: the longest chain of gates that share a
// register line. Gates on disjoint lines occupy the same layer.
func (c *Circuit) Depth() int {
	level := make([]int, c.Qubits)
	depth := 0
	for _, g := range c.Gates {
		layer := 0
		for _, q := range g.Lines() {
			if level[q] > layer {
				layer = level[q]
			}
		}
		layer++
		for _, q := range g.Lines() {
			level[q] = layer
		}
		if layer > depth {
			depth = layer
		}
	}
	return depth
}

// GateCounts returns the per-primitive gate tally.
func (c *Circuit) GateCounts() map[string]int {
	counts := make(map[string]int)
	for _, g := range c.Gates {
		counts[g.Name]++
	}
	return counts
}
