package circuit

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

// Golden files pin the provider wire format. Regenerate with:
//
//	go test ./internal/circuit -update
func TestQASMGoldenMeasured(t *testing.T) {
	c := New(2)
	c.HAll()
	c.X(0)
	c.MCX([]int{0}, 1)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "qasm_measured", []byte(QASM(c, true)))
}

func TestQASMGoldenGrover(t *testing.T) {
	c := New(2)
	c.HAll()
	require.NoError(t, Oracle(c, []int{3}))
	Diffuser(c)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "qasm_grover", []byte(QASM(c, false)))
}

func TestMCXNames(t *testing.T) {
	c := New(5)
	c.MCX(nil, 0)
	c.MCX([]int{0}, 1)
	c.MCX([]int{0, 1}, 2)
	c.MCX([]int{0, 1, 2}, 3)

	require.Equal(t, "x q[0];", renderGate(c.Gates[0]))
	require.Equal(t, "cx q[0],q[1];", renderGate(c.Gates[1]))
	require.Equal(t, "ccx q[0],q[1],q[2];", renderGate(c.Gates[2]))
	require.Equal(t, "mcx q[0],q[1],q[2],q[3];", renderGate(c.Gates[3]))
}
