package grover

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterationsAnalytic(t *testing.T) {
	// round(pi/4 * sqrt(N/M)) for the common geometries.
	assert.Equal(t, 2, Iterations(8, 1, 0))
	assert.Equal(t, 2, Iterations(8, 2, 0))
	assert.Equal(t, 3, Iterations(16, 1, 0))
	assert.Equal(t, 25, Iterations(1024, 1, 0))
}

func TestIterationsFloor(t *testing.T) {
	// Half the space marked rounds to 1, never 0.
	assert.Equal(t, 1, Iterations(4, 2, 0))
	assert.Equal(t, 1, Iterations(2, 1, 0))
	assert.Equal(t, 1, Iterations(8, 7, 0))
}

func TestIterationsForceWins(t *testing.T) {
	assert.Equal(t, 5, Iterations(8, 1, 5))
	assert.Equal(t, 1, Iterations(1024, 1, 1))
	// Zero and negative force fall back to the analytic count.
	assert.Equal(t, 2, Iterations(8, 1, 0))
	assert.Equal(t, 2, Iterations(8, 1, -3))
}

func TestRegisterWidth(t *testing.T) {
	assert.Equal(t, 1, RegisterWidth(0))
	assert.Equal(t, 1, RegisterWidth(1))
	assert.Equal(t, 1, RegisterWidth(2))
	assert.Equal(t, 2, RegisterWidth(3))
	assert.Equal(t, 2, RegisterWidth(4))
	assert.Equal(t, 3, RegisterWidth(5))
	assert.Equal(t, 3, RegisterWidth(8))
	assert.Equal(t, 4, RegisterWidth(9))
}
