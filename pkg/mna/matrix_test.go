package mna_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/circuitlab/dcsim/pkg/mna"
)

func TestMatrix_Solve_SimpleSystem(t *testing.T) {
	// [2 1][x0]   [5]
	// [1 3][x1] = [10]
	m := mna.NewMatrix(2)
	m.AddElement(0, 0, 2)
	m.AddElement(0, 1, 1)
	m.AddElement(1, 0, 1)
	m.AddElement(1, 1, 3)
	m.AddRHS(0, 5)
	m.AddRHS(1, 10)

	singular := m.Solve()
	require.False(t, singular)
	sol := m.Solution()
	require.InDelta(t, 1.0, sol[0], 1e-9)
	require.InDelta(t, 3.0, sol[1], 1e-9)
}

func TestMatrix_Solve_DetectsSingular(t *testing.T) {
	m := mna.NewMatrix(2)
	m.AddElement(0, 0, 1)
	m.AddElement(0, 1, 1)
	m.AddElement(1, 0, 1)
	m.AddElement(1, 1, 1)
	m.AddRHS(0, 1)
	m.AddRHS(1, 1)

	require.True(t, m.Solve())
	require.True(t, m.Singular())
}

func TestMatrix_AddElement_IgnoresOutOfRange(t *testing.T) {
	m := mna.NewMatrix(1)
	require.NotPanics(t, func() {
		m.AddElement(-1, 0, 5)
		m.AddElement(0, 5, 5)
		m.AddRHS(-1, 5)
	})
}

func TestMatrix_Solve_EmptySystem(t *testing.T) {
	m := mna.NewMatrix(0)
	require.False(t, m.Solve())
	require.Equal(t, []float64{}, m.Solution())
}

func TestMatrix_AddElement_Accumulates(t *testing.T) {
	m := mna.NewMatrix(1)
	m.AddElement(0, 0, 2)
	m.AddElement(0, 0, 3)
	m.AddRHS(0, 10)
	require.False(t, m.Solve())
	require.InDelta(t, 2.0, m.Solution()[0], 1e-9)
}
