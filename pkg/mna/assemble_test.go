package mna_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/circuitlab/dcsim/pkg/component"
	"github.com/circuitlab/dcsim/pkg/geometry"
	"github.com/circuitlab/dcsim/pkg/mna"
)

func TestAssemble_VoltageDivider(t *testing.T) {
	n0 := geometry.Pt(0, 0)
	n1 := geometry.Pt(1, 0)
	n2 := geometry.Pt(2, 0)

	comps := []*component.Component{
		component.New(component.Socket, n1, n0, map[string]float64{"V": 10}, nil),
		component.New(component.Resistor, n1, n2, map[string]float64{"R": 1000}, nil),
		component.New(component.Resistor, n2, n0, map[string]float64{"R": 1000}, nil),
	}

	sys := mna.Assemble(comps)
	require.Equal(t, n0, sys.Ground, "ground is the B terminal of the first socket")

	singular := sys.Matrix.Solve()
	require.False(t, singular)
	sol := sys.Matrix.Solution()

	require.InDelta(t, 10.0, sys.NodeVoltage(sol, n1), 1e-6)
	require.InDelta(t, 5.0, sys.NodeVoltage(sol, n2), 1e-6)
	require.Equal(t, 0.0, sys.NodeVoltage(sol, n0))
}

func TestSelectGround_NoSocket_PicksLexicographicMinimum(t *testing.T) {
	comps := []*component.Component{
		component.New(component.Wire, geometry.Pt(3, 1), geometry.Pt(1, 5), nil, nil),
	}
	sys := mna.Assemble(comps)
	require.Equal(t, geometry.Pt(1, 5), sys.Ground)
}

func TestAssemble_EmptyCircuit_DefaultsGroundToOrigin(t *testing.T) {
	sys := mna.Assemble(nil)
	require.Equal(t, geometry.Pt(0, 0), sys.Ground)
	singular := sys.Matrix.Solve()
	require.False(t, singular)
}

func TestAssemble_OpenComponentContributesNoConductance(t *testing.T) {
	n0 := geometry.Pt(0, 0)
	n1 := geometry.Pt(1, 0)

	comps := []*component.Component{
		component.New(component.Socket, n1, n0, map[string]float64{"V": 5}, nil),
		component.New(component.SwitchSPST, n1, n0, map[string]float64{"state": 0}, nil),
	}
	sys := mna.Assemble(comps)
	singular := sys.Matrix.Solve()
	require.False(t, singular)
	sol := sys.Matrix.Solution()
	require.InDelta(t, 5.0, sys.NodeVoltage(sol, n1), 1e-6)
	require.InDelta(t, 0.0, sys.SocketCurrent(sol, 0), 1e-6, "open switch draws no current from the source")
}
