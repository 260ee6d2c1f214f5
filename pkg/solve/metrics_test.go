package solve_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/circuitlab/dcsim/pkg/circuit"
	"github.com/circuitlab/dcsim/pkg/component"
	"github.com/circuitlab/dcsim/pkg/geometry"
	"github.com/circuitlab/dcsim/pkg/solve"
)

func TestComponentMetrics_ResistorFields(t *testing.T) {
	cir := circuit.New()
	n0, n1 := geometry.Pt(0, 0), geometry.Pt(1, 0)
	cir.Add(component.Socket, n1, n0, map[string]float64{"V": 10}, nil)
	rID := cir.Add(component.Resistor, n1, n0, map[string]float64{"R": 100}, nil)

	res := solve.Solve(cir)
	require.True(t, res.OK)

	m := solve.ComponentMetrics(res, cir.Get(rID))
	require.InDelta(t, 10.0, m.Vab, 1e-9)
	require.InDelta(t, 0.1, m.Iab, 1e-9)
	require.InDelta(t, 1.0, m.P, 1e-9)
	require.True(t, m.HasR)
	require.InDelta(t, 100.0, m.R, 1e-9)

	v, ok := m.Field(solve.FieldIab)
	require.True(t, ok)
	require.InDelta(t, 0.1, v, 1e-9)

	_, ok = m.Field("bogus")
	require.False(t, ok)
}

func TestComponentMetrics_OpenComponent_NoR(t *testing.T) {
	cir := circuit.New()
	n0, n1 := geometry.Pt(0, 0), geometry.Pt(1, 0)
	cir.Add(component.Socket, n1, n0, map[string]float64{"V": 10}, nil)
	swID := cir.Add(component.SwitchSPST, n1, n0, map[string]float64{"state": 0}, nil)

	res := solve.Solve(cir)
	m := solve.ComponentMetrics(res, cir.Get(swID))
	require.False(t, m.HasR)
	_, ok := m.Field(solve.FieldR)
	require.False(t, ok)
}

func TestBranchCurrent_LooksUpLabeledBranch(t *testing.T) {
	cir := circuit.New()
	n0, n1 := geometry.Pt(0, 0), geometry.Pt(1, 0)
	cir.Add(component.Socket, n1, n0, map[string]float64{"V": 9}, nil)
	// both poles land on the same two nodes so neither pole is left floating
	swID := cir.Add(component.SwitchDPST, n1, n0, map[string]float64{
		"state": 1,
		"c_x":   float64(n1.X), "c_y": float64(n1.Y),
		"d_x": float64(n0.X), "d_y": float64(n0.Y),
	}, nil)

	res := solve.Solve(cir)
	require.True(t, res.OK)

	v, ok := solve.BranchCurrent(res, swID, "p1")
	require.True(t, ok)
	require.NotZero(t, v)

	_, ok = solve.BranchCurrent(res, swID, "nonexistent")
	require.False(t, ok)
}

func TestLookup(t *testing.T) {
	cir := circuit.New()
	id := cir.Add(component.Wire, geometry.Pt(0, 0), geometry.Pt(1, 0), nil, nil)

	c, ok := solve.Lookup(cir, id)
	require.True(t, ok)
	require.Equal(t, id, c.ID)

	_, ok = solve.Lookup(cir, "missing")
	require.False(t, ok)
}
