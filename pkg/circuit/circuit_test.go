package circuit_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/circuitlab/dcsim/pkg/circuit"
	"github.com/circuitlab/dcsim/pkg/component"
	"github.com/circuitlab/dcsim/pkg/geometry"
)

func TestAdd_PreservesInsertionOrder(t *testing.T) {
	c := circuit.New()
	id1 := c.Add(component.Wire, geometry.Pt(0, 0), geometry.Pt(1, 0), nil, nil)
	id2 := c.Add(component.Resistor, geometry.Pt(1, 0), geometry.Pt(2, 0), nil, nil)
	id3 := c.Add(component.Bulb, geometry.Pt(2, 0), geometry.Pt(3, 0), nil, nil)

	got := c.Components()
	require.Len(t, got, 3)
	require.Equal(t, []string{id1, id2, id3}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestGet_MissingReturnsNil(t *testing.T) {
	c := circuit.New()
	require.Nil(t, c.Get("nope"))
}

func TestDelete(t *testing.T) {
	c := circuit.New()
	id := c.Add(component.Wire, geometry.Pt(0, 0), geometry.Pt(1, 0), nil, nil)
	require.True(t, c.Delete(id))
	require.False(t, c.Delete(id))
	require.Nil(t, c.Get(id))
	require.Equal(t, 0, c.Len())
}

func TestDeleteAt_ExactCoincidenceOnly(t *testing.T) {
	c := circuit.New()
	id := c.Add(component.Wire, geometry.Pt(0, 0), geometry.Pt(4, 0), nil, nil)

	_, ok := c.DeleteAt(geometry.Pt(1, 0))
	require.False(t, ok, "DeleteAt must not fuzzy-match near a terminal")

	got, ok := c.DeleteAt(geometry.Pt(2, 0))
	require.True(t, ok, "DeleteAt must match the exact rounded midpoint")
	require.Equal(t, id, got)
}

func TestFindNear_RanksByManhattanDistanceWithinThreshold(t *testing.T) {
	c := circuit.New()
	far := c.Add(component.Wire, geometry.Pt(0, 0), geometry.Pt(0, 20), nil, nil)
	near := c.Add(component.Resistor, geometry.Pt(5, 5), geometry.Pt(6, 5), nil, nil)
	_ = far

	found := c.FindNear(geometry.Pt(5, 5))
	require.NotNil(t, found)
	require.Equal(t, near, found.ID)
}

func TestFindNear_NilBeyondThreshold(t *testing.T) {
	c := circuit.New()
	c.Add(component.Wire, geometry.Pt(0, 0), geometry.Pt(1, 0), nil, nil)
	require.Nil(t, c.FindNear(geometry.Pt(50, 50)))
}

func TestFindNear_UsesFloorDivisionMidpointNotRound(t *testing.T) {
	c := circuit.New()
	// decoy sits exactly distance 1 from the query point
	decoy := c.Add(component.Wire, geometry.Pt(2, 0), geometry.Pt(2, 0), nil, nil)
	// odd coordinate sum: floor midpoint is (1,0) (distance 0 from the
	// query), round-half-to-even midpoint would be (2,0) (distance 1,
	// tying the decoy and losing to it on insertion order)
	real := c.Add(component.Resistor, geometry.Pt(0, 0), geometry.Pt(3, 0), nil, nil)
	_ = decoy

	found := c.FindNear(geometry.Pt(1, 0))
	require.NotNil(t, found)
	require.Equal(t, real, found.ID)
}

func TestFindNear_TieBreaksOnInsertionOrder(t *testing.T) {
	c := circuit.New()
	first := c.Add(component.Wire, geometry.Pt(0, 0), geometry.Pt(1, 0), nil, nil)
	c.Add(component.Resistor, geometry.Pt(0, 0), geometry.Pt(1, 0), nil, nil)

	found := c.FindNear(geometry.Pt(0, 0))
	require.Equal(t, first, found.ID)
}

func TestClone_DeepCopies(t *testing.T) {
	c := circuit.New()
	id := c.Add(component.Resistor, geometry.Pt(0, 0), geometry.Pt(1, 0), map[string]float64{"R": 10}, nil)

	clone := c.Clone()
	clone.Get(id).SetProp("R", 999)

	require.Equal(t, 10.0, c.Get(id).Prop("R", -1))
	require.Equal(t, 999.0, clone.Get(id).Prop("R", -1))
}
