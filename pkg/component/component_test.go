package component_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/circuitlab/dcsim/pkg/component"
	"github.com/circuitlab/dcsim/pkg/geometry"
)

func TestNew_CopiesMaps(t *testing.T) {
	props := map[string]float64{"R": 10}
	meta := map[string]string{"label": "R1"}

	c := component.New(component.Resistor, geometry.Pt(0, 0), geometry.Pt(1, 0), props, meta)
	props["R"] = 999
	meta["label"] = "mutated"

	require.Equal(t, 10.0, c.Props["R"], "New must copy props, not alias the caller's map")
	require.Equal(t, "R1", c.Meta["label"])
}

func TestClone_IsIndependent(t *testing.T) {
	c := component.New(component.Resistor, geometry.Pt(0, 0), geometry.Pt(1, 0), map[string]float64{"R": 10}, nil)
	clone := c.Clone()
	clone.SetProp("R", 20)

	require.Equal(t, 10.0, c.Prop("R", 0))
	require.Equal(t, 20.0, clone.Prop("R", 0))
	require.Equal(t, c.ID, clone.ID)
}

func TestProp_DefaultsWhenUnset(t *testing.T) {
	c := component.New(component.Resistor, geometry.Pt(0, 0), geometry.Pt(1, 0), nil, nil)
	require.Equal(t, 42.0, c.Prop("missing", 42))
	require.Equal(t, 7, c.PropInt("missing", 7))
}

func TestDisplayName_TruncatesID(t *testing.T) {
	c := component.New(component.Bulb, geometry.Pt(0, 0), geometry.Pt(1, 0), nil, nil)
	require.Contains(t, c.DisplayName(), "bulb:")
	require.Len(t, c.DisplayName(), len("bulb:")+4)
}

func TestKind_IsCompoundSwitch(t *testing.T) {
	require.True(t, component.SwitchSPDT.IsCompoundSwitch())
	require.True(t, component.SwitchDPDT.IsCompoundSwitch())
	require.False(t, component.SwitchSPST.IsCompoundSwitch())
	require.False(t, component.Resistor.IsCompoundSwitch())
}

func TestKind_IsMeter(t *testing.T) {
	require.True(t, component.Ammeter.IsMeter())
	require.True(t, component.Voltmeter.IsMeter())
	require.True(t, component.Galvanometer.IsMeter())
	require.False(t, component.Resistor.IsMeter())
}

func TestMidPoint(t *testing.T) {
	c := component.New(component.Wire, geometry.Pt(0, 0), geometry.Pt(2, 0), nil, nil)
	require.Equal(t, geometry.Pt(1, 0), c.MidPoint())
}
