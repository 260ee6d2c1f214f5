package circuit_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/circuitlab/dcsim/pkg/circuit"
	"github.com/circuitlab/dcsim/pkg/component"
	"github.com/circuitlab/dcsim/pkg/geometry"
)

func buildSample() *circuit.Circuit {
	c := circuit.New()
	c.Add(component.Socket, geometry.Pt(0, 0), geometry.Pt(0, 2), map[string]float64{"V": 9}, map[string]string{"label": "battery"})
	c.Add(component.Resistor, geometry.Pt(0, 2), geometry.Pt(0, 0), map[string]float64{"R": 220}, nil)
	return c
}

func TestToJSON_FromJSON_RoundTrip(t *testing.T) {
	c := buildSample()
	data, err := c.ToJSON()
	require.NoError(t, err)

	restored, err := circuit.FromJSON(data)
	require.NoError(t, err)
	require.Equal(t, c.Len(), restored.Len())

	for _, orig := range c.Components() {
		got := restored.Get(orig.ID)
		require.NotNil(t, got)
		require.Equal(t, orig.Kind, got.Kind)
		require.Equal(t, orig.A, got.A)
		require.Equal(t, orig.B, got.B)
		require.Equal(t, orig.Props, got.Props)
		require.Equal(t, orig.Meta, got.Meta)
	}
}

func TestApplyJSON_ReplacesAtomically(t *testing.T) {
	c := buildSample()
	other := circuit.New()
	other.Add(component.Wire, geometry.Pt(9, 9), geometry.Pt(9, 10), nil, nil)
	data, err := other.ToJSON()
	require.NoError(t, err)

	require.NoError(t, c.ApplyJSON(data))
	require.Equal(t, 1, c.Len())
	require.Equal(t, component.Wire, c.Components()[0].Kind)
}

func TestApplyJSON_MalformedLeavesCircuitUnchanged(t *testing.T) {
	c := buildSample()
	before := c.Len()
	err := c.ApplyJSON([]byte("{not json"))
	require.Error(t, err)
	require.Equal(t, before, c.Len())
}

func TestSaveLoad_RoundTripThroughDisk(t *testing.T) {
	c := buildSample()
	path := filepath.Join(t.TempDir(), "circuit.json")

	require.NoError(t, c.Save(path))

	loaded, err := circuit.LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, c.Len(), loaded.Len())
}
