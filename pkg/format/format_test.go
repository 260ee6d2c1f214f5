package format_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/circuitlab/dcsim/pkg/format"
)

func TestSI_Bands(t *testing.T) {
	require.Equal(t, "1.500 kV", format.SI(1500, "V"))
	require.Equal(t, "5.000 V", format.SI(5, "V"))
	require.Equal(t, "500.000 mV", format.SI(0.5, "V"))
	require.Equal(t, "250.000 µV", format.SI(0.00025, "V"))
	require.Equal(t, "-5.000 V", format.SI(-5, "V"))
}

func TestSI_Floor(t *testing.T) {
	require.Equal(t, "~0 A", format.SI(1e-12, "A"))
	require.Equal(t, "-~0 A", format.SI(-1e-12, "A"))
}

func TestSI_Overflow(t *testing.T) {
	require.Equal(t, "∞ Ω", format.SI(1e20, "Ω"))
	require.Equal(t, "∞ Ω", format.SI(math.Inf(1), "Ω"))
	require.Contains(t, format.SI(5e9, "Ω"), ">")
}

func TestSI_Zero(t *testing.T) {
	require.Equal(t, "0.000 V", format.SI(0, "V"))
}

func TestSI_NaN(t *testing.T) {
	require.Equal(t, "NaN V", format.SI(math.NaN(), "V"))
}

func TestScientific_Basic(t *testing.T) {
	require.Equal(t, "1.000e-03 A", format.Scientific(0.001, "A"))
}

func TestScientific_FloorAndOverflow(t *testing.T) {
	require.Equal(t, "~0 A", format.Scientific(1e-15, "A"))
	require.Equal(t, "∞ A", format.Scientific(1e18, "A"))
}
