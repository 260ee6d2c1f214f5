package geometry_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/circuitlab/dcsim/pkg/geometry"
)

func TestPoint_Less(t *testing.T) {
	require.True(t, geometry.Pt(0, 0).Less(geometry.Pt(1, 0)))
	require.True(t, geometry.Pt(0, 0).Less(geometry.Pt(0, 1)))
	require.False(t, geometry.Pt(1, 0).Less(geometry.Pt(0, 5)))
	require.False(t, geometry.Pt(2, 2).Less(geometry.Pt(2, 2)))
}

func TestPoint_ManhattanDistance(t *testing.T) {
	require.Equal(t, 0, geometry.Pt(3, 4).ManhattanDistance(geometry.Pt(3, 4)))
	require.Equal(t, 7, geometry.Pt(0, 0).ManhattanDistance(geometry.Pt(3, 4)))
	require.Equal(t, 7, geometry.Pt(3, 4).ManhattanDistance(geometry.Pt(0, 0)))
}

func TestMidpoint_RoundsToNearestInt(t *testing.T) {
	require.Equal(t, geometry.Pt(1, 0), geometry.Midpoint(geometry.Pt(0, 0), geometry.Pt(2, 0)))
	// exact .5 ties round to even, matching Python's round()
	require.Equal(t, geometry.Pt(2, 0), geometry.Midpoint(geometry.Pt(0, 0), geometry.Pt(3, 0)))
	require.Equal(t, geometry.Pt(2, 0), geometry.Midpoint(geometry.Pt(0, 0), geometry.Pt(5, 0)))
	require.Equal(t, geometry.Pt(-2, 0), geometry.Midpoint(geometry.Pt(0, 0), geometry.Pt(-3, 0)))
}

func TestFloorMidpoint_FloorsRatherThanRounds(t *testing.T) {
	require.Equal(t, geometry.Pt(1, 0), geometry.FloorMidpoint(geometry.Pt(0, 0), geometry.Pt(2, 0)))
	// odd sum: floor division differs from Midpoint's round-to-even (which gives 2)
	require.Equal(t, geometry.Pt(1, 0), geometry.FloorMidpoint(geometry.Pt(0, 0), geometry.Pt(3, 0)))
	require.Equal(t, geometry.Pt(-1, 0), geometry.FloorMidpoint(geometry.Pt(0, 0), geometry.Pt(-1, 0)))
}

func TestPoints_SortInterface(t *testing.T) {
	pts := geometry.Points{geometry.Pt(2, 0), geometry.Pt(0, 5), geometry.Pt(0, 1)}
	sort.Sort(pts)
	require.Equal(t, geometry.Points{geometry.Pt(0, 1), geometry.Pt(0, 5), geometry.Pt(2, 0)}, pts)
}

func TestPoint_String(t *testing.T) {
	require.Equal(t, "(3,4)", geometry.Pt(3, 4).String())
}
