package terrain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Faultbox/midgard-regions/pkg/terrain"
)

func TestFill_RelabelsConnectedRegion(t *testing.T) {
	g := terrain.Grid{
		{0, 0, 1},
		{1, 0, 1},
		{0, 1, 0},
	}

	n, err := terrain.FillCount(g, 0, 0, 5)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, terrain.Grid{
		{5, 5, 1},
		{1, 5, 1},
		{0, 1, 0},
	}, g)
}

func TestFill_NoDiagonals(t *testing.T) {
	g := terrain.Grid{
		{0, 1},
		{1, 0},
	}

	require.NoError(t, terrain.Fill(g, 0, 0, 2))
	require.Equal(t, 0, g[1][1], "diagonal neighbour must not be filled")
}

func TestFill_SameLabelIsNoop(t *testing.T) {
	g := terrain.Grid{
		{0, 0},
		{1, 0},
	}
	require.NoError(t, terrain.Fill(g, 0, 0, 3))
	snapshot := terrain.Clone(g)

	n, err := terrain.FillCount(g, 1, 1, 3)
	require.NoError(t, err)
	require.Zero(t, n)
	require.Equal(t, snapshot, g)
}

func TestFill_ObstacleAsLabelIsNoop(t *testing.T) {
	g := terrain.Grid{{1, 1, 0}}

	require.NoError(t, terrain.Fill(g, 0, 0, terrain.Obstacle))
	require.Equal(t, terrain.Grid{{1, 1, 0}}, g)
}

func TestFill_RelabelsAnyOriginalValue(t *testing.T) {
	// The primitive follows whatever value the start holds, obstacles included.
	g := terrain.Grid{
		{1, 1, 0},
		{0, 1, 0},
	}

	require.NoError(t, terrain.Fill(g, 0, 0, 9))
	require.Equal(t, terrain.Grid{
		{9, 9, 0},
		{0, 9, 0},
	}, g)
}

func TestFill_OutOfBounds(t *testing.T) {
	cases := []struct {
		name     string
		row, col int
	}{
		{"NegativeRow", -1, 0},
		{"NegativeCol", 0, -1},
		{"RowPastEnd", 2, 0},
		{"ColPastEnd", 0, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := terrain.New(2, 3)
			err := terrain.Fill(g, tc.row, tc.col, 2)
			require.True(t, errors.Is(err, terrain.ErrOutOfBounds), "got %v", err)
			require.Equal(t, terrain.New(2, 3), g, "grid must be untouched")
		})
	}
}

func TestFill_LargeRegion(t *testing.T) {
	const n = 1000
	g := terrain.New(n, n)

	filled, err := terrain.FillCount(g, n/2, n/2, 2)
	require.NoError(t, err)
	require.Equal(t, n*n, filled)
	require.Equal(t, 2, g[0][0])
	require.Equal(t, 2, g[n-1][n-1])
}

func TestFill_Serpentine(t *testing.T) {
	// A single winding corridor; every free cell is reachable.
	g := terrain.Grid{
		{0, 0, 0, 0, 0},
		{1, 1, 1, 1, 0},
		{0, 0, 0, 0, 0},
		{0, 1, 1, 1, 1},
		{0, 0, 0, 0, 0},
	}

	n, err := terrain.FillCount(g, 4, 4, 7)
	require.NoError(t, err)
	require.Equal(t, 17, n)
	for r, row := range g {
		for c, v := range row {
			require.Contains(t, []int{1, 7}, v, "cell (%d,%d)", r, c)
		}
	}
}
