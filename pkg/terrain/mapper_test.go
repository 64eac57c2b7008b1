package terrain_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/midgard-regions/internal/generator"
	"github.com/Faultbox/midgard-regions/pkg/terrain"
)

func TestMapTerrain_Scenarios(t *testing.T) {
	cases := []struct {
		name     string
		grid     terrain.Grid
		row, col int
		want     terrain.Grid
	}{
		{
			// (0,1) and (1,1) touch vertically, so all free cells form one region.
			name: "TwoRowsJoined",
			grid: terrain.Grid{{0, 0, 1}, {1, 0, 0}},
			row:  0, col: 0,
			want: terrain.Grid{{2, 2, 1}, {1, 2, 2}},
		},
		{
			name: "DiagonalSingletons",
			grid: terrain.Grid{{0, 1}, {1, 0}},
			row:  0, col: 0,
			want: terrain.Grid{{2, 1}, {1, 3}},
		},
		{
			name: "AllObstacles",
			grid: terrain.Grid{{1, 1}, {1, 1}},
			row:  0, col: 0,
			want: terrain.Grid{{1, 1}, {1, 1}},
		},
		{
			name: "SeedOutOfBounds",
			grid: terrain.Grid{{0, 0}},
			row:  -1, col: 0,
			want: terrain.Grid{{2, 2}},
		},
		{
			name: "MapExampleOne",
			grid: terrain.Grid{
				{0, 0, 1, 0, 0},
				{0, 1, 1, 0, 0},
				{0, 0, 1, 1, 1},
				{1, 1, 0, 0, 0},
			},
			row: 0, col: 0,
			want: terrain.Grid{
				{2, 2, 1, 3, 3},
				{2, 1, 1, 3, 3},
				{2, 2, 1, 1, 1},
				{1, 1, 4, 4, 4},
			},
		},
		{
			name: "MapExampleTwo",
			grid: terrain.Grid{
				{0, 1, 0, 0, 1},
				{0, 1, 0, 0, 1},
				{0, 1, 1, 1, 1},
				{0, 0, 0, 1, 0},
			},
			row: 0, col: 2,
			want: terrain.Grid{
				{3, 1, 2, 2, 1},
				{3, 1, 2, 2, 1},
				{3, 1, 1, 1, 1},
				{3, 3, 3, 1, 4},
			},
		},
		{
			name: "PrelabeledCellsKept",
			grid: terrain.Grid{{5, 0}, {1, 0}},
			row:  0, col: 0,
			want: terrain.Grid{{5, 2}, {1, 2}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := terrain.Clone(tc.grid)
			got, err := terrain.MapTerrain(tc.grid, tc.row, tc.col)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
			require.Equal(t, input, tc.grid, "input must not be mutated")
		})
	}
}

func TestMapTerrain_ShapeErrors(t *testing.T) {
	cases := []struct {
		name string
		grid terrain.Grid
		err  error
	}{
		{"Nil", nil, terrain.ErrEmptyGrid},
		{"NoRows", terrain.Grid{}, terrain.ErrEmptyGrid},
		{"NoCols", terrain.Grid{{}}, terrain.ErrEmptyGrid},
		{"Ragged", terrain.Grid{{0, 0}, {0}}, terrain.ErrNonRectangular},
		{"RaggedLonger", terrain.Grid{{0}, {0, 1}}, terrain.ErrNonRectangular},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := terrain.MapTerrain(tc.grid, 0, 0)
			require.Nil(t, got)
			require.True(t, errors.Is(err, tc.err), "got %v, want %v", err, tc.err)
		})
	}
}

func TestMapper_SeedStatus(t *testing.T) {
	g := terrain.Grid{
		{0, 1, 0},
		{0, 1, 3},
	}
	cases := []struct {
		name string
		opts []terrain.Option
		want terrain.SeedStatus
	}{
		{"NoSeed", nil, terrain.SeedNone},
		{"Applied", []terrain.Option{terrain.WithSeed(0, 2)}, terrain.SeedApplied},
		{"OutOfBounds", []terrain.Option{terrain.WithSeed(2, 0)}, terrain.SeedOutOfBounds},
		{"Obstacle", []terrain.Option{terrain.WithSeed(0, 1)}, terrain.SeedNotFree},
		{"Labeled", []terrain.Option{terrain.WithSeed(1, 2)}, terrain.SeedNotFree},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := terrain.NewMapper(tc.opts...).Map(g)
			require.NoError(t, err)
			require.Equal(t, tc.want, res.Seed)
		})
	}
}

func TestMapper_StrictSeed(t *testing.T) {
	g := terrain.Grid{{0, 1}}

	_, err := terrain.NewMapper(terrain.WithSeed(0, 5), terrain.WithStrictSeed()).Map(g)
	require.True(t, errors.Is(err, terrain.ErrSeedOutOfBounds), "got %v", err)

	_, err = terrain.NewMapper(terrain.WithSeed(0, 1), terrain.WithStrictSeed()).Map(g)
	require.True(t, errors.Is(err, terrain.ErrSeedNotFree), "got %v", err)

	res, err := terrain.NewMapper(terrain.WithSeed(0, 0), terrain.WithStrictSeed()).Map(g)
	require.NoError(t, err)
	require.Equal(t, terrain.SeedApplied, res.Seed)
}

func TestMapper_Regions(t *testing.T) {
	g := terrain.Grid{
		{0, 1, 0, 0},
		{0, 1, 1, 1},
		{1, 0, 0, 1},
	}

	res, err := terrain.NewMapper(terrain.WithSeed(2, 2)).Map(g)
	require.NoError(t, err)
	require.Equal(t, []terrain.Region{
		{Label: 2, Start: terrain.Coord{Row: 2, Col: 2}, Size: 2},
		{Label: 3, Start: terrain.Coord{Row: 0, Col: 0}, Size: 2},
		{Label: 4, Start: terrain.Coord{Row: 0, Col: 2}, Size: 2},
	}, res.Regions)
	require.Equal(t, 5, res.NextLabel)
}

func TestMapper_NoRegionsKeepsFirstLabel(t *testing.T) {
	res, err := terrain.NewMapper(terrain.WithSeed(0, 0)).Map(terrain.Grid{{1, 1}, {1, 1}})
	require.NoError(t, err)
	require.Empty(t, res.Regions)
	require.Equal(t, terrain.FirstLabel, res.NextLabel)
}

func TestMapper_LogsRegions(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	m := terrain.NewMapper(terrain.WithSeed(9, 9), terrain.WithLogger(zap.New(core)))

	_, err := m.Map(terrain.Grid{{0, 1, 0}})
	require.NoError(t, err)

	require.Equal(t, 1, logs.FilterMessage("seed").Len())
	require.Equal(t, 2, logs.FilterMessage("region").Len())
	require.Equal(t, 1, logs.FilterMessage("terrain mapped").Len())

	seed := logs.FilterMessage("seed").All()[0]
	require.Equal(t, "out of bounds", seed.ContextMap()["status"])
}

// Properties over random grids: every cell ends as an obstacle or a label,
// region count matches an independent component count, runs are
// deterministic and a free seed always gets FirstLabel.
func TestMapTerrain_RandomProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		rows, cols := 1+rng.Intn(20), 1+rng.Intn(20)
		g, err := generator.Random(rows, cols, rng.Float64()*0.6, rng)
		require.NoError(t, err)
		sr, sc := rng.Intn(rows+2)-1, rng.Intn(cols+2)-1

		out, err := terrain.MapTerrain(g, sr, sc)
		require.NoError(t, err)

		for r := range out {
			for c := range out[r] {
				if g[r][c] == terrain.Obstacle {
					require.Equal(t, terrain.Obstacle, out[r][c])
				} else {
					require.GreaterOrEqual(t, out[r][c], terrain.FirstLabel)
				}
			}
		}

		require.Len(t, terrain.Labels(out), terrain.CountComponents(g))

		again, err := terrain.MapTerrain(g, sr, sc)
		require.NoError(t, err)
		require.Equal(t, out, again)

		if g.InBounds(sr, sc) && g[sr][sc] == terrain.Free {
			require.Equal(t, terrain.FirstLabel, out[sr][sc])
		}

		// Refilling any labeled region with its own label changes nothing.
		for r := range out {
			for c := range out[r] {
				if out[r][c] >= terrain.FirstLabel {
					before := terrain.Clone(out)
					require.NoError(t, terrain.Fill(out, r, c, out[r][c]))
					require.Equal(t, before, out)
				}
			}
		}
	}
}
