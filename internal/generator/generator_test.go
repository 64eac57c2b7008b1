package generator

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/Faultbox/midgard-regions/pkg/terrain"
)

func countObstacles(g terrain.Grid) int {
	n := 0
	for _, row := range g {
		for _, v := range row {
			if v == terrain.Obstacle {
				n++
			}
		}
	}
	return n
}

func TestRandom_ObstacleCount(t *testing.T) {
	tests := []struct {
		rows, cols int
		ratio      float64
		expected   int
	}{
		{10, 15, 0.35, 52},
		{4, 4, 0, 0},
		{4, 4, 1, 16},
		{3, 3, 0.5, 4},
		{1, 1, 0.99, 0},
	}

	for _, tc := range tests {
		g, err := Random(tc.rows, tc.cols, tc.ratio, rand.New(rand.NewSource(1)))
		if err != nil {
			t.Fatalf("Random(%d, %d, %v) failed: %v", tc.rows, tc.cols, tc.ratio, err)
		}
		if err := terrain.Validate(g); err != nil {
			t.Fatalf("invalid grid: %v", err)
		}
		if g.Rows() != tc.rows || g.Cols() != tc.cols {
			t.Errorf("expected %dx%d grid, got %dx%d", tc.rows, tc.cols, g.Rows(), g.Cols())
		}
		if got := countObstacles(g); got != tc.expected {
			t.Errorf("Random(%d, %d, %v): expected %d obstacles, got %d",
				tc.rows, tc.cols, tc.ratio, tc.expected, got)
		}
	}
}

func TestRandom_OnlyFreeAndObstacle(t *testing.T) {
	g, err := Random(20, 20, 0.4, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("Random failed: %v", err)
	}
	for r, row := range g {
		for c, v := range row {
			if v != terrain.Free && v != terrain.Obstacle {
				t.Errorf("cell (%d,%d) = %d, want 0 or 1", r, c, v)
			}
		}
	}
}

func TestRandom_Deterministic(t *testing.T) {
	a, _ := Random(12, 9, 0.3, rand.New(rand.NewSource(99)))
	b, _ := Random(12, 9, 0.3, rand.New(rand.NewSource(99)))
	if !a.Equal(b) {
		t.Error("expected identical grids for identical seeds")
	}
}

func TestRandom_InvalidInput(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if _, err := Random(0, 5, 0.1, rng); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("expected ErrInvalidSize, got %v", err)
	}
	if _, err := Random(5, -1, 0.1, rng); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("expected ErrInvalidSize, got %v", err)
	}
	if _, err := Random(5, 5, 1.5, rng); !errors.Is(err, ErrInvalidRatio) {
		t.Errorf("expected ErrInvalidRatio, got %v", err)
	}
	if _, err := Random(5, 5, -0.1, rng); !errors.Is(err, ErrInvalidRatio) {
		t.Errorf("expected ErrInvalidRatio, got %v", err)
	}
}

func TestNewRand(t *testing.T) {
	called := false
	source := func() int64 {
		called = true
		return 5
	}

	a := NewRand(0, source)
	if !called {
		t.Error("expected source to be used for zero seed")
	}
	b := rand.New(rand.NewSource(5))
	if a.Int63() != b.Int63() {
		t.Error("expected generator seeded from source")
	}

	called = false
	NewRand(3, source)
	if called {
		t.Error("source must not be used for explicit seed")
	}
}
