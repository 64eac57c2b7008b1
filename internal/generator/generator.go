// Package generator builds random obstacle grids for testing and demos.
package generator

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/Faultbox/midgard-regions/pkg/terrain"
)

// Generator errors.
var (
	ErrInvalidSize  = errors.New("generator: rows and cols must be positive")
	ErrInvalidRatio = errors.New("generator: obstacle ratio must be within [0, 1]")
)

// Random returns a rows×cols grid of Free cells with exactly
// int(rows*cols*ratio) Obstacle cells placed at distinct random positions.
// The same rng state always yields the same grid.
func Random(rows, cols int, ratio float64, rng *rand.Rand) (terrain.Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, rows, cols)
	}
	if ratio < 0 || ratio > 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRatio, ratio)
	}

	g := terrain.New(rows, cols)
	total := rows * cols
	obstacles := int(float64(total) * ratio)

	// Partial Fisher-Yates over cell indices picks distinct cells without
	// retry loops, even for ratios close to 1.
	cells := make([]int, total)
	for i := range cells {
		cells[i] = i
	}
	for i := 0; i < obstacles; i++ {
		j := i + rng.Intn(total-i)
		cells[i], cells[j] = cells[j], cells[i]
		idx := cells[i]
		g[idx/cols][idx%cols] = terrain.Obstacle
	}

	return g, nil
}

// NewRand returns a *rand.Rand for seed. A zero seed is replaced by source
// so that callers can request a non-reproducible run.
func NewRand(seed int64, source func() int64) *rand.Rand {
	if seed == 0 && source != nil {
		seed = source()
	}
	return rand.New(rand.NewSource(seed))
}
