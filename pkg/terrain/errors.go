package terrain

import "errors"

// Terrain errors.
var (
	// ErrEmptyGrid indicates the grid has no rows or no columns.
	ErrEmptyGrid = errors.New("terrain: grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("terrain: all rows must have the same length")
	// ErrOutOfBounds indicates a fill start outside the grid.
	ErrOutOfBounds = errors.New("terrain: coordinate out of bounds")
	// ErrSeedOutOfBounds is returned by a strict mapper for a seed outside the grid.
	ErrSeedOutOfBounds = errors.New("terrain: seed out of bounds")
	// ErrSeedNotFree is returned by a strict mapper when the seed cell is not free.
	ErrSeedNotFree = errors.New("terrain: seed cell is not free")
)
