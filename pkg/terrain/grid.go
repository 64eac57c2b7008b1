// Package terrain labels connected regions of free cells in a 2D grid.
//
// Cell values follow a fixed protocol:
//
//   - Free (0): unmapped cell that may be filled.
//   - Obstacle (1): never overwritten by the mapper.
//   - n >= FirstLabel (2): a region label already assigned.
//
// Connectivity is orthogonal only (N, S, W, E).
package terrain

import "fmt"

// Cell protocol constants.
const (
	Free       = 0 // Unmapped free cell
	Obstacle   = 1 // Permanent obstacle
	FirstLabel = 2 // First label handed out by the mapper
)

// Grid is a rectangular, row-major table of cell values: Grid[row][col].
type Grid [][]int

// Coord addresses a single cell.
type Coord struct {
	Row, Col int
}

// String returns the coordinate as "(row,col)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// neighbors lists the orthogonal offsets (row, col) used by every traversal.
var neighbors = [4][2]int{
	{-1, 0}, // N
	{1, 0},  // S
	{0, -1}, // W
	{0, 1},  // E
}

// New allocates a rows×cols grid filled with Free cells.
func New(rows, cols int) Grid {
	g := make(Grid, rows)
	for r := range g {
		g[r] = make([]int, cols)
	}
	return g
}

// Validate reports ErrEmptyGrid for a grid without rows or columns and
// ErrNonRectangular when row lengths differ.
func Validate(g Grid) error {
	if len(g) == 0 || len(g[0]) == 0 {
		return ErrEmptyGrid
	}
	w := len(g[0])
	for r, row := range g {
		if len(row) != w {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrNonRectangular, r, len(row), w)
		}
	}
	return nil
}

// Clone returns a deep copy of g.
func Clone(g Grid) Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	for r, row := range g {
		out[r] = make([]int, len(row))
		copy(out[r], row)
	}
	return out
}

// Rows returns the grid height.
func (g Grid) Rows() int {
	return len(g)
}

// Cols returns the grid width (length of the first row).
func (g Grid) Cols() int {
	if len(g) == 0 {
		return 0
	}
	return len(g[0])
}

// InBounds reports whether (row, col) addresses an existing cell.
func (g Grid) InBounds(row, col int) bool {
	return row >= 0 && row < len(g) && col >= 0 && col < len(g[row])
}

// Equal reports whether two grids have identical shape and values.
func (g Grid) Equal(other Grid) bool {
	if len(g) != len(other) {
		return false
	}
	for r := range g {
		if len(g[r]) != len(other[r]) {
			return false
		}
		for c := range g[r] {
			if g[r][c] != other[r][c] {
				return false
			}
		}
	}
	return true
}
