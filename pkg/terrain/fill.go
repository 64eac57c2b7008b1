package terrain

import "fmt"

// Fill relabels the 4-connected region containing (row, col) with label.
// Every cell reachable from the start through cells holding the start's
// original value is set to label. Filling with the value the start cell
// already holds is a no-op.
//
// Returns ErrOutOfBounds if the start does not address a cell. The grid
// must be rectangular.
func Fill(g Grid, row, col, label int) error {
	_, err := FillCount(g, row, col, label)
	return err
}

// FillCount behaves like Fill and also returns the number of relabeled cells.
func FillCount(g Grid, row, col, label int) (int, error) {
	if !g.InBounds(row, col) {
		return 0, fmt.Errorf("%w: %s", ErrOutOfBounds, Coord{row, col})
	}

	original := g[row][col]
	if original == label {
		return 0, nil
	}

	rows, cols := g.Rows(), g.Cols()
	filled := 0

	// Explicit stack; a cell may be pushed more than once before it is
	// popped, the value check below skips the stale entries.
	stack := []Coord{{row, col}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if g[p.Row][p.Col] != original {
			continue
		}
		g[p.Row][p.Col] = label
		filled++

		for _, d := range neighbors {
			nr, nc := p.Row+d[0], p.Col+d[1]
			if nr < 0 || nr >= rows || nc < 0 || nc >= cols {
				continue
			}
			if g[nr][nc] == original {
				stack = append(stack, Coord{nr, nc})
			}
		}
	}

	return filled, nil
}
