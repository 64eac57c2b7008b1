package terrain

import "sort"

// CountComponents counts the maximal 4-connected groups of Free cells in g
// without modifying it. It uses its own breadth-first traversal, so it can
// serve as an independent check of a mapping run.
//
// Time: O(rows·cols), Memory: O(rows·cols).
func CountComponents(g Grid) int {
	rows, cols := g.Rows(), g.Cols()
	seen := make([]bool, rows*cols)
	count := 0

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if g[r][c] != Free || seen[r*cols+c] {
				continue
			}
			count++
			seen[r*cols+c] = true
			queue := []Coord{{r, c}}
			for qi := 0; qi < len(queue); qi++ {
				u := queue[qi]
				for _, d := range neighbors {
					nr, nc := u.Row+d[0], u.Col+d[1]
					if nr < 0 || nr >= rows || nc < 0 || nc >= cols {
						continue
					}
					if g[nr][nc] != Free || seen[nr*cols+nc] {
						continue
					}
					seen[nr*cols+nc] = true
					queue = append(queue, Coord{nr, nc})
				}
			}
		}
	}
	return count
}

// Labels returns the distinct region labels (values >= FirstLabel) in g, sorted.
func Labels(g Grid) []int {
	set := make(map[int]struct{})
	for _, row := range g {
		for _, v := range row {
			if v >= FirstLabel {
				set[v] = struct{}{}
			}
		}
	}
	out := make([]int, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

// Sizes returns the number of cells carrying each label >= FirstLabel.
func Sizes(g Grid) map[int]int {
	sizes := make(map[int]int)
	for _, row := range g {
		for _, v := range row {
			if v >= FirstLabel {
				sizes[v]++
			}
		}
	}
	return sizes
}
