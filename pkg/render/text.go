// Package render draws labeled grids as text tables and images.
package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/Faultbox/midgard-regions/pkg/terrain"
)

// Text writes g as a table: a "--- title ---" line, one line per row with
// cells left-aligned to width 2 and separated by a space, and a dashed
// footer three characters per column wide.
func Text(w io.Writer, g terrain.Grid, title string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "--- %s ---\n", title)
	if len(g) == 0 || len(g[0]) == 0 {
		bw.WriteString("Empty grid.\n")
		return bw.Flush()
	}
	for _, row := range g {
		for i, v := range row {
			if i > 0 {
				bw.WriteByte(' ')
			}
			fmt.Fprintf(bw, "%-2d", v)
		}
		bw.WriteByte('\n')
	}
	bw.WriteString(strings.Repeat("-", len(g[0])*3))
	bw.WriteByte('\n')
	return bw.Flush()
}
