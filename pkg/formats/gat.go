// Package formats reads Ragnarok Online ground altitude tables (GAT) and
// converts them into terrain grids.
package formats

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/Faultbox/midgard-regions/pkg/terrain"
)

// GAT format errors.
var (
	ErrInvalidGATMagic       = errors.New("invalid GAT magic: expected 'GRAT'")
	ErrUnsupportedGATVersion = errors.New("unsupported GAT version")
	ErrTruncatedGATData      = errors.New("truncated GAT data")
	ErrInvalidGATDimensions  = errors.New("invalid GAT dimensions")
)

const (
	gatMagic      = "GRAT"
	gatHeaderSize = 14 // magic(4) + version(2) + width(4) + height(4)
	gatCellSize   = 20 // 4 float32 heights + uint32 type
	gatMaxSide    = 4096
)

// GATVersion represents the GAT file version.
type GATVersion struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v GATVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// GATCellType represents the walkability type of a cell.
type GATCellType uint32

// Cell type constants.
const (
	GATWalkable      GATCellType = 0 // Normal walkable ground
	GATBlocked       GATCellType = 1 // Cannot walk through
	GATWater         GATCellType = 2 // Water, not walkable
	GATWalkableWater GATCellType = 3 // Shore/shallow water
	GATSnipeable     GATCellType = 4 // Cliff, can attack over
	GATBlockedSnipe  GATCellType = 5 // Blocked but can shoot over
)

var gatCellTypeNames = [...]string{
	GATWalkable:      "Walkable",
	GATBlocked:       "Blocked",
	GATWater:         "Water",
	GATWalkableWater: "Walkable+Water",
	GATSnipeable:     "Snipeable",
	GATBlockedSnipe:  "Blocked+Snipe",
}

// String returns a human-readable cell type name.
func (t GATCellType) String() string {
	if int(t) < len(gatCellTypeNames) {
		return gatCellTypeNames[t]
	}
	return fmt.Sprintf("Unknown(%d)", t)
}

// IsWalkable returns true if the cell type allows walking.
func (t GATCellType) IsWalkable() bool {
	return t == GATWalkable || t == GATWalkableWater
}

// GATCell is one cell of the table. Heights are ordered bottom-left,
// bottom-right, top-left, top-right.
type GATCell struct {
	Heights [4]float32
	Type    GATCellType
}

// GAT is a parsed ground altitude table. Cells are stored row by row,
// index y*Width+x.
type GAT struct {
	Version GATVersion
	Width   int
	Height  int
	Cells   []GATCell
}

// Cell returns the cell at (x, y) or nil when out of bounds.
func (g *GAT) Cell(x, y int) *GATCell {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return nil
	}
	return &g.Cells[y*g.Width+x]
}

// ToGrid converts the walkability layer into a terrain grid: walkable cells
// become terrain.Free, everything else terrain.Obstacle. Grid rows follow
// the GAT y axis and columns the x axis.
func (g *GAT) ToGrid() terrain.Grid {
	grid := terrain.New(g.Height, g.Width)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if !g.Cells[y*g.Width+x].Type.IsWalkable() {
				grid[y][x] = terrain.Obstacle
			}
		}
	}
	return grid
}

// CountByType returns the count of cells for each type.
func (g *GAT) CountByType() map[GATCellType]int {
	counts := make(map[GATCellType]int)
	for _, cell := range g.Cells {
		counts[cell.Type]++
	}
	return counts
}

// ParseGAT parses a GAT file from raw bytes.
func ParseGAT(data []byte) (*GAT, error) {
	if len(data) < gatHeaderSize {
		return nil, ErrTruncatedGATData
	}
	if string(data[:4]) != gatMagic {
		return nil, ErrInvalidGATMagic
	}

	// Version is stored as [minor, major]; cell layout is the same for 1.x-3.x.
	version := GATVersion{Major: data[5], Minor: data[4]}
	if version.Major < 1 || version.Major > 3 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedGATVersion, version)
	}

	width := binary.LittleEndian.Uint32(data[6:])
	height := binary.LittleEndian.Uint32(data[10:])
	if width == 0 || height == 0 || width > gatMaxSide || height > gatMaxSide {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidGATDimensions, width, height)
	}

	count := int(width) * int(height)
	body := data[gatHeaderSize:]
	if len(body) < count*gatCellSize {
		return nil, fmt.Errorf("%w: need %d cells, have %d",
			ErrTruncatedGATData, count, len(body)/gatCellSize)
	}

	gat := &GAT{
		Version: version,
		Width:   int(width),
		Height:  int(height),
		Cells:   make([]GATCell, count),
	}
	for i := range gat.Cells {
		raw := body[i*gatCellSize : (i+1)*gatCellSize]
		cell := &gat.Cells[i]
		for h := range cell.Heights {
			cell.Heights[h] = math.Float32frombits(binary.LittleEndian.Uint32(raw[h*4:]))
		}
		cell.Type = GATCellType(binary.LittleEndian.Uint32(raw[16:]))
	}

	return gat, nil
}

// ParseGATFile parses a GAT file from disk.
func ParseGATFile(path string) (*GAT, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading GAT file: %w", err)
	}
	return ParseGAT(data)
}

// GATFromGrid builds a version 1.2 table from a terrain grid. Free and
// labeled cells become walkable, obstacles blocked. Heights are zero.
func GATFromGrid(grid terrain.Grid) *GAT {
	gat := &GAT{
		Version: GATVersion{Major: 1, Minor: 2},
		Width:   grid.Cols(),
		Height:  grid.Rows(),
		Cells:   make([]GATCell, grid.Rows()*grid.Cols()),
	}
	for y, row := range grid {
		for x, v := range row {
			if v == terrain.Obstacle {
				gat.Cells[y*gat.Width+x].Type = GATBlocked
			}
		}
	}
	return gat
}

// Encode serializes the table in GAT file layout.
func (g *GAT) Encode() []byte {
	buf := make([]byte, gatHeaderSize+len(g.Cells)*gatCellSize)
	copy(buf, gatMagic)
	buf[4] = g.Version.Minor
	buf[5] = g.Version.Major
	binary.LittleEndian.PutUint32(buf[6:], uint32(g.Width))
	binary.LittleEndian.PutUint32(buf[10:], uint32(g.Height))

	for i, cell := range g.Cells {
		raw := buf[gatHeaderSize+i*gatCellSize:]
		for h, v := range cell.Heights {
			binary.LittleEndian.PutUint32(raw[h*4:], math.Float32bits(v))
		}
		binary.LittleEndian.PutUint32(raw[16:], uint32(cell.Type))
	}
	return buf
}
