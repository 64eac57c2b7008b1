package terrain

import (
	"fmt"

	"go.uber.org/zap"
)

// SeedStatus records what the mapper did with the requested seed.
type SeedStatus int

// Seed outcomes.
const (
	SeedNone        SeedStatus = iota // No seed requested
	SeedApplied                       // Seed region received FirstLabel
	SeedOutOfBounds                   // Seed outside the grid, skipped
	SeedNotFree                       // Seed on an obstacle or labeled cell, skipped
)

// String returns a human-readable seed status.
func (s SeedStatus) String() string {
	switch s {
	case SeedNone:
		return "none"
	case SeedApplied:
		return "applied"
	case SeedOutOfBounds:
		return "out of bounds"
	case SeedNotFree:
		return "not free"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// Region describes one labeled region.
type Region struct {
	Label int   // Assigned label
	Start Coord // Cell the fill started from
	Size  int   // Number of cells in the region
}

// Result is the outcome of a mapping run.
type Result struct {
	Grid      Grid
	Seed      SeedStatus
	Regions   []Region // In label order
	NextLabel int      // Label the next region would have received
}

// Mapper labels every free region of a grid. It is immutable after
// construction and safe to share.
type Mapper struct {
	seed   *Coord
	strict bool
	log    *zap.Logger
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithSeed requests that the region containing (row, col) receives FirstLabel.
func WithSeed(row, col int) Option {
	return func(m *Mapper) {
		m.seed = &Coord{Row: row, Col: col}
	}
}

// WithStrictSeed turns a skipped seed into an error.
func WithStrictSeed() Option {
	return func(m *Mapper) {
		m.strict = true
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(log *zap.Logger) Option {
	return func(m *Mapper) {
		if log != nil {
			m.log = log
		}
	}
}

// NewMapper creates a mapper with the given options.
func NewMapper(opts ...Option) *Mapper {
	m := &Mapper{log: zap.NewNop()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// MapTerrain returns a copy of g with every free region labeled. The region
// containing (seedRow, seedCol) receives FirstLabel when that cell is free;
// otherwise the seed is skipped. Remaining regions are labeled in row-major
// order of their first cell. The input grid is never modified.
func MapTerrain(g Grid, seedRow, seedCol int) (Grid, error) {
	res, err := NewMapper(WithSeed(seedRow, seedCol)).Map(g)
	if err != nil {
		return nil, err
	}
	return res.Grid, nil
}

// Map labels a copy of g. It fails with ErrEmptyGrid or ErrNonRectangular
// before any work is done, and with ErrSeedOutOfBounds or ErrSeedNotFree
// when the mapper is strict and the seed cannot be applied.
func (m *Mapper) Map(g Grid) (*Result, error) {
	if err := Validate(g); err != nil {
		return nil, err
	}

	res := &Result{
		Grid:      Clone(g),
		Seed:      SeedNone,
		NextLabel: FirstLabel,
	}

	if m.seed != nil {
		status := m.seedStatus(res.Grid)
		if status != SeedApplied && m.strict {
			return nil, m.seedError(status)
		}
		res.Seed = status
		m.log.Debug("seed",
			zap.Stringer("coord", *m.seed),
			zap.Stringer("status", status))
		if status == SeedApplied {
			m.fill(res, *m.seed)
		}
	}

	for r, row := range res.Grid {
		for c := range row {
			if res.Grid[r][c] == Free {
				m.fill(res, Coord{r, c})
			}
		}
	}

	m.log.Debug("terrain mapped",
		zap.Int("rows", res.Grid.Rows()),
		zap.Int("cols", res.Grid.Cols()),
		zap.Int("regions", len(res.Regions)))

	return res, nil
}

// fill labels the region at start with the next label and records it.
func (m *Mapper) fill(res *Result, start Coord) {
	// start is in bounds and free, FillCount cannot fail here.
	size, _ := FillCount(res.Grid, start.Row, start.Col, res.NextLabel)
	res.Regions = append(res.Regions, Region{
		Label: res.NextLabel,
		Start: start,
		Size:  size,
	})
	m.log.Debug("region",
		zap.Int("label", res.NextLabel),
		zap.Stringer("start", start),
		zap.Int("size", size))
	res.NextLabel++
}

func (m *Mapper) seedStatus(g Grid) SeedStatus {
	s := *m.seed
	if !g.InBounds(s.Row, s.Col) {
		return SeedOutOfBounds
	}
	if g[s.Row][s.Col] != Free {
		return SeedNotFree
	}
	return SeedApplied
}

func (m *Mapper) seedError(status SeedStatus) error {
	switch status {
	case SeedOutOfBounds:
		return fmt.Errorf("%w: %s", ErrSeedOutOfBounds, *m.seed)
	default:
		return fmt.Errorf("%w: %s", ErrSeedNotFree, *m.seed)
	}
}
