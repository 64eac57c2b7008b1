package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

// Flags holds command-line overrides registered on a FlagSet.
type Flags struct {
	Config   *string
	Debug    *bool
	Seed     *string
	Strict   *bool
	Output   *string
	Quiet    *bool
	Rows     *int
	Cols     *int
	Ratio    *float64
	RandSeed *int64
	Cell     *int
	NoLabels *bool
}

// RegisterFlags adds the shared flags to fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		Config:   fs.String("config", "", "Path to config file"),
		Debug:    fs.Bool("debug", false, "Enable debug logging"),
		Seed:     fs.String("seed", "", "Seed cell as row,col"),
		Strict:   fs.Bool("strict", false, "Fail when the seed cannot be applied"),
		Output:   fs.String("o", "", "Output file (.png, .bmp, .yaml, .txt, .gat)"),
		Quiet:    fs.Bool("q", false, "Do not print text tables"),
		Rows:     fs.Int("rows", 0, "Random grid rows"),
		Cols:     fs.Int("cols", 0, "Random grid columns"),
		Ratio:    fs.Float64("ratio", -1, "Random grid obstacle ratio"),
		RandSeed: fs.Int64("rand-seed", 0, "Random generator seed"),
		Cell:     fs.Int("cell", 0, "Image cell size in pixels"),
		NoLabels: fs.Bool("no-labels", false, "Do not draw labels in images"),
	}
}

// ConfigPath returns the explicit config path if provided via -config.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return *f.Config
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) error {
	if f == nil {
		return nil
	}
	if *f.Debug {
		cfg.Logging.Level = "debug"
	}
	if *f.Seed != "" {
		row, col, err := ParseCoord(*f.Seed)
		if err != nil {
			return err
		}
		cfg.Mapper.SeedRow, cfg.Mapper.SeedCol = row, col
	}
	if *f.Strict {
		cfg.Mapper.StrictSeed = true
	}
	if *f.Output != "" {
		cfg.Render.Output = *f.Output
	}
	if *f.Quiet {
		cfg.Render.Text = false
	}
	if *f.Rows > 0 {
		cfg.Generator.Rows = *f.Rows
	}
	if *f.Cols > 0 {
		cfg.Generator.Cols = *f.Cols
	}
	if *f.Ratio >= 0 {
		cfg.Generator.ObstacleRatio = *f.Ratio
	}
	if *f.RandSeed != 0 {
		cfg.Generator.Seed = *f.RandSeed
	}
	if *f.Cell > 0 {
		cfg.Render.CellSize = *f.Cell
	}
	if *f.NoLabels {
		cfg.Render.ShowLabels = false
	}
	return nil
}

// ParseCoord parses "row,col". Negative values are accepted; an out of
// bounds seed is handled by the mapper.
func ParseCoord(s string) (row, col int, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: seed %q, want row,col", ErrInvalid, s)
	}
	row, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: seed row %q", ErrInvalid, parts[0])
	}
	col, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: seed col %q", ErrInvalid, parts[1])
	}
	return row, col, nil
}
