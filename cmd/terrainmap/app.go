package main

import (
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-regions/internal/config"
	"github.com/Faultbox/midgard-regions/internal/logger"
	"github.com/Faultbox/midgard-regions/pkg/gridio"
	"github.com/Faultbox/midgard-regions/pkg/render"
	"github.com/Faultbox/midgard-regions/pkg/terrain"
)

// app carries the resolved configuration for one command.
type app struct {
	cfg      *config.Config
	seedFlag bool // -seed given explicitly
	out      io.Writer
	log      *zap.Logger
}

// setup parses flags, loads config and initializes logging. Extra flags can
// be registered on fs before calling.
func setup(fs *flag.FlagSet, args []string, stdout io.Writer) (*app, error) {
	flags := config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	return &app{
		cfg:      cfg,
		seedFlag: *flags.Seed != "",
		out:      stdout,
		log:      logger.Named(fs.Name()),
	}, nil
}

// seed picks the seed for a grid: an explicit -seed wins over a seed stored
// in the input document, which wins over the config file.
func (a *app) seed(doc *gridio.Document) terrain.Coord {
	if !a.seedFlag && doc != nil {
		if c, ok := doc.SeedCoord(); ok {
			return c
		}
	}
	return terrain.Coord{Row: a.cfg.Mapper.SeedRow, Col: a.cfg.Mapper.SeedCol}
}

// mapGrid labels g, prints it and writes the configured output.
func (a *app) mapGrid(name string, g terrain.Grid, seed terrain.Coord, output string) (*terrain.Result, error) {
	opts := []terrain.Option{
		terrain.WithSeed(seed.Row, seed.Col),
		terrain.WithLogger(logger.Named("mapper").With(zap.String("grid", name))),
	}
	if a.cfg.Mapper.StrictSeed {
		opts = append(opts, terrain.WithStrictSeed())
	}

	res, err := terrain.NewMapper(opts...).Map(g)
	if err != nil {
		return nil, fmt.Errorf("mapping %s: %w", name, err)
	}

	if a.cfg.Render.Text {
		if err := render.Text(a.out, g, "Original grid: "+name); err != nil {
			return nil, err
		}
		if err := render.Text(a.out, res.Grid, "Mapped grid: "+name); err != nil {
			return nil, err
		}
	}
	a.summary(res, seed)

	if output != "" {
		if err := a.write(output, name, seed, res); err != nil {
			return nil, err
		}
		a.log.Info("output written", zap.String("path", output))
	}
	return res, nil
}

func (a *app) summary(res *terrain.Result, seed terrain.Coord) {
	fmt.Fprintf(a.out, "Seed %s: %s\n", seed, res.Seed)
	fmt.Fprintf(a.out, "Regions: %d\n", len(res.Regions))

	regions := append([]terrain.Region(nil), res.Regions...)
	sort.SliceStable(regions, func(i, j int) bool {
		return regions[i].Size > regions[j].Size
	})
	if len(regions) > 10 {
		regions = regions[:10]
	}
	for _, r := range regions {
		fmt.Fprintf(a.out, "  label %-4d start %-10s cells %d\n", r.Label, r.Start, r.Size)
	}
	fmt.Fprintln(a.out)
}

// write saves the result as an image or grid document depending on the
// output extension.
func (a *app) write(path, name string, seed terrain.Coord, res *terrain.Result) error {
	format, err := gridio.FormatFromPath(path)
	if err != nil {
		return err
	}
	if format == gridio.FormatImage {
		img := render.Image(res.Grid, render.Options{
			CellSize:   a.cfg.Render.CellSize,
			ShowLabels: a.cfg.Render.ShowLabels,
			Title:      name,
		})
		return render.Save(path, img)
	}
	return gridio.Save(path, gridio.FromResult(name, &seed, res))
}

// outputFor derives a per-grid output path when one command maps several
// grids: out.png becomes out_<name>.png.
func outputFor(output, name string, multi bool) string {
	if output == "" || !multi {
		return output
	}
	ext := filepath.Ext(output)
	return strings.TrimSuffix(output, ext) + "_" + name + ext
}
