package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-regions/internal/generator"
	"github.com/Faultbox/midgard-regions/pkg/formats"
	"github.com/Faultbox/midgard-regions/pkg/gridio"
	"github.com/Faultbox/midgard-regions/pkg/grf"
	"github.com/Faultbox/midgard-regions/pkg/terrain"
)

var errUsage = errors.New("missing argument")

// Built-in demo grids with the seeds they are mapped from.
var demoGrids = []struct {
	name string
	seed terrain.Coord
	grid terrain.Grid
}{
	{
		name: "example1",
		seed: terrain.Coord{Row: 0, Col: 0},
		grid: terrain.Grid{
			{0, 0, 1, 0, 0},
			{0, 1, 1, 0, 0},
			{0, 0, 1, 1, 1},
			{1, 1, 0, 0, 0},
		},
	},
	{
		name: "example2",
		seed: terrain.Coord{Row: 0, Col: 2},
		grid: terrain.Grid{
			{0, 1, 0, 0, 1},
			{0, 1, 0, 0, 1},
			{0, 1, 1, 1, 1},
			{0, 0, 0, 1, 0},
		},
	},
}

func cmdMap(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("map", flag.ContinueOnError)
	a, err := setup(fs, args, stdout)
	if err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("%w: usage: terrainmap map [options] <file>", errUsage)
	}

	doc, err := gridio.Load(fs.Arg(0))
	if err != nil {
		return err
	}
	a.log.Debug("grid loaded",
		zap.String("path", fs.Arg(0)),
		zap.Int("rows", len(doc.Rows)))

	_, err = a.mapGrid(doc.Name, doc.Grid(), a.seed(doc), a.cfg.Render.Output)
	return err
}

func cmdRandom(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("random", flag.ContinueOnError)
	a, err := setup(fs, args, stdout)
	if err != nil {
		return err
	}

	gen := a.cfg.Generator
	rng := generator.NewRand(gen.Seed, func() int64 { return time.Now().UnixNano() })
	g, err := generator.Random(gen.Rows, gen.Cols, gen.ObstacleRatio, rng)
	if err != nil {
		return err
	}

	_, err = a.mapGrid("random", g, a.seed(nil), a.cfg.Render.Output)
	return err
}

// cmdDemo maps the built-in examples and one random grid.
func cmdDemo(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	a, err := setup(fs, args, stdout)
	if err != nil {
		return err
	}

	output := a.cfg.Render.Output
	for _, d := range demoGrids {
		if _, err := a.mapGrid(d.name, d.grid, d.seed, outputFor(output, d.name, true)); err != nil {
			return err
		}
	}

	gen := a.cfg.Generator
	rng := generator.NewRand(gen.Seed, func() int64 { return time.Now().UnixNano() })
	g, err := generator.Random(gen.Rows, gen.Cols, gen.ObstacleRatio, rng)
	if err != nil {
		return err
	}
	_, err = a.mapGrid("random", g, a.seed(nil), outputFor(output, "random", true))
	return err
}

// cmdGAT maps a GAT walkability layer from disk or from a GRF archive.
// With -grf and no path it lists the archive's GAT files.
func cmdGAT(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("gat", flag.ContinueOnError)
	archivePath := fs.String("grf", "", "GRF archive to read the map from")
	a, err := setup(fs, args, stdout)
	if err != nil {
		return err
	}

	if *archivePath == "" {
		if fs.NArg() < 1 {
			return fmt.Errorf("%w: usage: terrainmap gat [-grf archive] <path>", errUsage)
		}
		gat, err := formats.ParseGATFile(fs.Arg(0))
		if err != nil {
			return err
		}
		return a.mapGAT(gatName(fs.Arg(0)), gat)
	}

	archive, err := grf.Open(*archivePath)
	if err != nil {
		return err
	}
	defer archive.Close()

	if fs.NArg() < 1 {
		for _, name := range archive.List(".gat") {
			fmt.Fprintln(stdout, name)
		}
		return nil
	}

	data, err := archive.Read(fs.Arg(0))
	if err != nil {
		return err
	}
	gat, err := formats.ParseGAT(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", fs.Arg(0), err)
	}
	return a.mapGAT(gatName(fs.Arg(0)), gat)
}

func (a *app) mapGAT(name string, gat *formats.GAT) error {
	fmt.Fprintf(a.out, "Map:     %s\n", name)
	fmt.Fprintf(a.out, "Version: %s\n", gat.Version)
	fmt.Fprintf(a.out, "Size:    %dx%d\n", gat.Width, gat.Height)

	counts := gat.CountByType()
	types := make([]formats.GATCellType, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	for _, t := range types {
		fmt.Fprintf(a.out, "  %-15s %d\n", t, counts[t])
	}
	fmt.Fprintln(a.out)

	_, err := a.mapGrid(name, gat.ToGrid(), a.seed(nil), a.cfg.Render.Output)
	return err
}

func gatName(p string) string {
	base := path.Base(grf.NormalizePath(p))
	return strings.TrimSuffix(base, path.Ext(base))
}
