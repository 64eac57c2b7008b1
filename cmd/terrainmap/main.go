// terrainmap labels the connected free regions of obstacle grids.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// run dispatches a subcommand. Tables and summaries go to stdout.
func run(args []string, stdout io.Writer) error {
	if len(args) < 1 {
		printUsage(os.Stderr)
		return flag.ErrHelp
	}

	command := args[0]
	args = args[1:]

	switch command {
	case "map":
		return cmdMap(args, stdout)
	case "random", "rand":
		return cmdRandom(args, stdout)
	case "demo":
		return cmdDemo(args, stdout)
	case "gat":
		return cmdGAT(args, stdout)
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage(os.Stderr)
		return flag.ErrHelp
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `terrainmap - connected region labeling for obstacle grids

Usage:
  terrainmap <command> [options]

Commands:
  map <file>                  Label a grid file (.txt, .yaml, .gat, .png, .bmp)
  random                      Label a random grid
  demo                        Label the built-in example grids and a random one
  gat [-grf archive] [path]   Label a GAT walkability map, optionally from a GRF
  help                        Show this help

Common options:
  -config <file>   Config file (default ./regions.yaml or user config dir)
  -seed r,c        Cell that receives the first label
  -strict          Fail when the seed is out of bounds or not free
  -o <file>        Write the result (.png, .bmp, .yaml, .txt, .gat)
  -q               Do not print text tables
  -debug           Enable debug logging

Examples:
  terrainmap map -seed 0,2 cave.txt
  terrainmap random -rows 20 -cols 40 -ratio 0.4 -o random.png
  terrainmap gat -grf data.grf data/prontera.gat -o prontera.png`)
}
