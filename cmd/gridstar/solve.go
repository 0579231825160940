package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdrpinto/gridstar"
	"github.com/pdrpinto/gridstar/internal/config"
)

var (
	solveFrom string // start cell as x,y
	solveTo   string // goal cell as x,y
	solveJSON bool   // print the result as JSON
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Find one path and print it",
	Long: `Loads the grid config, runs a single request to completion and prints
the path drawn over the grid (or as JSON with --json).

Exit status is non-zero when the configuration is invalid or a point lies
outside the grid; an unreachable goal is reported, not treated as an error.`,
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().StringVar(&solveFrom, "from", "", "start cell as x,y")
	solveCmd.Flags().StringVar(&solveTo, "to", "", "goal cell as x,y")
	solveCmd.Flags().BoolVar(&solveJSON, "json", false, "print the result as JSON")
	_ = solveCmd.MarkFlagRequired("from")
	_ = solveCmd.MarkFlagRequired("to")
}

func runSolve(cmd *cobra.Command, args []string) error {
	from, err := parsePoint(solveFrom)
	if err != nil {
		return err
	}
	to, err := parsePoint(solveTo)
	if err != nil {
		return err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	result, err := solve(cmd.Context(), cfg, from, to)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if solveJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	if !result.Found {
		fmt.Fprintf(out, "no path from %v to %v (%d nodes expanded)\n", from, to, result.Expanded)
		return nil
	}
	tiles, _ := cfg.Tiles()
	fmt.Fprint(out, render(tiles, cfg.AcceptableTiles, result.Path))
	fmt.Fprintf(out, "cost %.2f, %d steps, %d nodes expanded\n", result.Cost, max(len(result.Path)-1, 0), result.Expanded)
	return nil
}

// solve runs one request in sync mode.
func solve(ctx context.Context, cfg *config.Config, from, to gridstar.Point) (gridstar.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	pf := gridstar.New[int](append(cfg.Options(), gridstar.WithSync(true), gridstar.WithLogger(logger))...)
	if err := cfg.Apply(pf); err != nil {
		return gridstar.Result{}, err
	}

	var result gridstar.Result
	if _, err := pf.FindPath(from.X, from.Y, to.X, to.Y, func(r gridstar.Result) { result = r }); err != nil {
		return gridstar.Result{}, err
	}
	pf.Calculate(ctx)
	return result, nil
}

func parsePoint(s string) (gridstar.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return gridstar.Point{}, fmt.Errorf("invalid point %q, want x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return gridstar.Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return gridstar.Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return gridstar.Point{X: x, Y: y}, nil
}

// render draws the grid with '#' for blocked tiles, '.' for walkable ones,
// 'S' and 'G' for the endpoints and '*' along the path.
func render(grid [][]int, acceptable []int, path []gridstar.Point) string {
	walkable := make(map[int]bool, len(acceptable))
	for _, tile := range acceptable {
		walkable[tile] = true
	}
	cells := make([][]byte, len(grid))
	for y, row := range grid {
		cells[y] = make([]byte, len(row))
		for x, tile := range row {
			cells[y][x] = '#'
			if walkable[tile] {
				cells[y][x] = '.'
			}
		}
	}
	for i, p := range path {
		switch i {
		case 0:
			cells[p.Y][p.X] = 'S'
		case len(path) - 1:
			cells[p.Y][p.X] = 'G'
		default:
			cells[p.Y][p.X] = '*'
		}
	}
	var b strings.Builder
	for _, row := range cells {
		b.Write(row)
		b.WriteByte('\n')
	}
	return b.String()
}
