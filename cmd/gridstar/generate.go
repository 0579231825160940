package main

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pdrpinto/gridstar"
)

var (
	genWidth     int
	genHeight    int
	genClusters  int
	genSteps     int
	genDensity   float64
	genSeed      int64
	genDiagonals bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print a random grid config",
	Long: `Generates a grid with clustered walls grown by random walks and prints
it as a config file on stdout. The --from/--to cells of the printed comment
are guaranteed to be open.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().IntVar(&genWidth, "width", 40, "grid width")
	generateCmd.Flags().IntVar(&genHeight, "height", 24, "grid height")
	generateCmd.Flags().IntVar(&genClusters, "clusters", 8, "number of wall clusters")
	generateCmd.Flags().IntVar(&genSteps, "steps", 200, "random walk length per cluster")
	generateCmd.Flags().Float64Var(&genDensity, "density", 0.25, "probability of placing a wall per step")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 0, "random seed (0 uses the clock)")
	generateCmd.Flags().BoolVar(&genDiagonals, "diagonals", false, "enable diagonal movement in the config")
}

type generatedConfig struct {
	Map             []string       `yaml:"map"`
	Legend          map[string]int `yaml:"legend"`
	AcceptableTiles []int          `yaml:"acceptable_tiles"`
	Diagonals       bool           `yaml:"diagonals,omitempty"`
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if genWidth < 2 || genHeight < 2 {
		return fmt.Errorf("grid must be at least 2x2, got %dx%d", genWidth, genHeight)
	}
	if genDensity < 0 || genDensity > 1 {
		return fmt.Errorf("density must be within [0,1], got %v", genDensity)
	}
	seed := genSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	start, goal := randomEndpoints(rng, genWidth, genHeight)
	walls := genWalls(rng, genWidth, genHeight, genClusters, genSteps, genDensity, start, goal)

	out, err := yaml.Marshal(generatedConfig{
		Map:             drawWalls(genWidth, genHeight, walls),
		Legend:          map[string]int{".": 0, "#": 1},
		AcceptableTiles: []int{0},
		Diagonals:       genDiagonals,
	})
	if err != nil {
		return err
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "# seed %d: try --from %d,%d --to %d,%d\n", seed, start.X, start.Y, goal.X, goal.Y)
	_, err = w.Write(out)
	return err
}

func randomEndpoints(rng *rand.Rand, width, height int) (gridstar.Point, gridstar.Point) {
	for {
		start := gridstar.Point{X: rng.Intn(width), Y: rng.Intn(height)}
		goal := gridstar.Point{X: rng.Intn(width), Y: rng.Intn(height)}
		if start != goal {
			return start, goal
		}
	}
}

// genWalls grows clustered walls via random walks, never on start or goal.
func genWalls(rng *rand.Rand, width, height, clusters, steps int, density float64, start, goal gridstar.Point) map[gridstar.Point]bool {
	moves := []gridstar.Point{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}
	walls := map[gridstar.Point]bool{}
	for c := 0; c < clusters; c++ {
		p := gridstar.Point{X: rng.Intn(width), Y: rng.Intn(height)}
		for s := 0; s < steps; s++ {
			if rng.Float64() < density && p != start && p != goal {
				walls[p] = true
			}
			d := moves[rng.Intn(len(moves))]
			next := gridstar.Point{X: p.X + d.X, Y: p.Y + d.Y}
			if next.X >= 0 && next.X < width && next.Y >= 0 && next.Y < height {
				p = next
			}
		}
	}
	return walls
}

func drawWalls(width, height int, walls map[gridstar.Point]bool) []string {
	rows := make([]string, height)
	for y := range rows {
		var b strings.Builder
		for x := 0; x < width; x++ {
			if walls[gridstar.Point{X: x, Y: y}] {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		rows[y] = b.String()
	}
	return rows
}
