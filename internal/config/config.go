// Package config loads pathfinding setups from YAML files.
//
// A file describes the grid (either as rows of tile ids or as a text map with
// a legend), which tiles are walkable, movement costs, avoided cells,
// directional conditions, and how the service drives the scheduler.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/pdrpinto/gridstar"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config is the root of a gridstar YAML file.
type Config struct {
	Grid   [][]int        `yaml:"grid" validate:"required_without=Map"`
	Map    []string       `yaml:"map" validate:"required_without=Grid"`
	Legend map[string]int `yaml:"legend" validate:"required_with=Map"`

	AcceptableTiles []int                  `yaml:"acceptable_tiles" validate:"required,min=1"`
	TileCosts       map[int]float64        `yaml:"tile_costs" validate:"dive,gt=0"`
	PointCosts      []PointCost            `yaml:"point_costs" validate:"dive"`
	Avoid           []gridstar.Point       `yaml:"avoid"`
	Directional     []DirectionalCondition `yaml:"directional" validate:"dive"`

	Diagonals     bool    `yaml:"diagonals"`
	CornerCutting *bool   `yaml:"corner_cutting"`
	DiagonalCost  float64 `yaml:"diagonal_cost" validate:"omitempty,gt=0"`
	Sync          bool    `yaml:"sync"`

	IterationsPerTick int           `yaml:"iterations_per_tick" validate:"gte=0"`
	TickInterval      time.Duration `yaml:"tick_interval" validate:"gte=0"`

	Server    Server    `yaml:"server"`
	Telemetry Telemetry `yaml:"telemetry"`
}

// PointCost overrides the cost of one cell.
type PointCost struct {
	X    int     `yaml:"x" validate:"gte=0"`
	Y    int     `yaml:"y" validate:"gte=0"`
	Cost float64 `yaml:"cost" validate:"gt=0"`
}

// DirectionalCondition lists the bearings a cell may be entered from.
type DirectionalCondition struct {
	X    int      `yaml:"x" validate:"gte=0"`
	Y    int      `yaml:"y" validate:"gte=0"`
	From []string `yaml:"from" validate:"dive,required"`
}

// Server configures the HTTP service.
type Server struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gte=0"`

	// RateLimit caps API requests per second; 0 disables limiting.
	RateLimit float64 `yaml:"rate_limit" validate:"gte=0"`
	RateBurst int     `yaml:"rate_burst" validate:"gte=0"`
}

// Telemetry selects OpenTelemetry exporters.
type Telemetry struct {
	MetricExporter string `yaml:"metric_exporter" validate:"omitempty,oneof=prometheus stdout none"`
	TraceExporter  string `yaml:"trace_exporter" validate:"omitempty,oneof=stdout none"`
}

// Defaults used when a field is left empty.
const (
	DefaultTickInterval    = 50 * time.Millisecond
	DefaultAddr            = ":8080"
	DefaultShutdownTimeout = 5 * time.Second
)

// Load reads, decodes and validates the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML data.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.TickInterval == 0 {
		c.TickInterval = DefaultTickInterval
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.Telemetry.MetricExporter == "" {
		c.Telemetry.MetricExporter = "prometheus"
	}
	if c.Telemetry.TraceExporter == "" {
		c.Telemetry.TraceExporter = "none"
	}
}

// Validate checks struct tags, then the shape of the grid and every
// coordinate against it.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	grid, err := c.Tiles()
	if err != nil {
		return err
	}
	if len(grid) == 0 {
		return fmt.Errorf("%w: grid must have at least one row", ErrInvalidConfig)
	}
	width, height := len(grid[0]), len(grid)
	if width == 0 {
		return fmt.Errorf("%w: grid rows must not be empty", ErrInvalidConfig)
	}
	for y, row := range grid {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has %d tiles, want %d", ErrInvalidConfig, y, len(row), width)
		}
	}
	inside := func(x, y int) bool { return x >= 0 && y >= 0 && x < width && y < height }
	for _, pc := range c.PointCosts {
		if !inside(pc.X, pc.Y) {
			return fmt.Errorf("%w: point cost at (%d,%d) is outside the grid", ErrInvalidConfig, pc.X, pc.Y)
		}
	}
	for _, p := range c.Avoid {
		if !inside(p.X, p.Y) {
			return fmt.Errorf("%w: avoided point %v is outside the grid", ErrInvalidConfig, p)
		}
	}
	for _, dc := range c.Directional {
		if !inside(dc.X, dc.Y) {
			return fmt.Errorf("%w: directional condition at (%d,%d) is outside the grid", ErrInvalidConfig, dc.X, dc.Y)
		}
		if _, err := parseDirections(dc.From); err != nil {
			return fmt.Errorf("%w: directional condition at (%d,%d): %v", ErrInvalidConfig, dc.X, dc.Y, err)
		}
	}
	return nil
}

// Tiles returns the grid, translating Map through Legend when Grid is empty.
func (c *Config) Tiles() ([][]int, error) {
	if len(c.Grid) > 0 {
		return c.Grid, nil
	}
	grid := make([][]int, len(c.Map))
	for y, line := range c.Map {
		row := make([]int, 0, len(line))
		for x, r := range line {
			tile, ok := c.Legend[string(r)]
			if !ok {
				return nil, fmt.Errorf("%w: map symbol %q at (%d,%d) has no legend entry", ErrInvalidConfig, r, x, y)
			}
			row = append(row, tile)
		}
		grid[y] = row
	}
	return grid, nil
}

// Options translates the scheduling fields into pathfinder options.
func (c *Config) Options() []gridstar.Option {
	options := []gridstar.Option{
		gridstar.WithDiagonals(c.Diagonals),
		gridstar.WithSync(c.Sync),
	}
	if c.CornerCutting != nil {
		options = append(options, gridstar.WithCornerCutting(*c.CornerCutting))
	}
	if c.DiagonalCost > 0 {
		options = append(options, gridstar.WithDiagonalCost(c.DiagonalCost))
	}
	if c.IterationsPerTick > 0 {
		options = append(options, gridstar.WithIterationsPerCalculation(c.IterationsPerTick))
	}
	return options
}

// Apply installs the grid and every cost, avoidance and directional setting
// on pf, replacing what was there. Scheduling options are left alone; use
// Options when constructing the pathfinder.
func (c *Config) Apply(pf *gridstar.Pathfinder[int]) error {
	grid, err := c.Tiles()
	if err != nil {
		return err
	}
	if err := pf.SetGrid(grid); err != nil {
		return err
	}
	pf.SetAcceptableTiles(c.AcceptableTiles...)
	pf.RemoveAllTileCosts()
	for tile, cost := range c.TileCosts {
		if err := pf.SetTileCost(tile, cost); err != nil {
			return fmt.Errorf("tile %d: %w", tile, err)
		}
	}

	pf.RemoveAllAdditionalPointCosts()
	for _, pc := range c.PointCosts {
		if err := pf.SetAdditionalPointCost(pc.X, pc.Y, pc.Cost); err != nil {
			return err
		}
	}

	pf.StopAvoidingAllAdditionalPoints()
	for _, p := range c.Avoid {
		pf.AvoidAdditionalPoint(p.X, p.Y)
	}

	pf.RemoveAllDirectionalConditions()
	for _, dc := range c.Directional {
		directions, err := parseDirections(dc.From)
		if err != nil {
			return err
		}
		pf.SetDirectionalCondition(dc.X, dc.Y, directions...)
	}
	return nil
}

func parseDirections(names []string) ([]gridstar.Direction, error) {
	directions := make([]gridstar.Direction, 0, len(names))
	for _, name := range names {
		d, err := gridstar.ParseDirection(name)
		if err != nil {
			return nil, err
		}
		directions = append(directions, d)
	}
	return directions, nil
}
