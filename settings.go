package gridstar

import (
	"fmt"
	"math"
)

// SetGrid installs the grid, indexed as grid[y][x]. Every tile type present
// gets a default cost of 1; costs set with SetTileCost take precedence and
// survive reinstallation.
//
// The rows are not copied. Callers may change tiles between calls to
// Calculate, but not during one.
func (p *Pathfinder[TileType]) SetGrid(grid [][]TileType) error {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return ErrInvalidGrid
	}
	width := len(grid[0])
	for y, row := range grid {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidGrid, y, len(row), width)
		}
	}

	defaults := make(map[TileType]float64)
	for _, row := range grid {
		for _, tile := range row {
			defaults[tile] = straightCost
		}
	}
	p.grid = grid
	p.defaultCosts = defaults
	p.logger.Debug("grid installed", "width", width, "height", len(grid), "tile_types", len(defaults))
	return nil
}

// Grid returns the installed grid.
func (p *Pathfinder[TileType]) Grid() [][]TileType { return p.grid }

// SetAcceptableTiles replaces the set of tile types that may be walked on.
func (p *Pathfinder[TileType]) SetAcceptableTiles(tiles ...TileType) {
	acceptable := make(map[TileType]struct{}, len(tiles))
	for _, tile := range tiles {
		acceptable[tile] = struct{}{}
	}
	p.acceptable = acceptable
}

// SetTileCost sets the cost multiplier for entering a tile type.
func (p *Pathfinder[TileType]) SetTileCost(tile TileType, cost float64) error {
	if err := validateCost(cost); err != nil {
		return err
	}
	p.tileCosts[tile] = cost
	return nil
}

// RemoveTileCost drops the cost set for a tile type.
func (p *Pathfinder[TileType]) RemoveTileCost(tile TileType) {
	delete(p.tileCosts, tile)
}

// RemoveAllTileCosts drops every cost set with SetTileCost. Tile types fall
// back to the defaults recorded when the grid was installed.
func (p *Pathfinder[TileType]) RemoveAllTileCosts() {
	p.tileCosts = make(map[TileType]float64)
}

// SetAdditionalPointCost overrides the cost of entering one cell.
func (p *Pathfinder[TileType]) SetAdditionalPointCost(x, y int, cost float64) error {
	if err := validateCost(cost); err != nil {
		return fmt.Errorf("point (%d,%d): %w", x, y, err)
	}
	p.pointCosts[Point{X: x, Y: y}] = cost
	return nil
}

// RemoveAdditionalPointCost drops the cost override of one cell.
func (p *Pathfinder[TileType]) RemoveAdditionalPointCost(x, y int) {
	delete(p.pointCosts, Point{X: x, Y: y})
}

// RemoveAllAdditionalPointCosts drops every per-cell cost override.
func (p *Pathfinder[TileType]) RemoveAllAdditionalPointCosts() {
	p.pointCosts = make(map[Point]float64)
}

// AvoidAdditionalPoint forbids entering one cell regardless of its tile.
func (p *Pathfinder[TileType]) AvoidAdditionalPoint(x, y int) {
	p.avoid[Point{X: x, Y: y}] = struct{}{}
}

// StopAvoidingAdditionalPoint lifts AvoidAdditionalPoint for one cell.
func (p *Pathfinder[TileType]) StopAvoidingAdditionalPoint(x, y int) {
	delete(p.avoid, Point{X: x, Y: y})
}

// StopAvoidingAllAdditionalPoints lifts every avoided cell.
func (p *Pathfinder[TileType]) StopAvoidingAllAdditionalPoints() {
	p.avoid = make(map[Point]struct{})
}

// SetDirectionalCondition restricts the bearings a cell may be entered from.
// A bearing names where the mover comes from, seen from the cell: North means
// the move arrives from the cell above. An empty list blocks every entry.
func (p *Pathfinder[TileType]) SetDirectionalCondition(x, y int, allowed ...Direction) {
	p.directional[Point{X: x, Y: y}] = NewDirectionSet(allowed...)
}

// RemoveDirectionalCondition lifts the restriction on one cell.
func (p *Pathfinder[TileType]) RemoveDirectionalCondition(x, y int) {
	delete(p.directional, Point{X: x, Y: y})
}

// RemoveAllDirectionalConditions lifts every directional restriction.
func (p *Pathfinder[TileType]) RemoveAllDirectionalConditions() {
	p.directional = make(map[Point]DirectionSet)
}

// EnableDiagonals and DisableDiagonals change which neighbors are expanded.
// Requests already queued keep the heuristic chosen when they were submitted.
func (p *Pathfinder[TileType]) EnableDiagonals()      { p.options.Diagonals = true }
func (p *Pathfinder[TileType]) DisableDiagonals()     { p.options.Diagonals = false }
func (p *Pathfinder[TileType]) EnableCornerCutting()  { p.options.CornerCutting = true }
func (p *Pathfinder[TileType]) DisableCornerCutting() { p.options.CornerCutting = false }
func (p *Pathfinder[TileType]) EnableSync()           { p.options.Sync = true }
func (p *Pathfinder[TileType]) DisableSync()          { p.options.Sync = false }

// SetIterationsPerCalculation caps the node expansions of one Calculate call
// outside sync mode.
func (p *Pathfinder[TileType]) SetIterationsPerCalculation(iterations int) error {
	if iterations < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidIterations, iterations)
	}
	p.options.IterationsPerCalculation = iterations
	return nil
}

// Options returns a copy of the current options.
func (p *Pathfinder[TileType]) Options() Options { return p.options }

func validateCost(cost float64) error {
	if math.IsNaN(cost) || math.IsInf(cost, 0) || cost <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidCost, cost)
	}
	return nil
}
