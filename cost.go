package gridstar

func (p *Pathfinder[TileType]) width() int {
	if len(p.grid) == 0 {
		return 0
	}
	return len(p.grid[0])
}

func (p *Pathfinder[TileType]) height() int { return len(p.grid) }

func (p *Pathfinder[TileType]) inBounds(point Point) bool {
	return point.X >= 0 && point.Y >= 0 && point.X < p.width() && point.Y < p.height()
}

func (p *Pathfinder[TileType]) isAcceptable(point Point) bool {
	_, ok := p.acceptable[p.grid[point.Y][point.X]]
	return ok
}

// tileCost is the multiplier for entering point: the per-cell override, else
// the tile type's cost, else the default recorded when the grid was
// installed. Tile types first seen after installation cost 1.
func (p *Pathfinder[TileType]) tileCost(point Point) float64 {
	if cost, ok := p.pointCosts[point]; ok {
		return cost
	}
	tile := p.grid[point.Y][point.X]
	if cost, ok := p.tileCosts[tile]; ok {
		return cost
	}
	if cost, ok := p.defaultCosts[tile]; ok {
		return cost
	}
	return straightCost
}

// isWalkable reports whether target may be entered from the cell at from.
// target must be in bounds.
func (p *Pathfinder[TileType]) isWalkable(target, from Point) bool {
	if _, avoided := p.avoid[target]; avoided {
		return false
	}
	if !p.isAcceptable(target) {
		return false
	}
	if allowed, ok := p.directional[target]; ok {
		direction, adjacent := reverseDirection(from, target)
		if !adjacent || !allowed.Has(direction) {
			return false
		}
	}
	return true
}

// canCutCorner gates a diagonal step by (dx, dy) from from: either corner
// cutting is on, or both orthogonal cells flanking the diagonal are walkable.
// Flanks outside the grid count as blocked.
func (p *Pathfinder[TileType]) canCutCorner(from Point, dx, dy int) bool {
	if p.options.CornerCutting {
		return true
	}
	vertical := Point{X: from.X, Y: from.Y + dy}
	horizontal := Point{X: from.X + dx, Y: from.Y}
	return p.inBounds(vertical) && p.isWalkable(vertical, from) &&
		p.inBounds(horizontal) && p.isWalkable(horizontal, from)
}
