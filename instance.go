package gridstar

import "github.com/pdrpinto/gridstar/internal"

// searchInstance is one in-flight request. It keeps its own open list and
// node table across Calculate calls.
type searchInstance struct {
	id        RequestID
	start     Point
	goal      Point
	callback  Callback
	heuristic func(Point) float64

	openList priorityQueue
	nodes    nodeTable
	expanded int
}

type neighborOffset struct {
	dx, dy   int
	diagonal bool
}

// Expansion order: N, E, S, W, then NW, SE, NE, SW.
var neighborOffsets = [...]neighborOffset{
	{dx: 0, dy: -1},
	{dx: 1, dy: 0},
	{dx: 0, dy: 1},
	{dx: -1, dy: 0},
	{dx: -1, dy: -1, diagonal: true},
	{dx: 1, dy: 1, diagonal: true},
	{dx: 1, dy: -1, diagonal: true},
	{dx: -1, dy: 1, diagonal: true},
}

func newSearchInstance(id RequestID, start, goal Point, callback Callback, heuristic func(Point) float64) *searchInstance {
	instance := &searchInstance{
		id:        id,
		start:     start,
		goal:      goal,
		callback:  callback,
		heuristic: heuristic,
		nodes:     make(nodeTable),
	}
	startNode := instance.nodes.nodeFor(start, nil, 0, heuristic)
	startNode.state = openList
	instance.openList.push(startNode)
	return instance
}

// step performs one expansion of instance. It reports the result and true
// once the search has concluded.
func (p *Pathfinder[TileType]) step(instance *searchInstance) (Result, bool) {
	current := instance.openList.pop()
	if current == nil {
		return Result{Expanded: instance.expanded}, true
	}
	instance.expanded++

	if !p.inBounds(current.point) {
		// left behind by a smaller grid installed mid-search
		current.state = closedList
		return Result{}, false
	}
	if current.point == instance.goal {
		path := internal.ReconstructPath(current,
			func(node *searchNode) (*searchNode, bool) { return node.parent, node.parent != nil },
			func(node *searchNode) Point { return node.point },
		)
		return Result{Path: path, Cost: current.costSoFar, Expanded: instance.expanded, Found: true}, true
	}

	current.state = closedList
	for _, offset := range neighborOffsets {
		if offset.diagonal && !p.options.Diagonals {
			break
		}
		target := Point{X: current.point.X + offset.dx, Y: current.point.Y + offset.dy}
		if !p.inBounds(target) {
			continue
		}
		stepCost := straightCost
		if offset.diagonal {
			if !p.canCutCorner(current.point, offset.dx, offset.dy) {
				continue
			}
			stepCost = p.options.DiagonalCost
		}
		p.checkAdjacentNode(instance, current, target, stepCost*p.tileCost(target))
	}
	return Result{}, false
}

// checkAdjacentNode opens target or relaxes it through current. Closed nodes
// are left untouched even when the new route is cheaper.
func (p *Pathfinder[TileType]) checkAdjacentNode(instance *searchInstance, current *searchNode, target Point, edgeCost float64) {
	if !p.isWalkable(target, current.point) {
		return
	}
	node := instance.nodes.nodeFor(target, current, edgeCost, instance.heuristic)
	switch node.state {
	case unvisited:
		node.state = openList
		instance.openList.push(node)
	case openList:
		if candidate := current.costSoFar + edgeCost; candidate < node.costSoFar {
			node.costSoFar = candidate
			node.parent = current
			instance.openList.update(node)
		}
	}
}
