package gridstar

import (
	"cmp"
	"slices"
)

// Snapshot exposes the state of an in-flight search.
type Snapshot struct {
	ID       RequestID
	Start    Point
	Goal     Point
	Open     []Point
	Closed   []Point
	Best     Point
	BestCost float64
	Expanded int
	Position int
}

// Inspect returns a snapshot of a pending request. Position is the request's
// index among pending requests, zero meaning it is being searched now. Best
// is the open cell expanded next and BestCost its cost so far.
func (p *Pathfinder[TileType]) Inspect(id RequestID) (Snapshot, bool) {
	instance, ok := p.instances[id]
	if !ok {
		return Snapshot{}, false
	}
	snapshot := Snapshot{
		ID:       id,
		Start:    instance.start,
		Goal:     instance.goal,
		Expanded: instance.expanded,
		Position: p.queuePosition(id),
	}
	for point, node := range instance.nodes {
		switch node.state {
		case openList:
			snapshot.Open = append(snapshot.Open, point)
		case closedList:
			snapshot.Closed = append(snapshot.Closed, point)
		}
	}
	if instance.openList.Len() > 0 {
		best := instance.openList.items[0]
		snapshot.Best = best.point
		snapshot.BestCost = best.costSoFar
	}
	slices.SortFunc(snapshot.Open, comparePoints)
	slices.SortFunc(snapshot.Closed, comparePoints)
	return snapshot, true
}

func (p *Pathfinder[TileType]) queuePosition(id RequestID) int {
	position := 0
	for _, queued := range p.queue {
		if queued == id {
			return position
		}
		if _, live := p.instances[queued]; live {
			position++
		}
	}
	return -1
}

func comparePoints(a, b Point) int {
	if c := cmp.Compare(a.Y, b.Y); c != 0 {
		return c
	}
	return cmp.Compare(a.X, b.X)
}
