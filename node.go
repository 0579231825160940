package gridstar

type listState uint8

const (
	unvisited listState = iota
	openList
	closedList
)

// searchNode is the per-request record of a visited cell.
type searchNode struct {
	parent         *searchNode
	point          Point
	costSoFar      float64
	distanceToGoal float64
	state          listState

	// heap bookkeeping
	indexInQueue int
	sequence     uint64
}

func (n *searchNode) bestGuess() float64 {
	return n.costSoFar + n.distanceToGoal
}

// nodeTable holds at most one searchNode per cell for one request.
type nodeTable map[Point]*searchNode

// nodeFor returns the node already recorded for point, or creates one whose
// cost is parent.costSoFar+edgeCost (zero without a parent). The heuristic is
// evaluated once, on creation.
func (table nodeTable) nodeFor(point Point, parent *searchNode, edgeCost float64, heuristic func(Point) float64) *searchNode {
	if node, ok := table[point]; ok {
		return node
	}
	node := &searchNode{
		parent:         parent,
		point:          point,
		distanceToGoal: heuristic(point),
		indexInQueue:   -1,
	}
	if parent != nil {
		node.costSoFar = parent.costSoFar + edgeCost
	}
	table[point] = node
	return node
}
