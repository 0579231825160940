package gridstar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func node(x int, cost, heuristic float64) *searchNode {
	return &searchNode{point: Point{X: x}, costSoFar: cost, distanceToGoal: heuristic, indexInQueue: -1}
}

func TestPriorityQueue_PopsLowestBestGuess(t *testing.T) {
	var pq priorityQueue
	pq.push(node(0, 5, 1))
	pq.push(node(1, 1, 1))
	pq.push(node(2, 3, 0))

	var order []int
	for pq.Len() > 0 {
		order = append(order, pq.pop().point.X)
	}
	assert.Equal(t, []int{1, 2, 0}, order)
	assert.Nil(t, pq.pop())
}

func TestPriorityQueue_TiesAreFIFO(t *testing.T) {
	var pq priorityQueue
	for x := 0; x < 6; x++ {
		pq.push(node(x, 2, 2))
	}
	for x := 0; x < 6; x++ {
		assert.Equal(t, x, pq.pop().point.X)
	}
}

func TestPriorityQueue_UpdateAfterDecrease(t *testing.T) {
	var pq priorityQueue
	a, b, c := node(0, 4, 0), node(1, 5, 0), node(2, 9, 0)
	pq.push(a)
	pq.push(b)
	pq.push(c)

	c.costSoFar = 1
	pq.update(c)
	require.Equal(t, 2, pq.pop().point.X)
	assert.Equal(t, 0, pq.pop().point.X)

	popped := pq.pop()
	assert.Equal(t, -1, popped.indexInQueue)
	pq.update(popped) // not queued: no-op
	assert.Equal(t, 0, pq.Len())
}

func TestNodeTable_NodeForIsMemoized(t *testing.T) {
	table := make(nodeTable)
	calls := 0
	heuristic := func(Point) float64 { calls++; return 7 }

	start := table.nodeFor(Point{0, 0}, nil, 3, heuristic)
	assert.Nil(t, start.parent)
	assert.Zero(t, start.costSoFar)

	first := table.nodeFor(Point{1, 0}, start, 2, heuristic)
	assert.Equal(t, 2.0, first.costSoFar)
	assert.Equal(t, 7.0, first.distanceToGoal)
	assert.Same(t, start, first.parent)

	again := table.nodeFor(Point{1, 0}, nil, 100, heuristic)
	assert.Same(t, first, again)
	assert.Equal(t, 2.0, again.costSoFar)
	assert.Equal(t, 2, calls)
	assert.Equal(t, unvisited, again.state)
}
