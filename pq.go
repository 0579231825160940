package gridstar

import "container/heap"

// priorityQueue is the open list: a binary min-heap over bestGuess.
// Ties are broken by insertion order, oldest first.
type priorityQueue struct {
	items    queueItems
	sequence uint64
}

type queueItems []*searchNode

func (queue queueItems) Len() int { return len(queue) }
func (queue queueItems) Less(i, j int) bool {
	left, right := queue[i].bestGuess(), queue[j].bestGuess()
	if left != right {
		return left < right
	}
	return queue[i].sequence < queue[j].sequence
}
func (queue queueItems) Swap(i, j int) {
	queue[i], queue[j] = queue[j], queue[i]
	queue[i].indexInQueue = i
	queue[j].indexInQueue = j
}

func (queue *queueItems) Push(x any) {
	node := x.(*searchNode)
	node.indexInQueue = len(*queue)
	*queue = append(*queue, node)
}

func (queue *queueItems) Pop() any {
	oldQueue := *queue
	n := len(oldQueue)
	node := oldQueue[n-1]
	oldQueue[n-1] = nil
	node.indexInQueue = -1
	*queue = oldQueue[:n-1]
	return node
}

func (pq *priorityQueue) Len() int { return pq.items.Len() }

func (pq *priorityQueue) push(node *searchNode) {
	pq.sequence++
	node.sequence = pq.sequence
	heap.Push(&pq.items, node)
}

func (pq *priorityQueue) pop() *searchNode {
	if pq.items.Len() == 0 {
		return nil
	}
	return heap.Pop(&pq.items).(*searchNode)
}

// update restores heap order after node.costSoFar decreased.
func (pq *priorityQueue) update(node *searchNode) {
	if node.indexInQueue < 0 {
		return
	}
	heap.Fix(&pq.items, node.indexInQueue)
}
