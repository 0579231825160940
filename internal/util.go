package internal

// ReconstructPath follows parent links from current back to the node without
// a parent and returns the values along the way in start-to-current order.
func ReconstructPath[NodeType any, ValueType any](
	current NodeType,
	parent func(NodeType) (NodeType, bool),
	value func(NodeType) ValueType,
) []ValueType {
	path := []ValueType{value(current)}
	for {
		previousNode, exists := parent(current)
		if !exists {
			break
		}
		path = append(path, value(previousNode))
		current = previousNode
	}
	Reverse(path)
	return path
}

// Reverse reverses s in place.
func Reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
