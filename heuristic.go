package gridstar

const (
	straightCost        = 1.0
	defaultDiagonalCost = 1.4
)

// distance estimates the remaining cost between two cells. Without
// diagonals it is the Manhattan distance; with diagonals it is the octile
// distance using diagonalCost per diagonal step.
//
// The estimate only stays admissible while every tile cost is >= 1.
func distance(from, to Point, diagonals bool, diagonalCost float64) float64 {
	dx := abs(from.X - to.X)
	dy := abs(from.Y - to.Y)
	if !diagonals {
		return float64(dx + dy)
	}
	if dx < dy {
		return diagonalCost*float64(dx) + float64(dy-dx)
	}
	return diagonalCost*float64(dy) + float64(dx-dy)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
