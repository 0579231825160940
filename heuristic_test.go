package gridstar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name      string
		from, to  Point
		diagonals bool
		want      float64
	}{
		{"manhattan same cell", Point{2, 2}, Point{2, 2}, false, 0},
		{"manhattan", Point{0, 0}, Point{2, 3}, false, 5},
		{"manhattan negative offsets", Point{4, 5}, Point{1, 1}, false, 7},
		{"octile pure diagonal", Point{0, 0}, Point{2, 2}, true, 2.8},
		{"octile wide", Point{0, 0}, Point{5, 2}, true, 2*1.4 + 3},
		{"octile tall", Point{3, 0}, Point{2, 4}, true, 1.4 + 3},
		{"octile straight", Point{0, 0}, Point{0, 4}, true, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, distance(tt.from, tt.to, tt.diagonals, defaultDiagonalCost), 1e-9)
		})
	}
}

func TestDistance_CustomDiagonalCost(t *testing.T) {
	assert.InDelta(t, 3.0, distance(Point{0, 0}, Point{2, 2}, true, 1.5), 1e-9)
}
