package gridstar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReverseDirection(t *testing.T) {
	target := Point{X: 5, Y: 5}
	tests := []struct {
		from Point
		want Direction
	}{
		{Point{5, 4}, North},
		{Point{6, 4}, NorthEast},
		{Point{6, 5}, East},
		{Point{6, 6}, SouthEast},
		{Point{5, 6}, South},
		{Point{4, 6}, SouthWest},
		{Point{4, 5}, West},
		{Point{4, 4}, NorthWest},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			got, ok := reverseDirection(tt.from, target)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := reverseDirection(Point{7, 5}, target)
	assert.False(t, ok, "non-adjacent cells have no bearing")
}

func TestParseDirection(t *testing.T) {
	for input, want := range map[string]Direction{
		"N":         North,
		"se":        SouthEast,
		"top_left":  NorthWest,
		"BOTTOM":    South,
		" west ":    West,
		"NorthEast": NorthEast,
	} {
		got, err := ParseDirection(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseDirection("UP")
	assert.ErrorIs(t, err, ErrUnknownDirection)
}

func TestDirectionSet(t *testing.T) {
	set := NewDirectionSet(North, SouthWest)
	assert.True(t, set.Has(North))
	assert.True(t, set.Has(SouthWest))
	assert.False(t, set.Has(East))
	assert.Equal(t, []Direction{North, SouthWest}, set.Directions())

	assert.Empty(t, NewDirectionSet().Directions())
	assert.Equal(t, "Direction(9)", Direction(9).String())
}
