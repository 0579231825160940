package gridstar

import (
	"fmt"
	"strings"
)

// Direction is one of the eight compass bearings on the grid.
// North points towards y-1, East towards x+1.
type Direction uint8

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

var directionNames = [...]string{
	North:     "N",
	NorthEast: "NE",
	East:      "E",
	SouthEast: "SE",
	South:     "S",
	SouthWest: "SW",
	West:      "W",
	NorthWest: "NW",
}

var directionAliases = map[string]Direction{
	"TOP":          North,
	"TOP_RIGHT":    NorthEast,
	"RIGHT":        East,
	"BOTTOM_RIGHT": SouthEast,
	"BOTTOM":       South,
	"BOTTOM_LEFT":  SouthWest,
	"LEFT":         West,
	"TOP_LEFT":     NorthWest,
	"NORTH":        North,
	"NORTHEAST":    NorthEast,
	"EAST":         East,
	"SOUTHEAST":    SouthEast,
	"SOUTH":        South,
	"SOUTHWEST":    SouthWest,
	"WEST":         West,
	"NORTHWEST":    NorthWest,
}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// ParseDirection accepts short compass names (N, NE, ...), long compass
// names (NORTH, NORTHEAST, ...) and screen names (TOP, TOP_RIGHT, ...),
// case-insensitively.
func ParseDirection(name string) (Direction, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for d, short := range directionNames {
		if upper == short {
			return Direction(d), nil
		}
	}
	if d, ok := directionAliases[upper]; ok {
		return d, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, name)
}

// directionOf maps a unit offset to its bearing.
func directionOf(dx, dy int) (Direction, bool) {
	switch {
	case dx == 0 && dy == -1:
		return North, true
	case dx == 1 && dy == -1:
		return NorthEast, true
	case dx == 1 && dy == 0:
		return East, true
	case dx == 1 && dy == 1:
		return SouthEast, true
	case dx == 0 && dy == 1:
		return South, true
	case dx == -1 && dy == 1:
		return SouthWest, true
	case dx == -1 && dy == 0:
		return West, true
	case dx == -1 && dy == -1:
		return NorthWest, true
	}
	return 0, false
}

// reverseDirection returns the bearing from the destination cell back to the
// cell the move starts from. Directional conditions are expressed in these
// terms: a cell that allows North may be entered from the cell above it.
func reverseDirection(from, to Point) (Direction, bool) {
	return directionOf(from.X-to.X, from.Y-to.Y)
}

// DirectionSet is a set of bearings a cell may be entered from.
type DirectionSet uint8

// NewDirectionSet builds a set from the given bearings.
func NewDirectionSet(directions ...Direction) DirectionSet {
	var set DirectionSet
	for _, d := range directions {
		set |= 1 << d
	}
	return set
}

// Has reports whether d is a member of the set.
func (s DirectionSet) Has(d Direction) bool {
	return d <= NorthWest && s&(1<<d) != 0
}

// Directions lists the members in compass order.
func (s DirectionSet) Directions() []Direction {
	var out []Direction
	for d := North; d <= NorthWest; d++ {
		if s.Has(d) {
			out = append(out, d)
		}
	}
	return out
}
