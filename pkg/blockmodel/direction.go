package blockmodel

import "fmt"

// Direction names one side of an element. The numeric order is the emission order.
type Direction int

const (
	Up Direction = iota
	Down
	North
	East
	South
	West
)

// Directions lists every face direction in emission order.
var Directions = [6]Direction{Up, Down, North, East, South, West}

var directionNames = [6]string{"up", "down", "north", "east", "south", "west"}

func (d Direction) String() string {
	if d < Up || d > West {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection maps a face key ("up", "north", ...) to its Direction.
// "bottom" is accepted as an alias of "down", as older packs use it.
func ParseDirection(name string) (Direction, bool) {
	if name == "bottom" {
		return Down, true
	}
	for i, n := range directionNames {
		if n == name {
			return Direction(i), true
		}
	}
	return 0, false
}

// Axis is the pivot axis of an element rotation.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

func parseAxis(s string) (Axis, bool) {
	switch s {
	case "x":
		return AxisX, true
	case "y":
		return AxisY, true
	case "z":
		return AxisZ, true
	}
	return 0, false
}
