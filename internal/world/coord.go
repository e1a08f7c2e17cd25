package world

import (
	"cmp"
	"fmt"
	"strings"
)

// Coordinate is a grid position. X runs across the maze, Z runs into it and
// Y selects the floor slice (0 for single-floor maps).
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Add returns the component-wise sum of c and o.
func (c Coordinate) Add(o Coordinate) Coordinate {
	return Coordinate{X: c.X + o.X, Y: c.Y + o.Y, Z: c.Z + o.Z}
}

// Sub returns the component-wise difference c - o.
func (c Coordinate) Sub(o Coordinate) Coordinate {
	return Coordinate{X: c.X - o.X, Y: c.Y - o.Y, Z: c.Z - o.Z}
}

// Scale multiplies every component by n.
func (c Coordinate) Scale(n int) Coordinate {
	return Coordinate{X: c.X * n, Y: c.Y * n, Z: c.Z * n}
}

// String returns the coordinate as "(x,y,z)".
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// Compare orders coordinates lexicographically by X, then Y, then Z.
func Compare(a, b Coordinate) int {
	if n := cmp.Compare(a.X, b.X); n != 0 {
		return n
	}
	if n := cmp.Compare(a.Y, b.Y); n != 0 {
		return n
	}
	return cmp.Compare(a.Z, b.Z)
}

// Less reports whether a sorts before b.
func (c Coordinate) Less(o Coordinate) bool {
	return Compare(c, o) < 0
}

// Direction is a cardinal direction in the maze's fixed frame.
type Direction int

const (
	North Direction = iota // +Z
	East                   // +X
	South                  // -Z
	West                   // -X
)

// Directions lists the cardinal directions in persisted flag order.
var Directions = [4]Direction{North, East, South, West}

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	return d >= North && d <= West
}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// ParseDirection parses a direction name or its first letter, case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north", "n":
		return North, nil
	case "east", "e":
		return East, nil
	case "south", "s":
		return South, nil
	case "west", "w":
		return West, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Opposite returns the direction facing the other way.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Left returns the direction 90 degrees counter-clockwise from d.
func (d Direction) Left() Direction {
	return (d + 3) % 4
}

// Right returns the direction 90 degrees clockwise from d.
func (d Direction) Right() Direction {
	return (d + 1) % 4
}

// Delta returns the one-cell step in direction d.
func (d Direction) Delta() Coordinate {
	switch d {
	case North:
		return Coordinate{Z: 1}
	case East:
		return Coordinate{X: 1}
	case South:
		return Coordinate{Z: -1}
	case West:
		return Coordinate{X: -1}
	default:
		return Coordinate{}
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid direction %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
