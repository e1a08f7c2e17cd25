// Package world provides the dungeon grid model: coordinates, tiles, floors
// and the depth-indexed store they are loaded into.
package world

import "fmt"

// Face classifies one side of a tile as seen by the viewer.
type Face int

const (
	// FaceOpen has neither wall nor door.
	FaceOpen Face = iota
	// FaceWall is a solid wall.
	FaceWall
	// FaceClosedDoor is a door that blocks sight.
	FaceClosedDoor
	// FaceOpenDoor is a door that can be seen through.
	FaceOpenDoor
)

// String returns a human-readable face name.
func (f Face) String() string {
	switch f {
	case FaceOpen:
		return "open"
	case FaceWall:
		return "wall"
	case FaceClosedDoor:
		return "closed_door"
	case FaceOpenDoor:
		return "open_door"
	default:
		return "unknown"
	}
}

// Side is the wall and door state of one edge of a tile.
type Side struct {
	Wall bool
	Door bool
	Open bool // Door state; ignored without a door
}

// Face classifies the side. A door takes precedence over a plain wall.
func (s Side) Face() Face {
	switch {
	case s.Door && s.Open:
		return FaceOpenDoor
	case s.Door:
		return FaceClosedDoor
	case s.Wall:
		return FaceWall
	default:
		return FaceOpen
	}
}

// normalize enforces that a door always sits in a wall opening.
func (s Side) normalize() Side {
	if s.Door {
		s.Wall = true
	}
	if !s.Door {
		s.Open = false
	}
	return s
}

// Stairs marks a staircase in a tile.
type Stairs int

const (
	StairsNone Stairs = iota
	StairsUp
	StairsDown
)

// String returns the persisted stairs name.
func (s Stairs) String() string {
	switch s {
	case StairsNone:
		return "none"
	case StairsUp:
		return "up"
	case StairsDown:
		return "down"
	default:
		return "unknown"
	}
}

// ParseStairs parses a persisted stairs name. The empty string means none.
func ParseStairs(s string) (Stairs, error) {
	switch s {
	case "", "none":
		return StairsNone, nil
	case "up":
		return StairsUp, nil
	case "down":
		return StairsDown, nil
	}
	return StairsNone, fmt.Errorf("unknown stairs %q", s)
}

// Event is an optional marker on a tile.
type Event int

const (
	EventNone Event = iota
	EventTreasure
	EventGravestone
	EventChest
	EventEncounter
)

// String returns the persisted event name.
func (e Event) String() string {
	switch e {
	case EventNone:
		return "none"
	case EventTreasure:
		return "treasure"
	case EventGravestone:
		return "gravestone"
	case EventChest:
		return "chest"
	case EventEncounter:
		return "encounter"
	default:
		return "unknown"
	}
}

// ParseEvent parses a persisted event name. The empty string means none.
func ParseEvent(s string) (Event, error) {
	switch s {
	case "", "none":
		return EventNone, nil
	case "treasure":
		return EventTreasure, nil
	case "gravestone":
		return EventGravestone, nil
	case "chest":
		return EventChest, nil
	case "encounter":
		return EventEncounter, nil
	}
	return EventNone, fmt.Errorf("unknown event %q", s)
}

// Tile is one cell of a floor.
type Tile struct {
	Sides   [4]Side // Indexed by Direction
	Floor   bool
	Ceiling bool
	Stairs  Stairs
	Event   Event
}

// Side returns the edge of the tile facing d.
func (t Tile) Side(d Direction) Side {
	if !d.Valid() {
		return Side{}
	}
	return t.Sides[d]
}

// Face classifies the edge of the tile facing d.
func (t Tile) Face(d Direction) Face {
	return t.Side(d).Face()
}

// Blocks reports whether sight through the edge facing d is stopped.
func (t Tile) Blocks(d Direction) bool {
	f := t.Face(d)
	return f == FaceWall || f == FaceClosedDoor
}

// IsPassable reports whether the party can step through the edge facing d.
// Walls block; doors never do, whatever their state.
func (t Tile) IsPassable(d Direction) bool {
	return d.Valid() && t.Face(d) != FaceWall
}

// Rune returns the overhead-map character for the tile, as used by ParseLayout.
func (t Tile) Rune() rune {
	switch {
	case t.Stairs == StairsUp:
		return '<'
	case t.Stairs == StairsDown:
		return '>'
	}
	switch t.Event {
	case EventChest:
		return '$'
	case EventTreasure:
		return 't'
	case EventGravestone:
		return 'g'
	case EventEncounter:
		return '!'
	}
	return '.'
}

// normalize applies the side invariant to every edge.
func (t Tile) normalize() Tile {
	for i := range t.Sides {
		t.Sides[i] = t.Sides[i].normalize()
	}
	return t
}
