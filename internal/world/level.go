package world

import (
	"errors"
	"fmt"
	"iter"
)

var (
	// ErrOutOfBounds is returned when a tile lies outside its floor.
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	// ErrMalformedFloor is returned when floor data violates the model.
	ErrMalformedFloor = errors.New("malformed floor")
)

// MaxLevelArea caps width*height of a floor so corrupt sizes are rejected
// before any allocation.
const MaxLevelArea = 1 << 20

// LevelType distinguishes indoor floors from outdoor areas.
type LevelType int

const (
	Indoor LevelType = iota
	Outdoor
)

// String returns the persisted level type name.
func (t LevelType) String() string {
	switch t {
	case Indoor:
		return "indoor"
	case Outdoor:
		return "outdoor"
	default:
		return "unknown"
	}
}

// ParseLevelType parses a persisted level type. The empty string means indoor.
func ParseLevelType(s string) (LevelType, error) {
	switch s {
	case "", "indoor":
		return Indoor, nil
	case "outdoor":
		return Outdoor, nil
	}
	return Indoor, fmt.Errorf("unknown level type %q", s)
}

// Size is the extent of a floor along X (Width) and Z (Height).
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// LevelInfo is the metadata of one floor.
type LevelInfo struct {
	Type    LevelType
	Dungeon string
	Depth   int        // Negative below ground
	Origin  Coordinate // Bottom-left cell
	Size    Size
}

// Level is one dungeon floor. Tiles are kept in a flat buffer indexed by
// (x - origin.x) + (z - origin.z) * width. A Level is immutable once built.
type Level struct {
	info     LevelInfo
	tiles    []Tile
	authored []bool
	count    int
}

// NewLevel builds a floor from its metadata and authored tiles.
func NewLevel(info LevelInfo, tiles map[Coordinate]Tile) (*Level, error) {
	if info.Size.Width <= 0 || info.Size.Height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrMalformedFloor, info.Size.Width, info.Size.Height)
	}
	if info.Size.Width > MaxLevelArea/info.Size.Height {
		return nil, fmt.Errorf("%w: size %dx%d exceeds %d cells",
			ErrMalformedFloor, info.Size.Width, info.Size.Height, MaxLevelArea)
	}

	n := info.Size.Width * info.Size.Height
	l := &Level{
		info:     info,
		tiles:    make([]Tile, n),
		authored: make([]bool, n),
	}

	for c, t := range tiles {
		i, ok := l.index(c)
		if !ok {
			return nil, fmt.Errorf("%w: tile %s on floor %d", ErrOutOfBounds, c, info.Depth)
		}
		l.tiles[i] = t.normalize()
		l.authored[i] = true
	}
	l.count = len(tiles)

	return l, nil
}

// index maps a coordinate into the flat buffer.
func (l *Level) index(c Coordinate) (int, bool) {
	if c.Y != l.info.Origin.Y {
		return 0, false
	}
	dx := c.X - l.info.Origin.X
	dz := c.Z - l.info.Origin.Z
	if dx < 0 || dx >= l.info.Size.Width || dz < 0 || dz >= l.info.Size.Height {
		return 0, false
	}
	return dx + dz*l.info.Size.Width, true
}

// Info returns the floor metadata.
func (l *Level) Info() LevelInfo {
	return l.info
}

// Depth returns the floor's depth index.
func (l *Level) Depth() int {
	return l.info.Depth
}

// Contains reports whether c lies within the floor's bounds.
func (l *Level) Contains(c Coordinate) bool {
	_, ok := l.index(c)
	return ok
}

// TileAt returns the tile at c. Out-of-bounds and unauthored cells report
// false and must be treated as solid rock.
func (l *Level) TileAt(c Coordinate) (Tile, bool) {
	if l == nil {
		return Tile{}, false
	}
	i, ok := l.index(c)
	if !ok || !l.authored[i] {
		return Tile{}, false
	}
	return l.tiles[i], true
}

// Len returns the number of authored tiles.
func (l *Level) Len() int {
	return l.count
}

// All yields every authored tile, row by row from the origin.
func (l *Level) All() iter.Seq2[Coordinate, Tile] {
	return func(yield func(Coordinate, Tile) bool) {
		w := l.info.Size.Width
		for i, ok := range l.authored {
			if !ok {
				continue
			}
			c := Coordinate{
				X: l.info.Origin.X + i%w,
				Y: l.info.Origin.Y,
				Z: l.info.Origin.Z + i/w,
			}
			if !yield(c, l.tiles[i]) {
				return
			}
		}
	}
}
