package world

import (
	"encoding/json"
	"fmt"
)

// FloorsFile is the persisted document holding every authored floor.
type FloorsFile struct {
	Floors []FloorRecord `json:"floors"`
}

// FloorRecord is the persisted form of one Level.
type FloorRecord struct {
	DungeonName string       `json:"dungeon_name"`
	Type        string       `json:"type,omitempty"`
	Depth       int          `json:"depth"`
	Origin      Coordinate   `json:"origin"`
	Size        Size         `json:"size"`
	Tiles       []TileRecord `json:"tiles"`
}

// TileRecord is the persisted form of one Tile. Flag arrays are ordered
// north, east, south, west.
type TileRecord struct {
	Coordinate Coordinate `json:"coordinate"`
	WallFlags  [4]bool    `json:"wall_flags"`
	DoorFlags  [4]bool    `json:"door_flags"`
	DoorOpen   [4]bool    `json:"door_open"`
	Floor      bool       `json:"floor"`
	Ceiling    bool       `json:"ceiling"`
	Stairs     string     `json:"stairs,omitempty"`
	Event      string     `json:"event,omitempty"`
}

// Tile converts the record into a Tile.
func (r TileRecord) Tile() (Tile, error) {
	stairs, err := ParseStairs(r.Stairs)
	if err != nil {
		return Tile{}, err
	}
	event, err := ParseEvent(r.Event)
	if err != nil {
		return Tile{}, err
	}

	t := Tile{
		Floor:   r.Floor,
		Ceiling: r.Ceiling,
		Stairs:  stairs,
		Event:   event,
	}
	for _, d := range Directions {
		t.Sides[d] = Side{Wall: r.WallFlags[d], Door: r.DoorFlags[d], Open: r.DoorOpen[d]}
	}
	return t.normalize(), nil
}

// NewTileRecord converts a tile at c into its persisted form.
func NewTileRecord(c Coordinate, t Tile) TileRecord {
	r := TileRecord{
		Coordinate: c,
		Floor:      t.Floor,
		Ceiling:    t.Ceiling,
	}
	if t.Stairs != StairsNone {
		r.Stairs = t.Stairs.String()
	}
	if t.Event != EventNone {
		r.Event = t.Event.String()
	}
	for _, d := range Directions {
		s := t.Sides[d]
		r.WallFlags[d] = s.Wall
		r.DoorFlags[d] = s.Door
		r.DoorOpen[d] = s.Open
	}
	return r
}

// Level builds a Level from the record. Any invalid tile rejects the whole floor.
func (r FloorRecord) Level() (*Level, error) {
	levelType, err := ParseLevelType(r.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFloor, err)
	}

	tiles := make(map[Coordinate]Tile, len(r.Tiles))
	for i, tr := range r.Tiles {
		if _, dup := tiles[tr.Coordinate]; dup {
			return nil, fmt.Errorf("%w: duplicate tile %s", ErrMalformedFloor, tr.Coordinate)
		}
		t, err := tr.Tile()
		if err != nil {
			return nil, fmt.Errorf("%w: tile %d: %v", ErrMalformedFloor, i, err)
		}
		tiles[tr.Coordinate] = t
	}

	return NewLevel(LevelInfo{
		Type:    levelType,
		Dungeon: r.DungeonName,
		Depth:   r.Depth,
		Origin:  r.Origin,
		Size:    r.Size,
	}, tiles)
}

// Record converts the level into its persisted form.
func (l *Level) Record() FloorRecord {
	rec := FloorRecord{
		DungeonName: l.info.Dungeon,
		Type:        l.info.Type.String(),
		Depth:       l.info.Depth,
		Origin:      l.info.Origin,
		Size:        l.info.Size,
		Tiles:       make([]TileRecord, 0, l.count),
	}
	for c, t := range l.All() {
		rec.Tiles = append(rec.Tiles, NewTileRecord(c, t))
	}
	return rec
}

// MarshalFloors encodes levels into the persisted floors document.
func MarshalFloors(levels []*Level) ([]byte, error) {
	file := FloorsFile{Floors: make([]FloorRecord, 0, len(levels))}
	for _, l := range levels {
		file.Floors = append(file.Floors, l.Record())
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal floors: %w", err)
	}
	return data, nil
}
