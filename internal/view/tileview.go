package view

import (
	"fmt"
	"strings"

	"github.com/samdwyer/dungeonview/internal/world"
)

// Door is a door quad together with its state.
type Door struct {
	Quad Quad
	Open bool
}

// Side holds the geometry of one side of a cell, perpendicular to the line
// of sight. An open side carries only a Darkness overlay for the branch.
type Side struct {
	Wall     *Quad
	Door     *Door
	Darkness *Quad
}

// Face classifies what the side shows.
func (s Side) Face() world.Face {
	switch {
	case s.Door != nil && s.Door.Open:
		return world.FaceOpenDoor
	case s.Door != nil:
		return world.FaceClosedDoor
	case s.Wall != nil:
		return world.FaceWall
	default:
		return world.FaceOpen
	}
}

// TileView describes everything drawn for one visible cell. Empty slots
// are nil.
type TileView struct {
	// Offset is relative to the viewer in the viewer's frame: Z counts cells
	// ahead, so {0,0,0} is the viewer's own cell.
	Offset world.Coordinate

	Floor      *Quad
	Ceiling    *Quad
	UpStairs   *Quad
	DownStairs *Quad

	// Darkness covers the far plane when sight runs out of depth.
	Darkness *Quad

	BackWall *Quad
	BackDoor *Door

	Left  Side
	Right Side
}

// Distance returns how many cells ahead of the viewer the cell lies.
func (v TileView) Distance() int {
	return v.Offset.Z
}

// Terminal reports whether the cell's back face stops sight.
func (v TileView) Terminal() bool {
	return v.BackWall != nil || (v.BackDoor != nil && !v.BackDoor.Open)
}

// Back classifies the far face of the cell.
func (v TileView) Back() world.Face {
	return Side{Wall: v.BackWall, Door: v.BackDoor}.Face()
}

// String summarises the populated slots, e.g. "d=1 floor ceiling left=wall right=open back=closed_door".
func (v TileView) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "d=%d", v.Distance())
	if v.Floor != nil {
		b.WriteString(" floor")
	}
	if v.Ceiling != nil {
		b.WriteString(" ceiling")
	}
	if v.UpStairs != nil {
		b.WriteString(" stairs=up")
	}
	if v.DownStairs != nil {
		b.WriteString(" stairs=down")
	}
	fmt.Fprintf(&b, " left=%s right=%s back=%s", v.Left.Face(), v.Right.Face(), v.Back())
	if v.Darkness != nil {
		b.WriteString(" dark")
	}
	return b.String()
}
