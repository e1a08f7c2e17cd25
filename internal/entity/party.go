// Package entity provides the exploring party.
package entity

import "github.com/samdwyer/dungeonview/internal/world"

// Party is the player's party of adventurers, moving through the maze as one
// unit.
type Party struct {
	Pos    world.Coordinate // Current cell; Y matches the floor's origin
	Depth  int              // Floor depth index
	Facing world.Direction
	Lit    bool // Carrying a light source
}

// NewParty creates a party standing at pos on the floor at depth.
func NewParty(pos world.Coordinate, depth int, facing world.Direction) *Party {
	return &Party{
		Pos:    pos,
		Depth:  depth,
		Facing: facing,
	}
}

// TurnLeft rotates the party a quarter turn counter-clockwise.
func (p *Party) TurnLeft() {
	p.Facing = p.Facing.Left()
}

// TurnRight rotates the party a quarter turn clockwise.
func (p *Party) TurnRight() {
	p.Facing = p.Facing.Right()
}

// TurnAround faces the party the opposite way.
func (p *Party) TurnAround() {
	p.Facing = p.Facing.Opposite()
}

// Ahead returns the cell one step in dir from the party.
func (p *Party) Ahead(dir world.Direction) world.Coordinate {
	return p.Pos.Add(dir.Delta())
}

// ToggleLight lights or douses the party's light source.
func (p *Party) ToggleLight() {
	p.Lit = !p.Lit
}

// ViewDepth returns how far the party sees: light when lit, dark otherwise.
func (p *Party) ViewDepth(dark, light int) int {
	if p.Lit {
		return light
	}
	return dark
}
