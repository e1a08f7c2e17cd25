package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/samdwyer/dungeonview/internal/world"
)

func TestPartyTurning(t *testing.T) {
	p := NewParty(world.Coordinate{}, -1, world.North)

	p.TurnRight()
	assert.Equal(t, world.East, p.Facing)
	p.TurnRight()
	assert.Equal(t, world.South, p.Facing)
	p.TurnLeft()
	assert.Equal(t, world.East, p.Facing)
	p.TurnAround()
	assert.Equal(t, world.West, p.Facing)
	p.TurnLeft()
	assert.Equal(t, world.South, p.Facing)
}

func TestPartyAhead(t *testing.T) {
	p := NewParty(world.Coordinate{X: 2, Y: -1, Z: 3}, -1, world.North)

	assert.Equal(t, world.Coordinate{X: 2, Y: -1, Z: 4}, p.Ahead(world.North))
	assert.Equal(t, world.Coordinate{X: 3, Y: -1, Z: 3}, p.Ahead(world.East))
	assert.Equal(t, world.Coordinate{X: 2, Y: -1, Z: 2}, p.Ahead(world.South))
	assert.Equal(t, world.Coordinate{X: 1, Y: -1, Z: 3}, p.Ahead(world.West))
}

func TestPartyViewDepth(t *testing.T) {
	p := NewParty(world.Coordinate{}, -1, world.North)
	assert.Equal(t, 3, p.ViewDepth(3, 6))

	p.ToggleLight()
	assert.True(t, p.Lit)
	assert.Equal(t, 6, p.ViewDepth(3, 6))

	p.ToggleLight()
	assert.Equal(t, 3, p.ViewDepth(3, 6))
}
