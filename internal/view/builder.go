// Package view computes what a party sees looking straight down a corridor
// and turns it into per-cell quads for a renderer.
package view

import "github.com/samdwyer/dungeonview/internal/world"

const (
	// DefaultDarkness is the overlay alpha reached at the view depth.
	DefaultDarkness = 0.85

	// Door and stairs insets within their face, as fractions of the face.
	doorLeft, doorRight, doorTop = 0.2, 0.8, 0.15
	stairsMin, stairsMax         = 0.25, 0.75
)

// TileSource looks up tiles by coordinate. *world.Level implements it.
type TileSource interface {
	TileAt(c world.Coordinate) (world.Tile, bool)
}

// Builder produces TileView strips. It holds only rendering policy and is
// safe to share; Build has no side effects.
type Builder struct {
	palette        Palette
	darkness       float32
	frameOpenDoors bool
}

// Option configures a Builder.
type Option func(*Builder)

// WithPalette sets the base face colours.
func WithPalette(p Palette) Option {
	return func(b *Builder) { b.palette = p }
}

// WithDarkness sets the overlay alpha reached at the view depth, in [0,1].
func WithDarkness(alpha float32) Option {
	return func(b *Builder) { b.darkness = clamp01(alpha) }
}

// WithOpenDoorFraming controls whether an open door ahead still emits a
// back-door quad. Open doors never stop sight either way.
func WithOpenDoorFraming(enabled bool) Option {
	return func(b *Builder) { b.frameOpenDoors = enabled }
}

// NewBuilder creates a Builder with the default palette, darkness and
// open-door framing enabled.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		palette:        DefaultPalette(),
		darkness:       DefaultDarkness,
		frameOpenDoors: true,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build walks from pos in the facing direction for at most depth cells and
// returns the visible cells nearest first. The strip ends early at a wall,
// a closed door or the edge of the authored maze. An absent viewer cell, an
// invalid facing or a non-positive depth yield an empty strip.
func (b *Builder) Build(level TileSource, pos world.Coordinate, facing world.Direction, depth int) []TileView {
	if level == nil || depth <= 0 || !facing.Valid() {
		return nil
	}

	step := facing.Delta()
	views := make([]TileView, 0, depth)

	for d := 0; d < depth; d++ {
		c := pos.Add(step.Scale(d))
		tile, ok := level.TileAt(c)
		if !ok {
			// Solid rock ahead reads as the previous cell's back wall. An open
			// door framed there stays on top of it.
			if n := len(views); n > 0 && views[n-1].BackWall == nil {
				q := b.lit(backFace(n-1), b.palette.Wall, n-1, depth)
				views[n-1].BackWall = &q
			}
			return views
		}

		v := b.cell(level, c, tile, facing, d, depth)

		switch tile.Face(facing) {
		case world.FaceWall:
			q := b.lit(backFace(d), b.palette.Wall, d, depth)
			v.BackWall = &q
			return append(views, v)
		case world.FaceClosedDoor:
			v.BackDoor = &Door{Quad: b.backDoor(d, depth)}
			return append(views, v)
		case world.FaceOpenDoor:
			if b.frameOpenDoors {
				v.BackDoor = &Door{Quad: b.backDoor(d, depth), Open: true}
			}
		}

		views = append(views, v)
	}

	// Out of depth with nothing in the way: the rest fades to dark.
	last := &views[len(views)-1]
	q := b.dark(backFace(last.Distance()), last.Distance(), depth)
	last.Darkness = &q

	return views
}

// cell fills the floor, ceiling, stairs and side slots of the cell at c.
func (b *Builder) cell(level TileSource, c world.Coordinate, tile world.Tile, facing world.Direction, d, depth int) TileView {
	v := TileView{Offset: world.Coordinate{Z: d}}

	if tile.Floor {
		q := b.lit(floorFace(d), b.palette.Floor, d, depth)
		v.Floor = &q
	}
	if tile.Ceiling {
		q := b.lit(ceilingFace(d), b.palette.Ceiling, d, depth)
		v.Ceiling = &q
	}

	switch tile.Stairs {
	case world.StairsUp:
		q := b.lit(ceilingFace(d), b.palette.Stairs, d, depth).Inset(stairsMin, stairsMin, stairsMax, stairsMax)
		v.UpStairs = &q
	case world.StairsDown:
		q := b.lit(floorFace(d), b.palette.Stairs, d, depth).Inset(stairsMin, stairsMin, stairsMax, stairsMax)
		v.DownStairs = &q
	}

	v.Left = b.side(level, c, tile, facing.Left(), leftFace(d), d, depth)
	v.Right = b.side(level, c, tile, facing.Right(), rightFace(d), d, depth)

	return v
}

// side classifies the edge of tile facing dir and fills the matching slots.
func (b *Builder) side(level TileSource, c world.Coordinate, tile world.Tile, dir world.Direction, f face, d, depth int) Side {
	wall := func() *Quad {
		q := b.lit(f, b.palette.Wall, d, depth)
		return &q
	}
	door := func(open bool) *Door {
		q := b.lit(f, b.palette.Door, d, depth).Inset(doorLeft, doorTop, doorRight, 1)
		return &Door{Quad: q, Open: open}
	}
	dark := func() *Quad {
		q := b.dark(f, d, depth)
		return &q
	}

	switch tile.Face(dir) {
	case world.FaceWall:
		return Side{Wall: wall()}
	case world.FaceClosedDoor:
		return Side{Door: door(false)}
	case world.FaceOpenDoor:
		return Side{Door: door(true), Darkness: dark()}
	}

	// An opening into unauthored rock is drawn as a wall.
	if _, ok := level.TileAt(c.Add(dir.Delta())); !ok {
		return Side{Wall: wall()}
	}
	return Side{Darkness: dark()}
}

func (b *Builder) backDoor(d, depth int) Quad {
	return b.lit(backFace(d), b.palette.Door, d, depth).Inset(doorLeft, doorTop, doorRight, 1)
}

// lit colours a face with base, shading near corners for distance d and
// far corners for d+1.
func (b *Builder) lit(f face, base Color, d, depth int) Quad {
	return f.quad(func(dist int) Color {
		return base.Shade(Falloff(dist, depth, b.darkness))
	}, d)
}

// dark turns a face into a darkness overlay whose alpha follows the falloff.
func (b *Builder) dark(f face, d, depth int) Quad {
	return f.quad(func(dist int) Color {
		return b.palette.Darkness.WithAlpha(Falloff(dist, depth, b.darkness))
	}, d)
}

// face is the screen placement of one cell surface: four corners in quad
// order and whether each lies on the far plane.
type face struct {
	corners [4]Point
	far     [4]bool
}

func (f face) quad(color func(dist int) Color, d int) Quad {
	tex := [4]Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	var q Quad
	for i, p := range f.corners {
		dist := d
		if f.far[i] {
			dist = d + 1
		}
		q.Vertices[i] = Vertex{Pos: p, Color: color(dist), Tex: tex[i]}
	}
	return q
}

func floorFace(d int) face {
	n, f := planeAt(d), planeAt(d+1)
	return face{
		corners: [4]Point{{f.left, f.bottom}, {f.right, f.bottom}, {n.right, n.bottom}, {n.left, n.bottom}},
		far:     [4]bool{true, true, false, false},
	}
}

func ceilingFace(d int) face {
	n, f := planeAt(d), planeAt(d+1)
	return face{
		corners: [4]Point{{n.left, n.top}, {n.right, n.top}, {f.right, f.top}, {f.left, f.top}},
		far:     [4]bool{false, false, true, true},
	}
}

func leftFace(d int) face {
	n, f := planeAt(d), planeAt(d+1)
	return face{
		corners: [4]Point{{n.left, n.top}, {f.left, f.top}, {f.left, f.bottom}, {n.left, n.bottom}},
		far:     [4]bool{false, true, true, false},
	}
}

func rightFace(d int) face {
	n, f := planeAt(d), planeAt(d+1)
	return face{
		corners: [4]Point{{f.right, f.top}, {n.right, n.top}, {n.right, n.bottom}, {f.right, f.bottom}},
		far:     [4]bool{true, false, false, true},
	}
}

// backFace is the far plane of cell d.
func backFace(d int) face {
	f := planeAt(d + 1)
	return face{
		corners: [4]Point{{f.left, f.top}, {f.right, f.top}, {f.right, f.bottom}, {f.left, f.bottom}},
		far:     [4]bool{true, true, true, true},
	}
}
