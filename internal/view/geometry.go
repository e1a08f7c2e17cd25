package view

// Point is a position in normalised viewport space: (0,0) is the top-left
// corner of the view and (1,1) the bottom-right.
type Point struct {
	X, Y float32
}

func lerpPoint(a, b Point, t float32) Point {
	return Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

// Color is a straight (non-premultiplied) RGBA colour.
type Color struct {
	R, G, B, A uint8
}

// Shade darkens c towards black by alpha in [0,1], keeping its own alpha.
func (c Color) Shade(alpha float32) Color {
	k := 1 - clamp01(alpha)
	return Color{
		R: uint8(float32(c.R)*k + 0.5),
		G: uint8(float32(c.G)*k + 0.5),
		B: uint8(float32(c.B)*k + 0.5),
		A: c.A,
	}
}

// WithAlpha returns c with its alpha channel set from a in [0,1].
func (c Color) WithAlpha(a float32) Color {
	c.A = uint8(clamp01(a)*255 + 0.5)
	return c
}

func lerpColor(a, b Color, t float32) Color {
	mix := func(x, y uint8) uint8 {
		return uint8(float32(x) + (float32(y)-float32(x))*t + 0.5)
	}
	return Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

// Vertex is one corner of a quad.
type Vertex struct {
	Pos   Point
	Color Color
	Tex   Point // Texture coordinate in [0,1]
}

// Corner indexes the vertices of a Quad.
const (
	TopLeft = iota
	TopRight
	BottomRight
	BottomLeft
)

// Quad is a convex four-vertex polygon ready for drawing. Vertices are
// ordered top-left, top-right, bottom-right, bottom-left.
type Quad struct {
	Vertices [4]Vertex
}

// At interpolates a vertex at (u, v) across the quad, bilinearly in
// position and colour. (0,0) is the top-left corner.
func (q Quad) At(u, v float32) Vertex {
	tl, tr := q.Vertices[TopLeft], q.Vertices[TopRight]
	bl, br := q.Vertices[BottomLeft], q.Vertices[BottomRight]

	top := lerpPoint(tl.Pos, tr.Pos, u)
	bottom := lerpPoint(bl.Pos, br.Pos, u)
	topC := lerpColor(tl.Color, tr.Color, u)
	bottomC := lerpColor(bl.Color, br.Color, u)

	return Vertex{
		Pos:   lerpPoint(top, bottom, v),
		Color: lerpColor(topC, bottomC, v),
		Tex:   Point{X: u, Y: v},
	}
}

// Inset returns the sub-quad spanning [u0,u1]x[v0,v1] of q. Texture
// coordinates of the result run over the full [0,1] range again.
func (q Quad) Inset(u0, v0, u1, v1 float32) Quad {
	out := Quad{Vertices: [4]Vertex{
		q.At(u0, v0),
		q.At(u1, v0),
		q.At(u1, v1),
		q.At(u0, v1),
	}}
	out.Vertices[TopLeft].Tex = Point{0, 0}
	out.Vertices[TopRight].Tex = Point{1, 0}
	out.Vertices[BottomRight].Tex = Point{1, 1}
	out.Vertices[BottomLeft].Tex = Point{0, 1}
	return out
}

// Bounds returns the axis-aligned bounding box of the quad.
func (q Quad) Bounds() (minP, maxP Point) {
	minP, maxP = q.Vertices[0].Pos, q.Vertices[0].Pos
	for _, v := range q.Vertices[1:] {
		minP.X = min(minP.X, v.Pos.X)
		minP.Y = min(minP.Y, v.Pos.Y)
		maxP.X = max(maxP.X, v.Pos.X)
		maxP.Y = max(maxP.Y, v.Pos.Y)
	}
	return minP, maxP
}

// Scale returns the on-screen size of a cell face at distance d relative to
// the full view. It halves at one cell, thirds at two, and so on.
func Scale(d int) float32 {
	if d < 0 {
		d = 0
	}
	return 1 / float32(d+1)
}

// Falloff returns the darkness alpha at distance dist for a view depth:
// zero at the viewer, rising linearly to threshold at depth.
func Falloff(dist, depth int, threshold float32) float32 {
	if depth <= 0 {
		return threshold
	}
	t := float32(dist) / float32(depth)
	return clamp01(t) * threshold
}

// plane is the screen rectangle of a cross-section of the corridor.
type plane struct {
	left, top, right, bottom float32
}

func planeAt(d int) plane {
	h := Scale(d) / 2
	return plane{left: 0.5 - h, top: 0.5 - h, right: 0.5 + h, bottom: 0.5 + h}
}

func clamp01(x float32) float32 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	default:
		return x
	}
}
