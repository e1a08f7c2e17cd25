package ui

import "github.com/samdwyer/dungeonview/internal/view"

// pixel is one terminal cell of the viewport.
type pixel struct {
	bg   view.Color
	fg   view.Color
	char rune
}

// frame is an off-screen viewport buffer. Quads are rasterised into it and
// then blitted to the screen in one pass.
type frame struct {
	w, h int
	px   []pixel
}

func newFrame(w, h int) *frame {
	f := &frame{w: max(w, 0), h: max(h, 0)}
	f.px = make([]pixel, f.w*f.h)
	f.clear()
	return f
}

func (f *frame) clear() {
	black := view.Color{A: 0xff}
	for i := range f.px {
		f.px[i] = pixel{bg: black, fg: black, char: ' '}
	}
}

func (f *frame) at(x, y int) *pixel {
	return &f.px[x+y*f.w]
}

// sample is the interpolated surface under a pixel centre.
type sample struct {
	color view.Color
	tex   view.Point
}

// fill calls paint for every pixel whose centre lies inside q. The quad is
// split along its TL-BR diagonal and each half is interpolated
// barycentrically.
func (f *frame) fill(q view.Quad, paint func(p *pixel, s sample)) {
	if f.w == 0 || f.h == 0 {
		return
	}
	lo, hi := q.Bounds()
	x0, x1 := clampSpan(lo.X, hi.X, f.w)
	y0, y1 := clampSpan(lo.Y, hi.Y, f.h)

	v := q.Vertices
	halves := [2][3]view.Vertex{
		{v[view.TopLeft], v[view.TopRight], v[view.BottomRight]},
		{v[view.TopLeft], v[view.BottomRight], v[view.BottomLeft]},
	}

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			p := view.Point{
				X: (float32(x) + 0.5) / float32(f.w),
				Y: (float32(y) + 0.5) / float32(f.h),
			}
			for _, tri := range halves {
				if s, ok := barycentric(tri, p); ok {
					paint(f.at(x, y), s)
					break
				}
			}
		}
	}
}

// clampSpan converts a normalised [lo,hi] span into inclusive pixel indices.
func clampSpan(lo, hi float32, n int) (int, int) {
	a := int(lo*float32(n) - 0.5)
	b := int(hi*float32(n) + 0.5)
	return max(a, 0), min(b, n-1)
}

const edgeEpsilon = 1e-5

func barycentric(t [3]view.Vertex, p view.Point) (sample, bool) {
	a, b, c := t[0].Pos, t[1].Pos, t[2].Pos
	area := cross(a, b, c)
	if area > -edgeEpsilon && area < edgeEpsilon {
		return sample{}, false
	}
	w0 := cross(b, c, p) / area
	w1 := cross(c, a, p) / area
	w2 := 1 - w0 - w1
	if w0 < -edgeEpsilon || w1 < -edgeEpsilon || w2 < -edgeEpsilon {
		return sample{}, false
	}

	mix := func(x, y, z uint8) uint8 {
		v := float32(x)*w0 + float32(y)*w1 + float32(z)*w2
		return uint8(min(max(v+0.5, 0), 255))
	}
	ca, cb, cc := t[0].Color, t[1].Color, t[2].Color
	return sample{
		color: view.Color{
			R: mix(ca.R, cb.R, cc.R),
			G: mix(ca.G, cb.G, cc.G),
			B: mix(ca.B, cb.B, cc.B),
			A: mix(ca.A, cb.A, cc.A),
		},
		tex: view.Point{
			X: t[0].Tex.X*w0 + t[1].Tex.X*w1 + t[2].Tex.X*w2,
			Y: t[0].Tex.Y*w0 + t[1].Tex.Y*w1 + t[2].Tex.Y*w2,
		},
	}, true
}

// cross is twice the signed area of triangle (a, b, p).
func cross(a, b, p view.Point) float32 {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}

// blend composites c over dst using c's alpha.
func blend(dst, c view.Color) view.Color {
	if c.A == 0xff {
		return c
	}
	a := float32(c.A) / 255
	mix := func(d, s uint8) uint8 {
		return uint8(float32(d)*(1-a) + float32(s)*a + 0.5)
	}
	return view.Color{R: mix(dst.R, c.R), G: mix(dst.G, c.G), B: mix(dst.B, c.B), A: 0xff}
}
