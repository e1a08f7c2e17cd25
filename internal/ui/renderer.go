package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/samdwyer/dungeonview/internal/view"
)

// Door and stairs texture thresholds in texture space.
const (
	doorFrame     = 0.12
	doorHandleX   = 0.8
	doorHandleY   = 0.55
	doorHandleTol = 0.08
	stairsBands   = 4
)

// Renderer draws TileView strips and a status line to the screen.
type Renderer struct {
	screen *Screen
	frame  *frame
}

// NewRenderer creates a new renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Viewport returns the size of the first-person view: the whole screen
// except the bottom status row.
func (r *Renderer) Viewport() (width, height int) {
	w, h := r.screen.Size()
	return w, max(h-1, 0)
}

// Draw rasterises views into the viewport, farthest cell first so nearer
// faces cover farther ones. It does not flush; call Show after drawing the
// status line.
func (r *Renderer) Draw(views []view.TileView) {
	w, h := r.Viewport()
	if r.frame == nil || r.frame.w != w || r.frame.h != h {
		r.frame = newFrame(w, h)
	} else {
		r.frame.clear()
	}

	for i := len(views) - 1; i >= 0; i-- {
		r.drawView(views[i])
	}
	r.blit()
}

func (r *Renderer) drawView(v view.TileView) {
	f := r.frame

	solid(f, v.Floor)
	solid(f, v.Ceiling)
	for _, s := range []view.Side{v.Left, v.Right} {
		overlay(f, s.Darkness)
		solid(f, s.Wall)
		door(f, s.Door)
	}
	stairs(f, v.UpStairs)
	stairs(f, v.DownStairs)
	solid(f, v.BackWall)
	door(f, v.BackDoor)
	overlay(f, v.Darkness)
}

func solid(f *frame, q *view.Quad) {
	if q == nil {
		return
	}
	f.fill(*q, func(p *pixel, s sample) {
		p.bg = blend(p.bg, s.color)
		p.char = ' '
	})
}

// overlay darkens what is already drawn by the quad's alpha.
func overlay(f *frame, q *view.Quad) {
	if q == nil {
		return
	}
	f.fill(*q, func(p *pixel, s sample) {
		p.bg = blend(p.bg, s.color)
		p.fg = blend(p.fg, s.color)
	})
}

// door draws a closed door as a filled panel with a handle and an open door
// as its frame only.
func door(f *frame, d *view.Door) {
	if d == nil {
		return
	}
	f.fill(d.Quad, func(p *pixel, s sample) {
		onFrame := s.tex.X < doorFrame || s.tex.X > 1-doorFrame || s.tex.Y < doorFrame
		if d.Open && !onFrame {
			return
		}
		p.bg = blend(p.bg, s.color)
		p.char = ' '
		if !d.Open && near(s.tex.X, doorHandleX) && near(s.tex.Y, doorHandleY) {
			p.char = 'o'
			p.fg = view.Color{A: 0xff}
		}
	})
}

// stairs draws horizontal treads across the quad.
func stairs(f *frame, q *view.Quad) {
	if q == nil {
		return
	}
	f.fill(*q, func(p *pixel, s sample) {
		p.bg = blend(p.bg, s.color)
		p.char = ' '
		if int(s.tex.Y*stairsBands*2)%2 == 0 {
			p.char = '='
			p.fg = s.color.Shade(0.6)
		}
	})
}

func near(a, b float32) bool {
	d := a - b
	return d > -doorHandleTol && d < doorHandleTol
}

func (r *Renderer) blit() {
	f := r.frame
	for y := 0; y < f.h; y++ {
		for x := 0; x < f.w; x++ {
			p := f.at(x, y)
			style := tcell.StyleDefault.Background(tcellColor(p.bg)).Foreground(tcellColor(p.fg))
			r.screen.SetContent(x, y, p.char, style)
		}
	}
}

func tcellColor(c view.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// RenderStatus writes msg on the bottom row, truncated to the screen width.
func (r *Renderer) RenderStatus(msg string) {
	w, h := r.screen.Size()
	if h == 0 {
		return
	}
	y := h - 1
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)

	msg = runewidth.Truncate(msg, w, "…")
	x := 0
	for _, ch := range msg {
		r.screen.SetContent(x, y, ch, style)
		x += runewidth.RuneWidth(ch)
	}
	for ; x < w; x++ {
		r.screen.SetContent(x, y, ' ', style)
	}
}

// Show flushes everything drawn so far.
func (r *Renderer) Show() {
	r.screen.Show()
}

// RenderMap draws an overhead map centred in the viewport with marker at
// (mx, my), given in map rows and columns.
func (r *Renderer) RenderMap(rows []string, mx, my int, marker rune) {
	w, h := r.Viewport()
	black := tcell.StyleDefault.Background(tcell.ColorBlack)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r.screen.SetContent(x, y, ' ', black)
		}
	}

	ox, oy := 0, 0
	if len(rows) > 0 {
		ox = max((w-runewidth.StringWidth(rows[0]))/2, 0)
		oy = max((h-len(rows))/2, 0)
	}

	wall := black.Foreground(tcell.ColorGray)
	for y, row := range rows {
		if oy+y >= h {
			break
		}
		for x, ch := range []rune(row) {
			if ox+x >= w {
				break
			}
			r.screen.SetContent(ox+x, oy+y, ch, wall)
		}
	}

	if mx >= 0 && my >= 0 && ox+mx < w && oy+my < h {
		r.screen.SetContent(ox+mx, oy+my, marker, black.Foreground(tcell.ColorYellow).Bold(true))
	}
}
