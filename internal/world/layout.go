package world

import (
	"fmt"
	"strings"
)

// ParseLayout builds a floor from an ASCII drawing. The drawing has
// 2*height+1 rows of 2*width+1 columns; the top row is the north edge.
// Cells sit at odd row/column positions, edges between them:
//
//	+-+-+
//	|.D.|   '-' '|' wall, 'D' closed door, 'O' open door, ' ' open
//	+ +-+
//	|> .|   '.' floor, '<' '>' stairs, '$' chest, 't' treasure,
//	+-+-+   'g' gravestone, '!' encounter, '#' solid (unauthored)
//
// An edge applies to both cells that share it. info.Size is taken from the drawing.
func ParseLayout(info LevelInfo, rows []string) (*Level, error) {
	if len(rows) < 3 || len(rows)%2 == 0 {
		return nil, fmt.Errorf("%w: layout needs an odd number of rows, got %d", ErrMalformedFloor, len(rows))
	}
	cols := 0
	for _, r := range rows {
		cols = max(cols, len(r))
	}
	if cols < 3 || cols%2 == 0 {
		return nil, fmt.Errorf("%w: layout needs an odd number of columns, got %d", ErrMalformedFloor, cols)
	}

	grid := make([][]byte, len(rows))
	for i, r := range rows {
		grid[i] = []byte(r + strings.Repeat(" ", cols-len(r)))
	}

	width, height := cols/2, len(rows)/2
	info.Size = Size{Width: width, Height: height}

	edge := func(r, c int) (Side, error) {
		switch grid[r][c] {
		case ' ':
			return Side{}, nil
		case '-', '|', '+':
			return Side{Wall: true}, nil
		case 'D':
			return Side{Wall: true, Door: true}, nil
		case 'O':
			return Side{Wall: true, Door: true, Open: true}, nil
		}
		return Side{}, fmt.Errorf("%w: unknown edge %q at row %d col %d", ErrMalformedFloor, grid[r][c], r, c)
	}

	tiles := make(map[Coordinate]Tile, width*height)
	for gz := 0; gz < height; gz++ {
		row := 2*(height-gz) - 1
		for gx := 0; gx < width; gx++ {
			col := 2*gx + 1
			t := Tile{Floor: true, Ceiling: info.Type == Indoor}

			switch grid[row][col] {
			case '#':
				continue
			case '.', ' ':
			case '<':
				t.Stairs = StairsUp
			case '>':
				t.Stairs = StairsDown
			case '$':
				t.Event = EventChest
			case 't':
				t.Event = EventTreasure
			case 'g':
				t.Event = EventGravestone
			case '!':
				t.Event = EventEncounter
			default:
				return nil, fmt.Errorf("%w: unknown cell %q at row %d col %d", ErrMalformedFloor, grid[row][col], row, col)
			}

			var err error
			if t.Sides[North], err = edge(row-1, col); err != nil {
				return nil, err
			}
			if t.Sides[South], err = edge(row+1, col); err != nil {
				return nil, err
			}
			if t.Sides[West], err = edge(row, col-1); err != nil {
				return nil, err
			}
			if t.Sides[East], err = edge(row, col+1); err != nil {
				return nil, err
			}

			c := Coordinate{X: info.Origin.X + gx, Y: info.Origin.Y, Z: info.Origin.Z + gz}
			tiles[c] = t
		}
	}

	return NewLevel(info, tiles)
}

// MustParseLayout is like ParseLayout but panics on error.
func MustParseLayout(info LevelInfo, rows ...string) *Level {
	l, err := ParseLayout(info, rows)
	if err != nil {
		panic(err)
	}
	return l
}

// Layout draws the level in the format read by ParseLayout.
func (l *Level) Layout() []string {
	w, h := l.info.Size.Width, l.info.Size.Height
	grid := make([][]byte, 2*h+1)
	for r := range grid {
		grid[r] = []byte(strings.Repeat(" ", 2*w+1))
		if r%2 == 0 {
			for c := 0; c < len(grid[r]); c += 2 {
				grid[r][c] = '+'
			}
		}
	}

	edge := func(s Side, horizontal bool) byte {
		switch s.Face() {
		case FaceWall:
			if horizontal {
				return '-'
			}
			return '|'
		case FaceClosedDoor:
			return 'D'
		case FaceOpenDoor:
			return 'O'
		}
		return ' '
	}

	for gz := 0; gz < h; gz++ {
		row := 2*(h-gz) - 1
		for gx := 0; gx < w; gx++ {
			col := 2*gx + 1
			c := Coordinate{X: l.info.Origin.X + gx, Y: l.info.Origin.Y, Z: l.info.Origin.Z + gz}
			t, ok := l.TileAt(c)
			if !ok {
				grid[row][col] = '#'
				continue
			}
			grid[row][col] = byte(t.Rune())
			grid[row-1][col] = edge(t.Sides[North], true)
			grid[row+1][col] = edge(t.Sides[South], true)
			grid[row][col-1] = edge(t.Sides[West], false)
			grid[row][col+1] = edge(t.Sides[East], false)
		}
	}

	rows := make([]string, len(grid))
	for i, r := range grid {
		rows[i] = string(r)
	}
	return rows
}
