package gamedata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samdwyer/dungeonview/internal/view"
)

// ParseHexColor converts a hex color string (e.g., "#FF0000" or "FF0000") to
// an opaque view.Color.
func ParseHexColor(hex string) (view.Color, error) {
	// Remove leading # if present
	hex = strings.TrimPrefix(hex, "#")

	if len(hex) != 6 {
		return view.Color{}, fmt.Errorf("invalid hex color length: %s", hex)
	}

	// Parse RGB components
	r, err := strconv.ParseUint(hex[0:2], 16, 8)
	if err != nil {
		return view.Color{}, fmt.Errorf("invalid red component in %s: %w", hex, err)
	}

	g, err := strconv.ParseUint(hex[2:4], 16, 8)
	if err != nil {
		return view.Color{}, fmt.Errorf("invalid green component in %s: %w", hex, err)
	}

	b, err := strconv.ParseUint(hex[4:6], 16, 8)
	if err != nil {
		return view.Color{}, fmt.Errorf("invalid blue component in %s: %w", hex, err)
	}

	return view.Color{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}, nil
}

// MustParseHexColor converts a hex color string to view.Color, panicking on error.
func MustParseHexColor(hex string) view.Color {
	color, err := ParseHexColor(hex)
	if err != nil {
		panic(err)
	}
	return color
}

// PaletteColors names palette entries by hex string. Empty entries keep the
// default colour.
type PaletteColors struct {
	Wall     string `yaml:"wall" json:"wall,omitempty"`
	Door     string `yaml:"door" json:"door,omitempty"`
	Floor    string `yaml:"floor" json:"floor,omitempty"`
	Ceiling  string `yaml:"ceiling" json:"ceiling,omitempty"`
	Stairs   string `yaml:"stairs" json:"stairs,omitempty"`
	Darkness string `yaml:"darkness" json:"darkness,omitempty"`
}

// Palette applies the configured colours over view.DefaultPalette.
func (pc PaletteColors) Palette() (view.Palette, error) {
	p := view.DefaultPalette()
	entries := []struct {
		name string
		hex  string
		dst  *view.Color
	}{
		{"wall", pc.Wall, &p.Wall},
		{"door", pc.Door, &p.Door},
		{"floor", pc.Floor, &p.Floor},
		{"ceiling", pc.Ceiling, &p.Ceiling},
		{"stairs", pc.Stairs, &p.Stairs},
		{"darkness", pc.Darkness, &p.Darkness},
	}
	for _, e := range entries {
		if e.hex == "" {
			continue
		}
		c, err := ParseHexColor(e.hex)
		if err != nil {
			return view.Palette{}, fmt.Errorf("palette %s: %w", e.name, err)
		}
		*e.dst = c
	}
	return p, nil
}
