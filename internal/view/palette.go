package view

// Palette holds the base colours of each kind of face before distance shading.
type Palette struct {
	Wall     Color
	Door     Color
	Floor    Color
	Ceiling  Color
	Stairs   Color
	Darkness Color // RGB of darkness overlays; alpha comes from the falloff
}

// DefaultPalette returns the stock dungeon colours.
func DefaultPalette() Palette {
	return Palette{
		Wall:     Color{R: 0x8a, G: 0x7f, B: 0x6e, A: 0xff},
		Door:     Color{R: 0x9c, G: 0x5b, B: 0x2e, A: 0xff},
		Floor:    Color{R: 0x4a, G: 0x44, B: 0x3c, A: 0xff},
		Ceiling:  Color{R: 0x2e, G: 0x2b, B: 0x28, A: 0xff},
		Stairs:   Color{R: 0xd8, G: 0xc8, B: 0x70, A: 0xff},
		Darkness: Color{A: 0xff},
	}
}
