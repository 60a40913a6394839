package epaper

import (
	"image/color"
	"strconv"
	"strings"
)

// Palette selects the inks available on a panel.
type Palette uint8

// Supported palettes.
const (
	BlackWhiteRed    Palette = iota // bwr
	BlackWhiteYellow                // bwy
	BlackWhite                      // bw
	Gray16                          // 16gray
)

// TableSize is the number of entries in every palette table.
const TableSize = 256

var (
	white  = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	black  = color.RGBA{A: 0xff}
	red    = color.RGBA{R: 0xff, A: 0xff}
	yellow = color.RGBA{R: 0xff, G: 0xff, A: 0xff}
)

// ParsePalette parses a palette token. Both the short tokens (bwr, bwy, bw, 16gray) and the long
// names (black-white-red, ...) are accepted.
func ParsePalette(token string) (Palette, error) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "bwr", "black-white-red":
		return BlackWhiteRed, nil
	case "bwy", "black-white-yellow":
		return BlackWhiteYellow, nil
	case "bw", "black-white":
		return BlackWhite, nil
	case "16gray", "16-level-gray":
		return Gray16, nil
	default:
		return 0, &UnsupportedPaletteError{Token: token}
	}
}

func (p Palette) String() string {
	switch p {
	case BlackWhiteRed:
		return "bwr"
	case BlackWhiteYellow:
		return "bwy"
	case BlackWhite:
		return "bw"
	case Gray16:
		return "16gray"
	default:
		return "Palette(" + strconv.Itoa(int(p)) + ")"
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (p Palette) MarshalText() ([]byte, error) {
	if _, err := p.base(); err != nil {
		return nil, err
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (p *Palette) UnmarshalText(text []byte) (err error) {
	*p, err = ParsePalette(string(text))
	return
}

func (p Palette) base() ([]color.RGBA, error) {
	switch p {
	case BlackWhiteRed:
		return []color.RGBA{white, black, red}, nil
	case BlackWhiteYellow:
		return []color.RGBA{white, black, yellow}, nil
	case BlackWhite:
		return []color.RGBA{white, black}, nil
	case Gray16:
		levels := make([]color.RGBA, 0, 16)
		for y := 0; y < 256; y += 16 {
			levels = append(levels, color.RGBA{R: uint8(y), G: uint8(y), B: uint8(y), A: 0xff})
		}
		return levels, nil
	default:
		return nil, &UnsupportedPaletteError{Token: p.String()}
	}
}

// PaletteTable is a 256 entry color table built from a palette.
type PaletteTable struct {
	Palette Palette

	// Base are the palette colors after padding, in table order.
	Base []color.RGBA

	// Entries are Base repeated to fill the table.
	Entries [TableSize]color.RGBA
}

// BuildPalette builds the color table for a palette.
func BuildPalette(p Palette) (*PaletteTable, error) {
	base, err := p.base()
	if err != nil {
		return nil, err
	}

	t := &PaletteTable{Palette: p}
	t.Base, t.Entries = tile(base)
	return t, nil
}

// tile pads base with black so that it repeats a whole number of times in the table, then
// repeats it. The padding is 256 mod n entries, which only tiles exactly when the padded length
// divides 256; any remainder of the table is left black.
func tile(base []color.RGBA) (padded []color.RGBA, entries [TableSize]color.RGBA) {
	padded = append(padded, base...)
	if n := TableSize % len(base); n != 0 {
		for i := 0; i < n; i++ {
			padded = append(padded, black)
		}
	}

	for i := range entries {
		entries[i] = black
	}
	repeat := TableSize / len(padded)
	for i := 0; i < repeat*len(padded); i++ {
		entries[i] = padded[i%len(padded)]
	}
	return
}

// Bilevel reports whether the table is quantized with a plain threshold instead of a table lookup.
func (t *PaletteTable) Bilevel() bool {
	return t.Palette == BlackWhite
}

// Bytes returns the table as 768 R, G, B intensity values.
func (t *PaletteTable) Bytes() []byte {
	b := make([]byte, 0, TableSize*3)
	for _, c := range t.Entries {
		b = append(b, c.R, c.G, c.B)
	}
	return b
}

// ColorPalette returns the table as a palette for [image.Paletted].
func (t *PaletteTable) ColorPalette() color.Palette {
	p := make(color.Palette, len(t.Entries))
	for i, c := range t.Entries {
		p[i] = c
	}
	return p
}

// Accent returns the base color that is neither black nor white. It fails with a
// [PaletteConsistencyError] unless there is exactly one.
func (t *PaletteTable) Accent() (color.RGBA, error) {
	var (
		accent     color.RGBA
		candidates int
	)
	for _, c := range t.Base {
		if isBlack(c) || isWhite(c) {
			continue
		}
		if candidates == 0 {
			accent = c
		}
		candidates++
	}
	if candidates != 1 {
		return color.RGBA{}, &PaletteConsistencyError{Palette: t.Palette, Candidates: candidates}
	}
	return accent, nil
}

func isBlack(c color.RGBA) bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

func isWhite(c color.RGBA) bool {
	return c.R == 0xff && c.G == 0xff && c.B == 0xff
}
