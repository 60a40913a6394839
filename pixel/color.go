package pixel

import "image/color"

// Models for the standard color types.
var (
	MonoModel  color.Model = color.ModelFunc(monoModel)
	Gray4Model color.Model = color.ModelFunc(gray4Model)
)

var (
	// Black is ink.
	Black = Mono{false}

	// White is bare paper.
	White = Mono{true}
)

// Mono represents a 1-bit e-paper color, White when set.
type Mono struct {
	White bool
}

func (c Mono) RGBA() (r, g, b, a uint32) {
	if c.White {
		return 0xffff, 0xffff, 0xffff, 0xffff
	}
	return 0, 0, 0, 0xffff
}

func monoModel(c color.Color) color.Color {
	if _, ok := c.(Mono); ok {
		return c
	}
	r, g, b, _ := c.RGBA()

	// These coefficients (the fractions 0.299, 0.587 and 0.114) are the same
	// as those given by the JFIF specification and used by func RGBToYCbCr in
	// ycbcr.go.
	//
	// Note that 19595 + 38470 + 7471 equals 65536.
	//
	// The 31 is 16 + 15. The 16 is the same as used in RGBToYCbCr. The 15 is
	// because the return value is 1 bit color, not 16 bit color.
	y := (19595*r + 38470*g + 7471*b + 1<<15) >> 31

	return Mono{White: y != 0}
}

// Gray4 represents a 4-bit grayscale color, 0 is black and 15 is white.
type Gray4 struct {
	Y uint8
}

func (c Gray4) RGBA() (r, g, b, a uint32) {
	y := uint32(c.Y & 0xf)
	y |= y << 4
	y |= y << 8
	return y, y, y, 0xffff
}

func gray4Model(c color.Color) color.Color {
	if _, ok := c.(Gray4); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	y := (19595*r + 38470*g + 7471*b + 1<<15) >> 16
	return Gray4{Y: uint8(y >> 12)}
}
