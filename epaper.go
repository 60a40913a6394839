// Package epaper renders bitmaps for dual-plane (black + accent) electrophoretic displays.
//
// An RGB image is quantized onto a small hardware palette and split into two 1-bit planes, one
// for black ink and one for the accent ink, both using white as the background. The planes are
// packed the way panel controllers expect them (see [pixel.MonoImage]).
package epaper

import (
	"fmt"
	"image"

	"go.uber.org/zap"
)

// UnsupportedPaletteError is returned for a palette token that is not known.
type UnsupportedPaletteError struct {
	Token string
}

func (err *UnsupportedPaletteError) Error() string {
	return fmt.Sprintf("epaper: unsupported palette %q", err.Token)
}

// DimensionError is returned for an empty raster, or an overlay that does not fit its base.
type DimensionError struct {
	// Op is the operation that rejected the raster.
	Op string

	// Size of the offending raster.
	Size image.Point

	// Max is the largest acceptable size, zero if any non-empty size is acceptable.
	Max image.Point
}

func (err *DimensionError) Error() string {
	if err.Max.Eq(image.Point{}) {
		return fmt.Sprintf("epaper: %s: invalid raster size %dx%d", err.Op, err.Size.X, err.Size.Y)
	}
	return fmt.Sprintf("epaper: %s: raster size %dx%d exceeds %dx%d", err.Op, err.Size.X, err.Size.Y, err.Max.X, err.Max.Y)
}

// PaletteConsistencyError is returned when a palette does not reduce to exactly one accent
// color. It indicates a defect or a palette that has no accent plane (such as [Gray16]).
type PaletteConsistencyError struct {
	Palette Palette

	// Candidates is the number of base colors that are neither black nor white.
	Candidates int
}

func (err *PaletteConsistencyError) Error() string {
	return fmt.Sprintf("epaper: palette %s has %d accent colors, expected 1", err.Palette, err.Candidates)
}

// Options control quantization.
type Options struct {
	// Dither enables Floyd-Steinberg error diffusion. Disable it for solid fills.
	Dither bool

	// Perceptual picks the nearest palette color in CIE L*a*b* instead of RGB. It only affects
	// quantization without dithering.
	Perceptual bool

	// Logger receives diagnostics, nil discards them.
	Logger *zap.Logger
}

// DefaultOptions are the default quantization options.
var DefaultOptions = Options{
	Dither: true,
}

func (o *Options) logger() *zap.Logger {
	if o == nil || o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func optionsOrDefault(opts *Options) *Options {
	if opts == nil {
		opts = new(Options)
		*opts = DefaultOptions
	}
	return opts
}

func checkSize(op string, img image.Image) error {
	if size := img.Bounds().Size(); size.X <= 0 || size.Y <= 0 {
		return &DimensionError{Op: op, Size: size}
	}
	return nil
}
