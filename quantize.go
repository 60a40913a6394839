package epaper

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
)

// Quantize maps img onto the color table of p. The returned image starts at the origin and has
// the size of img.
//
// For [BlackWhite] the image is reduced to luma first and the palette is just black and white,
// matching the threshold path used by [SeparatePlanes].
func Quantize(img image.Image, p Palette, opts *Options) (*image.Paletted, error) {
	if err := checkSize("quantize", img); err != nil {
		return nil, err
	}
	opts = optionsOrDefault(opts)

	t, err := BuildPalette(p)
	if err != nil {
		return nil, err
	}
	if t.Bilevel() {
		return bilevel(img, opts), nil
	}
	return quantize(img, t, opts), nil
}

func quantize(img image.Image, t *PaletteTable, opts *Options) *image.Paletted {
	var (
		sr  = img.Bounds()
		dr  = image.Rect(0, 0, sr.Dx(), sr.Dy())
		dst = image.NewPaletted(dr, t.ColorPalette())
		log = opts.logger()
	)
	switch {
	case opts.Dither:
		log.Debug("quantizing with error diffusion",
			zap.Stringer("palette", t.Palette),
			zap.Stringer("size", dr.Size()))
		draw.FloydSteinberg.Draw(dst, dr, img, sr.Min)
	case opts.Perceptual:
		log.Debug("quantizing in L*a*b*",
			zap.Stringer("palette", t.Palette),
			zap.Stringer("size", dr.Size()))
		drawLab(dst, img, t)
	default:
		log.Debug("quantizing to nearest color",
			zap.Stringer("palette", t.Palette),
			zap.Stringer("size", dr.Size()))
		draw.Draw(dst, dr, img, sr.Min, draw.Src)
	}
	return dst
}

// drawLab sets every pixel of dst to the base color of t closest to the source pixel by CIE76
// distance. Base colors occupy the first len(t.Base) table entries, so a base index is also a
// table index.
func drawLab(dst *image.Paletted, img image.Image, t *PaletteTable) {
	base := make([]colorful.Color, len(t.Base))
	for i, c := range t.Base {
		base[i] = toColorful(c)
	}

	var (
		sr    = img.Bounds()
		cache = make(map[color.RGBA64]uint8)
	)
	for y := 0; y < sr.Dy(); y++ {
		for x := 0; x < sr.Dx(); x++ {
			r, g, b, a := img.At(sr.Min.X+x, sr.Min.Y+y).RGBA()
			key := color.RGBA64{R: uint16(r), G: uint16(g), B: uint16(b), A: uint16(a)}
			index, ok := cache[key]
			if !ok {
				index = nearestLab(base, key)
				cache[key] = index
			}
			dst.SetColorIndex(x, y, index)
		}
	}
}

func nearestLab(base []colorful.Color, c color.Color) uint8 {
	var (
		want  = toColorful(c)
		best  int
		bestD = -1.0
	)
	for i, candidate := range base {
		if d := want.DistanceLab(candidate); bestD < 0 || d < bestD {
			best, bestD = i, d
		}
	}
	return uint8(best)
}

func toColorful(c color.Color) colorful.Color {
	r, g, b, _ := c.RGBA()
	return colorful.Color{
		R: float64(r) / 0xffff,
		G: float64(g) / 0xffff,
		B: float64(b) / 0xffff,
	}
}

// bilevel converts img to 8-bit luma and then to black and white, by threshold or by error
// diffusion.
func bilevel(img image.Image, opts *Options) *image.Paletted {
	var (
		sr   = img.Bounds()
		dr   = image.Rect(0, 0, sr.Dx(), sr.Dy())
		luma = image.NewGray(dr)
		dst  = image.NewPaletted(dr, color.Palette{color.Black, color.White})
	)
	draw.Draw(luma, dr, img, sr.Min, draw.Src)

	opts.logger().Debug("converting to bilevel",
		zap.Bool("dither", opts.Dither),
		zap.Stringer("size", dr.Size()))
	if opts.Dither {
		draw.FloydSteinberg.Draw(dst, dr, luma, image.Point{})
	} else {
		draw.Draw(dst, dr, luma, image.Point{}, draw.Src)
	}
	return dst
}
