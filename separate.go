package epaper

import (
	"image"
	"image/color"

	"go.uber.org/zap"

	"github.com/BeatGlow/epaper/pixel"
)

// Planes are the two bitmaps sent to a dual-plane panel.
type Planes struct {
	// Black has ink where the panel shows black.
	Black *pixel.MonoImage

	// Color has ink where the panel shows the accent color.
	Color *pixel.MonoImage
}

// Bounds of the planes.
func (p *Planes) Bounds() image.Rectangle {
	return p.Black.Bounds()
}

// class is the plane a palette entry renders on.
type class uint8

const (
	classWhite class = iota
	classBlack
	classAccent
)

// SeparatePlanes quantizes img onto palette p and splits the result into a black and a color
// plane. Both planes start at the origin and have the size of img.
//
// The source must be opaque; flatten transparent images onto white first. For [BlackWhite] the
// color plane is blank. [Gray16] has no accent ink and fails with a [PaletteConsistencyError];
// use [QuantizeGray] for grayscale panels.
func SeparatePlanes(img image.Image, p Palette, opts *Options) (*Planes, error) {
	if err := checkSize("separate", img); err != nil {
		return nil, err
	}
	opts = optionsOrDefault(opts)

	t, err := BuildPalette(p)
	if err != nil {
		return nil, err
	}

	if t.Bilevel() {
		q := bilevel(img, opts)
		planes := &Planes{
			Black: pixel.NewMonoImage(q.Rect.Dx(), q.Rect.Dy()),
			Color: pixel.NewMonoImage(q.Rect.Dx(), q.Rect.Dy()),
		}
		for y := 0; y < q.Rect.Dy(); y++ {
			for x := 0; x < q.Rect.Dx(); x++ {
				if q.ColorIndexAt(x, y) == 0 {
					planes.Black.SetMono(x, y, pixel.Black)
				}
			}
		}
		return planes, nil
	}

	accent, err := t.Accent()
	if err != nil {
		return nil, err
	}

	q := quantize(img, t, opts)
	planes := splitPaletted(q, classify(t, accent))
	opts.logger().Debug("separated planes",
		zap.Stringer("palette", p),
		zap.Int("black", planes.Black.Ink()),
		zap.Int("color", planes.Color.Ink()))
	return planes, nil
}

// classify assigns every table entry to a plane.
func classify(t *PaletteTable, accent color.RGBA) (classes [TableSize]class) {
	for i, c := range t.Entries {
		switch {
		case isBlack(c):
			classes[i] = classBlack
		case c.R == accent.R && c.G == accent.G && c.B == accent.B:
			classes[i] = classAccent
		default:
			classes[i] = classWhite
		}
	}
	return
}

func splitPaletted(q *image.Paletted, classes [TableSize]class) *Planes {
	var (
		size   = q.Rect.Size()
		planes = &Planes{
			Black: pixel.NewMonoImage(size.X, size.Y),
			Color: pixel.NewMonoImage(size.X, size.Y),
		}
	)
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			switch classes[q.ColorIndexAt(q.Rect.Min.X+x, q.Rect.Min.Y+y)] {
			case classBlack:
				planes.Black.SetMono(x, y, pixel.Black)
			case classAccent:
				planes.Color.SetMono(x, y, pixel.Black)
			}
		}
	}
	return planes
}

// SplitQuantized splits an image that is already reduced to black, white and accent by comparing
// channels against the accent color:
//
//   - the black plane turns pixels whose red and green match the accent into white,
//   - the color plane turns pure black pixels into white, and then pixels whose green and blue
//     match the accent into black.
//
// All other pixels pass through. Pixels that are not black or white after these rules are
// thresholded by [pixel.MonoModel].
func SplitQuantized(img image.Image, accent color.Color) (*Planes, error) {
	if err := checkSize("split", img); err != nil {
		return nil, err
	}

	var (
		a      = color.RGBAModel.Convert(accent).(color.RGBA)
		sr     = img.Bounds()
		planes = &Planes{
			Black: pixel.NewMonoImage(sr.Dx(), sr.Dy()),
			Color: pixel.NewMonoImage(sr.Dx(), sr.Dy()),
		}
	)
	for y := 0; y < sr.Dy(); y++ {
		for x := 0; x < sr.Dx(); x++ {
			c := color.RGBAModel.Convert(img.At(sr.Min.X+x, sr.Min.Y+y)).(color.RGBA)

			b := c
			if b.R == a.R && b.G == a.G {
				b = white
			}
			planes.Black.Set(x, y, b)

			if isBlack(c) {
				c = white
			}
			if c.G == a.G && c.B == a.B {
				c = black
			}
			planes.Color.Set(x, y, c)
		}
	}
	return planes, nil
}
