package draw

import (
	"image"
	"image/color"

	"github.com/BeatGlow/epaper"
)

// ClearWhite returns a copy of img in which pure white pixels are fully transparent and all other
// pixels are fully opaque. The copy starts at the origin.
//
// White is treated as background, so white content in img is lost.
func ClearWhite(img image.Image) *image.NRGBA {
	var (
		b   = img.Bounds()
		dst = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			if c.R == 0xff && c.G == 0xff && c.B == 0xff {
				c.A = 0
			} else {
				c.A = 0xff
			}
			dst.SetNRGBA(x, y, c)
		}
	}
	return dst
}

// Merge pastes overlay onto a copy of base, aligned at the origin of base, after clearing the
// white background of overlay with [ClearWhite]. The result has the size of base and starts at
// the origin.
//
// Merge fails with an [epaper.DimensionError] if base is empty or overlay does not fit in base.
func Merge(base, overlay image.Image) (*image.NRGBA, error) {
	bb := base.Bounds()
	if bb.Empty() {
		return nil, &epaper.DimensionError{Op: "merge", Size: bb.Size()}
	}
	if size := overlay.Bounds().Size(); size.X > bb.Dx() || size.Y > bb.Dy() {
		return nil, &epaper.DimensionError{Op: "merge", Size: size, Max: bb.Size()}
	}

	dst := image.NewNRGBA(image.Rect(0, 0, bb.Dx(), bb.Dy()))
	Draw(dst, dst.Rect, base, bb.Min, Src)

	keyed := ClearWhite(overlay)
	Draw(dst, keyed.Rect, keyed, image.Point{}, Over)
	return dst, nil
}

// Flatten composites img onto an opaque white background. The result starts at the origin.
func Flatten(img image.Image) *image.RGBA {
	var (
		b   = img.Bounds()
		dst = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	)
	Draw(dst, dst.Rect, image.White, image.Point{}, Src)
	Draw(dst, dst.Rect, img, b.Min, Over)
	return dst
}
