package epaper

import (
	"image"

	"github.com/BeatGlow/epaper/pixel"
)

// QuantizeGray maps img onto the [Gray16] table and returns the levels as a packed 4-bit image,
// for panels that drive gray levels instead of an accent ink.
func QuantizeGray(img image.Image, opts *Options) (*pixel.Gray4Image, error) {
	q, err := Quantize(img, Gray16, opts)
	if err != nil {
		return nil, err
	}

	// Table entry i holds gray level i mod 16.
	var (
		size = q.Rect.Size()
		dst  = pixel.NewGray4Image(size.X, size.Y)
	)
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			dst.SetGray4(x, y, pixel.Gray4{Y: q.ColorIndexAt(x, y) & 0xf})
		}
	}
	return dst, nil
}
