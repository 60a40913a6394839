package draw

import (
	"errors"
	"image"
	"image/color"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BeatGlow/epaper"
)

func testRandomImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+0] = uint8(rand.Intn(255))
		img.Pix[i+1] = uint8(rand.Intn(255))
		img.Pix[i+2] = uint8(rand.Intn(255))
		img.Pix[i+3] = 0xff
	}
	return img
}

func testUniformImage(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	Draw(img, img.Rect, image.NewUniform(c), image.Point{}, Src)
	return img
}

func TestClearWhite(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	img.SetNRGBA(1, 0, color.NRGBA{R: 0xff, A: 0x80})
	img.SetNRGBA(2, 0, color.NRGBA{R: 0xfe, G: 0xff, B: 0xff, A: 0xff})

	keyed := ClearWhite(img)
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x00}, keyed.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{R: 0xff, A: 0xff}, keyed.NRGBAAt(1, 0))
	assert.Equal(t, color.NRGBA{R: 0xfe, G: 0xff, B: 0xff, A: 0xff}, keyed.NRGBAAt(2, 0))
}

func TestMergeWhiteOverlay(t *testing.T) {
	base := testRandomImage(16, 9)
	overlay := testUniformImage(16, 9, color.White)

	merged, err := Merge(base, overlay)
	require.NoError(t, err)
	assert.Equal(t, base.Pix, merged.Pix)
}

func TestMergeBlackOverlay(t *testing.T) {
	base := testRandomImage(16, 9)
	overlay := testUniformImage(16, 9, color.Black)

	merged, err := Merge(base, overlay)
	require.NoError(t, err)
	assert.Equal(t, base.Rect, merged.Rect)
	assert.Equal(t, overlay.Pix, merged.Pix)
}

func TestMergeSmallerOverlay(t *testing.T) {
	var (
		base    = testUniformImage(4, 3, color.NRGBA{G: 0x80, A: 0xff})
		overlay = testUniformImage(2, 2, color.White)
		red     = color.NRGBA{R: 0xff, A: 0xff}
	)
	overlay.SetNRGBA(1, 1, red)

	merged, err := Merge(base, overlay)
	require.NoError(t, err)
	require.Equal(t, base.Rect, merged.Rect)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			want := base.NRGBAAt(x, y)
			if x == 1 && y == 1 {
				want = red
			}
			assert.Equal(t, want, merged.NRGBAAt(x, y), "pixel (%d,%d)", x, y)
		}
	}
}

func TestMergeOffsetBase(t *testing.T) {
	base := testUniformImage(6, 6, color.White).SubImage(image.Rect(2, 2, 5, 5))
	overlay := testUniformImage(1, 1, color.Black)

	merged, err := Merge(base, overlay)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 3), merged.Rect)
	assert.Equal(t, color.NRGBA{A: 0xff}, merged.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, merged.NRGBAAt(1, 1))
}

func TestMergeDimensions(t *testing.T) {
	tests := []struct {
		name          string
		base, overlay image.Image
	}{
		{"wider", testRandomImage(4, 4), testRandomImage(5, 4)},
		{"taller", testRandomImage(4, 4), testRandomImage(4, 5)},
		{"empty", image.NewNRGBA(image.Rectangle{}), image.NewNRGBA(image.Rectangle{})},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			merged, err := Merge(test.base, test.overlay)
			assert.Nil(t, merged)
			var dimension *epaper.DimensionError
			assert.True(t, errors.As(err, &dimension), "expected DimensionError, got %v", err)
		})
	}
}

func TestFlatten(t *testing.T) {
	img := image.NewNRGBA(image.Rect(1, 1, 4, 2))
	img.SetNRGBA(1, 1, color.NRGBA{})
	img.SetNRGBA(2, 1, color.NRGBA{A: 0x80})
	img.SetNRGBA(3, 1, color.NRGBA{R: 0xff, A: 0xff})

	flat := Flatten(img)
	assert.Equal(t, image.Rect(0, 0, 3, 1), flat.Rect)
	assert.Equal(t, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, flat.RGBAAt(0, 0))
	gray := flat.RGBAAt(1, 0)
	assert.InDelta(t, 0x7f, int(gray.R), 1)
	assert.Equal(t, gray.R, gray.G)
	assert.Equal(t, uint8(0xff), gray.A)
	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, flat.RGBAAt(2, 0))
}
