package pixel

import (
	"image/color"
	"testing"
)

func TestMono(t *testing.T) {
	for y := 0; y < 2; y++ {
		t.Run("", func(it *testing.T) {
			c := Black
			if y > 0 {
				c = White
			}
			r, g, b, _ := c.RGBA()
			y *= 0xF
			want := uint32(y | y<<4 | y<<8 | y<<12)
			if r != want {
				it.Errorf("expected red to be %#04x, got %#04x", want, r)
			}
			if g != want {
				it.Errorf("expected green to be %#04x, got %#04x", want, g)
			}
			if b != want {
				it.Errorf("expected blue to be %#04x, got %#04x", want, b)
			}
		})
	}
}

func TestMonoModel(t *testing.T) {
	tests := []struct {
		in   color.Color
		want Mono
	}{
		{color.White, White},
		{color.Black, Black},
		{color.RGBA{R: 0xff, A: 0xff}, Black},
		{color.RGBA{R: 0xff, G: 0xff, A: 0xff}, White},
		{color.Gray{Y: 0x7f}, Black},
		{color.Gray{Y: 0x81}, White},
	}
	for _, test := range tests {
		if v := MonoModel.Convert(test.in); v != test.want {
			t.Errorf("expected %v to convert to %#+v, got %#+v", test.in, test.want, v)
		}
	}
}

func TestGray4(t *testing.T) {
	for y := 0; y < 16; y++ {
		t.Run("", func(it *testing.T) {
			c := Gray4{Y: uint8(y)}
			r, g, b, _ := c.RGBA()
			want := uint32(y | y<<4 | y<<8 | y<<12)
			if r != want {
				it.Errorf("expected red to be %#04x, got %#04x", want, r)
			}
			if g != want {
				it.Errorf("expected green to be %#04x, got %#04x", want, g)
			}
			if b != want {
				it.Errorf("expected blue to be %#04x, got %#04x", want, b)
			}
			if v := Gray4Model.Convert(color.Gray{Y: uint8(y * 0x11)}); v != c {
				it.Errorf("expected gray %#02x to convert to %#+v, got %#+v", y*0x11, c, v)
			}
		})
	}
}
