package pixel

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

type Image interface {
	draw.Image

	// Clear the image to bare paper (white).
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)
}

// Buffer holds the pixel values and is a container that is used by most image formats in this package.
type Buffer struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the image pixels.
	Pix []byte

	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
}

func (p *Buffer) Bounds() image.Rectangle {
	return p.Rect
}

func (p *Buffer) fill(value byte) {
	for i := range p.Pix {
		p.Pix[i] = value
	}
}

func makeBuffer(w, h, stride, size int) Buffer {
	return Buffer{
		Rect:   image.Rect(0, 0, w, h),
		Pix:    make([]byte, size),
		Stride: stride,
	}
}

// MonoImage is a 1-bit per pixel image, the format of a single e-paper plane.
//
// Rows are packed most significant bit first and padded to whole bytes. A set bit is white (no
// ink), a cleared bit is black (ink). New images are white.
type MonoImage struct {
	Buffer
}

func NewMonoImage(w, h int) *MonoImage {
	stride := ((w + 7) & ^7) / 8 // round up to whole bytes
	p := &MonoImage{
		Buffer: makeBuffer(w, h, stride, stride*h),
	}
	p.fill(0xff)
	return p
}

func (p *MonoImage) ColorModel() color.Model {
	return MonoModel
}

func (p *MonoImage) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)/8
}

func (p *MonoImage) bit(x int) byte {
	return 0x80 >> uint((x-p.Rect.Min.X)&7)
}

func (p *MonoImage) At(x, y int) color.Color {
	if !(image.Point{x, y}).In(p.Rect) {
		return color.Transparent
	}
	return p.MonoAt(x, y)
}

// MonoAt returns the color at (x, y) without the interface conversion of At.
func (p *MonoImage) MonoAt(x, y int) Mono {
	if !(image.Point{x, y}).In(p.Rect) {
		return White
	}
	return Mono{White: p.Pix[p.PixOffset(x, y)]&p.bit(x) != 0}
}

func (p *MonoImage) Set(x, y int, c color.Color) {
	p.SetMono(x, y, monoModel(c).(Mono))
}

func (p *MonoImage) SetMono(x, y int, c Mono) {
	if !(image.Point{x, y}).In(p.Rect) {
		return
	}

	index := p.PixOffset(x, y)
	if c.White {
		p.Pix[index] |= p.bit(x)
	} else {
		p.Pix[index] &^= p.bit(x)
	}
}

func (p *MonoImage) Clear() {
	p.fill(0xff)
}

func (p *MonoImage) Fill(c color.Color) {
	var value byte
	if monoModel(c).(Mono).White {
		value = 0xff
	}
	p.fill(value)
}

// Inverted returns a copy with every pixel flipped, for controllers whose color RAM treats a set
// bit as ink. Padding bits are flipped as well.
func (p *MonoImage) Inverted() *MonoImage {
	q := &MonoImage{
		Buffer: Buffer{
			Rect:   p.Rect,
			Pix:    make([]byte, len(p.Pix)),
			Stride: p.Stride,
		},
	}
	for i, v := range p.Pix {
		q.Pix[i] = ^v
	}
	return q
}

// Ink returns the number of black pixels.
func (p *MonoImage) Ink() (n int) {
	for y := p.Rect.Min.Y; y < p.Rect.Max.Y; y++ {
		for x := p.Rect.Min.X; x < p.Rect.Max.X; x++ {
			if !p.MonoAt(x, y).White {
				n++
			}
		}
	}
	return
}

// Gray4Image is a 4-bits per pixel gray scale image, two pixels per byte with the left pixel in
// the high nibble.
type Gray4Image struct {
	Buffer
}

func NewGray4Image(w, h int) *Gray4Image {
	p := &Gray4Image{
		Buffer: makeBuffer(w, h, (w+1)/2, h*((w+1)/2)),
	}
	p.fill(0xff)
	return p
}

func (p *Gray4Image) ColorModel() color.Model {
	return Gray4Model
}

func (p *Gray4Image) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)>>1
}

func (p *Gray4Image) At(x, y int) color.Color {
	if !(image.Point{x, y}).In(p.Rect) {
		return color.Transparent
	}
	return p.Gray4At(x, y)
}

func (p *Gray4Image) Gray4At(x, y int) Gray4 {
	if !(image.Point{x, y}).In(p.Rect) {
		return Gray4{}
	}

	index := p.PixOffset(x, y)
	if (x-p.Rect.Min.X)%2 == 0 {
		return Gray4{Y: p.Pix[index] >> 4}
	}
	return Gray4{Y: p.Pix[index] & 0xf}
}

func (p *Gray4Image) Set(x, y int, c color.Color) {
	p.SetGray4(x, y, gray4Model(c).(Gray4))
}

func (p *Gray4Image) SetGray4(x, y int, c Gray4) {
	if !(image.Point{x, y}).In(p.Rect) {
		return
	}

	index := p.PixOffset(x, y)
	value := c.Y & 0xf
	if (x-p.Rect.Min.X)%2 == 0 {
		p.Pix[index] = (p.Pix[index] & 0x0f) | value<<4
	} else {
		p.Pix[index] = (p.Pix[index] & 0xf0) | value
	}
}

func (p *Gray4Image) Clear() {
	p.fill(0xff)
}

func (p *Gray4Image) Fill(c color.Color) {
	value := gray4Model(c).(Gray4).Y & 0xf
	value |= value << 4
	p.fill(value)
}

// Interface checks.
var (
	_ Image = (*MonoImage)(nil)
	_ Image = (*Gray4Image)(nil)
)
