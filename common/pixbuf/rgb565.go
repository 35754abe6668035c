// Package pixbuf holds the pixel buffers stored behind image handles.
package pixbuf

import (
	"image"
	"image/color"
	"image/draw"
)

const BytesPerPixel = 2

// RGB565Color is a 16 bit colour with 5 bits red, 6 bits green and 5 bits blue.
type RGB565Color uint16

func (c RGB565Color) RGBA() (r, g, b, a uint32) {
	r5 := uint32(c>>11) & 0x1f
	g6 := uint32(c>>5) & 0x3f
	b5 := uint32(c) & 0x1f

	// Replicate the high bits into the low bits to span the full 16 bit range.
	r = (r5<<11 | r5<<6 | r5<<1) | r5>>4
	g = (g6<<10 | g6<<4) | g6>>2
	b = (b5<<11 | b5<<6 | b5<<1) | b5>>4
	return r, g, b, 0xffff
}

var RGB565Model = color.ModelFunc(rgb565Model)

func rgb565Model(c color.Color) color.Color {
	if _, ok := c.(RGB565Color); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	return RGB565Color((r>>11)<<11 | (g>>10)<<5 | b>>11)
}

// RGB565 is an opaque in-memory image stored two bytes per pixel,
// little endian.
type RGB565 struct {
	Pix    []byte
	Stride int
	Rect   image.Rectangle
}

func NewRGB565(r image.Rectangle) *RGB565 {
	w, h := r.Dx(), r.Dy()
	return &RGB565{
		Pix:    make([]byte, BytesPerPixel*w*h),
		Stride: BytesPerPixel * w,
		Rect:   r,
	}
}

// FromImage converts any image to RGB565, dropping alpha.
func FromImage(src image.Image) *RGB565 {
	if converted, ok := src.(*RGB565); ok {
		return converted
	}
	bounds := src.Bounds()
	dst := NewRGB565(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Rect, src, bounds.Min, draw.Src)
	return dst
}

func (p *RGB565) ColorModel() color.Model {
	return RGB565Model
}

func (p *RGB565) Bounds() image.Rectangle {
	return p.Rect
}

func (p *RGB565) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*BytesPerPixel
}

func (p *RGB565) At(x, y int) color.Color {
	return p.RGB565At(x, y)
}

func (p *RGB565) RGB565At(x, y int) RGB565Color {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return 0
	}
	i := p.PixOffset(x, y)
	return RGB565Color(uint16(p.Pix[i]) | uint16(p.Pix[i+1])<<8)
}

func (p *RGB565) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	i := p.PixOffset(x, y)
	c565 := RGB565Model.Convert(c).(RGB565Color)
	p.Pix[i] = uint8(c565)
	p.Pix[i+1] = uint8(c565 >> 8)
}

func (p *RGB565) Opaque() bool {
	return true
}

func (p *RGB565) ByteSize() int {
	return len(p.Pix)
}
