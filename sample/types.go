package sample

import "errors"

// Sentinel errors for sample construction.
var (
	// ErrEmptySample indicates non-positive sample dimensions.
	ErrEmptySample = errors.New("sample: width and height must be positive")
	// ErrBufferSize indicates the pixel buffer length is not width*height*4.
	ErrBufferSize = errors.New("sample: pixel buffer length does not match dimensions")
	// ErrNilImage indicates a nil image was supplied.
	ErrNilImage = errors.New("sample: nil image")
)

// Color is a non-premultiplied RGBA quadruple.
type Color struct {
	R, G, B, A uint8
}

// RGBA implements image/color.Color. Color holds straight alpha, so the
// channels are premultiplied here.
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(c.A)
	r = uint32(c.R) * a / 0xff
	g = uint32(c.G) * a / 0xff
	b = uint32(c.B) * a / 0xff

	return r | r<<8, g | g<<8, b | b<<8, a | a<<8
}

// Palette is an ordered list of distinct colors.
type Palette []Color

// Sample is a Width×Height grid of palette indices.
type Sample struct {
	Width, Height int
	Palette       Palette
	Cells         []int // row-major: Cells[y*Width+x]
}
