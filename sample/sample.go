package sample

import (
	"image"
	"image/color"
)

// FromRGBA builds a Sample from a row-major RGBA buffer of
// width×height×4 bytes.
// Complexity: O(W×H) time and memory.
func FromRGBA(data []byte, width, height int) (*Sample, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptySample
	}
	if len(data) != width*height*4 {
		return nil, ErrBufferSize
	}

	b := newBuilder(width, height)
	for i := 0; i < width*height; i++ {
		p := data[i*4 : i*4+4]
		b.add(i, Color{R: p[0], G: p[1], B: p[2], A: p[3]})
	}

	return b.s, nil
}

// FromImage builds a Sample from any image. Pixels are read in
// non-premultiplied form so that translucent colors keep their channels.
func FromImage(img image.Image) (*Sample, error) {
	if img == nil {
		return nil, ErrNilImage
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return nil, ErrEmptySample
	}

	b := newBuilder(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			b.add(y*w+x, Color{R: c.R, G: c.G, B: c.B, A: c.A})
		}
	}

	return b.s, nil
}

// At returns the palette index at (x,y), wrapping both coordinates.
func (s *Sample) At(x, y int) int {
	x %= s.Width
	if x < 0 {
		x += s.Width
	}
	y %= s.Height
	if y < 0 {
		y += s.Height
	}

	return s.Cells[y*s.Width+x]
}

// Colors reports the palette size C.
func (s *Sample) Colors() int {
	return len(s.Palette)
}

// Index returns the palette index of c, or -1 if c does not occur.
func (p Palette) Index(c Color) int {
	for i, pc := range p {
		if pc == c {
			return i
		}
	}

	return -1
}

type builder struct {
	s     *Sample
	index map[Color]int
}

func newBuilder(w, h int) *builder {
	return &builder{
		s:     &Sample{Width: w, Height: h, Cells: make([]int, w*h)},
		index: make(map[Color]int),
	}
}

func (b *builder) add(i int, c Color) {
	idx, ok := b.index[c]
	if !ok {
		idx = len(b.s.Palette)
		b.index[c] = idx
		b.s.Palette = append(b.s.Palette, c)
	}
	b.s.Cells[i] = idx
}
