package render

import (
	"errors"

	"github.com/katalvlaran/wavecollapse/wfc"
)

// ErrBufferSize indicates a destination buffer that is not width*height*4 bytes.
var ErrBufferSize = errors.New("render: buffer length does not match output size")

// Render writes the model's current image into dst and returns it. A nil
// dst is allocated. Solved models render exactly, all others as a preview.
func Render(m *wfc.Model, dst []byte) ([]byte, error) {
	topo := m.Topology()
	size := topo.Cells() * 4
	if dst == nil {
		dst = make([]byte, size)
	}
	if len(dst) != size {
		return nil, ErrBufferSize
	}
	if m.Status() == wfc.Success {
		complete(m, dst)
	} else {
		preview(m, dst)
	}

	return dst, nil
}

// complete copies each pixel from its observed pattern.
func complete(m *wfc.Model, dst []byte) {
	topo, rs, obs := m.Topology(), m.Ruleset(), m.Observed()
	n := topo.N
	for y := 0; y < topo.Height; y++ {
		dy := 0
		if y >= topo.Height-n+1 {
			dy = n - 1
		}
		for x := 0; x < topo.Width; x++ {
			dx := 0
			if x >= topo.Width-n+1 {
				dx = n - 1
			}
			c := rs.Color(obs[topo.Index(x-dx, y-dy)], dx, dy)
			p := dst[topo.Index(x, y)*4:]
			p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
		}
	}
}

// preview averages every possible pattern color covering each pixel,
// rounding half to even.
// Pixels with no contributors (only possible after a contradiction) are
// written as transparent black.
func preview(m *wfc.Model, dst []byte) {
	topo, rs := m.Topology(), m.Ruleset()
	n, t := topo.N, m.Patterns()
	for i := 0; i < topo.Cells(); i++ {
		x, y := topo.Coordinate(i)
		var contributors, r, g, b, a int
		for dy := 0; dy < n; dy++ {
			for dx := 0; dx < n; dx++ {
				sx, sy := x-dx, y-dy
				if sx < 0 {
					sx += topo.Width
				}
				if sy < 0 {
					sy += topo.Height
				}
				if topo.OnBoundary(sx, sy) {
					continue
				}
				s := topo.Index(sx, sy)
				for p := 0; p < t; p++ {
					if !m.Possible(s, p) {
						continue
					}
					c := rs.Color(p, dx, dy)
					contributors++
					r += int(c.R)
					g += int(c.G)
					b += int(c.B)
					a += int(c.A)
				}
			}
		}

		px := dst[i*4 : i*4+4]
		if contributors == 0 {
			px[0], px[1], px[2], px[3] = 0, 0, 0, 0
			continue
		}
		px[0] = mean(r, contributors)
		px[1] = mean(g, contributors)
		px[2] = mean(b, contributors)
		px[3] = mean(a, contributors)
	}
}

// mean returns sum/n rounded half to even, the way a clamped 8-bit canvas
// buffer stores a fractional channel.
func mean(sum, n int) uint8 {
	q, rem := sum/n, sum%n
	if 2*rem > n || 2*rem == n && q%2 == 1 {
		q++
	}

	return uint8(q)
}
