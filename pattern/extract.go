package pattern

import (
	"fmt"
	"math/bits"

	"github.com/katalvlaran/wavecollapse/sample"
)

// Extract collects every distinct pattern of s together with its weight.
// Returns ErrNilSample, ErrBadN, ErrBadSymmetry, ErrCodeOverflow or
// ErrDegenerateSample.
func Extract(s *sample.Sample, opts Options) (*Table, error) {
	if s == nil {
		return nil, ErrNilSample
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	n := opts.N
	c := s.Colors()
	if _, ok := codeSpace(c, n*n); !ok {
		return nil, fmt.Errorf("%w: C=%d, N=%d", ErrCodeOverflow, c, n)
	}

	maxX, maxY := s.Width, s.Height
	if !opts.PeriodicInput {
		maxX, maxY = s.Width-n+1, s.Height-n+1
	}
	if maxX <= 0 || maxY <= 0 {
		return nil, fmt.Errorf("%w: %dx%d sample is smaller than N=%d", ErrDegenerateSample, s.Width, s.Height, n)
	}

	tab := &Table{N: n, C: c, index: make(map[uint64]int)}
	var ps [MaxSymmetry][]int
	for y := 0; y < maxY; y++ {
		for x := 0; x < maxX; x++ {
			ps[0] = window(s, x, y, n)
			ps[1] = reflect(ps[0], n)
			ps[2] = rotate(ps[0], n)
			ps[3] = reflect(ps[2], n)
			ps[4] = rotate(ps[2], n)
			ps[5] = reflect(ps[4], n)
			ps[6] = rotate(ps[4], n)
			ps[7] = reflect(ps[6], n)

			for k := 0; k < opts.Symmetry; k++ {
				tab.add(ps[k])
			}
		}
	}
	if len(tab.weights) == 0 {
		return nil, ErrDegenerateSample
	}

	return tab, nil
}

// Encode treats p as base-c digits, most significant first.
// The caller guarantees c^len(p) fits in 64 bits.
func Encode(p []int, c int) uint64 {
	var code uint64
	for _, v := range p {
		code = code*uint64(c) + uint64(v)
	}

	return code
}

// Decode is the inverse of Encode for a window of side n.
func Decode(code uint64, c, n int) []int {
	p := make([]int, n*n)
	if c <= 1 {
		return p
	}
	for i := len(p) - 1; i >= 0; i-- {
		p[i] = int(code % uint64(c))
		code /= uint64(c)
	}

	return p
}

// Len returns the number of distinct patterns T.
func (tab *Table) Len() int {
	return len(tab.weights)
}

// Pattern returns the N² palette indices of pattern t. The slice aliases the
// table and must not be modified.
func (tab *Table) Pattern(t int) []int {
	size := tab.N * tab.N

	return tab.cells[t*size : (t+1)*size : (t+1)*size]
}

// At returns the palette index of pattern t at window offset (x,y).
func (tab *Table) At(t, x, y int) int {
	return tab.cells[t*tab.N*tab.N+x+y*tab.N]
}

// Weight returns the occurrence count of pattern t.
func (tab *Table) Weight(t int) int {
	return tab.weights[t]
}

// Weights returns a copy of all weights, indexed by pattern.
func (tab *Table) Weights() []int {
	return append([]int(nil), tab.weights...)
}

// Code returns the dedup key of pattern t.
func (tab *Table) Code(t int) uint64 {
	return tab.codes[t]
}

// Index looks up the pattern whose encoding is code.
func (tab *Table) Index(code uint64) (int, bool) {
	t, ok := tab.index[code]

	return t, ok
}

func (tab *Table) add(p []int) {
	code := Encode(p, tab.C)
	if t, ok := tab.index[code]; ok {
		tab.weights[t]++
		return
	}
	tab.index[code] = len(tab.weights)
	tab.codes = append(tab.codes, code)
	tab.weights = append(tab.weights, 1)
	tab.cells = append(tab.cells, p...)
}

// window reads the n×n block anchored at (x,y), wrapping around s.
func window(s *sample.Sample, x, y, n int) []int {
	return build(n, func(dx, dy int) int { return s.At(x+dx, y+dy) })
}

// rotate turns p by 90°: p'[x,y] = p[N-1-y, x].
func rotate(p []int, n int) []int {
	return build(n, func(x, y int) int { return p[n-1-y+x*n] })
}

// reflect mirrors p horizontally: p'[x,y] = p[N-1-x, y].
func reflect(p []int, n int) []int {
	return build(n, func(x, y int) int { return p[n-1-x+y*n] })
}

func build(n int, f func(x, y int) int) []int {
	p := make([]int, n*n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			p[x+y*n] = f(x, y)
		}
	}

	return p
}

// codeSpace returns c^digits and whether it fits in a uint64.
func codeSpace(c, digits int) (uint64, bool) {
	space := uint64(1)
	for i := 0; i < digits; i++ {
		hi, lo := bits.Mul64(space, uint64(c))
		if hi != 0 {
			return 0, false
		}
		space = lo
	}

	return space, true
}
