package wfc_test

import (
	"github.com/katalvlaran/wavecollapse/rng"
	"github.com/katalvlaran/wavecollapse/sample"
	"github.com/katalvlaran/wavecollapse/wfc"
)

var (
	black = sample.Color{A: 255}
	white = sample.Color{R: 255, G: 255, B: 255, A: 255}
	red   = sample.Color{R: 255, A: 255}
)

// indexed builds a Sample straight from palette indices.
func indexed(w, h int, pal sample.Palette, cells ...int) *sample.Sample {
	return &sample.Sample{Width: w, Height: h, Palette: pal, Cells: cells}
}

func checkerboard(size int) *sample.Sample {
	cells := make([]int, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			cells[y*size+x] = (x + y) % 2
		}
	}

	return indexed(size, size, sample.Palette{black, white}, cells...)
}

func randomSample(seed uint32, w, h int) *sample.Sample {
	src := rng.New(seed)
	cells := make([]int, w*h)
	for i := range cells {
		cells[i] = rng.Range(src, 3)
	}

	return indexed(w, h, sample.Palette{black, white, red}, cells...)
}

// rgba flattens a Sample back into a pixel buffer.
func rgba(s *sample.Sample) []byte {
	buf := make([]byte, 0, len(s.Cells)*4)
	for _, c := range s.Cells {
		p := s.Palette[c]
		buf = append(buf, p.R, p.G, p.B, p.A)
	}

	return buf
}

func mustModel(s *sample.Sample, cfg wfc.Config) *wfc.Model {
	rs, err := wfc.Compile(s, cfg.PatternOptions())
	if err != nil {
		panic(err)
	}
	m, err := wfc.New(rs, cfg)
	if err != nil {
		panic(err)
	}

	return m
}

func solveStream(seed uint32) rng.Source {
	return rng.New(rng.MixSeed(seed, rng.TagSolve))
}
