package wfc

import (
	"github.com/katalvlaran/wavecollapse/pattern"
	"github.com/katalvlaran/wavecollapse/sample"
)

// Ruleset is everything a solve needs that depends only on the sample. It
// is read-only after Compile and may be shared across goroutines.
type Ruleset struct {
	Palette    sample.Palette
	Table      *pattern.Table
	Propagator pattern.Propagator
}

// Compile extracts patterns from s and builds their propagator.
func Compile(s *sample.Sample, opts pattern.Options) (*Ruleset, error) {
	tab, err := pattern.Extract(s, opts)
	if err != nil {
		return nil, err
	}

	return &Ruleset{
		Palette:    s.Palette,
		Table:      tab,
		Propagator: pattern.BuildPropagator(tab),
	}, nil
}

// Patterns returns T.
func (rs *Ruleset) Patterns() int {
	return rs.Table.Len()
}

// Color returns the palette color of pattern t at window offset (x,y).
func (rs *Ruleset) Color(t, x, y int) sample.Color {
	return rs.Palette[rs.Table.At(t, x, y)]
}
