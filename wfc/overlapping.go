package wfc

import (
	"fmt"

	"github.com/katalvlaran/wavecollapse/sample"
)

// NewOverlapping builds a Model straight from an RGBA sample buffer of
// width×height×4 bytes: palette, patterns and propagator are derived with
// cfg's extraction settings.
func NewOverlapping(data []byte, width, height int, cfg Config, opts ...Option) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s, err := sample.FromRGBA(data, width, height)
	if err != nil {
		return nil, fmt.Errorf("wfc: reading sample: %w", err)
	}
	rs, err := Compile(s, cfg.PatternOptions())
	if err != nil {
		return nil, fmt.Errorf("wfc: compiling ruleset: %w", err)
	}

	return New(rs, cfg, opts...)
}
