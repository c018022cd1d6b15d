// Package config loads wfcgen job files.
//
// A job file is YAML; every field is optional and falls back to Default():
//
//	sample: samples/flowers.png
//	output: out.png
//	width: 48
//	height: 48
//	n: 2
//	symmetry: 8
//	periodicInput: true
//	periodicOutput: true
//	ground: 0
//	seed:
//	  account: "0x1234"
//	  index: "7"
//	  text: "hello world"
//	scale: 8
//	pixelated: true
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/wavecollapse/rng"
	"github.com/katalvlaran/wavecollapse/wfc"
)

// Seed identifies the root seed. Value, when set, is used verbatim;
// otherwise the seed is derived from Account, Index and Text.
type Seed struct {
	Account string  `yaml:"account"`
	Index   string  `yaml:"index"`
	Text    string  `yaml:"text"`
	Value   *uint32 `yaml:"value,omitempty"`
}

// Root returns the 32-bit root seed.
func (s Seed) Root() uint32 {
	if s.Value != nil {
		return *s.Value
	}

	return rng.DeriveSeed32(s.Account, s.Index, s.Text)
}

// File is one generation job.
type File struct {
	Sample         string `yaml:"sample"`
	Output         string `yaml:"output"`
	Width          int    `yaml:"width"`
	Height         int    `yaml:"height"`
	N              int    `yaml:"n"`
	Symmetry       int    `yaml:"symmetry"`
	PeriodicInput  bool   `yaml:"periodicInput"`
	PeriodicOutput bool   `yaml:"periodicOutput"`
	Ground         int    `yaml:"ground"`
	Seed           Seed   `yaml:"seed"`
	Scale          int    `yaml:"scale"`
	Pixelated      bool   `yaml:"pixelated"`
}

// Default returns the web front end settings: N=2, full
// symmetry, periodic both ways, a 16×16 output scaled 8× with crisp pixels.
func Default() File {
	def := wfc.DefaultConfig(16, 16)

	return File{
		Output:         "out.png",
		Width:          def.Width,
		Height:         def.Height,
		N:              def.N,
		Symmetry:       def.Symmetry,
		PeriodicInput:  def.PeriodicInput,
		PeriodicOutput: def.PeriodicOutput,
		Scale:          8,
		Pixelated:      true,
	}
}

// Load reads and parses a job file.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	f, err := Parse(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}

	return f, nil
}

// Parse decodes YAML over Default() and validates the result.
func Parse(raw []byte) (*File, error) {
	f := Default()
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, errors.Wrap(err, "decoding yaml")
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	return &f, nil
}

// Validate checks the solver settings and the output scale.
func (f *File) Validate() error {
	if err := f.Solver().Validate(); err != nil {
		return errors.Wrap(err, "invalid solver settings")
	}
	if f.Scale < 1 {
		return errors.Errorf("scale must be at least 1, got %d", f.Scale)
	}

	return nil
}

// Solver projects the engine configuration.
func (f *File) Solver() wfc.Config {
	return wfc.Config{
		N:              f.N,
		Width:          f.Width,
		Height:         f.Height,
		PeriodicInput:  f.PeriodicInput,
		PeriodicOutput: f.PeriodicOutput,
		Symmetry:       f.Symmetry,
		Ground:         f.Ground,
	}
}
