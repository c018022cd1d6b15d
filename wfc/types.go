package wfc

import (
	"errors"

	"github.com/katalvlaran/wavecollapse/pattern"
)

// Sentinel errors for engine construction.
var (
	// ErrBadSize indicates output dimensions that are non-positive or smaller than N.
	ErrBadSize = errors.New("wfc: output width and height must be at least N")
	// ErrNilRuleset indicates a nil Ruleset.
	ErrNilRuleset = errors.New("wfc: nil ruleset")
	// ErrRulesetMismatch indicates a Config whose N differs from the Ruleset's.
	ErrRulesetMismatch = errors.New("wfc: config N does not match ruleset")
)

// Status is the externally visible state of a solve.
type Status int

const (
	// InProgress means the solve has not reached a terminal state.
	InProgress Status = iota
	// Success means every cell settled on exactly one pattern.
	Success
	// Contradiction means some cell ran out of possible patterns.
	Contradiction
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case InProgress:
		return "in_progress"
	case Success:
		return "success"
	case Contradiction:
		return "contradiction"
	}

	return "unknown"
}

// Terminal reports whether s ends a solve.
func (s Status) Terminal() bool {
	return s == Success || s == Contradiction
}

// Result pairs a Status with the contradiction cell (-1 when none).
type Result struct {
	Status Status
	Cell   int
}

// Stats counts engine work since the last Clear.
type Stats struct {
	Observations int // Observe calls that collapsed a cell
	Bans         int // total bans, including those made by Clear
	Propagations int // Propagate calls
}

// Config describes one overlapping-model solve.
type Config struct {
	// N is the pattern window side.
	N int
	// Width and Height are the output dimensions in cells.
	Width, Height int
	// PeriodicInput wraps sample windows.
	PeriodicInput bool
	// PeriodicOutput wraps the output grid.
	PeriodicOutput bool
	// Symmetry is the number of rotation/reflection variants, in [1,8].
	Symmetry int
	// Ground, when non-zero, pins pattern ((Ground mod T)+T) mod T to the
	// bottom row and bans it everywhere else. A value resolving to 0 disables it.
	Ground int
}

// DefaultConfig returns a 2×2-window, fully symmetric, periodic config for a
// width×height output.
func DefaultConfig(width, height int) Config {
	return Config{
		N:              2,
		Width:          width,
		Height:         height,
		PeriodicInput:  true,
		PeriodicOutput: true,
		Symmetry:       pattern.MaxSymmetry,
	}
}

// PatternOptions projects the extraction settings.
func (c Config) PatternOptions() pattern.Options {
	return pattern.Options{N: c.N, Symmetry: c.Symmetry, PeriodicInput: c.PeriodicInput}
}

// Validate rejects out-of-range configurations.
func (c Config) Validate() error {
	if err := c.PatternOptions().Validate(); err != nil {
		return err
	}
	if c.Width < c.N || c.Height < c.N {
		return ErrBadSize
	}

	return nil
}
