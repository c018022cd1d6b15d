package rng

import "math/bits"

// Source is a stream of unsigned 32-bit values.
// It is the only randomness the solver consumes.
type Source interface {
	Uint32() uint32
}

// Stream tags used with MixSeed.
const (
	// TagPalette derives the stream used to color a sample.
	TagPalette uint32 = 1
	// TagSolve derives the stream used by the constraint engine.
	TagSolve uint32 = 2
)

// LCG parameters (Numerical Recipes).
const (
	lcgA uint32 = 1664525
	lcgC uint32 = 1013904223
)

// uint32Range is 2^32 as a float64; every uint32 divided by it is exact.
const uint32Range = 4294967296.0

// LCG32 is a 32-bit linear congruential generator:
//
//	state = state*1664525 + 1013904223 (mod 2^32)
//
// Its entire state is a single uint32. The zero value is a valid
// generator seeded with 0.
type LCG32 struct {
	state uint32
}

// New returns an LCG32 seeded with seed.
func New(seed uint32) *LCG32 {
	return &LCG32{state: seed}
}

// Uint32 advances the generator and returns the new state.
func (g *LCG32) Uint32() uint32 {
	g.state = g.state*lcgA + lcgC

	return g.state
}

// State returns the current internal state; New(g.State()) continues the
// same stream.
func (g *LCG32) State() uint32 {
	return g.state
}

// MixSeed combines a base seed with a stream tag.
func MixSeed(seed, tag uint32) uint32 {
	return seed ^ tag
}

// Range returns a value in [0, max), or 0 when max <= 0.
func Range(src Source, max int) int {
	if max <= 0 {
		return 0
	}

	return int(uint64(src.Uint32()) % uint64(max))
}

// Byte returns the low 8 bits of the next value.
func Byte(src Source) uint8 {
	return uint8(src.Uint32() & 0xff)
}

// Bool returns the low bit of the next value.
func Bool(src Source) bool {
	return src.Uint32()&1 == 1
}

// Float64 maps the next value to [0, 1).
func Float64(src Source) float64 {
	return float64(src.Uint32()) / uint32Range
}

// RemapFixed maps the next value onto [min, max) with integer arithmetic only:
// min + floor(u*(max-min) / 2^32). Reversed bounds are swapped; an empty
// range returns min without consuming a value.
func RemapFixed(src Source, min, max int) int {
	if min > max {
		min, max = max, min
	}
	span := max - min
	if span <= 0 {
		return min
	}

	hi, lo := bits.Mul64(uint64(src.Uint32()), uint64(span))

	return min + int(hi<<32|lo>>32)
}
