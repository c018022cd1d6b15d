package rng

import "unicode/utf16"

// Mulberry32 is a small 32-bit mixing generator. Each call adds a fixed odd
// constant to the state and scrambles it.
type Mulberry32 struct {
	state uint32
}

// NewMulberry32 returns a Mulberry32 seeded with seed.
func NewMulberry32(seed uint32) *Mulberry32 {
	return &Mulberry32{state: seed}
}

// Uint32 advances the generator and returns the next value.
func (g *Mulberry32) Uint32() uint32 {
	g.state += 0x6d2b79f5
	a := g.state
	t := (a ^ (a >> 15)) * (1 | a)
	t ^= t + (t^(t>>7))*(61|t)

	return t ^ (t >> 14)
}

// HashSeed folds a string into a 32-bit seed using two multiplicative lanes
// over its UTF-16 code units, so seeds agree with browser front ends.
func HashSeed(s string) uint32 {
	h1 := uint32(1779033703)
	h2 := uint32(3144134277)
	for _, u := range utf16.Encode([]rune(s)) {
		h1 = (h1 ^ uint32(u)) * 597399067
		h2 = (h2 ^ uint32(u)) * 2869860233
	}

	return h1 ^ (h2 >> 13)
}

// FromString returns a Mulberry32 seeded with HashSeed(s).
func FromString(s string) *Mulberry32 {
	return NewMulberry32(HashSeed(s))
}
