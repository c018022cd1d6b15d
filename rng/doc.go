// Package rng provides the deterministic pseudorandom streams that drive
// pattern coloring and solving.
//
// Every generator here is seeded entirely from an explicit integer and uses
// only fixed-width integer arithmetic, so the same seed yields the same
// stream on every platform:
//
//   - LCG32      – 32-bit linear congruential generator (the solver default).
//   - Mulberry32 – small mixing generator, seeded from a string via HashSeed.
//
// Independent sub-streams are derived from one root seed with MixSeed and a
// stream tag (TagPalette, TagSolve), so colors chosen upstream and choices
// made by the solver never correlate.
//
// The root seed itself is derived from an (account, index, text) triple by
// DeriveSeed128 / DeriveSeed32; identical triples always reproduce identical
// output.
package rng
