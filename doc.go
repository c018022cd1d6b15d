// Package wavecollapse grows images from small sample bitmaps with the
// overlapping wave function collapse model.
//
// 🚀 What is in the box?
//
//	A deterministic, seed-driven constraint solver plus everything around it:
//		• Seeded streams: LCG32 and Mulberry32, 128-bit seed derivation
//		• Samples: RGBA buffers or images → palette indices
//		• Patterns: N×N windows, 8 symmetry variants, weights, adjacency
//		• Engine: entropy-driven observe/propagate with first-contradiction reporting
//		• Rendering: exact and preview pixels, frames, upscaling
//
// ✨ Guarantees
//
//   - Same sample, config and seed → same pixels, on every platform
//   - A solved output contains only N×N windows that occur in the sample
//   - One compiled Ruleset can back any number of concurrent Models
//
// Packages:
//
//	rng/      seeded pseudo-random streams and seed derivation
//	sample/   palette extraction from pixel data
//	grid/     output topology: indexing, neighbors, wrapping, regions
//	pattern/  pattern table and propagator
//	wfc/      Ruleset, Config and the Model constraint engine
//	render/   pixel output, frames and upscaling
//
// Quick sketch of one Model step:
//
//	observe ──► ban all but one pattern at the lowest-entropy cell
//	   ▲                         │
//	   └──── propagate ◄─────────┘  (until Success or Contradiction)
//
// The wfcgen command (cmd/wfcgen) wires these into a CLI:
//
//	go install github.com/katalvlaran/wavecollapse/cmd/wfcgen@latest
package wavecollapse
