// Package wfc implements the overlapping wave-function-collapse constraint
// engine.
//
// A Ruleset (palette, pattern table, propagator) is compiled once per sample
// and is immutable; any number of Models may share it. A Model owns all
// per-solve state in flat arenas indexed by cell, pattern and direction:
//
//	wave[i*T+t]             – pattern t still possible at cell i
//	compatible[(i*T+t)*4+d] – supports of (i,t) from direction d
//	sumsOfOnes[i]           – count of possible patterns at i
//	sumsOfWeights[i], sumsOfWeightLogWeights[i], entropies[i]
//
// A solve is a loop of Observe (collapse the lowest-entropy cell by a
// weighted draw) and Propagate (drain the ban stack, decrementing neighbor
// supports and banning anything that reaches zero). Bans are monotonic, so
// Generate always halts after at most cells·T bans; an unsatisfiable state is
// reported as Contradiction together with the first cell that emptied, never
// repaired.
//
// Arithmetic: entropies and the tie-break noise (1e-6·u/2^32) are float64
// with every product explicitly rounded; the weighted draw is integer-only
// (target = u·total >> 32). Same seed, same inputs ⇒ same result.
//
// A Model is not safe for concurrent use. Build one Model per goroutine.
package wfc
