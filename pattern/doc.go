// Package pattern extracts the N×N neighborhoods of a sample and builds the
// adjacency table the solver propagates over.
//
// Extraction visits every sample position (all of them when the input is
// periodic, otherwise only those whose window fits), expands each window
// into up to eight symmetry variants and deduplicates them by their base-C
// encoding, where C is the palette size:
//
//	p0 = window      p1 = reflect(p0)
//	p2 = rotate(p0)  p3 = reflect(p2)
//	p4 = rotate(p2)  p5 = reflect(p4)
//	p6 = rotate(p4)  p7 = reflect(p6)
//
// Only the first Symmetry variants are counted. The first occurrence of a
// code fixes its pattern index; every further occurrence adds one to its
// weight, so all weights are at least 1.
//
// BuildPropagator then records, for each direction d and pattern t1, the
// ascending list of patterns t2 whose content agrees with t1 on the overlap
// when t2 is shifted by grid.DX[d], grid.DY[d]. Agreement is symmetric:
//
//	t2 ∈ P[d][t1]  ⇔  t1 ∈ P[opposite(d)][t2]
//
// Complexity: extraction O(S·K·N²) for S positions and K variants;
// propagator O(4·T²·N²).
package pattern
