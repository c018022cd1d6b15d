// Package grid describes the output lattice the solver works on: a
// Width×Height grid of cells addressed row-major, with 4-connectivity in the
// fixed order Left, Down, Right, Up.
//
// A Topology knows the pattern window size N and whether coordinates wrap:
//
//   - Periodic:     x and y wrap modulo Width/Height; no cell is excluded.
//   - Non-periodic: a cell whose N×N window would run off the grid is on the
//     boundary and is skipped by both observation and propagation.
//
// Components groups cells with equal labels into 4-connected regions,
// honoring the same wrap rule.
package grid
