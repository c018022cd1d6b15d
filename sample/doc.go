// Package sample turns an RGBA pixel buffer into a palette-indexed sample.
//
// The palette is the deduplicated list of colors in first-seen (row-major)
// order; a color's palette index is its identity for the rest of the
// pipeline. Cells holds one palette index per pixel, row-major.
package sample
