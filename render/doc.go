// Package render projects a Model's wave back into RGBA pixels.
//
// A solved model renders exactly: every output pixel takes its color from
// the observed pattern anchored at that pixel, with anchors pinned N-1 cells
// back along the trailing edges. Any other model renders as a preview: each
// pixel averages the colors of every still-possible pattern that covers it,
// one vote per (cell, pattern) pair.
//
// Buffers are row-major, four straight-alpha bytes per pixel, and are
// supplied by the caller so repeated previews do not reallocate.
//
// Frame and Record capture per-iteration snapshots (pixels, entropies and
// possibility counts) for animation or replay; ToImage and Upscale bridge to
// the image package.
package render
