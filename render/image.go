package render

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// ToImage wraps a rendered buffer as an *image.NRGBA without copying.
func ToImage(buf []byte, width, height int) *image.NRGBA {
	return &image.NRGBA{
		Pix:    buf,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}
}

// Upscale resamples src to width×height. Pixelated output uses nearest
// neighbor so each cell stays a crisp block; otherwise Catmull-Rom smooths
// between cells.
func Upscale(src image.Image, width, height int, pixelated bool) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	var scaler xdraw.Scaler = xdraw.CatmullRom
	if pixelated {
		scaler = xdraw.NearestNeighbor
	}
	scaler.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	return dst
}
