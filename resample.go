package affine

import (
	"github.com/gogpu/affine/internal/parallel"
)

// CenteredFunc maps destination pixel (x, y) to the coordinate that the
// inverse matrix is applied to, in the destination's centered frame.
type CenteredFunc func(x, y int) (float64, float64)

// CanvasCentered returns the CenteredFunc that measures (x, y) from the
// center of a width×height canvas.
func CanvasCentered(width, height int) CenteredFunc {
	cx := float64(width) / 2.0
	cy := float64(height) / 2.0
	return func(x, y int) (float64, float64) {
		return float64(x) - cx, float64(y) - cy
	}
}

// Resample produces a width×height image by backward mapping: for every
// destination pixel, centered gives its centered coordinate, inv maps that
// into the source's centered frame, and the source center is added back
// before sampling with Bilinear.
//
// Every destination pixel is written exactly once.
func Resample(src *Image, inv Matrix, width, height int, centered CenteredFunc, opts ...Option) *Image {
	o := buildOptions(opts)
	dst := NewImage(width, height)
	c := src.Center()

	parallel.Rows(dst.Height(), o.workers, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := range dst.Width() {
				s := inv.Apply(Pt(centered(x, y))).Add(c)
				dst.Set(x, y, Bilinear(src, s.X, s.Y))
			}
		}
	})

	return dst
}

// Bilinear samples src at the continuous pixel coordinate (x, y).
//
// The four neighbors (xi, yi), (xi+1, yi), (xi, yi+1), (xi+1, yi+1) with
// xi = floor(x), yi = floor(y) are read independently; a neighbor outside
// the image contributes black rather than the nearest edge pixel. Each
// channel is weighted by the fractional offsets and truncated, not rounded.
func Bilinear(src *Image, x, y float64) Sample {
	xi, yi, dx, dy := Pt(x, y).Floor()

	p00 := src.At(xi, yi)
	p10 := src.At(xi+1, yi)
	p01 := src.At(xi, yi+1)
	p11 := src.At(xi+1, yi+1)

	var out Sample
	for c := range Channels {
		// Products are evaluated left to right; reordering changes truncated results.
		v := float64(p00[c])*(1-dx)*(1-dy) +
			float64(p10[c])*dx*(1-dy) +
			float64(p01[c])*(1-dx)*dy +
			float64(p11[c])*dx*dy
		out[c] = truncate255(v)
	}
	return out
}

// truncate255 converts v to a channel value by truncation, clamped to [0, 255].
func truncate255(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
