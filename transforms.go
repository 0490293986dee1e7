package affine

import (
	"math"
)

// floorInt returns floor(v) as an int.
func floorInt(v float64) int {
	return int(math.Floor(v))
}

// absInt returns |v|.
func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// ScaleImage scales src by (sx, sy) about its center.
// The canvas is floor(W·|sx|) × floor(H·|sy|). A zero factor yields an
// empty axis and the inverse falls back to the identity.
func ScaleImage(src *Image, sx, sy float64, opts ...Option) *Image {
	w := floorInt(float64(src.Width()) * math.Abs(sx))
	h := floorInt(float64(src.Height()) * math.Abs(sy))

	inv, ok := InverseScaling(sx, sy)
	if !ok {
		Logger().Debug("affine: zero scale factor, using identity inverse", "sx", sx, "sy", sy)
	}
	Logger().Debug("affine: scale", "sx", sx, "sy", sy, "width", w, "height", h)

	return Resample(src, inv, w, h, CanvasCentered(w, h), opts...)
}

// RotateCanvas returns the canvas size that holds a width×height image
// rotated by angleDeg.
func RotateCanvas(width, height int, angleDeg float64) (int, int) {
	rad := angleDeg * math.Pi / 180.0
	cos := math.Abs(math.Cos(rad))
	sin := math.Abs(math.Sin(rad))
	fw, fh := float64(width), float64(height)
	return floorInt(fw*cos + fh*sin), floorInt(fw*sin + fh*cos)
}

// RotateImage rotates src counter-clockwise by angleDeg about its center.
func RotateImage(src *Image, angleDeg float64, opts ...Option) *Image {
	w, h := RotateCanvas(src.Width(), src.Height(), angleDeg)
	Logger().Debug("affine: rotate", "angle", angleDeg, "width", w, "height", h)

	return Resample(src, Rotation(-angleDeg), w, h, CanvasCentered(w, h), opts...)
}

// ShearBackward returns the matrix ShearImage uses to map destination
// coordinates back into the source under InverseCompat:
//
//	| 1     ishx          0 |
//	| ishy  1 - ishx·ishy 0 |
//	| 0     0             1 |
//
// with (ishx, ishy) from ShearInverseFactors. If the shear is degenerate the
// factors are 0 and the result is the identity; ok reports which case applied.
func ShearBackward(shx, shy float64) (Matrix, bool) {
	ishx, ishy, ok := ShearInverseFactors(shx, shy)
	return Matrix{
		1, ishx, 0,
		ishy, 1 - ishx*ishy, 0,
		0, 0, 1,
	}, ok
}

// ShearImage shears src by (shx, shy) about its center.
// The canvas is floor(W + H·|shx|) × floor(H + W·|shy|).
// A near-singular shear (|1 - shx·shy| < 1e-4) silently maps with the identity.
func ShearImage(src *Image, shx, shy float64, opts ...Option) *Image {
	o := buildOptions(opts)
	fw, fh := float64(src.Width()), float64(src.Height())
	w := floorInt(fw + fh*math.Abs(shx))
	h := floorInt(fh + fw*math.Abs(shy))

	var inv Matrix
	var ok bool
	switch o.inverse {
	case InverseExact:
		inv, ok = Shear(shx, shy).Invert()
	default:
		inv, ok = ShearBackward(shx, shy)
	}
	if !ok {
		Logger().Debug("affine: degenerate shear, using identity inverse", "shx", shx, "shy", shy)
	}
	Logger().Debug("affine: shear", "shx", shx, "shy", shy, "width", w, "height", h, "inverse", o.inverse)

	return Resample(src, inv, w, h, CanvasCentered(w, h), opts...)
}

// TranslateImage shifts src by (tx, ty).
//
// Unlike the other transforms this is a forward copy, not a resample: source
// pixel (x, y) lands exactly on (x + max(0, ⌊tx⌋), y + max(0, ⌊ty⌋)) of a
// (W + |⌊tx⌋|) × (H + |⌊ty⌋|) canvas. Uncovered pixels stay black.
func TranslateImage(src *Image, tx, ty float64) *Image {
	ftx, fty := floorInt(tx), floorInt(ty)
	dst := NewImage(src.Width()+absInt(ftx), src.Height()+absInt(fty))
	ox, oy := max(0, ftx), max(0, fty)

	Logger().Debug("affine: translate", "tx", tx, "ty", ty, "width", dst.Width(), "height", dst.Height())

	for y := range src.Height() {
		row := src.Row(y)
		for x := range src.Width() {
			var s Sample
			copy(s[:], row[x*Channels:])
			dst.Set(x+ox, y+oy, s)
		}
	}
	return dst
}
