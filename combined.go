package affine

import (
	"math"
)

// Params are the inputs of Transform. The core does not apply defaults;
// use DefaultParams for the identity values.
type Params struct {
	SX, SY   float64 // scale factors
	Angle    float64 // counter-clockwise rotation in degrees
	TX, TY   float64 // translation in pixels
	ShX, ShY float64 // shear factors
}

// DefaultParams returns the identity parameters (1, 1, 0, 0, 0, 0, 0).
func DefaultParams() Params {
	return Params{SX: 1, SY: 1}
}

// Matrix returns the forward matrix Compose(Scaling, Shear, Rotation).
func (p Params) Matrix() Matrix {
	return Compose(
		Scaling(p.SX, p.SY),
		Shear(p.ShX, p.ShY),
		Rotation(p.Angle),
	)
}

// Inverse returns the backward-mapping matrix for p.
//
// InverseCompat inverts each factor on its own and composes
// Rotation(-angle), Shear(ShearInverseFactors), InverseScaling in that order.
// InverseExact inverts the forward matrix directly. Degenerate shear or
// scale factors fall back to identity-equivalents; ok is false in that case.
func (p Params) Inverse(mode InverseMode) (inv Matrix, ok bool) {
	if mode == InverseExact {
		return p.Matrix().Invert()
	}

	ishx, ishy, shearOK := ShearInverseFactors(p.ShX, p.ShY)
	invScale, scaleOK := InverseScaling(p.SX, p.SY)
	inv = Compose(
		Rotation(-p.Angle),
		Shear(ishx, ishy),
		invScale,
	)
	return inv, shearOK && scaleOK
}

// Rect is an axis-aligned box in a centered frame.
type Rect struct {
	Min, Max Point
}

// Mid returns the center of r.
func (r Rect) Mid() Point {
	return Point{X: (r.Max.X + r.Min.X) / 2, Y: (r.Max.Y + r.Min.Y) / 2}
}

// CornerBounds applies m to the centers of the four corner pixels of a
// width×height image, measured from the image's center, and returns the
// box enclosing the results.
func CornerBounds(width, height int, m Matrix) Rect {
	hw := float64(max(width-1, 0)) / 2.0
	hh := float64(max(height-1, 0)) / 2.0
	return projectBox(hw, hh, m)
}

// EdgeBounds is CornerBounds for the outer edges of the image: the corners
// (0, 0) and (width, height) measured from the center (width/2, height/2).
func EdgeBounds(width, height int, m Matrix) Rect {
	return projectBox(float64(width)/2.0, float64(height)/2.0, m)
}

// projectBox maps the corners (±hw, ±hh) through m and returns their box.
func projectBox(hw, hh float64, m Matrix) Rect {
	corners := [4]Point{
		{-hw, -hh},
		{hw, -hh},
		{-hw, hh},
		{hw, hh},
	}

	r := Rect{
		Min: Point{X: math.Inf(1), Y: math.Inf(1)},
		Max: Point{X: math.Inf(-1), Y: math.Inf(-1)},
	}
	for _, c := range corners {
		t := m.Apply(c)
		r.Min.X = math.Min(r.Min.X, t.X)
		r.Min.Y = math.Min(r.Min.Y, t.Y)
		r.Max.X = math.Max(r.Max.X, t.X)
		r.Max.Y = math.Max(r.Max.Y, t.Y)
	}
	return r
}

// bounds returns the projected box for the corner mode in o.
func (p Params) bounds(width, height int, o options) Rect {
	if o.corners == CornersEdge {
		return EdgeBounds(width, height, p.Matrix())
	}
	return CornerBounds(width, height, p.Matrix())
}

// Canvas returns the output size of Transform for a width×height source:
// the corner box extent plus one pixel, plus the translation magnitude.
// Only WithCorners affects the result.
func (p Params) Canvas(width, height int, opts ...Option) (int, int) {
	return p.canvas(p.bounds(width, height, buildOptions(opts)))
}

func (p Params) canvas(r Rect) (int, int) {
	w := floorInt(r.Max.X-r.Min.X) + 1 + absInt(floorInt(p.TX))
	h := floorInt(r.Max.Y-r.Min.Y) + 1 + absInt(floorInt(p.TY))
	return w, h
}

// Transform applies scale, shear and rotation as a single matrix, then
// offsets the result by (TX, TY), resampling src bilinearly.
//
// The translation is not part of the matrix. It widens the canvas by
// |⌊TX⌋| × |⌊TY⌋| and shifts the centered coordinate of every destination
// pixel before the inverse is applied.
func Transform(src *Image, p Params, opts ...Option) *Image {
	o := buildOptions(opts)
	width, height := src.Bounds()

	box := p.bounds(width, height, o)
	w, h := p.canvas(box)

	inv, ok := p.Inverse(o.inverse)
	if !ok {
		Logger().Debug("affine: degenerate transform, using identity-equivalent inverse",
			"sx", p.SX, "sy", p.SY, "shx", p.ShX, "shy", p.ShY, "inverse", o.inverse)
	}
	Logger().Debug("affine: transform", "width", w, "height", h, "inverse", o.inverse, "corners", o.corners)

	// The destination pixel is shifted by the translation, measured from the
	// canvas center and re-centered on the box midpoint.
	shift := Pt(p.TX, p.TY)
	center := Pt(float64(w)/2.0, float64(h)/2.0)
	mid := box.Mid()
	centered := func(x, y int) (float64, float64) {
		c := Pt(float64(x), float64(y)).Sub(shift).Sub(center).Add(mid)
		return c.X, c.Y
	}

	return Resample(src, inv, w, h, centered, opts...)
}
