package affine

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/image/math/f64"
)

// degenerateDet is the determinant magnitude below which a linear map is
// treated as singular and replaced by an identity-equivalent.
const degenerateDet = 1e-4

// Matrix represents a 2D transformation in homogeneous coordinates.
// It is a 3x3 matrix stored in row-major order:
//
//	| m[0]  m[1]  m[2] |
//	| m[3]  m[4]  m[5] |
//	| m[6]  m[7]  m[8] |
//
// The builders below always produce a bottom row of [0 0 1], but products of
// arbitrary matrices keep whatever bottom row the arithmetic yields.
type Matrix f64.Mat3

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Scaling creates a scaling matrix.
func Scaling(sx, sy float64) Matrix {
	return Matrix{
		sx, 0, 0,
		0, sy, 0,
		0, 0, 1,
	}
}

// Rotation creates a counter-clockwise rotation matrix. The angle is in degrees.
func Rotation(angleDeg float64) Matrix {
	rad := angleDeg * math.Pi / 180.0
	cos := math.Cos(rad)
	sin := math.Sin(rad)
	return Matrix{
		cos, -sin, 0,
		sin, cos, 0,
		0, 0, 1,
	}
}

// Translation creates a translation matrix.
func Translation(tx, ty float64) Matrix {
	return Matrix{
		1, 0, tx,
		0, 1, ty,
		0, 0, 1,
	}
}

// Shear creates a shear matrix. shx skews along the x-axis, shy along the y-axis.
func Shear(shx, shy float64) Matrix {
	return Matrix{
		1, shx, 0,
		shy, 1, 0,
		0, 0, 1,
	}
}

// Multiply returns the full 3x3 product m * other.
func (m Matrix) Multiply(other Matrix) Matrix {
	var r Matrix
	for i := range 3 {
		for j := range 3 {
			var sum float64
			for k := range 3 {
				sum += m[i*3+k] * other[k*3+j]
			}
			r[i*3+j] = sum
		}
	}
	return r
}

// Compose left-folds Multiply over ms in the given order:
// Compose(a, b, c) == a.Multiply(b).Multiply(c).
// Compose with no arguments returns the identity.
func Compose(ms ...Matrix) Matrix {
	if len(ms) == 0 {
		return Identity()
	}
	r := ms[0]
	for _, m := range ms[1:] {
		r = r.Multiply(m)
	}
	return r
}

// TransformPoint applies the matrix to (x, y, 1) and returns the first two
// components. The bottom row is ignored.
func (m Matrix) TransformPoint(x, y float64) (float64, float64) {
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}

// Apply is TransformPoint for a Point.
func (m Matrix) Apply(p Point) Point {
	x, y := m.TransformPoint(p.X, p.Y)
	return Point{X: x, Y: y}
}

// At returns the element at row, col.
func (m Matrix) At(row, col int) float64 {
	return m[row*3+col]
}

// Det2 returns the determinant of the top-left 2x2 linear part.
func (m Matrix) Det2() float64 {
	return m[0]*m[4] - m[1]*m[3]
}

// Det returns the determinant of the full 3x3 matrix.
func (m Matrix) Det() float64 {
	return m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
}

// Invert returns the exact inverse computed from the adjugate.
// If |det| < 1e-4 the matrix is treated as degenerate: Invert returns the
// identity and false.
func (m Matrix) Invert() (Matrix, bool) {
	det := m.Det()
	if math.Abs(det) < degenerateDet {
		return Identity(), false
	}

	invDet := 1.0 / det
	return Matrix{
		(m[4]*m[8] - m[5]*m[7]) * invDet,
		(m[2]*m[7] - m[1]*m[8]) * invDet,
		(m[1]*m[5] - m[2]*m[4]) * invDet,

		(m[5]*m[6] - m[3]*m[8]) * invDet,
		(m[0]*m[8] - m[2]*m[6]) * invDet,
		(m[2]*m[3] - m[0]*m[5]) * invDet,

		(m[3]*m[7] - m[4]*m[6]) * invDet,
		(m[1]*m[6] - m[0]*m[7]) * invDet,
		(m[0]*m[4] - m[1]*m[3]) * invDet,
	}, true
}

// IsIdentity returns true if the matrix is exactly the identity.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// String formats the matrix one row per line.
func (m Matrix) String() string {
	var sb strings.Builder
	for i := range 3 {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "[%8.4f %8.4f %8.4f]", m.At(i, 0), m.At(i, 1), m.At(i, 2))
	}
	return sb.String()
}

// ShearInverseFactors returns the shear factors used to undo Shear(shx, shy):
// -shx/det and -shy/det with det = 1 - shx*shy.
// When |det| < 1e-4 both factors are 0 and ok is false.
func ShearInverseFactors(shx, shy float64) (ishx, ishy float64, ok bool) {
	det := 1 - shx*shy
	if math.Abs(det) < degenerateDet {
		return 0, 0, false
	}
	return -shx / det, -shy / det, true
}

// InverseScaling returns Scaling(1/sx, 1/sy).
// If either factor is zero it returns the identity and false.
func InverseScaling(sx, sy float64) (Matrix, bool) {
	if sx == 0 || sy == 0 {
		return Identity(), false
	}
	return Scaling(1/sx, 1/sy), true
}
