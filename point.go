package affine

import "math"

// Point represents a 2D coordinate, either in pixel space or in a
// transform's centered frame.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Floor splits p into its integer cell and the fractional offset inside it.
// The offsets are in [0, 1).
func (p Point) Floor() (xi, yi int, dx, dy float64) {
	fx := math.Floor(p.X)
	fy := math.Floor(p.Y)
	return int(fx), int(fy), p.X - fx, p.Y - fy
}
