package affine

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// Channels is the number of 8-bit channels per pixel.
const Channels = 3

// Sample is one pixel. The channel order is the raster file's native order
// (blue, green, red) and is carried through every transform unchanged.
type Sample [Channels]uint8

// Black is the zero sample returned for out-of-bounds reads.
var Black = Sample{}

// Image is a W×H raster of 3-channel samples held in one contiguous
// row-major buffer. Pixel (x, y) starts at index (y*W + x)*3.
//
// Thread safety: Image is safe for concurrent reads. Concurrent writes must
// target distinct pixels.
type Image struct {
	width  int
	height int
	pix    []uint8
}

// NewImage creates a zero-initialized (black) image.
// Negative dimensions are treated as zero.
func NewImage(width, height int) *Image {
	width = max(width, 0)
	height = max(height, 0)
	return &Image{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*Channels),
	}
}

// Width returns the image width in pixels.
func (m *Image) Width() int {
	return m.width
}

// Height returns the image height in pixels.
func (m *Image) Height() int {
	return m.height
}

// Bounds returns the image dimensions as (width, height).
func (m *Image) Bounds() (int, int) {
	return m.width, m.height
}

// Pix returns the raw sample buffer. Modifying it modifies the image.
func (m *Image) Pix() []uint8 {
	return m.pix
}

// Center returns the geometric center (W/2, H/2) used by the transforms.
func (m *Image) Center() Point {
	return Point{X: float64(m.width) / 2.0, Y: float64(m.height) / 2.0}
}

// InBounds reports whether (x, y) addresses a pixel of the image.
func (m *Image) InBounds(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

// offset returns the buffer index of pixel (x, y) or -1 when out of bounds.
func (m *Image) offset(x, y int) int {
	if !m.InBounds(x, y) {
		return -1
	}
	return (y*m.width + x) * Channels
}

// At returns the sample at (x, y), or Black if (x, y) is out of bounds.
func (m *Image) At(x, y int) Sample {
	i := m.offset(x, y)
	if i < 0 {
		return Black
	}
	return Sample{m.pix[i], m.pix[i+1], m.pix[i+2]}
}

// Set writes the sample at (x, y). Out-of-bounds writes are ignored.
func (m *Image) Set(x, y int, s Sample) {
	i := m.offset(x, y)
	if i < 0 {
		return
	}
	copy(m.pix[i:i+Channels], s[:])
}

// Row returns the samples of row y, or nil if y is out of bounds.
func (m *Image) Row(y int) []uint8 {
	if y < 0 || y >= m.height {
		return nil
	}
	start := y * m.width * Channels
	return m.pix[start : start+m.width*Channels]
}

// Clone creates a deep copy of the image.
func (m *Image) Clone() *Image {
	pix := make([]uint8, len(m.pix))
	copy(pix, m.pix)
	return &Image{width: m.width, height: m.height, pix: pix}
}

// Equal reports whether both images have the same size and samples.
func (m *Image) Equal(o *Image) bool {
	if m.width != o.width || m.height != o.height {
		return false
	}
	for i := range m.pix {
		if m.pix[i] != o.pix[i] {
			return false
		}
	}
	return true
}

// ToStdImage converts the image to an opaque *image.NRGBA,
// mapping the native (B, G, R) samples to R, G, B.
func (m *Image) ToStdImage() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, m.width, m.height))
	for y := range m.height {
		row := m.Row(y)
		dst := out.Pix[y*out.Stride:]
		for x := range m.width {
			s := row[x*Channels:]
			d := dst[x*4:]
			d[0] = s[2]
			d[1] = s[1]
			d[2] = s[0]
			d[3] = 255
		}
	}
	return out
}

// FromStdImage converts any image.Image into an Image in native channel order.
// Alpha is discarded after compositing onto black.
func FromStdImage(src image.Image) *Image {
	b := src.Bounds()

	rgba, ok := src.(*image.RGBA)
	if !ok || rgba.Rect.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		xdraw.Draw(rgba, rgba.Bounds(), image.NewUniform(color.Black), image.Point{}, xdraw.Src)
		xdraw.Draw(rgba, rgba.Bounds(), src, b.Min, xdraw.Over)
	}

	m := NewImage(b.Dx(), b.Dy())
	for y := range m.height {
		row := m.Row(y)
		s := rgba.Pix[y*rgba.Stride:]
		for x := range m.width {
			p := s[x*4:]
			d := row[x*Channels:]
			d[0] = p[2]
			d[1] = p[1]
			d[2] = p[0]
		}
	}
	return m
}
