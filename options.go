package affine

// InverseMode selects how a backward-mapping transform derives the inverse
// of its forward matrix.
type InverseMode uint8

const (
	// InverseCompat inverts each elementary matrix separately and composes
	// the inverses in reverse order, with shear undone through
	// ShearInverseFactors. This is the default. Combined with CornersEdge it
	// reproduces the per-factor pipeline's output sample for sample.
	InverseCompat InverseMode = iota

	// InverseExact uses the adjugate inverse of the full forward matrix.
	InverseExact
)

// String returns a string representation of the inverse mode.
func (m InverseMode) String() string {
	switch m {
	case InverseCompat:
		return "Compat"
	case InverseExact:
		return "Exact"
	default:
		return "Unknown"
	}
}

// CornerMode selects which corner positions Transform projects to size its
// canvas.
type CornerMode uint8

const (
	// CornersPixel projects the centers of the four corner pixels,
	// ±(W-1)/2 and ±(H-1)/2 from the image center. The identity parameters
	// then give a W×H canvas that copies the source exactly. This is the
	// default.
	CornersPixel CornerMode = iota

	// CornersEdge projects the outer edges of the image, ±W/2 and ±H/2 from
	// the center. Every axis with a nonzero extent gains one pixel and the
	// output is offset by half a pixel relative to CornersPixel.
	CornersEdge
)

// String returns a string representation of the corner mode.
func (m CornerMode) String() string {
	switch m {
	case CornersPixel:
		return "Pixel"
	case CornersEdge:
		return "Edge"
	default:
		return "Unknown"
	}
}

// Option configures a transform.
//
// Example:
//
//	out := affine.Transform(img, p, affine.WithInverse(affine.InverseExact))
type Option func(*options)

// options holds optional configuration for a transform call.
type options struct {
	inverse InverseMode
	corners CornerMode
	workers int
}

// defaultOptions returns the default transform options.
func defaultOptions() options {
	return options{
		inverse: InverseCompat,
		corners: CornersPixel,
		workers: 1,
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithInverse sets the inverse construction used by ShearImage and Transform.
func WithInverse(m InverseMode) Option {
	return func(o *options) {
		o.inverse = m
	}
}

// WithCorners sets the corner positions Transform uses for canvas sizing.
func WithCorners(m CornerMode) Option {
	return func(o *options) {
		o.corners = m
	}
}

// WithWorkers splits the destination rows across n goroutines.
// Values below 2 keep the sampling loop on the calling goroutine.
// The output does not depend on n.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = max(n, 1)
	}
}
