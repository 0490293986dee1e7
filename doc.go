// Package affine implements 2D geometric image transforms on 24-bit rasters.
//
// # Overview
//
// affine builds 3x3 homogeneous transform matrices, resamples images under
// them by backward mapping with bilinear interpolation, and reads and writes
// the uncompressed 24-bit raster file format with its own bit-exact codec.
// No image or linear-algebra library is involved in the pixel path.
//
// # Quick Start
//
//	import "github.com/gogpu/affine"
//
//	img, err := affine.Load("input.bmp")
//	if err != nil {
//		return err
//	}
//
//	p := affine.DefaultParams()
//	p.Angle = 30
//	p.SX, p.SY = 1.5, 1.5
//
//	out := affine.Transform(img, p)
//	return out.Save("output.bmp")
//
// # Transforms
//
// ScaleImage, RotateImage and ShearImage size their own canvas and resample
// through Resample. TranslateImage is a forward pixel copy with no
// interpolation. Transform composes scale, shear and rotation into one matrix,
// sizes the canvas from the transformed corners and adds the translation.
//
// # Sampling
//
// Bilinear reads the four neighbors of a source coordinate; neighbors outside
// the source are black rather than clamped to the edge, and channel values are
// truncated. Degenerate inputs (a zero scale factor, a shear with
// 1 - shx·shy near zero) are replaced with identity-equivalents instead of
// returning an error.
//
// # Coordinate System
//
//   - Origin (0,0) at top-left, row 0 is the visually topmost row
//   - X increases right, Y increases down
//   - Angles in degrees, positive is counter-clockwise in the matrix
//
// # Concurrency
//
// All functions are pure: they read their source and return a newly
// allocated image. WithWorkers spreads the per-pixel loop over several
// goroutines without changing the result.
package affine
