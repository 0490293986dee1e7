package affine

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/gogpu/affine/internal/rasterfmt"
)

// Format errors. Every error returned by the decoder for malformed input is a
// *FormatError wrapping one of these.
var (
	// ErrSignature is returned when the file does not start with "BM".
	ErrSignature = errors.New("affine: bad raster signature")

	// ErrBitDepth is returned for any bit depth other than 24.
	ErrBitDepth = errors.New("affine: unsupported bits per pixel")

	// ErrTruncated is returned when the header or pixel data is cut short.
	ErrTruncated = errors.New("affine: truncated raster data")

	// ErrDimensions is returned for negative width or height, or a pixel
	// area too large to address.
	ErrDimensions = errors.New("affine: unsupported raster dimensions")
)

// FormatError reports raster data the codec cannot decode.
// It is never recovered internally.
type FormatError struct {
	Err    error  // one of the Err* sentinels above
	Detail string // human-readable specifics
}

func (e *FormatError) Error() string {
	if e.Detail == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + ": " + e.Detail
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

func formatErr(err error, format string, args ...any) error {
	return &FormatError{Err: err, Detail: fmt.Sprintf(format, args...)}
}

// DecodeBytes decodes an uncompressed 24-bit raster file.
// Rows are stored bottom-to-top on disk; the returned image has row 0 at the top.
// Samples are kept in on-disk channel order.
func DecodeBytes(data []byte) (*Image, error) {
	h, err := rasterfmt.Parse(data)
	if err != nil {
		return nil, formatErr(ErrTruncated, "%d header bytes", len(data))
	}
	if h.Signature != rasterfmt.Signature {
		return nil, formatErr(ErrSignature, "got %q", h.Signature[:])
	}
	if h.BitCount != rasterfmt.BitsPerPixel {
		return nil, formatErr(ErrBitDepth, "got %d, want 24", h.BitCount)
	}
	if h.Width < 0 || h.Height < 0 {
		return nil, formatErr(ErrDimensions, "%dx%d", h.Width, h.Height)
	}

	width, height := int(h.Width), int(h.Height)
	offset := int(h.PixelOffset)
	if offset > len(data) {
		return nil, formatErr(ErrTruncated, "pixel offset %d past end of %d bytes", offset, len(data))
	}
	if width == 0 || height == 0 {
		return NewImage(width, height), nil
	}

	// A crafted header must not overflow the pixel buffer size.
	if width > (math.MaxInt-3)/Channels || rasterfmt.RowBytes(width) > math.MaxInt/height {
		return nil, formatErr(ErrDimensions, "%dx%d pixel area overflows", width, height)
	}
	rowBytes := rasterfmt.RowBytes(width)
	avail := len(data) - offset
	if avail < rowBytes*height {
		return nil, formatErr(ErrTruncated, "need %d pixel bytes at offset %d, have %d",
			rowBytes*height, offset, avail)
	}

	img := NewImage(width, height)
	pixels := data[offset:]
	rowLen := width * Channels
	for i := range height {
		// On-disk row i is image row height-1-i.
		src := pixels[i*rowBytes : i*rowBytes+rowLen]
		copy(img.Row(height-1-i), src)
	}
	return img, nil
}

// Decode reads and decodes a raster file from r.
func Decode(r io.Reader) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("affine: read: %w", err)
	}
	return DecodeBytes(data)
}

// EncodeBytes encodes img as an uncompressed 24-bit raster file.
// Rows are written bottom-to-top with each row zero-padded to a multiple of 4 bytes.
func EncodeBytes(img *Image) []byte {
	width, height := img.Bounds()
	h := rasterfmt.New(width, height)
	rowBytes := rasterfmt.RowBytes(width)

	out := make([]byte, int(h.FileSize))
	h.Put(out)

	pixels := out[rasterfmt.HeaderSize:]
	for i := range height {
		// Samples are uint8, already within [0, 255]; padding stays zero.
		copy(pixels[i*rowBytes:], img.Row(height-1-i))
	}
	return out
}

// Encode writes img to w as an uncompressed 24-bit raster file.
func Encode(w io.Writer, img *Image) error {
	if _, err := io.Copy(w, bytes.NewReader(EncodeBytes(img))); err != nil {
		return fmt.Errorf("affine: encode: %w", err)
	}
	return nil
}

// Load reads a raster file from the given path.
func Load(path string) (*Image, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("affine: open file: %w", err)
	}
	return DecodeBytes(data)
}

// Save writes img to the given path as a raster file.
func (m *Image) Save(path string) error {
	if err := os.WriteFile(filepath.Clean(path), EncodeBytes(m), 0o644); err != nil { //nolint:gosec // output image, not a secret
		return fmt.Errorf("affine: create file: %w", err)
	}
	return nil
}
