// Package rasterfmt describes the fixed 54-byte header of the uncompressed
// 24-bit raster file format and its row layout.
//
// All multi-byte fields are little-endian:
//
//	offset size field
//	     0    2 signature "BM"
//	     2    4 file size
//	     6    4 reserved (0)
//	    10    4 pixel data offset
//	    14    4 info header size (40)
//	    18    4 width (int32)
//	    22    4 height (int32)
//	    26    2 color planes (1)
//	    28    2 bits per pixel
//	    30    4 compression (0)
//	    34    4 image data size
//	    38    4 horizontal resolution, pixels per meter
//	    42    4 vertical resolution, pixels per meter
//	    46    4 palette colors
//	    50    4 important colors
package rasterfmt

import (
	"encoding/binary"
	"errors"
)

// Layout constants.
const (
	FileHeaderSize = 14
	InfoHeaderSize = 40
	HeaderSize     = FileHeaderSize + InfoHeaderSize

	BitsPerPixel  = 24
	BytesPerPixel = BitsPerPixel / 8

	// ResolutionPPM is 2835 pixels per meter, roughly 72 DPI.
	ResolutionPPM = 2835
)

// Signature is the 2-byte magic at the start of every file.
var Signature = [2]byte{'B', 'M'}

// ErrShortHeader is returned by Parse when fewer than HeaderSize bytes are given.
var ErrShortHeader = errors.New("rasterfmt: header shorter than 54 bytes")

// Header is the decoded file header plus info header.
type Header struct {
	Signature       [2]byte
	FileSize        uint32
	Reserved        uint32
	PixelOffset     uint32
	InfoSize        uint32
	Width           int32
	Height          int32
	Planes          uint16
	BitCount        uint16
	Compression     uint32
	ImageSize       uint32
	XPelsPerMeter   uint32
	YPelsPerMeter   uint32
	ColorsUsed      uint32
	ColorsImportant uint32
}

// RowBytes returns the on-disk size of one row: width*3 rounded up to a
// multiple of 4.
func RowBytes(width int) int {
	return ((width*BytesPerPixel + 3) / 4) * 4
}

// Padding returns the number of zero bytes that follow each row on disk.
func Padding(width int) int {
	return RowBytes(width) - width*BytesPerPixel
}

// New returns the header written for a width×height 24-bit image.
func New(width, height int) Header {
	imageSize := uint32(RowBytes(width) * height)
	return Header{
		Signature:     Signature,
		FileSize:      HeaderSize + imageSize,
		PixelOffset:   HeaderSize,
		InfoSize:      InfoHeaderSize,
		Width:         int32(width),
		Height:        int32(height),
		Planes:        1,
		BitCount:      BitsPerPixel,
		ImageSize:     imageSize,
		XPelsPerMeter: ResolutionPPM,
		YPelsPerMeter: ResolutionPPM,
	}
}

// Parse unpacks the first HeaderSize bytes of b. It does not validate the
// field values.
func Parse(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, ErrShortHeader
	}
	le := binary.LittleEndian
	return Header{
		Signature:       [2]byte{b[0], b[1]},
		FileSize:        le.Uint32(b[2:6]),
		Reserved:        le.Uint32(b[6:10]),
		PixelOffset:     le.Uint32(b[10:14]),
		InfoSize:        le.Uint32(b[14:18]),
		Width:           int32(le.Uint32(b[18:22])),
		Height:          int32(le.Uint32(b[22:26])),
		Planes:          le.Uint16(b[26:28]),
		BitCount:        le.Uint16(b[28:30]),
		Compression:     le.Uint32(b[30:34]),
		ImageSize:       le.Uint32(b[34:38]),
		XPelsPerMeter:   le.Uint32(b[38:42]),
		YPelsPerMeter:   le.Uint32(b[42:46]),
		ColorsUsed:      le.Uint32(b[46:50]),
		ColorsImportant: le.Uint32(b[50:54]),
	}, nil
}

// Put packs h into the first HeaderSize bytes of b. It panics if b is too short.
func (h Header) Put(b []byte) {
	_ = b[HeaderSize-1]
	le := binary.LittleEndian
	b[0], b[1] = h.Signature[0], h.Signature[1]
	le.PutUint32(b[2:6], h.FileSize)
	le.PutUint32(b[6:10], h.Reserved)
	le.PutUint32(b[10:14], h.PixelOffset)
	le.PutUint32(b[14:18], h.InfoSize)
	le.PutUint32(b[18:22], uint32(h.Width))
	le.PutUint32(b[22:26], uint32(h.Height))
	le.PutUint16(b[26:28], h.Planes)
	le.PutUint16(b[28:30], h.BitCount)
	le.PutUint32(b[30:34], h.Compression)
	le.PutUint32(b[34:38], h.ImageSize)
	le.PutUint32(b[38:42], h.XPelsPerMeter)
	le.PutUint32(b[42:46], h.YPelsPerMeter)
	le.PutUint32(b[46:50], h.ColorsUsed)
	le.PutUint32(b[50:54], h.ColorsImportant)
}

// Bytes returns h packed into a new HeaderSize-byte slice.
func (h Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	h.Put(b)
	return b
}
