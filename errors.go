package dds

import "errors"

var (
	// ErrEmptyInput indicates the source ended before a complete magic.
	ErrEmptyInput = errors.New("empty input")
	// ErrMalformedMagic indicates the stream does not start with "DDS ".
	ErrMalformedMagic = errors.New("invalid DDS magic")
	// ErrMalformedHeader indicates an invalid DDS header.
	ErrMalformedHeader = errors.New("invalid DDS header")
	// ErrMalformedExtendedHeader indicates an invalid DX10 header.
	ErrMalformedExtendedHeader = errors.New("invalid DDS DX10 header")
	// ErrUnsupportedPixelFormat indicates a pixel format that cannot be resolved or decoded.
	ErrUnsupportedPixelFormat = errors.New("unsupported pixel format")
	// ErrUnsupportedBlockCompression indicates a block compression without decoder.
	ErrUnsupportedBlockCompression = errors.New("unsupported block compression")
	// ErrTruncatedData indicates the source ended inside a structure or surface.
	ErrTruncatedData = errors.New("truncated data")
	// ErrTrailingData indicates bytes left after the last surface.
	ErrTrailingData = errors.New("trailing data")
	// ErrInvalidBitstream indicates an undecodable compressed block.
	ErrInvalidBitstream = errors.New("invalid bitstream")
	// ErrRead indicates a non-EOF failure of the byte source.
	ErrRead = errors.New("read failed")
	// ErrSizeOverflow indicates a size or dimension exceeds supported limits.
	ErrSizeOverflow = errors.New("size overflow")
)
