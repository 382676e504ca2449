package dds

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// surfaceGrowCap bounds the upfront allocation of one surface buffer so a
// forged header cannot reserve memory the stream never delivers.
const surfaceGrowCap = 1 << 20

// LoadOptions configures DDS loading.
type LoadOptions struct {
	// Strict requires the texture flags and caps and rejects block
	// compressed images with dimensions that are not multiples of 4.
	Strict bool
}

func (o *LoadOptions) strict() bool {
	return o != nil && o.Strict
}

// Load reads a complete DDS stream with default options.
func Load(r io.Reader) (*File, error) {
	return LoadWithOptions(r, nil)
}

// LoadWithOptions reads a complete DDS stream. Nil opts uses defaults.
// The stream must end exactly after the last surface.
func LoadWithOptions(r io.Reader, opts *LoadOptions) (*File, error) {
	or := &offsetReader{r: r}

	header, ext, err := readHeaders(or, opts.strict())
	if err != nil {
		return nil, err
	}

	f := &File{
		header:        header,
		ext:           ext,
		format:        DerivePixelFormat(header, ext),
		premultiplied: premultipliedAlpha(header, ext),
		layout:        headerLayout(header, ext),
	}
	if f.format.IsPlanar() {
		return nil, fmt.Errorf("%w: planar %s", ErrUnsupportedPixelFormat, f.format)
	}

	if err := f.readSurfaces(or); err != nil {
		return nil, err
	}

	// a reader may return (0, nil); ReadFull keeps reading until a byte or EOF
	var extra [1]byte
	n, err := io.ReadFull(or, extra[:])
	switch {
	case n > 0:
		return nil, fmt.Errorf("%w: at offset %d", ErrTrailingData, or.off-int64(n))
	case errors.Is(err, io.EOF):
		return f, nil
	default:
		return nil, fmt.Errorf("%w: after last surface at offset %d: %v", ErrRead, or.off, err)
	}
}

// LoadFile opens and loads a DDS file.
func LoadFile(path string, opts *LoadOptions) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrRead, path, err)
	}
	defer func() { _ = fh.Close() }()

	return LoadWithOptions(fh, opts)
}

// ReadHeaders reads the magic, the header and the optional DX10 header and
// validates them, leaving r at the first surface byte.
func ReadHeaders(r io.Reader, opts *LoadOptions) (Header, *ExtendedHeader, error) {
	return readHeaders(&offsetReader{r: r}, opts.strict())
}

func readHeaders(r *offsetReader, strict bool) (Header, *ExtendedHeader, error) {
	var magic [4]byte
	n, err := io.ReadFull(r, magic[:])
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Header{}, nil, fmt.Errorf("%w: got %d of %d magic bytes", ErrEmptyInput, n, len(magic))
		}
		return Header{}, nil, wrapReadErr(err, "magic", 0, n, len(magic))
	}
	if string(magic[:]) != Magic {
		return Header{}, nil, fmt.Errorf("%w: %q", ErrMalformedMagic, magic[:])
	}

	var buf [HeaderSize]byte
	if err := r.readFull(buf[:], "header"); err != nil {
		return Header{}, nil, err
	}

	var h Header
	if _, err := binary.Decode(buf[:], binary.LittleEndian, &h); err != nil {
		return Header{}, nil, fmt.Errorf("%w: %v", ErrMalformedHeader, err)
	}
	if err := h.validate(strict); err != nil {
		return Header{}, nil, fmt.Errorf("%w (offset 4)", err)
	}

	if !h.PixelFormat.HasExtendedHeader() {
		return h, nil, nil
	}

	var extBuf [ExtendedHeaderSize]byte
	if err := r.readFull(extBuf[:], "extended header"); err != nil {
		return Header{}, nil, err
	}

	ext := new(ExtendedHeader)
	if _, err := binary.Decode(extBuf[:], binary.LittleEndian, ext); err != nil {
		return Header{}, nil, fmt.Errorf("%w: %v", ErrMalformedExtendedHeader, err)
	}
	if err := ext.validate(h); err != nil {
		return Header{}, nil, fmt.Errorf("%w (offset %d)", err, 4+HeaderSize)
	}
	if strict {
		if err := checkBlockAlignment(h, Modern(ext.DXGIFormat)); err != nil {
			return Header{}, nil, err
		}
	}

	return h, ext, nil
}

// layout returns the surface counts of the texture.
func layout(h Header, ext *ExtendedHeader) (arraySize, faces, mipCount, depth int) {
	arraySize = 1
	if ext != nil && ext.ArraySize > 1 {
		arraySize = int(ext.ArraySize)
	}

	// a cubemap flag without face bits still stores one face
	faces = 1
	if h.IsCubemap() {
		faces = max(1, h.CubemapFaces())
	}

	mipCount = 1
	if h.HasMipmaps() {
		mipCount = max(1, int(h.MipMapCount))
	}

	depth = 1
	if h.IsVolumeTexture() {
		depth = max(1, int(h.Depth))
	}

	return arraySize, faces, mipCount, depth
}

// readSurfaces walks array slices, faces, mip levels and depth slices in
// file order. Each mip halves every dimension rounding up and the chain
// ends after the 1x1x1 level.
func (f *File) readSurfaces(r *offsetReader) error {
	h := f.header
	if _, err := intFromU32(h.Width); err != nil {
		return fmt.Errorf("%w: width=%d", err, h.Width)
	}
	if _, err := intFromU32(h.Height); err != nil {
		return fmt.Errorf("%w: height=%d", err, h.Height)
	}
	arraySize, faces, mipCount, depth0 := layout(h, f.ext)

	for a := range arraySize {
		for face := range faces {
			height, width, depth := max(1, int(h.Height)), max(1, int(h.Width)), depth0

			for level := range mipCount {
				size, err := CalculateSurfaceSize(height, width, f.format)
				if err != nil {
					return fmt.Errorf("%w: mip %d %dx%d", err, level, width, height)
				}

				for z := range depth {
					data, err := r.readSurface(size, a, face, level, z)
					if err != nil {
						return err
					}

					f.surfaces = append(f.surfaces, Surface{
						ArrayIndex:    a,
						FaceIndex:     face,
						MipLevel:      level,
						ZSlice:        z,
						Width:         width,
						Height:        height,
						format:        f.format,
						premultiplied: f.premultiplied,
						layout:        f.layout,
						data:          data,
					})
				}

				if height == 1 && width == 1 && depth == 1 {
					break
				}
				height, width, depth = ceilDiv(height, 2), ceilDiv(width, 2), ceilDiv(depth, 2)
			}
		}
	}

	return nil
}

// offsetReader counts consumed bytes for error context.
type offsetReader struct {
	r   io.Reader
	off int64
}

func (r *offsetReader) Read(p []byte) (int, error) {
	n, err := r.r.Read(p)
	r.off += int64(n)
	return n, err
}

func (r *offsetReader) readFull(buf []byte, field string) error {
	start := r.off
	n, err := io.ReadFull(r, buf)
	if err != nil {
		return wrapReadErr(err, field, start, n, len(buf))
	}

	return nil
}

func (r *offsetReader) readSurface(size, array, face, level, z int) ([]byte, error) {
	start := r.off

	var buf bytes.Buffer
	buf.Grow(min(size, surfaceGrowCap))
	n, err := io.CopyN(&buf, r, int64(size))
	if err != nil {
		field := fmt.Sprintf("surface array=%d face=%d mip=%d z=%d", array, face, level, z)
		return nil, wrapReadErr(err, field, start, int(n), size)
	}

	return buf.Bytes(), nil
}

func wrapReadErr(err error, field string, offset int64, got, want int) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %s: got %d of %d bytes at offset %d", ErrTruncatedData, field, got, want, offset)
	}

	return fmt.Errorf("%w: %s at offset %d: %v", ErrRead, field, offset, err)
}
