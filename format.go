package dds

import "fmt"

// FormatFamily tags the variant held by a PixelFormat.
type FormatFamily uint8

// Format families.
const (
	FamilyNone FormatFamily = iota
	FamilyLegacy
	FamilyModern
)

// PixelFormat is either a legacy D3DFORMAT or a modern DXGI_FORMAT.
// The zero value is the unknown format.
type PixelFormat struct {
	family FormatFamily
	code   uint32
}

// Legacy wraps a D3DFORMAT.
func Legacy(f D3DFormat) PixelFormat {
	return PixelFormat{family: FamilyLegacy, code: uint32(f)}
}

// Modern wraps a DXGI_FORMAT.
func Modern(f DXGIFormat) PixelFormat {
	return PixelFormat{family: FamilyModern, code: uint32(f)}
}

// Family returns the variant tag.
func (p PixelFormat) Family() FormatFamily {
	return p.family
}

// D3D returns the legacy format when p holds one.
func (p PixelFormat) D3D() (D3DFormat, bool) {
	return D3DFormat(p.code), p.family == FamilyLegacy
}

// DXGI returns the modern format when p holds one.
func (p PixelFormat) DXGI() (DXGIFormat, bool) {
	return DXGIFormat(p.code), p.family == FamilyModern
}

// IsKnown reports whether the format resolves to a non-zero bits per pixel.
func (p PixelFormat) IsKnown() bool {
	return p.BitsPerPixel() > 0
}

// BitsPerPixel returns the storage cost per pixel; 0 means unknown.
func (p PixelFormat) BitsPerPixel() int {
	switch p.family {
	case FamilyLegacy:
		return D3DFormat(p.code).BitsPerPixel()
	case FamilyModern:
		return DXGIFormat(p.code).BitsPerPixel()
	default:
		return 0
	}
}

// HorizontalPixelsPerBlock returns the block width in pixels.
func (p PixelFormat) HorizontalPixelsPerBlock() int {
	w, _ := p.blockSize()
	return w
}

// VerticalPixelsPerBlock returns the block height in pixels.
func (p PixelFormat) VerticalPixelsPerBlock() int {
	_, h := p.blockSize()
	return h
}

func (p PixelFormat) blockSize() (int, int) {
	switch p.family {
	case FamilyLegacy:
		return D3DFormat(p.code).blockSize()
	case FamilyModern:
		return DXGIFormat(p.code).blockSize()
	default:
		return 1, 1
	}
}

// BitsPerBlock returns the storage cost of one block.
func (p PixelFormat) BitsPerBlock() int {
	w, h := p.blockSize()
	return p.BitsPerPixel() * w * h
}

// IsPacked reports 2x1 macropixel formats such as YUY2 or RGBG.
func (p PixelFormat) IsPacked() bool {
	switch p.family {
	case FamilyLegacy:
		return D3DFormat(p.code).isPacked()
	case FamilyModern:
		return DXGIFormat(p.code).isPacked()
	default:
		return false
	}
}

// IsBlockCompressed reports formats stored in blocks larger than one pixel.
// Packed macropixel formats such as YUY2 are excluded even though their
// HorizontalPixelsPerBlock is 2: they store whole pixel pairs, not
// compressed blocks.
func (p PixelFormat) IsBlockCompressed() bool {
	w, h := p.blockSize()
	return (w > 1 || h > 1) && !p.IsPacked()
}

// IsPlanar reports formats with separate chroma planes.
func (p PixelFormat) IsPlanar() bool {
	f, ok := p.DXGI()
	return ok && f.isPlanar()
}

// IsYUV reports video formats.
func (p PixelFormat) IsYUV() bool {
	switch p.family {
	case FamilyLegacy:
		return D3DFormat(p.code).isYUV()
	case FamilyModern:
		return DXGIFormat(p.code).isYUV()
	default:
		return false
	}
}

// IsSRGB reports sRGB encoded formats. Legacy formats carry no tag.
func (p PixelFormat) IsSRGB() bool {
	f, ok := p.DXGI()
	return ok && f.isSRGB()
}

func (p PixelFormat) String() string {
	switch p.family {
	case FamilyLegacy:
		if name, ok := d3dNames[D3DFormat(p.code)]; ok {
			return "D3DFMT_" + name
		}
		return D3DFormat(p.code).String()
	case FamilyModern:
		if name, ok := dxgiNames[DXGIFormat(p.code)]; ok {
			return "DXGI_FORMAT_" + name
		}
		return DXGIFormat(p.code).String()
	default:
		return "UNKNOWN"
	}
}

// CalculatePitch returns the byte size of one row of blocks.
func CalculatePitch(width int, format PixelFormat) (int, error) {
	bitsPerBlock := format.BitsPerBlock()
	if bitsPerBlock <= 0 {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedPixelFormat, format)
	}

	blocks := max(1, ceilDiv(width, format.HorizontalPixelsPerBlock()))
	if bitsPerBlock%8 == 0 {
		return mulInt(blocks, bitsPerBlock/8)
	}

	bitsPerRow, err := mulInt(blocks, bitsPerBlock)
	if err != nil {
		return 0, err
	}

	return ceilDiv(bitsPerRow, 8), nil
}

// CalculateSurfaceSize returns the byte size of one 2D surface.
func CalculateSurfaceSize(height, width int, format PixelFormat) (int, error) {
	pitch, err := CalculatePitch(width, format)
	if err != nil {
		return 0, err
	}

	rows := max(1, ceilDiv(height, format.VerticalPixelsPerBlock()))
	return mulInt(pitch, rows)
}
