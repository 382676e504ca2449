package dds

// Legacy FourCC codes that have no D3DFORMAT of their own.
var (
	fourCCATI1 = FourCC('A', 'T', 'I', '1')
	fourCCATI2 = FourCC('A', 'T', 'I', '2')
	fourCCBC4U = FourCC('B', 'C', '4', 'U')
	fourCCBC4S = FourCC('B', 'C', '4', 'S')
	fourCCBC5U = FourCC('B', 'C', '5', 'U')
	fourCCBC5S = FourCC('B', 'C', '5', 'S')
)

// DeriveD3DFormat matches the pixel format masks and FourCC against the
// known legacy layouts. Writer quirks are kept as found in the wild:
// swapped 10:10:10:2 masks and luminance written with the RGB flag.
func DeriveD3DFormat(pf DDPixelFormat) D3DFormat {
	switch {
	case pf.hasFlag(PFRGB):
		return deriveD3DRGB(pf)

	case pf.hasFlag(PFLuminance):
		switch pf.RGBBitCount {
		case 16:
			if pf.isBitmask(0xffff, 0, 0, 0) {
				return D3DFormatL16
			}
			if pf.isBitmask(0x00ff, 0, 0, 0xff00) {
				return D3DFormatA8L8
			}
		case 8:
			if pf.isBitmask(0x0f, 0, 0, 0xf0) {
				return D3DFormatA4L4
			}
			if pf.isBitmask(0xff, 0, 0, 0) {
				return D3DFormatL8
			}
			// some writers store 8 as the bit count of A8L8
			if pf.isBitmask(0x00ff, 0, 0, 0xff00) {
				return D3DFormatA8L8
			}
		}

	case pf.hasFlag(PFAlpha):
		if pf.RGBBitCount == 8 {
			return D3DFormatA8
		}

	case pf.hasFlag(PFBumpDuDv):
		switch pf.RGBBitCount {
		case 32:
			if pf.isBitmask(0x000000ff, 0x0000ff00, 0x00ff0000, 0xff000000) {
				return D3DFormatQ8W8V8U8
			}
			if pf.isBitmask(0x0000ffff, 0xffff0000, 0, 0) {
				return D3DFormatV16U16
			}
			if pf.isBitmask(0x3ff00000, 0x000ffc00, 0x000003ff, 0xc0000000) {
				return D3DFormatA2W10V10U10
			}
		case 16:
			if pf.isBitmask(0x00ff, 0xff00, 0, 0) {
				return D3DFormatV8U8
			}
		}

	case pf.hasFlag(PFBumpLuminance):
		switch pf.RGBBitCount {
		case 32:
			if pf.isBitmask(0x000000ff, 0x0000ff00, 0x00ff0000, 0) {
				return D3DFormatX8L8V8U8
			}
		case 16:
			if pf.isBitmask(0x001f, 0x03e0, 0xfc00, 0) {
				return D3DFormatL6V5U5
			}
		}

	case pf.hasFlag(PFFourCC):
		return deriveD3DFourCC(pf.FourCC)
	}

	return D3DFormatUnknown
}

func deriveD3DRGB(pf DDPixelFormat) D3DFormat {
	switch pf.RGBBitCount {
	case 32:
		switch {
		case pf.isBitmask(0x00ff0000, 0x0000ff00, 0x000000ff, 0xff000000):
			return D3DFormatA8R8G8B8
		case pf.isBitmask(0x00ff0000, 0x0000ff00, 0x000000ff, 0):
			return D3DFormatX8R8G8B8
		case pf.isBitmask(0x000000ff, 0x0000ff00, 0x00ff0000, 0xff000000):
			return D3DFormatA8B8G8R8
		case pf.isBitmask(0x000000ff, 0x0000ff00, 0x00ff0000, 0):
			return D3DFormatX8B8G8R8
		// red and blue are swapped here by most writers, D3DX included
		case pf.isBitmask(0x000003ff, 0x000ffc00, 0x3ff00000, 0xc0000000):
			return D3DFormatA2R10G10B10
		case pf.isBitmask(0x3ff00000, 0x000ffc00, 0x000003ff, 0xc0000000):
			return D3DFormatA2B10G10R10
		case pf.isBitmask(0x0000ffff, 0xffff0000, 0, 0):
			return D3DFormatG16R16
		case pf.isBitmask(0xffffffff, 0, 0, 0):
			return D3DFormatR32F
		}

	case 24:
		if pf.isBitmask(0xff0000, 0x00ff00, 0x0000ff, 0) {
			return D3DFormatR8G8B8
		}

	case 16:
		switch {
		case pf.isBitmask(0x7c00, 0x03e0, 0x001f, 0x8000):
			return D3DFormatA1R5G5B5
		case pf.isBitmask(0x7c00, 0x03e0, 0x001f, 0):
			return D3DFormatX1R5G5B5
		case pf.isBitmask(0xf800, 0x07e0, 0x001f, 0):
			return D3DFormatR5G6B5
		case pf.isBitmask(0x0f00, 0x00f0, 0x000f, 0xf000):
			return D3DFormatA4R4G4B4
		case pf.isBitmask(0x0f00, 0x00f0, 0x000f, 0):
			return D3DFormatX4R4G4B4
		case pf.isBitmask(0x00e0, 0x001c, 0x0003, 0xff00):
			return D3DFormatA8R3G3B2
		// NVTT 1.x wrote luminance with the RGB flag
		case pf.isBitmask(0xffff, 0, 0, 0):
			return D3DFormatL16
		case pf.isBitmask(0x00ff, 0, 0, 0xff00):
			return D3DFormatA8L8
		}

	case 8:
		switch {
		case pf.isBitmask(0xe0, 0x1c, 0x03, 0):
			return D3DFormatR3G3B2
		// NVTT 1.x
		case pf.isBitmask(0xff, 0, 0, 0):
			return D3DFormatL8
		}
	}

	return D3DFormatUnknown
}

func deriveD3DFourCC(code uint32) D3DFormat {
	switch f := D3DFormat(code); f {
	case D3DFormatDXT1, D3DFormatDXT2, D3DFormatDXT3, D3DFormatDXT4, D3DFormatDXT5,
		D3DFormatR8G8B8G8, D3DFormatG8R8G8B8, D3DFormatUYVY, D3DFormatYUY2:
		return f

	// D3DFORMAT ordinals stored in the FourCC field
	case D3DFormatA16B16G16R16, D3DFormatQ16W16V16U16, D3DFormatR16F,
		D3DFormatG16R16F, D3DFormatA16B16G16R16F, D3DFormatR32F,
		D3DFormatG32R32F, D3DFormatA32B32G32R32F, D3DFormatCxV8U8:
		return f
	}

	return D3DFormatUnknown
}

// DeriveDXGIFormat returns the DXGI equivalent of a legacy pixel format,
// or DXGIFormatUnknown when none exists. DXT2 and DXT4 map to the BC2 and
// BC3 formats with premultiplied alpha.
func DeriveDXGIFormat(pf DDPixelFormat) (DXGIFormat, AlphaMode) {
	switch {
	case pf.hasFlag(PFRGB):
		return deriveDXGIRGB(pf), AlphaModeUnknown

	case pf.hasFlag(PFLuminance):
		switch pf.RGBBitCount {
		case 16:
			if pf.isBitmask(0xffff, 0, 0, 0) {
				return DXGIFormatR16UNorm, AlphaModeUnknown
			}
			if pf.isBitmask(0x00ff, 0, 0, 0xff00) {
				return DXGIFormatR8G8UNorm, AlphaModeUnknown
			}
		case 8:
			if pf.isBitmask(0xff, 0, 0, 0) {
				return DXGIFormatR8UNorm, AlphaModeUnknown
			}
			if pf.isBitmask(0x00ff, 0, 0, 0xff00) {
				return DXGIFormatR8G8UNorm, AlphaModeUnknown
			}
		}

	case pf.hasFlag(PFAlpha):
		if pf.RGBBitCount == 8 {
			return DXGIFormatA8UNorm, AlphaModeUnknown
		}

	case pf.hasFlag(PFBumpDuDv):
		switch pf.RGBBitCount {
		case 32:
			if pf.isBitmask(0x000000ff, 0x0000ff00, 0x00ff0000, 0xff000000) {
				return DXGIFormatR8G8B8A8SNorm, AlphaModeUnknown
			}
			if pf.isBitmask(0x0000ffff, 0xffff0000, 0, 0) {
				return DXGIFormatR16G16SNorm, AlphaModeUnknown
			}
		case 16:
			if pf.isBitmask(0x00ff, 0xff00, 0, 0) {
				return DXGIFormatR8G8SNorm, AlphaModeUnknown
			}
		}

	case pf.hasFlag(PFFourCC):
		return deriveDXGIFourCC(pf.FourCC)
	}

	return DXGIFormatUnknown, AlphaModeUnknown
}

func deriveDXGIRGB(pf DDPixelFormat) DXGIFormat {
	switch pf.RGBBitCount {
	case 32:
		switch {
		case pf.isBitmask(0x000000ff, 0x0000ff00, 0x00ff0000, 0xff000000):
			return DXGIFormatR8G8B8A8UNorm
		case pf.isBitmask(0x00ff0000, 0x0000ff00, 0x000000ff, 0xff000000):
			return DXGIFormatB8G8R8A8UNorm
		case pf.isBitmask(0x00ff0000, 0x0000ff00, 0x000000ff, 0):
			return DXGIFormatB8G8R8X8UNorm
		// swapped red and blue, see deriveD3DRGB
		case pf.isBitmask(0x3ff00000, 0x000ffc00, 0x000003ff, 0xc0000000):
			return DXGIFormatR10G10B10A2UNorm
		case pf.isBitmask(0x0000ffff, 0xffff0000, 0, 0):
			return DXGIFormatR16G16UNorm
		case pf.isBitmask(0xffffffff, 0, 0, 0):
			return DXGIFormatR32Float
		}

	case 16:
		switch {
		case pf.isBitmask(0x7c00, 0x03e0, 0x001f, 0x8000):
			return DXGIFormatB5G5R5A1UNorm
		case pf.isBitmask(0xf800, 0x07e0, 0x001f, 0):
			return DXGIFormatB5G6R5UNorm
		case pf.isBitmask(0x0f00, 0x00f0, 0x000f, 0xf000):
			return DXGIFormatB4G4R4A4UNorm
		case pf.isBitmask(0x00ff, 0, 0, 0xff00):
			return DXGIFormatR8G8UNorm
		case pf.isBitmask(0xffff, 0, 0, 0):
			return DXGIFormatR16UNorm
		}

	case 8:
		if pf.isBitmask(0xff, 0, 0, 0) {
			return DXGIFormatR8UNorm
		}
	}

	return DXGIFormatUnknown
}

func deriveDXGIFourCC(code uint32) (DXGIFormat, AlphaMode) {
	switch D3DFormat(code) {
	case D3DFormatDXT1:
		return DXGIFormatBC1UNorm, AlphaModeUnknown
	case D3DFormatDXT3:
		return DXGIFormatBC2UNorm, AlphaModeUnknown
	case D3DFormatDXT5:
		return DXGIFormatBC3UNorm, AlphaModeUnknown
	case D3DFormatDXT2:
		return DXGIFormatBC2UNorm, AlphaModePremultiplied
	case D3DFormatDXT4:
		return DXGIFormatBC3UNorm, AlphaModePremultiplied
	case D3DFormatR8G8B8G8:
		return DXGIFormatR8G8B8G8UNorm, AlphaModeUnknown
	case D3DFormatG8R8G8B8:
		return DXGIFormatG8R8G8B8UNorm, AlphaModeUnknown
	case D3DFormatYUY2:
		return DXGIFormatYUY2, AlphaModeUnknown

	case D3DFormatA16B16G16R16:
		return DXGIFormatR16G16B16A16UNorm, AlphaModeUnknown
	case D3DFormatQ16W16V16U16:
		return DXGIFormatR16G16B16A16SNorm, AlphaModeUnknown
	case D3DFormatR16F:
		return DXGIFormatR16Float, AlphaModeUnknown
	case D3DFormatG16R16F:
		return DXGIFormatR16G16Float, AlphaModeUnknown
	case D3DFormatA16B16G16R16F:
		return DXGIFormatR16G16B16A16Float, AlphaModeUnknown
	case D3DFormatR32F:
		return DXGIFormatR32Float, AlphaModeUnknown
	case D3DFormatG32R32F:
		return DXGIFormatR32G32Float, AlphaModeUnknown
	case D3DFormatA32B32G32R32F:
		return DXGIFormatR32G32B32A32Float, AlphaModeUnknown
	}

	switch code {
	case fourCCATI1, fourCCBC4U:
		return DXGIFormatBC4UNorm, AlphaModeUnknown
	case fourCCBC4S:
		return DXGIFormatBC4SNorm, AlphaModeUnknown
	case fourCCATI2, fourCCBC5U:
		return DXGIFormatBC5UNorm, AlphaModeUnknown
	case fourCCBC5S:
		return DXGIFormatBC5SNorm, AlphaModeUnknown
	}

	return DXGIFormatUnknown, AlphaModeUnknown
}

// DerivePixelFormat resolves the active format of a texture. The DX10
// header wins when present; otherwise the DXGI equivalent of the legacy
// pixel format is preferred over the plain D3DFORMAT.
func DerivePixelFormat(h Header, ext *ExtendedHeader) PixelFormat {
	if ext != nil {
		return Modern(ext.DXGIFormat)
	}

	if f, _ := DeriveDXGIFormat(h.PixelFormat); f != DXGIFormatUnknown {
		return Modern(f)
	}
	if f := DeriveD3DFormat(h.PixelFormat); f != D3DFormatUnknown {
		return Legacy(f)
	}

	return PixelFormat{}
}

// premultipliedAlpha reports whether the texture alpha is premultiplied.
func premultipliedAlpha(h Header, ext *ExtendedHeader) bool {
	if ext != nil {
		return ext.IsAlphaPremultiplied()
	}

	_, mode := DeriveDXGIFormat(h.PixelFormat)
	return mode == AlphaModePremultiplied
}
