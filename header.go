package dds

import "math/bits"

const (
	// Magic is the leading four bytes of every DDS stream.
	Magic = "DDS "

	// HeaderSize is the fixed size of the DDS header, without the magic.
	HeaderSize = 124
	// PixelFormatSize is the fixed size of the embedded pixel format.
	PixelFormatSize = 32
	// ExtendedHeaderSize is the size of the DX10 extended header.
	ExtendedHeaderSize = 20
)

// Header flags (dwFlags).
const (
	FlagCaps        uint32 = 0x1
	FlagHeight      uint32 = 0x2
	FlagWidth       uint32 = 0x4
	FlagPitch       uint32 = 0x8
	FlagPixelFormat uint32 = 0x1000
	FlagMipmapCount uint32 = 0x20000
	FlagLinearSize  uint32 = 0x80000
	FlagDepth       uint32 = 0x800000

	// FlagsTexture is the combination every texture header must carry in strict mode.
	FlagsTexture = FlagCaps | FlagHeight | FlagWidth | FlagPixelFormat
)

// Caps (dwCaps) and caps2 (dwCaps2) bits.
const (
	CapsComplex uint32 = 0x8
	CapsTexture uint32 = 0x1000
	CapsMipmap  uint32 = 0x400000

	Caps2Cubemap          uint32 = 0x200
	Caps2CubemapPositiveX uint32 = 0x400
	Caps2CubemapNegativeX uint32 = 0x800
	Caps2CubemapPositiveY uint32 = 0x1000
	Caps2CubemapNegativeY uint32 = 0x2000
	Caps2CubemapPositiveZ uint32 = 0x4000
	Caps2CubemapNegativeZ uint32 = 0x8000
	Caps2Volume           uint32 = 0x200000

	// Caps2CubemapAllFaces is the set of all six face bits.
	Caps2CubemapAllFaces = Caps2CubemapPositiveX | Caps2CubemapNegativeX |
		Caps2CubemapPositiveY | Caps2CubemapNegativeY |
		Caps2CubemapPositiveZ | Caps2CubemapNegativeZ
)

// Pixel format flags (ddspf.dwFlags).
const (
	PFAlphaPixels   uint32 = 0x1
	PFAlpha         uint32 = 0x2
	PFFourCC        uint32 = 0x4
	PFPaletteIndex8 uint32 = 0x20
	PFRGB           uint32 = 0x40
	PFYUV           uint32 = 0x200
	PFLuminance     uint32 = 0x20000
	PFBumpLuminance uint32 = 0x40000
	PFBumpDuDv      uint32 = 0x80000
)

// DX10 misc flags.
const (
	MiscTextureCube  uint32 = 0x4
	miscAlphaModeMsk uint32 = 0x7
)

// FourCCDX10 marks a pixel format followed by the DX10 extended header.
var FourCCDX10 = FourCC('D', 'X', '1', '0')

// FourCC packs four ASCII characters into a little-endian dword.
func FourCC(a, b, c, d byte) uint32 {
	return uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24
}

// DDPixelFormat is the 32-byte pixel format record embedded in the header.
type DDPixelFormat struct {
	Size        uint32
	Flags       uint32
	FourCC      uint32
	RGBBitCount uint32
	RBitMask    uint32
	GBitMask    uint32
	BBitMask    uint32
	ABitMask    uint32
}

// HasExtendedHeader reports whether the DX10 extended header follows.
func (pf DDPixelFormat) HasExtendedHeader() bool {
	return pf.FourCC == FourCCDX10
}

func (pf DDPixelFormat) hasFlag(f uint32) bool {
	return pf.Flags&f == f
}

func (pf DDPixelFormat) isBitmask(r, g, b, a uint32) bool {
	return pf.RBitMask == r && pf.GBitMask == g && pf.BBitMask == b && pf.ABitMask == a
}

// Header is the 124-byte DDS_HEADER in file order.
type Header struct {
	Size              uint32
	Flags             uint32
	Height            uint32
	Width             uint32
	PitchOrLinearSize uint32
	Depth             uint32
	MipMapCount       uint32
	Reserved1         [11]uint32
	PixelFormat       DDPixelFormat
	Caps              uint32
	Caps2             uint32
	Caps3             uint32
	Caps4             uint32
	Reserved2         uint32
}

// IsValid reports whether the header passes the structural checks.
// Strict mode additionally requires the texture flags and caps and
// 4-aligned dimensions for block compressed formats.
func (h Header) IsValid(strict bool) bool {
	return h.validate(strict) == nil
}

// IsUncompressed reports whether the pitch flag is set.
func (h Header) IsUncompressed() bool {
	return h.Flags&FlagPitch == FlagPitch
}

// IsCompressed reports whether the linear size flag is set.
func (h Header) IsCompressed() bool {
	return h.Flags&FlagLinearSize == FlagLinearSize
}

// HasDepth reports whether the depth flag is set.
func (h Header) HasDepth() bool {
	return h.Flags&FlagDepth == FlagDepth
}

// HasMipmaps reports whether both the mipmap count flag and the mipmap cap are set.
func (h Header) HasMipmaps() bool {
	return h.Flags&FlagMipmapCount == FlagMipmapCount && h.Caps&CapsMipmap == CapsMipmap
}

// IsCubemap reports whether caps2 marks a cubemap.
func (h Header) IsCubemap() bool {
	return h.Caps2&Caps2Cubemap == Caps2Cubemap
}

// IsVolumeTexture reports whether caps2 marks a volume texture.
func (h Header) IsVolumeTexture() bool {
	return h.Caps2&Caps2Volume == Caps2Volume
}

// IsFlatTexture reports a texture that is neither cubemap nor volume.
func (h Header) IsFlatTexture() bool {
	return !h.IsCubemap() && !h.IsVolumeTexture()
}

// CubemapFaces counts the face bits set in caps2.
func (h Header) CubemapFaces() int {
	return bits.OnesCount32(h.Caps2 & Caps2CubemapAllFaces)
}

// ResourceDimension is the D3D10 resource dimension of the DX10 header.
type ResourceDimension uint32

// Resource dimensions.
const (
	DimensionUnknown   ResourceDimension = 0
	DimensionBuffer    ResourceDimension = 1
	DimensionTexture1D ResourceDimension = 2
	DimensionTexture2D ResourceDimension = 3
	DimensionTexture3D ResourceDimension = 4
)

// IsTexture reports the 1D, 2D and 3D texture dimensions.
func (d ResourceDimension) IsTexture() bool {
	switch d {
	case DimensionTexture1D, DimensionTexture2D, DimensionTexture3D:
		return true
	default:
		return false
	}
}

// AlphaMode is stored in the low bits of the DX10 misc flags2.
type AlphaMode uint32

// Alpha modes.
const (
	AlphaModeUnknown       AlphaMode = 0
	AlphaModeStraight      AlphaMode = 1
	AlphaModePremultiplied AlphaMode = 2
	AlphaModeOpaque        AlphaMode = 3
	AlphaModeCustom        AlphaMode = 4
)

// ExtendedHeader is the 20-byte DDS_HEADER_DXT10.
type ExtendedHeader struct {
	DXGIFormat        DXGIFormat
	ResourceDimension ResourceDimension
	MiscFlag          uint32
	ArraySize         uint32
	MiscFlags2        uint32
}

// AlphaMode returns the alpha mode from misc flags2.
func (e ExtendedHeader) AlphaMode() AlphaMode {
	return AlphaMode(e.MiscFlags2 & miscAlphaModeMsk)
}

// IsAlphaPremultiplied reports a premultiplied alpha mode.
func (e ExtendedHeader) IsAlphaPremultiplied() bool {
	return e.AlphaMode() == AlphaModePremultiplied
}

// IsTextureCube reports the cube texture misc flag.
func (e ExtendedHeader) IsTextureCube() bool {
	return e.MiscFlag&MiscTextureCube == MiscTextureCube
}

// IsValid reports whether the extended header is consistent with h.
func (e ExtendedHeader) IsValid(h Header) bool {
	return e.validate(h) == nil
}
