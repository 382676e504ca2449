package dds

import "fmt"

// D3DFormat is a legacy Direct3D 9 surface format. Values below 256 are
// enum ordinals; the rest are FourCC codes.
type D3DFormat uint32

// Legacy formats.
const (
	D3DFormatUnknown D3DFormat = 0

	D3DFormatR8G8B8        D3DFormat = 20
	D3DFormatA8R8G8B8      D3DFormat = 21
	D3DFormatX8R8G8B8      D3DFormat = 22
	D3DFormatR5G6B5        D3DFormat = 23
	D3DFormatX1R5G5B5      D3DFormat = 24
	D3DFormatA1R5G5B5      D3DFormat = 25
	D3DFormatA4R4G4B4      D3DFormat = 26
	D3DFormatR3G3B2        D3DFormat = 27
	D3DFormatA8            D3DFormat = 28
	D3DFormatA8R3G3B2      D3DFormat = 29
	D3DFormatX4R4G4B4      D3DFormat = 30
	D3DFormatA2B10G10R10   D3DFormat = 31
	D3DFormatA8B8G8R8      D3DFormat = 32
	D3DFormatX8B8G8R8      D3DFormat = 33
	D3DFormatG16R16        D3DFormat = 34
	D3DFormatA2R10G10B10   D3DFormat = 35
	D3DFormatA16B16G16R16  D3DFormat = 36
	D3DFormatA8P8          D3DFormat = 40
	D3DFormatP8            D3DFormat = 41
	D3DFormatL8            D3DFormat = 50
	D3DFormatA8L8          D3DFormat = 51
	D3DFormatA4L4          D3DFormat = 52
	D3DFormatV8U8          D3DFormat = 60
	D3DFormatL6V5U5        D3DFormat = 61
	D3DFormatX8L8V8U8      D3DFormat = 62
	D3DFormatQ8W8V8U8      D3DFormat = 63
	D3DFormatV16U16        D3DFormat = 64
	D3DFormatA2W10V10U10   D3DFormat = 67
	D3DFormatD16Lockable   D3DFormat = 70
	D3DFormatD32           D3DFormat = 71
	D3DFormatD15S1         D3DFormat = 73
	D3DFormatD24S8         D3DFormat = 75
	D3DFormatD24X8         D3DFormat = 77
	D3DFormatD24X4S4       D3DFormat = 79
	D3DFormatD16           D3DFormat = 80
	D3DFormatL16           D3DFormat = 81
	D3DFormatD32FLockable  D3DFormat = 82
	D3DFormatD24FS8        D3DFormat = 83
	D3DFormatVertexData    D3DFormat = 100
	D3DFormatIndex16       D3DFormat = 101
	D3DFormatIndex32       D3DFormat = 102
	D3DFormatQ16W16V16U16  D3DFormat = 110
	D3DFormatR16F          D3DFormat = 111
	D3DFormatG16R16F       D3DFormat = 112
	D3DFormatA16B16G16R16F D3DFormat = 113
	D3DFormatR32F          D3DFormat = 114
	D3DFormatG32R32F       D3DFormat = 115
	D3DFormatA32B32G32R32F D3DFormat = 116
	D3DFormatCxV8U8        D3DFormat = 117
	D3DFormatA1            D3DFormat = 118
	// D3DFormatA2B10G10R10XRBias is the extended range 10:10:10:2 format.
	D3DFormatA2B10G10R10XRBias D3DFormat = 119
	D3DFormatBinaryBuffer      D3DFormat = 199
)

// FourCC coded legacy formats.
var (
	D3DFormatDXT1        = D3DFormat(FourCC('D', 'X', 'T', '1'))
	D3DFormatDXT2        = D3DFormat(FourCC('D', 'X', 'T', '2'))
	D3DFormatDXT3        = D3DFormat(FourCC('D', 'X', 'T', '3'))
	D3DFormatDXT4        = D3DFormat(FourCC('D', 'X', 'T', '4'))
	D3DFormatDXT5        = D3DFormat(FourCC('D', 'X', 'T', '5'))
	D3DFormatR8G8B8G8    = D3DFormat(FourCC('R', 'G', 'B', 'G'))
	D3DFormatG8R8G8B8    = D3DFormat(FourCC('G', 'R', 'G', 'B'))
	D3DFormatUYVY        = D3DFormat(FourCC('U', 'Y', 'V', 'Y'))
	D3DFormatYUY2        = D3DFormat(FourCC('Y', 'U', 'Y', '2'))
	D3DFormatMulti2ARGB8 = D3DFormat(FourCC('M', 'E', 'T', '1'))
)

var d3dNames = map[D3DFormat]string{
	D3DFormatUnknown:           "UNKNOWN",
	D3DFormatR8G8B8:            "R8G8B8",
	D3DFormatA8R8G8B8:          "A8R8G8B8",
	D3DFormatX8R8G8B8:          "X8R8G8B8",
	D3DFormatR5G6B5:            "R5G6B5",
	D3DFormatX1R5G5B5:          "X1R5G5B5",
	D3DFormatA1R5G5B5:          "A1R5G5B5",
	D3DFormatA4R4G4B4:          "A4R4G4B4",
	D3DFormatR3G3B2:            "R3G3B2",
	D3DFormatA8:                "A8",
	D3DFormatA8R3G3B2:          "A8R3G3B2",
	D3DFormatX4R4G4B4:          "X4R4G4B4",
	D3DFormatA2B10G10R10:       "A2B10G10R10",
	D3DFormatA8B8G8R8:          "A8B8G8R8",
	D3DFormatX8B8G8R8:          "X8B8G8R8",
	D3DFormatG16R16:            "G16R16",
	D3DFormatA2R10G10B10:       "A2R10G10B10",
	D3DFormatA16B16G16R16:      "A16B16G16R16",
	D3DFormatA8P8:              "A8P8",
	D3DFormatP8:                "P8",
	D3DFormatL8:                "L8",
	D3DFormatA8L8:              "A8L8",
	D3DFormatA4L4:              "A4L4",
	D3DFormatV8U8:              "V8U8",
	D3DFormatL6V5U5:            "L6V5U5",
	D3DFormatX8L8V8U8:          "X8L8V8U8",
	D3DFormatQ8W8V8U8:          "Q8W8V8U8",
	D3DFormatV16U16:            "V16U16",
	D3DFormatA2W10V10U10:       "A2W10V10U10",
	D3DFormatD16Lockable:       "D16_LOCKABLE",
	D3DFormatD32:               "D32",
	D3DFormatD15S1:             "D15S1",
	D3DFormatD24S8:             "D24S8",
	D3DFormatD24X8:             "D24X8",
	D3DFormatD24X4S4:           "D24X4S4",
	D3DFormatD16:               "D16",
	D3DFormatL16:               "L16",
	D3DFormatD32FLockable:      "D32F_LOCKABLE",
	D3DFormatD24FS8:            "D24FS8",
	D3DFormatVertexData:        "VERTEXDATA",
	D3DFormatIndex16:           "INDEX16",
	D3DFormatIndex32:           "INDEX32",
	D3DFormatQ16W16V16U16:      "Q16W16V16U16",
	D3DFormatR16F:              "R16F",
	D3DFormatG16R16F:           "G16R16F",
	D3DFormatA16B16G16R16F:     "A16B16G16R16F",
	D3DFormatR32F:              "R32F",
	D3DFormatG32R32F:           "G32R32F",
	D3DFormatA32B32G32R32F:     "A32B32G32R32F",
	D3DFormatCxV8U8:            "CxV8U8",
	D3DFormatA1:                "A1",
	D3DFormatA2B10G10R10XRBias: "A2B10G10R10_XR_BIAS",
	D3DFormatBinaryBuffer:      "BINARYBUFFER",
	D3DFormatDXT1:              "DXT1",
	D3DFormatDXT2:              "DXT2",
	D3DFormatDXT3:              "DXT3",
	D3DFormatDXT4:              "DXT4",
	D3DFormatDXT5:              "DXT5",
	D3DFormatR8G8B8G8:          "R8G8_B8G8",
	D3DFormatG8R8G8B8:          "G8R8_G8B8",
	D3DFormatUYVY:              "UYVY",
	D3DFormatYUY2:              "YUY2",
	D3DFormatMulti2ARGB8:       "MULTI2_ARGB8",
}

func (f D3DFormat) String() string {
	if name, ok := d3dNames[f]; ok {
		return name
	}
	if f > 0xff {
		return fmt.Sprintf("D3DFMT(%s)", fourCCString(uint32(f)))
	}

	return fmt.Sprintf("D3DFMT(%d)", uint32(f))
}

// BitsPerPixel returns the storage bits per pixel; 0 for unknown formats.
func (f D3DFormat) BitsPerPixel() int {
	switch f {
	case D3DFormatA32B32G32R32F:
		return 128
	case D3DFormatA16B16G16R16, D3DFormatQ16W16V16U16, D3DFormatA16B16G16R16F, D3DFormatG32R32F:
		return 64
	case D3DFormatA8R8G8B8, D3DFormatX8R8G8B8, D3DFormatA2B10G10R10, D3DFormatA8B8G8R8,
		D3DFormatX8B8G8R8, D3DFormatG16R16, D3DFormatA2R10G10B10, D3DFormatQ8W8V8U8,
		D3DFormatV16U16, D3DFormatX8L8V8U8, D3DFormatA2W10V10U10, D3DFormatD32,
		D3DFormatD24S8, D3DFormatD24X8, D3DFormatD24X4S4, D3DFormatD32FLockable,
		D3DFormatD24FS8, D3DFormatIndex32, D3DFormatG16R16F, D3DFormatR32F,
		D3DFormatA2B10G10R10XRBias:
		return 32
	case D3DFormatR8G8B8:
		return 24
	case D3DFormatA4R4G4B4, D3DFormatX4R4G4B4, D3DFormatR5G6B5, D3DFormatL16,
		D3DFormatA8L8, D3DFormatX1R5G5B5, D3DFormatA1R5G5B5, D3DFormatA8R3G3B2,
		D3DFormatV8U8, D3DFormatCxV8U8, D3DFormatL6V5U5, D3DFormatD16,
		D3DFormatD16Lockable, D3DFormatD15S1, D3DFormatIndex16, D3DFormatR16F,
		D3DFormatA8P8, D3DFormatR8G8B8G8, D3DFormatG8R8G8B8, D3DFormatUYVY,
		D3DFormatYUY2:
		return 16
	case D3DFormatR3G3B2, D3DFormatA8, D3DFormatL8, D3DFormatA4L4, D3DFormatP8,
		D3DFormatDXT2, D3DFormatDXT3, D3DFormatDXT4, D3DFormatDXT5:
		return 8
	case D3DFormatDXT1:
		return 4
	case D3DFormatA1:
		return 1
	default:
		return 0
	}
}

func (f D3DFormat) blockSize() (int, int) {
	switch f {
	case D3DFormatDXT1, D3DFormatDXT2, D3DFormatDXT3, D3DFormatDXT4, D3DFormatDXT5:
		return 4, 4
	case D3DFormatR8G8B8G8, D3DFormatG8R8G8B8, D3DFormatUYVY, D3DFormatYUY2:
		return 2, 1
	default:
		return 1, 1
	}
}

func (f D3DFormat) isPacked() bool {
	switch f {
	case D3DFormatR8G8B8G8, D3DFormatG8R8G8B8, D3DFormatUYVY, D3DFormatYUY2:
		return true
	default:
		return false
	}
}

func (f D3DFormat) isYUV() bool {
	return f == D3DFormatUYVY || f == D3DFormatYUY2
}

func fourCCString(v uint32) string {
	b := []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
	for i, c := range b {
		if c < 0x20 || c > 0x7e {
			b[i] = '.'
		}
	}

	return string(b)
}
