package dds

import "fmt"

// DXGIFormat is a DXGI_FORMAT ordinal as stored in the DX10 extended header.
type DXGIFormat uint32

// DXGI formats.
const (
	DXGIFormatUnknown                DXGIFormat = 0
	DXGIFormatR32G32B32A32Typeless   DXGIFormat = 1
	DXGIFormatR32G32B32A32Float      DXGIFormat = 2
	DXGIFormatR32G32B32A32UInt       DXGIFormat = 3
	DXGIFormatR32G32B32A32SInt       DXGIFormat = 4
	DXGIFormatR32G32B32Typeless      DXGIFormat = 5
	DXGIFormatR32G32B32Float         DXGIFormat = 6
	DXGIFormatR32G32B32UInt          DXGIFormat = 7
	DXGIFormatR32G32B32SInt          DXGIFormat = 8
	DXGIFormatR16G16B16A16Typeless   DXGIFormat = 9
	DXGIFormatR16G16B16A16Float      DXGIFormat = 10
	DXGIFormatR16G16B16A16UNorm      DXGIFormat = 11
	DXGIFormatR16G16B16A16UInt       DXGIFormat = 12
	DXGIFormatR16G16B16A16SNorm      DXGIFormat = 13
	DXGIFormatR16G16B16A16SInt       DXGIFormat = 14
	DXGIFormatR32G32Typeless         DXGIFormat = 15
	DXGIFormatR32G32Float            DXGIFormat = 16
	DXGIFormatR32G32UInt             DXGIFormat = 17
	DXGIFormatR32G32SInt             DXGIFormat = 18
	DXGIFormatR32G8X24Typeless       DXGIFormat = 19
	DXGIFormatD32FloatS8X24UInt      DXGIFormat = 20
	DXGIFormatR32FloatX8X24Typeless  DXGIFormat = 21
	DXGIFormatX32TypelessG8X24UInt   DXGIFormat = 22
	DXGIFormatR10G10B10A2Typeless    DXGIFormat = 23
	DXGIFormatR10G10B10A2UNorm       DXGIFormat = 24
	DXGIFormatR10G10B10A2UInt        DXGIFormat = 25
	DXGIFormatR11G11B10Float         DXGIFormat = 26
	DXGIFormatR8G8B8A8Typeless       DXGIFormat = 27
	DXGIFormatR8G8B8A8UNorm          DXGIFormat = 28
	DXGIFormatR8G8B8A8UNormSRGB      DXGIFormat = 29
	DXGIFormatR8G8B8A8UInt           DXGIFormat = 30
	DXGIFormatR8G8B8A8SNorm          DXGIFormat = 31
	DXGIFormatR8G8B8A8SInt           DXGIFormat = 32
	DXGIFormatR16G16Typeless         DXGIFormat = 33
	DXGIFormatR16G16Float            DXGIFormat = 34
	DXGIFormatR16G16UNorm            DXGIFormat = 35
	DXGIFormatR16G16UInt             DXGIFormat = 36
	DXGIFormatR16G16SNorm            DXGIFormat = 37
	DXGIFormatR16G16SInt             DXGIFormat = 38
	DXGIFormatR32Typeless            DXGIFormat = 39
	DXGIFormatD32Float               DXGIFormat = 40
	DXGIFormatR32Float               DXGIFormat = 41
	DXGIFormatR32UInt                DXGIFormat = 42
	DXGIFormatR32SInt                DXGIFormat = 43
	DXGIFormatR24G8Typeless          DXGIFormat = 44
	DXGIFormatD24UNormS8UInt         DXGIFormat = 45
	DXGIFormatR24UNormX8Typeless     DXGIFormat = 46
	DXGIFormatX24TypelessG8UInt      DXGIFormat = 47
	DXGIFormatR8G8Typeless           DXGIFormat = 48
	DXGIFormatR8G8UNorm              DXGIFormat = 49
	DXGIFormatR8G8UInt               DXGIFormat = 50
	DXGIFormatR8G8SNorm              DXGIFormat = 51
	DXGIFormatR8G8SInt               DXGIFormat = 52
	DXGIFormatR16Typeless            DXGIFormat = 53
	DXGIFormatR16Float               DXGIFormat = 54
	DXGIFormatD16UNorm               DXGIFormat = 55
	DXGIFormatR16UNorm               DXGIFormat = 56
	DXGIFormatR16UInt                DXGIFormat = 57
	DXGIFormatR16SNorm               DXGIFormat = 58
	DXGIFormatR16SInt                DXGIFormat = 59
	DXGIFormatR8Typeless             DXGIFormat = 60
	DXGIFormatR8UNorm                DXGIFormat = 61
	DXGIFormatR8UInt                 DXGIFormat = 62
	DXGIFormatR8SNorm                DXGIFormat = 63
	DXGIFormatR8SInt                 DXGIFormat = 64
	DXGIFormatA8UNorm                DXGIFormat = 65
	DXGIFormatR1UNorm                DXGIFormat = 66
	DXGIFormatR9G9B9E5SharedExp      DXGIFormat = 67
	DXGIFormatR8G8B8G8UNorm          DXGIFormat = 68
	DXGIFormatG8R8G8B8UNorm          DXGIFormat = 69
	DXGIFormatBC1Typeless            DXGIFormat = 70
	DXGIFormatBC1UNorm               DXGIFormat = 71
	DXGIFormatBC1UNormSRGB           DXGIFormat = 72
	DXGIFormatBC2Typeless            DXGIFormat = 73
	DXGIFormatBC2UNorm               DXGIFormat = 74
	DXGIFormatBC2UNormSRGB           DXGIFormat = 75
	DXGIFormatBC3Typeless            DXGIFormat = 76
	DXGIFormatBC3UNorm               DXGIFormat = 77
	DXGIFormatBC3UNormSRGB           DXGIFormat = 78
	DXGIFormatBC4Typeless            DXGIFormat = 79
	DXGIFormatBC4UNorm               DXGIFormat = 80
	DXGIFormatBC4SNorm               DXGIFormat = 81
	DXGIFormatBC5Typeless            DXGIFormat = 82
	DXGIFormatBC5UNorm               DXGIFormat = 83
	DXGIFormatBC5SNorm               DXGIFormat = 84
	DXGIFormatB5G6R5UNorm            DXGIFormat = 85
	DXGIFormatB5G5R5A1UNorm          DXGIFormat = 86
	DXGIFormatB8G8R8A8UNorm          DXGIFormat = 87
	DXGIFormatB8G8R8X8UNorm          DXGIFormat = 88
	DXGIFormatR10G10B10XRBiasA2UNorm DXGIFormat = 89
	DXGIFormatB8G8R8A8Typeless       DXGIFormat = 90
	DXGIFormatB8G8R8A8UNormSRGB      DXGIFormat = 91
	DXGIFormatB8G8R8X8Typeless       DXGIFormat = 92
	DXGIFormatB8G8R8X8UNormSRGB      DXGIFormat = 93
	DXGIFormatBC6HTypeless           DXGIFormat = 94
	DXGIFormatBC6HUF16               DXGIFormat = 95
	DXGIFormatBC6HSF16               DXGIFormat = 96
	DXGIFormatBC7Typeless            DXGIFormat = 97
	DXGIFormatBC7UNorm               DXGIFormat = 98
	DXGIFormatBC7UNormSRGB           DXGIFormat = 99
	DXGIFormatAYUV                   DXGIFormat = 100
	DXGIFormatY410                   DXGIFormat = 101
	DXGIFormatY416                   DXGIFormat = 102
	DXGIFormatNV12                   DXGIFormat = 103
	DXGIFormatP010                   DXGIFormat = 104
	DXGIFormatP016                   DXGIFormat = 105
	DXGIFormatOpaque420              DXGIFormat = 106
	DXGIFormatYUY2                   DXGIFormat = 107
	DXGIFormatY210                   DXGIFormat = 108
	DXGIFormatY216                   DXGIFormat = 109
	DXGIFormatNV11                   DXGIFormat = 110
	DXGIFormatAI44                   DXGIFormat = 111
	DXGIFormatIA44                   DXGIFormat = 112
	DXGIFormatP8                     DXGIFormat = 113
	DXGIFormatA8P8                   DXGIFormat = 114
	DXGIFormatB4G4R4A4UNorm          DXGIFormat = 115
	DXGIFormatP208                   DXGIFormat = 130
	DXGIFormatV208                   DXGIFormat = 131
	DXGIFormatV408                   DXGIFormat = 132
)

var dxgiNames = map[DXGIFormat]string{
	DXGIFormatUnknown:                "UNKNOWN",
	DXGIFormatR32G32B32A32Typeless:   "R32G32B32A32_TYPELESS",
	DXGIFormatR32G32B32A32Float:      "R32G32B32A32_FLOAT",
	DXGIFormatR32G32B32A32UInt:       "R32G32B32A32_UINT",
	DXGIFormatR32G32B32A32SInt:       "R32G32B32A32_SINT",
	DXGIFormatR32G32B32Typeless:      "R32G32B32_TYPELESS",
	DXGIFormatR32G32B32Float:         "R32G32B32_FLOAT",
	DXGIFormatR32G32B32UInt:          "R32G32B32_UINT",
	DXGIFormatR32G32B32SInt:          "R32G32B32_SINT",
	DXGIFormatR16G16B16A16Typeless:   "R16G16B16A16_TYPELESS",
	DXGIFormatR16G16B16A16Float:      "R16G16B16A16_FLOAT",
	DXGIFormatR16G16B16A16UNorm:      "R16G16B16A16_UNORM",
	DXGIFormatR16G16B16A16UInt:       "R16G16B16A16_UINT",
	DXGIFormatR16G16B16A16SNorm:      "R16G16B16A16_SNORM",
	DXGIFormatR16G16B16A16SInt:       "R16G16B16A16_SINT",
	DXGIFormatR32G32Typeless:         "R32G32_TYPELESS",
	DXGIFormatR32G32Float:            "R32G32_FLOAT",
	DXGIFormatR32G32UInt:             "R32G32_UINT",
	DXGIFormatR32G32SInt:             "R32G32_SINT",
	DXGIFormatR32G8X24Typeless:       "R32G8X24_TYPELESS",
	DXGIFormatD32FloatS8X24UInt:      "D32_FLOAT_S8X24_UINT",
	DXGIFormatR32FloatX8X24Typeless:  "R32_FLOAT_X8X24_TYPELESS",
	DXGIFormatX32TypelessG8X24UInt:   "X32_TYPELESS_G8X24_UINT",
	DXGIFormatR10G10B10A2Typeless:    "R10G10B10A2_TYPELESS",
	DXGIFormatR10G10B10A2UNorm:       "R10G10B10A2_UNORM",
	DXGIFormatR10G10B10A2UInt:        "R10G10B10A2_UINT",
	DXGIFormatR11G11B10Float:         "R11G11B10_FLOAT",
	DXGIFormatR8G8B8A8Typeless:       "R8G8B8A8_TYPELESS",
	DXGIFormatR8G8B8A8UNorm:          "R8G8B8A8_UNORM",
	DXGIFormatR8G8B8A8UNormSRGB:      "R8G8B8A8_UNORM_SRGB",
	DXGIFormatR8G8B8A8UInt:           "R8G8B8A8_UINT",
	DXGIFormatR8G8B8A8SNorm:          "R8G8B8A8_SNORM",
	DXGIFormatR8G8B8A8SInt:           "R8G8B8A8_SINT",
	DXGIFormatR16G16Typeless:         "R16G16_TYPELESS",
	DXGIFormatR16G16Float:            "R16G16_FLOAT",
	DXGIFormatR16G16UNorm:            "R16G16_UNORM",
	DXGIFormatR16G16UInt:             "R16G16_UINT",
	DXGIFormatR16G16SNorm:            "R16G16_SNORM",
	DXGIFormatR16G16SInt:             "R16G16_SINT",
	DXGIFormatR32Typeless:            "R32_TYPELESS",
	DXGIFormatD32Float:               "D32_FLOAT",
	DXGIFormatR32Float:               "R32_FLOAT",
	DXGIFormatR32UInt:                "R32_UINT",
	DXGIFormatR32SInt:                "R32_SINT",
	DXGIFormatR24G8Typeless:          "R24G8_TYPELESS",
	DXGIFormatD24UNormS8UInt:         "D24_UNORM_S8_UINT",
	DXGIFormatR24UNormX8Typeless:     "R24_UNORM_X8_TYPELESS",
	DXGIFormatX24TypelessG8UInt:      "X24_TYPELESS_G8_UINT",
	DXGIFormatR8G8Typeless:           "R8G8_TYPELESS",
	DXGIFormatR8G8UNorm:              "R8G8_UNORM",
	DXGIFormatR8G8UInt:               "R8G8_UINT",
	DXGIFormatR8G8SNorm:              "R8G8_SNORM",
	DXGIFormatR8G8SInt:               "R8G8_SINT",
	DXGIFormatR16Typeless:            "R16_TYPELESS",
	DXGIFormatR16Float:               "R16_FLOAT",
	DXGIFormatD16UNorm:               "D16_UNORM",
	DXGIFormatR16UNorm:               "R16_UNORM",
	DXGIFormatR16UInt:                "R16_UINT",
	DXGIFormatR16SNorm:               "R16_SNORM",
	DXGIFormatR16SInt:                "R16_SINT",
	DXGIFormatR8Typeless:             "R8_TYPELESS",
	DXGIFormatR8UNorm:                "R8_UNORM",
	DXGIFormatR8UInt:                 "R8_UINT",
	DXGIFormatR8SNorm:                "R8_SNORM",
	DXGIFormatR8SInt:                 "R8_SINT",
	DXGIFormatA8UNorm:                "A8_UNORM",
	DXGIFormatR1UNorm:                "R1_UNORM",
	DXGIFormatR9G9B9E5SharedExp:      "R9G9B9E5_SHAREDEXP",
	DXGIFormatR8G8B8G8UNorm:          "R8G8_B8G8_UNORM",
	DXGIFormatG8R8G8B8UNorm:          "G8R8_G8B8_UNORM",
	DXGIFormatBC1Typeless:            "BC1_TYPELESS",
	DXGIFormatBC1UNorm:               "BC1_UNORM",
	DXGIFormatBC1UNormSRGB:           "BC1_UNORM_SRGB",
	DXGIFormatBC2Typeless:            "BC2_TYPELESS",
	DXGIFormatBC2UNorm:               "BC2_UNORM",
	DXGIFormatBC2UNormSRGB:           "BC2_UNORM_SRGB",
	DXGIFormatBC3Typeless:            "BC3_TYPELESS",
	DXGIFormatBC3UNorm:               "BC3_UNORM",
	DXGIFormatBC3UNormSRGB:           "BC3_UNORM_SRGB",
	DXGIFormatBC4Typeless:            "BC4_TYPELESS",
	DXGIFormatBC4UNorm:               "BC4_UNORM",
	DXGIFormatBC4SNorm:               "BC4_SNORM",
	DXGIFormatBC5Typeless:            "BC5_TYPELESS",
	DXGIFormatBC5UNorm:               "BC5_UNORM",
	DXGIFormatBC5SNorm:               "BC5_SNORM",
	DXGIFormatB5G6R5UNorm:            "B5G6R5_UNORM",
	DXGIFormatB5G5R5A1UNorm:          "B5G5R5A1_UNORM",
	DXGIFormatB8G8R8A8UNorm:          "B8G8R8A8_UNORM",
	DXGIFormatB8G8R8X8UNorm:          "B8G8R8X8_UNORM",
	DXGIFormatR10G10B10XRBiasA2UNorm: "R10G10B10_XR_BIAS_A2_UNORM",
	DXGIFormatB8G8R8A8Typeless:       "B8G8R8A8_TYPELESS",
	DXGIFormatB8G8R8A8UNormSRGB:      "B8G8R8A8_UNORM_SRGB",
	DXGIFormatB8G8R8X8Typeless:       "B8G8R8X8_TYPELESS",
	DXGIFormatB8G8R8X8UNormSRGB:      "B8G8R8X8_UNORM_SRGB",
	DXGIFormatBC6HTypeless:           "BC6H_TYPELESS",
	DXGIFormatBC6HUF16:               "BC6H_UF16",
	DXGIFormatBC6HSF16:               "BC6H_SF16",
	DXGIFormatBC7Typeless:            "BC7_TYPELESS",
	DXGIFormatBC7UNorm:               "BC7_UNORM",
	DXGIFormatBC7UNormSRGB:           "BC7_UNORM_SRGB",
	DXGIFormatAYUV:                   "AYUV",
	DXGIFormatY410:                   "Y410",
	DXGIFormatY416:                   "Y416",
	DXGIFormatNV12:                   "NV12",
	DXGIFormatP010:                   "P010",
	DXGIFormatP016:                   "P016",
	DXGIFormatOpaque420:              "420_OPAQUE",
	DXGIFormatYUY2:                   "YUY2",
	DXGIFormatY210:                   "Y210",
	DXGIFormatY216:                   "Y216",
	DXGIFormatNV11:                   "NV11",
	DXGIFormatAI44:                   "AI44",
	DXGIFormatIA44:                   "IA44",
	DXGIFormatP8:                     "P8",
	DXGIFormatA8P8:                   "A8P8",
	DXGIFormatB4G4R4A4UNorm:          "B4G4R4A4_UNORM",
	DXGIFormatP208:                   "P208",
	DXGIFormatV208:                   "V208",
	DXGIFormatV408:                   "V408",
}
func (f DXGIFormat) String() string {
	if name, ok := dxgiNames[f]; ok {
		return name
	}

	return fmt.Sprintf("DXGI_FORMAT(%d)", uint32(f))
}

// IsKnown reports whether f is a defined DXGI_FORMAT ordinal.
func (f DXGIFormat) IsKnown() bool {
	_, ok := dxgiNames[f]
	return ok
}

// BitsPerPixel returns the storage bits per pixel; 0 for unknown formats.
// Packed 4:2:2 formats report the effective per-pixel cost of one pair.
func (f DXGIFormat) BitsPerPixel() int {
	switch f {
	case DXGIFormatR32G32B32A32Typeless, DXGIFormatR32G32B32A32Float,
		DXGIFormatR32G32B32A32UInt, DXGIFormatR32G32B32A32SInt:
		return 128

	case DXGIFormatR32G32B32Typeless, DXGIFormatR32G32B32Float,
		DXGIFormatR32G32B32UInt, DXGIFormatR32G32B32SInt:
		return 96

	case DXGIFormatR16G16B16A16Typeless, DXGIFormatR16G16B16A16Float,
		DXGIFormatR16G16B16A16UNorm, DXGIFormatR16G16B16A16UInt,
		DXGIFormatR16G16B16A16SNorm, DXGIFormatR16G16B16A16SInt,
		DXGIFormatR32G32Typeless, DXGIFormatR32G32Float,
		DXGIFormatR32G32UInt, DXGIFormatR32G32SInt,
		DXGIFormatR32G8X24Typeless, DXGIFormatD32FloatS8X24UInt,
		DXGIFormatR32FloatX8X24Typeless, DXGIFormatX32TypelessG8X24UInt,
		DXGIFormatY416:
		return 64

	case DXGIFormatR10G10B10A2Typeless, DXGIFormatR10G10B10A2UNorm,
		DXGIFormatR10G10B10A2UInt, DXGIFormatR11G11B10Float,
		DXGIFormatR8G8B8A8Typeless, DXGIFormatR8G8B8A8UNorm,
		DXGIFormatR8G8B8A8UNormSRGB, DXGIFormatR8G8B8A8UInt,
		DXGIFormatR8G8B8A8SNorm, DXGIFormatR8G8B8A8SInt,
		DXGIFormatR16G16Typeless, DXGIFormatR16G16Float,
		DXGIFormatR16G16UNorm, DXGIFormatR16G16UInt,
		DXGIFormatR16G16SNorm, DXGIFormatR16G16SInt,
		DXGIFormatR32Typeless, DXGIFormatD32Float,
		DXGIFormatR32Float, DXGIFormatR32UInt, DXGIFormatR32SInt,
		DXGIFormatR24G8Typeless, DXGIFormatD24UNormS8UInt,
		DXGIFormatR24UNormX8Typeless, DXGIFormatX24TypelessG8UInt,
		DXGIFormatR9G9B9E5SharedExp,
		DXGIFormatB8G8R8A8UNorm, DXGIFormatB8G8R8X8UNorm,
		DXGIFormatR10G10B10XRBiasA2UNorm,
		DXGIFormatB8G8R8A8Typeless, DXGIFormatB8G8R8A8UNormSRGB,
		DXGIFormatB8G8R8X8Typeless, DXGIFormatB8G8R8X8UNormSRGB,
		DXGIFormatAYUV, DXGIFormatY410, DXGIFormatY210, DXGIFormatY216:
		return 32

	case DXGIFormatP010, DXGIFormatP016, DXGIFormatV408:
		return 24

	case DXGIFormatR8G8Typeless, DXGIFormatR8G8UNorm, DXGIFormatR8G8UInt,
		DXGIFormatR8G8SNorm, DXGIFormatR8G8SInt,
		DXGIFormatR16Typeless, DXGIFormatR16Float, DXGIFormatD16UNorm,
		DXGIFormatR16UNorm, DXGIFormatR16UInt, DXGIFormatR16SNorm, DXGIFormatR16SInt,
		DXGIFormatB5G6R5UNorm, DXGIFormatB5G5R5A1UNorm, DXGIFormatB4G4R4A4UNorm,
		DXGIFormatR8G8B8G8UNorm, DXGIFormatG8R8G8B8UNorm, DXGIFormatYUY2,
		DXGIFormatA8P8, DXGIFormatP208, DXGIFormatV208:
		return 16

	case DXGIFormatNV12, DXGIFormatOpaque420, DXGIFormatNV11:
		return 12

	case DXGIFormatR8Typeless, DXGIFormatR8UNorm, DXGIFormatR8UInt,
		DXGIFormatR8SNorm, DXGIFormatR8SInt, DXGIFormatA8UNorm,
		DXGIFormatAI44, DXGIFormatIA44, DXGIFormatP8,
		DXGIFormatBC2Typeless, DXGIFormatBC2UNorm, DXGIFormatBC2UNormSRGB,
		DXGIFormatBC3Typeless, DXGIFormatBC3UNorm, DXGIFormatBC3UNormSRGB,
		DXGIFormatBC5Typeless, DXGIFormatBC5UNorm, DXGIFormatBC5SNorm,
		DXGIFormatBC6HTypeless, DXGIFormatBC6HUF16, DXGIFormatBC6HSF16,
		DXGIFormatBC7Typeless, DXGIFormatBC7UNorm, DXGIFormatBC7UNormSRGB:
		return 8

	case DXGIFormatBC1Typeless, DXGIFormatBC1UNorm, DXGIFormatBC1UNormSRGB,
		DXGIFormatBC4Typeless, DXGIFormatBC4UNorm, DXGIFormatBC4SNorm:
		return 4

	case DXGIFormatR1UNorm:
		return 1

	default:
		return 0
	}
}

func (f DXGIFormat) blockSize() (int, int) {
	switch {
	case f.isBC():
		return 4, 4
	case f.isPacked():
		return 2, 1
	default:
		return 1, 1
	}
}

func (f DXGIFormat) isBC() bool {
	return (f >= DXGIFormatBC1Typeless && f <= DXGIFormatBC5SNorm) ||
		(f >= DXGIFormatBC6HTypeless && f <= DXGIFormatBC7UNormSRGB)
}

func (f DXGIFormat) isPacked() bool {
	switch f {
	case DXGIFormatR8G8B8G8UNorm, DXGIFormatG8R8G8B8UNorm,
		DXGIFormatYUY2, DXGIFormatY210, DXGIFormatY216:
		return true
	default:
		return false
	}
}

// isPlanar reports the video formats that store chroma in a separate plane.
func (f DXGIFormat) isPlanar() bool {
	switch f {
	case DXGIFormatNV12, DXGIFormatP010, DXGIFormatP016, DXGIFormatOpaque420,
		DXGIFormatNV11, DXGIFormatP208, DXGIFormatV208, DXGIFormatV408:
		return true
	default:
		return false
	}
}

func (f DXGIFormat) isSRGB() bool {
	switch f {
	case DXGIFormatR8G8B8A8UNormSRGB, DXGIFormatBC1UNormSRGB, DXGIFormatBC2UNormSRGB,
		DXGIFormatBC3UNormSRGB, DXGIFormatB8G8R8A8UNormSRGB, DXGIFormatB8G8R8X8UNormSRGB,
		DXGIFormatBC7UNormSRGB:
		return true
	default:
		return false
	}
}

func (f DXGIFormat) isYUV() bool {
	switch {
	case f >= DXGIFormatAYUV && f <= DXGIFormatNV11:
		return true
	case f >= DXGIFormatP208 && f <= DXGIFormatV408:
		return true
	default:
		return false
	}
}
