package dds

import "testing"

func TestDeriveD3DFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		pf   DDPixelFormat
		want D3DFormat
	}{
		{"a8r8g8b8", rgbFormat(32, 0xff0000, 0xff00, 0xff, 0xff000000), D3DFormatA8R8G8B8},
		{"x8b8g8r8", rgbFormat(32, 0xff, 0xff00, 0xff0000, 0), D3DFormatX8B8G8R8},
		// swapped 10:10:10:2 masks keep the historical mapping
		{"a2r10g10b10 swapped", rgbFormat(32, 0x3ff, 0xffc00, 0x3ff00000, 0xc0000000), D3DFormatA2R10G10B10},
		{"a2b10g10r10 swapped", rgbFormat(32, 0x3ff00000, 0xffc00, 0x3ff, 0xc0000000), D3DFormatA2B10G10R10},
		{"r8g8b8", rgbFormat(24, 0xff0000, 0xff00, 0xff, 0), D3DFormatR8G8B8},
		{"r5g6b5", rgbFormat(16, 0xf800, 0x7e0, 0x1f, 0), D3DFormatR5G6B5},
		{"nvtt l16 as rgb", rgbFormat(16, 0xffff, 0, 0, 0), D3DFormatL16},
		{"nvtt a8l8 as rgb", rgbFormat(16, 0xff, 0, 0, 0xff00), D3DFormatA8L8},
		{"nvtt l8 as rgb", rgbFormat(8, 0xff, 0, 0, 0), D3DFormatL8},
		{"luminance a4l4", DDPixelFormat{Flags: PFLuminance, RGBBitCount: 8, RBitMask: 0x0f, ABitMask: 0xf0}, D3DFormatA4L4},
		{"alpha a8", DDPixelFormat{Flags: PFAlpha, RGBBitCount: 8, ABitMask: 0xff}, D3DFormatA8},
		{"bump v8u8", DDPixelFormat{Flags: PFBumpDuDv, RGBBitCount: 16, RBitMask: 0xff, GBitMask: 0xff00}, D3DFormatV8U8},
		{"dxt1", fourCCFormat(FourCC('D', 'X', 'T', '1')), D3DFormatDXT1},
		{"dxt4", fourCCFormat(FourCC('D', 'X', 'T', '4')), D3DFormatDXT4},
		{"fourcc ordinal r16f", fourCCFormat(111), D3DFormatR16F},
		{"unknown fourcc", fourCCFormat(FourCC('A', 'B', 'C', 'D')), D3DFormatUnknown},
		{"unknown masks", rgbFormat(32, 1, 2, 4, 8), D3DFormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := DeriveD3DFormat(tt.pf); got != tt.want {
				t.Fatalf("DeriveD3DFormat=%s, want %s", got, tt.want)
			}
		})
	}
}

func TestDeriveDXGIFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		pf   DDPixelFormat
		want DXGIFormat
		mode AlphaMode
	}{
		{"r8g8b8a8", rgbFormat(32, 0xff, 0xff00, 0xff0000, 0xff000000), DXGIFormatR8G8B8A8UNorm, AlphaModeUnknown},
		{"b8g8r8x8", rgbFormat(32, 0xff0000, 0xff00, 0xff, 0), DXGIFormatB8G8R8X8UNorm, AlphaModeUnknown},
		{"10:10:10:2 backwards", rgbFormat(32, 0x3ff00000, 0xffc00, 0x3ff, 0xc0000000), DXGIFormatR10G10B10A2UNorm, AlphaModeUnknown},
		{"10:10:10:2 no dxgi", rgbFormat(32, 0x3ff, 0xffc00, 0x3ff00000, 0xc0000000), DXGIFormatUnknown, AlphaModeUnknown},
		{"r8g8b8 no dxgi", rgbFormat(24, 0xff0000, 0xff00, 0xff, 0), DXGIFormatUnknown, AlphaModeUnknown},
		{"nvtt a8l8", rgbFormat(16, 0xff, 0, 0, 0xff00), DXGIFormatR8G8UNorm, AlphaModeUnknown},
		{"dxt1", fourCCFormat(FourCC('D', 'X', 'T', '1')), DXGIFormatBC1UNorm, AlphaModeUnknown},
		{"dxt2", fourCCFormat(FourCC('D', 'X', 'T', '2')), DXGIFormatBC2UNorm, AlphaModePremultiplied},
		{"dxt3", fourCCFormat(FourCC('D', 'X', 'T', '3')), DXGIFormatBC2UNorm, AlphaModeUnknown},
		{"dxt4", fourCCFormat(FourCC('D', 'X', 'T', '4')), DXGIFormatBC3UNorm, AlphaModePremultiplied},
		{"dxt5", fourCCFormat(FourCC('D', 'X', 'T', '5')), DXGIFormatBC3UNorm, AlphaModeUnknown},
		{"ati2", fourCCFormat(FourCC('A', 'T', 'I', '2')), DXGIFormatBC5UNorm, AlphaModeUnknown},
		{"bc4s", fourCCFormat(FourCC('B', 'C', '4', 'S')), DXGIFormatBC4SNorm, AlphaModeUnknown},
		{"fourcc ordinal a32b32g32r32f", fourCCFormat(116), DXGIFormatR32G32B32A32Float, AlphaModeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, mode := DeriveDXGIFormat(tt.pf)
			if got != tt.want || mode != tt.mode {
				t.Fatalf("DeriveDXGIFormat=%s/%s, want %s/%s", got, mode, tt.want, tt.mode)
			}
		})
	}
}

func TestDerivePixelFormat(t *testing.T) {
	t.Parallel()

	ext := &ExtendedHeader{DXGIFormat: DXGIFormatBC7UNormSRGB, ResourceDimension: DimensionTexture2D, ArraySize: 1}

	tests := []struct {
		name string
		h    Header
		ext  *ExtendedHeader
		want PixelFormat
	}{
		{"extended header wins", dx10Header(4, 4), ext, Modern(DXGIFormatBC7UNormSRGB)},
		{"dxgi preferred", newHeader(4, 4, fourCCFormat(FourCC('D', 'X', 'T', '1'))), nil, Modern(DXGIFormatBC1UNorm)},
		{"legacy fallback", newHeader(4, 4, rgbFormat(24, 0xff0000, 0xff00, 0xff, 0)), nil, Legacy(D3DFormatR8G8B8)},
		{"unknown", newHeader(4, 4, rgbFormat(32, 1, 2, 4, 8)), nil, PixelFormat{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := DerivePixelFormat(tt.h, tt.ext); got != tt.want {
				t.Fatalf("DerivePixelFormat=%s, want %s", got, tt.want)
			}
		})
	}
}

func TestPremultipliedAlpha(t *testing.T) {
	t.Parallel()

	dxt2 := newHeader(4, 4, fourCCFormat(FourCC('D', 'X', 'T', '2')))
	if !premultipliedAlpha(dxt2, nil) {
		t.Fatalf("DXT2 is not premultiplied")
	}

	dxt3 := newHeader(4, 4, fourCCFormat(FourCC('D', 'X', 'T', '3')))
	if premultipliedAlpha(dxt3, nil) {
		t.Fatalf("DXT3 is premultiplied")
	}

	ext := &ExtendedHeader{DXGIFormat: DXGIFormatBC3UNorm, MiscFlags2: uint32(AlphaModePremultiplied)}
	if !premultipliedAlpha(dx10Header(4, 4), ext) {
		t.Fatalf("DX10 premultiplied alpha mode ignored")
	}
}
