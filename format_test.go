package dds

import (
	"errors"
	"testing"
)

func TestCalculatePitch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		width  int
		format PixelFormat
		want   int
	}{
		{"dxt1 width 5", 5, Legacy(D3DFormatDXT1), 16},
		{"bc1 width 5", 5, Modern(DXGIFormatBC1UNorm), 16},
		{"bc7 width 1", 1, Modern(DXGIFormatBC7UNorm), 16},
		{"dxt5 width 0", 0, Legacy(D3DFormatDXT5), 16},
		{"rgba8 width 5", 5, Modern(DXGIFormatR8G8B8A8UNorm), 20},
		{"r8g8b8 width 3", 3, Legacy(D3DFormatR8G8B8), 9},
		{"yuy2 width 3", 3, Modern(DXGIFormatYUY2), 8},
		{"r1 width 10", 10, Modern(DXGIFormatR1UNorm), 2},
		{"rgba32f width 2", 2, Modern(DXGIFormatR32G32B32A32Float), 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := CalculatePitch(tt.width, tt.format)
			if err != nil {
				t.Fatalf("CalculatePitch: %v", err)
			}
			if got != tt.want {
				t.Fatalf("CalculatePitch(%d, %s)=%d, want %d", tt.width, tt.format, got, tt.want)
			}
		})
	}
}

func TestCalculatePitchUnknown(t *testing.T) {
	t.Parallel()

	if _, err := CalculatePitch(4, PixelFormat{}); !errors.Is(err, ErrUnsupportedPixelFormat) {
		t.Fatalf("err=%v, want ErrUnsupportedPixelFormat", err)
	}
	if _, err := CalculateSurfaceSize(4, 4, Modern(DXGIFormatUnknown)); !errors.Is(err, ErrUnsupportedPixelFormat) {
		t.Fatalf("err=%v, want ErrUnsupportedPixelFormat", err)
	}
}

func TestCalculateSurfaceSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		height, width int
		format        PixelFormat
		want          int
	}{
		{"bc1 5x5", 5, 5, Modern(DXGIFormatBC1UNorm), 32},
		{"bc3 1x1", 1, 1, Legacy(D3DFormatDXT5), 16},
		{"bc7 8x12", 8, 12, Modern(DXGIFormatBC7UNorm), 96},
		{"a8r8g8b8 3x5", 3, 5, Legacy(D3DFormatA8R8G8B8), 60},
		{"r5g6b5 2x2", 2, 2, Modern(DXGIFormatB5G6R5UNorm), 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := CalculateSurfaceSize(tt.height, tt.width, tt.format)
			if err != nil {
				t.Fatalf("CalculateSurfaceSize: %v", err)
			}
			if got != tt.want {
				t.Fatalf("CalculateSurfaceSize=%d, want %d", got, tt.want)
			}
		})
	}
}

func TestPixelFormatClassifiers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format                           PixelFormat
		block, packed, planar, yuv, srgb bool
		blockW, blockH                   int
	}{
		{format: Legacy(D3DFormatDXT1), block: true, blockW: 4, blockH: 4},
		{format: Modern(DXGIFormatBC7UNormSRGB), block: true, srgb: true, blockW: 4, blockH: 4},
		{format: Modern(DXGIFormatR8G8B8A8UNormSRGB), srgb: true, blockW: 1, blockH: 1},
		{format: Modern(DXGIFormatYUY2), packed: true, yuv: true, blockW: 2, blockH: 1},
		{format: Legacy(D3DFormatR8G8B8G8), packed: true, blockW: 2, blockH: 1},
		{format: Legacy(D3DFormatUYVY), packed: true, yuv: true, blockW: 2, blockH: 1},
		{format: Modern(DXGIFormatNV12), planar: true, yuv: true, blockW: 1, blockH: 1},
		{format: Legacy(D3DFormatA8R8G8B8), blockW: 1, blockH: 1},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			t.Parallel()

			f := tt.format
			if got := f.IsBlockCompressed(); got != tt.block {
				t.Errorf("IsBlockCompressed=%v, want %v", got, tt.block)
			}
			if got := f.IsPacked(); got != tt.packed {
				t.Errorf("IsPacked=%v, want %v", got, tt.packed)
			}
			if got := f.IsPlanar(); got != tt.planar {
				t.Errorf("IsPlanar=%v, want %v", got, tt.planar)
			}
			if got := f.IsYUV(); got != tt.yuv {
				t.Errorf("IsYUV=%v, want %v", got, tt.yuv)
			}
			if got := f.IsSRGB(); got != tt.srgb {
				t.Errorf("IsSRGB=%v, want %v", got, tt.srgb)
			}
			if w, h := f.HorizontalPixelsPerBlock(), f.VerticalPixelsPerBlock(); w != tt.blockW || h != tt.blockH {
				t.Errorf("block=%dx%d, want %dx%d", w, h, tt.blockW, tt.blockH)
			}
		})
	}
}

func TestPixelFormatString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format PixelFormat
		want   string
	}{
		{Legacy(D3DFormatDXT1), "D3DFMT_DXT1"},
		{Legacy(D3DFormatA8R8G8B8), "D3DFMT_A8R8G8B8"},
		{Modern(DXGIFormatBC7UNormSRGB), "DXGI_FORMAT_BC7_UNORM_SRGB"},
		{Modern(DXGIFormat(200)), "DXGI_FORMAT(200)"},
		{Legacy(D3DFormat(7)), "D3DFMT(7)"},
		{PixelFormat{}, "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("String()=%q, want %q", got, tt.want)
		}
	}
}

func TestPixelFormatAccessors(t *testing.T) {
	t.Parallel()

	p := Modern(DXGIFormatBC3UNorm)
	if p.Family() != FamilyModern {
		t.Fatalf("Family=%d", p.Family())
	}
	if _, ok := p.D3D(); ok {
		t.Fatalf("modern format reported a D3D format")
	}
	if f, ok := p.DXGI(); !ok || f != DXGIFormatBC3UNorm {
		t.Fatalf("DXGI()=%s, %v", f, ok)
	}
	if p.BitsPerBlock() != 128 {
		t.Fatalf("BitsPerBlock=%d, want 128", p.BitsPerBlock())
	}
	if (PixelFormat{}).IsKnown() {
		t.Fatalf("zero format is known")
	}
}
