package dds

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/woozymasta/bcn"
)

// benchImage builds a deterministic image with mixed low and high frequencies.
func benchImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8((x*7 + y*3) & 0xff),
				G: uint8((x*13 + y*5) & 0xff),
				B: uint8((x ^ y ^ (x >> 2)) & 0xff),
				A: uint8((x + y) & 0xff),
			})
		}
	}

	return img
}

// benchDDS encodes img as a single surface DDS stream.
func benchDDS(b *testing.B, img *image.NRGBA, format bcn.Format, fourCC uint32) []byte {
	b.Helper()

	blocks, _, _, err := bcn.EncodeImageWithOptions(img, format, nil)
	if err != nil {
		b.Fatalf("prepare blocks: %v", err)
	}

	bounds := img.Bounds()
	h := newHeader(uint32(bounds.Dx()), uint32(bounds.Dy()), fourCCFormat(fourCC))

	return encode(b, h, nil, blocks)
}

func BenchmarkLoadDXT5(b *testing.B) {
	data := benchDDS(b, benchImage(1024, 1024), bcn.FormatDXT5, FourCC('D', 'X', 'T', '5'))

	b.ReportAllocs()
	b.SetBytes(int64(len(data)))
	b.ResetTimer()

	for b.Loop() {
		if _, err := Load(bytes.NewReader(data)); err != nil {
			b.Fatalf("load: %v", err)
		}
	}
}

func BenchmarkDecodeDXT1(b *testing.B) {
	benchmarkDecode(b, benchDDS(b, benchImage(1024, 1024), bcn.FormatDXT1, FourCC('D', 'X', 'T', '1')))
}

func BenchmarkDecodeDXT5(b *testing.B) {
	benchmarkDecode(b, benchDDS(b, benchImage(1024, 1024), bcn.FormatDXT5, FourCC('D', 'X', 'T', '5')))
}

func BenchmarkDecodeBC7(b *testing.B) {
	ext := &ExtendedHeader{DXGIFormat: DXGIFormatBC7UNorm, ResourceDimension: DimensionTexture2D, ArraySize: 1}
	benchmarkDecode(b, encode(b, dx10Header(1024, 1024), ext, filled(256*256*16, 5)))
}

func BenchmarkDecodeA8R8G8B8(b *testing.B) {
	pf := rgbFormat(32, 0xff0000, 0xff00, 0xff, 0xff000000)
	benchmarkDecode(b, encode(b, newHeader(1024, 1024, pf), nil, filled(1024*1024*4, 9)))
}

func benchmarkDecode(b *testing.B, data []byte) {
	f, err := Load(bytes.NewReader(data))
	if err != nil {
		b.Fatalf("load: %v", err)
	}
	s, _ := f.Surface(0)

	for _, tc := range []struct {
		name    string
		workers int
	}{
		{"Sequential", 1},
		{"Parallel", 0},
	} {
		b.Run(tc.name, func(b *testing.B) {
			opts := &DecodeOptions{Workers: tc.workers}

			b.ReportAllocs()
			b.SetBytes(int64(4 * s.Width * s.Height))
			b.ResetTimer()

			for b.Loop() {
				if _, _, _, err := s.DecodeRGBA8WithOptions(opts); err != nil {
					b.Fatalf("decode: %v", err)
				}
			}
		})
	}
}
