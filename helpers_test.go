package dds

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// newHeader returns a minimal valid 2D texture header.
func newHeader(width, height uint32, pf DDPixelFormat) Header {
	pf.Size = PixelFormatSize
	return Header{
		Size:        HeaderSize,
		Flags:       FlagsTexture,
		Width:       width,
		Height:      height,
		PixelFormat: pf,
		Caps:        CapsTexture,
	}
}

func fourCCFormat(code uint32) DDPixelFormat {
	return DDPixelFormat{Size: PixelFormatSize, Flags: PFFourCC, FourCC: code}
}

func rgbFormat(bitCount, r, g, b, a uint32) DDPixelFormat {
	flags := PFRGB
	if a != 0 {
		flags |= PFAlphaPixels
	}
	return DDPixelFormat{
		Size:        PixelFormatSize,
		Flags:       flags,
		RGBBitCount: bitCount,
		RBitMask:    r,
		GBitMask:    g,
		BBitMask:    b,
		ABitMask:    a,
	}
}

func dx10Header(width, height uint32) Header {
	return newHeader(width, height, fourCCFormat(FourCCDX10))
}

// encode serializes magic, headers and the surface payloads.
func encode(t testing.TB, h Header, ext *ExtendedHeader, payload ...[]byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString(Magic)
	if err := binary.Write(&buf, binary.LittleEndian, h); err != nil {
		t.Fatalf("write header: %v", err)
	}
	if ext != nil {
		if err := binary.Write(&buf, binary.LittleEndian, *ext); err != nil {
			t.Fatalf("write extended header: %v", err)
		}
	}
	for _, p := range payload {
		buf.Write(p)
	}

	return buf.Bytes()
}

func load(t testing.TB, data []byte, opts *LoadOptions) *File {
	t.Helper()

	f, err := LoadWithOptions(bytes.NewReader(data), opts)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	return f
}

// filled returns n bytes produced by a small LCG so fixtures are stable.
func filled(n int, seed uint32) []byte {
	out := make([]byte, n)
	for i := range out {
		seed = seed*1664525 + 1013904223
		out[i] = byte(seed >> 24)
	}

	return out
}
