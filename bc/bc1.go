package bc

import (
	"encoding/binary"
	"image/color"
)

var transparent = color.NRGBA{}

// DecodeBC1 decodes a standalone 8-byte BC1 block. When c0 <= c1 the
// fourth palette entry is transparent black.
func DecodeBC1(block []byte) (Block, error) {
	if err := checkLen(block, KindBC1); err != nil {
		return Block{}, err
	}

	palette := colorPalette(block, true)

	var out Block
	for y := range 4 {
		for x := range 4 {
			out[x+4*y] = palette[colorIndex(block, x, y)]
		}
	}

	return out, nil
}

// colorPalette expands the two 565 endpoints of an 8-byte color block and
// interpolates the two middle entries.
func colorPalette(b []byte, oneBitAlpha bool) [4]color.NRGBA {
	raw0 := binary.LittleEndian.Uint16(b[0:2])
	raw1 := binary.LittleEndian.Uint16(b[2:4])
	c0, c1 := expand565(raw0), expand565(raw1)

	if !oneBitAlpha || raw0 > raw1 {
		return [4]color.NRGBA{c0, c1, lerp(c0, c1, 2, 1), lerp(c0, c1, 1, 2)}
	}

	return [4]color.NRGBA{c0, c1, lerp(c0, c1, 1, 1), transparent}
}

// colorIndex returns the 2-bit palette index of pixel (x, y).
func colorIndex(b []byte, x, y int) int {
	return int(b[4+y]>>(2*x)) & 0x3
}

func expand565(c uint16) color.NRGBA {
	r := uint8(c>>11) & 0x1f
	g := uint8(c>>5) & 0x3f
	b := uint8(c) & 0x1f

	return color.NRGBA{
		R: r<<3 | r>>2,
		G: g<<2 | g>>4,
		B: b<<3 | b>>2,
		A: 0xff,
	}
}

// lerp weights a by n1 and b by n2, rounding to nearest.
func lerp(a, b color.NRGBA, n1, n2 int) color.NRGBA {
	n := n1 + n2
	mix := func(x, y uint8) uint8 {
		return uint8((n1*int(x) + n2*int(y) + n/2) / n)
	}

	return color.NRGBA{
		R: mix(a.R, b.R),
		G: mix(a.G, b.G),
		B: mix(a.B, b.B),
		A: mix(a.A, b.A),
	}
}
