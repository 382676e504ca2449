package bc

// DecodeBC3 decodes a 16-byte BC3 block: interpolated alpha followed by a
// four color BC1 block.
func DecodeBC3(block []byte) (Block, error) {
	if err := checkLen(block, KindBC3); err != nil {
		return Block{}, err
	}

	alphas := AlphaPalette(block[0], block[1])
	groups := [2]uint32{read24(block[2:5]), read24(block[5:8])}

	colors := block[8:16]
	palette := colorPalette(colors, false)

	var out Block
	for y := range 4 {
		for x := range 4 {
			shift := 3 * ((y&1)*4 + x)
			idx := (groups[y>>1] >> shift) & 0x7

			c := palette[colorIndex(colors, x, y)]
			c.A = alphas[idx]
			out[x+4*y] = c
		}
	}

	return out, nil
}

// AlphaPalette builds the eight entry BC3 alpha table from its endpoints.
// If a0 > a1 six values are interpolated; otherwise four, followed by 0
// and 255.
func AlphaPalette(a0, a1 uint8) [8]uint8 {
	var a [8]uint8
	a[0], a[1] = a0, a1

	x0, x1 := int(a0), int(a1)
	if a0 > a1 {
		for i := 1; i <= 6; i++ {
			a[i+1] = uint8(((7-i)*x0 + i*x1 + 3) / 7)
		}
		return a
	}

	for i := 1; i <= 4; i++ {
		a[i+1] = uint8(((5-i)*x0 + i*x1 + 2) / 5)
	}
	a[6] = 0
	a[7] = 255

	return a
}

func read24(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
}
