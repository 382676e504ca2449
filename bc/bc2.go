package bc

// DecodeBC2 decodes a 16-byte BC2 block: 4-bit explicit alpha followed by
// a four color BC1 block.
func DecodeBC2(block []byte) (Block, error) {
	if err := checkLen(block, KindBC2); err != nil {
		return Block{}, err
	}

	alpha := block[:8]
	colors := block[8:16]
	palette := colorPalette(colors, false)

	var out Block
	for y := range 4 {
		for x := range 4 {
			n := (alpha[y*2+x/2] >> (4 * (x & 1))) & 0xf

			c := palette[colorIndex(colors, x, y)]
			c.A = n * 17
			out[x+4*y] = c
		}
	}

	return out, nil
}
