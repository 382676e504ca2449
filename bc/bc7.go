package bc

// ReservedMode is the BC7 mode of a block without a set bit in its first
// byte.
const ReservedMode = 8

type bc7Mode struct {
	subsets       int
	partitionBits int
	rotationBits  int
	selectorBits  int
	colorBits     int
	alphaBits     int
	endpointPBits int
	sharedPBits   int
	indexBits     int
	secIndexBits  int
}

var bc7Modes = [8]bc7Mode{
	{subsets: 3, partitionBits: 4, colorBits: 4, endpointPBits: 1, indexBits: 3},
	{subsets: 2, partitionBits: 6, colorBits: 6, sharedPBits: 1, indexBits: 3},
	{subsets: 3, partitionBits: 6, colorBits: 5, indexBits: 2},
	{subsets: 2, partitionBits: 6, colorBits: 7, endpointPBits: 1, indexBits: 2},
	{subsets: 1, rotationBits: 2, selectorBits: 1, colorBits: 5, alphaBits: 6, indexBits: 2, secIndexBits: 3},
	{subsets: 1, rotationBits: 2, colorBits: 7, alphaBits: 8, indexBits: 2, secIndexBits: 2},
	{subsets: 1, colorBits: 7, alphaBits: 7, endpointPBits: 1, indexBits: 4},
	{subsets: 2, partitionBits: 6, colorBits: 5, alphaBits: 5, endpointPBits: 1, indexBits: 2},
}

// BC7Mode returns the mode of a BC7 block: the number of zero bits before
// the first set bit, capped at ReservedMode.
func BC7Mode(block []byte) int {
	if len(block) == 0 {
		return ReservedMode
	}

	for mode := range ReservedMode {
		if block[0]>>mode&1 == 1 {
			return mode
		}
	}

	return ReservedMode
}

// DecodeBC7 decodes a 16-byte BC7 block. A reserved mode block decodes to
// transparent black without an error; callers that must reject it check
// BC7Mode first.
func DecodeBC7(block []byte) (Block, error) {
	if err := checkLen(block, KindBC7); err != nil {
		return Block{}, err
	}

	mode := BC7Mode(block)
	if mode == ReservedMode {
		return Block{}, nil
	}

	r := newBitReader(block)
	r.pos = mode + 1

	return bc7Modes[mode].decode(r), nil
}

// endpoint is one RGBA endpoint being assembled from narrow fields.
type endpoint [4]uint8

func (m bc7Mode) decode(r *bitReader) Block {
	partition := int(r.bits(m.partitionBits))
	rotation := int(r.bits(m.rotationBits))
	selector := r.bits(m.selectorBits)

	n := 2 * m.subsets
	var ep [6]endpoint

	colorShift := 8 - m.colorBits
	for ch := range 3 {
		for i := range n {
			ep[i][ch] = uint8(r.bits(m.colorBits) << colorShift)
		}
	}

	alphaShift := 0
	if m.alphaBits > 0 {
		alphaShift = 8 - m.alphaBits
		for i := range n {
			ep[i][3] = uint8(r.bits(m.alphaBits) << alphaShift)
		}
	} else {
		for i := range n {
			ep[i][3] = 0xff
		}
	}

	if m.endpointPBits > 0 {
		colorShift -= m.endpointPBits
		if alphaShift > 0 {
			alphaShift -= m.endpointPBits
		}
		for i := range n {
			ep[i].setLowBits(uint8(r.bits(m.endpointPBits)), colorShift, alphaShift)
		}
	}
	if m.sharedPBits > 0 {
		colorShift -= m.sharedPBits
		if alphaShift > 0 {
			alphaShift -= m.sharedPBits
		}
		for s := range m.subsets {
			p := uint8(r.bits(m.sharedPBits))
			ep[2*s].setLowBits(p, colorShift, alphaShift)
			ep[2*s+1].setLowBits(p, colorShift, alphaShift)
		}
	}

	// replicate the high bits into the unused low bits
	for i := range n {
		if colorShift > 0 {
			for ch := range 3 {
				ep[i][ch] |= ep[i][ch] >> (8 - colorShift)
			}
		}
		if alphaShift > 0 {
			ep[i][3] |= ep[i][3] >> (8 - alphaShift)
		}
	}

	var primary, secondary [16]uint8
	for i := range 16 {
		primary[i] = uint8(r.bits(m.indexWidth(m.indexBits, partition, i)))
	}
	if m.secIndexBits > 0 {
		for i := range 16 {
			secondary[i] = uint8(r.bits(m.indexWidth(m.secIndexBits, partition, i)))
		}
	} else {
		secondary = primary
	}

	colorWeights, alphaWeights := weights[m.indexBits], weights[m.indexBits]
	if m.secIndexBits > 0 {
		if selector == 0 {
			alphaWeights = weights[m.secIndexBits]
		} else {
			colorWeights = weights[m.secIndexBits]
			primary, secondary = secondary, primary
		}
	}

	var out Block
	for i := range 16 {
		s := m.subset(partition, i)
		e0, e1 := ep[2*s], ep[2*s+1]
		cw := colorWeights[primary[i]]
		aw := alphaWeights[secondary[i]]

		px := [4]uint8{
			interpolate(e0[0], e1[0], cw),
			interpolate(e0[1], e1[1], cw),
			interpolate(e0[2], e1[2], cw),
			interpolate(e0[3], e1[3], aw),
		}
		if rotation > 0 {
			px[3], px[rotation-1] = px[rotation-1], px[3]
		}

		out[i].R, out[i].G, out[i].B, out[i].A = px[0], px[1], px[2], px[3]
	}

	return out
}

// setLowBits ORs a p-bit into each channel at the given shifts.
func (e *endpoint) setLowBits(p uint8, colorShift, alphaShift int) {
	e[0] |= p << colorShift
	e[1] |= p << colorShift
	e[2] |= p << colorShift
	e[3] |= p << alphaShift
}

func (m bc7Mode) subset(partition, i int) int {
	switch m.subsets {
	case 2:
		return int(partitions2[partition][i])
	case 3:
		return int(partitions3[partition][i])
	default:
		return 0
	}
}

// indexWidth returns the stored width of pixel i's index; anchor pixels
// drop their implicit leading zero.
func (m bc7Mode) indexWidth(bits, partition, i int) int {
	if m.isAnchor(partition, i) {
		return bits - 1
	}

	return bits
}

func (m bc7Mode) isAnchor(partition, i int) bool {
	if i == 0 {
		return true
	}

	switch m.subsets {
	case 2:
		return i == int(anchors2[partition])
	case 3:
		return i == int(anchors3a[partition]) || i == int(anchors3b[partition])
	default:
		return false
	}
}

func interpolate(e0, e1 uint8, w int) uint8 {
	return uint8((int(e0)*(64-w) + int(e1)*w + 32) >> 6)
}
