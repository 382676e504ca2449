package bc

// bitReader reads a 128-bit block least significant bit first.
type bitReader struct {
	data *[16]byte
	pos  int
}

func newBitReader(block []byte) *bitReader {
	var data [16]byte
	copy(data[:], block)
	return &bitReader{data: &data}
}

// bits reads n bits, n <= 32. Bits past the end read as zero.
func (r *bitReader) bits(n int) uint32 {
	var v uint32
	for i := range n {
		p := r.pos + i
		if p < 128 && (r.data[p>>3]>>(p&7))&1 == 1 {
			v |= 1 << i
		}
	}
	r.pos += n

	return v
}

func (r *bitReader) bit() uint32 {
	return r.bits(1)
}
