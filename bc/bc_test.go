package bc

import (
	"errors"
	"image/color"
	"slices"
	"testing"
)

// bitWriter packs fields least significant bit first, as BC7 stores them.
type bitWriter struct {
	buf [16]byte
	pos int
}

func (w *bitWriter) put(v uint32, n int) {
	for i := range n {
		if v>>i&1 == 1 {
			w.buf[w.pos>>3] |= 1 << (w.pos & 7)
		}
		w.pos++
	}
}

func (w *bitWriter) block(t *testing.T) []byte {
	t.Helper()
	if w.pos != 128 {
		t.Fatalf("block has %d bits, want 128", w.pos)
	}

	return w.buf[:]
}

// indices writes 16 zero indices of the given width, one bit narrower at
// pixel 0 and the anchors, with last as the index of pixel 15.
func (w *bitWriter) indices(bits int, anchors []int, last uint32) {
	for i := range 16 {
		n := bits
		if i == 0 || slices.Contains(anchors, i) {
			n--
		}
		v := uint32(0)
		if i == 15 {
			v = last
		}
		w.put(v, n)
	}
}

func bc1Block(c0, c1 uint16, rows [4]byte) []byte {
	return []byte{byte(c0), byte(c0 >> 8), byte(c1), byte(c1 >> 8), rows[0], rows[1], rows[2], rows[3]}
}

func TestDecodeBC1Degenerate(t *testing.T) {
	t.Parallel()

	// 0x7bef: r=15 g=31 b=15
	want := color.NRGBA{R: 15<<3 | 15>>2, G: 31<<2 | 31>>4, B: 15<<3 | 15>>2, A: 255}

	// indices 0, 1 and 2 all resolve to c0 when c0 == c1
	for _, rows := range [][4]byte{{0, 0, 0, 0}, {0x55, 0x55, 0x55, 0x55}, {0xaa, 0xaa, 0xaa, 0xaa}, {0x24, 0x98, 0x24, 0x98}} {
		out, err := DecodeBC1(bc1Block(0x7bef, 0x7bef, rows))
		if err != nil {
			t.Fatalf("DecodeBC1: %v", err)
		}

		for i, px := range out {
			if px != want {
				t.Fatalf("rows %x pixel %d: got %+v, want %+v", rows, i, px, want)
			}
		}
	}

	// index 3 is transparent since c0 is not greater than c1
	out, err := DecodeBC1(bc1Block(0x7bef, 0x7bef, [4]byte{0x03, 0, 0, 0}))
	if err != nil {
		t.Fatalf("DecodeBC1: %v", err)
	}
	if out[0].A != 0 {
		t.Fatalf("index 3: alpha=%d, want 0", out[0].A)
	}
}

func TestDecodeBC1Uniform(t *testing.T) {
	t.Parallel()

	out, err := DecodeBC1(bc1Block(0xf800, 0xf800, [4]byte{}))
	if err != nil {
		t.Fatalf("DecodeBC1: %v", err)
	}

	want := color.NRGBA{R: 255, A: 255}
	for i, px := range out {
		if px != want {
			t.Fatalf("pixel %d: got %+v, want %+v", i, px, want)
		}
	}
}

func TestDecodeBC1OneBitAlpha(t *testing.T) {
	t.Parallel()

	// every pixel selects index 3
	rows := [4]byte{0xff, 0xff, 0xff, 0xff}

	out, err := DecodeBC1(bc1Block(0x001f, 0xf800, rows))
	if err != nil {
		t.Fatalf("DecodeBC1: %v", err)
	}
	for i, px := range out {
		if px.A != 0 {
			t.Fatalf("c0<c1 pixel %d: alpha=%d, want 0", i, px.A)
		}
	}

	// indices 0,1,2,3 in every row
	rows = [4]byte{0xe4, 0xe4, 0xe4, 0xe4}
	out, err = DecodeBC1(bc1Block(0xf800, 0x001f, rows))
	if err != nil {
		t.Fatalf("DecodeBC1: %v", err)
	}
	for i, px := range out {
		if px.A != 255 {
			t.Fatalf("c0>c1 pixel %d: alpha=%d, want 255", i, px.A)
		}
	}

	if got, want := out[2], (color.NRGBA{R: 170, B: 85, A: 255}); got != want {
		t.Fatalf("index 2: got %+v, want %+v", got, want)
	}
	if got, want := out[3], (color.NRGBA{R: 85, B: 170, A: 255}); got != want {
		t.Fatalf("index 3: got %+v, want %+v", got, want)
	}
}

func TestDecodeBC1HalfwayWhenNotGreater(t *testing.T) {
	t.Parallel()

	rows := [4]byte{0x02, 0, 0, 0}
	out, err := DecodeBC1(bc1Block(0x001f, 0xf800, rows))
	if err != nil {
		t.Fatalf("DecodeBC1: %v", err)
	}

	if got, want := out[0], (color.NRGBA{R: 128, B: 128, A: 255}); got != want {
		t.Fatalf("index 2: got %+v, want %+v", got, want)
	}
}

func TestDecodeBC1RoundsToNearest(t *testing.T) {
	t.Parallel()

	// r=31 expands to 255 and r=1 to 8; (2*255+8)/3 is 172.67.
	// row 0 selects indices 0, 2, 3, 1.
	out, err := DecodeBC1(bc1Block(31<<11, 1<<11, [4]byte{0x78, 0, 0, 0}))
	if err != nil {
		t.Fatalf("DecodeBC1: %v", err)
	}

	for i, want := range []uint8{255, 173, 90, 8} {
		if out[i].R != want {
			t.Fatalf("pixel %d: red=%d, want %d", i, out[i].R, want)
		}
	}
}

func TestDecodeBC2(t *testing.T) {
	t.Parallel()

	block := make([]byte, 16)
	// row 0: nibbles 0x0, 0xf, 0x8, 0x1
	block[0] = 0xf0
	block[1] = 0x18
	copy(block[8:], bc1Block(0x001f, 0xf800, [4]byte{0xff, 0xff, 0xff, 0xff}))

	out, err := DecodeBC2(block)
	if err != nil {
		t.Fatalf("DecodeBC2: %v", err)
	}

	wantAlpha := []uint8{0, 255, 136, 17}
	for x, want := range wantAlpha {
		if out[x].A != want {
			t.Fatalf("pixel %d: alpha=%d, want %d", x, out[x].A, want)
		}
	}

	// c0 < c1 does not switch to three colors inside BC2
	if got, want := out[0], (color.NRGBA{R: 170, B: 85, A: 0}); got != want {
		t.Fatalf("index 3: got %+v, want %+v", got, want)
	}
}

func TestAlphaPalette(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		a0, a1 uint8
		want   [8]uint8
	}{
		{name: "seven step", a0: 255, a1: 0, want: [8]uint8{255, 0, 219, 182, 146, 109, 73, 36}},
		{name: "five step", a0: 0, a1: 255, want: [8]uint8{0, 255, 51, 102, 153, 204, 0, 255}},
		{name: "equal", a0: 7, a1: 7, want: [8]uint8{7, 7, 7, 7, 7, 7, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := AlphaPalette(tt.a0, tt.a1); got != tt.want {
				t.Fatalf("AlphaPalette(%d, %d) = %v, want %v", tt.a0, tt.a1, got, tt.want)
			}
		})
	}
}

func TestDecodeBC3Indices(t *testing.T) {
	t.Parallel()

	block := make([]byte, 16)
	block[0], block[1] = 255, 0

	// pixel (x, y) uses alpha index x + 4*(y&1) for the first group
	var g0, g1 uint32
	for i := range 8 {
		g0 |= uint32(i) << (3 * i)
		g1 |= uint32(7-i) << (3 * i)
	}
	block[2], block[3], block[4] = byte(g0), byte(g0>>8), byte(g0>>16)
	block[5], block[6], block[7] = byte(g1), byte(g1>>8), byte(g1>>16)
	copy(block[8:], bc1Block(0xffff, 0xffff, [4]byte{}))

	out, err := DecodeBC3(block)
	if err != nil {
		t.Fatalf("DecodeBC3: %v", err)
	}

	table := AlphaPalette(255, 0)
	for i := range 16 {
		var idx int
		if i < 8 {
			idx = i
		} else {
			idx = 7 - (i - 8)
		}
		if out[i].A != table[idx] {
			t.Fatalf("pixel %d: alpha=%d, want %d", i, out[i].A, table[idx])
		}
		if out[i].R != 255 || out[i].G != 255 || out[i].B != 255 {
			t.Fatalf("pixel %d: color %+v, want white", i, out[i])
		}
	}
}

func TestBC7Mode(t *testing.T) {
	t.Parallel()

	for mode := range 8 {
		block := make([]byte, 16)
		block[0] = 1 << mode
		if got := BC7Mode(block); got != mode {
			t.Fatalf("BC7Mode(0x%02x) = %d, want %d", block[0], got, mode)
		}
	}

	if got := BC7Mode(make([]byte, 16)); got != ReservedMode {
		t.Fatalf("BC7Mode(zero) = %d, want %d", got, ReservedMode)
	}
}

func TestDecodeBC7Reserved(t *testing.T) {
	t.Parallel()

	block := make([]byte, 16)
	block[1] = 0xff
	for i := 2; i < 16; i++ {
		block[i] = 0xa5
	}

	out, err := DecodeBC7(block)
	if err != nil {
		t.Fatalf("DecodeBC7: %v", err)
	}
	for i, px := range out {
		if px != (color.NRGBA{}) {
			t.Fatalf("pixel %d: got %+v, want transparent black", i, px)
		}
	}
}

func TestDecodeBC7Mode6(t *testing.T) {
	t.Parallel()

	var w bitWriter
	w.put(1<<6, 7)
	for range 4 { // R, G, B, A
		w.put(127, 7) // endpoint 0
		w.put(0, 7)   // endpoint 1
	}
	w.put(1, 1) // p-bit endpoint 0
	w.put(0, 1) // p-bit endpoint 1

	w.put(0, 3) // anchor pixel 0
	w.put(8, 4) // pixel 1
	for i := 2; i < 15; i++ {
		w.put(0, 4)
	}
	w.put(15, 4) // pixel 15

	out, err := DecodeBC7(w.block(t))
	if err != nil {
		t.Fatalf("DecodeBC7: %v", err)
	}

	tests := []struct {
		pixel int
		want  uint8
	}{
		{pixel: 0, want: 255},
		{pixel: 1, want: 120},
		{pixel: 2, want: 255},
		{pixel: 15, want: 0},
	}
	for _, tt := range tests {
		want := color.NRGBA{R: tt.want, G: tt.want, B: tt.want, A: tt.want}
		if got := out[tt.pixel]; got != want {
			t.Fatalf("pixel %d: got %+v, want %+v", tt.pixel, got, want)
		}
	}
}

func TestDecodeBC7Mode5Rotation(t *testing.T) {
	t.Parallel()

	var w bitWriter
	w.put(1<<5, 6)
	w.put(1, 2) // rotation: swap alpha and red
	w.put(127, 7)
	w.put(127, 7)
	w.put(0, 7*4) // green and blue endpoints
	w.put(0, 8*2) // alpha endpoints
	w.put(0, 31)  // color indices
	w.put(0, 31)  // alpha indices

	out, err := DecodeBC7(w.block(t))
	if err != nil {
		t.Fatalf("DecodeBC7: %v", err)
	}

	want := color.NRGBA{A: 255}
	for i, px := range out {
		if px != want {
			t.Fatalf("pixel %d: got %+v, want %+v", i, px, want)
		}
	}
}

func TestDecodeBC7Mode1SharedPBit(t *testing.T) {
	t.Parallel()

	var w bitWriter
	w.put(1<<1, 2)
	w.put(0, 6) // partition 0: left half subset 0, right half subset 1
	for range 3 {
		w.put(63, 6) // subset 0 endpoint 0
		w.put(63, 6) // subset 0 endpoint 1
		w.put(0, 6)  // subset 1 endpoint 0
		w.put(0, 6)  // subset 1 endpoint 1
	}
	w.put(1, 1) // shared p-bit subset 0
	w.put(0, 1) // shared p-bit subset 1
	w.put(0, 46)

	out, err := DecodeBC7(w.block(t))
	if err != nil {
		t.Fatalf("DecodeBC7: %v", err)
	}

	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	black := color.NRGBA{A: 255}
	for i, px := range out {
		want := black
		if partitions2[0][i] == 0 {
			want = white
		}
		if px != want {
			t.Fatalf("pixel %d: got %+v, want %+v", i, px, want)
		}
	}
}

// TestDecodeBC7Modes writes one block per mode whose indices are zero except
// pixel 15, so every pixel shows endpoint 0 of its subset and a misread anchor
// width shifts pixel 15.
func TestDecodeBC7Modes(t *testing.T) {
	t.Parallel()

	red := func(v uint8) color.NRGBA { return color.NRGBA{R: v, A: 255} }
	green := func(v uint8) color.NRGBA { return color.NRGBA{G: v, A: 255} }
	blue := func(v uint8) color.NRGBA { return color.NRGBA{B: v, A: 255} }
	gray := func(v uint8) color.NRGBA { return color.NRGBA{R: v, G: v, B: v, A: 255} }

	tests := []struct {
		name    string
		write   func(w *bitWriter)
		subsets [16]uint8
		colors  [3]color.NRGBA
		last    color.NRGBA
	}{
		{
			// partition 13 anchors pixels 5 and 15, so pixel 15 has 2 bits
			name: "mode 0 three subsets",
			write: func(w *bitWriter) {
				w.put(1, 1)
				w.put(13, 4)
				for _, v := range []uint32{15, 15, 0, 15, 0, 15, 0, 15, 15, 15, 0, 15, 0, 15, 0, 15, 15, 15} {
					w.put(v, 4)
				}
				for _, p := range []uint32{0, 1, 0, 1, 0, 1} {
					w.put(p, 1)
				}
				w.indices(3, []int{5, 15}, 3)
			},
			subsets: [16]uint8{0, 1, 2, 2, 0, 1, 2, 2, 0, 1, 2, 2, 0, 1, 2, 2},
			colors:  [3]color.NRGBA{red(247), green(247), blue(247)},
			last:    color.NRGBA{R: 108, G: 108, B: 250, A: 255},
		},
		{
			// partition 23 anchors pixels 10 and 8
			name: "mode 2 three subsets",
			write: func(w *bitWriter) {
				w.put(1<<2, 3)
				w.put(23, 6)
				for _, v := range []uint32{31, 16, 0, 16, 0, 16, 0, 16, 31, 16, 0, 16, 0, 16, 0, 16, 31, 16} {
					w.put(v, 5)
				}
				w.indices(2, []int{10, 8}, 3)
			},
			subsets: [16]uint8{0, 0, 0, 0, 1, 1, 0, 0, 2, 2, 1, 0, 2, 2, 1, 0},
			colors:  [3]color.NRGBA{red(255), green(255), blue(255)},
			last:    gray(132),
		},
		{
			// partition 17 anchors pixel 2
			name: "mode 3 endpoint p-bits",
			write: func(w *bitWriter) {
				w.put(1<<3, 4)
				w.put(17, 6)
				for _, v := range []uint32{127, 64, 0, 64, 0, 64, 127, 64, 0, 64, 0, 64} {
					w.put(v, 7)
				}
				for _, p := range []uint32{0, 1, 0, 1} {
					w.put(p, 1)
				}
				w.indices(2, []int{2}, 3)
			},
			subsets: [16]uint8{0, 1, 1, 1, 0, 0, 0, 1},
			colors:  [3]color.NRGBA{red(254), green(254)},
			last:    gray(129),
		},
		{
			// selector 1: color takes the 3-bit indices, alpha the 2-bit ones
			name: "mode 4 index selector",
			write: func(w *bitWriter) {
				w.put(1<<4, 5)
				w.put(0, 2)
				w.put(1, 1)
				for range 3 {
					w.put(0, 5)
					w.put(31, 5)
				}
				w.put(0, 6)
				w.put(63, 6)
				w.indices(2, nil, 3)
				w.indices(3, nil, 4)
			},
			last: color.NRGBA{R: 147, G: 147, B: 147, A: 255},
		},
		{
			name: "mode 4 without selector",
			write: func(w *bitWriter) {
				w.put(1<<4, 5)
				w.put(0, 3)
				for range 3 {
					w.put(0, 5)
					w.put(31, 5)
				}
				w.put(0, 6)
				w.put(63, 6)
				w.indices(2, nil, 3)
				w.indices(3, nil, 4)
			},
			last: color.NRGBA{R: 255, G: 255, B: 255, A: 147},
		},
		{
			// partition 0 anchors pixel 15, so pixel 15 has 1 bit
			name: "mode 7 alpha p-bits",
			write: func(w *bitWriter) {
				w.put(1<<7, 8)
				w.put(0, 6)
				for _, v := range []uint32{31, 31, 0, 31, 0, 31, 31, 31, 0, 31, 0, 31, 31, 31, 16, 31} {
					w.put(v, 5)
				}
				for _, p := range []uint32{0, 1, 0, 1} {
					w.put(p, 1)
				}
				w.indices(2, []int{15}, 1)
			},
			subsets: [16]uint8{0, 0, 1, 1, 0, 0, 1, 1, 0, 0, 1, 1, 0, 0, 1, 1},
			colors:  [3]color.NRGBA{{R: 251, A: 251}, {G: 251, A: 130}},
			last:    color.NRGBA{R: 84, G: 252, B: 84, A: 171},
		},
		{
			name: "reserved mode",
			write: func(w *bitWriter) {
				w.put(0, 8)
				for range 15 {
					w.put(0xff, 8)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var w bitWriter
			tt.write(&w)
			out, err := DecodeBC7(w.block(t))
			if err != nil {
				t.Fatalf("DecodeBC7: %v", err)
			}

			for i, px := range out {
				want := tt.colors[tt.subsets[i]]
				if i == 15 {
					want = tt.last
				}
				if px != want {
					t.Fatalf("pixel %d: got %+v, want %+v", i, px, want)
				}
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	if _, err := Decode(make([]byte, 16), KindUnknown); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("unknown kind: expected ErrUnsupportedFormat, got %v", err)
	}

	for _, k := range []Kind{KindBC1, KindBC2, KindBC3, KindBC7} {
		if _, err := Decode(make([]byte, k.BlockSize()-1), k); !errors.Is(err, ErrShortBlock) {
			t.Fatalf("%s: expected ErrShortBlock, got %v", k, err)
		}
	}
}

func TestBitReader(t *testing.T) {
	t.Parallel()

	r := newBitReader([]byte{0b1011_0110, 0b0000_0001})
	if got := r.bits(3); got != 0b110 {
		t.Fatalf("bits(3) = %b, want 110", got)
	}
	if got := r.bits(6); got != 0b110110 {
		t.Fatalf("bits(6) = %b, want 110110", got)
	}
	if got := r.bit(); got != 0 {
		t.Fatalf("bit() = %d, want 0", got)
	}
	if r.pos != 10 {
		t.Fatalf("pos = %d, want 10", r.pos)
	}
}
