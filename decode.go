package dds

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image/color"
	"math"
	"math/bits"

	"github.com/woozymasta/bcn"
	"github.com/woozymasta/dds/bc"
	"github.com/x448/float16"
)

// DecodeOptions configures surface decoding.
type DecodeOptions struct {
	// Workers is the number of goroutines decoding block rows.
	// Zero or negative uses GOMAXPROCS; 1 decodes sequentially.
	Workers int
	// RejectReservedBlocks fails the surface on a reserved BC7 mode block
	// instead of decoding it as transparent black.
	RejectReservedBlocks bool
}

func (o *DecodeOptions) workers() int {
	if o == nil {
		return 0
	}

	return o.Workers
}

func (o *DecodeOptions) rejectReserved() bool {
	return o != nil && o.RejectReservedBlocks
}

func (o *DecodeOptions) bcnOptions() *bcn.DecodeOptions {
	return &bcn.DecodeOptions{Workers: max(0, o.workers())}
}

// DecodeRGBA8WithOptions decodes the surface into 8-bit R, G, B, A bytes
// with a stride of 4*width. Nil opts uses defaults.
func (s Surface) DecodeRGBA8WithOptions(opts *DecodeOptions) (int, int, []byte, error) {
	w, h := s.Width, s.Height
	size, err := mulInt(w, h)
	if err == nil {
		size, err = mulInt(size, 4)
	}
	if err != nil {
		return 0, 0, nil, fmt.Errorf("%w: %dx%d", err, w, h)
	}

	want, err := CalculateSurfaceSize(h, w, s.format)
	if err != nil {
		return 0, 0, nil, err
	}
	if len(s.data) < want {
		return 0, 0, nil, fmt.Errorf("%w: surface has %d of %d bytes", ErrTruncatedData, len(s.data), want)
	}

	if dec, ok := channelDecoder(s.format); ok {
		pix, err := dec(s.data[:want], w, h, opts.bcnOptions())
		if err != nil {
			return 0, 0, nil, mapBCNErr(err)
		}
		return w, h, pix, nil
	}

	pix := make([]byte, size)

	if s.format.IsBlockCompressed() {
		kind, err := blockKind(s.format)
		if err != nil {
			return 0, 0, nil, err
		}
		if err := decodeBlocks(pix, s.data, w, h, kind, opts); err != nil {
			return 0, 0, nil, err
		}
		return w, h, pix, nil
	}

	layout, err := s.pixelLayout()
	if err != nil {
		return 0, 0, nil, err
	}

	pitch, err := CalculatePitch(w, s.format)
	if err != nil {
		return 0, 0, nil, err
	}
	err = parallelRows(h, opts.workers(), func(y int) error {
		layout.decodeRow(pix[y*4*w:(y+1)*4*w], s.data[y*pitch:], w)
		return nil
	})
	if err != nil {
		return 0, 0, nil, err
	}

	return w, h, pix, nil
}

func (s Surface) pixelLayout() (pixelLayout, error) {
	if s.layout != nil {
		return *s.layout, nil
	}

	return layoutFor(s.format)
}

// DecodeBlock decodes one compressed block of the given format.
func DecodeBlock(block []byte, format PixelFormat) (bc.Block, error) {
	if dec, ok := channelDecoder(format); ok {
		pix, err := dec(block, 4, 4, &bcn.DecodeOptions{Workers: 1})
		if err != nil {
			return bc.Block{}, mapBCNErr(err)
		}

		var out bc.Block
		for i := range out {
			out[i] = color.NRGBA{R: pix[4*i], G: pix[4*i+1], B: pix[4*i+2], A: pix[4*i+3]}
		}
		return out, nil
	}

	kind, err := blockKind(format)
	if err != nil {
		return bc.Block{}, err
	}

	out, err := bc.Decode(block, kind)
	if err != nil {
		return bc.Block{}, mapBlockErr(err)
	}

	return out, nil
}

func blockKind(format PixelFormat) (bc.Kind, error) {
	if f, ok := format.D3D(); ok {
		switch f {
		case D3DFormatDXT1:
			return bc.KindBC1, nil
		case D3DFormatDXT2, D3DFormatDXT3:
			return bc.KindBC2, nil
		case D3DFormatDXT4, D3DFormatDXT5:
			return bc.KindBC3, nil
		}
	}

	if f, ok := format.DXGI(); ok {
		switch f {
		case DXGIFormatBC1Typeless, DXGIFormatBC1UNorm, DXGIFormatBC1UNormSRGB:
			return bc.KindBC1, nil
		case DXGIFormatBC2Typeless, DXGIFormatBC2UNorm, DXGIFormatBC2UNormSRGB:
			return bc.KindBC2, nil
		case DXGIFormatBC3Typeless, DXGIFormatBC3UNorm, DXGIFormatBC3UNormSRGB:
			return bc.KindBC3, nil
		case DXGIFormatBC7Typeless, DXGIFormatBC7UNorm, DXGIFormatBC7UNormSRGB:
			return bc.KindBC7, nil
		}
	}

	return bc.KindUnknown, fmt.Errorf("%w: %s", ErrUnsupportedBlockCompression, format)
}

type channelDecodeFunc func(data []byte, width, height int, opts *bcn.DecodeOptions) ([]byte, error)

// channelDecoder returns the bcn decoder of the unsigned BC4 and BC5
// formats. BC4 replicates red into green and blue; BC5 leaves blue at zero.
// Both decode opaque.
func channelDecoder(format PixelFormat) (channelDecodeFunc, bool) {
	f, ok := format.DXGI()
	if !ok {
		return nil, false
	}

	switch f {
	case DXGIFormatBC4Typeless, DXGIFormatBC4UNorm:
		return bcn.DecodeBC4WithOptions, true
	case DXGIFormatBC5Typeless, DXGIFormatBC5UNorm:
		return bcn.DecodeBC5WithOptions, true
	default:
		return nil, false
	}
}

func mapBCNErr(err error) error {
	if errors.Is(err, bcn.ErrInsufficientData) {
		return fmt.Errorf("%w: %v", ErrTruncatedData, err)
	}

	return fmt.Errorf("%w: %v", ErrInvalidBitstream, err)
}

func mapBlockErr(err error) error {
	switch {
	case errors.Is(err, bc.ErrUnsupportedFormat):
		return fmt.Errorf("%w: %v", ErrUnsupportedBlockCompression, err)
	case errors.Is(err, bc.ErrShortBlock):
		return fmt.Errorf("%w: %v", ErrTruncatedData, err)
	default:
		return err
	}
}

// decodeBlocks decodes a block compressed surface row of blocks at a time.
func decodeBlocks(pix, data []byte, w, h int, kind bc.Kind, opts *DecodeOptions) error {
	blockSize := kind.BlockSize()
	blocksX := max(1, ceilDiv(w, 4))
	blocksY := max(1, ceilDiv(h, 4))
	stride := 4 * w
	reject := kind == bc.KindBC7 && opts.rejectReserved()

	return parallelRows(blocksY, opts.workers(), func(by int) error {
		for bx := range blocksX {
			off := (by*blocksX + bx) * blockSize
			block := data[off : off+blockSize]
			if reject && bc.BC7Mode(block) == bc.ReservedMode {
				return fmt.Errorf("%w: reserved BC7 mode in block (%d, %d)", ErrInvalidBitstream, bx, by)
			}

			out, err := bc.Decode(block, kind)
			if err != nil {
				return mapBlockErr(err)
			}

			for y := range min(4, h-4*by) {
				row := pix[(4*by+y)*stride:]
				for x := range min(4, w-4*bx) {
					c := out[x+4*y]
					i := 4 * (4*bx + x)
					row[i], row[i+1], row[i+2], row[i+3] = c.R, c.G, c.B, c.A
				}
			}
		}
		return nil
	})
}

type encoding uint8

const (
	encUNorm encoding = iota
	encHalf
	encFloat
)

// pixelLayout describes how to expand one uncompressed pixel to RGBA8.
type pixelLayout struct {
	bytes     int
	enc       encoding
	masks     [4]uint64 // R, G, B, A for encUNorm
	channels  int       // float channel count
	luminance bool
}

func maskLayout(bytes int, r, g, b, a uint64) pixelLayout {
	return pixelLayout{bytes: bytes, enc: encUNorm, masks: [4]uint64{r, g, b, a}}
}

// layoutFor returns the fixed layout of a modern uncompressed format.
func layoutFor(format PixelFormat) (pixelLayout, error) {
	if format.IsPacked() || format.IsPlanar() || format.IsYUV() {
		return pixelLayout{}, fmt.Errorf("%w: %s cannot be decoded to RGBA8", ErrUnsupportedPixelFormat, format)
	}

	f, ok := format.DXGI()
	if !ok {
		if d, ok := format.D3D(); ok {
			if l, ok := legacyLayouts[d]; ok {
				return l, nil
			}
		}
		return pixelLayout{}, fmt.Errorf("%w: %s cannot be decoded to RGBA8", ErrUnsupportedPixelFormat, format)
	}

	switch f {
	case DXGIFormatR8G8B8A8UNorm, DXGIFormatR8G8B8A8UNormSRGB:
		return maskLayout(4, 0xff, 0xff00, 0xff0000, 0xff000000), nil
	case DXGIFormatB8G8R8A8UNorm, DXGIFormatB8G8R8A8UNormSRGB:
		return maskLayout(4, 0xff0000, 0xff00, 0xff, 0xff000000), nil
	case DXGIFormatB8G8R8X8UNorm, DXGIFormatB8G8R8X8UNormSRGB:
		return maskLayout(4, 0xff0000, 0xff00, 0xff, 0), nil
	case DXGIFormatR10G10B10A2UNorm:
		return maskLayout(4, 0x3ff, 0xffc00, 0x3ff00000, 0xc0000000), nil
	case DXGIFormatR16G16UNorm:
		return maskLayout(4, 0xffff, 0xffff0000, 0, 0), nil
	case DXGIFormatR16G16B16A16UNorm:
		return maskLayout(8, 0xffff, 0xffff<<16, 0xffff<<32, 0xffff<<48), nil
	case DXGIFormatB5G6R5UNorm:
		return maskLayout(2, 0xf800, 0x07e0, 0x001f, 0), nil
	case DXGIFormatB5G5R5A1UNorm:
		return maskLayout(2, 0x7c00, 0x03e0, 0x001f, 0x8000), nil
	case DXGIFormatB4G4R4A4UNorm:
		return maskLayout(2, 0x0f00, 0x00f0, 0x000f, 0xf000), nil
	case DXGIFormatR8G8UNorm:
		return maskLayout(2, 0xff, 0xff00, 0, 0), nil
	case DXGIFormatR16UNorm:
		return maskLayout(2, 0xffff, 0, 0, 0), nil
	case DXGIFormatR8UNorm:
		return maskLayout(1, 0xff, 0, 0, 0), nil
	case DXGIFormatA8UNorm:
		return maskLayout(1, 0, 0, 0, 0xff), nil

	case DXGIFormatR16Float:
		return pixelLayout{bytes: 2, enc: encHalf, channels: 1}, nil
	case DXGIFormatR16G16Float:
		return pixelLayout{bytes: 4, enc: encHalf, channels: 2}, nil
	case DXGIFormatR16G16B16A16Float:
		return pixelLayout{bytes: 8, enc: encHalf, channels: 4}, nil
	case DXGIFormatR32Float:
		return pixelLayout{bytes: 4, enc: encFloat, channels: 1}, nil
	case DXGIFormatR32G32Float:
		return pixelLayout{bytes: 8, enc: encFloat, channels: 2}, nil
	case DXGIFormatR32G32B32Float:
		return pixelLayout{bytes: 12, enc: encFloat, channels: 3}, nil
	case DXGIFormatR32G32B32A32Float:
		return pixelLayout{bytes: 16, enc: encFloat, channels: 4}, nil
	}

	return pixelLayout{}, fmt.Errorf("%w: %s cannot be decoded to RGBA8", ErrUnsupportedPixelFormat, format)
}

// legacyLayouts covers legacy formats without a DXGI equivalent.
var legacyLayouts = map[D3DFormat]pixelLayout{
	D3DFormatR8G8B8:      maskLayout(3, 0xff0000, 0xff00, 0xff, 0),
	D3DFormatX8B8G8R8:    maskLayout(4, 0xff, 0xff00, 0xff0000, 0),
	D3DFormatA8B8G8R8:    maskLayout(4, 0xff, 0xff00, 0xff0000, 0xff000000),
	D3DFormatA8R8G8B8:    maskLayout(4, 0xff0000, 0xff00, 0xff, 0xff000000),
	D3DFormatX8R8G8B8:    maskLayout(4, 0xff0000, 0xff00, 0xff, 0),
	D3DFormatA2R10G10B10: maskLayout(4, 0x3ff00000, 0xffc00, 0x3ff, 0xc0000000),
	D3DFormatA2B10G10R10: maskLayout(4, 0x3ff, 0xffc00, 0x3ff00000, 0xc0000000),
	D3DFormatG16R16:      maskLayout(4, 0xffff, 0xffff0000, 0, 0),
	D3DFormatR5G6B5:      maskLayout(2, 0xf800, 0x07e0, 0x001f, 0),
	D3DFormatX1R5G5B5:    maskLayout(2, 0x7c00, 0x03e0, 0x001f, 0),
	D3DFormatA1R5G5B5:    maskLayout(2, 0x7c00, 0x03e0, 0x001f, 0x8000),
	D3DFormatA4R4G4B4:    maskLayout(2, 0x0f00, 0x00f0, 0x000f, 0xf000),
	D3DFormatX4R4G4B4:    maskLayout(2, 0x0f00, 0x00f0, 0x000f, 0),
	D3DFormatA8R3G3B2:    maskLayout(2, 0xe0, 0x1c, 0x03, 0xff00),
	D3DFormatR3G3B2:      maskLayout(1, 0xe0, 0x1c, 0x03, 0),
	D3DFormatA8:          maskLayout(1, 0, 0, 0, 0xff),
	D3DFormatL8:          {bytes: 1, masks: [4]uint64{0xff, 0, 0, 0}, luminance: true},
	D3DFormatL16:         {bytes: 2, masks: [4]uint64{0xffff, 0, 0, 0}, luminance: true},
	D3DFormatA8L8:        {bytes: 2, masks: [4]uint64{0xff, 0, 0, 0xff00}, luminance: true},
	D3DFormatA4L4:        {bytes: 1, masks: [4]uint64{0x0f, 0, 0, 0xf0}, luminance: true},
}

// headerLayout returns the layout given by the legacy header masks for
// RGB, luminance and alpha-only pixel formats, or nil.
func headerLayout(h Header, ext *ExtendedHeader) *pixelLayout {
	pf := h.PixelFormat
	if ext != nil || pf.hasFlag(PFFourCC) {
		return nil
	}

	d3d := DeriveD3DFormat(pf)
	base, ok := legacyLayouts[d3d]
	if !ok {
		return nil
	}

	l := pixelLayout{
		bytes:     int(pf.RGBBitCount / 8),
		enc:       encUNorm,
		masks:     [4]uint64{uint64(pf.RBitMask), uint64(pf.GBitMask), uint64(pf.BBitMask), 0},
		luminance: base.luminance,
	}
	if pf.Flags&(PFAlphaPixels|PFAlpha) != 0 || (base.luminance && base.masks[3] != 0) {
		l.masks[3] = uint64(pf.ABitMask)
	}
	if pf.hasFlag(PFAlpha) && !pf.hasFlag(PFRGB) {
		l.masks[0] = 0
	}
	if l.bytes != base.bytes {
		return nil
	}

	return &l
}

func (l pixelLayout) decodeRow(dst, src []byte, w int) {
	for x := range w {
		px := src[x*l.bytes : (x+1)*l.bytes]
		d := dst[4*x : 4*x+4]

		switch l.enc {
		case encUNorm:
			v := readUint(px)
			d[0] = extract(v, l.masks[0], 0)
			d[1] = extract(v, l.masks[1], 0)
			d[2] = extract(v, l.masks[2], 0)
			d[3] = extract(v, l.masks[3], 0xff)
			if l.luminance {
				d[1], d[2] = d[0], d[0]
			}

		case encHalf, encFloat:
			d[0], d[1], d[2], d[3] = 0, 0, 0, 0xff
			for c := range l.channels {
				d[c] = unitToByte(l.channel(px, c))
			}
		}
	}
}

func (l pixelLayout) channel(px []byte, c int) float32 {
	if l.enc == encHalf {
		return float16.Frombits(binary.LittleEndian.Uint16(px[2*c:])).Float32()
	}

	return math.Float32frombits(binary.LittleEndian.Uint32(px[4*c:]))
}

func readUint(px []byte) uint64 {
	var v uint64
	for i, b := range px {
		v |= uint64(b) << (8 * i)
	}

	return v
}

// extract scales the masked field of v to 8 bits. def is returned for an
// empty mask.
func extract(v, mask uint64, def uint8) uint8 {
	if mask == 0 {
		return def
	}

	shift := bits.TrailingZeros64(mask)
	width := bits.OnesCount64(mask)
	field := (v & mask) >> shift
	if width == 8 {
		return uint8(field)
	}

	maxVal := uint64(1)<<width - 1
	return uint8((field*255 + maxVal/2) / maxVal)
}

func unitToByte(f float32) uint8 {
	switch {
	case math.IsNaN(float64(f)) || f <= 0:
		return 0
	case f >= 1:
		return 255
	default:
		return uint8(f*255 + 0.5)
	}
}
