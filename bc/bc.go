// Package bc decodes single BC1, BC2, BC3 and BC7 blocks into 4x4 pixels.
//
// Every decoder is a pure function of the block bytes. Pixels are returned
// in row-major order, out[x+4*y], with the channel values stored in the
// block; no premultiplication or color space conversion is applied.
package bc

import (
	"errors"
	"fmt"
	"image/color"
)

var (
	// ErrUnsupportedFormat indicates a block kind without a decoder.
	ErrUnsupportedFormat = errors.New("unsupported block format")
	// ErrShortBlock indicates fewer bytes than one block.
	ErrShortBlock = errors.New("short block")
)

// Kind selects a block decoder.
type Kind uint8

// Block kinds.
const (
	KindUnknown Kind = iota
	KindBC1
	KindBC2
	KindBC3
	KindBC7
)

func (k Kind) String() string {
	switch k {
	case KindBC1:
		return "BC1"
	case KindBC2:
		return "BC2"
	case KindBC3:
		return "BC3"
	case KindBC7:
		return "BC7"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// BlockSize returns the encoded size of one block in bytes, or 0.
func (k Kind) BlockSize() int {
	switch k {
	case KindBC1:
		return 8
	case KindBC2, KindBC3, KindBC7:
		return 16
	default:
		return 0
	}
}

// Block is one decoded 4x4 block.
type Block [16]color.NRGBA

// Decode decodes one block of the given kind. Extra bytes past the block
// size are ignored.
func Decode(block []byte, k Kind) (Block, error) {
	switch k {
	case KindBC1:
		return DecodeBC1(block)
	case KindBC2:
		return DecodeBC2(block)
	case KindBC3:
		return DecodeBC3(block)
	case KindBC7:
		return DecodeBC7(block)
	default:
		return Block{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, k)
	}
}

func checkLen(block []byte, k Kind) error {
	if len(block) < k.BlockSize() {
		return fmt.Errorf("%w: %s needs %d bytes, have %d", ErrShortBlock, k, k.BlockSize(), len(block))
	}

	return nil
}
