package edds

import (
	"encoding/binary"
	"fmt"

	"github.com/pierrec/lz4/v4"
)

const (
	// BlockMagicCOPY marks an uncompressed block.
	BlockMagicCOPY = "COPY"
	// BlockMagicLZ4 marks an LZ4 chunk-stream block.
	BlockMagicLZ4 = "LZ4 "

	// ChunkSize is the Enfusion chunk size for LZ4 streams.
	ChunkSize = 64 * 1024

	// chunkLast flags the final chunk of a stream.
	chunkLast   = 0x80
	chunkHeader = 4
	tableEntry  = 8
)

// Block is one mip level body as stored in the file.
type Block struct {
	Magic string
	Data  []byte
}

type blockHeader struct {
	Magic string
	Size  int
}

// parseBlockTable reads count table entries from the start of data and
// returns them with the number of bytes consumed.
func parseBlockTable(data []byte, count int) ([]blockHeader, int, error) {
	if len(data) < count*tableEntry {
		return nil, 0, fmt.Errorf("%w: need %d bytes for %d entries, have %d", ErrBlockTableTruncated, count*tableEntry, count, len(data))
	}

	hdrs := make([]blockHeader, 0, count)
	for i := range count {
		entry := data[i*tableEntry : (i+1)*tableEntry]
		magic := string(entry[:4])
		size := int32(binary.LittleEndian.Uint32(entry[4:]))

		if magic != BlockMagicCOPY && magic != BlockMagicLZ4 {
			return nil, 0, fmt.Errorf("%w: %d: %q", ErrBlockTableUnknownMagic, i, magic)
		}
		if size < 0 {
			return nil, 0, fmt.Errorf("%w: %d: %d", ErrBlockTableInvalidSize, i, size)
		}

		hdrs = append(hdrs, blockHeader{Magic: magic, Size: int(size)})
	}

	return hdrs, count * tableEntry, nil
}

// splitBlocks cuts the block bodies described by hdrs from data. Bodies
// must cover data exactly.
func splitBlocks(data []byte, hdrs []blockHeader) ([]Block, error) {
	blocks := make([]Block, 0, len(hdrs))
	off := 0
	for i, h := range hdrs {
		if h.Size > len(data)-off {
			return nil, fmt.Errorf("%w: block %d: need %d bytes, have %d", ErrBlockBodyTruncated, i, h.Size, len(data)-off)
		}
		blocks = append(blocks, Block{Magic: h.Magic, Data: data[off : off+h.Size]})
		off += h.Size
	}
	if off != len(data) {
		return nil, fmt.Errorf("%w: %d bytes after the last block", ErrBlockLengthMismatch, len(data)-off)
	}

	return blocks, nil
}

// decompress inflates a block into exactly size bytes.
func (b Block) decompress(size int) ([]byte, error) {
	switch b.Magic {
	case BlockMagicCOPY:
		if len(b.Data) != size {
			return nil, fmt.Errorf("%w: expected %d, got %d", ErrCopySizeMismatch, size, len(b.Data))
		}
		return b.Data, nil
	case BlockMagicLZ4:
		return inflateChunks(stripSizePrefix(b.Data, size), size)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBlockMagic, b.Magic)
	}
}

// stripSizePrefix drops the optional u32 uncompressed size in front of the
// chunk stream when it matches size and a plausible chunk header follows.
func stripSizePrefix(data []byte, size int) []byte {
	if len(data) < 4+chunkHeader {
		return data
	}

	prefix := binary.LittleEndian.Uint32(data)
	first := read24(data[4:])
	if int64(prefix) == int64(size) && first > 0 && first < 1<<20 {
		return data[4:]
	}

	return data
}

// dictionary keeps the last ChunkSize decoded bytes for the next chunk.
type dictionary struct {
	buf []byte
}

func (d *dictionary) push(p []byte) {
	if len(p) >= ChunkSize {
		d.buf = append(d.buf[:0], p[len(p)-ChunkSize:]...)
		return
	}

	if drop := len(d.buf) + len(p) - ChunkSize; drop > 0 {
		d.buf = append(d.buf[:0], d.buf[drop:]...)
	}
	d.buf = append(d.buf, p...)
}

// inflateChunks decodes an Enfusion LZ4 chunk stream: each chunk is a
// 24-bit little-endian compressed size, a flag byte and an LZ4 block that
// may reference the previous 64 KiB of output.
func inflateChunks(data []byte, size int) ([]byte, error) {
	out := make([]byte, size)
	dict := &dictionary{buf: make([]byte, 0, ChunkSize)}
	outIdx, off := 0, 0

	for {
		if len(data)-off < chunkHeader {
			return nil, fmt.Errorf("%w: need %d bytes header, have %d", ErrChunkStreamTruncated, chunkHeader, len(data)-off)
		}

		cSize := read24(data[off:])
		flags := data[off+3]
		off += chunkHeader
		if flags&^chunkLast != 0 {
			return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownLZ4Flags, flags)
		}
		if cSize <= 0 || cSize > len(data)-off {
			return nil, fmt.Errorf("%w: %d (remaining %d)", ErrInvalidChunkSize, cSize, len(data)-off)
		}

		remaining := size - outIdx
		if remaining <= 0 {
			return nil, ErrDecodeOverrun
		}
		dst := out[outIdx : outIdx+min(ChunkSize, remaining)]

		n, err := lz4.UncompressBlockWithDict(data[off:off+cSize], dst, dict.buf)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLZ4Decode, err)
		}
		off += cSize

		dict.push(out[outIdx : outIdx+n])
		outIdx += n

		if flags&chunkLast != 0 {
			break
		}
	}

	if outIdx != size {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrDecodedSizeMismatch, size, outIdx)
	}
	if off != len(data) {
		return nil, fmt.Errorf("%w: %d bytes left after decode", ErrBlockLengthMismatch, len(data)-off)
	}

	return out, nil
}

func read24(b []byte) int {
	return int(b[0]) | int(b[1])<<8 | int(b[2])<<16
}
