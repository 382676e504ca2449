package edds

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/woozymasta/dds"
)

// LoadFile opens and loads an EDDS file.
func LoadFile(path string, opts *dds.LoadOptions) (*dds.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}
	defer func() { _ = f.Close() }()

	return Load(f, opts)
}

// Load reads an EDDS stream: DDS headers, a table of per-mip blocks ordered
// from the smallest mip to the largest, then the block bodies in the same
// order. The mips are reassembled largest first into a plain DDS stream and
// loaded with dds.LoadWithOptions.
func Load(r io.Reader, opts *dds.LoadOptions) (*dds.File, error) {
	var head bytes.Buffer
	header, ext, err := dds.ReadHeaders(io.TeeReader(r, &head), opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadHeaders, err)
	}

	sizes, err := mipSizes(header, ext)
	if err != nil {
		return nil, err
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadBody, err)
	}

	mips, err := readMipBlocks(body, sizes)
	if err != nil {
		legacy, legacyErr := readLegacySingleBlock(body, sizes[0])
		if legacyErr != nil || len(sizes) != 1 {
			return nil, err
		}
		mips = [][]byte{legacy}
	}

	stream := head.Bytes()
	for _, mip := range mips {
		stream = append(stream, mip...)
	}

	return dds.LoadWithOptions(bytes.NewReader(stream), opts)
}

// mipSizes returns the byte size of every mip level, largest first.
func mipSizes(h dds.Header, ext *dds.ExtendedHeader) ([]int, error) {
	if !h.IsFlatTexture() || (ext != nil && ext.ArraySize > 1) {
		return nil, fmt.Errorf("%w: only single 2D textures are stored as EDDS", ErrInvalidFormat)
	}

	format := dds.DerivePixelFormat(h, ext)
	count := 1
	if h.HasMipmaps() {
		count = max(1, int(h.MipMapCount))
	}

	w, ht := max(1, int(h.Width)), max(1, int(h.Height))
	sizes := make([]int, 0, count)
	for level := range count {
		size, err := dds.CalculateSurfaceSize(ht, w, format)
		if err != nil {
			return nil, fmt.Errorf("%w: mip %d: %w", ErrInvalidFormat, level, err)
		}
		sizes = append(sizes, size)

		if w == 1 && ht == 1 {
			break
		}
		// round up to match the chain dds.Load walks over the rebuilt stream
		w, ht = (w+1)/2, (ht+1)/2
	}

	return sizes, nil
}

// readMipBlocks parses the block table and inflates every block. The
// result is ordered largest mip first.
func readMipBlocks(body []byte, sizes []int) ([][]byte, error) {
	count := len(sizes)
	table, n, err := parseBlockTable(body, count)
	if err != nil {
		return nil, err
	}

	blocks, err := splitBlocks(body[n:], table)
	if err != nil {
		return nil, err
	}

	mips := make([][]byte, count)
	for i, block := range blocks {
		level := count - i - 1
		data, err := block.decompress(sizes[level])
		if err != nil {
			return nil, fmt.Errorf("%w: mip %d: %w", ErrDecompressBlock, level, err)
		}
		mips[level] = data
	}

	return mips, nil
}

// readLegacySingleBlock handles older files that store one payload without
// a block table: an LZ4 chunk stream, or raw data of the exact size.
func readLegacySingleBlock(body []byte, size int) ([]byte, error) {
	data, err := Block{Magic: BlockMagicLZ4, Data: body}.decompress(size)
	if err == nil {
		return data, nil
	}

	if len(body) == size {
		return body, nil
	}

	return nil, fmt.Errorf("%w: %v", ErrParseSingleBlock, err)
}
