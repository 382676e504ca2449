// Package ddsfile loads DDS and EDDS textures from files or streams that
// may be wrapped in gzip, zlib, zstd or LZ4 frame compression.
package ddsfile

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/woozymasta/dds"
	"github.com/woozymasta/dds/edds"
)

var (
	// ErrOpenFile indicates file open failed.
	ErrOpenFile = errors.New("open file failed")
	// ErrPeek indicates the leading bytes could not be read.
	ErrPeek = errors.New("reading leading bytes failed")
	// ErrDecompress indicates a compression wrapper could not be opened.
	ErrDecompress = errors.New("decompression failed")
)

// Container selects how the unwrapped stream is parsed.
type Container uint8

// Containers.
const (
	// ContainerAuto picks EDDS for ".edds" paths and DDS otherwise.
	ContainerAuto Container = iota
	ContainerDDS
	ContainerEDDS
)

func (c Container) String() string {
	switch c {
	case ContainerAuto:
		return "auto"
	case ContainerDDS:
		return "dds"
	case ContainerEDDS:
		return "edds"
	default:
		return fmt.Sprintf("Container(%d)", uint8(c))
	}
}

// Compression is a stream wrapper detected by its magic.
type Compression uint8

// Compressions.
const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZlib
	CompressionZstd
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGzip:
		return "gzip"
	case CompressionZlib:
		return "zlib"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
}

// compressedSuffixes are stripped before the container extension is checked.
var compressedSuffixes = []string{".gz", ".zz", ".zst", ".lz4"}

// Options configures loading. Nil uses defaults.
type Options struct {
	// Load is passed to the DDS loader.
	Load *dds.LoadOptions
	// Container forces a container instead of the extension check.
	Container Container
}

func (o *Options) load() *dds.LoadOptions {
	if o == nil {
		return nil
	}

	return o.Load
}

func (o *Options) container() Container {
	if o == nil {
		return ContainerAuto
	}

	return o.Container
}

// Open loads the texture at path.
func Open(path string, opts *Options) (*dds.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}
	defer func() { _ = f.Close() }()

	if opts.container() == ContainerAuto {
		o := Options{Container: ContainerForPath(path)}
		if opts != nil {
			o.Load = opts.Load
		}
		opts = &o
	}

	return Load(f, opts)
}

// ContainerForPath returns the container implied by the file extension,
// ignoring a trailing compression suffix.
func ContainerForPath(path string) Container {
	name := strings.ToLower(filepath.Base(path))
	for _, suffix := range compressedSuffixes {
		if trimmed, ok := strings.CutSuffix(name, suffix); ok {
			name = trimmed
			break
		}
	}

	if filepath.Ext(name) == ".edds" {
		return ContainerEDDS
	}

	return ContainerDDS
}

// Load unwraps r and parses the texture. ContainerAuto means DDS here,
// since a stream has no extension.
func Load(r io.Reader, opts *Options) (*dds.File, error) {
	src, closeFn, err := Unwrap(r)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	if opts.container() == ContainerEDDS {
		return edds.Load(src, opts.load())
	}

	return dds.LoadWithOptions(src, opts.load())
}

// Detect reports the compression wrapper of the leading bytes.
func Detect(head []byte) Compression {
	switch {
	case bytes.HasPrefix(head, []byte{0x1f, 0x8b}):
		return CompressionGzip
	case bytes.HasPrefix(head, []byte{0x28, 0xb5, 0x2f, 0xfd}):
		return CompressionZstd
	case bytes.HasPrefix(head, []byte{0x04, 0x22, 0x4d, 0x18}):
		return CompressionLZ4
	case len(head) >= 2 && head[0]&0x0f == 8 && (uint16(head[0])<<8|uint16(head[1]))%31 == 0:
		return CompressionZlib
	default:
		return CompressionNone
	}
}

// Unwrap detects a compression wrapper and returns the decompressed
// stream with a function releasing decoder resources.
func Unwrap(r io.Reader) (io.Reader, func(), error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(4)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("%w: %v", ErrPeek, err)
	}

	noop := func() {}
	switch c := Detect(head); c {
	case CompressionGzip:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s: %v", ErrDecompress, c, err)
		}
		return zr, func() { _ = zr.Close() }, nil

	case CompressionZlib:
		zr, err := zlib.NewReader(br)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s: %v", ErrDecompress, c, err)
		}
		return zr, func() { _ = zr.Close() }, nil

	case CompressionZstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s: %v", ErrDecompress, c, err)
		}
		return zr, zr.Close, nil

	case CompressionLZ4:
		return lz4.NewReader(br), noop, nil

	default:
		return br, noop, nil
	}
}
