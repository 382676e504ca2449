// ddsconv decodes DDS and EDDS textures to common raster formats.
//
// Usage:
//
//	ddsconv [flags] <file> [<file> ...]
//
// Inputs may be wrapped in gzip, zlib, zstd or LZ4 frame compression.
// By default only the first surface is written, next to the input file.
//
// Exit codes:
//
//	0: all files converted
//	1: one or more files failed
//	2: usage error
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/woozymasta/dds"
	"github.com/woozymasta/dds/ddsfile"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var errUnknownFormat = errors.New("unknown output format")

type config struct {
	info      bool
	all       bool
	format    string
	outDir    string
	workers   int
	strict    bool
	container string
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("ddsconv: ")

	var cfg config
	fs := flag.NewFlagSet("ddsconv", flag.ExitOnError)
	fs.BoolVar(&cfg.info, "info", false, "print headers and surfaces instead of converting")
	fs.BoolVar(&cfg.all, "all", false, "write every surface, not only the first")
	fs.StringVar(&cfg.format, "format", "png", "output format: png, bmp or tiff")
	fs.StringVar(&cfg.outDir, "out", "", "output directory (default: next to the input)")
	fs.IntVar(&cfg.workers, "workers", 0, "decode goroutines, 0 uses GOMAXPROCS")
	fs.BoolVar(&cfg.strict, "strict", false, "enforce strict header validation")
	fs.StringVar(&cfg.container, "container", "auto", "input container: auto, dds or edds")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: ddsconv [flags] <file> [<file> ...]\n\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[1:])

	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(2)
	}
	if _, err := encoderFor(cfg.format); err != nil {
		log.Print(err)
		os.Exit(2)
	}
	container, err := parseContainer(cfg.container)
	if err != nil {
		log.Print(err)
		os.Exit(2)
	}

	opts := &ddsfile.Options{
		Load:      &dds.LoadOptions{Strict: cfg.strict},
		Container: container,
	}

	failed := false
	for _, path := range fs.Args() {
		if err := run(path, cfg, opts); err != nil {
			log.Printf("%s: %v", path, err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func parseContainer(s string) (ddsfile.Container, error) {
	switch strings.ToLower(s) {
	case "auto":
		return ddsfile.ContainerAuto, nil
	case "dds":
		return ddsfile.ContainerDDS, nil
	case "edds":
		return ddsfile.ContainerEDDS, nil
	default:
		return 0, fmt.Errorf("unknown container %q", s)
	}
}

type encodeFunc func(io.Writer, image.Image) error

func encoderFor(format string) (encodeFunc, error) {
	switch strings.ToLower(format) {
	case "png":
		return png.Encode, nil
	case "bmp":
		return bmp.Encode, nil
	case "tiff", "tif":
		return func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownFormat, format)
	}
}

func run(path string, cfg config, opts *ddsfile.Options) error {
	f, err := ddsfile.Open(path, opts)
	if err != nil {
		return err
	}

	if cfg.info {
		printInfo(os.Stdout, path, f)
		return nil
	}

	enc, err := encoderFor(cfg.format)
	if err != nil {
		return err
	}

	surfaces := f.Surfaces()
	if !cfg.all && len(surfaces) > 1 {
		surfaces = surfaces[:1]
	}

	if cfg.outDir != "" {
		if err := os.MkdirAll(cfg.outDir, 0o755); err != nil {
			return err
		}
	}

	decOpts := &dds.DecodeOptions{Workers: cfg.workers}
	for _, s := range surfaces {
		img, err := s.Image(decOpts)
		if err != nil {
			return fmt.Errorf("%s: %w", s, err)
		}

		out := outputPath(path, cfg, s, len(surfaces) > 1)
		if err := writeImage(out, img, enc); err != nil {
			return err
		}
		log.Printf("%s -> %s", path, out)
	}

	return nil
}

func printInfo(w io.Writer, path string, f *dds.File) {
	fmt.Fprintf(w, "%s\n", path)
	fmt.Fprintf(w, "  %s\n", f.Header())
	if ext := f.ExtendedHeader(); ext != nil {
		fmt.Fprintf(w, "  %s\n", *ext)
	}
	fmt.Fprintf(w, "  format: %s\n", f.PixelFormat())
	if t, err := f.ImageType(); err == nil {
		fmt.Fprintf(w, "  alpha: %v, srgb: %v, premultiplied: %v\n", t.HasAlpha(), t.SRGB, t.Premultiplied)
	} else {
		fmt.Fprintf(w, "  decode: %v\n", err)
	}
	for _, s := range f.Surfaces() {
		fmt.Fprintf(w, "  %s\n", s)
	}
}

// outputPath names one output file. Surface coordinates are appended when
// more than one surface is written.
func outputPath(path string, cfg config, s dds.Surface, indexed bool) string {
	base := filepath.Base(path)
	for {
		ext := filepath.Ext(base)
		if ext == "" {
			break
		}
		base = strings.TrimSuffix(base, ext)
	}
	if indexed {
		base = fmt.Sprintf("%s_a%d_f%d_m%d_z%d", base, s.ArrayIndex, s.FaceIndex, s.MipLevel, s.ZSlice)
	}

	dir := cfg.outDir
	if dir == "" {
		dir = filepath.Dir(path)
	}

	return filepath.Join(dir, base+"."+strings.ToLower(cfg.format))
}

func writeImage(path string, img image.Image, enc encodeFunc) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := enc(out, img); err != nil {
		_ = out.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}

	return out.Close()
}
