package main

import (
	"bytes"
	"errors"
	"image"
	"path/filepath"
	"testing"

	"github.com/woozymasta/dds"
	"github.com/woozymasta/dds/ddsfile"
)

func TestOutputPath(t *testing.T) {
	t.Parallel()

	s := dds.Surface{ArrayIndex: 1, FaceIndex: 2, MipLevel: 3}

	tests := []struct {
		name    string
		path    string
		cfg     config
		indexed bool
		want    string
	}{
		{"next to input", filepath.Join("a", "tex.dds"), config{format: "png"}, false, filepath.Join("a", "tex.png")},
		{"compressed suffix", filepath.Join("a", "tex.edds.zst"), config{format: "bmp"}, false, filepath.Join("a", "tex.bmp")},
		{"out dir", "tex.dds", config{format: "TIFF", outDir: "out"}, false, filepath.Join("out", "tex.tiff")},
		{"indexed", "tex.dds", config{format: "png"}, true, "tex_a1_f2_m3_z0.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := outputPath(tt.path, tt.cfg, s, tt.indexed); got != tt.want {
				t.Fatalf("outputPath=%q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncoderFor(t *testing.T) {
	t.Parallel()

	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for _, format := range []string{"png", "bmp", "tiff", "tif"} {
		enc, err := encoderFor(format)
		if err != nil {
			t.Fatalf("encoderFor(%q): %v", format, err)
		}
		var buf bytes.Buffer
		if err := enc(&buf, img); err != nil {
			t.Fatalf("%s encode: %v", format, err)
		}
		if buf.Len() == 0 {
			t.Fatalf("%s encode wrote nothing", format)
		}
	}

	if _, err := encoderFor("jpeg"); !errors.Is(err, errUnknownFormat) {
		t.Fatalf("err=%v, want errUnknownFormat", err)
	}
}

func TestParseContainer(t *testing.T) {
	t.Parallel()

	tests := map[string]ddsfile.Container{
		"auto": ddsfile.ContainerAuto,
		"DDS":  ddsfile.ContainerDDS,
		"edds": ddsfile.ContainerEDDS,
	}
	for in, want := range tests {
		got, err := parseContainer(in)
		if err != nil || got != want {
			t.Fatalf("parseContainer(%q)=%s, %v, want %s", in, got, err, want)
		}
	}

	if _, err := parseContainer("zip"); err == nil {
		t.Fatalf("parseContainer accepted zip")
	}
}
