package dds

import (
	"fmt"
	"image"
	"image/color"
	"io"
)

// Extensions lists the file name extensions of DDS files.
var Extensions = []string{".dds"}

// MIMETypes lists the MIME types used for DDS files.
var MIMETypes = []string{"image/vnd-ms.dds", "image/dds"}

func init() {
	image.RegisterFormat("dds", Magic, Decode, DecodeConfig)
}

// ImageType describes the RGBA8 raster a surface decodes to, so a host can
// allocate a compatible destination before decoding. Masks are given for
// the little-endian 32-bit view of one pixel.
type ImageType struct {
	BitsPerPixel  int
	RedMask       uint32
	GreenMask     uint32
	BlueMask      uint32
	AlphaMask     uint32
	Premultiplied bool
	SRGB          bool
}

// HasAlpha reports an alpha channel in the decoded raster.
func (t ImageType) HasAlpha() bool {
	return t.AlphaMask != 0
}

// ColorModel returns the image color model of the decoded raster.
func (t ImageType) ColorModel() color.Model {
	if t.Premultiplied {
		return color.RGBAModel
	}

	return color.NRGBAModel
}

func imageTypeFor(format PixelFormat, layout *pixelLayout, premultiplied bool) (ImageType, error) {
	alpha, err := formatHasAlpha(format, layout)
	if err != nil {
		return ImageType{}, err
	}

	t := ImageType{
		BitsPerPixel:  32,
		RedMask:       0x000000ff,
		GreenMask:     0x0000ff00,
		BlueMask:      0x00ff0000,
		Premultiplied: premultiplied,
		SRGB:          format.IsSRGB(),
	}
	if alpha {
		t.AlphaMask = 0xff000000
	}

	return t, nil
}

func formatHasAlpha(format PixelFormat, layout *pixelLayout) (bool, error) {
	if _, ok := channelDecoder(format); ok {
		return false, nil
	}
	if format.IsBlockCompressed() {
		if _, err := blockKind(format); err != nil {
			return false, err
		}
		return true, nil
	}

	l, err := Surface{format: format, layout: layout}.pixelLayout()
	if err != nil {
		return false, err
	}

	if l.enc == encUNorm {
		return l.masks[3] != 0, nil
	}

	return l.channels == 4, nil
}

// Decode reads a DDS stream and returns its first surface.
func Decode(r io.Reader) (image.Image, error) {
	f, err := Load(r)
	if err != nil {
		return nil, err
	}

	s, ok := f.Surface(0)
	if !ok {
		return nil, fmt.Errorf("%w: no surfaces", ErrMalformedHeader)
	}

	return s.Image(nil)
}

// DecodeConfig returns the size and color model of the first surface
// without reading pixel data.
func DecodeConfig(r io.Reader) (image.Config, error) {
	h, ext, err := ReadHeaders(r, nil)
	if err != nil {
		return image.Config{}, err
	}

	format := DerivePixelFormat(h, ext)
	t, err := imageTypeFor(format, headerLayout(h, ext), premultipliedAlpha(h, ext))
	if err != nil {
		return image.Config{}, err
	}

	return image.Config{
		ColorModel: t.ColorModel(),
		Width:      max(1, int(h.Width)),
		Height:     max(1, int(h.Height)),
	}, nil
}
