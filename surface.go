package dds

import (
	"bytes"
	"image"
)

// Surface is one image plane of a texture, keyed by array slice, cubemap
// face, mip level and depth slice.
type Surface struct {
	ArrayIndex int
	FaceIndex  int
	MipLevel   int
	ZSlice     int
	Width      int
	Height     int

	format        PixelFormat
	premultiplied bool
	layout        *pixelLayout
	data          []byte
}

// PixelFormat returns the format of the surface bytes.
func (s Surface) PixelFormat() PixelFormat {
	return s.format
}

// Len returns the stored size in bytes.
func (s Surface) Len() int {
	return len(s.data)
}

// Bytes returns a copy of the raw surface bytes.
func (s Surface) Bytes() []byte {
	return bytes.Clone(s.data)
}

// DecodeRGBA8 decodes the surface with default options.
func (s Surface) DecodeRGBA8() (int, int, []byte, error) {
	return s.DecodeRGBA8WithOptions(nil)
}

// Image decodes the surface into an *image.NRGBA, or an *image.RGBA when
// the texture stores premultiplied alpha.
func (s Surface) Image(opts *DecodeOptions) (image.Image, error) {
	w, h, pix, err := s.DecodeRGBA8WithOptions(opts)
	if err != nil {
		return nil, err
	}

	rect := image.Rect(0, 0, w, h)
	if s.premultiplied {
		return &image.RGBA{Pix: pix, Stride: 4 * w, Rect: rect}, nil
	}

	return &image.NRGBA{Pix: pix, Stride: 4 * w, Rect: rect}, nil
}
