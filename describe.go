package dds

import (
	"fmt"
	"strings"
)

type flagName struct {
	bit  uint32
	name string
}

var headerFlagNames = []flagName{
	{FlagCaps, "CAPS"},
	{FlagHeight, "HEIGHT"},
	{FlagWidth, "WIDTH"},
	{FlagPitch, "PITCH"},
	{FlagPixelFormat, "PIXELFORMAT"},
	{FlagMipmapCount, "MIPMAPCOUNT"},
	{FlagLinearSize, "LINEARSIZE"},
	{FlagDepth, "DEPTH"},
}

var capsNames = []flagName{
	{CapsComplex, "COMPLEX"},
	{CapsTexture, "TEXTURE"},
	{CapsMipmap, "MIPMAP"},
}

var caps2Names = []flagName{
	{Caps2Cubemap, "CUBEMAP"},
	{Caps2CubemapPositiveX, "POSITIVEX"},
	{Caps2CubemapNegativeX, "NEGATIVEX"},
	{Caps2CubemapPositiveY, "POSITIVEY"},
	{Caps2CubemapNegativeY, "NEGATIVEY"},
	{Caps2CubemapPositiveZ, "POSITIVEZ"},
	{Caps2CubemapNegativeZ, "NEGATIVEZ"},
	{Caps2Volume, "VOLUME"},
}

var pixelFormatFlagNames = []flagName{
	{PFAlphaPixels, "ALPHAPIXELS"},
	{PFAlpha, "ALPHA"},
	{PFFourCC, "FOURCC"},
	{PFPaletteIndex8, "PALETTEINDEXED8"},
	{PFRGB, "RGB"},
	{PFYUV, "YUV"},
	{PFLuminance, "LUMINANCE"},
	{PFBumpLuminance, "BUMPLUMINANCE"},
	{PFBumpDuDv, "BUMPDUDV"},
}

// flagString renders v as names joined by "|", with unknown bits in hex.
func flagString(v uint32, names []flagName) string {
	var parts []string
	for _, n := range names {
		if v&n.bit == n.bit {
			parts = append(parts, n.name)
			v &^= n.bit
		}
	}
	if v != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", v))
	}

	return strings.Join(parts, "|")
}

// describeFourCC quotes printable codes and prints numeric codes such as
// the D3DFMT float ordinals as numbers.
func describeFourCC(v uint32) string {
	for i := range 4 {
		if c := byte(v >> (8 * i)); c < 0x20 || c > 0x7e {
			return fmt.Sprintf("%d", v)
		}
	}

	return fmt.Sprintf("%q", fourCCString(v))
}

// fields collects "name=value" pairs, skipping zero values.
type fields []string

func (f *fields) add(name string, v uint32, format string) {
	if v != 0 {
		*f = append(*f, name+"="+fmt.Sprintf(format, v))
	}
}

func (f *fields) addFlags(name string, v uint32, names []flagName) {
	if v != 0 {
		*f = append(*f, name+"="+flagString(v, names))
	}
}

func (f fields) render(kind string) string {
	return kind + "{" + strings.Join(f, ", ") + "}"
}

func (pf DDPixelFormat) String() string {
	var f fields
	if pf.Size != PixelFormatSize {
		f.add("size", pf.Size, "%d")
	}
	f.addFlags("flags", pf.Flags, pixelFormatFlagNames)
	if pf.FourCC != 0 {
		f = append(f, "fourCC="+describeFourCC(pf.FourCC))
	}
	f.add("rgbBitCount", pf.RGBBitCount, "%d")
	f.add("r", pf.RBitMask, "0x%x")
	f.add("g", pf.GBitMask, "0x%x")
	f.add("b", pf.BBitMask, "0x%x")
	f.add("a", pf.ABitMask, "0x%x")

	return f.render("PixelFormat")
}

func (h Header) String() string {
	var f fields
	if h.Size != HeaderSize {
		f.add("size", h.Size, "%d")
	}
	f.addFlags("flags", h.Flags, headerFlagNames)
	f.add("height", h.Height, "%d")
	f.add("width", h.Width, "%d")
	f.add("pitchOrLinearSize", h.PitchOrLinearSize, "%d")
	f.add("depth", h.Depth, "%d")
	f.add("mipMapCount", h.MipMapCount, "%d")
	f = append(f, "pixelFormat="+h.PixelFormat.String())
	f.addFlags("caps", h.Caps, capsNames)
	f.addFlags("caps2", h.Caps2, caps2Names)
	f.add("caps3", h.Caps3, "0x%x")
	f.add("caps4", h.Caps4, "0x%x")

	return f.render("Header")
}

func (e ExtendedHeader) String() string {
	var f fields
	f = append(f, "format="+e.DXGIFormat.String(), "dimension="+e.ResourceDimension.String())
	if e.MiscFlag == MiscTextureCube {
		f = append(f, "misc=TEXTURECUBE")
	} else {
		f.add("misc", e.MiscFlag, "0x%x")
	}
	f.add("arraySize", e.ArraySize, "%d")
	if mode := e.AlphaMode(); mode != AlphaModeUnknown {
		f = append(f, "alphaMode="+mode.String())
	}
	f.add("miscFlags2", e.MiscFlags2&^miscAlphaModeMsk, "0x%x")

	return f.render("ExtendedHeader")
}

func (d ResourceDimension) String() string {
	switch d {
	case DimensionUnknown:
		return "unknown"
	case DimensionBuffer:
		return "buffer"
	case DimensionTexture1D:
		return "texture1d"
	case DimensionTexture2D:
		return "texture2d"
	case DimensionTexture3D:
		return "texture3d"
	default:
		return fmt.Sprintf("ResourceDimension(%d)", uint32(d))
	}
}

func (m AlphaMode) String() string {
	switch m {
	case AlphaModeUnknown:
		return "unknown"
	case AlphaModeStraight:
		return "straight"
	case AlphaModePremultiplied:
		return "premultiplied"
	case AlphaModeOpaque:
		return "opaque"
	case AlphaModeCustom:
		return "custom"
	default:
		return fmt.Sprintf("AlphaMode(%d)", uint32(m))
	}
}

func (s Surface) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Surface{%dx%d %s", s.Width, s.Height, s.format)
	if s.ArrayIndex != 0 {
		fmt.Fprintf(&b, ", array=%d", s.ArrayIndex)
	}
	if s.FaceIndex != 0 {
		fmt.Fprintf(&b, ", face=%d", s.FaceIndex)
	}
	if s.MipLevel != 0 {
		fmt.Fprintf(&b, ", mip=%d", s.MipLevel)
	}
	if s.ZSlice != 0 {
		fmt.Fprintf(&b, ", z=%d", s.ZSlice)
	}
	fmt.Fprintf(&b, ", %d bytes}", len(s.data))

	return b.String()
}

func (f *File) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "File{%s, %s", f.header, f.format)
	if f.ext != nil {
		fmt.Fprintf(&b, ", %s", *f.ext)
	}
	if f.premultiplied {
		b.WriteString(", premultiplied")
	}
	fmt.Fprintf(&b, ", surfaces=%d}", len(f.surfaces))

	return b.String()
}
