package dds

// File is a loaded DDS texture. It is immutable after Load.
type File struct {
	header        Header
	ext           *ExtendedHeader
	format        PixelFormat
	premultiplied bool
	layout        *pixelLayout
	surfaces      []Surface
}

// Header returns the main header.
func (f *File) Header() Header {
	return f.header
}

// ExtendedHeader returns a copy of the DX10 header, or nil.
func (f *File) ExtendedHeader() *ExtendedHeader {
	if f.ext == nil {
		return nil
	}

	ext := *f.ext
	return &ext
}

// Width returns the top level width in pixels.
func (f *File) Width() int {
	return int(f.header.Width)
}

// Height returns the top level height in pixels.
func (f *File) Height() int {
	return int(f.header.Height)
}

// HasMipmaps reports a mip chain.
func (f *File) HasMipmaps() bool {
	return f.header.HasMipmaps()
}

// IsCubemap reports a cubemap texture.
func (f *File) IsCubemap() bool {
	return f.header.IsCubemap()
}

// IsVolumeTexture reports a volume texture.
func (f *File) IsVolumeTexture() bool {
	return f.header.IsVolumeTexture()
}

// IsFlatTexture reports a plain 2D texture.
func (f *File) IsFlatTexture() bool {
	return f.header.IsFlatTexture()
}

// IsExtended reports whether the DX10 header was present.
func (f *File) IsExtended() bool {
	return f.ext != nil
}

// PixelFormat returns the derived pixel format.
func (f *File) PixelFormat() PixelFormat {
	return f.format
}

// IsAlphaPremultiplied reports premultiplied alpha from the DX10 header or
// a DXT2/DXT4 FourCC.
func (f *File) IsAlphaPremultiplied() bool {
	return f.premultiplied
}

// ResourceCount returns the number of surfaces.
func (f *File) ResourceCount() int {
	return len(f.surfaces)
}

// Surface returns surface i in file order.
func (f *File) Surface(i int) (Surface, bool) {
	if i < 0 || i >= len(f.surfaces) {
		return Surface{}, false
	}

	return f.surfaces[i], true
}

// Surfaces returns the surfaces in file order: array slice, face, mip
// level, depth slice.
func (f *File) Surfaces() []Surface {
	out := make([]Surface, len(f.surfaces))
	copy(out, f.surfaces)
	return out
}

// Lookup finds the surface with the given coordinates.
func (f *File) Lookup(array, face, mip, z int) (Surface, bool) {
	for _, s := range f.surfaces {
		if s.ArrayIndex == array && s.FaceIndex == face && s.MipLevel == mip && s.ZSlice == z {
			return s, true
		}
	}

	return Surface{}, false
}

// ImageType describes the RGBA8 output of the file's surfaces.
func (f *File) ImageType() (ImageType, error) {
	return imageTypeFor(f.format, f.layout, f.premultiplied)
}
