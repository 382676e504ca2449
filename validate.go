package dds

import "fmt"

// validate checks the header invariants. Strict mode adds the texture
// flag and caps requirements and the block alignment rule.
func (h Header) validate(strict bool) error {
	if h.Size != HeaderSize {
		return fmt.Errorf("%w: size=%d, want %d", ErrMalformedHeader, h.Size, HeaderSize)
	}
	if h.PixelFormat.Size != PixelFormatSize {
		return fmt.Errorf("%w: pixel format size=%d, want %d", ErrMalformedHeader, h.PixelFormat.Size, PixelFormatSize)
	}

	if strict {
		if h.Flags&FlagsTexture != FlagsTexture {
			return fmt.Errorf("%w: flags=0x%x missing texture flags 0x%x", ErrMalformedHeader, h.Flags, FlagsTexture)
		}
		if h.Caps&CapsTexture != CapsTexture {
			return fmt.Errorf("%w: caps=0x%x missing texture cap", ErrMalformedHeader, h.Caps)
		}
	}

	if h.IsUncompressed() && h.IsCompressed() {
		return fmt.Errorf("%w: flags=0x%x set both pitch and linear size", ErrMalformedHeader, h.Flags)
	}
	if h.IsCubemap() && h.IsVolumeTexture() {
		return fmt.Errorf("%w: caps2=0x%x set both cubemap and volume", ErrMalformedHeader, h.Caps2)
	}
	if h.IsVolumeTexture() != h.HasDepth() {
		return fmt.Errorf("%w: caps2=0x%x flags=0x%x volume cap does not match depth flag", ErrMalformedHeader, h.Caps2, h.Flags)
	}

	if h.PixelFormat.HasExtendedHeader() {
		return nil
	}

	format := DerivePixelFormat(h, nil)
	if !format.IsKnown() {
		return fmt.Errorf("%w: %s", ErrUnsupportedPixelFormat, h.PixelFormat)
	}
	if strict {
		return checkBlockAlignment(h, format)
	}

	return nil
}

// checkBlockAlignment rejects block compressed images whose dimensions
// are not multiples of 4.
func checkBlockAlignment(h Header, format PixelFormat) error {
	if format.IsBlockCompressed() && (h.Width%4 != 0 || h.Height%4 != 0) {
		return fmt.Errorf("%w: %dx%d is not a multiple of 4 for %s", ErrMalformedHeader, h.Width, h.Height, format)
	}

	return nil
}

// Validate checks the extended header against the main header.
func (e ExtendedHeader) Validate(h Header) error {
	return e.validate(h)
}

func (e ExtendedHeader) validate(h Header) error {
	if e.ArraySize == 0 {
		return fmt.Errorf("%w: arraySize=0", ErrMalformedExtendedHeader)
	}
	if !e.DXGIFormat.IsKnown() || e.DXGIFormat.BitsPerPixel() == 0 {
		return fmt.Errorf("%w: dxgiFormat=%d", ErrUnsupportedPixelFormat, uint32(e.DXGIFormat))
	}

	switch e.ResourceDimension {
	case DimensionTexture1D:
		if h.Flags&FlagHeight == FlagHeight && h.Height != 1 {
			return fmt.Errorf("%w: texture1d with height=%d", ErrMalformedExtendedHeader, h.Height)
		}
	case DimensionTexture2D:
	case DimensionTexture3D:
		if !h.HasDepth() {
			return fmt.Errorf("%w: texture3d without depth flag", ErrMalformedExtendedHeader)
		}
		if e.ArraySize > 1 {
			return fmt.Errorf("%w: texture3d with arraySize=%d", ErrMalformedExtendedHeader, e.ArraySize)
		}
	default:
		return fmt.Errorf("%w: resourceDimension=%d", ErrMalformedExtendedHeader, uint32(e.ResourceDimension))
	}

	return nil
}
