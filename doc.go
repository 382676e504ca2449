/*
Package dds implements a DirectDraw Surface (DDS) texture reader.

A DDS stream holds the "DDS " magic, a 124-byte header, an optional 20-byte
DX10 extended header and the raw surfaces of the texture: every array slice,
cubemap face, mip level and depth slice, in that nesting order.

Load parses and validates the container and returns an immutable File with
one Surface per image plane. Surfaces can be decoded into 8-bit RGBA, either
from BC1/BC2/BC3/BC7 block compressed data (see package bc), from unsigned
BC4/BC5 data, or from the most common uncompressed channel layouts. Legacy headers without a DX10 extension
are mapped to a pixel format using the same bitmask and FourCC heuristics as
the DirectX texture loaders, including their historical writer quirks.

Importing the package registers the "dds" format with the image package.
*/
package dds
