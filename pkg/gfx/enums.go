// Package gfx describes the graphics device the asset codecs talk to:
// texture enums (with their OpenGL numeric values, which is how they are persisted),
// channel layouts, transfer-format derivation, and the Device interface.
package gfx

import "fmt"

// Target is a texture dimensionality class.
type Target uint32

// Texture targets.
const (
	Texture1D        Target = 0x0DE0
	Texture2D        Target = 0x0DE1
	Texture3D        Target = 0x806F
	TextureRectangle Target = 0x84F5
	Texture1DArray   Target = 0x8C18
	Texture2DArray   Target = 0x8C1A
)

// Class returns how many dimensions an upload for t spans: 1, 2 or 3.
// Array targets count their layer axis. Unknown targets return 0.
func (t Target) Class() int {
	switch t {
	case Texture1D:
		return 1
	case Texture1DArray, Texture2D, TextureRectangle:
		return 2
	case Texture2DArray, Texture3D:
		return 3
	default:
		return 0
	}
}

// String returns the GL name of the target.
func (t Target) String() string {
	switch t {
	case Texture1D:
		return "TEXTURE_1D"
	case Texture2D:
		return "TEXTURE_2D"
	case Texture3D:
		return "TEXTURE_3D"
	case TextureRectangle:
		return "TEXTURE_RECTANGLE"
	case Texture1DArray:
		return "TEXTURE_1D_ARRAY"
	case Texture2DArray:
		return "TEXTURE_2D_ARRAY"
	default:
		return fmt.Sprintf("Target(0x%04X)", uint32(t))
	}
}

// PixelFormat is the channel layout used when moving pixels to or from the device.
type PixelFormat uint32

// Pixel transfer formats.
const (
	FormatRed  PixelFormat = 0x1903
	FormatRGB  PixelFormat = 0x1907
	FormatRGBA PixelFormat = 0x1908
	FormatRG   PixelFormat = 0x8227
)

// Components returns the channel count of f, or 0 if f is unknown.
func (f PixelFormat) Components() int {
	switch f {
	case FormatRed:
		return 1
	case FormatRG:
		return 2
	case FormatRGB:
		return 3
	case FormatRGBA:
		return 4
	default:
		return 0
	}
}

// String returns the GL name of the format.
func (f PixelFormat) String() string {
	switch f {
	case FormatRed:
		return "RED"
	case FormatRG:
		return "RG"
	case FormatRGB:
		return "RGB"
	case FormatRGBA:
		return "RGBA"
	default:
		return fmt.Sprintf("PixelFormat(0x%04X)", uint32(f))
	}
}

// PixelType is the per-channel numeric encoding used for pixel transfers.
type PixelType uint32

// Pixel transfer types.
const (
	TypeUnsignedByte  PixelType = 0x1401
	TypeUnsignedShort PixelType = 0x1403
	TypeUnsignedInt   PixelType = 0x1405
	TypeFloat         PixelType = 0x1406
	TypeHalfFloat     PixelType = 0x140B
)

// Size returns the byte size of one channel of type t, or 0 if t is unknown.
func (t PixelType) Size() int {
	switch t {
	case TypeUnsignedByte:
		return 1
	case TypeUnsignedShort, TypeHalfFloat:
		return 2
	case TypeUnsignedInt, TypeFloat:
		return 4
	default:
		return 0
	}
}

// String returns the GL name of the type.
func (t PixelType) String() string {
	switch t {
	case TypeUnsignedByte:
		return "UNSIGNED_BYTE"
	case TypeUnsignedShort:
		return "UNSIGNED_SHORT"
	case TypeUnsignedInt:
		return "UNSIGNED_INT"
	case TypeFloat:
		return "FLOAT"
	case TypeHalfFloat:
		return "HALF_FLOAT"
	default:
		return fmt.Sprintf("PixelType(0x%04X)", uint32(t))
	}
}

// BytesPerPixel returns the size of one pixel transferred as (f, t), or 0 if either is unknown.
func BytesPerPixel(f PixelFormat, t PixelType) int {
	return f.Components() * t.Size()
}

// ChannelKind is the numeric class of a texture channel as reported by the device.
type ChannelKind uint32

// Channel kinds.
const (
	KindNone               ChannelKind = 0
	KindInt                ChannelKind = 0x1404
	KindUnsignedInt        ChannelKind = 0x1405
	KindFloat              ChannelKind = 0x1406
	KindUnsignedNormalized ChannelKind = 0x8C17
	KindSignedNormalized   ChannelKind = 0x8F9C
)

// String returns the GL name of the kind.
func (k ChannelKind) String() string {
	switch k {
	case KindNone:
		return "NONE"
	case KindInt:
		return "INT"
	case KindUnsignedInt:
		return "UNSIGNED_INT"
	case KindFloat:
		return "FLOAT"
	case KindUnsignedNormalized:
		return "UNSIGNED_NORMALIZED"
	case KindSignedNormalized:
		return "SIGNED_NORMALIZED"
	default:
		return fmt.Sprintf("ChannelKind(0x%04X)", uint32(k))
	}
}

// Primitive is a mesh topology.
type Primitive uint32

// Mesh primitive topologies.
const (
	Points        Primitive = 0x0000
	Lines         Primitive = 0x0001
	LineLoop      Primitive = 0x0002
	LineStrip     Primitive = 0x0003
	Triangles     Primitive = 0x0004
	TriangleStrip Primitive = 0x0005
	TriangleFan   Primitive = 0x0006
)

// String returns the GL name of the primitive.
func (p Primitive) String() string {
	switch p {
	case Points:
		return "POINTS"
	case Lines:
		return "LINES"
	case LineLoop:
		return "LINE_LOOP"
	case LineStrip:
		return "LINE_STRIP"
	case Triangles:
		return "TRIANGLES"
	case TriangleStrip:
		return "TRIANGLE_STRIP"
	case TriangleFan:
		return "TRIANGLE_FAN"
	default:
		return fmt.Sprintf("Primitive(%d)", uint32(p))
	}
}
