package gfx

import "fmt"

// InternalFormat is the device-side storage format of a texture.
// Codecs treat it as opaque; the table below only serves devices that
// have to answer channel queries themselves.
type InternalFormat uint32

// Sized internal formats.
const (
	RGB8        InternalFormat = 0x8051
	RGB16       InternalFormat = 0x8054
	RGBA8       InternalFormat = 0x8058
	RGBA16      InternalFormat = 0x805B
	R8          InternalFormat = 0x8229
	R16         InternalFormat = 0x822A
	RG8         InternalFormat = 0x822B
	RG16        InternalFormat = 0x822C
	R16F        InternalFormat = 0x822D
	R32F        InternalFormat = 0x822E
	RG16F       InternalFormat = 0x822F
	RG32F       InternalFormat = 0x8230
	R8UI        InternalFormat = 0x8232
	R16UI       InternalFormat = 0x8234
	R32UI       InternalFormat = 0x8236
	RG8UI       InternalFormat = 0x8238
	RG16UI      InternalFormat = 0x823A
	RG32UI      InternalFormat = 0x823C
	RGBA32F     InternalFormat = 0x8814
	RGB32F      InternalFormat = 0x8815
	RGBA16F     InternalFormat = 0x881A
	RGB16F      InternalFormat = 0x881B
	SRGB8       InternalFormat = 0x8C41
	SRGB8Alpha8 InternalFormat = 0x8C43
	RGBA32UI    InternalFormat = 0x8D70
	RGB32UI     InternalFormat = 0x8D71
	RGBA16UI    InternalFormat = 0x8D76
	RGB16UI     InternalFormat = 0x8D77
	RGBA8UI     InternalFormat = 0x8D7C
	RGB8UI      InternalFormat = 0x8D7D
)

type formatInfo struct {
	name     string
	bits     int
	kind     ChannelKind
	channels int
}

var formatTable = map[InternalFormat]formatInfo{
	R8:          {"R8", 8, KindUnsignedNormalized, 1},
	RG8:         {"RG8", 8, KindUnsignedNormalized, 2},
	RGB8:        {"RGB8", 8, KindUnsignedNormalized, 3},
	RGBA8:       {"RGBA8", 8, KindUnsignedNormalized, 4},
	SRGB8:       {"SRGB8", 8, KindUnsignedNormalized, 3},
	SRGB8Alpha8: {"SRGB8_ALPHA8", 8, KindUnsignedNormalized, 4},
	R16:         {"R16", 16, KindUnsignedNormalized, 1},
	RG16:        {"RG16", 16, KindUnsignedNormalized, 2},
	RGB16:       {"RGB16", 16, KindUnsignedNormalized, 3},
	RGBA16:      {"RGBA16", 16, KindUnsignedNormalized, 4},
	R16F:        {"R16F", 16, KindFloat, 1},
	RG16F:       {"RG16F", 16, KindFloat, 2},
	RGB16F:      {"RGB16F", 16, KindFloat, 3},
	RGBA16F:     {"RGBA16F", 16, KindFloat, 4},
	R32F:        {"R32F", 32, KindFloat, 1},
	RG32F:       {"RG32F", 32, KindFloat, 2},
	RGB32F:      {"RGB32F", 32, KindFloat, 3},
	RGBA32F:     {"RGBA32F", 32, KindFloat, 4},
	R8UI:        {"R8UI", 8, KindUnsignedInt, 1},
	RG8UI:       {"RG8UI", 8, KindUnsignedInt, 2},
	RGB8UI:      {"RGB8UI", 8, KindUnsignedInt, 3},
	RGBA8UI:     {"RGBA8UI", 8, KindUnsignedInt, 4},
	R16UI:       {"R16UI", 16, KindUnsignedInt, 1},
	RG16UI:      {"RG16UI", 16, KindUnsignedInt, 2},
	RGB16UI:     {"RGB16UI", 16, KindUnsignedInt, 3},
	RGBA16UI:    {"RGBA16UI", 16, KindUnsignedInt, 4},
	R32UI:       {"R32UI", 32, KindUnsignedInt, 1},
	RG32UI:      {"RG32UI", 32, KindUnsignedInt, 2},
	RGB32UI:     {"RGB32UI", 32, KindUnsignedInt, 3},
	RGBA32UI:    {"RGBA32UI", 32, KindUnsignedInt, 4},
}

// Channels returns the R, G, B, A channel description of f.
// ok is false for formats missing from the table.
func (f InternalFormat) Channels() (channels [4]Channel, ok bool) {
	info, ok := formatTable[f]
	if !ok {
		return channels, false
	}
	for i := 0; i < info.channels; i++ {
		channels[i] = Channel{Bits: info.bits, Kind: info.kind}
	}
	return channels, true
}

// String returns the GL name of the format.
func (f InternalFormat) String() string {
	if info, ok := formatTable[f]; ok {
		return info.name
	}
	return fmt.Sprintf("InternalFormat(0x%04X)", uint32(f))
}
