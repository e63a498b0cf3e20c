package gfx

import "fmt"

// Channel describes one color channel of a texture level.
type Channel struct {
	Bits int
	Kind ChannelKind
}

// Present reports whether the channel exists in the texture.
func (c Channel) Present() bool {
	return c.Kind != KindNone
}

// Transfer is the pixel layout used to move a texture's data off the device.
type Transfer struct {
	Format        PixelFormat
	Type          PixelType
	BytesPerPixel int
}

var channelNames = [4]string{"red", "green", "blue", "alpha"}

var formatByCount = [5]PixelFormat{0, FormatRed, FormatRG, FormatRGB, FormatRGBA}

// DeriveTransfer picks the transfer format and type for a texture with the
// given R, G, B, A channels.
//
// Channels must be enabled left to right (R, RG, RGB, RGBA) and every present
// channel must share red's kind and bit depth. Red depth selects the type:
// 8 bits is UNSIGNED_BYTE, 16 is HALF_FLOAT for float channels and
// UNSIGNED_SHORT otherwise, 32 is FLOAT or UNSIGNED_INT.
func DeriveTransfer(channels [4]Channel) (Transfer, error) {
	red := channels[0]
	if !red.Present() {
		return Transfer{}, fmt.Errorf("%w: texture has no red channel", ErrUnsupportedChannelLayout)
	}

	count := 0
	for i, c := range channels {
		if !c.Present() {
			break
		}
		if c.Kind != red.Kind {
			return Transfer{}, fmt.Errorf("%w: %s channel is %s, red is %s",
				ErrUnsupportedChannelLayout, channelNames[i], c.Kind, red.Kind)
		}
		if c.Bits != red.Bits {
			return Transfer{}, fmt.Errorf("%w: %s channel has %d bits, red has %d",
				ErrUnsupportedChannelLayout, channelNames[i], c.Bits, red.Bits)
		}
		count++
	}
	for i := count; i < len(channels); i++ {
		if channels[i].Present() {
			return Transfer{}, fmt.Errorf("%w: %s channel present without %s",
				ErrUnsupportedChannelLayout, channelNames[i], channelNames[count])
		}
	}

	var typ PixelType
	switch red.Bits {
	case 8:
		typ = TypeUnsignedByte
	case 16:
		typ = TypeUnsignedShort
		if red.Kind == KindFloat {
			typ = TypeHalfFloat
		}
	case 32:
		typ = TypeUnsignedInt
		if red.Kind == KindFloat {
			typ = TypeFloat
		}
	default:
		return Transfer{}, fmt.Errorf("%w: %d bits per channel", ErrUnsupportedChannelLayout, red.Bits)
	}

	return Transfer{
		Format:        formatByCount[count],
		Type:          typ,
		BytesPerPixel: (count*red.Bits + 7) / 8,
	}, nil
}
