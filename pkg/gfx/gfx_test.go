package gfx

import (
	"errors"
	"testing"
)

func ch(bits int, kind ChannelKind) Channel {
	return Channel{Bits: bits, Kind: kind}
}

func TestDeriveTransfer(t *testing.T) {
	tests := []struct {
		name     string
		channels [4]Channel
		want     Transfer
	}{
		{
			name:     "rg 8-bit integer",
			channels: [4]Channel{ch(8, KindUnsignedInt), ch(8, KindUnsignedInt)},
			want:     Transfer{FormatRG, TypeUnsignedByte, 2},
		},
		{
			name:     "red 32-bit float",
			channels: [4]Channel{ch(32, KindFloat)},
			want:     Transfer{FormatRed, TypeFloat, 4},
		},
		{
			name: "rgba 8-bit normalized",
			channels: [4]Channel{
				ch(8, KindUnsignedNormalized), ch(8, KindUnsignedNormalized),
				ch(8, KindUnsignedNormalized), ch(8, KindUnsignedNormalized),
			},
			want: Transfer{FormatRGBA, TypeUnsignedByte, 4},
		},
		{
			name:     "rgb 16-bit float is half",
			channels: [4]Channel{ch(16, KindFloat), ch(16, KindFloat), ch(16, KindFloat)},
			want:     Transfer{FormatRGB, TypeHalfFloat, 6},
		},
		{
			name:     "red 16-bit normalized is short",
			channels: [4]Channel{ch(16, KindUnsignedNormalized)},
			want:     Transfer{FormatRed, TypeUnsignedShort, 2},
		},
		{
			name:     "rg 32-bit integer",
			channels: [4]Channel{ch(32, KindUnsignedInt), ch(32, KindUnsignedInt)},
			want:     Transfer{FormatRG, TypeUnsignedInt, 8},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DeriveTransfer(tt.channels)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDeriveTransferRejects(t *testing.T) {
	tests := []struct {
		name     string
		channels [4]Channel
	}{
		{"no channels", [4]Channel{}},
		{"alpha without blue", [4]Channel{ch(8, KindUnsignedNormalized), {}, {}, ch(8, KindUnsignedNormalized)}},
		{"blue without green", [4]Channel{ch(8, KindFloat), {}, ch(8, KindFloat)}},
		{"mixed kinds", [4]Channel{ch(8, KindUnsignedNormalized), ch(8, KindFloat)}},
		{"mixed depths", [4]Channel{ch(16, KindFloat), ch(32, KindFloat)}},
		{"unsupported depth", [4]Channel{ch(10, KindUnsignedNormalized)}},
		{"green only", [4]Channel{{}, ch(8, KindUnsignedNormalized)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DeriveTransfer(tt.channels)
			if !errors.Is(err, ErrUnsupportedChannelLayout) {
				t.Errorf("expected ErrUnsupportedChannelLayout, got %v", err)
			}
		})
	}
}

func TestFormatChannelsAgreeWithTransfer(t *testing.T) {
	tests := []struct {
		format InternalFormat
		want   Transfer
	}{
		{RGBA8, Transfer{FormatRGBA, TypeUnsignedByte, 4}},
		{R32F, Transfer{FormatRed, TypeFloat, 4}},
		{RG8UI, Transfer{FormatRG, TypeUnsignedByte, 2}},
		{RGBA16F, Transfer{FormatRGBA, TypeHalfFloat, 8}},
		{RGB32UI, Transfer{FormatRGB, TypeUnsignedInt, 12}},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			channels, ok := tt.format.Channels()
			if !ok {
				t.Fatalf("format %s missing from table", tt.format)
			}
			got, err := DeriveTransfer(channels)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
			if bpp := BytesPerPixel(got.Format, got.Type); bpp != got.BytesPerPixel {
				t.Errorf("BytesPerPixel = %d, transfer says %d", bpp, got.BytesPerPixel)
			}
		})
	}

	if _, ok := InternalFormat(0x1234).Channels(); ok {
		t.Error("unknown format should not be in the table")
	}
}

func TestTargetClass(t *testing.T) {
	tests := []struct {
		target Target
		want   int
	}{
		{Texture1D, 1},
		{Texture1DArray, 2},
		{Texture2D, 2},
		{TextureRectangle, 2},
		{Texture2DArray, 3},
		{Texture3D, 3},
		{Target(0x8513), 0}, // cube map
	}

	for _, tt := range tests {
		t.Run(tt.target.String(), func(t *testing.T) {
			if got := tt.target.Class(); got != tt.want {
				t.Errorf("Class() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCheckError(t *testing.T) {
	tests := []struct {
		code uint32
		want error
	}{
		{0x0507, ErrContextLost},
		{0x0505, ErrOutOfMemory},
		{0x0502, ErrDevice},
		{0x9999, ErrDevice},
	}

	for _, tt := range tests {
		err := CheckError("glTest", tt.code)
		if !errors.Is(err, tt.want) {
			t.Errorf("CheckError(0x%04X) = %v, want %v", tt.code, err, tt.want)
		}
		if !errors.Is(err, ErrDevice) {
			t.Errorf("CheckError(0x%04X) should wrap ErrDevice", tt.code)
		}
	}

	if err := CheckError("glTest", 0); err != nil {
		t.Errorf("CheckError(0) = %v, want nil", err)
	}
}

func TestEnumStrings(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{Texture2D.String(), "TEXTURE_2D"},
		{Target(1).String(), "Target(0x0001)"},
		{FormatRGBA.String(), "RGBA"},
		{TypeHalfFloat.String(), "HALF_FLOAT"},
		{KindUnsignedNormalized.String(), "UNSIGNED_NORMALIZED"},
		{RGBA8.String(), "RGBA8"},
		{Triangles.String(), "TRIANGLES"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}
