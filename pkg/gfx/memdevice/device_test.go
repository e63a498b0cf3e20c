package memdevice

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Faultbox/ackasset/pkg/gfx"
)

func TestNewTextureRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		target  gfx.Target
		format  gfx.InternalFormat
		w, h, d int
		xfer    gfx.Transfer
	}{
		{"1d r8", gfx.Texture1D, gfx.R8, 4, 1, 1, gfx.Transfer{Format: gfx.FormatRed, Type: gfx.TypeUnsignedByte, BytesPerPixel: 1}},
		{"2d rgba8", gfx.Texture2D, gfx.RGBA8, 2, 3, 1, gfx.Transfer{Format: gfx.FormatRGBA, Type: gfx.TypeUnsignedByte, BytesPerPixel: 4}},
		{"rect rg16f", gfx.TextureRectangle, gfx.RG16F, 3, 2, 1, gfx.Transfer{Format: gfx.FormatRG, Type: gfx.TypeHalfFloat, BytesPerPixel: 4}},
		{"3d r32f", gfx.Texture3D, gfx.R32F, 2, 2, 2, gfx.Transfer{Format: gfx.FormatRed, Type: gfx.TypeFloat, BytesPerPixel: 4}},
		{"2d array rgb8ui", gfx.Texture2DArray, gfx.RGB8UI, 1, 1, 3, gfx.Transfer{Format: gfx.FormatRGB, Type: gfx.TypeUnsignedByte, BytesPerPixel: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := New()
			size := tt.w * tt.h * tt.d * tt.xfer.BytesPerPixel
			data := make([]byte, size)
			for i := range data {
				data[i] = byte(i*7 + 1)
			}

			tex, err := dev.NewTexture(tt.target, tt.format, tt.w, tt.h, tt.d, data)
			if err != nil {
				t.Fatalf("NewTexture failed: %v", err)
			}

			info, err := dev.TextureInfo(tex)
			if err != nil {
				t.Fatalf("TextureInfo failed: %v", err)
			}
			if info.Width != tt.w || info.Height != tt.h || info.Depth != tt.d {
				t.Errorf("size = %dx%dx%d, want %dx%dx%d", info.Width, info.Height, info.Depth, tt.w, tt.h, tt.d)
			}
			if info.InternalFormat != tt.format {
				t.Errorf("format = %s, want %s", info.InternalFormat, tt.format)
			}
			xfer, err := gfx.DeriveTransfer(info.Channels)
			if err != nil {
				t.Fatalf("DeriveTransfer failed: %v", err)
			}
			if xfer != tt.xfer {
				t.Errorf("transfer = %+v, want %+v", xfer, tt.xfer)
			}

			got := make([]byte, size)
			if err := dev.ReadPixels(tex, xfer.Format, xfer.Type, got); err != nil {
				t.Fatalf("ReadPixels failed: %v", err)
			}
			if !bytes.Equal(got, data) {
				t.Error("pixels differ after round trip")
			}
		})
	}
}

func TestDeviceErrors(t *testing.T) {
	dev := New()
	tex2d, err := dev.CreateTexture(gfx.Texture2D)
	if err != nil {
		t.Fatalf("CreateTexture failed: %v", err)
	}

	tests := []struct {
		name string
		call func() error
	}{
		{"unsupported target", func() error { _, err := dev.CreateTexture(gfx.Target(0x8513)); return err }},
		{"unknown texture", func() error { _, err := dev.TextureInfo(999); return err }},
		{"wrong storage class", func() error { return dev.Storage3D(tex2d, 1, gfx.RGBA8, 1, 1, 1) }},
		{"unknown format", func() error { return dev.Storage2D(tex2d, 1, gfx.InternalFormat(0x1234), 1, 1) }},
		{"zero size", func() error { return dev.Storage2D(tex2d, 1, gfx.RGBA8, 0, 1) }},
		{"upload before storage", func() error {
			return dev.SubImage2D(tex2d, 1, 1, gfx.FormatRGBA, gfx.TypeUnsignedByte, make([]byte, 4))
		}},
		{"read before storage", func() error {
			return dev.ReadPixels(tex2d, gfx.FormatRGBA, gfx.TypeUnsignedByte, make([]byte, 4))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, gfx.ErrDevice) {
				t.Errorf("expected ErrDevice, got %v", err)
			}
		})
	}
}

func TestTransferMustMatchFormat(t *testing.T) {
	dev := New()
	tex, err := dev.NewTexture(gfx.Texture2D, gfx.RGBA8, 1, 1, 1, []byte{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("NewTexture failed: %v", err)
	}

	buf := make([]byte, 16)
	if err := dev.ReadPixels(tex, gfx.FormatRGBA, gfx.TypeFloat, buf); !errors.Is(err, gfx.ErrDevice) {
		t.Errorf("float readback of RGBA8: expected ErrDevice, got %v", err)
	}
	if err := dev.ReadPixels(tex, gfx.FormatRGBA, gfx.TypeUnsignedByte, buf[:2]); !errors.Is(err, gfx.ErrDevice) {
		t.Errorf("short buffer: expected ErrDevice, got %v", err)
	}
	if err := dev.Storage2D(tex, 1, gfx.RGBA8, 1, 1); !errors.Is(err, gfx.ErrDevice) {
		t.Errorf("second storage call: expected ErrDevice, got %v", err)
	}
}

func TestEmptyTextureInfo(t *testing.T) {
	dev := New()
	tex, err := dev.CreateTexture(gfx.Texture2D)
	if err != nil {
		t.Fatalf("CreateTexture failed: %v", err)
	}
	info, err := dev.TextureInfo(tex)
	if err != nil {
		t.Fatalf("TextureInfo failed: %v", err)
	}
	if info != (gfx.LevelInfo{}) {
		t.Errorf("expected zero level info, got %+v", info)
	}
	if _, err := gfx.DeriveTransfer(info.Channels); !errors.Is(err, gfx.ErrUnsupportedChannelLayout) {
		t.Errorf("expected ErrUnsupportedChannelLayout, got %v", err)
	}
}

func TestDeleteTexture(t *testing.T) {
	dev := New()
	tex, err := dev.NewTexture(gfx.Texture1D, gfx.R8, 2, 1, 1, []byte{1, 2})
	if err != nil {
		t.Fatalf("NewTexture failed: %v", err)
	}
	if dev.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", dev.Len())
	}
	if err := dev.DeleteTexture(tex); err != nil {
		t.Fatalf("DeleteTexture failed: %v", err)
	}
	if dev.Len() != 0 {
		t.Errorf("Len() = %d after delete, want 0", dev.Len())
	}
	if _, err := dev.TextureInfo(tex); !errors.Is(err, gfx.ErrDevice) {
		t.Errorf("expected ErrDevice for deleted texture, got %v", err)
	}
}

func TestNewTextureFailureLeavesNothing(t *testing.T) {
	dev := New()
	// Two bytes for a 2x2 RGBA8 image.
	if _, err := dev.NewTexture(gfx.Texture2D, gfx.RGBA8, 2, 2, 1, []byte{1, 2}); !errors.Is(err, gfx.ErrDevice) {
		t.Fatalf("expected ErrDevice, got %v", err)
	}
	if dev.Len() != 0 {
		t.Errorf("Len() = %d, want 0", dev.Len())
	}
}
