package gldevice

import (
	"errors"
	"testing"

	"github.com/Faultbox/ackasset/pkg/gfx"
)

// These run without a display: a closed context never reaches GL.
func TestClosedContextFailsEveryCall(t *testing.T) {
	dev := (&Context{closed: true}).Device()
	buf := make([]byte, 4)

	calls := map[string]func() error{
		"TextureInfo":   func() error { _, err := dev.TextureInfo(1); return err },
		"ReadPixels":    func() error { return dev.ReadPixels(1, gfx.FormatRGBA, gfx.TypeUnsignedByte, buf) },
		"CreateTexture": func() error { _, err := dev.CreateTexture(gfx.Texture2D); return err },
		"DeleteTexture": func() error { return dev.DeleteTexture(1) },
		"Storage1D":     func() error { return dev.Storage1D(1, 1, gfx.RGBA8, 1) },
		"Storage2D":     func() error { return dev.Storage2D(1, 1, gfx.RGBA8, 1, 1) },
		"Storage3D":     func() error { return dev.Storage3D(1, 1, gfx.RGBA8, 1, 1, 1) },
		"SubImage1D":    func() error { return dev.SubImage1D(1, 1, gfx.FormatRGBA, gfx.TypeUnsignedByte, buf) },
		"SubImage2D":    func() error { return dev.SubImage2D(1, 1, 1, gfx.FormatRGBA, gfx.TypeUnsignedByte, buf) },
		"SubImage3D":    func() error { return dev.SubImage3D(1, 1, 1, 1, gfx.FormatRGBA, gfx.TypeUnsignedByte, buf) },
	}

	for name, call := range calls {
		err := call()
		if !errors.Is(err, gfx.ErrNoContext) {
			t.Errorf("%s: expected ErrNoContext, got %v", name, err)
		}
		if !errors.Is(err, gfx.ErrDevice) {
			t.Errorf("%s: ErrNoContext should wrap ErrDevice", name)
		}
	}
}

func TestZeroDeviceHasNoContext(t *testing.T) {
	var dev Device
	if _, err := dev.CreateTexture(gfx.Texture2D); !errors.Is(err, gfx.ErrNoContext) {
		t.Errorf("expected ErrNoContext, got %v", err)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	c := &Context{closed: true}
	c.Close()
	if !c.closed {
		t.Error("context should stay closed")
	}
}
