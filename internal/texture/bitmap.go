package texture

import (
	"errors"
	"fmt"
	"image"

	"github.com/Faultbox/ackasset/pkg/asset"
	"github.com/Faultbox/ackasset/pkg/gfx"
)

// ErrNotRGBA8 is returned when exporting a bitmap that is not 2D RGBA8.
var ErrNotRGBA8 = errors.New("bitmap is not a 2D RGBA8 image")

// Upload creates a single-level RGBA8 2D texture holding img.
func Upload(dev gfx.Device, img *image.NRGBA) (*asset.Bitmap, error) {
	img = ToNRGBA(img)
	w, h := img.Rect.Dx(), img.Rect.Dy()

	tex, err := dev.CreateTexture(gfx.Texture2D)
	if err != nil {
		return nil, fmt.Errorf("creating texture: %w", err)
	}
	err = dev.Storage2D(tex, 1, gfx.RGBA8, w, h)
	if err == nil {
		err = dev.SubImage2D(tex, w, h, gfx.FormatRGBA, gfx.TypeUnsignedByte, img.Pix)
	}
	if err != nil {
		if derr := dev.DeleteTexture(tex); derr != nil {
			err = errors.Join(err, fmt.Errorf("deleting texture %d: %w", tex, derr))
		}
		return nil, fmt.Errorf("uploading %dx%d texture: %w", w, h, err)
	}

	return &asset.Bitmap{
		Target:      gfx.Texture2D,
		Format:      gfx.RGBA8,
		Width:       w,
		Height:      h,
		Depth:       1,
		PixelFormat: gfx.FormatRGBA,
		PixelType:   gfx.TypeUnsignedByte,
		Texture:     tex,
		Pixels:      img.Pix,
	}, nil
}

// Image returns the CPU copy of a decoded RGBA8 bitmap as an image.
func Image(b *asset.Bitmap) (*image.NRGBA, error) {
	if b.PixelFormat != gfx.FormatRGBA || b.PixelType != gfx.TypeUnsignedByte {
		return nil, fmt.Errorf("%w: transfer %s/%s", ErrNotRGBA8, b.PixelFormat, b.PixelType)
	}
	if (b.Target != gfx.Texture2D && b.Target != gfx.TextureRectangle) || b.Depth > 1 {
		return nil, fmt.Errorf("%w: %s with depth %d", ErrNotRGBA8, b.Target, b.Depth)
	}
	if len(b.Pixels) != b.Width*b.Height*4 {
		return nil, fmt.Errorf("%w: %d cached bytes for %dx%d", ErrNotRGBA8, len(b.Pixels), b.Width, b.Height)
	}
	return &image.NRGBA{
		Pix:    b.Pixels,
		Stride: b.Width * 4,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}, nil
}
