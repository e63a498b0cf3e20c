package asset

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/ackasset/pkg/gfx"
	"github.com/Faultbox/ackasset/pkg/guid"
	"github.com/Faultbox/ackasset/pkg/stream"
	"go.uber.org/zap"
)

// Bitmap is a device texture plus the metadata needed to persist it.
type Bitmap struct {
	Target      gfx.Target
	Format      gfx.InternalFormat
	Width       int
	Height      int
	Depth       int
	PixelFormat gfx.PixelFormat
	PixelType   gfx.PixelType
	Texture     gfx.TextureID

	// Pixels is a CPU copy of level 0. Decoding keeps it only for
	// RGBA / UNSIGNED_BYTE data; it is never consulted when encoding.
	Pixels []byte
}

// BytesPerPixel returns the transfer size of one pixel, or 0 for an unknown transfer.
func (b *Bitmap) BytesPerPixel() int {
	return gfx.BytesPerPixel(b.PixelFormat, b.PixelType)
}

// WriteBitmap reads b's texture back from the device and writes a bitmap block.
// Dimensions and storage format come from the device; b supplies the target.
func (e *Encoder) WriteBitmap(w *stream.Writer, b *Bitmap) error {
	if b == nil {
		return fmt.Errorf("%w: nil bitmap", ErrInvalidAsset)
	}
	if b.Target.Class() == 0 {
		return fmt.Errorf("%w: %s", ErrUnsupportedTextureTarget, b.Target)
	}

	info, err := e.dev.TextureInfo(b.Texture)
	if err != nil {
		return fmt.Errorf("querying texture %d: %w", b.Texture, err)
	}
	xfer, err := gfx.DeriveTransfer(info.Channels)
	if err != nil {
		return fmt.Errorf("texture %d (%s): %w", b.Texture, info.InternalFormat, err)
	}

	size := int64(xfer.BytesPerPixel) * int64(info.Width) * int64(info.Height) * int64(info.Depth)
	if size <= 0 || size > gomath.MaxUint32 {
		return fmt.Errorf("%w: texture %d is %dx%dx%d", ErrInvalidAsset, b.Texture, info.Width, info.Height, info.Depth)
	}
	pixels := make([]byte, size)
	if err := e.dev.ReadPixels(b.Texture, xfer.Format, xfer.Type, pixels); err != nil {
		return fmt.Errorf("reading back texture %d: %w", b.Texture, err)
	}

	e.log.Debug("read back texture",
		zap.Uint32("texture", uint32(b.Texture)),
		zap.Int("width", info.Width),
		zap.Int("height", info.Height),
		zap.Int("depth", info.Depth),
		zap.Int("bits", info.Channels[0].Bits),
		zap.Stringer("format", xfer.Format),
		zap.Stringer("type", xfer.Type),
		zap.Int64("bytes", size))

	if err := e.header(w, KindBitmap, BitmapGUID); err != nil {
		return err
	}
	w.Uint32(uint32(b.Target))
	w.Uint32(uint32(info.InternalFormat))
	w.Uint32(uint32(info.Width))
	w.Uint32(uint32(info.Height))
	w.Uint32(uint32(info.Depth))
	w.Uint32(uint32(xfer.Format))
	w.Uint32(uint32(xfer.Type))
	w.Uint32(uint32(size))
	w.Bytes(pixels)
	if err := w.Err(); err != nil {
		return fmt.Errorf("writing bitmap: %w", err)
	}
	return nil
}

func decodeBitmap(l *Loader, r *stream.Reader, id guid.GUID) (any, error) {
	if id != BitmapGUID {
		return nil, fmt.Errorf("%w: %s is not a bitmap block", ErrTypeMismatch, id)
	}

	b := &Bitmap{
		Target: gfx.Target(r.Uint32()),
		Format: gfx.InternalFormat(r.Uint32()),
	}
	dims := [3]uint32{r.Uint32(), r.Uint32(), r.Uint32()}
	b.PixelFormat = gfx.PixelFormat(r.Uint32())
	b.PixelType = gfx.PixelType(r.Uint32())
	length := int64(r.Uint32())
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("reading bitmap: %w", err)
	}
	b.Width, b.Height, b.Depth = int(dims[0]), int(dims[1]), int(dims[2])

	class := b.Target.Class()
	if class == 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedTextureTarget, b.Target)
	}
	if err := l.checkPayload(b, dims, length); err != nil {
		return nil, err
	}

	payload := r.ReadBytes(length)
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("reading bitmap payload: %w", err)
	}

	tex, err := l.dev.CreateTexture(b.Target)
	if err != nil {
		return nil, fmt.Errorf("creating %s texture: %w", b.Target, err)
	}
	if err := upload(l.dev, tex, class, b, payload); err != nil {
		if derr := l.dev.DeleteTexture(tex); derr != nil {
			l.log.Warn("failed to delete texture after upload error",
				zap.Uint32("texture", uint32(tex)), zap.Error(derr))
		}
		return nil, fmt.Errorf("uploading %s texture: %w", b.Target, err)
	}
	b.Texture = tex
	if b.PixelFormat == gfx.FormatRGBA && b.PixelType == gfx.TypeUnsignedByte {
		b.Pixels = payload
	}

	l.log.Debug("uploaded texture",
		zap.Uint32("texture", uint32(tex)),
		zap.Stringer("target", b.Target),
		zap.Stringer("format", b.Format),
		zap.Int("width", b.Width),
		zap.Int("height", b.Height),
		zap.Int("depth", b.Depth),
		zap.Int64("bytes", length))
	return b, nil
}

// checkPayload verifies the declared length against the transfer size and
// the loader's limit before anything is read or allocated.
func (l *Loader) checkPayload(b *Bitmap, dims [3]uint32, length int64) error {
	bpp := int64(b.BytesPerPixel())
	if bpp == 0 {
		return fmt.Errorf("%w: transfer %s/%s", ErrInvalidAsset, b.PixelFormat, b.PixelType)
	}
	want := bpp
	for _, d := range dims {
		if d == 0 {
			return fmt.Errorf("%w: bitmap size %dx%dx%d", ErrInvalidAsset, dims[0], dims[1], dims[2])
		}
		if want > l.maxPayload/int64(d) {
			return fmt.Errorf("%w: %dx%dx%d bitmap exceeds payload limit of %d bytes",
				ErrInvalidAsset, dims[0], dims[1], dims[2], l.maxPayload)
		}
		want *= int64(d)
	}
	if length != want {
		return fmt.Errorf("%w: payload is %d bytes, %dx%dx%d %s/%s needs %d",
			ErrInvalidAsset, length, dims[0], dims[1], dims[2], b.PixelFormat, b.PixelType, want)
	}
	return nil
}

func upload(dev gfx.Device, tex gfx.TextureID, class int, b *Bitmap, data []byte) error {
	switch class {
	case 1:
		if err := dev.Storage1D(tex, 1, b.Format, b.Width); err != nil {
			return err
		}
		return dev.SubImage1D(tex, b.Width, b.PixelFormat, b.PixelType, data)
	case 2:
		if err := dev.Storage2D(tex, 1, b.Format, b.Width, b.Height); err != nil {
			return err
		}
		return dev.SubImage2D(tex, b.Width, b.Height, b.PixelFormat, b.PixelType, data)
	default:
		if err := dev.Storage3D(tex, 1, b.Format, b.Width, b.Height, b.Depth); err != nil {
			return err
		}
		return dev.SubImage3D(tex, b.Width, b.Height, b.Depth, b.PixelFormat, b.PixelType, data)
	}
}
