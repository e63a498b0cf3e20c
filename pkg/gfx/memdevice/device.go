// Package memdevice is a gfx.Device that keeps textures in process memory.
//
// It has no conversion path: pixels move in and out only with the natural
// transfer of the texture's internal format (see gfx.DeriveTransfer), which
// is exactly what the asset codecs use. Only formats in gfx's channel table
// are accepted.
package memdevice

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Faultbox/ackasset/pkg/gfx"
)

type texture struct {
	target  gfx.Target
	format  gfx.InternalFormat
	dims    [3]int
	levels  int
	storage bool
	xfer    gfx.Transfer
	pixels  []byte
}

// Device is an in-memory texture store. It is safe for concurrent use,
// although the codecs never share one device between goroutines.
type Device struct {
	mu       sync.Mutex
	textures map[gfx.TextureID]*texture
	next     gfx.TextureID
}

var _ gfx.Device = (*Device)(nil)

// New returns an empty device.
func New() *Device {
	return &Device{
		textures: make(map[gfx.TextureID]*texture),
		next:     1,
	}
}

// Len returns the number of live textures.
func (d *Device) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.textures)
}

// NewTexture creates a single-level texture and uploads data into it.
// Unused trailing dimensions must be 1.
func (d *Device) NewTexture(target gfx.Target, format gfx.InternalFormat, width, height, depth int, data []byte) (gfx.TextureID, error) {
	channels, ok := format.Channels()
	if !ok {
		return 0, fmt.Errorf("%w: unknown internal format %s", gfx.ErrDevice, format)
	}
	xfer, err := gfx.DeriveTransfer(channels)
	if err != nil {
		return 0, err
	}

	tex, err := d.CreateTexture(target)
	if err != nil {
		return 0, err
	}

	switch target.Class() {
	case 1:
		err = d.Storage1D(tex, 1, format, width)
		if err == nil {
			err = d.SubImage1D(tex, width, xfer.Format, xfer.Type, data)
		}
	case 2:
		err = d.Storage2D(tex, 1, format, width, height)
		if err == nil {
			err = d.SubImage2D(tex, width, height, xfer.Format, xfer.Type, data)
		}
	default:
		err = d.Storage3D(tex, 1, format, width, height, depth)
		if err == nil {
			err = d.SubImage3D(tex, width, height, depth, xfer.Format, xfer.Type, data)
		}
	}
	if err != nil {
		if derr := d.DeleteTexture(tex); derr != nil {
			err = errors.Join(err, fmt.Errorf("deleting texture %d: %w", tex, derr))
		}
		return 0, err
	}
	return tex, nil
}

// TextureInfo reports level 0. A texture without storage reports zero size
// and no channels, as GL does.
func (d *Device) TextureInfo(tex gfx.TextureID) (gfx.LevelInfo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	t, err := d.lookup("TextureInfo", tex)
	if err != nil {
		return gfx.LevelInfo{}, err
	}
	if !t.storage {
		return gfx.LevelInfo{}, nil
	}
	channels, _ := t.format.Channels()
	return gfx.LevelInfo{
		Width:          t.dims[0],
		Height:         t.dims[1],
		Depth:          t.dims[2],
		InternalFormat: t.format,
		Channels:       channels,
	}, nil
}

// ReadPixels copies level 0 into dst.
func (d *Device) ReadPixels(tex gfx.TextureID, format gfx.PixelFormat, typ gfx.PixelType, dst []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	t, err := d.lookup("ReadPixels", tex)
	if err != nil {
		return err
	}
	if !t.storage {
		return fmt.Errorf("ReadPixels: %w: texture %d has no storage", gfx.ErrDevice, tex)
	}
	if err := t.checkTransfer("ReadPixels", format, typ); err != nil {
		return err
	}
	if len(dst) < len(t.pixels) {
		return fmt.Errorf("ReadPixels: %w: buffer holds %d bytes, image is %d",
			gfx.ErrDevice, len(dst), len(t.pixels))
	}
	copy(dst, t.pixels)
	return nil
}

// CreateTexture allocates a texture name bound to target.
func (d *Device) CreateTexture(target gfx.Target) (gfx.TextureID, error) {
	if target.Class() == 0 {
		return 0, fmt.Errorf("CreateTexture: %w: INVALID_ENUM: target %s", gfx.ErrDevice, target)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	id := d.next
	d.next++
	d.textures[id] = &texture{target: target}
	return id, nil
}

// DeleteTexture releases tex. Unknown names are ignored, matching glDeleteTextures.
func (d *Device) DeleteTexture(tex gfx.TextureID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.textures, tex)
	return nil
}

// Storage1D allocates immutable storage for a 1D texture.
func (d *Device) Storage1D(tex gfx.TextureID, levels int, format gfx.InternalFormat, width int) error {
	return d.storage("Storage1D", 1, tex, levels, format, [3]int{width, 1, 1})
}

// Storage2D allocates immutable storage for a 2D-class texture.
func (d *Device) Storage2D(tex gfx.TextureID, levels int, format gfx.InternalFormat, width, height int) error {
	return d.storage("Storage2D", 2, tex, levels, format, [3]int{width, height, 1})
}

// Storage3D allocates immutable storage for a 3D-class texture.
func (d *Device) Storage3D(tex gfx.TextureID, levels int, format gfx.InternalFormat, width, height, depth int) error {
	return d.storage("Storage3D", 3, tex, levels, format, [3]int{width, height, depth})
}

// SubImage1D replaces level 0 of a 1D texture.
func (d *Device) SubImage1D(tex gfx.TextureID, width int, format gfx.PixelFormat, typ gfx.PixelType, data []byte) error {
	return d.subImage("SubImage1D", 1, tex, [3]int{width, 1, 1}, format, typ, data)
}

// SubImage2D replaces level 0 of a 2D-class texture.
func (d *Device) SubImage2D(tex gfx.TextureID, width, height int, format gfx.PixelFormat, typ gfx.PixelType, data []byte) error {
	return d.subImage("SubImage2D", 2, tex, [3]int{width, height, 1}, format, typ, data)
}

// SubImage3D replaces level 0 of a 3D-class texture.
func (d *Device) SubImage3D(tex gfx.TextureID, width, height, depth int, format gfx.PixelFormat, typ gfx.PixelType, data []byte) error {
	return d.subImage("SubImage3D", 3, tex, [3]int{width, height, depth}, format, typ, data)
}

func (d *Device) lookup(op string, tex gfx.TextureID) (*texture, error) {
	t, ok := d.textures[tex]
	if !ok {
		return nil, fmt.Errorf("%s: %w: INVALID_OPERATION: unknown texture %d", op, gfx.ErrDevice, tex)
	}
	return t, nil
}

func (d *Device) storage(op string, class int, tex gfx.TextureID, levels int, format gfx.InternalFormat, dims [3]int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	t, err := d.lookup(op, tex)
	if err != nil {
		return err
	}
	if t.target.Class() != class {
		return fmt.Errorf("%s: %w: INVALID_OPERATION: target %s", op, gfx.ErrDevice, t.target)
	}
	if t.storage {
		return fmt.Errorf("%s: %w: INVALID_OPERATION: storage is immutable", op, gfx.ErrDevice)
	}
	if levels != 1 {
		// Mipmaps are never produced by the codecs.
		return fmt.Errorf("%s: %w: INVALID_VALUE: %d levels", op, gfx.ErrDevice, levels)
	}
	if dims[0] < 1 || dims[1] < 1 || dims[2] < 1 {
		return fmt.Errorf("%s: %w: INVALID_VALUE: size %dx%dx%d", op, gfx.ErrDevice, dims[0], dims[1], dims[2])
	}
	channels, ok := format.Channels()
	if !ok {
		return fmt.Errorf("%s: %w: INVALID_ENUM: format %s", op, gfx.ErrDevice, format)
	}
	xfer, err := gfx.DeriveTransfer(channels)
	if err != nil {
		return fmt.Errorf("%s: %w: %v", op, gfx.ErrDevice, err)
	}

	size := dims[0] * dims[1] * dims[2] * xfer.BytesPerPixel
	t.format = format
	t.dims = dims
	t.levels = levels
	t.storage = true
	t.xfer = xfer
	t.pixels = make([]byte, size)
	return nil
}

func (d *Device) subImage(op string, class int, tex gfx.TextureID, dims [3]int, format gfx.PixelFormat, typ gfx.PixelType, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	t, err := d.lookup(op, tex)
	if err != nil {
		return err
	}
	if t.target.Class() != class {
		return fmt.Errorf("%s: %w: INVALID_OPERATION: target %s", op, gfx.ErrDevice, t.target)
	}
	if !t.storage {
		return fmt.Errorf("%s: %w: INVALID_OPERATION: texture %d has no storage", op, gfx.ErrDevice, tex)
	}
	if dims != t.dims {
		// Only whole-level uploads are supported.
		return fmt.Errorf("%s: %w: INVALID_VALUE: region %v, level is %v", op, gfx.ErrDevice, dims, t.dims)
	}
	if err := t.checkTransfer(op, format, typ); err != nil {
		return err
	}
	if len(data) < len(t.pixels) {
		return fmt.Errorf("%s: %w: INVALID_OPERATION: %d bytes for a %d byte image",
			op, gfx.ErrDevice, len(data), len(t.pixels))
	}
	copy(t.pixels, data)
	return nil
}

func (t *texture) checkTransfer(op string, format gfx.PixelFormat, typ gfx.PixelType) error {
	if format != t.xfer.Format || typ != t.xfer.Type {
		return fmt.Errorf("%s: %w: INVALID_OPERATION: transfer %s/%s, %s needs %s/%s",
			op, gfx.ErrDevice, format, typ, t.format, t.xfer.Format, t.xfer.Type)
	}
	return nil
}
