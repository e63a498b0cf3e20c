package gldevice

import (
	"fmt"

	"github.com/go-gl/gl/v4.5-core/gl"

	"github.com/Faultbox/ackasset/pkg/gfx"
)

// Device issues DSA texture calls on its context. It never binds textures,
// so it leaves the context's binding state alone.
type Device struct {
	ctx *Context
}

var _ gfx.Device = (*Device)(nil)

func (d *Device) check(op string) error {
	if d.ctx == nil || d.ctx.closed {
		return fmt.Errorf("%s: %w", op, gfx.ErrNoContext)
	}
	return nil
}

// maxDrain bounds error queue draining; a lost context may keep reporting.
const maxDrain = 8

// glError reports the first queued GL error and drains the rest.
func glError(op string) error {
	first := gl.GetError()
	for i := 0; first != gl.NO_ERROR && i < maxDrain; i++ {
		if gl.GetError() == gl.NO_ERROR {
			break
		}
	}
	return gfx.CheckError(op, first)
}

func (d *Device) levelParam(tex gfx.TextureID, pname uint32) int32 {
	var v int32
	gl.GetTextureLevelParameteriv(uint32(tex), 0, pname, &v)
	return v
}

var channelParams = [4]struct{ size, kind uint32 }{
	{gl.TEXTURE_RED_SIZE, gl.TEXTURE_RED_TYPE},
	{gl.TEXTURE_GREEN_SIZE, gl.TEXTURE_GREEN_TYPE},
	{gl.TEXTURE_BLUE_SIZE, gl.TEXTURE_BLUE_TYPE},
	{gl.TEXTURE_ALPHA_SIZE, gl.TEXTURE_ALPHA_TYPE},
}

// TextureInfo queries level 0 of tex.
func (d *Device) TextureInfo(tex gfx.TextureID) (gfx.LevelInfo, error) {
	const op = "glGetTextureLevelParameteriv"
	if err := d.check(op); err != nil {
		return gfx.LevelInfo{}, err
	}

	info := gfx.LevelInfo{
		Width:          int(d.levelParam(tex, gl.TEXTURE_WIDTH)),
		Height:         int(d.levelParam(tex, gl.TEXTURE_HEIGHT)),
		Depth:          int(d.levelParam(tex, gl.TEXTURE_DEPTH)),
		InternalFormat: gfx.InternalFormat(d.levelParam(tex, gl.TEXTURE_INTERNAL_FORMAT)),
	}
	for i, p := range channelParams {
		info.Channels[i] = gfx.Channel{
			Bits: int(d.levelParam(tex, p.size)),
			Kind: gfx.ChannelKind(d.levelParam(tex, p.kind)),
		}
	}
	if err := glError(op); err != nil {
		return gfx.LevelInfo{}, err
	}
	return info, nil
}

// ReadPixels reads level 0 with 1-byte row alignment.
func (d *Device) ReadPixels(tex gfx.TextureID, format gfx.PixelFormat, typ gfx.PixelType, dst []byte) error {
	const op = "glGetTextureImage"
	if err := d.check(op); err != nil {
		return err
	}
	if len(dst) == 0 {
		return fmt.Errorf("%s: %w: empty destination", op, gfx.ErrDevice)
	}

	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.GetTextureImage(uint32(tex), 0, uint32(format), uint32(typ), int32(len(dst)), gl.Ptr(dst))
	return glError(op)
}

// CreateTexture creates a texture object for target.
func (d *Device) CreateTexture(target gfx.Target) (gfx.TextureID, error) {
	const op = "glCreateTextures"
	if err := d.check(op); err != nil {
		return 0, err
	}

	var tex uint32
	gl.CreateTextures(uint32(target), 1, &tex)
	if err := glError(op); err != nil {
		return 0, err
	}
	return gfx.TextureID(tex), nil
}

// DeleteTexture deletes tex.
func (d *Device) DeleteTexture(tex gfx.TextureID) error {
	const op = "glDeleteTextures"
	if err := d.check(op); err != nil {
		return err
	}

	name := uint32(tex)
	gl.DeleteTextures(1, &name)
	return glError(op)
}

// Storage1D allocates immutable storage.
func (d *Device) Storage1D(tex gfx.TextureID, levels int, format gfx.InternalFormat, width int) error {
	const op = "glTextureStorage1D"
	if err := d.check(op); err != nil {
		return err
	}
	gl.TextureStorage1D(uint32(tex), int32(levels), uint32(format), int32(width))
	return glError(op)
}

// Storage2D allocates immutable storage.
func (d *Device) Storage2D(tex gfx.TextureID, levels int, format gfx.InternalFormat, width, height int) error {
	const op = "glTextureStorage2D"
	if err := d.check(op); err != nil {
		return err
	}
	gl.TextureStorage2D(uint32(tex), int32(levels), uint32(format), int32(width), int32(height))
	return glError(op)
}

// Storage3D allocates immutable storage.
func (d *Device) Storage3D(tex gfx.TextureID, levels int, format gfx.InternalFormat, width, height, depth int) error {
	const op = "glTextureStorage3D"
	if err := d.check(op); err != nil {
		return err
	}
	gl.TextureStorage3D(uint32(tex), int32(levels), uint32(format), int32(width), int32(height), int32(depth))
	return glError(op)
}

// SubImage1D uploads level 0 with 1-byte row alignment.
func (d *Device) SubImage1D(tex gfx.TextureID, width int, format gfx.PixelFormat, typ gfx.PixelType, data []byte) error {
	const op = "glTextureSubImage1D"
	if err := d.check(op); err != nil {
		return err
	}
	if len(data) == 0 {
		return fmt.Errorf("%s: %w: empty upload", op, gfx.ErrDevice)
	}
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TextureSubImage1D(uint32(tex), 0, 0, int32(width), uint32(format), uint32(typ), gl.Ptr(data))
	return glError(op)
}

// SubImage2D uploads level 0 with 1-byte row alignment.
func (d *Device) SubImage2D(tex gfx.TextureID, width, height int, format gfx.PixelFormat, typ gfx.PixelType, data []byte) error {
	const op = "glTextureSubImage2D"
	if err := d.check(op); err != nil {
		return err
	}
	if len(data) == 0 {
		return fmt.Errorf("%s: %w: empty upload", op, gfx.ErrDevice)
	}
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TextureSubImage2D(uint32(tex), 0, 0, 0, int32(width), int32(height), uint32(format), uint32(typ), gl.Ptr(data))
	return glError(op)
}

// SubImage3D uploads level 0 with 1-byte row alignment.
func (d *Device) SubImage3D(tex gfx.TextureID, width, height, depth int, format gfx.PixelFormat, typ gfx.PixelType, data []byte) error {
	const op = "glTextureSubImage3D"
	if err := d.check(op); err != nil {
		return err
	}
	if len(data) == 0 {
		return fmt.Errorf("%s: %w: empty upload", op, gfx.ErrDevice)
	}
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TextureSubImage3D(uint32(tex), 0, 0, 0, 0, int32(width), int32(height), int32(depth), uint32(format), uint32(typ), gl.Ptr(data))
	return glError(op)
}
