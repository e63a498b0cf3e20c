package asset

import (
	"fmt"

	"github.com/Faultbox/ackasset/pkg/gfx"
	"github.com/Faultbox/ackasset/pkg/stream"
	"go.uber.org/zap"
)

// Loader decodes blocks from a stream, uploading textures to its device.
// A Loader is bound to one device and must not be used concurrently;
// several loaders may share a registry.
type Loader struct {
	reg        *Registry
	dev        gfx.Device
	log        *zap.Logger
	maxPayload int64
}

// NewLoader seals reg and returns a loader dispatching through it.
// A nil reg gets a fresh registry holding only the default extension.
func NewLoader(reg *Registry, dev gfx.Device, opts ...Option) *Loader {
	if reg == nil {
		reg = NewRegistry()
	}
	reg.Seal()
	o := buildOptions(opts)
	return &Loader{
		reg:        reg,
		dev:        dev,
		log:        o.log,
		maxPayload: o.maxPayload,
	}
}

// Device returns the device textures are uploaded to.
func (l *Loader) Device() gfx.Device {
	return l.dev
}

// Registry returns the sealed registry the loader dispatches through.
func (l *Loader) Registry() *Registry {
	return l.reg
}

// Load reads one block that must decode as kind want.
func (l *Loader) Load(r *stream.Reader, want Kind) (any, error) {
	_, v, err := l.load(r, want)
	return v, err
}

// LoadAny reads one block of whatever kind its tag is claimed under.
func (l *Loader) LoadAny(r *stream.Reader) (Kind, any, error) {
	return l.load(r, KindInvalid)
}

func (l *Loader) load(r *stream.Reader, want Kind) (Kind, any, error) {
	offset := r.Offset()
	id, err := ReadHeader(r)
	if err != nil {
		return KindInvalid, nil, err
	}
	decode, kind, ext, err := l.reg.Resolve(id, want)
	if err != nil {
		return KindInvalid, nil, err
	}

	l.log.Debug("dispatching block",
		zap.Int64("offset", offset),
		zap.Stringer("guid", id),
		zap.Stringer("kind", kind),
		zap.String("extension", ext.Name()))

	v, err := decode(l, r, id)
	if err != nil {
		return KindInvalid, nil, err
	}
	return kind, v, nil
}

func loadAs[T any](l *Loader, r *stream.Reader, kind Kind) (T, error) {
	var zero T
	v, err := l.Load(r, kind)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		l.Release(v)
		return zero, fmt.Errorf("%w: %s decoder returned %T, want %T", ErrTypeMismatch, kind, v, zero)
	}
	return t, nil
}

// LoadModel reads a model block and everything nested in it.
func (l *Loader) LoadModel(r *stream.Reader) (*Model, error) {
	return loadAs[*Model](l, r, KindModel)
}

// LoadMesh reads a mesh block.
func (l *Loader) LoadMesh(r *stream.Reader) (*Mesh, error) {
	return loadAs[*Mesh](l, r, KindMesh)
}

// LoadMaterial reads a material block and its texture blocks.
func (l *Loader) LoadMaterial(r *stream.Reader) (*Material, error) {
	return loadAs[*Material](l, r, KindMaterial)
}

// LoadBitmap reads a bitmap block and uploads it to the device.
func (l *Loader) LoadBitmap(r *stream.Reader) (*Bitmap, error) {
	return loadAs[*Bitmap](l, r, KindBitmap)
}

// LoadShader reads a shader block. The default extension has no shader
// codec, so this fails with ErrNoDecoder unless an extension provides one.
func (l *Loader) LoadShader(r *stream.Reader) (*Shader, error) {
	return loadAs[*Shader](l, r, KindShader)
}

// Release deletes the device textures owned by a decoded model, material or
// bitmap. Other values are ignored. Failures are logged, not returned.
func (l *Loader) Release(v any) {
	switch a := v.(type) {
	case *Model:
		if a == nil {
			return
		}
		for _, m := range a.Materials {
			l.Release(m)
		}
	case *Material:
		if a == nil {
			return
		}
		for _, b := range a.Textures() {
			l.Release(b)
		}
	case *Bitmap:
		if a == nil || a.Texture == 0 {
			return
		}
		if err := l.dev.DeleteTexture(a.Texture); err != nil {
			l.log.Warn("failed to delete texture", zap.Uint32("texture", uint32(a.Texture)), zap.Error(err))
			return
		}
		a.Texture = 0
	}
}
