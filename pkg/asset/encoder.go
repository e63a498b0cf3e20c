package asset

import (
	"github.com/Faultbox/ackasset/pkg/gfx"
	"github.com/Faultbox/ackasset/pkg/guid"
	"github.com/Faultbox/ackasset/pkg/stream"
	"go.uber.org/zap"
)

// Encoder writes asset blocks. Bitmap pixels are read back from its device,
// so an Encoder is bound to the device that owns the textures it writes.
type Encoder struct {
	dev gfx.Device
	log *zap.Logger
}

// NewEncoder returns an encoder reading textures from dev.
func NewEncoder(dev gfx.Device, opts ...Option) *Encoder {
	o := buildOptions(opts)
	return &Encoder{dev: dev, log: o.log}
}

func (e *Encoder) header(w *stream.Writer, kind Kind, id guid.GUID) error {
	e.log.Debug("writing block",
		zap.Int64("offset", w.Offset()),
		zap.Stringer("kind", kind),
		zap.Stringer("guid", id))
	return WriteHeader(w, kind, id)
}
