package asset

import (
	"fmt"
	"strings"

	"github.com/Faultbox/ackasset/pkg/guid"
	"github.com/Faultbox/ackasset/pkg/math"
	"github.com/Faultbox/ackasset/pkg/stream"
	"go.uber.org/zap"
)

// TextureMask records which material texture slots are populated.
type TextureMask uint8

// Texture slots, in encoding order.
const (
	TextureAlbedo TextureMask = 1 << iota
	TextureNormal
	TextureAttribute
	TextureEmission

	textureMaskAll = TextureAlbedo | TextureNormal | TextureAttribute | TextureEmission
)

var textureSlotNames = [4]string{"albedo", "normal", "attribute", "emission"}

// Has reports whether every bit of slot is set in m.
func (m TextureMask) Has(slot TextureMask) bool {
	return m&slot == slot
}

// String lists the set slots, e.g. "albedo|emission", or "none".
func (m TextureMask) String() string {
	if m == 0 {
		return "none"
	}
	var parts []string
	for i, name := range textureSlotNames {
		if m.Has(1 << i) {
			parts = append(parts, name)
		}
	}
	if extra := m &^ textureMaskAll; extra != 0 {
		parts = append(parts, fmt.Sprintf("0x%02X", uint8(extra)))
	}
	return strings.Join(parts, "|")
}

// Material is a PBR surface description with optional textures.
type Material struct {
	Albedo    math.Color
	Emission  math.Color
	Roughness float32
	Metallic  float32
	Fresnel   float32

	AlbedoTexture    *Bitmap
	NormalTexture    *Bitmap
	AttributeTexture *Bitmap
	EmissionTexture  *Bitmap
}

func (m *Material) slots() [4]**Bitmap {
	return [4]**Bitmap{&m.AlbedoTexture, &m.NormalTexture, &m.AttributeTexture, &m.EmissionTexture}
}

// Mask returns the presence mask for the texture slots.
func (m *Material) Mask() TextureMask {
	var mask TextureMask
	for i, slot := range m.slots() {
		if *slot != nil {
			mask |= 1 << i
		}
	}
	return mask
}

// Textures returns the populated texture slots in encoding order.
func (m *Material) Textures() []*Bitmap {
	var out []*Bitmap
	for _, slot := range m.slots() {
		if *slot != nil {
			out = append(out, *slot)
		}
	}
	return out
}

// WriteMaterial writes a material block followed by one bitmap block per populated slot.
func (e *Encoder) WriteMaterial(w *stream.Writer, m *Material) error {
	if m == nil {
		return fmt.Errorf("%w: nil material", ErrInvalidAsset)
	}
	if err := e.header(w, KindMaterial, MaterialGUID); err != nil {
		return err
	}

	w.Color(m.Albedo)
	w.Color(m.Emission)
	w.Float32(m.Roughness)
	w.Float32(m.Metallic)
	w.Float32(m.Fresnel)
	w.Uint8(uint8(m.Mask()))
	if err := w.Err(); err != nil {
		return fmt.Errorf("writing material: %w", err)
	}

	for i, slot := range m.slots() {
		if *slot == nil {
			continue
		}
		if err := e.WriteBitmap(w, *slot); err != nil {
			return fmt.Errorf("writing %s texture: %w", textureSlotNames[i], err)
		}
	}
	return nil
}

func decodeMaterial(l *Loader, r *stream.Reader, id guid.GUID) (any, error) {
	if id != MaterialGUID {
		return nil, fmt.Errorf("%w: %s is not a material block", ErrTypeMismatch, id)
	}

	m := &Material{}
	m.Albedo = r.Color()
	m.Emission = r.Color()
	m.Roughness = r.Float32()
	m.Metallic = r.Float32()
	m.Fresnel = r.Float32()
	mask := TextureMask(r.Uint8())
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("reading material: %w", err)
	}
	if mask&^textureMaskAll != 0 {
		return nil, fmt.Errorf("%w: texture mask %s", ErrInvalidAsset, mask)
	}

	for i, slot := range m.slots() {
		if !mask.Has(1 << i) {
			continue
		}
		bm, err := l.LoadBitmap(r)
		if err != nil {
			l.Release(m)
			return nil, fmt.Errorf("reading %s texture: %w", textureSlotNames[i], err)
		}
		*slot = bm
	}

	l.log.Debug("decoded material", zap.Stringer("textures", mask))
	return m, nil
}
