package asset

import (
	"github.com/Faultbox/ackasset/pkg/guid"
	"github.com/Faultbox/ackasset/pkg/stream"
)

// DecodeFunc decodes the payload of a block whose tag id has already been
// consumed. Nested blocks are read back through l. A DecodeFunc returns a
// nil value whenever it returns an error.
type DecodeFunc func(l *Loader, r *stream.Reader, id guid.GUID) (any, error)

// Extension claims block tags and supplies decoders for the kinds it claims.
type Extension interface {
	// Name identifies the extension in logs and errors.
	Name() string
	// CanLoad returns the kind id is claimed under, or KindInvalid.
	CanLoad(id guid.GUID) Kind
	// Decoder returns the decoder for kind, or nil if the slot is empty.
	Decoder(kind Kind) DecodeFunc
}

// Table is an Extension built from explicit claims and handlers.
type Table struct {
	name     string
	claims   map[guid.GUID]Kind
	decoders map[Kind]DecodeFunc
}

var _ Extension = (*Table)(nil)

// NewTable returns an empty extension named name.
func NewTable(name string) *Table {
	return &Table{
		name:     name,
		claims:   make(map[guid.GUID]Kind),
		decoders: make(map[Kind]DecodeFunc),
	}
}

// Claim maps id to kind. A later claim for the same id replaces the earlier one.
func (t *Table) Claim(id guid.GUID, kind Kind) *Table {
	t.claims[id] = kind
	return t
}

// Handle installs fn as the decoder for kind. A nil fn empties the slot.
func (t *Table) Handle(kind Kind, fn DecodeFunc) *Table {
	if fn == nil {
		delete(t.decoders, kind)
		return t
	}
	t.decoders[kind] = fn
	return t
}

// Name implements Extension.
func (t *Table) Name() string {
	return t.name
}

// CanLoad implements Extension.
func (t *Table) CanLoad(id guid.GUID) Kind {
	return t.claims[id]
}

// Decoder implements Extension.
func (t *Table) Decoder(kind Kind) DecodeFunc {
	return t.decoders[kind]
}

// DefaultName is the name of the built-in extension.
const DefaultName = "default"

// Default returns the built-in extension: model, mesh, material and bitmap
// codecs, plus a claim on the shader tag with no decoder behind it.
func Default() *Table {
	return NewTable(DefaultName).
		Claim(ModelGUID, KindModel).
		Claim(MeshGUID, KindMesh).
		Claim(MaterialGUID, KindMaterial).
		Claim(BitmapGUID, KindBitmap).
		Claim(ShaderGUID, KindShader).
		Handle(KindModel, decodeModel).
		Handle(KindMesh, decodeMesh).
		Handle(KindMaterial, decodeMaterial).
		Handle(KindBitmap, decodeBitmap)
}
