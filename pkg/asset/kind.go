// Package asset reads and writes engine asset blocks.
//
// A block is a 16-byte GUID followed by a kind-specific payload, with no
// length prefix. Composite assets embed their children as nested blocks, so
// decoding is always sequential. Decoding dispatches on the GUID through a
// Registry of extensions; the built-in extension handles models, meshes,
// materials and bitmaps.
package asset

import "fmt"

// Kind is the category a caller asks the loader for.
type Kind int

// Asset kinds. Sound through Light have no built-in codec and exist for
// custom extensions to claim.
const (
	KindInvalid Kind = iota
	KindModel
	KindMesh
	KindMaterial
	KindBitmap
	KindShader
	KindSound
	KindHull
	KindBlob
	KindBuffer
	KindView
	KindLight
)

var kindNames = [...]string{
	KindInvalid:  "invalid",
	KindModel:    "model",
	KindMesh:     "mesh",
	KindMaterial: "material",
	KindBitmap:   "bitmap",
	KindShader:   "shader",
	KindSound:    "sound",
	KindHull:     "hull",
	KindBlob:     "blob",
	KindBuffer:   "buffer",
	KindView:     "view",
	KindLight:    "light",
}

// String returns the lowercase kind name.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}
