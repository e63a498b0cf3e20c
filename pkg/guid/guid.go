// Package guid provides the 16-byte type tag that opens every asset block.
package guid

import (
	"bytes"

	"github.com/google/uuid"
)

// Size is the encoded size of a GUID in bytes.
const Size = 16

// GUID is an opaque 16-byte identifier. It is only ever compared, never interpreted.
// The textual form is the canonical UUID layout with bytes in string order,
// which is also the order they appear on the wire.
type GUID [Size]byte

// Nil is the all-zero GUID.
var Nil GUID

// Parse parses a GUID in canonical UUID text form.
func Parse(s string) (GUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return Nil, err
	}
	return GUID(u), nil
}

// MustParse is like Parse but panics on malformed input.
// Intended for package-level tag declarations.
func MustParse(s string) GUID {
	return GUID(uuid.MustParse(s))
}

// New returns a random GUID, for authors of custom asset kinds.
func New() GUID {
	return GUID(uuid.New())
}

// FromBytes copies a GUID out of raw wire bytes.
func FromBytes(b []byte) (GUID, error) {
	u, err := uuid.FromBytes(b)
	if err != nil {
		return Nil, err
	}
	return GUID(u), nil
}

// Equal reports whether g and other are byte-for-byte identical.
func (g GUID) Equal(other GUID) bool {
	return bytes.Equal(g[:], other[:])
}

// IsNil reports whether g is the all-zero GUID.
func (g GUID) IsNil() bool {
	return g == Nil
}

// String returns the canonical text form.
func (g GUID) String() string {
	return uuid.UUID(g).String()
}
