package asset

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Faultbox/ackasset/pkg/guid"
)

// Registry is the ordered extension list consulted by loaders.
//
// Extensions are registered at startup. Creating the first Loader seals the
// registry; from then on the list is read-only and may be shared between
// goroutines, and Register fails with ErrRegistrySealed.
type Registry struct {
	mu     sync.RWMutex
	exts   []Extension
	sealed bool
}

// NewRegistry returns a registry holding the default extension.
func NewRegistry() *Registry {
	return &Registry{exts: []Extension{Default()}}
}

// Register appends ext. Earlier extensions win when several claim a tag
// under the requested kind.
func (r *Registry) Register(ext Extension) error {
	if ext == nil {
		return errors.New("registering nil extension")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed {
		return fmt.Errorf("registering %q: %w", ext.Name(), ErrRegistrySealed)
	}
	r.exts = append(r.exts, ext)
	return nil
}

// Seal freezes the extension list. Sealing twice is harmless.
func (r *Registry) Seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}

// Sealed reports whether Seal has been called.
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}

// Extensions returns a copy of the extension list in dispatch order.
func (r *Registry) Extensions() []Extension {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Extension(nil), r.exts...)
}

// Classify returns the kind the first claiming extension assigns to id,
// or KindInvalid if nothing claims it.
func (r *Registry) Classify(id guid.GUID) Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, ext := range r.exts {
		if k := ext.CanLoad(id); k != KindInvalid {
			return k
		}
	}
	return KindInvalid
}

// Resolve finds the decoder for a block tagged id that the caller wants as
// kind want. Extensions are scanned in order; claims under another kind and
// claims whose decoder slot is empty are skipped. KindInvalid accepts any kind.
//
// Errors: ErrNoDecoder if id is claimed under want but no claimant has a
// decoder, ErrAssetKindMismatch if id is claimed only under other kinds,
// ErrUnknownAssetType if nothing claims id.
func (r *Registry) Resolve(id guid.GUID, want Kind) (DecodeFunc, Kind, Extension, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var other Kind
	empty := false
	for _, ext := range r.exts {
		k := ext.CanLoad(id)
		if k == KindInvalid {
			continue
		}
		if want != KindInvalid && k != want {
			other = k
			continue
		}
		fn := ext.Decoder(k)
		if fn == nil {
			empty = true
			continue
		}
		return fn, k, ext, nil
	}

	switch {
	case empty:
		return nil, KindInvalid, nil, fmt.Errorf("%w: %s block %s", ErrNoDecoder, kindOrAny(want), id)
	case other != KindInvalid:
		return nil, KindInvalid, nil, fmt.Errorf("%w: %s is a %s block, want %s", ErrAssetKindMismatch, id, other, want)
	default:
		return nil, KindInvalid, nil, fmt.Errorf("%w: %s", ErrUnknownAssetType, id)
	}
}

func kindOrAny(k Kind) string {
	if k == KindInvalid {
		return "any"
	}
	return k.String()
}
