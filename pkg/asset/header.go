package asset

import (
	"fmt"

	"github.com/Faultbox/ackasset/pkg/guid"
	"github.com/Faultbox/ackasset/pkg/stream"
)

// WriteHeader writes the block tag id. kind only labels errors; it is not
// persisted.
func WriteHeader(w *stream.Writer, kind Kind, id guid.GUID) error {
	w.Bytes(id[:])
	if err := w.Err(); err != nil {
		return fmt.Errorf("writing %s header: %w", kind, err)
	}
	return nil
}

// ReadHeader reads the tag that opens the next block.
func ReadHeader(r *stream.Reader) (guid.GUID, error) {
	var id guid.GUID
	r.Bytes(id[:])
	if err := r.Err(); err != nil {
		return guid.Nil, fmt.Errorf("reading block header: %w", err)
	}
	return id, nil
}
