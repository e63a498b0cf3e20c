// Package assets locates asset files under a set of library roots, caches
// their bytes and decodes them through an asset.Loader.
package assets

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/ackasset/pkg/asset"
	"github.com/Faultbox/ackasset/pkg/guid"
	"github.com/Faultbox/ackasset/pkg/stream"
)

// ErrNotFound is returned when no root holds the requested file.
var ErrNotFound = errors.New("asset file not found")

// Library resolves names against its roots. Later roots take priority, so
// a project directory added after a shared one overrides it.
type Library struct {
	roots  []string
	cache  *Cache
	loader *asset.Loader
	log    *zap.Logger
	mu     sync.RWMutex
}

// NewLibrary returns a library decoding through loader, caching up to
// cacheBytes of file data. A nil log discards output.
func NewLibrary(loader *asset.Loader, cacheBytes int64, log *zap.Logger) *Library {
	if log == nil {
		log = zap.NewNop()
	}
	return &Library{
		cache:  NewCache(cacheBytes),
		loader: loader,
		log:    log,
	}
}

// AddRoot appends a directory to search.
func (lib *Library) AddRoot(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("adding root %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("adding root %s: not a directory", dir)
	}

	lib.mu.Lock()
	lib.roots = append(lib.roots, dir)
	lib.mu.Unlock()
	return nil
}

// Roots returns the search roots in priority order, highest first.
func (lib *Library) Roots() []string {
	lib.mu.RLock()
	defer lib.mu.RUnlock()
	out := make([]string, 0, len(lib.roots))
	for i := len(lib.roots) - 1; i >= 0; i-- {
		out = append(out, lib.roots[i])
	}
	return out
}

// Read returns the bytes of name and their xxhash64 fingerprint.
// name is slash-separated and must stay inside the roots.
func (lib *Library) Read(name string) ([]byte, uint64, error) {
	if !filepath.IsLocal(filepath.FromSlash(name)) {
		return nil, 0, fmt.Errorf("reading %q: name escapes the library roots", name)
	}
	if e, ok := lib.cache.Get(name); ok {
		return e.Data, e.Sum, nil
	}

	for _, root := range lib.Roots() {
		path := filepath.Join(root, filepath.FromSlash(name))
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, 0, fmt.Errorf("reading %s: %w", path, err)
		}
		sum := xxhash.Sum64(data)
		lib.cache.Set(name, data, sum)
		lib.log.Debug("read asset file",
			zap.String("path", path),
			zap.Int("bytes", len(data)),
			zap.String("xxhash", fmt.Sprintf("%016x", sum)))
		return data, sum, nil
	}
	return nil, 0, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Load decodes the first block of name as kind.
func (lib *Library) Load(name string, kind asset.Kind) (any, error) {
	data, _, err := lib.Read(name)
	if err != nil {
		return nil, err
	}
	v, err := lib.loader.Load(stream.NewReader(bytes.NewReader(data)), kind)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return v, nil
}

// LoadModel decodes the first block of name as a model.
func (lib *Library) LoadModel(name string) (*asset.Model, error) {
	data, _, err := lib.Read(name)
	if err != nil {
		return nil, err
	}
	m, err := lib.loader.LoadModel(stream.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return m, nil
}

// LoadBitmap decodes the first block of name as a bitmap.
func (lib *Library) LoadBitmap(name string) (*asset.Bitmap, error) {
	data, _, err := lib.Read(name)
	if err != nil {
		return nil, err
	}
	b, err := lib.loader.LoadBitmap(stream.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return b, nil
}

// Scan decodes every top-level block of name.
func (lib *Library) Scan(name string) ([]Block, error) {
	data, _, err := lib.Read(name)
	if err != nil {
		return nil, err
	}
	blocks, err := Scan(lib.loader, data)
	if err != nil {
		return blocks, fmt.Errorf("scanning %s: %w", name, err)
	}
	return blocks, nil
}

// Close drops cached data.
func (lib *Library) Close() {
	lib.mu.Lock()
	defer lib.mu.Unlock()
	lib.roots = nil
	lib.cache.Clear()
}

// Block is one decoded top-level block of a file.
type Block struct {
	Offset int64
	Size   int64
	GUID   guid.GUID
	Kind   asset.Kind
	Sum    uint64 // xxhash64 of the block bytes, nested blocks included
	Value  any
}

// Scan decodes data as back-to-back blocks. Blocks decoded before a failure
// are returned with the error. Callers own the device textures of the
// returned values and should hand them to the loader's Release.
func Scan(l *asset.Loader, data []byte) ([]Block, error) {
	r := stream.NewReader(bytes.NewReader(data))
	var blocks []Block
	for r.More() {
		start := r.Offset()
		kind, v, err := l.LoadAny(r)
		if err != nil {
			return blocks, fmt.Errorf("block at offset %d: %w", start, err)
		}
		end := r.Offset()
		var id guid.GUID
		copy(id[:], data[start:])
		blocks = append(blocks, Block{
			Offset: start,
			Size:   end - start,
			GUID:   id,
			Kind:   kind,
			Sum:    xxhash.Sum64(data[start:end]),
			Value:  v,
		})
	}
	return blocks, nil
}
