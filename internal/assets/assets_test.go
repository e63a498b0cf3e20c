package assets

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cespare/xxhash/v2"

	"github.com/Faultbox/ackasset/pkg/asset"
	"github.com/Faultbox/ackasset/pkg/gfx"
	"github.com/Faultbox/ackasset/pkg/gfx/memdevice"
	"github.com/Faultbox/ackasset/pkg/stream"
)

func meshFile(t *testing.T, dev *memdevice.Device, counts ...int) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := stream.NewWriter(&buf)
	enc := asset.NewEncoder(dev)
	for _, n := range counts {
		m := &asset.Mesh{Primitive: gfx.Points, Vertices: make([]asset.Vertex, n)}
		if err := enc.WriteMesh(w, m); err != nil {
			t.Fatalf("WriteMesh failed: %v", err)
		}
	}
	return buf.Bytes()
}

func bitmapFile(t *testing.T, dev *memdevice.Device) []byte {
	t.Helper()
	tex, err := dev.NewTexture(gfx.Texture2D, gfx.RGBA8, 2, 2, 1, make([]byte, 16))
	if err != nil {
		t.Fatalf("NewTexture failed: %v", err)
	}
	var buf bytes.Buffer
	if err := asset.NewEncoder(dev).WriteBitmap(stream.NewWriter(&buf), &asset.Bitmap{Target: gfx.Texture2D, Texture: tex}); err != nil {
		t.Fatalf("WriteBitmap failed: %v", err)
	}
	return buf.Bytes()
}

func writeFile(t *testing.T, dir, name string, data []byte) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func newLibrary(t *testing.T, roots ...string) (*Library, *memdevice.Device) {
	t.Helper()
	dev := memdevice.New()
	lib := NewLibrary(asset.NewLoader(nil, dev), 1<<20, nil)
	for _, root := range roots {
		if err := lib.AddRoot(root); err != nil {
			t.Fatalf("AddRoot failed: %v", err)
		}
	}
	return lib, dev
}

func TestLaterRootWins(t *testing.T) {
	shared, project := t.TempDir(), t.TempDir()
	dev := memdevice.New()
	writeFile(t, shared, "meshes/a.ack", meshFile(t, dev, 1))
	writeFile(t, project, "meshes/a.ack", meshFile(t, dev, 3))
	writeFile(t, shared, "meshes/b.ack", meshFile(t, dev, 2))

	lib, _ := newLibrary(t, shared, project)

	v, err := lib.Load("meshes/a.ack", asset.KindMesh)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if n := len(v.(*asset.Mesh).Vertices); n != 3 {
		t.Errorf("got mesh with %d vertices, want the project copy with 3", n)
	}

	v, err = lib.Load("meshes/b.ack", asset.KindMesh)
	if err != nil {
		t.Fatalf("Load fallback failed: %v", err)
	}
	if n := len(v.(*asset.Mesh).Vertices); n != 2 {
		t.Errorf("got mesh with %d vertices, want 2", n)
	}

	if roots := lib.Roots(); len(roots) != 2 || roots[0] != project {
		t.Errorf("Roots() = %v, want project first", roots)
	}
}

func TestReadCachesAndFingerprints(t *testing.T) {
	dir := t.TempDir()
	data := meshFile(t, memdevice.New(), 1)
	writeFile(t, dir, "a.ack", data)

	lib, _ := newLibrary(t, dir)
	got, sum, err := lib.Read("a.ack")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Error("Read returned different bytes")
	}
	if sum != xxhash.Sum64(data) {
		t.Errorf("fingerprint = %x, want %x", sum, xxhash.Sum64(data))
	}

	// Served from cache even after the file disappears.
	os.Remove(filepath.Join(dir, "a.ack"))
	if _, sum2, err := lib.Read("a.ack"); err != nil || sum2 != sum {
		t.Errorf("cached read = %x, %v", sum2, err)
	}
	hits, misses := lib.cache.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("stats = %d hits, %d misses, want 1/1", hits, misses)
	}
}

func TestReadErrors(t *testing.T) {
	lib, _ := newLibrary(t, t.TempDir())

	if _, _, err := lib.Read("missing.ack"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, _, err := lib.Read("../outside.ack"); err == nil {
		t.Error("expected error for a name escaping the roots")
	}
	if err := lib.AddRoot(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error adding a missing root")
	}
}

func TestLoadTyped(t *testing.T) {
	dir := t.TempDir()
	dev := memdevice.New()
	writeFile(t, dir, "tex.ack", bitmapFile(t, dev))
	writeFile(t, dir, "mesh.ack", meshFile(t, dev, 1))

	lib, loaded := newLibrary(t, dir)
	bm, err := lib.LoadBitmap("tex.ack")
	if err != nil {
		t.Fatalf("LoadBitmap failed: %v", err)
	}
	if bm.Width != 2 || loaded.Len() != 1 {
		t.Errorf("unexpected bitmap %+v, %d textures", bm, loaded.Len())
	}

	if _, err := lib.LoadModel("mesh.ack"); !errors.Is(err, asset.ErrAssetKindMismatch) {
		t.Errorf("expected ErrAssetKindMismatch, got %v", err)
	}
}

func TestScan(t *testing.T) {
	dev := memdevice.New()
	meshes := meshFile(t, dev, 1, 2)
	bitmap := bitmapFile(t, dev)
	data := append(append([]byte(nil), meshes...), bitmap...)

	blocks, err := Scan(asset.NewLoader(nil, memdevice.New()), data)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(blocks) != 3 {
		t.Fatalf("got %d blocks, want 3", len(blocks))
	}

	wantSizes := []int64{28 + asset.VertexSize, 28 + 2*asset.VertexSize, int64(len(bitmap))}
	wantKinds := []asset.Kind{asset.KindMesh, asset.KindMesh, asset.KindBitmap}
	var offset int64
	for i, b := range blocks {
		if b.Offset != offset || b.Size != wantSizes[i] || b.Kind != wantKinds[i] {
			t.Errorf("block %d = offset %d size %d kind %s", i, b.Offset, b.Size, b.Kind)
		}
		if b.Sum != xxhash.Sum64(data[b.Offset:b.Offset+b.Size]) {
			t.Errorf("block %d fingerprint mismatch", i)
		}
		offset += b.Size
	}
	if blocks[2].GUID != asset.BitmapGUID {
		t.Errorf("block 2 GUID = %s", blocks[2].GUID)
	}
}

func TestScanTruncatedTail(t *testing.T) {
	data := meshFile(t, memdevice.New(), 1, 1)
	blocks, err := Scan(asset.NewLoader(nil, memdevice.New()), data[:len(data)-5])
	if !errors.Is(err, asset.ErrTruncatedStream) {
		t.Fatalf("expected ErrTruncatedStream, got %v", err)
	}
	if len(blocks) != 1 {
		t.Errorf("got %d complete blocks, want 1", len(blocks))
	}
}

func TestCacheEviction(t *testing.T) {
	c := NewCache(10)
	c.Set("a", make([]byte, 4), 1)
	c.Set("b", make([]byte, 4), 2)
	c.Get("a") // b is now least recent
	c.Set("c", make([]byte, 4), 3)

	if _, ok := c.Get("b"); ok {
		t.Error("b should have been evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("a should still be cached")
	}
	if c.Size() != 8 || c.Len() != 2 {
		t.Errorf("size %d len %d, want 8 and 2", c.Size(), c.Len())
	}

	c.Set("huge", make([]byte, 11), 4)
	if _, ok := c.Get("huge"); ok {
		t.Error("items over budget must not be cached")
	}

	c.Set("a", make([]byte, 2), 5)
	if e, _ := c.Get("a"); e.Sum != 5 || c.Size() != 6 {
		t.Errorf("replacing a: sum %d size %d", e.Sum, c.Size())
	}

	c.Clear()
	if c.Len() != 0 || c.Size() != 0 {
		t.Error("Clear left items behind")
	}
}
