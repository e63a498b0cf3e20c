package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/ackasset/pkg/asset"
	"github.com/Faultbox/ackasset/pkg/gfx"
	"github.com/Faultbox/ackasset/pkg/gfx/memdevice"
	"github.com/Faultbox/ackasset/pkg/stream"
)

// verifyFixtures writes a good two-bitmap file and a truncated copy.
func verifyFixtures(t *testing.T) []string {
	t.Helper()
	src := memdevice.New()
	tex, err := src.NewTexture(gfx.Texture2D, gfx.RGBA8, 2, 2, 1, make([]byte, 16))
	if err != nil {
		t.Fatalf("NewTexture failed: %v", err)
	}
	var buf bytes.Buffer
	w := stream.NewWriter(&buf)
	enc := asset.NewEncoder(src)
	for range 2 {
		if err := enc.WriteBitmap(w, &asset.Bitmap{Target: gfx.Texture2D, Texture: tex}); err != nil {
			t.Fatalf("WriteBitmap failed: %v", err)
		}
	}

	dir := t.TempDir()
	good := filepath.Join(dir, "good.ack")
	cut := filepath.Join(dir, "cut.ack")
	if err := os.WriteFile(good, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cut, buf.Bytes()[:buf.Len()-3], 0644); err != nil {
		t.Fatal(err)
	}
	return []string{good, cut, filepath.Join(dir, "missing.ack")}
}

func checkVerifyResults(t *testing.T, results []verifyResult) {
	t.Helper()
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	if results[0].err != nil || results[0].blocks != 2 {
		t.Errorf("good file: %d blocks, err %v", results[0].blocks, results[0].err)
	}
	if !errors.Is(results[1].err, asset.ErrTruncatedStream) || results[1].blocks != 1 {
		t.Errorf("cut file: %d blocks, err %v", results[1].blocks, results[1].err)
	}
	if !errors.Is(results[2].err, os.ErrNotExist) {
		t.Errorf("missing file: expected ErrNotExist, got %v", results[2].err)
	}
}

func TestVerifySerialSharesOneDevice(t *testing.T) {
	paths := verifyFixtures(t)
	dev := memdevice.New()
	loader := asset.NewLoader(nil, dev)

	calls := 0
	results := verifyFiles(paths, false, func() *asset.Loader {
		calls++
		return loader
	})

	checkVerifyResults(t, results)
	if calls != len(paths) {
		t.Errorf("newLoader called %d times, want %d", calls, len(paths))
	}
	if dev.Len() != 0 {
		t.Errorf("%d textures left on the shared device", dev.Len())
	}
}

func TestVerifyParallel(t *testing.T) {
	paths := verifyFixtures(t)
	reg := asset.NewRegistry()
	results := verifyFiles(paths, true, func() *asset.Loader {
		return asset.NewLoader(reg, memdevice.New())
	})
	checkVerifyResults(t, results)
}
