package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/ackasset/internal/config"
	"github.com/Faultbox/ackasset/internal/logger"
	"github.com/Faultbox/ackasset/internal/texture"
	"github.com/Faultbox/ackasset/pkg/asset"
	"github.com/Faultbox/ackasset/pkg/stream"
)

func cmdPackTexture(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("pack-texture", flag.ExitOnError)
	magentaKey := fs.Bool("magenta-key", false, "Make magenta (255,0,255) pixels transparent")
	fs.Parse(args)

	if fs.NArg() < 2 {
		return errors.New("usage: acktool pack-texture [-magenta-key] <image> <out>")
	}
	src, out := fs.Arg(0), fs.Arg(1)

	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	img, err := texture.Decode(data)
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}
	if *magentaKey {
		texture.ApplyMagentaKey(img)
	}

	dev, closeDev, err := openDevice(cfg)
	if err != nil {
		return err
	}
	defer closeDev()

	bm, err := texture.Upload(dev, img)
	if err != nil {
		return err
	}
	defer func() {
		if err := dev.DeleteTexture(bm.Texture); err != nil {
			logger.Warn("failed to delete texture", zap.Uint32("texture", uint32(bm.Texture)), zap.Error(err))
		}
	}()

	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	w := stream.NewWriter(bw)
	enc := asset.NewEncoder(dev, asset.WithLogger(logger.Named("asset")))
	if err := enc.WriteBitmap(w, bm); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Printf("Packed: %s -> %s (%dx%d, %d bytes)\n", src, out, bm.Width, bm.Height, w.Offset())
	return nil
}

func cmdExportTexture(cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: acktool export-texture <file> <out.png>")
	}
	src, out := args[0], args[1]

	dev, closeDev, err := openDevice(cfg)
	if err != nil {
		return err
	}
	defer closeDev()

	loader := asset.NewLoader(nil, dev, loaderOptions(cfg)...)
	lib, names, err := openLibrary(cfg, loader, src)
	if err != nil {
		return err
	}
	defer lib.Close()

	// A partial scan still exports a bitmap that decoded before the failure.
	blocks, scanErr := lib.Scan(names[0])
	defer func() {
		for _, b := range blocks {
			loader.Release(b.Value)
		}
	}()

	bm := firstBitmap(blocks)
	if bm == nil {
		if scanErr != nil {
			return scanErr
		}
		return fmt.Errorf("%s: no bitmap found", src)
	}
	img, err := texture.Image(bm)
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err := texture.EncodePNG(bw, bm.Width, bm.Height, img.Pix); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Printf("Exported: %s (%dx%d)\n", out, bm.Width, bm.Height)
	return nil
}
