package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/ackasset/internal/assets"
	"github.com/Faultbox/ackasset/internal/config"
	"github.com/Faultbox/ackasset/internal/logger"
	"github.com/Faultbox/ackasset/pkg/asset"
	"github.com/Faultbox/ackasset/pkg/gfx/memdevice"
)

type verifyResult struct {
	blocks int
	err    error
}

// cmdVerify decodes every file. The memory backend checks files in parallel,
// one device each; the GL backend checks them in order on its single context.
func cmdVerify(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: acktool verify <file>...")
	}

	reg := asset.NewRegistry()
	opts := loaderOptions(cfg)

	var results []verifyResult
	if cfg.Device.Backend == config.BackendGL {
		dev, closeDev, err := openDevice(cfg)
		if err != nil {
			return err
		}
		defer closeDev()
		loader := asset.NewLoader(reg, dev, opts...)
		results = verifyFiles(args, false, func() *asset.Loader { return loader })
	} else {
		results = verifyFiles(args, true, func() *asset.Loader {
			return asset.NewLoader(reg, memdevice.New(), opts...)
		})
	}

	failed := 0
	for i, res := range results {
		if res.err != nil {
			fmt.Printf("FAIL  %s: %v\n", args[i], res.err)
			failed++
			continue
		}
		fmt.Printf("ok    %s (%d blocks)\n", args[i], res.blocks)
	}

	fmt.Fprintf(os.Stderr, "\n%d files, %d failed\n", len(args), failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed verification", failed, len(args))
	}
	return nil
}

// verifyFiles scans each path with a loader from newLoader. Serial runs
// stay on the calling goroutine.
func verifyFiles(paths []string, parallel bool, newLoader func() *asset.Loader) []verifyResult {
	results := make([]verifyResult, len(paths))
	if !parallel {
		for i, path := range paths {
			results[i] = verifyFile(newLoader(), path)
		}
		return results
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			results[i] = verifyFile(newLoader(), path)
			return nil
		})
	}
	g.Wait() // workers record failures in results
	return results
}

func verifyFile(loader *asset.Loader, path string) verifyResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return verifyResult{err: err}
	}
	blocks, err := assets.Scan(loader, data)
	for _, b := range blocks {
		loader.Release(b.Value)
	}
	logger.Debug("verified file",
		zap.String("path", path),
		zap.Int("blocks", len(blocks)),
		zap.Error(err))
	return verifyResult{blocks: len(blocks), err: err}
}
