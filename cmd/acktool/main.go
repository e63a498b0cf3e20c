// acktool is a CLI utility for inspecting and producing asset block files.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/ackasset/internal/assets"
	"github.com/Faultbox/ackasset/internal/config"
	"github.com/Faultbox/ackasset/internal/gldevice"
	"github.com/Faultbox/ackasset/internal/logger"
	"github.com/Faultbox/ackasset/pkg/asset"
	"github.com/Faultbox/ackasset/pkg/gfx"
	"github.com/Faultbox/ackasset/pkg/gfx/memdevice"
)

func main() {
	config.ParseFlags()
	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	command := flag.Arg(0)
	args := flag.Args()[1:]

	switch command {
	case "info":
		err = cmdInfo(cfg, args)
	case "verify", "check":
		err = cmdVerify(cfg, args)
	case "pack-texture", "pack":
		err = cmdPackTexture(cfg, args)
	case "export-texture", "export":
		err = cmdExportTexture(cfg, args)
	case "guid":
		err = cmdGUID(args)
	case "config":
		err = cmdConfig(cfg, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`acktool - asset block file utility

Usage:
  acktool [-config file] [-debug] [-device memory|gl] [-log-file file] <command> [options]

Commands:
  info <file>                        Show every block in a file
  verify <file>...                   Decode files and report failures (parallel on the memory device)
  pack-texture [-magenta-key] <image> <out>
                                     Import TGA/PNG/JPEG as an RGBA8 bitmap block
  export-texture <file> <out.png>    Write the first RGBA8 bitmap of a file as PNG
  guid [n]                           Print n fresh type GUIDs (default 1)
  config [-write file]               Print or save the effective configuration

Examples:
  acktool info hero.ack
  acktool verify models/*.ack
  acktool pack-texture -magenta-key sword.tga sword.ack
  acktool -device gl export-texture hero.ack hero.png`)
}

// openDevice returns the configured device and a function releasing it.
// A GL device must stay on the calling goroutine.
func openDevice(cfg *config.Config) (gfx.Device, func(), error) {
	switch cfg.Device.Backend {
	case config.BackendGL:
		ctx, err := gldevice.Open(gldevice.Config{
			Title:  "acktool",
			Width:  cfg.Device.Width,
			Height: cfg.Device.Height,
			Log:    logger.Named("gl"),
		})
		if err != nil {
			return nil, nil, err
		}
		return ctx.Device(), ctx.Close, nil
	default:
		return memdevice.New(), func() {}, nil
	}
}

func loaderOptions(cfg *config.Config) []asset.Option {
	return []asset.Option{
		asset.WithLogger(logger.Named("asset")),
		asset.WithMaxPayload(cfg.MaxPayloadBytes()),
	}
}

// openLibrary builds a library over the configured roots. Paths that are
// not relative to the working directory get their directory added as the
// highest-priority root.
func openLibrary(cfg *config.Config, loader *asset.Loader, paths ...string) (*assets.Library, []string, error) {
	lib := assets.NewLibrary(loader, cfg.CacheBytes(), logger.Named("library"))
	for _, root := range cfg.Library.Roots {
		if err := lib.AddRoot(root); err != nil {
			logger.Warn("skipping library root", zap.String("root", root), zap.Error(err))
		}
	}

	names := make([]string, len(paths))
	for i, p := range paths {
		if filepath.IsLocal(p) {
			names[i] = filepath.ToSlash(p)
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, nil, err
		}
		if err := lib.AddRoot(filepath.Dir(abs)); err != nil {
			return nil, nil, err
		}
		names[i] = filepath.Base(abs)
	}
	return lib, names, nil
}
