package main

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Faultbox/ackasset/internal/assets"
	"github.com/Faultbox/ackasset/internal/config"
	"github.com/Faultbox/ackasset/pkg/asset"
)

func cmdInfo(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: acktool info <file>")
	}

	dev, closeDev, err := openDevice(cfg)
	if err != nil {
		return err
	}
	defer closeDev()

	loader := asset.NewLoader(nil, dev, loaderOptions(cfg)...)
	lib, names, err := openLibrary(cfg, loader, args[0])
	if err != nil {
		return err
	}
	defer lib.Close()

	blocks, scanErr := lib.Scan(names[0])
	defer func() {
		for _, b := range blocks {
			loader.Release(b.Value)
		}
	}()

	fmt.Printf("File:   %s\n", args[0])
	fmt.Printf("Blocks: %d\n", len(blocks))
	fmt.Println()

	kindCount := make(map[asset.Kind]int)
	var total int64
	for _, b := range blocks {
		fmt.Printf("  @%-8d %8d B  %-9s %s  %016x  %s\n",
			b.Offset, b.Size, b.Kind, b.GUID, b.Sum, summary(b.Value))
		kindCount[b.Kind]++
		total += b.Size
	}

	if len(kindCount) > 0 {
		fmt.Println()
		fmt.Println("Blocks by kind:")
		kinds := make([]asset.Kind, 0, len(kindCount))
		for k := range kindCount {
			kinds = append(kinds, k)
		}
		sort.Slice(kinds, func(i, j int) bool {
			return kindCount[kinds[i]] > kindCount[kinds[j]]
		})
		for _, k := range kinds {
			fmt.Printf("  %-10s %d\n", k, kindCount[k])
		}
		fmt.Printf("  %-10s %.2f KB\n", "total", float64(total)/1024)
	}

	if scanErr != nil {
		fmt.Fprintln(os.Stderr)
		return scanErr
	}
	return nil
}

// summary describes a decoded value on one line.
func summary(v any) string {
	switch a := v.(type) {
	case *asset.Model:
		s := fmt.Sprintf("bones=%d meshes=%d materials=%d animations=%d",
			len(a.Bones), len(a.Meshes), len(a.Materials), a.AnimationCount)
		if joints := a.JointPositions(); len(joints) > 0 {
			lo, hi := joints[0], joints[0]
			for _, j := range joints[1:] {
				lo, hi = lo.Min(j), hi.Max(j)
			}
			s += fmt.Sprintf(" skeleton=(%g %g %g)-(%g %g %g)", lo.X, lo.Y, lo.Z, hi.X, hi.Y, hi.Z)
		}
		return s
	case *asset.Mesh:
		s := fmt.Sprintf("%s indices=%d vertices=%d", a.Primitive, len(a.Indices), len(a.Vertices))
		if lo, hi, ok := a.Bounds(); ok {
			s += fmt.Sprintf(" bounds=(%g %g %g)-(%g %g %g)", lo.X, lo.Y, lo.Z, hi.X, hi.Y, hi.Z)
		}
		return s
	case *asset.Material:
		return fmt.Sprintf("textures=%s roughness=%g metallic=%g", a.Mask(), a.Roughness, a.Metallic)
	case *asset.Bitmap:
		return fmt.Sprintf("%s %s %dx%dx%d %s/%s",
			a.Target, a.Format, a.Width, a.Height, a.Depth, a.PixelFormat, a.PixelType)
	case *asset.Shader:
		stages := make([]string, len(a.Stages))
		for i, s := range a.Stages {
			stages[i] = fmt.Sprintf("0x%04X", s.Stage)
		}
		return "stages=" + strings.Join(stages, ",")
	default:
		return fmt.Sprintf("%T", v)
	}
}

// firstBitmap returns the first bitmap in decode order, looking inside
// models and materials.
func firstBitmap(blocks []assets.Block) *asset.Bitmap {
	for _, b := range blocks {
		if bm := bitmapIn(b.Value); bm != nil {
			return bm
		}
	}
	return nil
}

func bitmapIn(v any) *asset.Bitmap {
	switch a := v.(type) {
	case *asset.Bitmap:
		return a
	case *asset.Material:
		if t := a.Textures(); len(t) > 0 {
			return t[0]
		}
	case *asset.Model:
		for _, m := range a.Materials {
			if bm := bitmapIn(m); bm != nil {
				return bm
			}
		}
	}
	return nil
}
