//go:build !(js && wasm)

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/voxelsplace/chunkmesh/utils"
	"github.com/voxelsplace/chunkmesh/voxel"
)

func usage() {
	fmt.Println("Usage: chunkmesh <command> [args]")
	fmt.Println("Commands:")
	fmt.Println("  gen <mode> <size> <amount> <output_dir> [seed]      (mode: solid|empty|terrain|caves)")
	fmt.Println("  chunk2glb input.vchk output.glb [naive|culled]     (mesh a chunk into .glb)")
	fmt.Println("  stats input.vchk [naive|culled]                    (print vertex/triangle counts)")
	fmt.Println("  pack [-layout raw|cdc] [-comp none|zlib|zstd] output.vchkpack input1.vchk [input2.vchk ...]")
	fmt.Println("  unpack input.vchkpack output_dir")
	fmt.Println("  pack2glb input.vchkpack output.glb [naive|culled]  (one node per chunk)")
	fmt.Println("  edit input.vchk edits.bin output.vchk              (apply an edit stream)")
	fmt.Println("  edits2chunk <size> edits.bin output.vchk           (build a chunk from edits over air)")
	fmt.Println("  chunk2edits input.vchk edits.bin")
	fmt.Println("  store-put db <x> <y> <z> input.vchk")
	fmt.Println("  store-gen db <mode> <size> <nx> <ny> <nz> [seed]")
	fmt.Println("  store-glb db output.glb [naive|culled]")
}

func fail(err error) {
	fmt.Println("Error:", err)
	os.Exit(1)
}

func need(n int) {
	if len(os.Args) < n {
		usage()
		os.Exit(1)
	}
}

func scan(s string, v any) {
	if _, err := fmt.Sscan(s, v); err != nil {
		fail(fmt.Errorf("bad argument %q: %w", s, err))
	}
}

// strategyArg reads an optional strategy at os.Args[i].
func strategyArg(i int) voxel.Strategy {
	if len(os.Args) <= i {
		return voxel.Naive
	}
	s, err := voxel.ParseStrategy(os.Args[i])
	if err != nil {
		fail(err)
	}
	return s
}

// seedArg reads an optional seed at os.Args[i].
func seedArg(i int) int64 {
	var seed int64
	if len(os.Args) > i {
		scan(os.Args[i], &seed)
	}
	return seed
}

func main() {
	need(2)

	var err error
	switch os.Args[1] {
	case "gen":
		need(6)
		var size, amount int
		scan(os.Args[3], &size)
		scan(os.Args[4], &amount)
		err = utils.RunGenerate(os.Args[2], size, amount, seedArg(6), os.Args[5])
	case "chunk2glb":
		need(4)
		err = utils.RunChunk2GLB(os.Args[2], os.Args[3], strategyArg(4))
	case "stats":
		need(3)
		_, err = utils.RunStats(os.Args[2], strategyArg(3))
	case "pack":
		fs := flag.NewFlagSet("pack", flag.ExitOnError)
		layoutName := fs.String("layout", "raw", "entry layout: raw or cdc")
		compName := fs.String("comp", "zlib", "compression: none, zlib or zstd")
		_ = fs.Parse(os.Args[2:])
		if fs.NArg() < 2 {
			usage()
			os.Exit(1)
		}
		layout := voxel.LayoutRaw
		switch *layoutName {
		case "raw":
		case "cdc":
			layout = voxel.LayoutCDC
		default:
			fail(fmt.Errorf("unknown layout %q", *layoutName))
		}
		comp, perr := voxel.ParsePackCompression(*compName)
		if perr != nil {
			fail(perr)
		}
		err = utils.CreatePack(fs.Args()[1:], fs.Arg(0), layout, comp)
	case "unpack":
		need(4)
		err = utils.UnpackToDir(os.Args[2], os.Args[3])
	case "pack2glb":
		need(4)
		err = utils.RunPack2GLB(os.Args[2], os.Args[3], strategyArg(4))
	case "edit":
		need(5)
		err = utils.RunUpdate(os.Args[3], os.Args[2], os.Args[4])
	case "edits2chunk":
		need(5)
		var size int
		scan(os.Args[2], &size)
		err = utils.RunEdits2Chunk(size, os.Args[3], os.Args[4])
	case "chunk2edits":
		need(4)
		err = utils.RunChunk2Edits(os.Args[2], os.Args[3])
	case "store-put":
		need(7)
		var coord voxel.Position
		scan(os.Args[3], &coord.X)
		scan(os.Args[4], &coord.Y)
		scan(os.Args[5], &coord.Z)
		err = utils.RunStorePut(os.Args[2], coord, os.Args[6])
	case "store-gen":
		need(8)
		var size, nx, ny, nz int
		scan(os.Args[4], &size)
		scan(os.Args[5], &nx)
		scan(os.Args[6], &ny)
		scan(os.Args[7], &nz)
		err = utils.RunStoreGenerate(os.Args[2], os.Args[3], size, seedArg(8), nx, ny, nz)
	case "store-glb":
		need(4)
		err = utils.RunStoreGLB(os.Args[2], os.Args[3], strategyArg(4))
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		fail(err)
	}

	fmt.Println("Operation completed!")
}
