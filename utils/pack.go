package utils

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/voxelsplace/chunkmesh/api"
	"github.com/voxelsplace/chunkmesh/voxel"
)

// CreatePack reads .vchk files and writes a .vchkpack to outputFile. All
// inputs must share the same header.
func CreatePack(inputFiles []string, outputFile string, layout voxel.PackLayout, comp voxel.PackCompression) error {
	if len(inputFiles) == 0 {
		return fmt.Errorf("no .vchk files provided")
	}
	blobs := make([][]byte, len(inputFiles))
	errs := make([]error, len(inputFiles))
	var wg sync.WaitGroup
	for i, path := range inputFiles {
		wg.Add(1)
		i, path := i, path
		go func() {
			defer wg.Done()
			blobs[i], errs[i] = os.ReadFile(path)
		}()
	}
	wg.Wait()

	pack := &voxel.Pack{}
	for i, path := range inputFiles {
		if errs[i] != nil {
			return errs[i]
		}
		if err := pack.Add(filepath.Base(path), blobs[i]); err != nil {
			return err
		}
	}
	start := time.Now()
	data, err := pack.MarshalEx(layout, comp)
	if err != nil {
		return err
	}
	fmt.Printf("packed %d chunks (%d bytes) in %d ms\n", len(pack.Entries), len(data), time.Since(start).Milliseconds())
	return os.WriteFile(outputFile, data, 0o644)
}

func readPack(packFile string) (*voxel.Pack, error) {
	data, err := os.ReadFile(packFile)
	if err != nil {
		return nil, err
	}
	pack, _, err := voxel.UnmarshalPack(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", packFile, err)
	}
	return pack, nil
}

// UnpackToDir writes every entry of a .vchkpack into outputDir under its
// stored name.
func UnpackToDir(packFile, outputDir string) error {
	pack, err := readPack(packFile)
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(pack.Entries))
	for _, e := range pack.Entries {
		base := filepath.Base(e.Name)
		if seen[base] {
			return fmt.Errorf("%s: two entries unpack to %s", packFile, base)
		}
		seen[base] = true
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}
	var wg sync.WaitGroup
	errCh := make(chan error, len(pack.Entries))
	for i, e := range pack.Entries {
		wg.Add(1)
		i, e := i, e
		go func() {
			defer wg.Done()
			path := filepath.Join(outputDir, filepath.Base(e.Name))
			if err := os.WriteFile(path, pack.ChunkFile(i), 0o644); err != nil {
				errCh <- err
			}
		}()
	}
	wg.Wait()
	close(errCh)
	// nil when no write failed
	return <-errCh
}

// RunPack2GLB meshes every chunk of a .vchkpack and writes one .glb with a
// node per chunk.
func RunPack2GLB(inPackPath, outGlbPath string, s voxel.Strategy) error {
	pack, err := readPack(inPackPath)
	if err != nil {
		return err
	}
	w, err := api.PackToWriter(context.Background(), pack, s)
	if err != nil {
		return err
	}
	if err := w.Save(outGlbPath); err != nil {
		return err
	}
	fmt.Printf(".glb saved with %d nodes\n", len(w.Document().Nodes))
	return nil
}
