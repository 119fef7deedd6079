package utils

import (
	"fmt"
	"os"

	"github.com/voxelsplace/chunkmesh/api"
	"github.com/voxelsplace/chunkmesh/voxel"
)

// RunChunk2GLB meshes a .vchk file and writes it as .glb.
func RunChunk2GLB(inPath, outPath string, s voxel.Strategy) error {
	c, err := voxel.LoadChunk(inPath)
	if err != nil {
		return err
	}
	out, err := api.ChunkToGLB(c, s)
	if err != nil {
		return fmt.Errorf("%s: %w", inPath, err)
	}
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		return err
	}
	fmt.Printf(".glb saved (%d bytes)\n", len(out))
	return nil
}

// RunStats prints the mesh statistics of a .vchk file.
func RunStats(inPath string, s voxel.Strategy) (voxel.MeshStats, error) {
	c, err := voxel.LoadChunk(inPath)
	if err != nil {
		return voxel.MeshStats{}, err
	}
	st := s.Generate(c).Stats()
	fmt.Printf("%s: size=%d strategy=%s %v\n", inPath, c.Size(), s, st)
	return st, nil
}
