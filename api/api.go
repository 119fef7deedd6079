// Package api converts between chunk files, packs, edit streams and GLB
// entirely in memory. It backs both the CLI and the wasm bindings.
package api

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/voxelsplace/chunkmesh/voxel"
)

// ChunkToGLB meshes c and returns a single-node .glb colored by the chunk's
// dominant kind.
func ChunkToGLB(c *voxel.Chunk, s voxel.Strategy) ([]byte, error) {
	rgba, err := voxel.ParseHexColor(c.Dominant().Color())
	if err != nil {
		return nil, err
	}
	w := NewGLBWriter("chunkmesh " + s.String())
	if _, err := w.AddMesh("ChunkMesh", s.Generate(c), rgba, mgl32.Vec3{}); err != nil {
		return nil, err
	}
	return w.Bytes()
}

// ChunkFileToGLB takes .vchk bytes and returns .glb bytes.
func ChunkFileToGLB(chunkFile []byte, s voxel.Strategy) ([]byte, error) {
	c, err := voxel.UnmarshalChunk(chunkFile)
	if err != nil {
		return nil, err
	}
	return ChunkToGLB(c, s)
}

// PackToWriter decodes every pack entry, meshes them in parallel and adds one
// node per non-empty mesh, laid out on a grid.
func PackToWriter(ctx context.Context, pack *voxel.Pack, s voxel.Strategy) (*GLBWriter, error) {
	if len(pack.Entries) == 0 {
		return nil, fmt.Errorf("empty pack: no entries")
	}
	chunks := make([]*voxel.Chunk, len(pack.Entries))
	for i := range pack.Entries {
		c, err := pack.Chunk(i)
		if err != nil {
			return nil, err
		}
		chunks[i] = c
	}
	meshes, err := voxel.MeshChunks(ctx, chunks, 0, s)
	if err != nil {
		return nil, err
	}
	w := NewGLBWriter("chunkmesh pack " + s.String())
	size := int(pack.Header.Size)
	for i, m := range meshes {
		if len(m.Indices) == 0 {
			continue
		}
		rgba, err := voxel.ParseHexColor(chunks[i].Dominant().Color())
		if err != nil {
			return nil, err
		}
		at := GridPlacement(i, len(meshes), size)
		if _, err := w.AddMesh(pack.Entries[i].Name, m, rgba, at); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// PackToGLB converts .vchkpack bytes to .glb bytes.
func PackToGLB(packBytes []byte, s voxel.Strategy) ([]byte, error) {
	pack, _, err := voxel.UnmarshalPack(packBytes)
	if err != nil {
		return nil, err
	}
	w, err := PackToWriter(context.Background(), pack, s)
	if err != nil {
		return nil, err
	}
	return w.Bytes()
}

// PackChunkFiles builds a .vchkpack from named .vchk blobs. Entries are
// stored in name order so the output does not depend on map iteration.
func PackChunkFiles(files map[string][]byte, layout voxel.PackLayout, comp voxel.PackCompression) ([]byte, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files")
	}
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	pack := &voxel.Pack{}
	for _, name := range names {
		if err := pack.Add(name, files[name]); err != nil {
			return nil, err
		}
	}
	return pack.MarshalEx(layout, comp)
}

// UnpackToMemory returns entry name -> .vchk bytes.
func UnpackToMemory(packBytes []byte) (map[string][]byte, error) {
	pack, _, err := voxel.UnmarshalPack(packBytes)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(pack.Entries))
	for i, e := range pack.Entries {
		out[e.Name] = pack.ChunkFile(i)
	}
	return out, nil
}

// EditsToChunkFile applies an edit stream to an empty chunk of edge length
// size and returns the .vchk bytes.
func EditsToChunkFile(size int, edits []byte) ([]byte, error) {
	c, err := voxel.DecodeEditsToChunk(size, edits)
	if err != nil {
		return nil, err
	}
	return voxel.MarshalChunk(c), nil
}

// ChunkFileToEdits returns the edit stream that rebuilds a .vchk from Air.
func ChunkFileToEdits(chunkFile []byte) ([]byte, error) {
	c, err := voxel.UnmarshalChunk(chunkFile)
	if err != nil {
		return nil, err
	}
	return voxel.EncodeChunkEdits(c), nil
}

// Stats meshes a .vchk and reports vertex/triangle counts and fingerprint.
func Stats(chunkFile []byte, s voxel.Strategy) (voxel.MeshStats, error) {
	c, err := voxel.UnmarshalChunk(chunkFile)
	if err != nil {
		return voxel.MeshStats{}, err
	}
	return s.Generate(c).Stats(), nil
}
