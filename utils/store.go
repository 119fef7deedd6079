package utils

import (
	"fmt"

	"github.com/voxelsplace/chunkmesh/api"
	"github.com/voxelsplace/chunkmesh/store"
	"github.com/voxelsplace/chunkmesh/voxel"
)

// RunStorePut loads a .vchk file into the store at chunk coordinate coord.
func RunStorePut(dbPath string, coord voxel.Position, chunkPath string) error {
	c, err := voxel.LoadChunk(chunkPath)
	if err != nil {
		return err
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.PutChunk(coord, c); err != nil {
		return err
	}
	fmt.Printf("stored %s at %v\n", chunkPath, coord)
	return nil
}

// RunStoreGenerate fills the store with an nx×ny×nz block of generated
// chunks starting at chunk coordinate (0,0,0).
func RunStoreGenerate(dbPath, mode string, size int, seed int64, nx, ny, nz int) error {
	gen, err := NewGenerator(mode, seed)
	if err != nil {
		return err
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()
	for z := 0; z < nz; z++ {
		for y := 0; y < ny; y++ {
			for x := 0; x < nx; x++ {
				coord := voxel.Position{X: x, Y: y, Z: z}
				c, err := FillChunk(size, coord, gen)
				if err != nil {
					return err
				}
				if err := st.PutChunk(coord, c); err != nil {
					return err
				}
			}
		}
	}
	fmt.Printf("stored %d %s chunks\n", nx*ny*nz, mode)
	return nil
}

// RunStoreGLB meshes every stored chunk, records its stats and writes one
// .glb with each chunk placed at coord*size. Identical chunks are meshed
// once through the cache.
func RunStoreGLB(dbPath, outPath string, s voxel.Strategy) error {
	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	cache, err := voxel.NewMeshCache(64, s)
	if err != nil {
		return err
	}
	type placed struct {
		coord voxel.Position
		mesh  *voxel.Mesh
		kind  voxel.Kind
		size  int
	}
	var all []placed
	err = st.RangeChunks(func(coord voxel.Position, c *voxel.Chunk) error {
		all = append(all, placed{coord: coord, mesh: cache.Mesh(c), kind: c.Dominant(), size: c.Size()})
		return nil
	})
	if err != nil {
		return err
	}
	if len(all) == 0 {
		return fmt.Errorf("%s: store is empty", dbPath)
	}

	w := api.NewGLBWriter("chunkmesh store " + s.String())
	for _, p := range all {
		if err := st.PutStats(p.coord, p.mesh.Stats()); err != nil {
			return err
		}
		if len(p.mesh.Indices) == 0 {
			continue
		}
		rgba, err := voxel.ParseHexColor(p.kind.Color())
		if err != nil {
			return err
		}
		at := voxel.Position{X: p.coord.X * p.size, Y: p.coord.Y * p.size, Z: p.coord.Z * p.size}
		if _, err := w.AddMesh(fmt.Sprintf("chunk%v", p.coord), p.mesh, rgba, at.Vec3()); err != nil {
			return err
		}
	}
	if err := w.Save(outPath); err != nil {
		return err
	}
	hits, misses := cache.Stats()
	fmt.Printf(".glb saved: %d chunks, %d meshes built, %d reused\n", len(all), misses, hits)
	return nil
}
