package voxel

import (
	"context"
	"runtime"

	"github.com/alitto/pond/v2"
)

// MeshChunks meshes independent chunks in parallel and returns the meshes in
// input order. workers <= 0 uses one worker per CPU. Cancelling ctx stops
// chunks that have not started yet and returns ctx.Err().
func MeshChunks(ctx context.Context, chunks []*Chunk, workers int, s Strategy) ([]*Mesh, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	out := make([]*Mesh, len(chunks))
	pool := pond.NewPool(workers)
	for i, c := range chunks {
		i, c := i, c
		pool.Submit(func() {
			if ctx.Err() != nil {
				return
			}
			out[i] = s.Generate(c)
		})
	}
	pool.StopAndWait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
