package voxel

import (
	"context"
	"errors"
	"testing"
)

func TestMeshChunks(t *testing.T) {
	chunks := make([]*Chunk, 12)
	for i := range chunks {
		chunks[i] = makeTestChunk(1 + i%4)
	}
	for _, s := range []Strategy{Naive, Culled} {
		meshes, err := MeshChunks(context.Background(), chunks, 3, s)
		if err != nil {
			t.Fatalf("%v: %v", s, err)
		}
		if len(meshes) != len(chunks) {
			t.Fatalf("%v: %d meshes for %d chunks", s, len(meshes), len(chunks))
		}
		for i, m := range meshes {
			if !m.Equal(s.Generate(chunks[i])) {
				t.Fatalf("%v: mesh %d is out of order or wrong", s, i)
			}
		}
	}
}

func TestMeshChunks_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	chunks := []*Chunk{must(NewChunk(2)), must(NewChunk(2))}
	if _, err := MeshChunks(ctx, chunks, 0, Naive); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
