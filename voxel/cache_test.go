package voxel

import "testing"

func TestMeshCache(t *testing.T) {
	mc, err := NewMeshCache(2, Naive)
	if err != nil {
		t.Fatal(err)
	}
	a := makeTestChunk(3)
	b := makeTestChunk(3)
	_ = b.SetIndex(1, Water)

	m1 := mc.Mesh(a)
	m2 := mc.Mesh(a)
	if !m1.Equal(m2) {
		t.Fatalf("cached mesh differs from the built one")
	}
	m2.Indices[0] = 99
	if m3 := mc.Mesh(a); m3.Indices[0] == 99 {
		t.Fatalf("caller mutation leaked into the cache")
	}
	mc.Mesh(b)
	hits, misses := mc.Stats()
	if hits != 2 || misses != 2 {
		t.Fatalf("hits=%d misses=%d, want 2/2", hits, misses)
	}
	if mc.Len() != 2 {
		t.Fatalf("cache holds %d meshes", mc.Len())
	}
	mc.Purge()
	if mc.Len() != 0 {
		t.Fatalf("purge left %d meshes", mc.Len())
	}
}

func TestMeshCache_Culled(t *testing.T) {
	mc, _ := NewMeshCache(4, Culled)
	c := must(NewChunk(3))
	if got, want := mc.Mesh(c), GenerateCulledMesh(c); !got.Equal(want) {
		t.Fatalf("cache ignores its strategy")
	}
	if _, err := NewMeshCache(0, Naive); err == nil {
		t.Fatalf("expected error for zero size")
	}
}

func TestChunk_Sum64(t *testing.T) {
	a, b := makeTestChunk(4), makeTestChunk(4)
	if a.Sum64() != b.Sum64() {
		t.Fatalf("equal chunks hash differently")
	}
	_ = b.SetIndex(2, Sand)
	if a.Sum64() == b.Sum64() {
		t.Fatalf("different chunks share a hash")
	}
	if must(NewChunkFilled(2, Air)).Sum64() == must(NewChunkFilled(3, Air)).Sum64() {
		t.Fatalf("size is not part of the hash")
	}
}

func TestMeshCache_FingerprintCollision(t *testing.T) {
	mc, _ := NewMeshCache(4, Culled)
	a := must(NewChunkFilled(3, Air))
	_ = a.SetIndex(13, Rock)
	b := must(NewChunk(3))
	// plant b's mesh under a's fingerprint
	mc.cache.Add(a.Sum64(), &cacheEntry{size: b.Size(), kinds: b.kindBytes(), mesh: GenerateCulledMesh(b)})

	if got := mc.Mesh(a); !got.Equal(GenerateCulledMesh(a)) {
		t.Fatalf("cache returned the mesh of a different chunk")
	}
	if hits, misses := mc.Stats(); hits != 0 || misses != 1 {
		t.Fatalf("hits=%d misses=%d, want 0/1", hits, misses)
	}
	if got := mc.Mesh(a); !got.Equal(GenerateCulledMesh(a)) {
		t.Fatalf("replaced entry is wrong")
	}
	if hits, _ := mc.Stats(); hits != 1 {
		t.Fatalf("rebuilt entry was not reused")
	}
}
