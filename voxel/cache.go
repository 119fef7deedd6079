package voxel

import (
	"bytes"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"
)

// MeshCache memoizes meshes by chunk fingerprint. It is safe for concurrent
// use. Returned meshes are copies owned by the caller.
type MeshCache struct {
	cache    *lru.Cache
	strategy Strategy
	hits     atomic.Uint64
	misses   atomic.Uint64
}

// NewMeshCache keeps up to size meshes built with strategy s.
func NewMeshCache(size int, s Strategy) (*MeshCache, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &MeshCache{cache: c, strategy: s}, nil
}

// cacheEntry keeps the chunk contents next to the mesh so a fingerprint
// collision is a miss, not a wrong mesh.
type cacheEntry struct {
	size  int
	kinds []byte
	mesh  *Mesh
}

// Mesh returns the mesh of c, building it on a miss.
func (mc *MeshCache) Mesh(c *Chunk) *Mesh {
	key := c.Sum64()
	kinds := c.kindBytes()
	if v, ok := mc.cache.Get(key); ok {
		e := v.(*cacheEntry)
		if e.size == c.Size() && bytes.Equal(e.kinds, kinds) {
			mc.hits.Add(1)
			return e.mesh.Clone()
		}
	}
	mc.misses.Add(1)
	m := mc.strategy.Generate(c)
	mc.cache.Add(key, &cacheEntry{size: c.Size(), kinds: kinds, mesh: m.Clone()})
	return m
}

// Stats returns hit and miss counters.
func (mc *MeshCache) Stats() (hits, misses uint64) {
	return mc.hits.Load(), mc.misses.Load()
}

func (mc *MeshCache) Len() int { return mc.cache.Len() }

func (mc *MeshCache) Purge() { mc.cache.Purge() }
