package voxel

import (
	"sort"
	"sync"
)

// Morton3D64 interleaves the low 21 bits of x, y and z (x in bit 0).
func Morton3D64(x, y, z uint32) uint64 {
	return part1By2(uint64(x)) |
		(part1By2(uint64(y)) << 1) |
		(part1By2(uint64(z)) << 2)
}

// MortonDecode3D64 is the inverse of Morton3D64.
func MortonDecode3D64(code uint64) (x, y, z uint32) {
	x = uint32(compact1By2(code))
	y = uint32(compact1By2(code >> 1))
	z = uint32(compact1By2(code >> 2))
	return
}

func part1By2(x uint64) uint64 {
	x &= 0x1fffff
	x = (x | (x << 32)) & 0x1f00000000ffff
	x = (x | (x << 16)) & 0x1f0000ff0000ff
	x = (x | (x << 8)) & 0x100f00f00f00f00f
	x = (x | (x << 4)) & 0x10c30c30c30c30c3
	x = (x | (x << 2)) & 0x1249249249249249
	return x
}

func compact1By2(x uint64) uint64 {
	x &= 0x1249249249249249
	x = (x ^ (x >> 2)) & 0x10c30c30c30c30c3
	x = (x ^ (x >> 4)) & 0x100f00f00f00f00f
	x = (x ^ (x >> 8)) & 0x1f0000ff0000ff
	x = (x ^ (x >> 16)) & 0x1f00000000ffff
	x = (x ^ (x >> 32)) & 0x1fffff
	return x
}

// mortonOrders caches, per edge length, the flat indices sorted by Morton
// code. Neighboring voxels end up close in the stream, which helps the
// compressors.
var mortonOrders sync.Map // int -> []int

func mortonOrder(ix Indexer) []int {
	if v, ok := mortonOrders.Load(ix.Size()); ok {
		return v.([]int)
	}
	n := ix.Len()
	order := make([]int, n)
	codes := make([]uint64, n)
	for i := range order {
		p := ix.position(i)
		order[i] = i
		codes[i] = Morton3D64(uint32(p.X), uint32(p.Y), uint32(p.Z))
	}
	sort.Slice(order, func(a, b int) bool { return codes[order[a]] < codes[order[b]] })
	v, _ := mortonOrders.LoadOrStore(ix.Size(), order)
	return v.([]int)
}

// mortonStream returns the chunk's kinds in Morton order.
func mortonStream(c *Chunk) []Kind {
	order := mortonOrder(c.Indexer)
	stream := make([]Kind, len(order))
	for r, i := range order {
		stream[r] = c.voxels[i].Kind
	}
	return stream
}

// applyMortonStream writes a Morton-ordered stream back into flat order.
func applyMortonStream(c *Chunk, stream []Kind) {
	for r, i := range mortonOrder(c.Indexer) {
		c.voxels[i].Kind = stream[r]
	}
}
