package voxel

import (
	"encoding/binary"
	"math"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl32"
)

// Sum64 fingerprints the chunk size and contents. Equal chunks hash equal.
func (c *Chunk) Sum64() uint64 {
	d := xxhash.New()
	var hdr [2]byte
	binary.LittleEndian.PutUint16(hdr[:], uint16(c.Size()))
	_, _ = d.Write(hdr[:])
	_, _ = d.Write(c.kindBytes())
	return d.Sum64()
}

// kindBytes returns one byte per voxel in flat order.
func (c *Chunk) kindBytes() []byte {
	buf := make([]byte, len(c.voxels))
	for i, v := range c.voxels {
		buf[i] = byte(v.Kind)
	}
	return buf
}

// Sum64 fingerprints the three mesh buffers. Two meshes with the same Sum64
// are, for all practical purposes, byte-identical.
func (m *Mesh) Sum64() uint64 {
	d := xxhash.New()
	buf := make([]byte, 0, 4096)
	flush := func() {
		_, _ = d.Write(buf)
		buf = buf[:0]
	}
	putVecs := func(vs []mgl32.Vec3) {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(vs)))
		for _, v := range vs {
			for _, f := range v {
				buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(f))
			}
			if len(buf) >= 4000 {
				flush()
			}
		}
	}
	putVecs(m.Positions)
	putVecs(m.Normals)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(m.Indices)))
	for _, idx := range m.Indices {
		buf = binary.LittleEndian.AppendUint32(buf, idx)
		if len(buf) >= 4000 {
			flush()
		}
	}
	flush()
	return d.Sum64()
}
