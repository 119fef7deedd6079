package voxel

// ChunkHeader holds the fixed fields of a .vchk file. The per-file encoding
// byte is kept out of it because packs store it next to each payload.
//
// File layout (little endian):
//
//	"VCHK" | ver u8 | enc u8 | bpp u8 | size u16 | plen u32 | payload
type ChunkHeader struct {
	Ver  uint8
	BPP  uint8
	Size uint16
	PLen uint32
}

const (
	chunkMagic      = "VCHK"
	chunkVersion    = 1
	chunkHeaderSize = 13
)

// Compatible reports whether two headers describe chunks that can share a pack.
func (h ChunkHeader) Compatible(o ChunkHeader) bool {
	return h.Ver == o.Ver && h.BPP == o.BPP && h.Size == o.Size
}
