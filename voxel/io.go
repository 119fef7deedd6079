package voxel

import (
	"encoding/binary"
	"fmt"
	"os"
)

// SaveChunk writes c to filename in .vchk format.
func SaveChunk(c *Chunk, filename string) error {
	return os.WriteFile(filename, MarshalChunk(c), 0o644)
}

// MarshalChunk encodes c as a complete .vchk file using the smallest layout.
func MarshalChunk(c *Chunk) []byte {
	enc := bestEncoding(c, KindBits)
	hdr := ChunkHeader{Ver: chunkVersion, BPP: KindBits, Size: uint16(c.Size())}
	return BuildChunkFile(hdr, enc.encoding, enc.payload)
}

// BuildChunkFile reassembles a .vchk file from header fields, encoding byte
// and payload. hdr.PLen is ignored and recomputed.
func BuildChunkFile(hdr ChunkHeader, enc uint8, payload []byte) []byte {
	out := make([]byte, 0, chunkHeaderSize+len(payload))
	out = append(out, chunkMagic...)
	out = append(out, hdr.Ver, enc, hdr.BPP)
	out = binary.LittleEndian.AppendUint16(out, hdr.Size)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(payload)))
	return append(out, payload...)
}

// ParseChunkHeader splits a .vchk file into header, encoding and payload.
func ParseChunkHeader(data []byte) (ChunkHeader, uint8, []byte, error) {
	var hdr ChunkHeader
	if len(data) < chunkHeaderSize || string(data[:4]) != chunkMagic {
		return hdr, 0, nil, ErrBadMagic
	}
	hdr.Ver = data[4]
	if hdr.Ver != chunkVersion {
		return hdr, 0, nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, hdr.Ver)
	}
	enc := data[5]
	hdr.BPP = data[6]
	hdr.Size = binary.LittleEndian.Uint16(data[7:9])
	hdr.PLen = binary.LittleEndian.Uint32(data[9:13])
	if hdr.BPP == 0 || hdr.BPP > 8 {
		return hdr, 0, nil, fmt.Errorf("%w: %d bits per kind", ErrCorrupt, hdr.BPP)
	}
	if uint64(len(data)-chunkHeaderSize) != uint64(hdr.PLen) {
		return hdr, 0, nil, fmt.Errorf("%w: payload length %d, header says %d", ErrCorrupt, len(data)-chunkHeaderSize, hdr.PLen)
	}
	return hdr, enc, data[chunkHeaderSize:], nil
}

// UnmarshalChunk decodes a complete .vchk file.
func UnmarshalChunk(data []byte) (*Chunk, error) {
	hdr, enc, payload, err := ParseChunkHeader(data)
	if err != nil {
		return nil, err
	}
	return decodePayload(int(hdr.Size), enc, hdr.BPP, payload)
}

// LoadChunk reads a .vchk file from disk.
func LoadChunk(filename string) (*Chunk, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	c, err := UnmarshalChunk(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return c, nil
}
