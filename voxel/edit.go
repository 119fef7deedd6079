package voxel

import (
	"encoding/binary"
	"fmt"
)

// An edit stream is a uvarint entry count followed by a continuous bitstream
// of (flat index, kind) entries with no padding between them. The index width
// depends on the chunk size (bits needed for L³-1); the kind takes KindBits.
// Air clears a voxel. An empty stream carries no edits.

// Edit is one (index, kind) entry of an edit stream.
type Edit struct {
	Index int
	Kind  Kind
}

// EncodeEdits packs entries exactly as given, including Air clears.
func EncodeEdits(ix Indexer, edits []Edit) ([]byte, error) {
	if len(edits) == 0 {
		return nil, nil
	}
	ibits := indexBits(ix)
	out := binary.AppendUvarint(nil, uint64(len(edits)))
	bw := newBitWriter((len(edits)*int(ibits+KindBits) + 7) / 8)
	for _, e := range edits {
		if e.Index < 0 || e.Index >= ix.Len() {
			return nil, fmt.Errorf("%w: edit index %d", ErrIndexOutOfRange, e.Index)
		}
		if !e.Kind.Valid() {
			return nil, fmt.Errorf("%w: %d", ErrInvalidKind, e.Kind)
		}
		bw.writeBits(uint32(e.Index), ibits)
		bw.writeBits(uint32(e.Kind), KindBits)
	}
	return append(out, bw.bytes()...), nil
}

// EncodeChunkEdits encodes every non-air voxel of c, in flat order, so that
// applying the stream to an empty chunk rebuilds c.
func EncodeChunkEdits(c *Chunk) []byte {
	var edits []Edit
	for i, v := range c.voxels {
		if v.Kind != Air {
			edits = append(edits, Edit{Index: i, Kind: v.Kind})
		}
	}
	out, _ := EncodeEdits(c.Indexer, edits)
	return out
}

// DecodeEdits unpacks a stream for a chunk of the given indexer. Bits after
// the last counted entry are padding.
func DecodeEdits(ix Indexer, data []byte) ([]Edit, error) {
	if len(data) == 0 {
		return nil, nil
	}
	count, used := binary.Uvarint(data)
	if used <= 0 {
		return nil, fmt.Errorf("%w: bad edit count", ErrCorrupt)
	}
	ibits := indexBits(ix)
	body := data[used:]
	if count > uint64(len(body))*8/uint64(ibits+KindBits) {
		return nil, fmt.Errorf("%w: %d edits do not fit in %d bytes", ErrCorrupt, count, len(body))
	}
	br := newBitReader(body)
	edits := make([]Edit, 0, count)
	for j := uint64(0); j < count; j++ {
		idx, err := br.readBits(ibits)
		if err != nil {
			return nil, fmt.Errorf("%w: truncated edit stream", ErrCorrupt)
		}
		k, err := br.readBits(KindBits)
		if err != nil {
			return nil, fmt.Errorf("%w: truncated edit stream", ErrCorrupt)
		}
		if int(idx) >= ix.Len() {
			return nil, fmt.Errorf("%w: edit index %d", ErrIndexOutOfRange, idx)
		}
		if !Kind(k).Valid() {
			return nil, fmt.Errorf("%w: %d", ErrInvalidKind, k)
		}
		edits = append(edits, Edit{Index: int(idx), Kind: Kind(k)})
	}
	return edits, nil
}

// ApplyEdits decodes data and applies it to c. Nothing is applied when the
// stream is invalid.
func ApplyEdits(c *Chunk, data []byte) error {
	edits, err := DecodeEdits(c.Indexer, data)
	if err != nil {
		return err
	}
	for _, e := range edits {
		c.voxels[e.Index].Kind = e.Kind
	}
	return nil
}

// DecodeEditsToChunk builds a new chunk of the given size from an edit
// stream applied over Air.
func DecodeEditsToChunk(size int, data []byte) (*Chunk, error) {
	c, err := NewChunkFilled(size, Air)
	if err != nil {
		return nil, err
	}
	if err := ApplyEdits(c, data); err != nil {
		return nil, err
	}
	return c, nil
}
