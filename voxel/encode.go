package voxel

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/klauspost/compress/zstd"
)

const (
	encDense  = 0
	encSparse = 1
	// 2 was a run-length layout in older files; never written.
	encBitmap = 3 // occupancy bitmap + non-air kinds

	encCompressed = 0x80 // payload is zstd compressed
)

type encoded struct {
	encoding uint8
	payload  []byte
}

var (
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	zstdDecoder, _ = zstd.NewReader(nil)
)

// indexBits is the width needed to address every voxel of ix.
func indexBits(ix Indexer) uint8 {
	n := bits.Len(uint(ix.Len() - 1))
	if n == 0 {
		n = 1
	}
	return uint8(n)
}

func encodeDense(stream []Kind, bpp uint8) []byte {
	bw := newBitWriter((len(stream)*int(bpp) + 7) / 8)
	for _, k := range stream {
		bw.writeBits(uint32(k), bpp)
	}
	return bw.bytes()
}

// encodeSparse writes a uvarint count followed by (rank, kind) pairs for the
// non-air voxels.
func encodeSparse(stream []Kind, bpp, ibits uint8) []byte {
	count := 0
	for _, k := range stream {
		if k != Air {
			count++
		}
	}
	out := binary.AppendUvarint(nil, uint64(count))
	if count == 0 {
		return out
	}
	bw := newBitWriter((count*int(bpp+ibits) + 7) / 8)
	for r, k := range stream {
		if k == Air {
			continue
		}
		bw.writeBits(uint32(r), ibits)
		bw.writeBits(uint32(k), bpp)
	}
	return append(out, bw.bytes()...)
}

func bitmapLen(n int) int { return (n + 7) / 8 }

func encodeBitmap(stream []Kind, bpp uint8) []byte {
	bitmap := make([]byte, bitmapLen(len(stream)))
	bw := newBitWriter(len(stream))
	for r, k := range stream {
		if k == Air {
			continue
		}
		bitmap[r>>3] |= 1 << (uint(r) & 7)
		bw.writeBits(uint32(k), bpp)
	}
	return append(bitmap, bw.bytes()...)
}

// bestEncoding tries every layout, raw and compressed, and keeps the smallest.
func bestEncoding(c *Chunk, bpp uint8) encoded {
	stream := mortonStream(c)
	candidates := []encoded{
		{encoding: encDense, payload: encodeDense(stream, bpp)},
		{encoding: encSparse, payload: encodeSparse(stream, bpp, indexBits(c.Indexer))},
		{encoding: encBitmap, payload: encodeBitmap(stream, bpp)},
	}
	best := candidates[0]
	for _, cand := range candidates[1:] {
		if len(cand.payload) < len(best.payload) {
			best = cand
		}
	}
	for _, cand := range candidates {
		zb := zstdEncoder.EncodeAll(cand.payload, nil)
		if len(zb) < len(best.payload) {
			best = encoded{encoding: cand.encoding | encCompressed, payload: zb}
		}
	}
	return best
}

// decodePayload rebuilds a chunk of the given size from an encoded payload.
func decodePayload(size int, enc, bpp uint8, payload []byte) (*Chunk, error) {
	c, err := NewChunkFilled(size, Air)
	if err != nil {
		return nil, err
	}
	if enc&encCompressed != 0 {
		payload, err = zstdDecoder.DecodeAll(payload, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: zstd: %v", ErrCorrupt, err)
		}
	}
	n := c.Len()
	stream := make([]Kind, n)
	readKind := func(br *bitReader) (Kind, error) {
		v, err := br.readBits(bpp)
		if err != nil {
			return Air, fmt.Errorf("%w: truncated payload", ErrCorrupt)
		}
		k := Kind(v)
		if !k.Valid() {
			return Air, fmt.Errorf("%w: %d", ErrInvalidKind, v)
		}
		return k, nil
	}

	switch enc &^ encCompressed {
	case encDense:
		br := newBitReader(payload)
		for r := range stream {
			if stream[r], err = readKind(br); err != nil {
				return nil, err
			}
		}
	case encSparse:
		count, used := binary.Uvarint(payload)
		if used <= 0 || count > uint64(n) {
			return nil, fmt.Errorf("%w: bad sparse count", ErrCorrupt)
		}
		br := newBitReader(payload[used:])
		ibits := indexBits(c.Indexer)
		for j := uint64(0); j < count; j++ {
			r, err := br.readBits(ibits)
			if err != nil {
				return nil, fmt.Errorf("%w: truncated payload", ErrCorrupt)
			}
			if int(r) >= n {
				return nil, fmt.Errorf("%w: sparse rank %d", ErrIndexOutOfRange, r)
			}
			if stream[r], err = readKind(br); err != nil {
				return nil, err
			}
		}
	case encBitmap:
		bl := bitmapLen(n)
		if len(payload) < bl {
			return nil, fmt.Errorf("%w: bitmap needs %d bytes, have %d", ErrCorrupt, bl, len(payload))
		}
		bitmap := payload[:bl]
		br := newBitReader(payload[bl:])
		for r := range stream {
			if bitmap[r>>3]>>(uint(r)&7)&1 == 0 {
				continue
			}
			if stream[r], err = readKind(br); err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("%w: unknown encoding %d", ErrCorrupt, enc)
	}
	applyMortonStream(c, stream)
	return c, nil
}
