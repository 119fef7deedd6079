package voxel

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math/bits"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zlib"
)

// PackCompression is the codec applied to the whole pack content section.
type PackCompression uint8

const (
	PackCompNone PackCompression = 0
	PackCompZlib PackCompression = 1
	PackCompZstd PackCompression = 2
)

// ParsePackCompression accepts "none", "zlib" or "zstd".
func ParsePackCompression(s string) (PackCompression, error) {
	switch s {
	case "none":
		return PackCompNone, nil
	case "", "zlib":
		return PackCompZlib, nil
	case "zstd":
		return PackCompZstd, nil
	}
	return PackCompNone, fmt.Errorf("unknown pack compression %q", s)
}

// PackLayout selects how entry payloads are laid out in the content section.
type PackLayout uint8

const (
	// LayoutRaw stores each payload as an independent blob.
	LayoutRaw PackLayout = 0
	// LayoutCDC splits payloads with content-defined chunking and stores
	// each distinct block once.
	LayoutCDC PackLayout = 1
)

const (
	packMagic   = "VCHKPACK"
	packVersion = 1

	cdcTarget = 4096
	cdcMin    = 2048
	cdcMax    = 16384
)

// PackEntry is one chunk file inside a pack, minus the shared header.
type PackEntry struct {
	Name    string
	Enc     uint8
	Payload []byte
}

// Pack groups chunk files that share a header.
type Pack struct {
	Header  ChunkHeader
	Entries []PackEntry
}

// Add appends a complete .vchk file. Its header must match the pack's; the
// first file added sets the header of an empty pack.
func (p *Pack) Add(name string, chunkFile []byte) error {
	hdr, enc, payload, err := ParseChunkHeader(chunkFile)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	for _, e := range p.Entries {
		if e.Name == name {
			return fmt.Errorf("%s: duplicate entry name", name)
		}
	}
	if len(p.Entries) == 0 && p.Header == (ChunkHeader{}) {
		p.Header = ChunkHeader{Ver: hdr.Ver, BPP: hdr.BPP, Size: hdr.Size}
	} else if !p.Header.Compatible(hdr) {
		return fmt.Errorf("%s: header %+v does not match pack header %+v", name, hdr, p.Header)
	}
	p.Entries = append(p.Entries, PackEntry{Name: name, Enc: enc, Payload: payload})
	return nil
}

// ChunkFile rebuilds the complete .vchk file of entry i.
func (p *Pack) ChunkFile(i int) []byte {
	e := p.Entries[i]
	return BuildChunkFile(p.Header, e.Enc, e.Payload)
}

// Chunk decodes entry i.
func (p *Pack) Chunk(i int) (*Chunk, error) {
	e := p.Entries[i]
	c, err := decodePayload(int(p.Header.Size), e.Enc, p.Header.BPP, e.Payload)
	if err != nil {
		return nil, fmt.Errorf("entry %d (%s): %w", i, e.Name, err)
	}
	return c, nil
}

type packWriter struct{ bytes.Buffer }

func (w *packWriter) u8(v uint8)   { w.WriteByte(v) }
func (w *packWriter) u16(v uint16) { _ = binary.Write(w, binary.LittleEndian, v) }
func (w *packWriter) u32(v uint32) { _ = binary.Write(w, binary.LittleEndian, v) }

func (w *packWriter) name(s string) error {
	if len(s) > 0xFFFF {
		return fmt.Errorf("entry name too long: %d bytes", len(s))
	}
	w.u16(uint16(len(s)))
	w.WriteString(s)
	return nil
}

// Marshal encodes the pack as raw layout.
func (p *Pack) Marshal(comp PackCompression) ([]byte, error) {
	return p.MarshalEx(LayoutRaw, comp)
}

// MarshalEx encodes the pack with the given layout and compression.
func (p *Pack) MarshalEx(layout PackLayout, comp PackCompression) ([]byte, error) {
	if p.Header.Ver != chunkVersion {
		return nil, fmt.Errorf("%w: pack header version %d", ErrUnsupportedVersion, p.Header.Ver)
	}
	var content packWriter
	content.u8(p.Header.Ver)
	content.u8(p.Header.BPP)
	content.u16(p.Header.Size)
	content.u8(uint8(layout))

	switch layout {
	case LayoutRaw:
		content.u32(uint32(len(p.Entries)))
		for _, e := range p.Entries {
			if err := content.name(e.Name); err != nil {
				return nil, err
			}
			content.u8(e.Enc)
			content.u32(uint32(len(e.Payload)))
			content.Write(e.Payload)
		}
	case LayoutCDC:
		blocks, seqs := buildCDCIndex(p.Entries, cdcTarget, cdcMin, cdcMax)
		content.u32(uint32(len(blocks)))
		for _, b := range blocks {
			content.u32(uint32(len(b)))
			content.Write(b)
		}
		content.u32(uint32(len(p.Entries)))
		for i, e := range p.Entries {
			if err := content.name(e.Name); err != nil {
				return nil, err
			}
			content.u8(e.Enc)
			content.u32(uint32(len(e.Payload)))
			content.u32(uint32(len(seqs[i])))
			for _, idx := range seqs[i] {
				content.u32(uint32(idx))
			}
		}
	default:
		return nil, fmt.Errorf("unsupported pack layout %d", layout)
	}

	var body []byte
	switch comp {
	case PackCompNone:
		body = content.Bytes()
	case PackCompZlib:
		var buf bytes.Buffer
		zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
		if err != nil {
			return nil, err
		}
		if _, err := zw.Write(content.Bytes()); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		body = buf.Bytes()
	case PackCompZstd:
		body = zstdEncoder.EncodeAll(content.Bytes(), nil)
	default:
		return nil, fmt.Errorf("unsupported pack compression %d", comp)
	}

	out := make([]byte, 0, len(packMagic)+2+len(body))
	out = append(out, packMagic...)
	out = append(out, packVersion, uint8(comp))
	return append(out, body...), nil
}

// packReader reads little-endian fields and remembers the first error.
type packReader struct {
	r   *bytes.Reader
	err error
}

func (r *packReader) read(v any) {
	if r.err == nil {
		r.err = binary.Read(r.r, binary.LittleEndian, v)
	}
}

func (r *packReader) u8() (v uint8)   { r.read(&v); return }
func (r *packReader) u16() (v uint16) { r.read(&v); return }
func (r *packReader) u32() (v uint32) { r.read(&v); return }

func (r *packReader) bytes(n uint32) []byte {
	if r.err != nil {
		return nil
	}
	if int64(n) > int64(r.r.Len()) {
		r.err = io.ErrUnexpectedEOF
		return nil
	}
	b := make([]byte, n)
	_, r.err = io.ReadFull(r.r, b)
	return b
}

// UnmarshalPack parses a .vchkpack and reports the compression it used.
func UnmarshalPack(data []byte) (*Pack, PackCompression, error) {
	if len(data) < len(packMagic)+2 || string(data[:len(packMagic)]) != packMagic {
		return nil, 0, ErrBadMagic
	}
	if v := data[len(packMagic)]; v != packVersion {
		return nil, 0, fmt.Errorf("%w: pack version %d", ErrUnsupportedVersion, v)
	}
	comp := PackCompression(data[len(packMagic)+1])
	body := data[len(packMagic)+2:]
	switch comp {
	case PackCompNone:
	case PackCompZlib:
		zr, err := zlib.NewReader(bytes.NewReader(body))
		if err != nil {
			return nil, 0, fmt.Errorf("%w: zlib: %v", ErrCorrupt, err)
		}
		defer zr.Close()
		if body, err = io.ReadAll(zr); err != nil {
			return nil, 0, fmt.Errorf("%w: zlib: %v", ErrCorrupt, err)
		}
	case PackCompZstd:
		var err error
		if body, err = zstdDecoder.DecodeAll(body, nil); err != nil {
			return nil, 0, fmt.Errorf("%w: zstd: %v", ErrCorrupt, err)
		}
	default:
		return nil, 0, fmt.Errorf("unsupported pack compression %d", comp)
	}

	r := &packReader{r: bytes.NewReader(body)}
	pack := &Pack{}
	pack.Header.Ver = r.u8()
	pack.Header.BPP = r.u8()
	pack.Header.Size = r.u16()
	layout := PackLayout(r.u8())
	if r.err != nil {
		return nil, 0, fmt.Errorf("%w: pack header: %v", ErrCorrupt, r.err)
	}

	switch layout {
	case LayoutRaw:
		n := r.u32()
		for i := uint32(0); i < n && r.err == nil; i++ {
			var e PackEntry
			e.Name = string(r.bytes(uint32(r.u16())))
			e.Enc = r.u8()
			e.Payload = r.bytes(r.u32())
			pack.Entries = append(pack.Entries, e)
		}
	case LayoutCDC:
		nBlocks := r.u32()
		var blocks [][]byte
		maxBlock := 0
		for i := uint32(0); i < nBlocks && r.err == nil; i++ {
			b := r.bytes(r.u32())
			blocks = append(blocks, b)
			maxBlock = max(maxBlock, len(b))
		}
		n := r.u32()
		for i := uint32(0); i < n && r.err == nil; i++ {
			var e PackEntry
			e.Name = string(r.bytes(uint32(r.u16())))
			e.Enc = r.u8()
			rawLen := r.u32()
			seqLen := r.u32()
			if r.err != nil {
				break
			}
			// rawLen is untrusted; bound it by what the sequence can rebuild
			if uint64(seqLen)*4 > uint64(r.r.Len()) || uint64(rawLen) > uint64(seqLen)*uint64(maxBlock) {
				return nil, 0, fmt.Errorf("%w: entry %q claims %d bytes from %d blocks", ErrCorrupt, e.Name, rawLen, seqLen)
			}
			payload := make([]byte, 0, rawLen)
			for j := uint32(0); j < seqLen && r.err == nil; j++ {
				idx := r.u32()
				if r.err == nil && idx >= uint32(len(blocks)) {
					return nil, 0, fmt.Errorf("%w: block index %d of %d", ErrCorrupt, idx, len(blocks))
				}
				if r.err == nil {
					payload = append(payload, blocks[idx]...)
				}
			}
			if r.err == nil && uint32(len(payload)) != rawLen {
				return nil, 0, fmt.Errorf("%w: entry %q rebuilt to %d bytes, want %d", ErrCorrupt, e.Name, len(payload), rawLen)
			}
			e.Payload = payload
			pack.Entries = append(pack.Entries, e)
		}
	default:
		return nil, 0, fmt.Errorf("%w: unknown pack layout %d", ErrCorrupt, layout)
	}
	if r.err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrCorrupt, r.err)
	}
	return pack, comp, nil
}

// buildCDCIndex cuts every payload at content-defined boundaries (gear
// rolling hash) and deduplicates the resulting blocks by xxhash. It returns
// the block dictionary and, per entry, the sequence of block indices.
func buildCDCIndex(entries []PackEntry, target, minSz, maxSz int) ([][]byte, [][]int) {
	var gear [256]uint64
	seed := xxhash.Sum64String("vchk-cdc-gear-seed")
	var b [16]byte
	for i := range gear {
		binary.LittleEndian.PutUint64(b[:8], seed+uint64(i)*0x9E3779B185EBCA87)
		binary.LittleEndian.PutUint64(b[8:], ^(seed + uint64(i)*0xC2B2AE3D27D4EB4F))
		gear[i] = xxhash.Sum64(b[:]) | 1
	}
	// average block size ~ target, rounded to a power of two
	mask := uint64(1)<<(bits.Len(uint(target))-1) - 1

	var blocks [][]byte
	index := make(map[uint64][]int)
	addBlock := func(blk []byte) int {
		h := xxhash.Sum64(blk)
		for _, idx := range index[h] {
			if bytes.Equal(blocks[idx], blk) {
				return idx
			}
		}
		idx := len(blocks)
		blocks = append(blocks, append([]byte(nil), blk...))
		index[h] = append(index[h], idx)
		return idx
	}

	seqs := make([][]int, len(entries))
	for i, e := range entries {
		data := e.Payload
		start := 0
		var h uint64
		for pos := range data {
			h = h<<1 + gear[data[pos]]
			size := pos - start + 1
			if size < minSz {
				continue
			}
			if h&mask == 0 || size >= maxSz {
				seqs[i] = append(seqs[i], addBlock(data[start:pos+1]))
				start = pos + 1
				h = 0
			}
		}
		if start < len(data) {
			seqs[i] = append(seqs[i], addBlock(data[start:]))
		}
	}
	return blocks, seqs
}
