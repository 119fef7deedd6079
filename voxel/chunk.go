package voxel

import "fmt"

// Chunk is a cubic grid of L³ voxels stored in flat Indexer order.
type Chunk struct {
	Indexer
	voxels []Voxel
}

// NewChunk returns a chunk of edge length size filled with Rock.
func NewChunk(size int) (*Chunk, error) {
	return NewChunkFilled(size, Rock)
}

// NewChunkFilled returns a chunk of edge length size where every voxel is k.
func NewChunkFilled(size int, k Kind) (*Chunk, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKind, k)
	}
	ix, err := NewIndexer(size)
	if err != nil {
		return nil, err
	}
	voxels := make([]Voxel, ix.Len())
	if k != Air {
		for i := range voxels {
			voxels[i].Kind = k
		}
	}
	return &Chunk{Indexer: ix, voxels: voxels}, nil
}

// Voxels returns the backing voxel slice in flat order. It must not be
// modified while the chunk is being meshed.
func (c *Chunk) Voxels() []Voxel { return c.voxels }

// At returns the kind at p. Positions outside the chunk read as Air.
func (c *Chunk) At(p Position) Kind {
	if !c.Contains(p) {
		return Air
	}
	return c.voxels[c.index(p)].Kind
}

// KindAt returns the kind stored at flat offset i.
func (c *Chunk) KindAt(i int) (Kind, error) {
	if i < 0 || i >= len(c.voxels) {
		return Air, fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	return c.voxels[i].Kind, nil
}

// Set stores k at p.
func (c *Chunk) Set(p Position, k Kind) error {
	i, err := c.PositionToIndex(p)
	if err != nil {
		return err
	}
	return c.SetIndex(i, k)
}

// SetIndex stores k at flat offset i.
func (c *Chunk) SetIndex(i int, k Kind) error {
	if i < 0 || i >= len(c.voxels) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	if !k.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidKind, k)
	}
	c.voxels[i].Kind = k
	return nil
}

// Count returns how many voxels have kind k.
func (c *Chunk) Count(k Kind) int {
	n := 0
	for _, v := range c.voxels {
		if v.Kind == k {
			n++
		}
	}
	return n
}

// Equal reports whether both chunks have the same size and contents.
func (c *Chunk) Equal(o *Chunk) bool {
	if c.Size() != o.Size() {
		return false
	}
	for i := range c.voxels {
		if c.voxels[i] != o.voxels[i] {
			return false
		}
	}
	return true
}
