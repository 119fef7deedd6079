package voxel

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DefaultSize is the chunk edge length used when none is given.
	DefaultSize = 3
	// MaxSize bounds the edge length so L³ stays addressable by uint32 indices
	// and fits the uint16 size field of chunk files.
	MaxSize = 256
)

// Position is an integer grid coordinate.
type Position struct {
	X, Y, Z int
}

// Vec3 returns the position as a float vector, used as a cube origin.
func (p Position) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{float32(p.X), float32(p.Y), float32(p.Z)}
}

func (p Position) Add(o Position) Position {
	return Position{p.X + o.X, p.Y + o.Y, p.Z + o.Z}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}

// Indexer maps between flat voxel offsets and grid positions of a cubic
// chunk with edge length L. X varies fastest, then Y, then Z.
type Indexer struct {
	size        int
	sizeSquared int
}

// NewIndexer returns an indexer for edge length size (1..MaxSize).
func NewIndexer(size int) (Indexer, error) {
	if size < 1 || size > MaxSize {
		return Indexer{}, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	return Indexer{size: size, sizeSquared: size * size}, nil
}

// Size returns the edge length L.
func (ix Indexer) Size() int { return ix.size }

// Len returns the number of voxels, L³.
func (ix Indexer) Len() int { return ix.sizeSquared * ix.size }

// IndexToPosition returns the grid position of flat offset i.
func (ix Indexer) IndexToPosition(i int) (Position, error) {
	if i < 0 || i >= ix.Len() {
		return Position{}, fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, i, ix.Len())
	}
	return ix.position(i), nil
}

// position applies the layout formula without a bounds check. Callers must
// guarantee 0 <= i < L³.
func (ix Indexer) position(i int) Position {
	z := i / ix.sizeSquared
	rem := i - z*ix.sizeSquared
	return Position{X: rem % ix.size, Y: rem / ix.size, Z: z}
}

// PositionToIndex is the inverse of IndexToPosition.
func (ix Indexer) PositionToIndex(p Position) (int, error) {
	if !ix.Contains(p) {
		return 0, fmt.Errorf("%w: %v outside chunk of size %d", ErrIndexOutOfRange, p, ix.size)
	}
	return ix.index(p), nil
}

func (ix Indexer) index(p Position) int {
	return p.Z*ix.sizeSquared + p.Y*ix.size + p.X
}

// Contains reports whether p lies in [0,L)³.
func (ix Indexer) Contains(p Position) bool {
	return p.X >= 0 && p.X < ix.size &&
		p.Y >= 0 && p.Y < ix.size &&
		p.Z >= 0 && p.Z < ix.size
}
