package voxel

import "fmt"

// Kind identifies what a voxel is made of. The zero value is Air.
type Kind uint8

const (
	Air Kind = iota
	Rock
	Dirt
	Grass
	Sand
	Water

	kindCount
)

// KindBits is the number of bits used to store a Kind in chunk files and edit
// streams. 6 bits leave room for 64 kinds.
const KindBits = 6

var kindNames = [kindCount]string{"air", "rock", "dirt", "grass", "sand", "water"}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool { return k < kindCount }

// Solid reports whether the voxel occupies space. Only Air is empty.
func (k Kind) Solid() bool { return k != Air }

// ParseKind maps a kind name back to its Kind.
func ParseKind(s string) (Kind, error) {
	for i, n := range kindNames {
		if n == s {
			return Kind(i), nil
		}
	}
	return Air, fmt.Errorf("%w: %q", ErrInvalidKind, s)
}

// Voxel is a single grid cell.
type Voxel struct {
	Kind Kind
}
