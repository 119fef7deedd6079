package voxel

import "fmt"

// GenerateMesh emits one full cube for every voxel of the chunk, in
// ascending flat order, regardless of kind or neighbors. The output is
// deterministic for a given chunk.
func GenerateMesh(c *Chunk) *Mesh {
	n := c.Len()
	mesh := NewMesh(n)
	for i := 0; i < n; i++ {
		cube := EmitCube(c.position(i).Vec3())
		mesh.AppendCube(&cube)
	}
	return mesh
}

// GenerateCulledMesh is the neighbor-aware variant: Air voxels are skipped
// and a face is dropped when the adjacent voxel inside the chunk is solid.
// Faces on the chunk boundary are always kept. Vertex layout per face
// matches GenerateMesh.
func GenerateCulledMesh(c *Chunk) *Mesh {
	mesh := NewMesh(0)
	for i, v := range c.voxels {
		if !v.Kind.Solid() {
			continue
		}
		p := c.position(i)
		origin := p.Vec3()
		for _, f := range FaceDirections {
			if c.At(p.Add(f.Neighbor())).Solid() {
				continue
			}
			mesh.appendFace(f, origin)
		}
	}
	return mesh
}

// Strategy selects a meshing algorithm.
type Strategy uint8

const (
	Naive Strategy = iota
	Culled
)

func (s Strategy) String() string {
	switch s {
	case Naive:
		return "naive"
	case Culled:
		return "culled"
	}
	return fmt.Sprintf("strategy(%d)", uint8(s))
}

// ParseStrategy accepts "naive", "culled" or "" (naive).
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "", "naive":
		return Naive, nil
	case "culled":
		return Culled, nil
	}
	return Naive, fmt.Errorf("unknown meshing strategy %q", s)
}

// Generate meshes c with the selected algorithm.
func (s Strategy) Generate(c *Chunk) *Mesh {
	if s == Culled {
		return GenerateCulledMesh(c)
	}
	return GenerateMesh(c)
}
