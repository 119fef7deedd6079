package voxel

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Mesh holds three parallel buffers ready for a rendering host. Indices
// address Positions and Normals by absolute offset, three per triangle.
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	Indices   []uint32
}

// NewMesh returns an empty mesh with room for the given number of cubes.
func NewMesh(cubes int) *Mesh {
	return &Mesh{
		Positions: make([]mgl32.Vec3, 0, cubes*CubeVertices),
		Normals:   make([]mgl32.Vec3, 0, cubes*CubeVertices),
		Indices:   make([]uint32, 0, cubes*CubeIndices),
	}
}

func (m *Mesh) VertexCount() int   { return len(m.Positions) }
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// AppendCube adds a cube, rebasing its local indices onto the vertices
// already in the mesh.
func (m *Mesh) AppendCube(c *Cube) {
	// offset must be taken before the positions grow
	offset := uint32(len(m.Positions))
	m.Positions = append(m.Positions, c.Positions[:]...)
	m.Normals = append(m.Normals, c.Normals[:]...)
	for _, idx := range c.Indices {
		m.Indices = append(m.Indices, idx+offset)
	}
}

// appendFace adds a single face of the cube centered at origin.
func (m *Mesh) appendFace(f FaceDirection, origin mgl32.Vec3) {
	base := uint32(len(m.Positions))
	fd := &faces[f]
	for _, off := range fd.vertices {
		m.Positions = append(m.Positions, off.Add(origin))
		m.Normals = append(m.Normals, fd.normal)
	}
	tri := f.Indices(base)
	m.Indices = append(m.Indices, tri[:]...)
}

// Validate checks the buffer invariants a rendering host relies on.
func (m *Mesh) Validate() error {
	if len(m.Positions) != len(m.Normals) {
		return fmt.Errorf("%w: %d positions but %d normals", ErrInvalidMesh, len(m.Positions), len(m.Normals))
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d indices is not a triangle list", ErrInvalidMesh, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Positions) {
			return fmt.Errorf("%w: index %d at %d references %d vertices", ErrInvalidMesh, idx, i, len(m.Positions))
		}
	}
	for i, n := range m.Normals {
		if !axisUnit(n) {
			return fmt.Errorf("%w: normal %d %v is not an axis unit vector", ErrInvalidMesh, i, n)
		}
	}
	return nil
}

// axisUnit reports whether exactly one component is ±1 and the rest are 0.
func axisUnit(n mgl32.Vec3) bool {
	nonzero := 0
	for _, c := range n {
		switch c {
		case 0:
		case 1, -1:
			nonzero++
		default:
			return false
		}
	}
	return nonzero == 1
}

// Clone returns a deep copy of m.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Positions: append([]mgl32.Vec3(nil), m.Positions...),
		Normals:   append([]mgl32.Vec3(nil), m.Normals...),
		Indices:   append([]uint32(nil), m.Indices...),
	}
}

// Equal compares the buffers element by element.
func (m *Mesh) Equal(o *Mesh) bool {
	if len(m.Positions) != len(o.Positions) || len(m.Normals) != len(o.Normals) || len(m.Indices) != len(o.Indices) {
		return false
	}
	for i := range m.Positions {
		if m.Positions[i] != o.Positions[i] || m.Normals[i] != o.Normals[i] {
			return false
		}
	}
	for i := range m.Indices {
		if m.Indices[i] != o.Indices[i] {
			return false
		}
	}
	return true
}

// PositionArrays returns the positions as plain arrays for encoders that do
// not know mgl32 types.
func (m *Mesh) PositionArrays() [][3]float32 { return toArrays(m.Positions) }

// NormalArrays is PositionArrays for normals.
func (m *Mesh) NormalArrays() [][3]float32 { return toArrays(m.Normals) }

func toArrays(vs []mgl32.Vec3) [][3]float32 {
	out := make([][3]float32, len(vs))
	for i, v := range vs {
		out[i] = [3]float32(v)
	}
	return out
}

// MeshStats summarizes a mesh for diagnostics.
type MeshStats struct {
	Vertices  int
	Triangles int
	Sum       uint64
}

func (s MeshStats) String() string {
	return fmt.Sprintf("vertices=%d triangles=%d sum=%016x", s.Vertices, s.Triangles, s.Sum)
}

// Stats returns vertex and triangle counts and the mesh fingerprint.
func (m *Mesh) Stats() MeshStats {
	return MeshStats{Vertices: m.VertexCount(), Triangles: m.TriangleCount(), Sum: m.Sum64()}
}
