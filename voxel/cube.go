package voxel

import "github.com/go-gl/mathgl/mgl32"

const (
	CubeVertices = 24
	CubeIndices  = 36
)

// Cube is the flat-shaded geometry of one unit cube. Each face owns its own
// four vertices so normals never blend across edges. Indices are local to
// the cube (0..23).
type Cube struct {
	Positions [CubeVertices]mgl32.Vec3
	Normals   [CubeVertices]mgl32.Vec3
	Indices   [CubeIndices]uint32
}

// EmitCube builds a unit cube centered at origin.
func EmitCube(origin mgl32.Vec3) Cube {
	var c Cube
	for ordinal, f := range FaceDirections {
		base := ordinal * 4
		fd := &faces[f]
		for v, off := range fd.vertices {
			c.Positions[base+v] = off.Add(origin)
			c.Normals[base+v] = fd.normal
		}
		tri := f.Indices(uint32(base))
		copy(c.Indices[ordinal*6:], tri[:])
	}
	return c
}
