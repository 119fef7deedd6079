package voxel

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

var unitCubePositions = [CubeVertices]mgl32.Vec3{
	{-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5},
	{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}, {-0.5, -0.5, 0.5},
	{0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5},
	{-0.5, -0.5, -0.5}, {-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5},
	{-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, -0.5, 0.5},
	{-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, -0.5, -0.5},
}

var unitCubeIndices = [CubeIndices]uint32{
	0, 3, 1, 1, 3, 2,
	4, 5, 7, 5, 6, 7,
	8, 11, 9, 9, 11, 10,
	12, 13, 15, 13, 14, 15,
	16, 19, 17, 17, 19, 18,
	20, 21, 23, 21, 22, 23,
}

func TestEmitCube_Origin(t *testing.T) {
	c := EmitCube(mgl32.Vec3{})
	if c.Positions != unitCubePositions {
		t.Fatalf("positions = %v\nwant %v", c.Positions, unitCubePositions)
	}
	if c.Indices != unitCubeIndices {
		t.Fatalf("indices = %v\nwant %v", c.Indices, unitCubeIndices)
	}
	for i, n := range c.Normals {
		if want := FaceDirections[i/4].Normal(); n != want {
			t.Fatalf("normal %d = %v, want %v", i, n, want)
		}
	}
}

func TestEmitCube_Translation(t *testing.T) {
	origin := mgl32.Vec3{3, -2, 7}
	c := EmitCube(origin)
	ref := EmitCube(mgl32.Vec3{})
	for i := range c.Positions {
		if want := ref.Positions[i].Add(origin); c.Positions[i] != want {
			t.Fatalf("position %d = %v, want %v", i, c.Positions[i], want)
		}
	}
	if c.Normals != ref.Normals || c.Indices != ref.Indices {
		t.Fatalf("translation must not change normals or indices")
	}
}
