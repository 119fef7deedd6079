package voxel

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestFace_Winding(t *testing.T) {
	for _, f := range FaceDirections {
		verts := f.Vertices()
		normal := f.Normal()
		if !axisUnit(normal) {
			t.Fatalf("%v: normal %v is not an axis unit vector", f, normal)
		}
		for _, v := range verts {
			if d := normal.Dot(v); d != 0.5 {
				t.Fatalf("%v: vertex %v is not on the outer face plane (n·v = %v)", f, v, d)
			}
		}
		idx := f.Indices(0)
		for tri := 0; tri < 2; tri++ {
			a, b, c := verts[idx[tri*3]], verts[idx[tri*3+1]], verts[idx[tri*3+2]]
			cross := b.Sub(a).Cross(c.Sub(a)).Normalize()
			if !cross.ApproxEqual(normal) {
				t.Fatalf("%v: triangle %d winds toward %v, want %v", f, tri, cross, normal)
			}
		}
	}
}

func TestFace_Indices(t *testing.T) {
	patternA := [6]uint32{10, 13, 11, 11, 13, 12}
	patternB := [6]uint32{10, 11, 13, 11, 12, 13}
	for _, f := range []FaceDirection{Top, Right, Back} {
		if got := f.Indices(10); got != patternA {
			t.Fatalf("%v: indices %v, want %v", f, got, patternA)
		}
	}
	for _, f := range []FaceDirection{Bottom, Left, Forward} {
		if got := f.Indices(10); got != patternB {
			t.Fatalf("%v: indices %v, want %v", f, got, patternB)
		}
	}
}

func TestFace_Neighbor(t *testing.T) {
	for _, f := range FaceDirections {
		n := f.Neighbor()
		if got := n.Vec3(); got != f.Normal() {
			t.Fatalf("%v: neighbor step %v does not follow normal %v", f, n, f.Normal())
		}
	}
	seen := map[mgl32.Vec3]bool{}
	for _, f := range FaceDirections {
		if seen[f.Normal()] {
			t.Fatalf("%v: duplicate normal", f)
		}
		seen[f.Normal()] = true
	}
	if FaceDirection(9).String() != "invalid" {
		t.Fatalf("out of range face should print as invalid")
	}
}
