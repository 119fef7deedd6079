package voxel

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestGenerateMesh_SingleVoxel(t *testing.T) {
	c, err := NewChunk(1)
	if err != nil {
		t.Fatal(err)
	}
	m := GenerateMesh(c)
	if len(m.Positions) != CubeVertices || len(m.Normals) != CubeVertices || len(m.Indices) != CubeIndices {
		t.Fatalf("got %d/%d/%d buffers, want 24/24/36", len(m.Positions), len(m.Normals), len(m.Indices))
	}
	for i := range unitCubePositions {
		if m.Positions[i] != unitCubePositions[i] {
			t.Fatalf("position %d = %v, want %v", i, m.Positions[i], unitCubePositions[i])
		}
	}
	for i := range unitCubeIndices {
		if m.Indices[i] != unitCubeIndices[i] {
			t.Fatalf("index %d = %d, want %d", i, m.Indices[i], unitCubeIndices[i])
		}
	}
}

func TestGenerateMesh_Counts(t *testing.T) {
	for size := 1; size <= 6; size++ {
		c, err := NewChunk(size)
		if err != nil {
			t.Fatal(err)
		}
		m := GenerateMesh(c)
		n := size * size * size
		if m.VertexCount() != 24*n || len(m.Normals) != 24*n {
			t.Fatalf("size %d: %d vertices, want %d", size, m.VertexCount(), 24*n)
		}
		if len(m.Indices) != 36*n || m.TriangleCount() != 12*n {
			t.Fatalf("size %d: %d indices, want %d", size, len(m.Indices), 36*n)
		}
		if err := m.Validate(); err != nil {
			t.Fatalf("size %d: %v", size, err)
		}
	}
}

func TestGenerateMesh_IndexOffsets(t *testing.T) {
	c, _ := NewChunk(3)
	m := GenerateMesh(c)
	for cube := 0; cube < c.Len(); cube++ {
		base := uint32(cube * CubeVertices)
		for j, want := range unitCubeIndices {
			if got := m.Indices[cube*CubeIndices+j]; got != want+base {
				t.Fatalf("cube %d index %d = %d, want %d", cube, j, got, want+base)
			}
		}
	}
}

func TestGenerateMesh_Deterministic(t *testing.T) {
	c, _ := NewChunk(4)
	_ = c.Set(Position{1, 2, 3}, Water)
	a, b := GenerateMesh(c), GenerateMesh(c)
	if !a.Equal(b) {
		t.Fatalf("two runs over the same chunk differ")
	}
	if a.Sum64() != b.Sum64() {
		t.Fatalf("fingerprints differ: %x vs %x", a.Sum64(), b.Sum64())
	}
}

func TestGenerateMesh_Translation(t *testing.T) {
	c, _ := NewChunk(2)
	m := GenerateMesh(c)
	// (1,0,0) is flat index 1
	shift := mgl32.Vec3{1, 0, 0}
	for j := 0; j < CubeVertices; j++ {
		got := m.Positions[CubeVertices+j]
		if want := unitCubePositions[j].Add(shift); got != want {
			t.Fatalf("vertex %d of voxel (1,0,0) = %v, want %v", j, got, want)
		}
	}
}

func TestGenerateMesh_IgnoresKind(t *testing.T) {
	rock, _ := NewChunkFilled(3, Rock)
	air, _ := NewChunkFilled(3, Air)
	mixed, _ := NewChunk(3)
	_ = mixed.SetIndex(4, Air)
	_ = mixed.SetIndex(13, Sand)
	want := GenerateMesh(rock)
	for name, c := range map[string]*Chunk{"air": air, "mixed": mixed} {
		if got := GenerateMesh(c); !got.Equal(want) {
			t.Fatalf("%s chunk meshes differently from rock", name)
		}
	}
}

func TestGenerateCulledMesh(t *testing.T) {
	single, _ := NewChunkFilled(3, Air)
	_ = single.Set(Position{1, 1, 1}, Rock)

	pair, _ := NewChunkFilled(3, Air)
	_ = pair.Set(Position{0, 0, 0}, Rock)
	_ = pair.Set(Position{1, 0, 0}, Dirt)

	full, _ := NewChunk(2)
	empty, _ := NewChunkFilled(2, Air)

	cases := []struct {
		name  string
		c     *Chunk
		faces int
	}{
		{"single", single, 6},
		{"pair", pair, 10},
		{"full", full, 24},
		{"empty", empty, 0},
	}
	for _, tc := range cases {
		m := GenerateCulledMesh(tc.c)
		if m.VertexCount() != tc.faces*4 || len(m.Indices) != tc.faces*6 {
			t.Fatalf("%s: %d vertices %d indices, want %d faces", tc.name, m.VertexCount(), len(m.Indices), tc.faces)
		}
		if err := m.Validate(); err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
	}
}

func TestGenerateCulledMesh_MatchesNaiveForIsolatedVoxel(t *testing.T) {
	c, _ := NewChunkFilled(1, Rock)
	if !GenerateCulledMesh(c).Equal(GenerateMesh(c)) {
		t.Fatalf("a lone voxel must produce the full cube")
	}
}

func TestStrategy_Parse(t *testing.T) {
	for _, s := range []Strategy{Naive, Culled} {
		got, err := ParseStrategy(s.String())
		if err != nil || got != s {
			t.Fatalf("ParseStrategy(%q) = %v, %v", s.String(), got, err)
		}
	}
	if s, err := ParseStrategy(""); err != nil || s != Naive {
		t.Fatalf("empty strategy = %v, %v, want naive", s, err)
	}
	if _, err := ParseStrategy("greedy"); err == nil {
		t.Fatalf("expected error for unknown strategy")
	}
}

func BenchmarkGenerateMesh16(b *testing.B) {
	c, _ := NewChunk(16)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		GenerateMesh(c)
	}
}

func BenchmarkGenerateCulledMesh16(b *testing.B) {
	c, _ := NewChunk(16)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		GenerateCulledMesh(c)
	}
}
