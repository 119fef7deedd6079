package api

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/voxelsplace/chunkmesh/voxel"
)

func decodeGLB(t *testing.T, b []byte) *gltf.Document {
	t.Helper()
	var doc gltf.Document
	if err := gltf.NewDecoder(bytes.NewReader(b)).Decode(&doc); err != nil {
		t.Fatalf("decode glb: %v", err)
	}
	return &doc
}

func chunkFile(t *testing.T, size int, k voxel.Kind) []byte {
	t.Helper()
	c, err := voxel.NewChunkFilled(size, k)
	if err != nil {
		t.Fatal(err)
	}
	return voxel.MarshalChunk(c)
}

func TestChunkFileToGLB(t *testing.T) {
	out, err := ChunkFileToGLB(chunkFile(t, 1, voxel.Rock), voxel.Naive)
	if err != nil {
		t.Fatalf("ChunkFileToGLB: %v", err)
	}
	doc := decodeGLB(t, out)
	if len(doc.Meshes) != 1 || len(doc.Nodes) != 1 {
		t.Fatalf("%d meshes, %d nodes", len(doc.Meshes), len(doc.Nodes))
	}
	prim := doc.Meshes[0].Primitives[0]
	if n := doc.Accessors[prim.Attributes[gltf.POSITION]].Count; n != 24 {
		t.Fatalf("position count %d, want 24", n)
	}
	if n := doc.Accessors[prim.Attributes[gltf.NORMAL]].Count; n != 24 {
		t.Fatalf("normal count %d, want 24", n)
	}
	if n := doc.Accessors[*prim.Indices].Count; n != 36 {
		t.Fatalf("index count %d, want 36", n)
	}
}

func TestChunkFileToGLB_Culled(t *testing.T) {
	out, err := ChunkFileToGLB(chunkFile(t, 3, voxel.Rock), voxel.Culled)
	if err != nil {
		t.Fatal(err)
	}
	doc := decodeGLB(t, out)
	prim := doc.Meshes[0].Primitives[0]
	// 6 sides of 9 faces each
	if n := doc.Accessors[*prim.Indices].Count; n != 54*6 {
		t.Fatalf("index count %d, want %d", n, 54*6)
	}

	if _, err := ChunkFileToGLB(chunkFile(t, 2, voxel.Air), voxel.Culled); !errors.Is(err, ErrEmptyMesh) {
		t.Fatalf("empty culled chunk err = %v", err)
	}
	if _, err := ChunkFileToGLB([]byte("junk"), voxel.Naive); !errors.Is(err, voxel.ErrBadMagic) {
		t.Fatalf("junk input err = %v", err)
	}
}

func TestGLBWriter_Materials(t *testing.T) {
	w := NewGLBWriter("test")
	c, _ := voxel.NewChunk(1)
	m := voxel.GenerateMesh(c)
	red := [4]float32{1, 0, 0, 1}
	for i := 0; i < 3; i++ {
		h, err := w.AddMesh(fmt.Sprint(i), m, red, mgl32.Vec3{float32(i), 0, 0})
		if err != nil {
			t.Fatal(err)
		}
		if h != i {
			t.Fatalf("handle %d, want %d", h, i)
		}
	}
	if _, err := w.AddMesh("glass", m, [4]float32{1, 1, 1, 0.5}, mgl32.Vec3{}); err != nil {
		t.Fatal(err)
	}
	doc := w.Document()
	if len(doc.Materials) != 2 {
		t.Fatalf("%d materials, want 2", len(doc.Materials))
	}
	if doc.Materials[1].AlphaMode != gltf.AlphaBlend {
		t.Fatalf("translucent material is not blended")
	}
	if doc.Nodes[2].Translation != [3]float64{2, 0, 0} {
		t.Fatalf("node 2 at %v", doc.Nodes[2].Translation)
	}

	bad := m.Clone()
	bad.Indices[0] = 1000
	if _, err := w.AddMesh("bad", bad, red, mgl32.Vec3{}); !errors.Is(err, voxel.ErrInvalidMesh) {
		t.Fatalf("invalid mesh err = %v", err)
	}
}

func TestPackChunkFiles_Unpack(t *testing.T) {
	files := map[string][]byte{
		"b.vchk": chunkFile(t, 3, voxel.Rock),
		"a.vchk": chunkFile(t, 3, voxel.Air),
		"c.vchk": chunkFile(t, 3, voxel.Water),
	}
	packed, err := PackChunkFiles(files, voxel.LayoutCDC, voxel.PackCompZstd)
	if err != nil {
		t.Fatalf("PackChunkFiles: %v", err)
	}
	again, _ := PackChunkFiles(files, voxel.LayoutCDC, voxel.PackCompZstd)
	if !bytes.Equal(packed, again) {
		t.Fatalf("pack output is not deterministic")
	}
	got, err := UnpackToMemory(packed)
	if err != nil {
		t.Fatalf("UnpackToMemory: %v", err)
	}
	if len(got) != len(files) {
		t.Fatalf("%d files, want %d", len(got), len(files))
	}
	for name, want := range files {
		if !bytes.Equal(got[name], want) {
			t.Fatalf("%s differs after unpack", name)
		}
	}

	glb, err := PackToGLB(packed, voxel.Naive)
	if err != nil {
		t.Fatalf("PackToGLB: %v", err)
	}
	if doc := decodeGLB(t, glb); len(doc.Nodes) != 3 {
		t.Fatalf("%d nodes, want 3", len(doc.Nodes))
	}
	// the air chunk has no culled faces and is left out
	glb, err = PackToGLB(packed, voxel.Culled)
	if err != nil {
		t.Fatal(err)
	}
	if doc := decodeGLB(t, glb); len(doc.Nodes) != 2 {
		t.Fatalf("%d nodes, want 2", len(doc.Nodes))
	}

	mixed := map[string][]byte{"x": chunkFile(t, 3, voxel.Rock), "y": chunkFile(t, 4, voxel.Rock)}
	if _, err := PackChunkFiles(mixed, voxel.LayoutRaw, voxel.PackCompZlib); err == nil {
		t.Fatalf("expected error for mixed chunk sizes")
	}
}

func TestEditsToChunkFile(t *testing.T) {
	ix, _ := voxel.NewIndexer(3)
	edits, err := voxel.EncodeEdits(ix, []voxel.Edit{{Index: 13, Kind: voxel.Grass}})
	if err != nil {
		t.Fatal(err)
	}
	file, err := EditsToChunkFile(3, edits)
	if err != nil {
		t.Fatal(err)
	}
	c, err := voxel.UnmarshalChunk(file)
	if err != nil {
		t.Fatal(err)
	}
	if c.At(voxel.Position{X: 1, Y: 1, Z: 1}) != voxel.Grass || c.Count(voxel.Air) != 26 {
		t.Fatalf("edit not applied at the center voxel")
	}
	back, err := ChunkFileToEdits(file)
	if err != nil || !bytes.Equal(back, edits) {
		t.Fatalf("ChunkFileToEdits = %x, %v; want %x", back, err, edits)
	}
}

func TestStats(t *testing.T) {
	st, err := Stats(chunkFile(t, 2, voxel.Rock), voxel.Naive)
	if err != nil {
		t.Fatal(err)
	}
	if st.Vertices != 8*24 || st.Triangles != 8*12 {
		t.Fatalf("stats %v", st)
	}
}

func TestGridPlacement(t *testing.T) {
	if got := GridPlacement(0, 1, 8); got != (mgl32.Vec3{}) {
		t.Fatalf("first chunk at %v", got)
	}
	// 5 chunks -> 3 columns
	if got := GridPlacement(4, 5, 8); got != (mgl32.Vec3{8, 0, 8}) {
		t.Fatalf("chunk 4 of 5 at %v", got)
	}
}
