package api

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/voxelsplace/chunkmesh/voxel"
)

// ErrEmptyMesh is returned when a mesh without triangles is added to a GLB.
var ErrEmptyMesh = errors.New("api: empty mesh")

// GLBWriter collects meshes into a single glTF scene. Each added mesh gets
// its own node; the node index is the handle returned to the caller.
type GLBWriter struct {
	doc       *gltf.Document
	materials map[[4]float32]int
}

// NewGLBWriter starts an empty scene. generator is recorded in the asset info.
func NewGLBWriter(generator string) *GLBWriter {
	doc := gltf.NewDocument()
	doc.Asset.Generator = generator
	return &GLBWriter{doc: doc, materials: make(map[[4]float32]int)}
}

func (w *GLBWriter) material(rgba [4]float32) int {
	if idx, ok := w.materials[rgba]; ok {
		return idx
	}
	pbr := &gltf.PBRMetallicRoughness{
		BaseColorFactor: &[4]float64{float64(rgba[0]), float64(rgba[1]), float64(rgba[2]), float64(rgba[3])},
		MetallicFactor:  gltf.Float(0),
		RoughnessFactor: gltf.Float(1),
	}
	m := &gltf.Material{PBRMetallicRoughness: pbr, AlphaMode: gltf.AlphaOpaque}
	if rgba[3] < 1 {
		m.AlphaMode = gltf.AlphaBlend
	}
	w.doc.Materials = append(w.doc.Materials, m)
	idx := len(w.doc.Materials) - 1
	w.materials[rgba] = idx
	return idx
}

// AddMesh writes positions, normals and indices of m as one primitive,
// placed at translation, and returns the node handle.
func (w *GLBWriter) AddMesh(name string, m *voxel.Mesh, rgba [4]float32, translation mgl32.Vec3) (int, error) {
	if len(m.Indices) == 0 {
		return 0, fmt.Errorf("%s: %w", name, ErrEmptyMesh)
	}
	if err := m.Validate(); err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	posAccessor := modeler.WritePosition(w.doc, m.PositionArrays())
	normalAccessor := modeler.WriteNormal(w.doc, m.NormalArrays())
	indicesAccessor := modeler.WriteIndices(w.doc, m.Indices)

	prim := &gltf.Primitive{
		Attributes: gltf.PrimitiveAttributes{
			gltf.POSITION: posAccessor,
			gltf.NORMAL:   normalAccessor,
		},
		Indices:  gltf.Index(indicesAccessor),
		Material: gltf.Index(w.material(rgba)),
	}
	w.doc.Meshes = append(w.doc.Meshes, &gltf.Mesh{Name: name, Primitives: []*gltf.Primitive{prim}})
	node := &gltf.Node{
		Name:        name,
		Mesh:        gltf.Index(len(w.doc.Meshes) - 1),
		Translation: [3]float64{float64(translation[0]), float64(translation[1]), float64(translation[2])},
	}
	w.doc.Nodes = append(w.doc.Nodes, node)
	handle := len(w.doc.Nodes) - 1
	w.doc.Scenes[0].Nodes = append(w.doc.Scenes[0].Nodes, handle)
	return handle, nil
}

// Document exposes the scene built so far.
func (w *GLBWriter) Document() *gltf.Document { return w.doc }

// Bytes encodes the scene as binary glTF.
func (w *GLBWriter) Bytes() ([]byte, error) {
	var out bytes.Buffer
	enc := gltf.NewEncoder(&out)
	enc.AsBinary = true
	if err := enc.Encode(w.doc); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// Save writes the scene to path as binary glTF.
func (w *GLBWriter) Save(path string) error {
	return gltf.SaveBinary(w.doc, path)
}

// GridPlacement lays n chunks of edge length size side by side on the XZ
// plane, filling rows of ceil(sqrt(n)) chunks.
func GridPlacement(i, n, size int) mgl32.Vec3 {
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	if cols == 0 {
		cols = 1
	}
	row, col := i/cols, i%cols
	return mgl32.Vec3{float32(col * size), 0, float32(row * size)}
}
