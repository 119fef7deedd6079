package voxel

import "github.com/go-gl/mathgl/mgl32"

// FaceDirection is one side of a unit cube.
type FaceDirection uint8

const (
	Top     FaceDirection = iota // +Y
	Bottom                       // -Y
	Right                        // +X
	Left                         // -X
	Back                         // +Z
	Forward                      // -Z
)

// FaceDirections lists the faces in emission order.
var FaceDirections = [6]FaceDirection{Top, Bottom, Right, Left, Back, Forward}

type faceData struct {
	name     string
	vertices [4]mgl32.Vec3
	normal   mgl32.Vec3
	neighbor Position
	// flipped selects winding pattern B, needed where the vertex order
	// runs clockwise seen from outside.
	flipped bool
}

var faces = [6]faceData{
	Top: {
		name: "top",
		vertices: [4]mgl32.Vec3{
			{-0.5, 0.5, -0.5},
			{0.5, 0.5, -0.5},
			{0.5, 0.5, 0.5},
			{-0.5, 0.5, 0.5},
		},
		normal:   mgl32.Vec3{0, 1, 0},
		neighbor: Position{0, 1, 0},
	},
	Bottom: {
		name: "bottom",
		vertices: [4]mgl32.Vec3{
			{-0.5, -0.5, -0.5},
			{0.5, -0.5, -0.5},
			{0.5, -0.5, 0.5},
			{-0.5, -0.5, 0.5},
		},
		normal:   mgl32.Vec3{0, -1, 0},
		neighbor: Position{0, -1, 0},
		flipped:  true,
	},
	Right: {
		name: "right",
		vertices: [4]mgl32.Vec3{
			{0.5, -0.5, -0.5},
			{0.5, -0.5, 0.5},
			{0.5, 0.5, 0.5},
			{0.5, 0.5, -0.5},
		},
		normal:   mgl32.Vec3{1, 0, 0},
		neighbor: Position{1, 0, 0},
	},
	Left: {
		name: "left",
		vertices: [4]mgl32.Vec3{
			{-0.5, -0.5, -0.5},
			{-0.5, -0.5, 0.5},
			{-0.5, 0.5, 0.5},
			{-0.5, 0.5, -0.5},
		},
		normal:   mgl32.Vec3{-1, 0, 0},
		neighbor: Position{-1, 0, 0},
		flipped:  true,
	},
	Back: {
		name: "back",
		vertices: [4]mgl32.Vec3{
			{-0.5, -0.5, 0.5},
			{-0.5, 0.5, 0.5},
			{0.5, 0.5, 0.5},
			{0.5, -0.5, 0.5},
		},
		normal:   mgl32.Vec3{0, 0, 1},
		neighbor: Position{0, 0, 1},
	},
	Forward: {
		name: "forward",
		vertices: [4]mgl32.Vec3{
			{-0.5, -0.5, -0.5},
			{-0.5, 0.5, -0.5},
			{0.5, 0.5, -0.5},
			{0.5, -0.5, -0.5},
		},
		normal:   mgl32.Vec3{0, 0, -1},
		neighbor: Position{0, 0, -1},
		flipped:  true,
	},
}

func (f FaceDirection) String() string {
	if int(f) < len(faces) {
		return faces[f].name
	}
	return "invalid"
}

// Vertices returns the face's corners relative to the cube center.
func (f FaceDirection) Vertices() [4]mgl32.Vec3 { return faces[f].vertices }

// Normal returns the outward unit normal.
func (f FaceDirection) Normal() mgl32.Vec3 { return faces[f].normal }

// Neighbor returns the grid step to the voxel this face looks at.
func (f FaceDirection) Neighbor() Position { return faces[f].neighbor }

// Indices returns the two triangles of the face whose four vertices start at
// base. Triangles wind counter-clockwise seen from outside the cube.
func (f FaceDirection) Indices(base uint32) [6]uint32 {
	if faces[f].flipped {
		return [6]uint32{base, base + 1, base + 3, base + 1, base + 2, base + 3}
	}
	return [6]uint32{base, base + 3, base + 1, base + 1, base + 3, base + 2}
}
