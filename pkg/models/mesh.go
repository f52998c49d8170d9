// Package models provides mesh loading and representation for driedee.
package models

import (
	"image/color"

	"github.com/chewxy/math32"
	"github.com/taigrr/driedee/pkg/math3d"
)

// Mesh is an indexed triangle mesh in model space. It is read-only while a
// frame renders and swapped wholesale on reload.
type Mesh struct {
	Name      string
	Vertices  []math3d.Vec3
	Faces     []Face
	Materials []Material

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// Face represents a triangle face with vertex indices and material reference.
type Face struct {
	V        [3]int // Indices into Mesh.Vertices
	Material int    // Index into Mesh.Materials (-1 for no material)
}

// Material is a flat base color, as read from GLTF.
type Material struct {
	Name      string
	BaseColor [4]float32 // RGBA in 0-1 range
}

// Color converts the base color to 8-bit RGBA.
func (m Material) Color() color.RGBA {
	c := func(f float32) uint8 {
		return uint8(math32.Round(math32.Max(0, math32.Min(1, f)) * 255))
	}
	return color.RGBA{c(m.BaseColor[0]), c(m.BaseColor[1]), c(m.BaseColor[2]), c(m.BaseColor[3])}
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:      name,
		BoundsMin: math3d.Zero3(),
		BoundsMax: math3d.Zero3(),
	}
}

// AddVertex appends a vertex and returns its index.
func (m *Mesh) AddVertex(v math3d.Vec3) int {
	m.Vertices = append(m.Vertices, math3d.V3(v.X, v.Y, v.Z))
	return len(m.Vertices) - 1
}

// AddFace appends a face over existing vertices. It returns false, adding
// nothing, if any index is out of range.
func (m *Mesh) AddFace(a, b, c, material int) bool {
	n := len(m.Vertices)
	for _, i := range [3]int{a, b, c} {
		if i < 0 || i >= n {
			return false
		}
	}
	m.Faces = append(m.Faces, Face{V: [3]int{a, b, c}, Material: material})
	return true
}

// AddTriangle appends three new vertices and a face joining them.
func (m *Mesh) AddTriangle(a, b, c math3d.Vec3) {
	i := m.AddVertex(a)
	m.AddVertex(b)
	m.AddVertex(c)
	m.Faces = append(m.Faces, Face{V: [3]int{i, i + 1, i + 2}, Material: -1})
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		m.BoundsMin = math3d.Zero3()
		m.BoundsMax = math3d.Zero3()
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Transform applies a transformation matrix to all vertices.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i, v := range m.Vertices {
		m.Vertices[i] = mat.MulVec3(v)
	}
	m.CalculateBounds()
}

// Fit centers the mesh on the origin and scales it uniformly so that its
// largest dimension equals size. Empty and flat-point meshes are left as is.
func (m *Mesh) Fit(size float32) {
	m.CalculateBounds()
	s := m.Size()
	maxDim := math32.Max(s.X, math32.Max(s.Y, s.Z))
	if maxDim <= 0 {
		return
	}
	c := m.Center()
	scale := size / maxDim
	m.Transform(math3d.Translate(-c.X, -c.Y, -c.Z).Mul(math3d.ScaleUniform(scale)))
}

// GetTriangle returns the three vertex positions of face i.
// Implements render.MeshSource interface.
func (m *Mesh) GetTriangle(i int) [3]math3d.Vec3 {
	f := m.Faces[i].V
	return [3]math3d.Vec3{m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]}
}

// GetFace returns the vertex indices for face i.
func (m *Mesh) GetFace(i int) [3]int {
	return m.Faces[i].V
}

// GetFaceMaterial returns the material index for face i.
// Returns -1 if no material assigned.
func (m *Mesh) GetFaceMaterial(i int) int {
	return m.Faces[i].Material
}

// GetMaterial returns the material at index i.
// Returns nil if index is out of bounds or -1.
func (m *Mesh) GetMaterial(i int) *Material {
	if i < 0 || i >= len(m.Materials) {
		return nil
	}
	return &m.Materials[i]
}

// MaterialCount returns the number of materials.
func (m *Mesh) MaterialCount() int {
	return len(m.Materials)
}

// FaceColor returns the base color of face i's material.
// Implements render.ColoredMeshSource interface.
func (m *Mesh) FaceColor(i int) (color.RGBA, bool) {
	mat := m.GetMaterial(m.Faces[i].Material)
	if mat == nil {
		return color.RGBA{}, false
	}
	return mat.Color(), true
}

// GetBounds returns the axis-aligned bounding box.
// Implements render.BoundedMeshSource interface.
func (m *Mesh) GetBounds() (min, max math3d.Vec3) {
	return m.BoundsMin, m.BoundsMax
}

// SurfaceArea returns the total area of all faces.
func (m *Mesh) SurfaceArea() float32 {
	var area float32
	for i := range m.Faces {
		t := m.GetTriangle(i)
		area += t[1].Sub(t[0]).Cross(t[2].Sub(t[0])).Len() / 2
	}
	return area
}
