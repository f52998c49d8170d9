package models

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/chewxy/math32"
	"github.com/taigrr/driedee/pkg/math3d"
)

//go:embed assets/icosahedron.obj
var icosahedronOBJ []byte

// Shape names accepted by NewShape.
const (
	ShapeCube        = "cube"
	ShapePyramid     = "pyramid"
	ShapeCylinder    = "cylinder"
	ShapeIcosahedron = "icosahedron"
)

// Shapes lists the built-in shapes.
var Shapes = []string{ShapeCube, ShapePyramid, ShapeCylinder, ShapeIcosahedron}

// NewShape builds a built-in shape by name. Segments only applies to the
// cylinder.
func NewShape(name string, segments int) (*Mesh, error) {
	switch strings.ToLower(name) {
	case ShapeCube:
		return Cube(), nil
	case ShapePyramid:
		return Pyramid(), nil
	case ShapeCylinder:
		return Cylinder(segments), nil
	case ShapeIcosahedron, "":
		return Icosahedron(), nil
	default:
		return nil, fmt.Errorf("unknown shape %q (want one of %s)", name, strings.Join(Shapes, ", "))
	}
}

// Cube returns a unit cube centered on the origin: 8 vertices, 12 triangles.
func Cube() *Mesh {
	m := NewMesh(ShapeCube)
	// Vertex i has x, y, z set from bits 0, 1, 2.
	for i := range 8 {
		m.AddVertex(math3d.V3(
			float32(i&1)-0.5,
			float32(i>>1&1)-0.5,
			float32(i>>2&1)-0.5,
		))
	}
	faces := [12][3]int{
		{0, 2, 1}, {1, 2, 3}, // -Z
		{4, 5, 6}, {5, 7, 6}, // +Z
		{0, 4, 2}, {2, 4, 6}, // -X
		{1, 3, 5}, {3, 7, 5}, // +X
		{0, 1, 4}, {1, 5, 4}, // -Y
		{2, 6, 3}, {3, 6, 7}, // +Y
	}
	for _, f := range faces {
		m.AddFace(f[0], f[1], f[2], -1)
	}
	m.CalculateBounds()
	return m
}

// Pyramid returns a square pyramid with its apex on +Y, fitting the unit cube.
func Pyramid() *Mesh {
	m := NewMesh(ShapePyramid)
	m.AddVertex(math3d.V3(-0.5, -0.5, -0.5))
	m.AddVertex(math3d.V3(0.5, -0.5, -0.5))
	m.AddVertex(math3d.V3(0.5, -0.5, 0.5))
	m.AddVertex(math3d.V3(-0.5, -0.5, 0.5))
	apex := m.AddVertex(math3d.V3(0, 0.5, 0))

	m.AddFace(0, 1, 2, -1)
	m.AddFace(0, 2, 3, -1)
	for i := range 4 {
		m.AddFace((i+1)%4, i, apex, -1)
	}
	m.CalculateBounds()
	return m
}

// Cylinder returns a capped cylinder along Y with the given number of sides
// (at least 3), fitting the unit cube.
func Cylinder(segments int) *Mesh {
	segments = max(segments, 3)
	m := NewMesh(ShapeCylinder)

	for _, y := range [2]float32{-0.5, 0.5} {
		for i := range segments {
			a := 2 * math32.Pi * float32(i) / float32(segments)
			m.AddVertex(math3d.V3(0.5*math32.Cos(a), y, 0.5*math32.Sin(a)))
		}
	}
	bottom := m.AddVertex(math3d.V3(0, -0.5, 0))
	top := m.AddVertex(math3d.V3(0, 0.5, 0))

	for i := range segments {
		j := (i + 1) % segments
		bi, bj := i, j
		ti, tj := i+segments, j+segments
		m.AddFace(bi, ti, bj, -1)
		m.AddFace(bj, ti, tj, -1)
		m.AddFace(bottom, bi, bj, -1)
		m.AddFace(top, tj, ti, -1)
	}
	m.CalculateBounds()
	return m
}

// Icosahedron returns the bundled default object.
func Icosahedron() *Mesh {
	m, err := ParseOBJ(bytes.NewReader(icosahedronOBJ), ShapeIcosahedron, log.Default())
	if err != nil {
		// bytes.Reader never fails
		panic(err)
	}
	return m
}
