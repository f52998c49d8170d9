package models

import (
	"testing"
)

func TestPrimitiveCounts(t *testing.T) {
	tests := []struct {
		name      string
		mesh      *Mesh
		vertices  int
		triangles int
	}{
		{"cube", Cube(), 8, 12},
		{"pyramid", Pyramid(), 5, 6},
		{"cylinder", Cylinder(16), 34, 64},
		{"cylinder minimum", Cylinder(1), 8, 12},
		{"icosahedron", Icosahedron(), 12, 20},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.mesh.VertexCount() != tc.vertices || tc.mesh.TriangleCount() != tc.triangles {
				t.Errorf("got %d vertices, %d triangles; want %d, %d",
					tc.mesh.VertexCount(), tc.mesh.TriangleCount(), tc.vertices, tc.triangles)
			}
		})
	}
}

// TestPrimitivesOutward checks that every face's cross(v1-v0, v2-v0) points
// away from the center, so none are culled when seen from outside.
func TestPrimitivesOutward(t *testing.T) {
	for _, name := range Shapes {
		t.Run(name, func(t *testing.T) {
			mesh, err := NewShape(name, 12)
			if err != nil {
				t.Fatal(err)
			}
			center := mesh.Center()
			for i := range mesh.TriangleCount() {
				v := mesh.GetTriangle(i)
				n := v[1].Sub(v[0]).Cross(v[2].Sub(v[0]))
				centroid := v[0].Add(v[1]).Add(v[2]).Scale(1.0 / 3)
				if n.Dot(centroid.Sub(center)) <= 0 {
					t.Errorf("face %d %v faces inward", i, mesh.GetFace(i))
				}
			}
		})
	}
}

// TestPrimitivesClosed checks that every directed edge is matched by its
// reverse exactly once.
func TestPrimitivesClosed(t *testing.T) {
	for _, name := range Shapes {
		t.Run(name, func(t *testing.T) {
			mesh, _ := NewShape(name, 7)
			edges := make(map[[2]int]int)
			for i := range mesh.TriangleCount() {
				f := mesh.GetFace(i)
				for j := range 3 {
					edges[[2]int{f[j], f[(j+1)%3]}]++
				}
			}
			for e, n := range edges {
				if n != 1 || edges[[2]int{e[1], e[0]}] != 1 {
					t.Errorf("edge %v appears %d times, reverse %d", e, n, edges[[2]int{e[1], e[0]}])
				}
			}
		})
	}
}

func TestPrimitivesFitUnitCube(t *testing.T) {
	for _, m := range []*Mesh{Cube(), Pyramid(), Cylinder(32)} {
		min, max := m.GetBounds()
		if min.X < -0.5-eps || min.Y < -0.5-eps || min.Z < -0.5-eps ||
			max.X > 0.5+eps || max.Y > 0.5+eps || max.Z > 0.5+eps {
			t.Errorf("%s bounds %v..%v exceed the unit cube", m.Name, min, max)
		}
	}
}

func TestNewShapeUnknown(t *testing.T) {
	if _, err := NewShape("teapot", 0); err == nil {
		t.Error("expected an error for an unknown shape")
	}
	if m, err := NewShape("", 0); err != nil || m.Name != ShapeIcosahedron {
		t.Errorf("empty name = %v, %v; want icosahedron", m, err)
	}
}
