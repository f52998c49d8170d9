package render

import "github.com/taigrr/driedee/pkg/math3d"

// Triangle is three vertices and a flat shading color.
// Triangles are values: every pipeline stage derives new ones.
type Triangle struct {
	V     [3]math3d.Vec3
	Color Color
}

// Transform returns the triangle with every vertex multiplied by m.
// The homogeneous W produced by m is kept.
func (t Triangle) Transform(m math3d.Mat4) Triangle {
	return Triangle{
		V: [3]math3d.Vec3{
			m.MulVec3(t.V[0]),
			m.MulVec3(t.V[1]),
			m.MulVec3(t.V[2]),
		},
		Color: t.Color,
	}
}

// Normal returns the unit face normal, cross(v1-v0, v2-v0).
// Degenerate triangles yield a non-finite vector.
func (t Triangle) Normal() math3d.Vec3 {
	e1 := t.V[1].Sub(t.V[0])
	e2 := t.V[2].Sub(t.V[0])
	return e1.Cross(e2).Normalize()
}

// AverageZ returns the mean vertex depth used for painter's ordering.
func (t Triangle) AverageZ() float32 {
	return (t.V[0].Z + t.V[1].Z + t.V[2].Z) / 3
}

// IsFinite reports whether every vertex is finite.
func (t Triangle) IsFinite() bool {
	return t.V[0].IsFinite() && t.V[1].IsFinite() && t.V[2].IsFinite()
}
