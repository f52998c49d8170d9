package render

import "github.com/taigrr/driedee/pkg/math3d"

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// Center returns the center of the AABB.
func (b AABB) Center() math3d.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the dimensions of the AABB.
func (b AABB) Size() math3d.Vec3 {
	return b.Max.Sub(b.Min)
}

// Corners returns the 8 corners of the box.
func (b AABB) Corners() [8]math3d.Vec3 {
	return [8]math3d.Vec3{
		math3d.V3(b.Min.X, b.Min.Y, b.Min.Z),
		math3d.V3(b.Max.X, b.Min.Y, b.Min.Z),
		math3d.V3(b.Min.X, b.Max.Y, b.Min.Z),
		math3d.V3(b.Max.X, b.Max.Y, b.Min.Z),
		math3d.V3(b.Min.X, b.Min.Y, b.Max.Z),
		math3d.V3(b.Max.X, b.Min.Y, b.Max.Z),
		math3d.V3(b.Min.X, b.Max.Y, b.Max.Z),
		math3d.V3(b.Max.X, b.Max.Y, b.Max.Z),
	}
}

// Transform returns an AABB that bounds the original AABB after transformation.
// m must be affine.
func (b AABB) Transform(m math3d.Mat4) AABB {
	corners := b.Corners()
	newMin := m.MulVec3(corners[0])
	newMax := newMin
	for _, c := range corners[1:] {
		t := m.MulVec3(c)
		newMin = newMin.Min(t)
		newMax = newMax.Max(t)
	}
	return AABB{Min: newMin, Max: newMax}
}

// OutsidePlane reports whether the whole box lies on the negative side of p.
// Only the corner furthest along the plane normal needs testing.
func (b AABB) OutsidePlane(p Plane) bool {
	n := p.Normal
	pos := math3d.V3(
		selectComponent(n.X >= 0, b.Max.X, b.Min.X),
		selectComponent(n.Y >= 0, b.Max.Y, b.Min.Y),
		selectComponent(n.Z >= 0, b.Max.Z, b.Min.Z),
	)
	return p.SignedDistance(pos) < 0
}

func selectComponent(cond bool, a, b float32) float32 {
	if cond {
		return a
	}
	return b
}
