// Package math3d provides the float32 vector and matrix primitives used by
// the driedee software pipeline.
package math3d

import "github.com/chewxy/math32"

// Vec3 is a homogeneous 3D point. W is 1 for affine points and carries the
// perspective weight after a projection, until PerspectiveDivide resets it.
type Vec3 struct {
	X, Y, Z, W float32
}

// V3 creates a point with W = 1.
func V3(x, y, z float32) Vec3 {
	return Vec3{x, y, z, 1}
}

// Zero3 returns the origin.
func Zero3() Vec3 {
	return Vec3{0, 0, 0, 1}
}

// Up returns the world up vector (0, 1, 0).
func Up() Vec3 {
	return Vec3{0, 1, 0, 1}
}

// Forward returns the world forward vector (0, 0, 1). View space looks down +Z.
func Forward() Vec3 {
	return Vec3{0, 0, 1, 1}
}

// Add returns the vector sum a + b.
func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z, 1}
}

// Sub returns the vector difference a - b.
func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z, 1}
}

// Scale returns the scalar product a * s.
func (a Vec3) Scale(s float32) Vec3 {
	return Vec3{a.X * s, a.Y * s, a.Z * s, 1}
}

// Div returns the scalar division a / s.
func (a Vec3) Div(s float32) Vec3 {
	return Vec3{a.X / s, a.Y / s, a.Z / s, 1}
}

// Dot returns the dot product a · b.
func (a Vec3) Dot(b Vec3) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross returns the cross product a × b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
		1,
	}
}

// Len returns the Euclidean length of the vector.
func (a Vec3) Len() float32 {
	return math32.Sqrt(a.X*a.X + a.Y*a.Y + a.Z*a.Z)
}

// LenSq returns the squared length (no sqrt).
func (a Vec3) LenSq() float32 {
	return a.X*a.X + a.Y*a.Y + a.Z*a.Z
}

// Normalize returns a / Len(a).
// A zero-length input produces NaN components; callers that cannot rule
// that out should check IsFinite on the result.
func (a Vec3) Normalize() Vec3 {
	return a.Div(a.Len())
}

// Negate returns the negated vector.
func (a Vec3) Negate() Vec3 {
	return Vec3{-a.X, -a.Y, -a.Z, 1}
}

// Lerp returns the linear interpolation between a and b by t.
func (a Vec3) Lerp(b Vec3, t float32) Vec3 {
	return Vec3{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
		1,
	}
}

// Min returns the component-wise minimum.
func (a Vec3) Min(b Vec3) Vec3 {
	return Vec3{
		math32.Min(a.X, b.X),
		math32.Min(a.Y, b.Y),
		math32.Min(a.Z, b.Z),
		1,
	}
}

// Max returns the component-wise maximum.
func (a Vec3) Max(b Vec3) Vec3 {
	return Vec3{
		math32.Max(a.X, b.X),
		math32.Max(a.Y, b.Y),
		math32.Max(a.Z, b.Z),
		1,
	}
}

// IsFinite reports whether X, Y, Z and W are all neither NaN nor infinite.
func (a Vec3) IsFinite() bool {
	return finite(a.X) && finite(a.Y) && finite(a.Z) && finite(a.W)
}

// PerspectiveDivide divides X, Y and Z by W and resets W to 1.
// ok is false when W is zero (nothing is divided) or the result is not finite.
func (a Vec3) PerspectiveDivide() (v Vec3, ok bool) {
	if a.W == 0 {
		return a, false
	}
	v = Vec3{a.X / a.W, a.Y / a.W, a.Z / a.W, 1}
	return v, v.IsFinite()
}

// ApproxEqual compares X, Y and Z within eps.
func (a Vec3) ApproxEqual(b Vec3, eps float32) bool {
	return math32.Abs(a.X-b.X) <= eps &&
		math32.Abs(a.Y-b.Y) <= eps &&
		math32.Abs(a.Z-b.Z) <= eps
}

func finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
