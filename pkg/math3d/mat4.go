package math3d

import "github.com/chewxy/math32"

// Mat4 is a 4x4 matrix addressed m[row][col].
//
// Points are row vectors multiplied on the left: p' = p · M. A transform
// matrix therefore looks like:
//
//	| Xx Xy Xz 0 |   X,Y,Z = basis rows (rotation/scale)
//	| Yx Yy Yz 0 |   T = translation
//	| Zx Zy Zz 0 |
//	| Tx Ty Tz 1 |
//
// and a.Mul(b) applies a first, then b.
type Mat4 [4][4]float32

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Translate creates a translation matrix.
func Translate(x, y, z float32) Mat4 {
	m := Identity()
	m[3][0] = x
	m[3][1] = y
	m[3][2] = z
	return m
}

// Scale creates a scaling matrix.
func Scale(x, y, z float32) Mat4 {
	m := Identity()
	m[0][0] = x
	m[1][1] = y
	m[2][2] = z
	return m
}

// ScaleUniform creates a uniform scaling matrix.
func ScaleUniform(s float32) Mat4 {
	return Scale(s, s, s)
}

// RotateX creates a right-handed rotation around the X axis.
func RotateX(angle float32) Mat4 {
	c, s := math32.Cos(angle), math32.Sin(angle)
	m := Identity()
	m[1][1] = c
	m[1][2] = s
	m[2][1] = -s
	m[2][2] = c
	return m
}

// RotateY creates a right-handed rotation around the Y axis.
func RotateY(angle float32) Mat4 {
	c, s := math32.Cos(angle), math32.Sin(angle)
	m := Identity()
	m[0][0] = c
	m[0][2] = -s
	m[2][0] = s
	m[2][2] = c
	return m
}

// RotateZ creates a right-handed rotation around the Z axis.
func RotateZ(angle float32) Mat4 {
	c, s := math32.Cos(angle), math32.Sin(angle)
	m := Identity()
	m[0][0] = c
	m[0][1] = s
	m[1][0] = -s
	m[1][1] = c
	return m
}

// Perspective creates a perspective projection matrix.
// fovDeg is the field of view in degrees, aspect is height/width.
//
// After p · M the resulting W equals the view-space Z of p, so callers
// must divide by W (and must not when it is zero).
func Perspective(fovDeg, aspect, near, far float32) Mat4 {
	f := 1 / math32.Tan(fovDeg*0.5/180*math32.Pi)
	var m Mat4
	m[0][0] = aspect * f
	m[1][1] = f
	m[2][2] = far / (far - near)
	m[3][2] = (-far * near) / (far - near)
	m[2][3] = 1
	m[3][3] = 0
	return m
}

// LookAt builds the camera-to-world matrix for a camera at eye facing
// target. The up vector is re-orthogonalised against the forward axis
// (Gram-Schmidt) and rows 0-3 hold right, up, forward and eye.
func LookAt(eye, target, up Vec3) Mat4 {
	forward := target.Sub(eye).Normalize()
	a := forward.Scale(up.Dot(forward))
	newUp := up.Sub(a).Normalize()
	right := newUp.Cross(forward)

	return Mat4{
		{right.X, right.Y, right.Z, 0},
		{newUp.X, newUp.Y, newUp.Z, 0},
		{forward.X, forward.Y, forward.Z, 0},
		{eye.X, eye.Y, eye.Z, 1},
	}
}

// QuickInverse inverts a rigid (rotation plus translation) matrix such as
// the one returned by LookAt. The result is wrong for matrices with scale,
// shear or projection.
func (m Mat4) QuickInverse() Mat4 {
	var r Mat4
	r[0][0], r[0][1], r[0][2] = m[0][0], m[1][0], m[2][0]
	r[1][0], r[1][1], r[1][2] = m[0][1], m[1][1], m[2][1]
	r[2][0], r[2][1], r[2][2] = m[0][2], m[1][2], m[2][2]
	r[3][0] = -(m[3][0]*r[0][0] + m[3][1]*r[1][0] + m[3][2]*r[2][0])
	r[3][1] = -(m[3][0]*r[0][1] + m[3][1]*r[1][1] + m[3][2]*r[2][1])
	r[3][2] = -(m[3][0]*r[0][2] + m[3][1]*r[1][2] + m[3][2]*r[2][2])
	r[3][3] = 1
	return r
}

// Mul returns the product a · b (apply a, then b).
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for row := range 4 {
		for col := range 4 {
			var sum float32
			for k := range 4 {
				sum += a[row][k] * b[k][col]
			}
			m[row][col] = sum
		}
	}
	return m
}

// MulVec3 transforms v as a point and returns the homogeneous result.
// W is left as computed; use PerspectiveDivide when M is a projection.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	return Vec3{
		v.X*m[0][0] + v.Y*m[1][0] + v.Z*m[2][0] + v.W*m[3][0],
		v.X*m[0][1] + v.Y*m[1][1] + v.Z*m[2][1] + v.W*m[3][1],
		v.X*m[0][2] + v.Y*m[1][2] + v.Z*m[2][2] + v.W*m[3][2],
		v.X*m[0][3] + v.Y*m[1][3] + v.Z*m[2][3] + v.W*m[3][3],
	}
}

// MulDir transforms v as a direction (no translation). The result has W = 1.
func (m Mat4) MulDir(v Vec3) Vec3 {
	return Vec3{
		v.X*m[0][0] + v.Y*m[1][0] + v.Z*m[2][0],
		v.X*m[0][1] + v.Y*m[1][1] + v.Z*m[2][1],
		v.X*m[0][2] + v.Y*m[1][2] + v.Z*m[2][2],
		1,
	}
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for row := range 4 {
		for col := range 4 {
			t[col][row] = m[row][col]
		}
	}
	return t
}

// ApproxEqual reports whether every entry of a and b differs by at most eps.
func (a Mat4) ApproxEqual(b Mat4, eps float32) bool {
	for row := range 4 {
		for col := range 4 {
			if math32.Abs(a[row][col]-b[row][col]) > eps {
				return false
			}
		}
	}
	return true
}
