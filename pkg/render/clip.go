package render

import (
	"fmt"

	"github.com/taigrr/driedee/pkg/math3d"
)

// Plane is a point on the plane plus its normal.
// The positive side (signed distance >= 0) is the side the normal points to.
type Plane struct {
	Point  math3d.Vec3
	Normal math3d.Vec3
}

// NewPlane creates a plane with a normalized normal.
func NewPlane(point, normal math3d.Vec3) Plane {
	return Plane{Point: point, Normal: normal.Normalize()}
}

// SignedDistance returns dot(n, v) - dot(n, p). The normal must be unit length
// for the result to be a true distance.
func (p Plane) SignedDistance(v math3d.Vec3) float32 {
	return p.Normal.Dot(v) - p.Normal.Dot(p.Point)
}

// IntersectPlane returns the point where the segment start→end crosses the
// plane through point with the given normal.
//
// The segment must not be parallel to the plane.
func IntersectPlane(point, normal, start, end math3d.Vec3) math3d.Vec3 {
	d := -normal.Dot(point)
	ad := normal.Dot(start)
	bd := normal.Dot(end)
	t := (-d - ad) / (bd - ad)
	return start.Add(end.Sub(start).Scale(t))
}

// ClipTriangle returns the parts of tri on the positive side of plane:
// none, tri itself, one smaller triangle or two triangles covering the
// inside quadrilateral. The result never aliases tri.
func ClipTriangle(tri Triangle, plane Plane) []Triangle {
	return AppendClipped(nil, tri, plane)
}

// AppendClipped is ClipTriangle appending its output to dst.
func AppendClipped(dst []Triangle, tri Triangle, plane Plane) []Triangle {
	n := plane.Normal.Normalize()
	p := plane.Point

	var inside, outside [3]math3d.Vec3
	var nIn, nOut int
	for _, v := range tri.V {
		if n.Dot(v)-n.Dot(p) >= 0 {
			inside[nIn] = v
			nIn++
		} else {
			outside[nOut] = v
			nOut++
		}
	}

	switch nIn {
	case 0:
		return dst
	case 3:
		return append(dst, tri)
	case 1:
		return append(dst, Triangle{
			V: [3]math3d.Vec3{
				inside[0],
				IntersectPlane(p, n, inside[0], outside[0]),
				IntersectPlane(p, n, inside[0], outside[1]),
			},
			Color: tri.Color,
		})
	case 2:
		a := Triangle{
			V: [3]math3d.Vec3{
				inside[0],
				inside[1],
				IntersectPlane(p, n, inside[0], outside[0]),
			},
			Color: tri.Color,
		}
		b := Triangle{
			V: [3]math3d.Vec3{
				inside[1],
				a.V[2],
				IntersectPlane(p, n, inside[1], outside[0]),
			},
			Color: tri.Color,
		}
		return append(dst, a, b)
	default:
		panic(fmt.Sprintf("render: clip partition produced %d inside and %d outside vertices", nIn, nOut))
	}
}

// ScreenPlanes returns the four screen-edge planes for a width×height
// target, each with an inward axis-aligned normal: top, bottom, left, right.
// The planes sit on the outer pixel edges, x = 0, x = width, y = 0 and
// y = height, so the last column and row keep their pixel centers.
func ScreenPlanes(width, height int) [4]Plane {
	w := float32(width)
	h := float32(height)
	return [4]Plane{
		{Point: math3d.V3(0, 0, 0), Normal: math3d.V3(0, 1, 0)},
		{Point: math3d.V3(0, h, 0), Normal: math3d.V3(0, -1, 0)},
		{Point: math3d.V3(0, 0, 0), Normal: math3d.V3(1, 0, 0)},
		{Point: math3d.V3(w, 0, 0), Normal: math3d.V3(-1, 0, 0)},
	}
}

// ClipToScreen clips a screen-space triangle against all four screen edges.
// A single input can fan out to at most 16 triangles.
func ClipToScreen(tri Triangle, width, height int) []Triangle {
	var c Clipper
	return c.Clip(tri, ScreenPlanes(width, height))
}

// Clipper runs the screen-edge worklist. Its two buffers are reused between
// calls, so the slice returned by Clip is only valid until the next call.
type Clipper struct {
	front, back []Triangle
}

// Clip clips tri against every plane in order.
func (c *Clipper) Clip(tri Triangle, planes [4]Plane) []Triangle {
	c.front = append(c.front[:0], tri)
	for _, plane := range planes {
		c.back = c.back[:0]
		for _, t := range c.front {
			c.back = AppendClipped(c.back, t, plane)
		}
		c.front, c.back = c.back, c.front
		if len(c.front) == 0 {
			break
		}
	}
	return c.front
}
