package render

import (
	"fmt"
	"testing"

	"github.com/chewxy/math32"
	"github.com/taigrr/driedee/pkg/math3d"
)

const tolerance = 1e-4

func tri2D(x0, y0, x1, y1, x2, y2 float32) Triangle {
	return Triangle{
		V: [3]math3d.Vec3{
			math3d.V3(x0, y0, 0),
			math3d.V3(x1, y1, 0),
			math3d.V3(x2, y2, 0),
		},
		Color: ColorRed,
	}
}

// area2D returns the screen-space area of t, ignoring Z.
func area2D(t Triangle) float32 {
	a, b, c := t.V[0], t.V[1], t.V[2]
	return math32.Abs((b.X-a.X)*(c.Y-a.Y)-(c.X-a.X)*(b.Y-a.Y)) / 2
}

func totalArea(tris []Triangle) float32 {
	var sum float32
	for _, t := range tris {
		sum += area2D(t)
	}
	return sum
}

func TestClipTriangleFullyInside(t *testing.T) {
	tri := tri2D(0, 2, 4, 2, 0, 6)
	plane := NewPlane(math3d.V3(0, 1, 0), math3d.V3(0, 1, 0))

	got := ClipTriangle(tri, plane)
	if len(got) != 1 {
		t.Fatalf("got %d triangles, want 1", len(got))
	}
	if got[0] != tri {
		t.Errorf("inside triangle changed: got %v, want %v", got[0], tri)
	}
}

func TestClipTriangleFullyOutside(t *testing.T) {
	tri := tri2D(0, 2, 4, 2, 0, 6)
	plane := NewPlane(math3d.V3(0, 1, 0), math3d.V3(0, -1, 0))

	if got := ClipTriangle(tri, plane); len(got) != 0 {
		t.Errorf("got %d triangles, want none", len(got))
	}
}

func TestClipTriangleOneInside(t *testing.T) {
	tri := tri2D(0, 0, 4, 0, 0, 4)
	plane := NewPlane(math3d.V3(0, 1, 0), math3d.V3(0, 1, 0))

	got := ClipTriangle(tri, plane)
	if len(got) != 1 {
		t.Fatalf("got %d triangles, want 1", len(got))
	}
	out := got[0]

	if out.V[0] != tri.V[2] {
		t.Errorf("inside vertex = %v, want %v", out.V[0], tri.V[2])
	}
	for i := 1; i < 3; i++ {
		if d := plane.SignedDistance(out.V[i]); math32.Abs(d) > tolerance {
			t.Errorf("vertex %d distance to plane = %v, want 0", i, d)
		}
	}
	if !out.V[1].ApproxEqual(math3d.V3(0, 1, 0), tolerance) ||
		!out.V[2].ApproxEqual(math3d.V3(3, 1, 0), tolerance) {
		t.Errorf("intersections = %v, %v, want (0,1) and (3,1)", out.V[1], out.V[2])
	}
	if a := area2D(out); math32.Abs(a-4.5) > tolerance {
		t.Errorf("area = %v, want 4.5", a)
	}
	if out.Color != tri.Color {
		t.Errorf("color = %v, want %v", out.Color, tri.Color)
	}
}

func TestClipTriangleTwoInside(t *testing.T) {
	tri := tri2D(0, 0, 4, 0, 0, 4)
	plane := NewPlane(math3d.V3(0, 1, 0), math3d.V3(0, -1, 0))

	got := ClipTriangle(tri, plane)
	if len(got) != 2 {
		t.Fatalf("got %d triangles, want 2", len(got))
	}
	a, b := got[0], got[1]

	if a.V[0] != tri.V[0] || a.V[1] != tri.V[1] {
		t.Errorf("first triangle should keep both inside vertices, got %v", a.V)
	}
	if b.V[0] != tri.V[1] || b.V[1] != a.V[2] {
		t.Errorf("second triangle should share the first intersection, got %v", b.V)
	}
	for _, v := range []math3d.Vec3{a.V[2], b.V[2]} {
		if d := plane.SignedDistance(v); math32.Abs(d) > tolerance {
			t.Errorf("new vertex %v is %v from the plane", v, d)
		}
	}

	// Trapezoid between y=0 and y=1: (4 + 3) / 2.
	if area := totalArea(got); math32.Abs(area-3.5) > tolerance {
		t.Errorf("union area = %v, want 3.5", area)
	}
}

func TestClipTriangleUnnormalizedNormal(t *testing.T) {
	tri := tri2D(0, 0, 4, 0, 0, 4)
	unit := ClipTriangle(tri, Plane{Point: math3d.V3(0, 1, 0), Normal: math3d.V3(0, 1, 0)})
	scaled := ClipTriangle(tri, Plane{Point: math3d.V3(0, 1, 0), Normal: math3d.V3(0, 5, 0)})

	if len(unit) != len(scaled) {
		t.Fatalf("got %d and %d triangles", len(unit), len(scaled))
	}
	for i := range unit {
		for j := range 3 {
			if !unit[i].V[j].ApproxEqual(scaled[i].V[j], tolerance) {
				t.Errorf("triangle %d vertex %d: %v != %v", i, j, unit[i].V[j], scaled[i].V[j])
			}
		}
	}
}

func TestClipTriangleOnPlaneIsInside(t *testing.T) {
	tri := tri2D(0, 1, 4, 1, 0, 5)
	plane := NewPlane(math3d.V3(0, 1, 0), math3d.V3(0, 1, 0))

	if got := ClipTriangle(tri, plane); len(got) != 1 || got[0] != tri {
		t.Errorf("vertices on the plane count as inside, got %v", got)
	}
}

func TestIntersectPlane(t *testing.T) {
	tests := []struct {
		name          string
		point, normal math3d.Vec3
		start, end    math3d.Vec3
		want          math3d.Vec3
	}{
		{
			name:   "near plane",
			point:  math3d.V3(0, 0, 0.1),
			normal: math3d.V3(0, 0, 1),
			start:  math3d.V3(0, 0, -1),
			end:    math3d.V3(0, 0, 1),
			want:   math3d.V3(0, 0, 0.1),
		},
		{
			name:   "diagonal segment",
			point:  math3d.V3(2, 0, 0),
			normal: math3d.V3(1, 0, 0),
			start:  math3d.V3(0, 0, 0),
			end:    math3d.V3(4, 8, 0),
			want:   math3d.V3(2, 4, 0),
		},
		{
			name:   "reversed segment",
			point:  math3d.V3(0, 3, 0),
			normal: math3d.V3(0, -1, 0),
			start:  math3d.V3(1, 5, 0),
			end:    math3d.V3(1, 1, 0),
			want:   math3d.V3(1, 3, 0),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := IntersectPlane(tc.point, tc.normal, tc.start, tc.end)
			if !got.ApproxEqual(tc.want, tolerance) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestClipToScreen(t *testing.T) {
	const w, h = 100, 100

	t.Run("inside is unchanged", func(t *testing.T) {
		tri := tri2D(10, 10, 50, 10, 10, 50)
		got := ClipToScreen(tri, w, h)
		if len(got) != 1 || got[0] != tri {
			t.Errorf("got %v, want the input", got)
		}
	})

	t.Run("offscreen is dropped", func(t *testing.T) {
		tri := tri2D(-50, -50, -10, -50, -50, -10)
		if got := ClipToScreen(tri, w, h); len(got) != 0 {
			t.Errorf("got %d triangles, want none", len(got))
		}
	})

	t.Run("covering triangle fills the screen", func(t *testing.T) {
		tri := tri2D(-100, -100, 300, -100, -100, 300)
		got := ClipToScreen(tri, w, h)
		if len(got) == 0 || len(got) > 16 {
			t.Fatalf("got %d triangles, want 1..16", len(got))
		}
		for _, c := range got {
			for _, v := range c.V {
				if v.X < -tolerance || v.X > w+tolerance || v.Y < -tolerance || v.Y > h+tolerance {
					t.Errorf("vertex %v outside the screen", v)
				}
			}
		}
		if area := totalArea(got); math32.Abs(area-w*h) > 0.5 {
			t.Errorf("clipped area = %v, want %v", area, w*h)
		}
	})
}

func TestClipAndFillCoverEveryPixel(t *testing.T) {
	sizes := [][2]int{{20, 20}, {40, 30}, {1, 1}, {7, 3}}

	for _, size := range sizes {
		w, h := size[0], size[1]
		t.Run(fmt.Sprintf("%dx%d", w, h), func(t *testing.T) {
			fb := NewFramebuffer(w, h)
			for _, c := range ClipToScreen(tri2D(-100, -100, 300, -100, -100, 300), w, h) {
				FillTriangle(fb, c)
			}
			if lit := fb.CountLit(); lit != w*h {
				t.Errorf("lit %d of %d pixels", lit, w*h)
			}
			for y := range h {
				if fb.GetPixel(w-1, y) == ColorBlack {
					t.Errorf("last column unlit at row %d", y)
				}
			}
			for x := range w {
				if fb.GetPixel(x, h-1) == ColorBlack {
					t.Errorf("last row unlit at column %d", x)
				}
			}
		})
	}
}

func TestClipperReusesBuffers(t *testing.T) {
	var c Clipper
	planes := ScreenPlanes(100, 100)

	first := c.Clip(tri2D(-100, -100, 300, -100, -100, 300), planes)
	n := len(first)
	second := c.Clip(tri2D(10, 10, 50, 10, 10, 50), planes)
	if len(second) != 1 {
		t.Fatalf("second clip got %d triangles, want 1", len(second))
	}
	if n == 0 {
		t.Fatal("first clip produced nothing")
	}
}
