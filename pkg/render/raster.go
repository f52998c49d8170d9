package render

import (
	"github.com/chewxy/math32"
	"github.com/taigrr/driedee/pkg/math3d"
)

// interpolate returns the x where edge a→b crosses the horizontal line at y.
// A horizontal edge returns a.X. The result stays finite for finite input.
func interpolate(a, b math3d.Vec3, y float32) float32 {
	dy := b.Y - a.Y
	if dy == 0 {
		return a.X
	}
	t := math32.Min(math32.Max((y-a.Y)/dy, 0), 1)
	return a.X*(1-t) + b.X*t
}

// FillTriangle scanline-fills tri with its color and returns the number of
// pixels written. Rows and columns outside the buffer are skipped, so a
// triangle of any size only costs the rows it overlaps. Non-finite and
// zero-height triangles are ignored.
//
// A pixel is covered when its center (x+0.5, y+0.5) lies between the left
// and right edge, with the center row sampled in [top, bottom). The
// triangle's average depth is recorded in fb.Depth for every covered pixel.
func FillTriangle(fb *Framebuffer, tri Triangle) int {
	if !tri.IsFinite() || fb.Width == 0 || fb.Height == 0 {
		return 0
	}

	p0, p1, p2 := sortByY(tri.V)
	if p2.Y == p0.Y || p2.Y < 0 || p0.Y >= float32(fb.Height) {
		return 0
	}

	// Clamp in float space before converting so huge spans cannot overflow.
	first := int(math32.Max(math32.Ceil(p0.Y-0.5), 0))
	last := int(math32.Min(math32.Ceil(p2.Y-0.5)-1, float32(fb.Height-1)))

	depth := tri.AverageZ()
	painted := 0
	for y := first; y <= last; y++ {
		yc := float32(y) + 0.5
		xl := interpolate(p0, p2, yc)
		var xr float32
		if yc < p1.Y {
			xr = interpolate(p0, p1, yc)
		} else {
			xr = interpolate(p1, p2, yc)
		}
		if xl > xr {
			xl, xr = xr, xl
		}
		xl = math32.Max(xl, -1)
		xr = math32.Min(xr, float32(fb.Width)+1)
		start := max(int(math32.Ceil(xl-0.5)), 0)
		end := min(int(math32.Floor(xr-0.5)), fb.Width-1)
		for x := start; x <= end; x++ {
			fb.SetPixel(x, y, tri.Color)
			fb.setDepth(x, y, depth)
			painted++
		}
	}
	return painted
}

// sortByY orders three vertices by ascending Y.
func sortByY(v [3]math3d.Vec3) (a, b, c math3d.Vec3) {
	a, b, c = v[0], v[1], v[2]
	if b.Y < a.Y {
		a, b = b, a
	}
	if c.Y < a.Y {
		a, c = c, a
	}
	if c.Y < b.Y {
		b, c = c, b
	}
	return a, b, c
}
