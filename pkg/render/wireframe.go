package render

import "github.com/chewxy/math32"

// DrawTriangleWireframe draws the three edges of a screen-space triangle.
// The triangle should already be clipped to the screen. Non-finite
// triangles are ignored.
func DrawTriangleWireframe(fb *Framebuffer, tri Triangle, color Color) {
	if !tri.IsFinite() {
		return
	}
	for i := range 3 {
		a, b := tri.V[i], tri.V[(i+1)%3]
		fb.DrawLine(round(a.X), round(a.Y), round(b.X), round(b.Y), color)
	}
}

func round(f float32) int {
	return int(math32.Round(f))
}
