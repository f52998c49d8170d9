package render

import (
	"cmp"
	"slices"

	"github.com/chewxy/math32"
	"github.com/taigrr/driedee/pkg/math3d"
)

// MeshSource is implemented by models.Mesh.
// This interface allows rendering meshes without importing the models package.
type MeshSource interface {
	TriangleCount() int
	GetTriangle(i int) [3]math3d.Vec3
}

// BoundedMeshSource extends MeshSource with a model-space bounding box, used
// to skip meshes that lie entirely behind the near plane.
type BoundedMeshSource interface {
	MeshSource
	GetBounds() (min, max math3d.Vec3)
}

// ColoredMeshSource extends MeshSource with per-face base colors.
// ok is false for faces without a material.
type ColoredMeshSource interface {
	MeshSource
	FaceColor(i int) (c Color, ok bool)
}

// RenderMode controls how the final triangles are drawn.
type RenderMode int

const (
	ModeFilled          RenderMode = iota // Flat-shaded scanline fill
	ModeWireframe                         // Triangle outlines only
	ModeFilledWireframe                   // Fill, then outline
)

// String returns a short name for the mode.
func (m RenderMode) String() string {
	switch m {
	case ModeFilled:
		return "filled"
	case ModeWireframe:
		return "wireframe"
	case ModeFilledWireframe:
		return "filled+wireframe"
	default:
		return "unknown"
	}
}

// Next cycles through the render modes.
func (m RenderMode) Next() RenderMode {
	return (m + 1) % 3
}

// Options configures a Renderer.
type Options struct {
	FOV       float32     // Field of view in degrees
	Near      float32     // Near clip distance, also the near clip plane
	Far       float32     // Far distance used by the projection
	LightDir  math3d.Vec3 // Direction towards the light, normalized per frame
	BaseColor Color       // Color for faces without a material
	WireColor Color       // Outline color in the wireframe modes
	FlipY     bool        // Mirror screen Y so +Y points up
	Mode      RenderMode
}

// DefaultOptions returns the standard pipeline settings.
func DefaultOptions() Options {
	return Options{
		FOV:       90,
		Near:      0.1,
		Far:       1000,
		LightDir:  math3d.V3(0, 1, -1),
		BaseColor: ColorWhite,
		WireColor: ColorGreen,
		FlipY:     true,
		Mode:      ModeFilled,
	}
}

// FrameStats counts triangles at each pipeline stage for one frame.
type FrameStats struct {
	Triangles   int  // Mesh triangles considered
	BackFaces   int  // Discarded by back-face culling
	Degenerate  int  // Dropped for zero-area normals or a zero/non-finite W
	NearClipped int  // Removed entirely by the near plane
	Drawables   int  // Triangles collected for sorting
	Rasterized  int  // Triangles drawn after screen clipping
	Pixels      int  // Pixels written by the fill
	MeshCulled  bool // Whole mesh skipped by its bounds
}

// Renderer owns the per-frame pipeline state: projection, pixel buffer and
// scratch buffers. It is not safe for concurrent use.
type Renderer struct {
	Camera  *Camera
	Options Options
	Stats   FrameStats

	fb        *Framebuffer
	proj      math3d.Mat4
	drawables []Triangle
	nearOut   []Triangle
	clipper   Clipper
}

// NewRenderer creates a renderer drawing into a width×height buffer.
func NewRenderer(camera *Camera, width, height int, opts Options) *Renderer {
	if camera == nil {
		camera = NewCamera()
	}
	r := &Renderer{
		Camera:  camera,
		Options: opts,
		fb:      NewFramebuffer(0, 0),
	}
	r.Resize(width, height)
	return r
}

// Resize reallocates the pixel and depth buffers and rebuilds the
// projection. It must be called between frames. Sizes below 1 are raised to 1.
func (r *Renderer) Resize(width, height int) {
	width = max(width, 1)
	height = max(height, 1)
	r.fb.Resize(width, height)
	r.updateProjection()
}

func (r *Renderer) updateProjection() {
	aspect := float32(r.fb.Height) / float32(r.fb.Width)
	r.proj = math3d.Perspective(r.Options.FOV, aspect, r.Options.Near, r.Options.Far)
}

// Framebuffer returns the buffer the renderer draws into.
func (r *Renderer) Framebuffer() *Framebuffer {
	return r.fb
}

// Width returns the framebuffer width.
func (r *Renderer) Width() int {
	return r.fb.Width
}

// Height returns the framebuffer height.
func (r *Renderer) Height() int {
	return r.fb.Height
}

// Projection returns the current projection matrix.
func (r *Renderer) Projection() math3d.Mat4 {
	return r.proj
}

// RenderFrame clears the buffer and draws mesh placed by world.
// A nil mesh draws nothing.
func (r *Renderer) RenderFrame(mesh MeshSource, world math3d.Mat4) FrameStats {
	r.fb.Clear(ColorBlack)

	tris := r.Collect(mesh, world)
	SortByDepth(tris)

	planes := ScreenPlanes(r.fb.Width, r.fb.Height)
	mode := r.Options.Mode
	for _, t := range tris {
		for _, c := range r.clipper.Clip(t, planes) {
			r.Stats.Rasterized++
			if mode != ModeWireframe {
				r.Stats.Pixels += FillTriangle(r.fb, c)
			}
			if mode != ModeFilled {
				DrawTriangleWireframe(r.fb, c, r.Options.WireColor)
			}
		}
	}
	return r.Stats
}

// Collect runs the geometry stages for every mesh triangle and returns the
// unsorted drawable list in screen space: transform, cull, light, view,
// near clip, project and screen map. Stats are reset.
//
// The returned slice is reused by the next call.
func (r *Renderer) Collect(mesh MeshSource, world math3d.Mat4) []Triangle {
	r.Stats = FrameStats{}
	r.drawables = r.drawables[:0]
	if mesh == nil {
		return r.drawables
	}

	view := r.Camera.ViewMatrix()
	near := NewPlane(math3d.V3(0, 0, r.Options.Near), math3d.V3(0, 0, 1))

	if bounded, ok := mesh.(BoundedMeshSource); ok {
		lo, hi := bounded.GetBounds()
		box := AABB{Min: lo, Max: hi}.Transform(world.Mul(view))
		if box.OutsidePlane(near) {
			r.Stats.MeshCulled = true
			return r.drawables
		}
	}
	colored, hasColors := mesh.(ColoredMeshSource)

	light := r.Options.LightDir.Normalize()
	camPos := r.Camera.Position
	w := float32(r.fb.Width)
	h := float32(r.fb.Height)

	n := mesh.TriangleCount()
	r.Stats.Triangles = n
	for i := range n {
		tri := Triangle{V: mesh.GetTriangle(i), Color: r.Options.BaseColor}
		if hasColors {
			if c, ok := colored.FaceColor(i); ok {
				tri.Color = c
			}
		}

		// Model to world.
		tri = tri.Transform(world)

		normal := tri.Normal()
		if !normal.IsFinite() {
			r.Stats.Degenerate++
			continue
		}
		if normal.Dot(tri.V[0].Sub(camPos)) >= 0 {
			r.Stats.BackFaces++
			continue
		}

		tri.Color = Shade(tri.Color, math32.Max(0.1, light.Dot(normal)))

		// World to view, then clip against the near plane.
		viewed := tri.Transform(view)
		r.nearOut = AppendClipped(r.nearOut[:0], viewed, near)
		if len(r.nearOut) == 0 {
			r.Stats.NearClipped++
			continue
		}

		for _, c := range r.nearOut {
			projected, ok := r.project(c, w, h)
			if !ok {
				r.Stats.Degenerate++
				continue
			}
			r.drawables = append(r.drawables, projected)
		}
	}

	r.Stats.Drawables = len(r.drawables)
	return r.drawables
}

// project maps a view-space triangle to screen space. ok is false when a
// vertex has W = 0 or a non-finite result.
func (r *Renderer) project(t Triangle, width, height float32) (Triangle, bool) {
	out := Triangle{Color: t.Color}
	for i, v := range t.V {
		p, ok := r.proj.MulVec3(v).PerspectiveDivide()
		if !ok {
			return Triangle{}, false
		}
		p.X = (p.X + 1) * 0.5 * width
		p.Y = (p.Y + 1) * 0.5 * height
		if r.Options.FlipY {
			p.Y = height - p.Y
		}
		out.V[i] = p
	}
	return out, true
}

// SortByDepth orders triangles farthest first by average Z. The sort is
// stable and triangles with a NaN average go last.
func SortByDepth(tris []Triangle) {
	slices.SortStableFunc(tris, func(a, b Triangle) int {
		za, zb := a.AverageZ(), b.AverageZ()
		aNaN, bNaN := math32.IsNaN(za), math32.IsNaN(zb)
		switch {
		case aNaN && bNaN:
			return 0
		case aNaN:
			return 1
		case bNaN:
			return -1
		}
		return cmp.Compare(zb, za)
	})
}
