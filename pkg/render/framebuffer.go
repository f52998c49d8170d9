// Package render implements the driedee software pipeline: camera, clipping,
// painter's-algorithm ordering and scanline rasterization into an RGB buffer.
package render

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// Framebuffer is a flat RGB pixel buffer plus a per-pixel depth buffer.
//
// The depth buffer records the depth of the last triangle painted over each
// pixel. It is never read back for occlusion.
type Framebuffer struct {
	Width  int       // Width in pixels
	Height int       // Height in pixels
	Pixels []byte    // Row-major RGB, 3 bytes per pixel
	Depth  []float32 // Row-major, 1 entry per pixel
}

// NewFramebuffer creates a new framebuffer with the given dimensions.
// Negative dimensions are treated as zero.
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{}
	fb.Resize(width, height)
	return fb
}

// Resize reallocates both buffers for the new size. Contents are cleared.
func (fb *Framebuffer) Resize(width, height int) {
	width = max(width, 0)
	height = max(height, 0)
	fb.Width = width
	fb.Height = height
	fb.Pixels = make([]byte, width*height*3)
	fb.Depth = make([]float32, width*height)
}

// Clear fills the pixel buffer with c and zeroes the depth buffer.
func (fb *Framebuffer) Clear(c Color) {
	if c.R == 0 && c.G == 0 && c.B == 0 {
		clear(fb.Pixels)
	} else {
		for i := 0; i+2 < len(fb.Pixels); i += 3 {
			fb.Pixels[i] = c.R
			fb.Pixels[i+1] = c.G
			fb.Pixels[i+2] = c.B
		}
	}
	clear(fb.Depth)
}

// InBounds reports whether (x, y) addresses a pixel.
func (fb *Framebuffer) InBounds(x, y int) bool {
	return x >= 0 && x < fb.Width && y >= 0 && y < fb.Height
}

// SetPixel sets a pixel at (x, y) to the given color.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if !fb.InBounds(x, y) {
		return
	}
	i := (y*fb.Width + x) * 3
	fb.Pixels[i] = c.R
	fb.Pixels[i+1] = c.G
	fb.Pixels[i+2] = c.B
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	if !fb.InBounds(x, y) {
		return Color{}
	}
	i := (y*fb.Width + x) * 3
	return RGB(fb.Pixels[i], fb.Pixels[i+1], fb.Pixels[i+2])
}

// setDepth records z for (x, y). Callers have already bounds-checked.
func (fb *Framebuffer) setDepth(x, y int, z float32) {
	fb.Depth[y*fb.Width+x] = z
}

// DepthAt returns the recorded depth at (x, y), or 0 if out of bounds.
func (fb *Framebuffer) DepthAt(x, y int) float32 {
	if !fb.InBounds(x, y) {
		return 0
	}
	return fb.Depth[y*fb.Width+x]
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// CountLit returns the number of pixels that are not black.
func (fb *Framebuffer) CountLit() int {
	n := 0
	for i := 0; i+2 < len(fb.Pixels); i += 3 {
		if fb.Pixels[i]|fb.Pixels[i+1]|fb.Pixels[i+2] != 0 {
			n++
		}
	}
	return n
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	fb.CopyRGBA(img.Pix)
	return img
}

// CopyRGBA expands the RGB buffer into dst as opaque RGBA.
// dst must hold at least Width*Height*4 bytes.
func (fb *Framebuffer) CopyRGBA(dst []byte) {
	n := fb.Width * fb.Height
	for i := range n {
		dst[i*4] = fb.Pixels[i*3]
		dst[i*4+1] = fb.Pixels[i*3+1]
		dst[i*4+2] = fb.Pixels[i*3+2]
		dst[i*4+3] = 255
	}
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, fb.ToImage()); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
