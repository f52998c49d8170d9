package render

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/taigrr/driedee/pkg/math3d"
)

func TestFramebufferSizes(t *testing.T) {
	fb := NewFramebuffer(800, 600)
	if len(fb.Pixels) != 800*600*3 || len(fb.Depth) != 800*600 {
		t.Fatalf("buffers = %d/%d", len(fb.Pixels), len(fb.Depth))
	}

	fb.Resize(1024, 768)
	if fb.Width != 1024 || fb.Height != 768 {
		t.Errorf("size = %dx%d", fb.Width, fb.Height)
	}
	if len(fb.Pixels) != 1024*768*3 || len(fb.Depth) != 1024*768 {
		t.Errorf("buffers = %d/%d", len(fb.Pixels), len(fb.Depth))
	}

	fb.Resize(-1, 10)
	if fb.Width != 0 || len(fb.Pixels) != 0 {
		t.Errorf("negative width should give an empty buffer, got %d", fb.Width)
	}
}

func TestFramebufferPixels(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	c := RGB(10, 20, 30)

	fb.SetPixel(3, 2, c)
	if got := fb.GetPixel(3, 2); got != c {
		t.Errorf("GetPixel = %v, want %v", got, c)
	}
	if got := fb.Pixels[(2*4+3)*3:][:3]; got[0] != 10 || got[1] != 20 || got[2] != 30 {
		t.Errorf("raw bytes = %v", got)
	}

	// Out of bounds is silently ignored.
	for _, p := range [][2]int{{-1, 0}, {4, 0}, {0, -1}, {0, 3}} {
		fb.SetPixel(p[0], p[1], c)
		if got := fb.GetPixel(p[0], p[1]); got != (Color{}) {
			t.Errorf("GetPixel%v = %v, want zero", p, got)
		}
	}
	if n := fb.CountLit(); n != 1 {
		t.Errorf("lit = %d, want 1", n)
	}
}

func TestFramebufferClear(t *testing.T) {
	fb := NewFramebuffer(5, 5)
	FillTriangle(fb, Triangle{
		V:     [3]math3d.Vec3{v(0, 0, 0.5), v(5, 0, 0.5), v(0, 5, 0.5)},
		Color: ColorWhite,
	})

	fb.Clear(ColorBlack)
	if n := fb.CountLit(); n != 0 {
		t.Errorf("lit after clear = %d", n)
	}
	for i, d := range fb.Depth {
		if d != 0 {
			t.Fatalf("depth[%d] = %v after clear", i, d)
		}
	}

	fb.Clear(ColorGray)
	if got := fb.GetPixel(2, 2); got != ColorGray {
		t.Errorf("clear color = %v, want gray", got)
	}
}

func TestFramebufferDrawLine(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	fb.DrawLine(0, 0, 9, 9, ColorWhite)
	for i := range 10 {
		if fb.GetPixel(i, i) != ColorWhite {
			t.Errorf("pixel (%d, %d) not drawn", i, i)
		}
	}

	// Lines leaving the buffer are clipped per pixel.
	fb.DrawLine(-5, 5, 15, 5, ColorRed)
	if fb.GetPixel(0, 5) != ColorRed || fb.GetPixel(9, 5) != ColorRed {
		t.Error("horizontal line not drawn to the edges")
	}
}

func TestFramebufferSavePNG(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.SetPixel(1, 1, RGB(200, 100, 50))

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := fb.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Errorf("bounds = %v", b)
	}
	r, g, b, a := img.At(1, 1).RGBA()
	if r>>8 != 200 || g>>8 != 100 || b>>8 != 50 || a>>8 != 255 {
		t.Errorf("pixel = %d %d %d %d", r>>8, g>>8, b>>8, a>>8)
	}
}

func TestFramebufferSavePNGError(t *testing.T) {
	fb := NewFramebuffer(1, 1)
	if err := fb.SavePNG(filepath.Join(t.TempDir(), "missing", "frame.png")); err == nil {
		t.Error("expected an error for a missing directory")
	}
}

func TestShade(t *testing.T) {
	tests := []struct {
		intensity float32
		want      Color
	}{
		{1, RGB(200, 100, 50)},
		{0.5, RGB(100, 50, 25)},
		{2, RGB(200, 100, 50)},
		{-1, RGB(0, 0, 0)},
	}
	for _, tc := range tests {
		if got := Shade(RGB(200, 100, 50), tc.intensity); got != tc.want {
			t.Errorf("Shade(%v) = %v, want %v", tc.intensity, got, tc.want)
		}
	}
}
