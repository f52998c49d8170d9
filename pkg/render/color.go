package render

import (
	"image/color"

	"github.com/chewxy/math32"
)

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Colors for convenience
var (
	ColorBlack = color.RGBA{0, 0, 0, 255}
	ColorWhite = color.RGBA{255, 255, 255, 255}
	ColorRed   = color.RGBA{255, 0, 0, 255}
	ColorGreen = color.RGBA{0, 255, 0, 255}
	ColorCyan  = color.RGBA{0, 255, 255, 255}
	ColorGray  = color.RGBA{128, 128, 128, 255}
)

// RGB creates an opaque color from RGB values.
func RGB(r, g, b uint8) Color {
	return color.RGBA{r, g, b, 255}
}

// Shade scales the RGB channels of c by intensity, clamped to [0, 1].
// Alpha is kept.
func Shade(c Color, intensity float32) Color {
	if math32.IsNaN(intensity) || intensity < 0 {
		intensity = 0
	}
	if intensity > 1 {
		intensity = 1
	}
	return color.RGBA{
		R: uint8(float32(c.R) * intensity),
		G: uint8(float32(c.G) * intensity),
		B: uint8(float32(c.B) * intensity),
		A: c.A,
	}
}
