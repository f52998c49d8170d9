// Package engine runs the driedee frame loop: input, camera, render, present.
package engine

import (
	"errors"
	"fmt"

	"github.com/taigrr/driedee/pkg/models"
)

// Config holds the viewer settings. The zero value is not usable; start from
// DefaultConfig.
type Config struct {
	MaxFPS     float64 // frame rate cap
	ObjectPath string  // mesh file; empty selects Shape
	Shape      string  // built-in shape used when ObjectPath is empty
	Segments   int     // cylinder sides
	Distance   float32 // object distance along +Z
	Spin       float32 // object spin in rad/s
	Fit        bool    // center the mesh and scale it to unit size
	Watch      bool    // reload ObjectPath when it changes
	Wireframe  bool    // start in wireframe mode
	FOV        float32 // vertical field of view in degrees
	Near, Far  float32
	Width      int // window and snapshot size in pixels
	Height     int
}

// DefaultConfig returns the default viewer settings.
func DefaultConfig() Config {
	return Config{
		MaxFPS:   60,
		Shape:    models.ShapeIcosahedron,
		Segments: 16,
		Distance: 5,
		Fit:      true,
		FOV:      90,
		Near:     0.1,
		Far:      1000,
		Width:    1280,
		Height:   720,
	}
}

// ErrInvalidConfig wraps every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate reports the first setting that cannot drive a frame loop.
func (c Config) Validate() error {
	switch {
	case c.MaxFPS <= 0:
		return fmt.Errorf("%w: max fps must be positive, got %v", ErrInvalidConfig, c.MaxFPS)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size must be positive, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.Near <= 0:
		return fmt.Errorf("%w: near plane must be positive, got %v", ErrInvalidConfig, c.Near)
	case c.Far <= c.Near:
		return fmt.Errorf("%w: far plane %v must be beyond near plane %v", ErrInvalidConfig, c.Far, c.Near)
	case c.FOV <= 0 || c.FOV >= 180:
		return fmt.Errorf("%w: fov must be in (0, 180), got %v", ErrInvalidConfig, c.FOV)
	case c.Watch && c.ObjectPath == "":
		return fmt.Errorf("%w: watch needs an object path", ErrInvalidConfig)
	case c.ObjectPath != "" && !models.Supported(c.ObjectPath):
		return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, c.ObjectPath, models.ErrUnsupportedFormat)
	}
	return nil
}
