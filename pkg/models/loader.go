package models

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrUnsupportedFormat is returned by Load for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported mesh format")

// Load reads a mesh file, choosing the parser by extension: .obj, .gltf
// or .glb.
func Load(path string, logger *log.Logger) (*Mesh, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		return LoadOBJ(path, logger)
	case ".gltf", ".glb":
		return LoadGLTF(path, logger)
	default:
		return nil, fmt.Errorf("%s: %w %q", path, ErrUnsupportedFormat, ext)
	}
}

// Supported reports whether Load understands path's extension.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj", ".gltf", ".glb":
		return true
	}
	return false
}
