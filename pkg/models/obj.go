package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/taigrr/driedee/pkg/math3d"
)

// LoadOBJ reads a Wavefront OBJ file.
func LoadOBJ(path string, logger *log.Logger) (*Mesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ParseOBJ(file, filepath.Base(path), logger)
}

// ParseOBJ reads vertex ("v") and face ("f") records. Face entries may be
// a, a/b, a//c or a/b/c; only the position index is used. Indices are
// 1-based, negative ones count back from the latest vertex, and polygons
// are fanned into triangles around their first vertex. Malformed records
// are logged and skipped. The only error is a read failure.
func ParseOBJ(r io.Reader, name string, logger *log.Logger) (*Mesh, error) {
	if logger == nil {
		logger = log.Default()
	}
	mesh := NewMesh(name)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseVertex(fields[1:])
			if err != nil {
				logger.Warn("skipping vertex", "mesh", name, "line", lineNum, "err", err)
				continue
			}
			mesh.AddVertex(v)
		case "f":
			idx, err := parseFace(fields[1:], len(mesh.Vertices))
			if err != nil {
				logger.Warn("skipping face", "mesh", name, "line", lineNum, "err", err)
				continue
			}
			for i := 1; i+1 < len(idx); i++ {
				mesh.AddFace(idx[0], idx[i], idx[i+1], -1)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", name, err)
	}

	mesh.CalculateBounds()
	return mesh, nil
}

func parseVertex(fields []string) (math3d.Vec3, error) {
	if len(fields) < 3 {
		return math3d.Vec3{}, fmt.Errorf("need 3 coordinates, got %d", len(fields))
	}
	var xyz [3]float32
	for i := range xyz {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return math3d.Vec3{}, fmt.Errorf("invalid coordinate %q: %w", fields[i], err)
		}
		xyz[i] = float32(f)
	}
	return math3d.V3(xyz[0], xyz[1], xyz[2]), nil
}

// parseFace resolves face entries to 0-based vertex indices.
func parseFace(fields []string, vertexCount int) ([]int, error) {
	if len(fields) < 3 {
		return nil, fmt.Errorf("need at least 3 vertices, got %d", len(fields))
	}
	idx := make([]int, len(fields))
	for i, f := range fields {
		pos, _, _ := strings.Cut(f, "/")
		n, err := strconv.Atoi(pos)
		if err != nil {
			return nil, fmt.Errorf("invalid index %q: %w", f, err)
		}
		switch {
		case n > 0:
			n--
		case n < 0:
			n += vertexCount
		default:
			return nil, fmt.Errorf("index 0 in %q", f)
		}
		if n < 0 || n >= vertexCount {
			return nil, fmt.Errorf("index %q out of range (%d vertices)", f, vertexCount)
		}
		idx[i] = n
	}
	return idx, nil
}
