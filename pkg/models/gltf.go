package models

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/driedee/pkg/math3d"
)

// GLTFLoader loads GLTF/GLB files into Mesh format.
type GLTFLoader struct {
	// Logger receives notices about skipped primitives. Nil means log.Default().
	Logger *log.Logger
}

// NewGLTFLoader creates a new GLTF loader.
func NewGLTFLoader(logger *log.Logger) *GLTFLoader {
	return &GLTFLoader{Logger: logger}
}

// LoadGLTF loads a .gltf or .glb file.
func LoadGLTF(path string, logger *log.Logger) (*Mesh, error) {
	return NewGLTFLoader(logger).Load(path)
}

// Load loads a GLTF or GLB file and returns a Mesh. Faces keep the file's
// counter-clockwise front-face winding.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh, err := l.Decode(doc, filepath.Base(path))
	if err != nil {
		return nil, err
	}
	return mesh, nil
}

// Decode converts an already opened document into a Mesh.
func (l *GLTFLoader) Decode(doc *gltf.Document, name string) (*Mesh, error) {
	mesh := NewMesh(name)

	for _, m := range doc.Materials {
		mat := Material{Name: m.Name, BaseColor: [4]float32{1, 1, 1, 1}}
		if m.PBRMetallicRoughness != nil {
			c := m.PBRMetallicRoughness.BaseColorFactorOrDefault()
			mat.BaseColor = [4]float32{float32(c[0]), float32(c[1]), float32(c[2]), float32(c[3])}
		}
		mesh.Materials = append(mesh.Materials, mat)
	}

	for _, m := range doc.Meshes {
		if err := l.processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	mesh.CalculateBounds()
	return mesh, nil
}

func (l *GLTFLoader) logger() *log.Logger {
	if l.Logger == nil {
		return log.Default()
	}
	return l.Logger
}

// processMesh extracts geometry from a GLTF mesh.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for i, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			l.logger().Warn("skipping non-triangle primitive", "mesh", m.Name, "primitive", i, "mode", prim.Mode)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			l.logger().Warn("skipping primitive without positions", "mesh", m.Name, "primitive", i)
			continue
		}

		positions, err := readPositions(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		material := -1
		if prim.Material != nil && *prim.Material < len(mesh.Materials) {
			material = *prim.Material
		}

		baseVertex := len(mesh.Vertices)
		for _, p := range positions {
			mesh.AddVertex(p)
		}

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			// No indices, assume sequential triangles
			indices = make([]int, len(positions))
			for j := range indices {
				indices[j] = j
			}
		}

		for j := 0; j+2 < len(indices); j += 3 {
			a, b, c := baseVertex+indices[j], baseVertex+indices[j+1], baseVertex+indices[j+2]
			if !mesh.AddFace(a, b, c, material) {
				l.logger().Warn("skipping face with out of range index", "mesh", m.Name, "primitive", i, "face", j/3)
			}
		}
	}

	return nil
}

// accessor returns the accessor at idx, or an error for a dangling index.
func accessor(doc *gltf.Document, idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", idx)
	}
	return doc.Accessors[idx], nil
}

// readPositions reads a float VEC3 accessor, including interleaved and
// sparse layouts.
func readPositions(doc *gltf.Document, idx int) ([]math3d.Vec3, error) {
	acr, err := accessor(doc, idx)
	if err != nil {
		return nil, err
	}
	data, err := modeler.ReadPosition(doc, acr, nil)
	if err != nil {
		return nil, err
	}
	result := make([]math3d.Vec3, len(data))
	for i, p := range data {
		result[i] = math3d.V3(p[0], p[1], p[2])
	}
	return result, nil
}

// readIndices reads an unsigned byte, short or int index accessor.
func readIndices(doc *gltf.Document, idx int) ([]int, error) {
	acr, err := accessor(doc, idx)
	if err != nil {
		return nil, err
	}
	data, err := modeler.ReadIndices(doc, acr, nil)
	if err != nil {
		return nil, err
	}
	result := make([]int, len(data))
	for i, v := range data {
		result[i] = int(v)
	}
	return result, nil
}
