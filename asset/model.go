// Package asset imports models and images from disk.
//
// Model import is pluggable through the Importer interface; OBJImporter
// reads Wavefront OBJ geometry. Images decode into *image.RGBA ready for
// texture upload.
package asset

import (
	"errors"

	"github.com/gogpu/varlet/backend"
)

var (
	// ErrUnsupportedFormat is returned for file extensions no importer handles.
	ErrUnsupportedFormat = errors.New("asset: unsupported format")

	// ErrMalformed is returned for syntactically invalid model data.
	ErrMalformed = errors.New("asset: malformed data")
)

// Importer loads a model file.
type Importer interface {
	Import(path string) (*Model, error)
}

// MeshData is CPU-side geometry for one sub-mesh.
type MeshData struct {
	Name     string
	Vertices []backend.Vertex
	Indices  []uint32
}

// Node is a named group of meshes in the model hierarchy.
type Node struct {
	Name     string
	Meshes   []MeshData
	Children []*Node
}

// Model is an imported scene graph.
type Model struct {
	Root *Node
}

// Meshes returns every mesh in depth-first order.
func (m *Model) Meshes() []MeshData {
	if m == nil || m.Root == nil {
		return nil
	}
	var out []MeshData
	var walk func(n *Node)
	walk = func(n *Node) {
		out = append(out, n.Meshes...)
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(m.Root)
	return out
}
