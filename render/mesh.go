// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"

	"github.com/gogpu/varlet/asset"
	"github.com/gogpu/varlet/backend"
)

// SubMesh is one GPU vertex array built from imported mesh data.
type SubMesh struct {
	name string
	va   backend.VertexArray
}

// Name returns the source mesh name.
func (s *SubMesh) Name() string { return s.name }

// IndexCount returns the number of indices drawn.
func (s *SubMesh) IndexCount() int { return s.va.IndexCount() }

// VertexArray returns the backend vertex array.
func (s *SubMesh) VertexArray() backend.VertexArray { return s.va }

// Mesh owns an ordered list of sub-meshes.
type Mesh struct {
	g         backend.Geometry
	subs      []*SubMesh
	destroyed bool
}

// NewMesh uploads every MeshData as a sub-mesh. On failure the
// sub-meshes uploaded so far are released.
func NewMesh(g backend.Geometry, data []asset.MeshData) (*Mesh, error) {
	m := &Mesh{g: g, subs: make([]*SubMesh, 0, len(data))}
	for _, md := range data {
		va, err := g.CreateVertexArray(md.Vertices, md.Indices)
		if err != nil {
			m.Destroy()
			return nil, fmt.Errorf("render: upload mesh %q: %w", md.Name, err)
		}
		m.subs = append(m.subs, &SubMesh{name: md.Name, va: va})
	}
	return m, nil
}

// NewMeshFromModel flattens the model's node tree depth-first.
func NewMeshFromModel(g backend.Geometry, model *asset.Model) (*Mesh, error) {
	return NewMesh(g, model.Meshes())
}

// SubMeshes returns the sub-meshes in upload order.
func (m *Mesh) SubMeshes() []*SubMesh { return m.subs }

// Draw issues one indexed draw per sub-mesh with the current program.
func (m *Mesh) Draw() {
	if m.destroyed {
		return
	}
	for _, s := range m.subs {
		m.g.DrawIndexed(s.va)
	}
}

// Destroy releases every vertex array. Later calls are no-ops.
func (m *Mesh) Destroy() {
	if m.destroyed {
		return
	}
	for _, s := range m.subs {
		s.va.Destroy()
	}
	m.subs = nil
	m.destroyed = true
}

// Destroyed reports whether Destroy has been called.
func (m *Mesh) Destroyed() bool { return m.destroyed }
