package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/varlet/ecs"
	"github.com/gogpu/varlet/render"
	"github.com/gogpu/varlet/shader"
)

// MeshRenderer draws a mesh with a material at its entity's Transform.
// The mesh and material are shared resources; the component does not
// destroy them.
type MeshRenderer struct {
	ecs.Base

	mesh     *render.Mesh
	material *shader.Material
}

// Capabilities reports render.CapabilityRenderable.
func (*MeshRenderer) Capabilities() ecs.CapabilitySet { return render.CapabilityRenderable.Set() }

// Mesh returns the drawn mesh, or nil.
func (m *MeshRenderer) Mesh() *render.Mesh { return m.mesh }

// SetMesh sets the mesh. A nil mesh draws nothing.
func (m *MeshRenderer) SetMesh(mesh *render.Mesh) { m.mesh = mesh }

// Material returns the color pass material, or nil.
func (m *MeshRenderer) Material() *shader.Material { return m.material }

// SetMaterial sets the material used by the color pass.
func (m *MeshRenderer) SetMaterial(mat *shader.Material) { m.material = mat }

// Model returns the owner's Transform matrix, or identity without one.
func (m *MeshRenderer) Model() mgl32.Mat4 {
	if owner := m.Owner(); owner != nil {
		if t := ecs.GetComponent[*Transform](owner); t != nil {
			return t.Matrix()
		}
	}
	return mgl32.Ident4()
}

// Draw implements render.Drawable. The color pass applies the material
// with u_ViewProjection and u_Model set; the selection pass uses the
// pick shader from ctx.
func (m *MeshRenderer) Draw(ctx *render.DrawContext) error {
	if m.mesh == nil {
		return nil
	}
	model := m.Model()

	switch ctx.Pass {
	case render.PassSelection:
		s := ctx.Shader
		if s == nil {
			return nil
		}
		s.Use()
		s.SetMat4(render.UniformViewProjection, ctx.ViewProjection)
		s.SetMat4(render.UniformModel, model)
		s.SetVec4(render.UniformPickColor, ctx.PickColor)
	default:
		if m.material == nil {
			return nil
		}
		m.material.Set(render.UniformViewProjection, ctx.ViewProjection)
		m.material.Set(render.UniformModel, model)
		if err := m.material.Apply(); err != nil {
			return err
		}
	}
	m.mesh.Draw()
	return nil
}

var _ render.Drawable = (*MeshRenderer)(nil)
