package opengl

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/gogpu/varlet/backend"
)

// VertexArray is a VAO with its vertex and element buffers.
type VertexArray struct {
	vao, vbo, ebo uint32
	count         int
}

// CreateVertexArray uploads interleaved vertices and 32-bit indices.
func (b *Backend) CreateVertexArray(vertices []backend.Vertex, indices []uint32) (backend.VertexArray, error) {
	va := &VertexArray{count: len(indices)}

	gl.GenVertexArrays(1, &va.vao)
	gl.BindVertexArray(va.vao)

	gl.GenBuffers(1, &va.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, va.vbo)
	if len(vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*backend.VertexStride, gl.Ptr(&vertices[0].Position[0]), gl.STATIC_DRAW)
	}

	gl.GenBuffers(1, &va.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, va.ebo)
	if len(indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
	}

	// position, normal, uv
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, backend.VertexStride, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, backend.VertexStride, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, backend.VertexStride, 6*4)
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)
	return va, nil
}

// ID returns the VAO name.
func (va *VertexArray) ID() uint32 { return va.vao }

// IndexCount returns the number of indices.
func (va *VertexArray) IndexCount() int { return va.count }

// Destroy deletes the VAO and its buffers.
func (va *VertexArray) Destroy() {
	if va.vao == 0 {
		return
	}
	gl.DeleteBuffers(1, &va.vbo)
	gl.DeleteBuffers(1, &va.ebo)
	gl.DeleteVertexArrays(1, &va.vao)
	va.vao, va.vbo, va.ebo = 0, 0, 0
}

// DrawIndexed draws the vertex array as triangles with the current program.
func (b *Backend) DrawIndexed(va backend.VertexArray) {
	if va == nil || va.IndexCount() == 0 {
		return
	}
	gl.BindVertexArray(va.ID())
	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(va.IndexCount()), gl.UNSIGNED_INT, 0)
	gl.BindVertexArray(0)
}
