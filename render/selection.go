// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/varlet/shader"
)

// Uniform names shared by the color and selection passes.
const (
	UniformViewProjection = "u_ViewProjection"
	UniformModel          = "u_Model"
	UniformPickColor      = "u_PickColor"
)

const pickVertexSource = `#version 410 core
layout(location = 0) in vec3 a_Position;

uniform mat4 u_ViewProjection;
uniform mat4 u_Model;

void main() {
	gl_Position = u_ViewProjection * u_Model * vec4(a_Position, 1.0);
}
`

const pickFragmentSource = `#version 410 core
out vec4 o_Color;

uniform vec4 u_PickColor;

void main() {
	o_Color = u_PickColor;
}
`

// PickSources returns the selection pass program.
func PickSources() shader.Sources {
	return shader.Sources{Vertex: pickVertexSource, Fragment: pickFragmentSource}
}

// EncodePickID packs the low 24 bits of id into RGB, least significant
// byte in red. Alpha is always 1. Id 0 is the cleared background.
func EncodePickID(id uint32) mgl32.Vec4 {
	return mgl32.Vec4{
		float32(id&0xff) / 255,
		float32(id>>8&0xff) / 255,
		float32(id>>16&0xff) / 255,
		1,
	}
}

// DecodePickID reverses EncodePickID on a read-back pixel.
func DecodePickID(px [4]byte) uint32 {
	return uint32(px[0]) | uint32(px[1])<<8 | uint32(px[2])<<16
}
