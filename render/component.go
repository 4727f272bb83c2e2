// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/varlet/ecs"
	"github.com/gogpu/varlet/shader"
)

// Capabilities the renderer reacts to when components are created.
var (
	CapabilityCamera     = ecs.RegisterCapability("camera")
	CapabilityRenderable = ecs.RegisterCapability("renderable")
)

// CameraHost is a scene component that needs a CameraCore. The renderer
// allocates one when the component is created and destroys it when the
// component is removed.
type CameraHost interface {
	ecs.Component

	// AttachCore hands the component its core. Nil detaches it.
	AttachCore(core *CameraCore)
	Core() *CameraCore

	// IsActive reports whether the camera renders each frame.
	IsActive() bool
}

// Drawable is a scene component the renderer draws every frame.
type Drawable interface {
	ecs.Component
	Draw(ctx *DrawContext) error
}

// Pass identifies what a draw is for.
type Pass uint8

const (
	// PassColor draws with the component's own material.
	PassColor Pass = iota

	// PassSelection draws with DrawContext.Shader, writing PickColor.
	PassSelection
)

// String returns the pass name.
func (p Pass) String() string {
	switch p {
	case PassColor:
		return "color"
	case PassSelection:
		return "selection"
	default:
		return "unknown"
	}
}

// DrawContext is handed to Drawable.Draw.
type DrawContext struct {
	Device         *Device
	Camera         *CameraCore
	ViewProjection mgl32.Mat4
	Pass           Pass

	// PickColor encodes the owner's pick id. Set only in PassSelection.
	PickColor mgl32.Vec4

	// Shader overrides the drawable's material when non-nil.
	Shader *shader.Shader
}
