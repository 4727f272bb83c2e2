// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render turns a scene into pixels on off-screen render targets.
//
// # Key Principle
//
// The render package RECEIVES a backend, it does NOT create one. The host
// selects a backend from the registry (see backend.Select), owns the
// window or context it needs, and hands it to NewRenderer.
//
// # Core Types
//
//   - Device: wraps the backend and owns the single active-target slot
//   - RenderTarget: framebuffer with an RGBA8 color texture and depth-stencil
//   - CameraCore: a render target plus projection and view matrices
//   - Mesh / SubMesh: GPU vertex arrays built from imported models
//   - Renderer: draw list and camera bookkeeping driven by scene events
//
// # Binding
//
// At most one target is bound at a time. Bind and UnBind must be
// balanced; a second Bind returns ErrTargetBound. CameraCore.Render is
// the scoped form and always unbinds:
//
//	err := core.Render(func() error {
//	    mesh.Draw()
//	    return nil
//	})
//
// # Coordinates
//
// Backends read back with a bottom-left origin. Every read-back API in
// this package (RenderTarget.ReadPixel, CameraCore.ReadPixel,
// Renderer.Pick) takes top-left origin coordinates, the same convention
// as window and mouse positions, and flips internally.
//
// # Selection
//
// With WithSelection, each frame ends with a second pass over the primary
// camera into a selection target, drawing every drawable in a flat color
// that encodes its entity's pick id (see EncodePickID). Pick reads it
// back.
package render
