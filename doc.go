// Package varlet is a small real-time 3D rendering core for an embedded
// scene editor.
//
// # Overview
//
// varlet combines three pieces:
//
//   - an entity/component scene model with synchronous creation
//     notifications (package ecs, concrete components in package scene)
//   - a pluggable graphics backend selected once at startup
//     (package backend, implementations in backend/headless and
//     backend/opengl)
//   - a camera/framebuffer pipeline: shader programs with source-level
//     uniform reflection (package shader) and off-screen render targets
//     owned by camera cores (package render)
//
// The editor-facing camera controller and viewport model live in
// package editor.
//
// # Quick Start
//
//	b, err := backend.Select("headless")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	s := ecs.NewScene()
//	r := render.NewRenderer(b, render.WithSelection(true))
//	if err := r.Init(s); err != nil {
//		log.Fatal(err)
//	}
//	defer r.Close()
//
//	cam := s.CreateEntity("camera")
//	ecs.AddComponent[scene.Transform](cam)
//	ecs.AddComponent[scene.Camera](cam).SetActive(true)
//
//	if err := r.RenderFrame(); err != nil {
//		log.Fatal(err)
//	}
//
// # Threading
//
// Scene mutation, component creation, rendering and uniform upload all
// happen on a single render goroutine. Only the backend registry and the
// package logger are safe for concurrent use.
//
// # Logging
//
// varlet is silent by default. Call [SetLogger] with a zap logger to
// receive diagnostics such as shader compile warnings.
package varlet

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
