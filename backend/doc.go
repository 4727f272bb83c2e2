// Package backend provides the pluggable graphics backend abstraction.
//
// A Backend is an opaque capability covering shader program
// compilation and uniform upload, off-screen framebuffers with
// read-back, and indexed vertex arrays. Higher layers (shader, render)
// never issue graphics API calls directly.
//
// # Backend Registration
//
// Backends are registered via init() functions and selected once at
// startup:
//
//	import _ "github.com/gogpu/varlet/backend/headless"
//	import _ "github.com/gogpu/varlet/backend/opengl"
//
// # Backend Selection
//
// Use Select with a configured name, or an empty name for the best
// available backend:
//
//	b, err := backend.Select("")
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Only one backend is active per process. Selecting a second one is
// not supported.
//
// # Available Backends
//
//   - "opengl": OpenGL 4.1 core via go-gl/gl (requires cgo and a current
//     context created by the host window)
//   - "headless": in-memory framebuffers, always available
package backend
