package backend

import (
	"fmt"
	"sort"

	"github.com/gogpu/gpucontext"
)

// Backend name constants.
const (
	// BackendOpenGL is the name of the OpenGL 4.1 core backend.
	BackendOpenGL = "opengl"
	// BackendHeadless is the name of the in-memory backend.
	BackendHeadless = "headless"
)

// Factory creates a new backend instance.
type Factory func() Backend

// registry holds registered backends.
// Priority order for backend selection (first available wins):
// a real GPU API is preferred over the in-memory fallback.
var registry = gpucontext.NewRegistry[Backend](
	gpucontext.WithPriority(BackendOpenGL, BackendHeadless),
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory Factory) {
	registry.Register(name, factory)
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registry.Unregister(name)
}

// Available returns the sorted list of registered backend names.
func Available() []string {
	names := registry.Available()
	sort.Strings(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	return registry.Has(name)
}

// Get returns a backend instance by name.
// Returns nil if the backend is not registered.
func Get(name string) Backend {
	return registry.Get(name)
}

// Default returns the best available backend based on priority.
// Returns nil if no backends are registered.
func Default() Backend {
	return registry.Best()
}

// Select returns the named backend, or the default one when name is empty.
// The backend is not initialized; the renderer does that during Init.
func Select(name string) (Backend, error) {
	if name == "" {
		if b := Default(); b != nil {
			return b, nil
		}
		return nil, ErrBackendNotAvailable
	}
	b := Get(name)
	if b == nil {
		return nil, fmt.Errorf("%w: %q (registered: %v)", ErrBackendNotAvailable, name, Available())
	}
	return b, nil
}
