package opengl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/varlet/backend"
)

// These tests avoid GL calls; a context is not available in CI.

func TestRegistered(t *testing.T) {
	require.True(t, backend.IsRegistered(backend.BackendOpenGL))

	b := backend.Default()
	require.NotNil(t, b)
	assert.Equal(t, backend.BackendOpenGL, b.Name(), "opengl is the preferred backend")
}

func TestCreateFramebufferRequiresInit(t *testing.T) {
	b := New()
	_, err := b.CreateFramebuffer(backend.DefaultFramebufferDescriptor(16, 16))
	assert.ErrorIs(t, err, backend.ErrNotInitialized)
}

func TestCompileShaderUnsupportedStage(t *testing.T) {
	b := New()
	id, infoLog, ok := b.CompileShader(backend.Stage(99), "void main() {}")
	assert.False(t, ok)
	assert.Zero(t, id)
	assert.Contains(t, infoLog, "unsupported stage")
}
