package injector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/varlet"
	"github.com/gogpu/varlet/backend"
	"github.com/gogpu/varlet/backend/headless"
	"github.com/gogpu/varlet/config"
	"github.com/gogpu/varlet/editor"
)

func TestInitializeEngine(t *testing.T) {
	t.Cleanup(func() { varlet.SetLogger(nil) })
	cfg := config.Default()
	cfg.Engine.Selection = true
	cfg.Camera.Width, cfg.Camera.Height = 32, 16

	eng, cleanup, err := InitializeEngine(cfg)
	require.NoError(t, err)

	assert.Same(t, cfg, eng.Config)
	assert.Same(t, eng.Logger, varlet.Logger())
	assert.Equal(t, backend.BackendHeadless, eng.Backend.Name(), "only linked backend wins the default selection")
	assert.True(t, eng.Renderer.Initialized())
	require.NotNil(t, eng.Viewport.Entity())
	assert.Equal(t, 1, eng.Scene.Len())
	assert.Zero(t, eng.Shaders.Len())

	d, err := eng.Step(1.0/60.0, editor.Frame{Width: 32, Height: 16, Hovered: true})
	require.NoError(t, err)
	require.NotNil(t, d.Texture)
	assert.Equal(t, 32, d.Texture.Width())
	assert.NotNil(t, eng.Renderer.SelectionTarget())

	cleanup()
	hb := eng.Backend.(*headless.Backend)
	assert.False(t, hb.Initialized())
}

func TestInitializeEngineUnknownBackend(t *testing.T) {
	t.Cleanup(func() { varlet.SetLogger(nil) })
	cfg := config.Default()
	cfg.Engine.Backend = "vulkan"

	_, _, err := InitializeEngine(cfg)
	assert.ErrorIs(t, err, backend.ErrBackendNotAvailable)
}
