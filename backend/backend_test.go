package backend

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubBackend satisfies Backend for registry tests. Only Name is callable.
type stubBackend struct {
	Backend
	name string
}

func (s *stubBackend) Name() string { return s.name }

func withStub(t *testing.T, name string) {
	t.Helper()
	Register(name, func() Backend { return &stubBackend{name: name} })
	t.Cleanup(func() { Unregister(name) })
}

func TestSelectByName(t *testing.T) {
	withStub(t, "stub-a")

	b, err := Select("stub-a")
	require.NoError(t, err)
	assert.Equal(t, "stub-a", b.Name())
	assert.True(t, IsRegistered("stub-a"))
	assert.Contains(t, Available(), "stub-a")
}

func TestSelectUnknown(t *testing.T) {
	_, err := Select("does-not-exist")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBackendNotAvailable), "Select() error = %v, want ErrBackendNotAvailable", err)
}

func TestSelectDefaultPriority(t *testing.T) {
	withStub(t, BackendHeadless)
	withStub(t, BackendOpenGL)

	b, err := Select("")
	require.NoError(t, err)
	assert.Equal(t, BackendOpenGL, b.Name(), "opengl outranks headless")

	Unregister(BackendOpenGL)
	b, err = Select("")
	require.NoError(t, err)
	assert.Equal(t, BackendHeadless, b.Name())
}

func TestUnregister(t *testing.T) {
	withStub(t, "stub-b")
	Unregister("stub-b")

	assert.False(t, IsRegistered("stub-b"))
	assert.Nil(t, Get("stub-b"))
}

func TestAvailableSorted(t *testing.T) {
	withStub(t, "zz-stub")
	withStub(t, "aa-stub")

	names := Available()
	assert.IsNonDecreasing(t, names)
}

func TestStageString(t *testing.T) {
	tests := []struct {
		stage Stage
		want  string
		gpu   gputypes.ShaderStage
	}{
		{StageVertex, "vertex", gputypes.ShaderStageVertex},
		{StageFragment, "fragment", gputypes.ShaderStageFragment},
		{StageGeometry, "geometry", gputypes.ShaderStageNone},
		{Stage(42), "unknown", gputypes.ShaderStageNone},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.stage.String())
			assert.Equal(t, tt.gpu, tt.stage.GPUStage())
		})
	}
}

func TestFramebufferDescriptorValidate(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantErr       bool
	}{
		{"valid", 960, 540, false},
		{"zero width", 0, 540, true},
		{"negative height", 960, -1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := DefaultFramebufferDescriptor(tt.width, tt.height)
			err := d.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDimensions)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultFramebufferDescriptorFormats(t *testing.T) {
	d := DefaultFramebufferDescriptor(4, 4)
	assert.Equal(t, gputypes.TextureFormatRGBA8Unorm, d.ColorFormat)
	assert.Equal(t, gputypes.TextureFormatDepth24PlusStencil8, d.DepthFormat)
}
