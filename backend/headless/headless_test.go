package headless

import (
	"image"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/varlet/backend"
)

const (
	vertexSrc = `#version 410 core
layout(location = 0) in vec3 a_Position;
uniform mat4 u_ViewProjection;
uniform mat4 u_Model;
void main() {
	gl_Position = u_ViewProjection * u_Model * vec4(a_Position, 1.0);
}
`
	fragmentSrc = `#version 410 core
out vec4 o_Color;
uniform vec4 u_Color;
uniform float u_Weights[4];
uniform mat4 u_Model;
void main() {
	o_Color = u_Color * u_Weights[0];
}
`
)

func newInitialized(t *testing.T) *Backend {
	t.Helper()
	b := New()
	require.NoError(t, b.Init())
	t.Cleanup(b.Close)
	return b
}

func linkProgram(t *testing.T, b *Backend) uint32 {
	t.Helper()
	vs, _, ok := b.CompileShader(backend.StageVertex, vertexSrc)
	require.True(t, ok)
	fs, _, ok := b.CompileShader(backend.StageFragment, fragmentSrc)
	require.True(t, ok)

	prog := b.CreateProgram()
	b.AttachShader(prog, vs)
	b.AttachShader(prog, fs)
	infoLog, ok := b.LinkProgram(prog)
	require.True(t, ok, "LinkProgram() log = %q", infoLog)
	b.DeleteShader(vs)
	b.DeleteShader(fs)
	return prog
}

func TestRegistered(t *testing.T) {
	b, err := backend.Select(backend.BackendHeadless)
	require.NoError(t, err)
	assert.Equal(t, backend.BackendHeadless, b.Name())
	assert.IsType(t, &Backend{}, b)
}

func TestCompileShaderErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"empty", "   \n"},
		{"no main", "uniform vec3 color;"},
		{"unbalanced braces", "void main() {"},
		{"unbalanced parens", "void main() { f(; }"},
	}
	b := newInitialized(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, infoLog, ok := b.CompileShader(backend.StageFragment, tt.source)
			assert.False(t, ok)
			assert.NotZero(t, id, "failed compile still yields an id")
			assert.Contains(t, infoLog, "error")
		})
	}
}

func TestLinkFailsWithUncompiledStage(t *testing.T) {
	b := newInitialized(t)
	vs, _, _ := b.CompileShader(backend.StageVertex, vertexSrc)
	fs, _, ok := b.CompileShader(backend.StageFragment, "garbage")
	require.False(t, ok)

	prog := b.CreateProgram()
	b.AttachShader(prog, vs)
	b.AttachShader(prog, fs)
	infoLog, ok := b.LinkProgram(prog)
	assert.False(t, ok)
	assert.Contains(t, infoLog, "uncompiled")
	assert.False(t, b.Linked(prog))
	assert.Equal(t, backend.InvalidLocation, b.UniformLocation(prog, "u_Model"))
}

func TestLinkFailsWithoutStages(t *testing.T) {
	b := newInitialized(t)
	prog := b.CreateProgram()
	_, ok := b.LinkProgram(prog)
	assert.False(t, ok)
}

func TestUniformLocations(t *testing.T) {
	b := newInitialized(t)
	prog := linkProgram(t, b)

	assert.Equal(t, int32(0), b.UniformLocation(prog, "u_ViewProjection"))
	assert.Equal(t, int32(1), b.UniformLocation(prog, "u_Model"))
	assert.Equal(t, int32(2), b.UniformLocation(prog, "u_Color"))
	assert.Equal(t, int32(3), b.UniformLocation(prog, "u_Weights"))
	assert.Equal(t, int32(3), b.UniformLocation(prog, "u_Weights[0]"))
	assert.Equal(t, backend.InvalidLocation, b.UniformLocation(prog, "u_Missing"))
}

func TestUniformUpload(t *testing.T) {
	b := newInitialized(t)
	prog := linkProgram(t, b)

	b.UniformFloats(prog, b.UniformLocation(prog, "u_Color"), []float32{1, 0.5, 0.25, 1})
	m := mgl32.Translate3D(1, 2, 3)
	b.UniformMatrix(prog, b.UniformLocation(prog, "u_Model"), 4, m[:])

	v, ok := b.Uniform(prog, "u_Color")
	require.True(t, ok)
	assert.Equal(t, KindFloat, v.Kind)
	assert.Equal(t, []float32{1, 0.5, 0.25, 1}, v.Floats)

	v, ok = b.Uniform(prog, "u_Model")
	require.True(t, ok)
	assert.Equal(t, KindMatrix, v.Kind)
	assert.Equal(t, 4, v.Order)
	assert.Equal(t, m[:], v.Floats)
	assert.Equal(t, 2, b.UniformWrites(prog))
}

func TestUniformUploadInvalidLocationIgnored(t *testing.T) {
	b := newInitialized(t)
	prog := linkProgram(t, b)

	b.UniformInts(prog, backend.InvalidLocation, []int32{7})
	b.UniformFloats(prog+1000, 0, []float32{1})
	assert.Zero(t, b.UniformWrites(prog))
}

func TestDeleteProgramClearsCurrent(t *testing.T) {
	b := newInitialized(t)
	prog := linkProgram(t, b)
	b.UseProgram(prog)
	assert.Equal(t, prog, b.CurrentProgram())

	b.DeleteProgram(prog)
	assert.Zero(t, b.CurrentProgram())
	assert.Zero(t, b.Stats().Programs)
}

func TestCreateFramebufferRequiresInit(t *testing.T) {
	b := New()
	_, err := b.CreateFramebuffer(backend.DefaultFramebufferDescriptor(4, 4))
	assert.ErrorIs(t, err, backend.ErrNotInitialized)
}

func TestCreateFramebufferInvalid(t *testing.T) {
	b := newInitialized(t)
	_, err := b.CreateFramebuffer(backend.DefaultFramebufferDescriptor(0, 4))
	assert.ErrorIs(t, err, backend.ErrInvalidDimensions)

	desc := backend.DefaultFramebufferDescriptor(4, 4)
	desc.ColorFormat = gputypes.TextureFormatUndefined
	_, err = b.CreateFramebuffer(desc)
	assert.ErrorIs(t, err, backend.ErrIncompleteFramebuffer)
}

func TestClearAndReadPixels(t *testing.T) {
	b := newInitialized(t)
	fb, err := b.CreateFramebuffer(backend.DefaultFramebufferDescriptor(4, 2))
	require.NoError(t, err)

	b.BindFramebuffer(fb)
	assert.Equal(t, fb.ID(), b.BoundFramebuffer())
	b.Clear(gputypes.Color{R: 1, G: 0, B: 0, A: 1})

	px, err := b.ReadPixels(fb, 0, 0, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte{255, 0, 0, 255}, px)
}

func TestReadPixelsBottomLeftOrigin(t *testing.T) {
	b := newInitialized(t)
	fb, err := b.CreateFramebuffer(backend.DefaultFramebufferDescriptor(2, 2))
	require.NoError(t, err)

	// Top-left pixel in storage is the bottom-left origin's (0, 1).
	fb.(*Framebuffer).Fill(image.Rect(0, 0, 1, 1), gputypes.Color{G: 1, A: 1})

	px, err := b.ReadPixels(fb, 0, 1, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 255, 0, 255}, px)

	px, err = b.ReadPixels(fb, 0, 0, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0}, px)

	rows, err := b.ReadPixels(fb, 0, 0, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 255, 0, 255}, rows, "bottom row first")
}

func TestReadPixelsOutOfBounds(t *testing.T) {
	b := newInitialized(t)
	fb, err := b.CreateFramebuffer(backend.DefaultFramebufferDescriptor(2, 2))
	require.NoError(t, err)

	_, err = b.ReadPixels(fb, 2, 0, 1, 1)
	assert.ErrorIs(t, err, backend.ErrOutOfBounds)
	_, err = b.ReadPixels(fb, -1, 0, 1, 1)
	assert.ErrorIs(t, err, backend.ErrOutOfBounds)
}

func TestFramebufferDestroyIdempotent(t *testing.T) {
	b := newInitialized(t)
	fb, err := b.CreateFramebuffer(backend.DefaultFramebufferDescriptor(2, 2))
	require.NoError(t, err)
	b.BindFramebuffer(fb)

	assert.Equal(t, Stats{Framebuffers: 1, Textures: 1}, b.Stats())
	fb.Destroy()
	fb.Destroy()
	assert.Equal(t, Stats{}, b.Stats())
	assert.Zero(t, b.BoundFramebuffer(), "destroying the bound framebuffer unbinds it")
	assert.True(t, fb.(*Framebuffer).Destroyed())
}

func TestCreateTextureCopies(t *testing.T) {
	b := newInitialized(t)
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.Set(1, 1, color.RGBA{R: 9, G: 8, B: 7, A: 255})

	tex, err := b.CreateTexture(src)
	require.NoError(t, err)
	assert.Equal(t, 3, tex.Width())
	assert.Equal(t, 2, tex.Height())
	assert.Equal(t, gputypes.TextureFormatRGBA8Unorm, tex.Format())

	src.Set(1, 1, color.RGBA{})
	got := tex.(*Texture).Image().RGBAAt(1, 1)
	assert.Equal(t, color.RGBA{R: 9, G: 8, B: 7, A: 255}, got)

	_, err = b.CreateTexture(nil)
	assert.ErrorIs(t, err, backend.ErrInvalidDimensions)
}

func TestDrawIndexedRecords(t *testing.T) {
	b := newInitialized(t)
	prog := linkProgram(t, b)
	fb, err := b.CreateFramebuffer(backend.DefaultFramebufferDescriptor(2, 2))
	require.NoError(t, err)

	va, err := b.CreateVertexArray(make([]backend.Vertex, 3), []uint32{0, 1, 2})
	require.NoError(t, err)

	b.UseProgram(prog)
	b.BindFramebuffer(fb)
	b.DrawIndexed(va)

	require.Len(t, b.Draws(), 1)
	assert.Equal(t, DrawCall{Program: prog, VertexArray: va.ID(), Framebuffer: fb.ID(), IndexCount: 3}, b.Draws()[0])

	b.ResetDraws()
	assert.Empty(t, b.Draws())
}

func TestCreateVertexArrayIndexRange(t *testing.T) {
	b := newInitialized(t)
	_, err := b.CreateVertexArray(make([]backend.Vertex, 2), []uint32{0, 1, 2})
	assert.Error(t, err)
}

func TestCloseReleasesEverything(t *testing.T) {
	b := New()
	require.NoError(t, b.Init())
	linkProgram(t, b)
	_, err := b.CreateFramebuffer(backend.DefaultFramebufferDescriptor(2, 2))
	require.NoError(t, err)
	_, err = b.CreateVertexArray(make([]backend.Vertex, 1), []uint32{0})
	require.NoError(t, err)

	b.Close()
	assert.Equal(t, Stats{}, b.Stats())
	assert.False(t, b.Initialized())
}
