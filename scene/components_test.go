package scene_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/gogpu/varlet"
	"github.com/gogpu/varlet/asset"
	"github.com/gogpu/varlet/backend"
	"github.com/gogpu/varlet/backend/headless"
	"github.com/gogpu/varlet/ecs"
	"github.com/gogpu/varlet/render"
	"github.com/gogpu/varlet/scene"
	"github.com/gogpu/varlet/shader"
)

const (
	litVertex = `#version 410 core
layout(location = 0) in vec3 a_Position;
uniform mat4 u_ViewProjection;
uniform mat4 u_Model;
void main() {
	gl_Position = u_ViewProjection * u_Model * vec4(a_Position, 1.0);
}
`
	litFragment = `#version 410 core
out vec4 o_Color;
uniform vec4 u_Color;
void main() {
	o_Color = u_Color;
}
`
)

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	varlet.SetLogger(zap.New(core))
	t.Cleanup(func() { varlet.SetLogger(nil) })
	return logs
}

type world struct {
	b     *headless.Backend
	r     *render.Renderer
	scene *ecs.Scene
}

func newWorld(t *testing.T, opts ...render.Option) *world {
	t.Helper()
	w := &world{b: headless.New(), scene: ecs.NewScene()}
	w.r = render.NewRenderer(w.b, append([]render.Option{render.WithResolution(16, 8)}, opts...)...)
	require.NoError(t, w.r.Init(w.scene))
	t.Cleanup(w.r.Close)
	return w
}

func (w *world) mesh(t *testing.T) *render.Mesh {
	t.Helper()
	m, err := render.NewMesh(w.b, []asset.MeshData{{
		Name:     "tri",
		Vertices: make([]backend.Vertex, 3),
		Indices:  []uint32{0, 1, 2},
	}})
	require.NoError(t, err)
	t.Cleanup(m.Destroy)
	return m
}

func TestCameraReceivesCore(t *testing.T) {
	w := newWorld(t)
	e := w.scene.CreateEntity("camera")
	tr := ecs.AddComponent[scene.Transform](e)
	cam := ecs.AddComponent[scene.Camera](e)
	cam.SetActive(true)

	require.NotNil(t, cam.Core())
	assert.True(t, cam.IsActive())

	tr.SetPosition(mgl32.Vec3{0, 0, 5})
	w.scene.Update(0.016)
	assert.Equal(t, tr.ViewMatrix(), cam.Core().View())

	e.Remove(cam)
	assert.Nil(t, cam.Core())
}

func TestCameraWithoutTransform(t *testing.T) {
	w := newWorld(t)
	cam := ecs.AddComponent[scene.Camera](w.scene.CreateEntity("bare"))
	cam.SyncView()
	assert.Equal(t, mgl32.Ident4(), cam.Core().View())
}

func TestMeshRendererColorPass(t *testing.T) {
	w := newWorld(t)
	camEntity := w.scene.CreateEntity("camera")
	cam := ecs.AddComponent[scene.Camera](camEntity)
	cam.SetActive(true)

	sh := shader.New(w.b, shader.Sources{Vertex: litVertex, Fragment: litFragment})
	require.True(t, sh.Linked())
	mat := shader.NewMaterial(sh)
	mat.Set("u_Color", mgl32.Vec4{1, 0, 0, 1})

	e := w.scene.CreateEntity("crate")
	tr := ecs.AddComponent[scene.Transform](e)
	tr.SetPosition(mgl32.Vec3{0, 1, 0})
	mr := ecs.AddComponent[scene.MeshRenderer](e)
	mr.SetMesh(w.mesh(t))
	mr.SetMaterial(mat)

	require.NoError(t, w.r.RenderFrame())
	require.Len(t, w.b.Draws(), 1)
	assert.Equal(t, sh.ID(), w.b.Draws()[0].Program)

	model, ok := w.b.Uniform(sh.ID(), "u_Model")
	require.True(t, ok)
	want := tr.Matrix()
	assert.Equal(t, want[:], model.Floats)

	vp, ok := w.b.Uniform(sh.ID(), "u_ViewProjection")
	require.True(t, ok)
	wantVP := cam.Core().ViewProjection()
	assert.Equal(t, wantVP[:], vp.Floats)

	color, ok := w.b.Uniform(sh.ID(), "u_Color")
	require.True(t, ok)
	assert.Equal(t, []float32{1, 0, 0, 1}, color.Floats)
}

func TestMeshRendererSelectionPass(t *testing.T) {
	w := newWorld(t, render.WithSelection(true))
	ecs.AddComponent[scene.Camera](w.scene.CreateEntity("camera")).SetActive(true)

	e := w.scene.CreateEntity("crate")
	ecs.AddComponent[scene.Transform](e)
	mr := ecs.AddComponent[scene.MeshRenderer](e)
	mr.SetMesh(w.mesh(t))

	require.NoError(t, w.r.RenderFrame())

	// No material: the color pass skips the mesh, the selection pass draws it.
	require.Len(t, w.b.Draws(), 1)
	draw := w.b.Draws()[0]
	assert.Equal(t, w.r.SelectionTarget().Framebuffer().ID(), draw.Framebuffer)

	pick, ok := w.b.Uniform(draw.Program, render.UniformPickColor)
	require.True(t, ok)
	want := render.EncodePickID(e.PickID())
	assert.Equal(t, want[:], pick.Floats)
}

func TestMeshRendererWithoutMesh(t *testing.T) {
	mr := &scene.MeshRenderer{}
	assert.NoError(t, mr.Draw(&render.DrawContext{}))
	assert.Equal(t, mgl32.Ident4(), mr.Model())
}
