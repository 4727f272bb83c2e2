package editor_test

import (
	"image"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/varlet/backend/headless"
	"github.com/gogpu/varlet/ecs"
	"github.com/gogpu/varlet/editor"
	"github.com/gogpu/varlet/render"
	"github.com/gogpu/varlet/scene"
)

func vecEqual(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	assert.True(t, want.ApproxEqualThreshold(got, 1e-4), "got %v, want %v", got, want)
}

func newEditor(t *testing.T) (*editor.Viewport, *editor.Snapshot, *ecs.Scene, *headless.Backend) {
	t.Helper()
	b := headless.New()
	s := ecs.NewScene()
	r := render.NewRenderer(b)
	require.NoError(t, r.Init(s))
	t.Cleanup(r.Close)

	in := &editor.Snapshot{
		Held:     map[editor.Key]bool{},
		Pressed:  map[editor.MouseButton]bool{},
		Released: map[editor.MouseButton]bool{},
		Buttons:  map[editor.MouseButton]bool{},
	}
	vp := editor.NewViewport(in)
	require.NoError(t, vp.Init(s))
	return vp, in, s, b
}

func TestViewportInitCreatesCameraEntity(t *testing.T) {
	vp, _, s, _ := newEditor(t)
	e := vp.Entity()
	require.NotNil(t, e)
	assert.Equal(t, editor.EditorCameraName, e.Name())
	assert.Same(t, e, s.Entity(e.ID()))

	require.True(t, ecs.HasComponent[*scene.Transform](e))
	cam := ecs.GetComponent[*scene.Camera](e)
	require.NotNil(t, cam)
	assert.True(t, cam.IsActive())
	assert.NotNil(t, cam.Core())
	assert.Same(t, vp.Camera(), ecs.GetComponent[*editor.EditorCamera](e))
	assert.True(t, e.Has(editor.CapabilityEditorCamera))

	assert.ErrorIs(t, vp.Init(s), editor.ErrViewportInitialized)
}

func TestViewportUpdateBeforeInit(t *testing.T) {
	vp := editor.NewViewport(&editor.Snapshot{})
	_, err := vp.Update(editor.Frame{Width: 10, Height: 10})
	assert.ErrorIs(t, err, editor.ErrNoCamera)
}

func TestViewportDisplayAndResize(t *testing.T) {
	vp, _, _, _ := newEditor(t)
	cam := ecs.GetComponent[*scene.Camera](vp.Entity())

	d, err := vp.Update(editor.Frame{Width: 640, Height: 480})
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec2{0, 1}, d.UV0)
	assert.Equal(t, mgl32.Vec2{1, 0}, d.UV1)
	require.NotNil(t, d.Texture)
	assert.Equal(t, 640, d.Texture.Width())
	assert.Equal(t, 480, d.Texture.Height())
	assert.Equal(t, uint32(0), d.Texture.(*headless.Texture).Unit())

	target := cam.Core().Target()
	_, err = vp.Update(editor.Frame{Width: 640, Height: 480})
	require.NoError(t, err)
	assert.Same(t, target, cam.Core().Target(), "unchanged panel size does not resize")

	d, err = vp.Update(editor.Frame{Width: 320, Height: 200})
	require.NoError(t, err)
	assert.NotSame(t, target, cam.Core().Target())
	assert.Equal(t, 320, d.Texture.Width())
	assert.Equal(t, 320, d.Width)

	d, err = vp.Update(editor.Frame{Width: 0, Height: 200})
	require.NoError(t, err)
	assert.Equal(t, 320, d.Width, "collapsed panel keeps the last size")
}

func TestViewportControlToggle(t *testing.T) {
	vp, in, _, _ := newEditor(t)
	cam := vp.Camera()
	frame := editor.Frame{Width: 64, Height: 64}

	in.Pressed[editor.MouseRight] = true
	_, err := vp.Update(frame)
	require.NoError(t, err)
	assert.False(t, cam.IsControlled(), "press outside the panel is ignored")

	frame.Hovered = true
	_, err = vp.Update(frame)
	require.NoError(t, err)
	assert.True(t, cam.IsControlled())
	assert.Equal(t, editor.CursorDisabled, in.Cursor)

	in.Next()
	frame.Hovered = false
	in.Released[editor.MouseRight] = true
	_, err = vp.Update(frame)
	require.NoError(t, err)
	assert.False(t, cam.IsControlled(), "release anywhere ends control")
	assert.Equal(t, editor.CursorVisible, in.Cursor)
}

func TestEditorCameraMovement(t *testing.T) {
	vp, in, s, _ := newEditor(t)
	cam := vp.Camera()
	tr := ecs.GetComponent[*scene.Transform](vp.Entity())

	in.Held[editor.KeyW] = true
	s.Update(1)
	vecEqual(t, mgl32.Vec3{}, tr.Position())

	cam.SetControl(true)
	s.Update(1)
	vecEqual(t, mgl32.Vec3{0, 0, -editor.DefaultMoveSpeed}, tr.Position())

	in.Held[editor.KeyW] = false
	in.Held[editor.KeyE] = true
	in.Held[editor.KeyLeftShift] = true
	s.Update(0.5)
	vecEqual(t, mgl32.Vec3{0, editor.DefaultMoveSpeed * editor.FastMultiplier * 0.5, -editor.DefaultMoveSpeed}, tr.Position())

	core := ecs.GetComponent[*scene.Camera](vp.Entity()).Core()
	assert.Equal(t, tr.ViewMatrix(), core.View())
}

func TestEditorCameraMouseLook(t *testing.T) {
	vp, in, s, _ := newEditor(t)
	tr := ecs.GetComponent[*scene.Transform](vp.Entity())
	vp.Camera().SetControl(true)

	in.Delta = mgl32.Vec2{-900, 0}
	s.Update(0.016)
	vecEqual(t, mgl32.Vec3{0, 90, 0}, tr.Rotation())
	vecEqual(t, mgl32.Vec3{-1, 0, 0}, tr.Forward())

	in.Delta = mgl32.Vec2{0, -5000}
	s.Update(0.016)
	assert.InDelta(t, 89, tr.Rotation().X(), 1e-4, "pitch is clamped")
}

func TestEditorCameraReadSelectedPixel(t *testing.T) {
	vp, _, _, _ := newEditor(t)
	_, err := vp.Update(editor.Frame{Width: 4, Height: 4})
	require.NoError(t, err)

	core := ecs.GetComponent[*scene.Camera](vp.Entity()).Core()
	core.Target().Framebuffer().(*headless.Framebuffer).Fill(image.Rect(3, 0, 4, 1), gputypes.Color{R: 1, B: 1, A: 1})

	px, err := vp.Camera().ReadSelectedPixel(3, 0)
	require.NoError(t, err)
	assert.Equal(t, [4]byte{255, 0, 255, 255}, px)

	_, err = vp.Camera().ReadSelectedPixel(4, 0)
	assert.ErrorIs(t, err, render.ErrOutOfBounds)
}

func TestEditorCameraWithoutCamera(t *testing.T) {
	e := ecs.NewScene().CreateEntity("loose")
	cam := ecs.AddComponent[editor.EditorCamera](e)
	cam.Start()

	assert.Nil(t, cam.RenderTexture())
	assert.ErrorIs(t, cam.OnResize(10, 10), editor.ErrNoCamera)
	_, err := cam.ReadSelectedPixel(0, 0)
	assert.ErrorIs(t, err, editor.ErrNoCamera)
	assert.NotPanics(t, func() { cam.Update(1) })
}

func TestEditorCameraResolvesComponentsOnUse(t *testing.T) {
	s := ecs.NewScene()
	r := render.NewRenderer(headless.New())
	require.NoError(t, r.Init(s))
	t.Cleanup(r.Close)

	e := s.CreateEntity("late")
	ec := ecs.AddComponent[editor.EditorCamera](e)
	assert.ErrorIs(t, ec.OnResize(8, 8), editor.ErrNoCamera)

	ecs.AddComponent[scene.Transform](e)
	cam := ecs.AddComponent[scene.Camera](e)
	require.NoError(t, ec.OnResize(32, 16), "no Start call needed")
	w, h := cam.Core().Resolution()
	assert.Equal(t, 32, w)
	assert.Equal(t, 16, h)
}
