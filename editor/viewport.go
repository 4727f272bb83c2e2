package editor

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gpucontext"
	"go.uber.org/zap"

	"github.com/gogpu/varlet"
	"github.com/gogpu/varlet/ecs"
	"github.com/gogpu/varlet/scene"
)

// ErrViewportInitialized is returned by a second Viewport.Init.
var ErrViewportInitialized = errors.New("editor: viewport already initialized")

// EditorCameraName names the entity Viewport.Init creates.
const EditorCameraName = "Editor Camera"

// Frame is the panel state the host reports each frame.
type Frame struct {
	// Width and Height are the panel content size in pixels.
	Width, Height int
	// Hovered reports whether the cursor is over the panel.
	Hovered bool
}

// Display tells the host what to draw in the panel. Render targets are
// stored bottom row first, so the UVs flip V: UV0 is the panel's top-left
// corner and UV1 its bottom-right.
type Display struct {
	Texture       gpucontext.Texture
	Width, Height int
	UV0, UV1      mgl32.Vec2
}

// Viewport is the scene view panel. It owns the editor camera entity.
type Viewport struct {
	input  Input
	entity *ecs.Entity
	camera *EditorCamera

	lastWidth, lastHeight int
}

// NewViewport creates a viewport reading in.
func NewViewport(in Input) *Viewport {
	return &Viewport{input: in}
}

// Init creates the editor camera entity: a Transform, an active Camera
// and an EditorCamera. The renderer must already be listening on s for
// the camera to receive a core.
func (v *Viewport) Init(s *ecs.Scene) error {
	if v.entity != nil {
		return ErrViewportInitialized
	}
	e := s.CreateEntity(EditorCameraName)
	ecs.AddComponent[scene.Transform](e)
	ecs.AddComponent[scene.Camera](e).SetActive(true)
	v.camera = ecs.AddComponent[EditorCamera](e)
	v.camera.SetInput(v.input)
	v.entity = e
	return nil
}

// Entity returns the editor camera entity, or nil before Init.
func (v *Viewport) Entity() *ecs.Entity { return v.entity }

// Camera returns the editor camera controller, or nil before Init.
func (v *Viewport) Camera() *EditorCamera { return v.camera }

// Update toggles camera control on right mouse press (while hovered) and
// release, resizes the camera when the panel size changed, and returns
// the display for this frame. Collapsed panels (non-positive sizes) keep
// the last size.
func (v *Viewport) Update(f Frame) (Display, error) {
	if v.camera == nil {
		return Display{}, fmt.Errorf("editor: viewport update before init: %w", ErrNoCamera)
	}

	if v.input.Mouse(MouseRight, Release) && v.camera.IsControlled() {
		v.setCursor(CursorVisible)
		v.camera.SetControl(false)
	}
	if v.input.Mouse(MouseRight, Press) && f.Hovered && !v.camera.IsControlled() {
		v.setCursor(CursorDisabled)
		v.camera.SetControl(true)
	}

	var err error
	if f.Width > 0 && f.Height > 0 && (f.Width != v.lastWidth || f.Height != v.lastHeight) {
		if err = v.camera.OnResize(f.Width, f.Height); err == nil {
			v.lastWidth, v.lastHeight = f.Width, f.Height
			varlet.Logger().Debug("viewport resized",
				zap.Int("width", f.Width),
				zap.Int("height", f.Height))
		}
	}

	d := Display{
		Width:  v.lastWidth,
		Height: v.lastHeight,
		UV0:    mgl32.Vec2{0, 1},
		UV1:    mgl32.Vec2{1, 0},
	}
	if tex := v.camera.RenderTexture(); tex != nil {
		tex.Activate(0)
		d.Texture = tex
	}
	return d, err
}

func (v *Viewport) setCursor(s CursorState) {
	if c, ok := v.input.(Cursor); ok {
		c.SetCursorState(s)
	}
}
