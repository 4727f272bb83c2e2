package editor

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/varlet/backend"
	"github.com/gogpu/varlet/ecs"
	"github.com/gogpu/varlet/render"
	"github.com/gogpu/varlet/scene"
)

// CapabilityEditorCamera marks the editor's fly camera controller.
var CapabilityEditorCamera = ecs.RegisterCapability("editor.camera")

// ErrNoCamera is returned when the controller's entity has no Camera or
// the Camera has no core yet.
var ErrNoCamera = errors.New("editor: no camera core")

// Controller defaults.
const (
	DefaultMoveSpeed   float32 = 5
	DefaultSensitivity float32 = 0.1
	FastMultiplier     float32 = 4
	maxPitch           float32 = 89
)

// EditorCamera flies its entity's Transform with WASD/QE and mouse-look
// while controlled, and writes the resulting view into the Camera core.
// Its entity needs a Transform and a Camera.
type EditorCamera struct {
	ecs.Base

	// MoveSpeed is in units per second.
	MoveSpeed float32
	// Sensitivity is in degrees per pixel of mouse movement.
	Sensitivity float32

	input      Input
	transform  *scene.Transform
	camera     *scene.Camera
	controlled bool
}

// Capabilities reports CapabilityEditorCamera.
func (*EditorCamera) Capabilities() ecs.CapabilitySet { return CapabilityEditorCamera.Set() }

// OnConstructed sets the default speeds.
func (c *EditorCamera) OnConstructed() {
	c.MoveSpeed = DefaultMoveSpeed
	c.Sensitivity = DefaultSensitivity
}

// SetInput sets the input source read by Update.
func (c *EditorCamera) SetInput(in Input) { c.input = in }

// Start caches the owner's Transform and Camera.
func (c *EditorCamera) Start() { c.resolve() }

// resolve looks up the sibling components not found yet, so the viewport
// can resize the camera before the first scene update.
func (c *EditorCamera) resolve() {
	owner := c.Owner()
	if owner == nil {
		return
	}
	if c.transform == nil {
		c.transform = ecs.GetComponent[*scene.Transform](owner)
	}
	if c.camera == nil {
		c.camera = ecs.GetComponent[*scene.Camera](owner)
	}
}

// SetControl turns input handling on or off.
func (c *EditorCamera) SetControl(controlled bool) { c.controlled = controlled }

// IsControlled reports whether Update reads input.
func (c *EditorCamera) IsControlled() bool { return c.controlled }

// Update applies input when controlled, then writes the view matrix.
func (c *EditorCamera) Update(dt float64) {
	c.resolve()
	if c.transform == nil {
		return
	}
	if c.controlled && c.input != nil {
		c.look()
		c.move(float32(dt))
	}
	if core := c.core(); core != nil {
		core.SetView(c.transform.ViewMatrix())
	}
}

func (c *EditorCamera) look() {
	d := c.input.MouseDelta()
	if d == (mgl32.Vec2{}) {
		return
	}
	r := c.transform.Rotation()
	pitch := mgl32.Clamp(r.X()-d.Y()*c.Sensitivity, -maxPitch, maxPitch)
	yaw := r.Y() - d.X()*c.Sensitivity
	c.transform.SetRotation(mgl32.Vec3{pitch, yaw, r.Z()})
}

func (c *EditorCamera) move(dt float32) {
	var dir mgl32.Vec3
	axis := func(k Key, v mgl32.Vec3) {
		if c.input.Key(k, Hold) {
			dir = dir.Add(v)
		}
	}
	fwd, right, up := c.transform.Forward(), c.transform.Right(), mgl32.Vec3{0, 1, 0}
	axis(KeyW, fwd)
	axis(KeyS, fwd.Mul(-1))
	axis(KeyD, right)
	axis(KeyA, right.Mul(-1))
	axis(KeyE, up)
	axis(KeyQ, up.Mul(-1))
	if dir.Len() == 0 {
		return
	}
	speed := c.MoveSpeed
	if c.input.Key(KeyLeftShift, Hold) {
		speed *= FastMultiplier
	}
	c.transform.Translate(dir.Normalize().Mul(speed * dt))
}

func (c *EditorCamera) core() *render.CameraCore {
	c.resolve()
	if c.camera == nil {
		return nil
	}
	return c.camera.Core()
}

// RenderTexture returns the camera's color attachment, or nil without a
// core. The handle changes on every resize.
func (c *EditorCamera) RenderTexture() backend.Texture {
	core := c.core()
	if core == nil {
		return nil
	}
	return core.RenderTexture()
}

// OnResize rebuilds the camera target at the panel size.
func (c *EditorCamera) OnResize(width, height int) error {
	core := c.core()
	if core == nil {
		return ErrNoCamera
	}
	return core.ResizeView(width, height)
}

// ReadSelectedPixel returns the raw RGBA bytes of the camera image at
// (x, y), top-left origin, matching panel mouse coordinates.
func (c *EditorCamera) ReadSelectedPixel(x, y int) ([4]byte, error) {
	core := c.core()
	if core == nil {
		return [4]byte{}, ErrNoCamera
	}
	return core.ReadPixel(x, y)
}
