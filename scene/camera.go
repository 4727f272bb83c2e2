package scene

import (
	"github.com/gogpu/varlet/ecs"
	"github.com/gogpu/varlet/render"
)

// Camera renders the scene from its entity's Transform. The renderer
// attaches a CameraCore when the component is created; only active
// cameras are drawn each frame.
type Camera struct {
	ecs.Base

	core   *render.CameraCore
	active bool
}

// Capabilities reports render.CapabilityCamera.
func (*Camera) Capabilities() ecs.CapabilitySet { return render.CapabilityCamera.Set() }

// AttachCore is called by the renderer.
func (c *Camera) AttachCore(core *render.CameraCore) { c.core = core }

// Core returns the attached core, or nil before the renderer saw the camera.
func (c *Camera) Core() *render.CameraCore { return c.core }

// SetActive selects whether the renderer draws this camera.
func (c *Camera) SetActive(active bool) { c.active = active }

// IsActive reports whether the camera is drawn each frame.
func (c *Camera) IsActive() bool { return c.active }

// Update copies the owner's Transform into the core's view matrix.
func (c *Camera) Update(float64) {
	c.SyncView()
}

// SyncView copies the owner's Transform into the core's view matrix.
// It does nothing without a core or a Transform.
func (c *Camera) SyncView() {
	if c.core == nil || c.Owner() == nil {
		return
	}
	if t := ecs.GetComponent[*Transform](c.Owner()); t != nil {
		c.core.SetView(t.ViewMatrix())
	}
}

var _ render.CameraHost = (*Camera)(nil)
