// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"slices"

	"github.com/gogpu/gputypes"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/gogpu/varlet"
	"github.com/gogpu/varlet/backend"
	"github.com/gogpu/varlet/ecs"
	"github.com/gogpu/varlet/shader"
)

// Renderer boots the backend and keeps the draw list and camera cores in
// step with a scene through its component events.
//
// Renderer is not safe for concurrent use; it lives on the render goroutine.
//
// Example:
//
//	b, _ := backend.Select("")
//	r := render.NewRenderer(b, render.WithSelection(true))
//	if err := r.Init(scene); err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	for running {
//	    scene.Update(dt)
//	    if err := r.RenderFrame(); err != nil {
//	        log.Printf("frame: %v", err)
//	    }
//	}
type Renderer struct {
	b    backend.Backend
	opts options

	device      *Device
	scene       *ecs.Scene
	subs        []*ecs.Subscription
	initialized bool

	drawables []Drawable
	cameras   []CameraHost

	selection  *RenderTarget
	pickShader *shader.Shader
}

// NewRenderer creates a renderer for b. A nil backend is accepted and
// reported by Init.
func NewRenderer(b backend.Backend, opts ...Option) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Renderer{b: b, opts: o}
}

// Init subscribes to the scene's component events, initializes the
// backend and adopts components that already exist. Subscriptions are
// made once; calling Init again only retries the backend.
func (r *Renderer) Init(scene *ecs.Scene) error {
	if r.subs == nil {
		r.scene = scene
		r.subs = []*ecs.Subscription{
			scene.ComponentCreated.Subscribe(r.onComponentCreated),
			scene.ComponentDestroyed.Subscribe(r.onComponentDestroyed),
		}
	}
	if r.b == nil {
		return ErrNoBackend
	}
	if r.initialized {
		return nil
	}
	if err := r.b.Init(); err != nil {
		return fmt.Errorf("render: init %s backend: %w", r.b.Name(), err)
	}
	r.device = NewDevice(r.b)
	if r.opts.selection {
		r.pickShader = shader.New(r.b, PickSources(), shader.WithLabel("selection"))
	}
	r.initialized = true
	varlet.Logger().Info("renderer initialized",
		zap.String("backend", r.b.Name()),
		zap.Bool("selection", r.opts.selection))

	for _, e := range r.scene.Entities() {
		for _, c := range e.Components() {
			r.adopt(e, c)
		}
	}
	return nil
}

// Device returns the device, or nil before Init succeeds.
func (r *Renderer) Device() *Device { return r.device }

// Initialized reports whether Init brought the backend up.
func (r *Renderer) Initialized() bool { return r.initialized }

// Drawables returns the registered drawables in creation order.
func (r *Renderer) Drawables() []Drawable { return slices.Clone(r.drawables) }

// Cameras returns the registered camera hosts in creation order.
func (r *Renderer) Cameras() []CameraHost { return slices.Clone(r.cameras) }

// SelectionTarget returns the selection pass target, or nil when the pass
// is disabled or has not run.
func (r *Renderer) SelectionTarget() *RenderTarget { return r.selection }

func (r *Renderer) onComponentCreated(ev ecs.ComponentEvent) {
	r.adopt(ev.Entity, ev.Component)
}

func (r *Renderer) adopt(e *ecs.Entity, c ecs.Component) {
	caps := c.Capabilities()
	if caps.Has(CapabilityRenderable) {
		if d, ok := c.(Drawable); ok && !slices.Contains(r.drawables, d) {
			r.drawables = append(r.drawables, d)
			varlet.Logger().Info("Entity added new mesh renderer", zap.Stringer("entity", e))
		}
	}
	if caps.Has(CapabilityCamera) {
		if h, ok := c.(CameraHost); ok {
			if !slices.Contains(r.cameras, h) {
				r.cameras = append(r.cameras, h)
			}
			r.attachCore(e, h)
		}
	}
}

func (r *Renderer) attachCore(e *ecs.Entity, h CameraHost) {
	if r.device == nil || h.Core() != nil {
		return
	}
	core, err := NewCameraCore(r.device,
		WithCameraResolution(r.opts.width, r.opts.height),
		WithCameraLabel(e.Name()),
		WithCameraClearColor(r.opts.clear))
	if err != nil {
		varlet.Logger().Error("camera core allocation failed",
			zap.Stringer("entity", e), zap.Error(err))
		return
	}
	h.AttachCore(core)
}

func (r *Renderer) onComponentDestroyed(ev ecs.ComponentEvent) {
	if d, ok := ev.Component.(Drawable); ok {
		r.drawables = slices.DeleteFunc(r.drawables, func(x Drawable) bool { return x == d })
	}
	if h, ok := ev.Component.(CameraHost); ok {
		r.cameras = slices.DeleteFunc(r.cameras, func(x CameraHost) bool { return x == h })
		releaseCore(h)
	}
}

func releaseCore(h CameraHost) {
	if core := h.Core(); core != nil {
		core.Destroy()
		h.AttachCore(nil)
	}
}

// RenderFrame draws every drawable into every active camera, then runs
// the selection pass for the first active camera when enabled. Errors
// from individual cameras and drawables are joined; one failing camera
// does not stop the others.
func (r *Renderer) RenderFrame() error {
	if !r.initialized {
		return ErrNotInitialized
	}
	var (
		err     error
		primary *CameraCore
	)
	for _, h := range r.cameras {
		core := h.Core()
		if !h.IsActive() || core == nil {
			continue
		}
		if primary == nil {
			primary = core
		}
		err = multierr.Append(err, r.renderCamera(core))
	}
	if r.opts.selection && primary != nil {
		err = multierr.Append(err, r.renderSelection(primary))
	}
	return err
}

func (r *Renderer) renderCamera(core *CameraCore) error {
	ctx := &DrawContext{
		Device:         r.device,
		Camera:         core,
		ViewProjection: core.ViewProjection(),
		Pass:           PassColor,
	}
	return core.Render(func() error {
		var err error
		for _, d := range r.drawables {
			err = multierr.Append(err, d.Draw(ctx))
		}
		return err
	})
}

func (r *Renderer) renderSelection(primary *CameraCore) (err error) {
	w, h := primary.Resolution()
	if r.selection == nil || r.selection.Width() != w || r.selection.Height() != h {
		t, err := r.device.NewTarget(DefaultTargetDescriptor("selection", w, h))
		if err != nil {
			return err
		}
		if r.selection != nil {
			r.selection.Destroy()
		}
		r.selection = t
	}

	if err := r.device.Bind(r.selection); err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, r.device.UnBind(r.selection))
	}()
	r.b.Clear(gputypes.Color{})

	ctx := &DrawContext{
		Device:         r.device,
		Camera:         primary,
		ViewProjection: primary.ViewProjection(),
		Pass:           PassSelection,
		Shader:         r.pickShader,
	}
	r.pickShader.Use()
	for _, d := range r.drawables {
		owner := d.Owner()
		if owner == nil {
			continue
		}
		ctx.PickColor = EncodePickID(owner.PickID())
		err = multierr.Append(err, d.Draw(ctx))
	}
	return err
}

// Pick returns the entity drawn at (x, y) in the last selection pass, or
// nil for background. Coordinates use a top-left origin in the primary
// camera's resolution.
func (r *Renderer) Pick(x, y int) (*ecs.Entity, error) {
	if !r.opts.selection || r.selection == nil {
		return nil, ErrSelectionDisabled
	}
	px, err := r.selection.ReadPixel(x, y)
	if err != nil {
		return nil, err
	}
	id := DecodePickID(px)
	if id == 0 {
		return nil, nil
	}
	return r.scene.EntityByPickID(id), nil
}

// Close cancels the scene subscriptions, releases every camera core and
// the selection target, and closes the backend.
func (r *Renderer) Close() {
	for _, s := range r.subs {
		s.Cancel()
	}
	r.subs = nil
	for _, h := range r.cameras {
		releaseCore(h)
	}
	r.cameras = nil
	r.drawables = nil
	if r.selection != nil {
		r.selection.Destroy()
		r.selection = nil
	}
	if r.pickShader != nil {
		r.pickShader.Destroy()
		r.pickShader = nil
	}
	if r.initialized {
		r.b.Close()
		r.initialized = false
	}
	r.device = nil
}
