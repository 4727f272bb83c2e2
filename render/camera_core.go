// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"go.uber.org/zap"

	"github.com/gogpu/varlet"
	"github.com/gogpu/varlet/backend"
)

// Camera defaults.
const (
	DefaultWidth  = 960
	DefaultHeight = 540

	// DefaultFOV is the vertical field of view in degrees.
	DefaultFOV float32 = 45
	NearPlane  float32 = 0.1
	FarPlane   float32 = 250
)

// CameraOption configures a CameraCore.
type CameraOption func(*cameraOptions)

type cameraOptions struct {
	width, height int
	label         string
	clear         gputypes.Color
}

// WithCameraResolution sets the initial target size.
func WithCameraResolution(width, height int) CameraOption {
	return func(o *cameraOptions) {
		o.width, o.height = width, height
	}
}

// WithCameraLabel sets the debug label of the camera's target.
func WithCameraLabel(label string) CameraOption {
	return func(o *cameraOptions) {
		o.label = label
	}
}

// WithCameraClearColor sets the color the target is cleared to each frame.
func WithCameraClearColor(c gputypes.Color) CameraOption {
	return func(o *cameraOptions) {
		o.clear = c
	}
}

// CameraCore is the render-side half of a camera: an off-screen target,
// a perspective projection derived from the target's aspect ratio, and a
// view matrix supplied by whoever drives the camera.
type CameraCore struct {
	device     *Device
	target     *RenderTarget
	label      string
	clear      gputypes.Color
	projection mgl32.Mat4
	view       mgl32.Mat4
	width      int
	height     int
}

// NewCameraCore allocates a camera with a 960x540 target unless
// WithCameraResolution says otherwise.
func NewCameraCore(d *Device, opts ...CameraOption) (*CameraCore, error) {
	o := cameraOptions{
		width:  DefaultWidth,
		height: DefaultHeight,
		label:  "camera",
		clear:  gputypes.Color{R: 0.1, G: 0.1, B: 0.1, A: 1},
	}
	for _, opt := range opts {
		opt(&o)
	}

	c := &CameraCore{
		device: d,
		label:  o.label,
		clear:  o.clear,
		view:   mgl32.Ident4(),
	}
	if err := c.rebuild(o.width, o.height); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *CameraCore) rebuild(width, height int) error {
	t, err := c.device.NewTarget(DefaultTargetDescriptor(c.label, width, height))
	if err != nil {
		return err
	}
	if c.target != nil {
		c.target.Destroy()
	}
	c.target = t
	c.width, c.height = width, height
	c.projection = mgl32.Perspective(mgl32.DegToRad(DefaultFOV), float32(width)/float32(height), NearPlane, FarPlane)
	return nil
}

// ResizeView reallocates the target at the new size and recomputes the
// projection. The target is rebuilt even when the size is unchanged, so
// callers must re-fetch RenderTexture afterwards.
func (c *CameraCore) ResizeView(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("render: resize %q to %dx%d: %w", c.label, width, height, ErrInvalidDimensions)
	}
	if c.Bound() {
		return fmt.Errorf("render: resize %q: %w", c.label, ErrTargetBound)
	}
	if err := c.rebuild(width, height); err != nil {
		return err
	}
	varlet.Logger().Debug("camera resized",
		zap.String("label", c.label),
		zap.Int("width", width),
		zap.Int("height", height))
	return nil
}

// Bind makes the camera's target the draw destination and clears it.
func (c *CameraCore) Bind() error {
	if err := c.device.Bind(c.target); err != nil {
		return err
	}
	c.device.b.Clear(c.clear)
	return nil
}

// UnBind restores the default surface.
func (c *CameraCore) UnBind() error {
	return c.device.UnBind(c.target)
}

// Bound reports whether the camera's target is bound.
func (c *CameraCore) Bound() bool {
	return c.target != nil && c.target.Bound()
}

// Render binds the camera, runs fn and unbinds, including when fn
// returns an error or panics.
func (c *CameraCore) Render(fn func() error) (err error) {
	if err := c.Bind(); err != nil {
		return err
	}
	defer func() {
		if uerr := c.UnBind(); err == nil {
			err = uerr
		}
	}()
	return fn()
}

// SetView stores the view matrix.
func (c *CameraCore) SetView(view mgl32.Mat4) { c.view = view }

// View returns the view matrix.
func (c *CameraCore) View() mgl32.Mat4 { return c.view }

// Projection returns the perspective projection.
func (c *CameraCore) Projection() mgl32.Mat4 { return c.projection }

// ViewProjection returns projection * view.
func (c *CameraCore) ViewProjection() mgl32.Mat4 { return c.projection.Mul4(c.view) }

// Resolution returns the current target size.
func (c *CameraCore) Resolution() (width, height int) { return c.width, c.height }

// ClearColor returns the per-frame clear color.
func (c *CameraCore) ClearColor() gputypes.Color { return c.clear }

// SetClearColor sets the per-frame clear color.
func (c *CameraCore) SetClearColor(col gputypes.Color) { c.clear = col }

// Target returns the current render target. It changes on every resize.
func (c *CameraCore) Target() *RenderTarget { return c.target }

// RenderTexture returns the target's color attachment. The handle is not
// stable across ResizeView.
func (c *CameraCore) RenderTexture() backend.Texture { return c.target.Texture() }

// ReadPixel reads one pixel at a top-left origin coordinate.
func (c *CameraCore) ReadPixel(x, y int) ([4]byte, error) { return c.target.ReadPixel(x, y) }

// Destroy releases the target. Later calls are no-ops.
func (c *CameraCore) Destroy() {
	if c.target != nil {
		c.target.Destroy()
	}
}

// Destroyed reports whether Destroy has been called.
func (c *CameraCore) Destroyed() bool { return c.target == nil || c.target.Destroyed() }
