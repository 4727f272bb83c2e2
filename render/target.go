// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"go.uber.org/zap"

	"github.com/gogpu/varlet"
	"github.com/gogpu/varlet/backend"
)

// TargetDescriptor describes an off-screen render target.
// This mirrors the WebGPU GPUTextureDescriptor fields a target needs.
type TargetDescriptor struct {
	// Label is an optional debug label for the target.
	Label string

	// Width and Height are the attachment sizes in pixels.
	Width  int
	Height int

	// ColorFormat is the color attachment format.
	ColorFormat gputypes.TextureFormat

	// DepthFormat is the depth-stencil attachment format.
	// TextureFormatUndefined means no depth attachment.
	DepthFormat gputypes.TextureFormat

	// Usage specifies how the color attachment will be used.
	// RenderAttachment is required; CopySrc enables read-back.
	Usage gputypes.TextureUsage
}

// DefaultTargetDescriptor returns an RGBA8 color + depth24/stencil8
// target that can be sampled and read back.
func DefaultTargetDescriptor(label string, width, height int) TargetDescriptor {
	return TargetDescriptor{
		Label:       label,
		Width:       width,
		Height:      height,
		ColorFormat: gputypes.TextureFormatRGBA8Unorm,
		DepthFormat: gputypes.TextureFormatDepth24PlusStencil8,
		Usage: gputypes.TextureUsageRenderAttachment |
			gputypes.TextureUsageTextureBinding |
			gputypes.TextureUsageCopySrc,
	}
}

// Validate checks dimensions, formats and usage.
func (d TargetDescriptor) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("render: target %q %dx%d: %w", d.Label, d.Width, d.Height, ErrInvalidDimensions)
	}
	if d.ColorFormat.IsDepthStencil() {
		return fmt.Errorf("render: target %q: color format %s is depth-stencil", d.Label, d.ColorFormat)
	}
	if d.DepthFormat != gputypes.TextureFormatUndefined && !d.DepthFormat.IsDepthStencil() {
		return fmt.Errorf("render: target %q: depth format %s is not depth-stencil", d.Label, d.DepthFormat)
	}
	if !d.Usage.Contains(gputypes.TextureUsageRenderAttachment) {
		return fmt.Errorf("render: target %q: usage lacks RenderAttachment", d.Label)
	}
	return nil
}

// RenderTarget is a framebuffer with a color texture and optional
// depth-stencil attachment. Its storage is immutable: resizing means
// destroying the target and allocating a new one.
type RenderTarget struct {
	device    *Device
	fb        backend.Framebuffer
	desc      TargetDescriptor
	destroyed bool
}

// Width returns the target width in pixels.
func (t *RenderTarget) Width() int { return t.desc.Width }

// Height returns the target height in pixels.
func (t *RenderTarget) Height() int { return t.desc.Height }

// Label returns the debug label.
func (t *RenderTarget) Label() string { return t.desc.Label }

// Format returns the color format.
func (t *RenderTarget) Format() gputypes.TextureFormat { return t.desc.ColorFormat }

// Descriptor returns the descriptor the target was created with.
func (t *RenderTarget) Descriptor() TargetDescriptor { return t.desc }

// Texture returns the color attachment, or nil after Destroy.
func (t *RenderTarget) Texture() backend.Texture {
	if t.destroyed {
		return nil
	}
	return t.fb.ColorTexture()
}

// Framebuffer returns the backend framebuffer.
func (t *RenderTarget) Framebuffer() backend.Framebuffer { return t.fb }

// Bound reports whether t occupies the device's active slot.
func (t *RenderTarget) Bound() bool { return t.device.active == t }

// Destroyed reports whether Destroy has been called.
func (t *RenderTarget) Destroyed() bool { return t.destroyed }

// Bind redirects subsequent draws to t. See Device.Bind.
func (t *RenderTarget) Bind() error { return t.device.Bind(t) }

// UnBind restores the default surface. See Device.UnBind.
func (t *RenderTarget) UnBind() error { return t.device.UnBind(t) }

// Destroy releases the framebuffer. A bound target is unbound first and
// the imbalance is logged. Later calls are no-ops.
func (t *RenderTarget) Destroy() {
	if t.destroyed {
		return
	}
	if t.Bound() {
		varlet.Logger().Error("destroying a bound render target", zap.String("label", t.desc.Label))
		_ = t.device.UnBind(t)
	}
	t.fb.Destroy()
	t.destroyed = true
}

func (t *RenderTarget) checkReadable() error {
	if t.destroyed {
		return fmt.Errorf("render: read %q: %w", t.desc.Label, ErrDestroyed)
	}
	if !t.desc.Usage.Contains(gputypes.TextureUsageCopySrc) {
		return fmt.Errorf("render: read %q: %w", t.desc.Label, ErrNoReadback)
	}
	return nil
}

// ReadPixel returns the RGBA bytes of one pixel. (x, y) uses a top-left
// origin, matching window and mouse coordinates; the row is flipped to
// the backend's bottom-left origin internally.
func (t *RenderTarget) ReadPixel(x, y int) ([4]byte, error) {
	var px [4]byte
	if err := t.checkReadable(); err != nil {
		return px, err
	}
	if x < 0 || y < 0 || x >= t.Width() || y >= t.Height() {
		return px, fmt.Errorf("render: read (%d,%d) from %q %dx%d: %w",
			x, y, t.desc.Label, t.Width(), t.Height(), ErrOutOfBounds)
	}
	data, err := t.device.b.ReadPixels(t.fb, x, t.Height()-1-y, 1, 1)
	if err != nil {
		return px, err
	}
	copy(px[:], data)
	return px, nil
}

// ReadImage reads the whole color attachment into an image with the
// usual top-left row order.
func (t *RenderTarget) ReadImage() (*image.RGBA, error) {
	if err := t.checkReadable(); err != nil {
		return nil, err
	}
	w, h := t.Width(), t.Height()
	data, err := t.device.b.ReadPixels(t.fb, 0, 0, w, h)
	if err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	row := w * 4
	for y := 0; y < h; y++ {
		// data is bottom row first.
		copy(img.Pix[y*img.Stride:y*img.Stride+row], data[(h-1-y)*row:(h-y)*row])
	}
	return img, nil
}
