// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/gogpu/varlet"
	"github.com/gogpu/varlet/backend"
	"github.com/gogpu/varlet/internal/assert"
)

// Device wraps the active backend and owns the single active render
// target slot.
//
// Key principle: at most one RenderTarget is bound at a time. Binding
// a second target without unbinding the first is a programming error:
// Bind returns ErrTargetBound, and builds tagged varletdebug panic.
//
// Device is not safe for concurrent use; it lives on the render goroutine.
type Device struct {
	b      backend.Backend
	active *RenderTarget
}

// NewDevice wraps an initialized backend.
func NewDevice(b backend.Backend) *Device {
	return &Device{b: b}
}

// Backend returns the wrapped backend.
func (d *Device) Backend() backend.Backend {
	return d.b
}

// Active returns the bound target, or nil when drawing to the default surface.
func (d *Device) Active() *RenderTarget {
	return d.active
}

// Bind redirects draw output to t and sets the viewport to its size.
func (d *Device) Bind(t *RenderTarget) error {
	if t == nil || t.destroyed {
		return fmt.Errorf("render: bind: %w", ErrDestroyed)
	}
	if d.active != nil {
		assert.That(false, "bind %q while %q is bound", t.desc.Label, d.active.desc.Label)
		return fmt.Errorf("render: bind %q while %q is bound: %w", t.desc.Label, d.active.desc.Label, ErrTargetBound)
	}
	d.b.BindFramebuffer(t.fb)
	d.b.Viewport(0, 0, t.Width(), t.Height())
	d.active = t
	return nil
}

// UnBind restores the default surface. t must be the bound target.
func (d *Device) UnBind(t *RenderTarget) error {
	if d.active == nil || d.active != t {
		label := ""
		if t != nil {
			label = t.desc.Label
		}
		assert.That(false, "unbind %q which is not bound", label)
		return fmt.Errorf("render: unbind %q: %w", label, ErrTargetNotBound)
	}
	d.b.BindFramebuffer(nil)
	d.active = nil
	return nil
}

// NewTarget allocates a render target.
func (d *Device) NewTarget(desc TargetDescriptor) (*RenderTarget, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	fb, err := d.b.CreateFramebuffer(backend.FramebufferDescriptor{
		Label:       desc.Label,
		Width:       desc.Width,
		Height:      desc.Height,
		ColorFormat: desc.ColorFormat,
		DepthFormat: desc.DepthFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("render: create target %q: %w", desc.Label, err)
	}
	varlet.Logger().Debug("render target created",
		zap.String("label", desc.Label),
		zap.Uint32("framebuffer", fb.ID()),
		zap.Int("width", desc.Width),
		zap.Int("height", desc.Height))
	return &RenderTarget{device: d, fb: fb, desc: desc}, nil
}
