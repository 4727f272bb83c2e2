// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/gogpu/varlet"
	"github.com/gogpu/varlet/backend/headless"
	contract "github.com/gogpu/varlet/internal/assert"
	"github.com/gogpu/varlet/render"
)

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	varlet.SetLogger(zap.New(core))
	t.Cleanup(func() { varlet.SetLogger(nil) })
	return logs
}

func newDevice(t *testing.T) (*render.Device, *headless.Backend) {
	t.Helper()
	b := headless.New()
	require.NoError(t, b.Init())
	t.Cleanup(b.Close)
	return render.NewDevice(b), b
}

func newTarget(t *testing.T, d *render.Device, label string, w, h int) *render.RenderTarget {
	t.Helper()
	rt, err := d.NewTarget(render.DefaultTargetDescriptor(label, w, h))
	require.NoError(t, err)
	return rt
}

func fill(rt *render.RenderTarget, r image.Rectangle, c gputypes.Color) {
	rt.Framebuffer().(*headless.Framebuffer).Fill(r, c)
}

func TestTargetDescriptorValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*render.TargetDescriptor)
		wantErr bool
	}{
		{"default", func(*render.TargetDescriptor) {}, false},
		{"zero width", func(d *render.TargetDescriptor) { d.Width = 0 }, true},
		{"negative height", func(d *render.TargetDescriptor) { d.Height = -1 }, true},
		{"no depth", func(d *render.TargetDescriptor) { d.DepthFormat = gputypes.TextureFormatUndefined }, false},
		{"color depth format", func(d *render.TargetDescriptor) { d.ColorFormat = gputypes.TextureFormatDepth32Float }, true},
		{"depth color format", func(d *render.TargetDescriptor) { d.DepthFormat = gputypes.TextureFormatRGBA8Unorm }, true},
		{"no render attachment", func(d *render.TargetDescriptor) { d.Usage = gputypes.TextureUsageCopySrc }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc := render.DefaultTargetDescriptor("t", 8, 8)
			tt.mutate(&desc)
			err := desc.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	err := render.DefaultTargetDescriptor("t", 0, 8).Validate()
	assert.ErrorIs(t, err, render.ErrInvalidDimensions)
}

func TestDeviceBindSlot(t *testing.T) {
	if contract.Enabled {
		t.Skip("double bind panics under varletdebug")
	}
	d, b := newDevice(t)
	first := newTarget(t, d, "first", 4, 4)
	second := newTarget(t, d, "second", 4, 4)

	require.NoError(t, first.Bind())
	assert.True(t, first.Bound())
	assert.Same(t, first, d.Active())
	assert.Equal(t, first.Framebuffer().ID(), b.BoundFramebuffer())
	assert.Equal(t, image.Rect(0, 0, 4, 4), b.CurrentViewport())

	err := second.Bind()
	assert.ErrorIs(t, err, render.ErrTargetBound)
	assert.Same(t, first, d.Active(), "failed bind leaves the slot untouched")

	assert.ErrorIs(t, second.UnBind(), render.ErrTargetNotBound)
	require.NoError(t, first.UnBind())
	assert.Nil(t, d.Active())
	assert.Zero(t, b.BoundFramebuffer())

	require.NoError(t, second.Bind())
	require.NoError(t, second.UnBind())
}

func TestDeviceBindPanicsUnderDebug(t *testing.T) {
	if !contract.Enabled {
		t.Skip("assertions disabled")
	}
	d, _ := newDevice(t)
	first := newTarget(t, d, "first", 4, 4)
	second := newTarget(t, d, "second", 4, 4)
	require.NoError(t, first.Bind())
	assert.Panics(t, func() { _ = second.Bind() })
}

func TestBindDestroyedTarget(t *testing.T) {
	d, _ := newDevice(t)
	rt := newTarget(t, d, "gone", 2, 2)
	rt.Destroy()
	rt.Destroy()

	assert.True(t, rt.Destroyed())
	assert.Nil(t, rt.Texture())
	assert.ErrorIs(t, rt.Bind(), render.ErrDestroyed)
	_, err := rt.ReadPixel(0, 0)
	assert.ErrorIs(t, err, render.ErrDestroyed)
}

func TestDestroyBoundTargetUnbinds(t *testing.T) {
	logs := observeLogs(t)
	d, b := newDevice(t)
	rt := newTarget(t, d, "bound", 2, 2)
	require.NoError(t, rt.Bind())

	rt.Destroy()
	assert.Nil(t, d.Active())
	assert.Zero(t, b.BoundFramebuffer())
	assert.Equal(t, 1, logs.FilterMessage("destroying a bound render target").Len())
	assert.Zero(t, b.Stats().Framebuffers)
}

func TestNewTargetErrors(t *testing.T) {
	d, _ := newDevice(t)
	_, err := d.NewTarget(render.DefaultTargetDescriptor("bad", 0, 10))
	assert.ErrorIs(t, err, render.ErrInvalidDimensions)

	uninit := render.NewDevice(headless.New())
	_, err = uninit.NewTarget(render.DefaultTargetDescriptor("early", 4, 4))
	assert.Error(t, err)
}

func TestReadPixelTopLeftOrigin(t *testing.T) {
	d, _ := newDevice(t)
	rt := newTarget(t, d, "read", 4, 2)
	fill(rt, image.Rect(0, 0, 1, 1), gputypes.Color{G: 1, A: 1})

	px, err := rt.ReadPixel(0, 0)
	require.NoError(t, err)
	assert.Equal(t, [4]byte{0, 255, 0, 255}, px)

	px, err = rt.ReadPixel(0, 1)
	require.NoError(t, err)
	assert.Equal(t, [4]byte{}, px)

	for _, p := range []image.Point{{-1, 0}, {0, -1}, {4, 0}, {0, 2}} {
		_, err := rt.ReadPixel(p.X, p.Y)
		assert.ErrorIs(t, err, render.ErrOutOfBounds, "ReadPixel(%d, %d)", p.X, p.Y)
	}
}

func TestReadPixelRequiresCopySrc(t *testing.T) {
	d, _ := newDevice(t)
	desc := render.DefaultTargetDescriptor("sample-only", 2, 2)
	desc.Usage = gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding
	rt, err := d.NewTarget(desc)
	require.NoError(t, err)

	_, err = rt.ReadPixel(0, 0)
	assert.ErrorIs(t, err, render.ErrNoReadback)
	_, err = rt.ReadImage()
	assert.ErrorIs(t, err, render.ErrNoReadback)
}

func TestReadImage(t *testing.T) {
	d, _ := newDevice(t)
	rt := newTarget(t, d, "snapshot", 3, 2)
	fill(rt, image.Rect(2, 1, 3, 2), gputypes.Color{R: 1, A: 1})

	img, err := rt.ReadImage()
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.RGBAAt(2, 1))
	assert.Equal(t, color.RGBA{}, img.RGBAAt(0, 0))
}

func TestTargetAccessors(t *testing.T) {
	d, _ := newDevice(t)
	rt := newTarget(t, d, "info", 6, 3)
	assert.Equal(t, 6, rt.Width())
	assert.Equal(t, 3, rt.Height())
	assert.Equal(t, "info", rt.Label())
	assert.Equal(t, gputypes.TextureFormatRGBA8Unorm, rt.Format())
	require.NotNil(t, rt.Texture())
	assert.Equal(t, 6, rt.Texture().Width())
	assert.False(t, rt.Bound())
}
