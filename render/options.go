// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/gogpu/gputypes"

// Option configures a Renderer.
type Option func(*options)

type options struct {
	selection bool
	clear     gputypes.Color
	width     int
	height    int
}

func defaultOptions() options {
	return options{
		clear:  gputypes.Color{R: 0.1, G: 0.1, B: 0.1, A: 1},
		width:  DefaultWidth,
		height: DefaultHeight,
	}
}

// WithSelection enables the per-frame selection pass used by Pick.
func WithSelection(enabled bool) Option {
	return func(o *options) {
		o.selection = enabled
	}
}

// WithClearColor sets the clear color of cameras the renderer allocates.
func WithClearColor(c gputypes.Color) Option {
	return func(o *options) {
		o.clear = c
	}
}

// WithResolution sets the initial size of cameras the renderer allocates.
// Non-positive values keep the 960x540 default.
func WithResolution(width, height int) Option {
	return func(o *options) {
		if width > 0 && height > 0 {
			o.width, o.height = width, height
		}
	}
}
