// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"image"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/gogpu/varlet"
	"github.com/gogpu/varlet/asset"
	"github.com/gogpu/varlet/backend"
	"github.com/gogpu/varlet/internal/cache"
)

// Texture is a sampled 2D texture uploaded from an image.
type Texture struct {
	tex backend.Texture
}

// NewTexture uploads img.
func NewTexture(d *Device, img *image.RGBA) (*Texture, error) {
	tex, err := d.b.CreateTexture(img)
	if err != nil {
		return nil, fmt.Errorf("render: upload texture: %w", err)
	}
	return &Texture{tex: tex}, nil
}

// LoadTexture decodes the image at path and uploads it.
func LoadTexture(d *Device, path string) (*Texture, error) {
	img, err := asset.LoadImage(path)
	if err != nil {
		return nil, err
	}
	return NewTexture(d, img)
}

// Backend returns the backend texture.
func (t *Texture) Backend() backend.Texture { return t.tex }

// Width returns the texture width.
func (t *Texture) Width() int { return t.tex.Width() }

// Height returns the texture height.
func (t *Texture) Height() int { return t.tex.Height() }

// Bind activates the texture on unit.
func (t *Texture) Bind(unit uint32) { t.tex.Activate(unit) }

// Destroy releases the texture.
func (t *Texture) Destroy() { t.tex.Destroy() }

// TextureCache shares textures loaded from disk by path. Textures evicted
// past the limit, or dropped by Close, are destroyed.
type TextureCache struct {
	device *Device
	lru    *cache.LRU[string, *Texture]
}

// NewTextureCache creates a cache holding at most limit textures.
func NewTextureCache(d *Device, limit int) *TextureCache {
	return &TextureCache{
		device: d,
		lru: cache.New(limit, func(path string, t *Texture) {
			varlet.Logger().Debug("texture released", zap.String("path", path))
			t.Destroy()
		}),
	}
}

// Load returns the texture for path, decoding and uploading it on first use.
func (c *TextureCache) Load(path string) (*Texture, error) {
	return c.lru.GetOrLoad(filepath.Clean(path), func() (*Texture, error) {
		return LoadTexture(c.device, path)
	})
}

// Len returns the number of cached textures.
func (c *TextureCache) Len() int { return c.lru.Len() }

// Close destroys every cached texture.
func (c *TextureCache) Close() { c.lru.Clear() }
