package headless

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/varlet/backend"
)

// Texture is a CPU-resident RGBA8 texture.
type Texture struct {
	owner  *Backend
	id     uint32
	format gputypes.TextureFormat
	img    *image.RGBA
	unit   uint32
}

// CreateTexture copies img into a new texture.
func (b *Backend) CreateTexture(img *image.RGBA) (backend.Texture, error) {
	if img == nil || img.Rect.Dx() <= 0 || img.Rect.Dy() <= 0 {
		return nil, backend.ErrInvalidDimensions
	}
	cp := image.NewRGBA(image.Rect(0, 0, img.Rect.Dx(), img.Rect.Dy()))
	for y := 0; y < cp.Rect.Dy(); y++ {
		src := img.Pix[img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y):]
		copy(cp.Pix[y*cp.Stride:y*cp.Stride+cp.Rect.Dx()*4], src[:cp.Rect.Dx()*4])
	}
	return b.newTexture(cp), nil
}

func (b *Backend) newTexture(img *image.RGBA) *Texture {
	t := &Texture{
		owner:  b,
		id:     b.allocID(),
		format: gputypes.TextureFormatRGBA8Unorm,
		img:    img,
	}
	b.textures[t.id] = t
	return t
}

// ID returns the texture id.
func (t *Texture) ID() uint32 { return t.id }

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return t.img.Rect.Dx() }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return t.img.Rect.Dy() }

// Format returns the texture format.
func (t *Texture) Format() gputypes.TextureFormat { return t.format }

// Activate records the texture unit.
func (t *Texture) Activate(unit uint32) { t.unit = unit }

// Unit returns the last unit passed to Activate.
func (t *Texture) Unit() uint32 { return t.unit }

// Image returns the texture storage in top-left row order.
func (t *Texture) Image() *image.RGBA { return t.img }

// Destroy releases the texture.
func (t *Texture) Destroy() {
	if t.owner == nil {
		return
	}
	delete(t.owner.textures, t.id)
	t.owner = nil
}

// Ensure Texture implements backend.Texture.
var _ backend.Texture = (*Texture)(nil)

// Framebuffer is an off-screen target backed by an RGBA image and a
// float depth plane.
type Framebuffer struct {
	owner *Backend
	id    uint32
	desc  backend.FramebufferDescriptor
	color *Texture
	depth []float32
}

// CreateFramebuffer allocates color and optional depth storage.
func (b *Backend) CreateFramebuffer(desc backend.FramebufferDescriptor) (backend.Framebuffer, error) {
	if !b.initialized {
		return nil, backend.ErrNotInitialized
	}
	if err := desc.Validate(); err != nil {
		return nil, fmt.Errorf("headless: framebuffer %dx%d: %w", desc.Width, desc.Height, err)
	}
	if desc.ColorFormat != gputypes.TextureFormatRGBA8Unorm {
		return nil, fmt.Errorf("headless: color format %v: %w", desc.ColorFormat, backend.ErrIncompleteFramebuffer)
	}

	fb := &Framebuffer{
		owner: b,
		id:    b.allocID(),
		desc:  desc,
		color: b.newTexture(image.NewRGBA(image.Rect(0, 0, desc.Width, desc.Height))),
	}
	if desc.DepthFormat != gputypes.TextureFormatUndefined {
		fb.depth = make([]float32, desc.Width*desc.Height)
		for i := range fb.depth {
			fb.depth[i] = 1
		}
	}
	b.framebuffers[fb.id] = fb
	return fb, nil
}

// ID returns the framebuffer id.
func (fb *Framebuffer) ID() uint32 { return fb.id }

// Width returns the attachment width.
func (fb *Framebuffer) Width() int { return fb.desc.Width }

// Height returns the attachment height.
func (fb *Framebuffer) Height() int { return fb.desc.Height }

// ColorTexture returns the color attachment.
func (fb *Framebuffer) ColorTexture() backend.Texture { return fb.color }

// Image returns the color attachment storage in top-left row order.
func (fb *Framebuffer) Image() *image.RGBA { return fb.color.img }

// Destroyed reports whether Destroy has been called.
func (fb *Framebuffer) Destroyed() bool { return fb.owner == nil }

// Destroy releases the framebuffer and its color attachment.
func (fb *Framebuffer) Destroy() {
	if fb.owner == nil {
		return
	}
	if fb.owner.bound == fb {
		fb.owner.bound = nil
	}
	delete(fb.owner.framebuffers, fb.id)
	fb.color.Destroy()
	fb.owner = nil
}

// Ensure Framebuffer implements backend.Framebuffer.
var _ backend.Framebuffer = (*Framebuffer)(nil)

// BindFramebuffer redirects Clear and draws. Nil restores the default surface.
func (b *Backend) BindFramebuffer(fb backend.Framebuffer) {
	if fb == nil {
		b.bound = nil
		return
	}
	hfb, ok := fb.(*Framebuffer)
	if !ok || hfb.owner != b {
		b.bound = nil
		return
	}
	b.bound = hfb
}

// BoundFramebuffer returns the id of the bound framebuffer, 0 for the
// default surface.
func (b *Backend) BoundFramebuffer() uint32 {
	if b.bound == nil {
		return 0
	}
	return b.bound.id
}

// Viewport records the viewport rectangle.
func (b *Backend) Viewport(x, y, width, height int) {
	b.viewport = image.Rect(x, y, x+width, y+height)
}

// CurrentViewport returns the last viewport rectangle.
func (b *Backend) CurrentViewport() image.Rectangle {
	return b.viewport
}

// Clear fills the bound framebuffer with c and resets its depth plane.
// Clearing the default surface is a no-op.
func (b *Backend) Clear(c gputypes.Color) {
	fb := b.bound
	if fb == nil {
		return
	}
	rgba := colorRGBA(c)
	pix := fb.color.img.Pix
	for i := 0; i < len(pix); i += 4 {
		copy(pix[i:i+4], rgba[:])
	}
	for i := range fb.depth {
		fb.depth[i] = 1
	}
}

// ReadPixels copies a rectangle of the color attachment. Coordinates use
// a bottom-left origin and rows are returned bottom row first.
func (b *Backend) ReadPixels(fb backend.Framebuffer, x, y, width, height int) ([]byte, error) {
	hfb, ok := fb.(*Framebuffer)
	if !ok || hfb == nil || hfb.owner != b {
		return nil, fmt.Errorf("headless: read-back from foreign framebuffer: %w", backend.ErrIncompleteFramebuffer)
	}
	w, h := hfb.Width(), hfb.Height()
	if width <= 0 || height <= 0 || x < 0 || y < 0 || x+width > w || y+height > h {
		return nil, fmt.Errorf("headless: rect (%d,%d %dx%d) in %dx%d: %w", x, y, width, height, w, h, backend.ErrOutOfBounds)
	}

	img := hfb.color.img
	out := make([]byte, 0, width*height*4)
	for row := y; row < y+height; row++ {
		// Storage is top-left; flip to the bottom-left convention.
		off := img.PixOffset(x, h-1-row)
		out = append(out, img.Pix[off:off+width*4]...)
	}
	return out, nil
}

// Fill writes c into rect (top-left origin). Draws are not rasterized,
// so tests use Fill to place known colors for read-back.
func (fb *Framebuffer) Fill(rect image.Rectangle, c gputypes.Color) {
	rgba := colorRGBA(c)
	rect = rect.Intersect(fb.color.img.Rect)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			off := fb.color.img.PixOffset(x, y)
			copy(fb.color.img.Pix[off:off+4], rgba[:])
		}
	}
}
