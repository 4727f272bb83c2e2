package opengl

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/varlet/backend"
)

// Texture is an OpenGL 2D texture.
type Texture struct {
	id     uint32
	width  int
	height int
	format gputypes.TextureFormat
}

func newTexture(width, height int, pix []uint8) *Texture {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	var data unsafe.Pointer
	if len(pix) > 0 {
		data = gl.Ptr(pix)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, data)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return &Texture{id: id, width: width, height: height, format: gputypes.TextureFormatRGBA8Unorm}
}

// CreateTexture uploads img as an RGBA8 texture.
func (b *Backend) CreateTexture(img *image.RGBA) (backend.Texture, error) {
	if img == nil || img.Rect.Dx() <= 0 || img.Rect.Dy() <= 0 {
		return nil, backend.ErrInvalidDimensions
	}
	w, h := img.Rect.Dx(), img.Rect.Dy()
	pix := img.Pix
	if img.Stride != w*4 || img.Rect.Min != (image.Point{}) {
		packed := image.NewRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			off := img.PixOffset(img.Rect.Min.X, img.Rect.Min.Y+y)
			copy(packed.Pix[y*w*4:(y+1)*w*4], img.Pix[off:off+w*4])
		}
		pix = packed.Pix
	}
	return newTexture(w, h, pix), nil
}

// ID returns the GL texture name.
func (t *Texture) ID() uint32 { return t.id }

// Width returns the texture width.
func (t *Texture) Width() int { return t.width }

// Height returns the texture height.
func (t *Texture) Height() int { return t.height }

// Format returns the texture format.
func (t *Texture) Format() gputypes.TextureFormat { return t.format }

// Activate binds the texture to a texture unit.
func (t *Texture) Activate(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
}

// Destroy deletes the texture.
func (t *Texture) Destroy() {
	if t.id == 0 {
		return
	}
	gl.DeleteTextures(1, &t.id)
	t.id = 0
}

// Framebuffer is an OpenGL framebuffer object with a texture color
// attachment and a renderbuffer depth-stencil attachment.
type Framebuffer struct {
	id     uint32
	depth  uint32
	color  *Texture
	width  int
	height int
}

// CreateFramebuffer allocates a framebuffer object and its attachments.
func (b *Backend) CreateFramebuffer(desc backend.FramebufferDescriptor) (backend.Framebuffer, error) {
	if !b.initialized {
		return nil, backend.ErrNotInitialized
	}
	if err := desc.Validate(); err != nil {
		return nil, fmt.Errorf("opengl: framebuffer %dx%d: %w", desc.Width, desc.Height, err)
	}

	fb := &Framebuffer{width: desc.Width, height: desc.Height}
	gl.GenFramebuffers(1, &fb.id)
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.id)

	fb.color = newTexture(desc.Width, desc.Height, nil)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, fb.color.id, 0)

	if desc.DepthFormat != gputypes.TextureFormatUndefined {
		gl.GenRenderbuffers(1, &fb.depth)
		gl.BindRenderbuffer(gl.RENDERBUFFER, fb.depth)
		gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH24_STENCIL8, int32(desc.Width), int32(desc.Height))
		gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
		gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, gl.RENDERBUFFER, fb.depth)
	}

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		fb.Destroy()
		return nil, fmt.Errorf("opengl: status 0x%x: %w", status, backend.ErrIncompleteFramebuffer)
	}
	return fb, nil
}

// ID returns the GL framebuffer name.
func (fb *Framebuffer) ID() uint32 { return fb.id }

// Width returns the attachment width.
func (fb *Framebuffer) Width() int { return fb.width }

// Height returns the attachment height.
func (fb *Framebuffer) Height() int { return fb.height }

// ColorTexture returns the color attachment.
func (fb *Framebuffer) ColorTexture() backend.Texture { return fb.color }

// Destroy deletes the framebuffer and its attachments.
func (fb *Framebuffer) Destroy() {
	if fb.id == 0 {
		return
	}
	fb.color.Destroy()
	if fb.depth != 0 {
		gl.DeleteRenderbuffers(1, &fb.depth)
		fb.depth = 0
	}
	gl.DeleteFramebuffers(1, &fb.id)
	fb.id = 0
}

// BindFramebuffer redirects draws. Nil restores the default framebuffer.
func (b *Backend) BindFramebuffer(fb backend.Framebuffer) {
	if fb == nil {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, fb.ID())
}

// Viewport sets the viewport rectangle.
func (b *Backend) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

// Clear clears color and depth of the bound framebuffer.
func (b *Backend) Clear(c gputypes.Color) {
	gl.ClearColor(float32(c.R), float32(c.G), float32(c.B), float32(c.A))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// ReadPixels reads RGBA8 pixels with the GL bottom-left origin.
func (b *Backend) ReadPixels(fb backend.Framebuffer, x, y, width, height int) ([]byte, error) {
	if fb == nil {
		return nil, fmt.Errorf("opengl: read-back from nil framebuffer: %w", backend.ErrIncompleteFramebuffer)
	}
	if width <= 0 || height <= 0 || x < 0 || y < 0 || x+width > fb.Width() || y+height > fb.Height() {
		return nil, fmt.Errorf("opengl: rect (%d,%d %dx%d) in %dx%d: %w",
			x, y, width, height, fb.Width(), fb.Height(), backend.ErrOutOfBounds)
	}

	out := make([]byte, width*height*4)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, fb.ID())
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(int32(x), int32(y), int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(out))
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	return out, nil
}
