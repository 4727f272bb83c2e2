package backend

import (
	"errors"
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not registered.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")

	// ErrInvalidDimensions is returned when a framebuffer or texture size is not positive.
	ErrInvalidDimensions = errors.New("backend: invalid dimensions")

	// ErrIncompleteFramebuffer is returned when the backend rejects a framebuffer.
	ErrIncompleteFramebuffer = errors.New("backend: incomplete framebuffer")

	// ErrOutOfBounds is returned when a read-back rectangle leaves the framebuffer.
	ErrOutOfBounds = errors.New("backend: read-back out of bounds")
)

// InvalidLocation is the uniform location returned for names the linked
// program does not declare. Uploads to it are ignored.
const InvalidLocation int32 = -1

// Stage identifies a programmable pipeline stage.
type Stage uint8

// Pipeline stages supported by shader programs.
const (
	StageVertex Stage = iota
	StageFragment
	StageGeometry
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageGeometry:
		return "geometry"
	default:
		return "unknown"
	}
}

// GPUStage maps the stage onto the WebGPU stage flags. Geometry has no
// WebGPU equivalent and maps to ShaderStageNone.
func (s Stage) GPUStage() gputypes.ShaderStage {
	switch s {
	case StageVertex:
		return gputypes.ShaderStageVertex
	case StageFragment:
		return gputypes.ShaderStageFragment
	default:
		return gputypes.ShaderStageNone
	}
}

// Vertex is the interleaved vertex layout used by every vertex array:
// position (location 0), normal (location 1), uv (location 2).
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
}

// VertexStride is the size of Vertex in bytes.
const VertexStride = 8 * 4

// Backend is the opaque graphics API capability.
//
// One backend is selected at startup (see Select) and shared by every
// shader, render target and mesh. Backends are not safe for concurrent
// use; all calls happen on the render goroutine.
type Backend interface {
	// Name returns the backend identifier (e.g., "headless", "opengl").
	Name() string

	// Init initializes the backend.
	// This must be called before any other operation.
	Init() error

	// Close releases all backend resources.
	// The backend should not be used after Close is called.
	Close()

	Programs
	Targets
	Geometry
}

// Programs covers shader compilation, linking and uniform upload.
//
// Uniform uploads address the program explicitly and do not depend on
// the program activated with UseProgram. Vector width is the slice
// length (1 to 4).
type Programs interface {
	// CompileShader compiles one stage. The returned id is non-zero even
	// when compilation fails; ok reports success and infoLog carries the
	// backend diagnostics.
	CompileShader(stage Stage, source string) (id uint32, infoLog string, ok bool)
	DeleteShader(id uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32) (infoLog string, ok bool)
	DeleteProgram(program uint32)
	UseProgram(program uint32)

	// UniformLocation returns InvalidLocation for unknown names.
	UniformLocation(program uint32, name string) int32
	UniformInts(program uint32, location int32, v []int32)
	UniformUints(program uint32, location int32, v []uint32)
	UniformFloats(program uint32, location int32, v []float32)
	UniformDoubles(program uint32, location int32, v []float64)
	// UniformMatrix uploads an order x order column-major matrix without transpose.
	UniformMatrix(program uint32, location int32, order int, m []float32)
}

// Targets covers off-screen framebuffers, textures and read-back.
type Targets interface {
	CreateFramebuffer(desc FramebufferDescriptor) (Framebuffer, error)

	// BindFramebuffer redirects draw output. Nil restores the default surface.
	BindFramebuffer(fb Framebuffer)

	// ReadPixels returns tightly packed RGBA8 rows for the rectangle.
	// Coordinates use the backend's native bottom-left origin and rows
	// are returned bottom row first.
	ReadPixels(fb Framebuffer, x, y, width, height int) ([]byte, error)

	Clear(c gputypes.Color)
	Viewport(x, y, width, height int)

	CreateTexture(img *image.RGBA) (Texture, error)
}

// Geometry covers vertex arrays and indexed draws.
type Geometry interface {
	CreateVertexArray(vertices []Vertex, indices []uint32) (VertexArray, error)
	DrawIndexed(va VertexArray)
}

// FramebufferDescriptor describes an off-screen render target.
type FramebufferDescriptor struct {
	// Label is an optional debug label.
	Label string

	// Width and Height are the attachment sizes in pixels.
	Width  int
	Height int

	// ColorFormat is the color attachment format.
	ColorFormat gputypes.TextureFormat

	// DepthFormat is the depth attachment format.
	// TextureFormatUndefined means no depth attachment.
	DepthFormat gputypes.TextureFormat
}

// DefaultFramebufferDescriptor returns an RGBA8 color + depth24/stencil8 descriptor.
func DefaultFramebufferDescriptor(width, height int) FramebufferDescriptor {
	return FramebufferDescriptor{
		Width:       width,
		Height:      height,
		ColorFormat: gputypes.TextureFormatRGBA8Unorm,
		DepthFormat: gputypes.TextureFormatDepth24PlusStencil8,
	}
}

// Validate checks the descriptor dimensions.
func (d FramebufferDescriptor) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return ErrInvalidDimensions
	}
	return nil
}

// Framebuffer is a backend render target with a color texture attachment.
type Framebuffer interface {
	ID() uint32
	Width() int
	Height() int

	// ColorTexture returns the color attachment.
	ColorTexture() Texture

	// Destroy releases the framebuffer and its attachments.
	// Calling Destroy more than once is a no-op.
	Destroy()
}

// Texture is a backend texture.
//
// Texture satisfies gpucontext.Texture so display code can size it
// without depending on the backend.
type Texture interface {
	gpucontext.Texture

	ID() uint32
	Format() gputypes.TextureFormat

	// Activate binds the texture to the given texture unit.
	Activate(unit uint32)

	// Destroy releases the texture.
	// Calling Destroy more than once is a no-op.
	Destroy()
}

// VertexArray is a GPU-resident vertex/index buffer pairing.
type VertexArray interface {
	ID() uint32
	IndexCount() int

	// Destroy releases the buffers.
	// Calling Destroy more than once is a no-op.
	Destroy()
}
