// Package opengl implements the backend contract on OpenGL 4.1 core
// through github.com/go-gl/gl.
//
// The host application owns the window and must make an OpenGL 4.1 core
// context current on the render goroutine before Init is called. All
// calls must then happen on that goroutine (see runtime.LockOSThread).
//
// The backend registers itself as "opengl" and outranks the headless
// backend when both are linked in:
//
//	import _ "github.com/gogpu/varlet/backend/opengl"
package opengl

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/gogpu/varlet"
	"github.com/gogpu/varlet/backend"
)

func init() {
	backend.Register(backend.BackendOpenGL, func() backend.Backend {
		return New()
	})
}

// Backend drives the current OpenGL context.
type Backend struct {
	initialized bool
}

// New creates an uninitialized OpenGL backend.
func New() *Backend {
	return &Backend{}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return backend.BackendOpenGL
}

// Init loads the OpenGL function pointers for the current context.
func (b *Backend) Init() error {
	if b.initialized {
		return nil
	}
	if err := gl.Init(); err != nil {
		return fmt.Errorf("opengl: init: %w", err)
	}
	gl.Enable(gl.DEPTH_TEST)
	b.initialized = true

	varlet.Logger().Info("opengl backend initialized",
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))))
	return nil
}

// Close marks the backend unusable. Objects are owned by their wrappers
// and by the context, which the host destroys.
func (b *Backend) Close() {
	b.initialized = false
}

// Ensure Backend implements backend.Backend.
var _ backend.Backend = (*Backend)(nil)

var glStages = map[backend.Stage]uint32{
	backend.StageVertex:   gl.VERTEX_SHADER,
	backend.StageFragment: gl.FRAGMENT_SHADER,
	backend.StageGeometry: gl.GEOMETRY_SHADER,
}

// CompileShader compiles a single stage.
func (b *Backend) CompileShader(stage backend.Stage, source string) (uint32, string, bool) {
	kind, ok := glStages[stage]
	if !ok {
		return 0, fmt.Sprintf("unsupported stage %s", stage), false
	}
	shader := gl.CreateShader(kind)
	csrc, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		return shader, strings.TrimRight(log, "\x00"), false
	}
	return shader, "", true
}

// DeleteShader deletes a shader object.
func (b *Backend) DeleteShader(id uint32) {
	gl.DeleteShader(id)
}

// CreateProgram creates an empty program object.
func (b *Backend) CreateProgram() uint32 {
	return gl.CreateProgram()
}

// AttachShader attaches a shader to a program.
func (b *Backend) AttachShader(program, shader uint32) {
	gl.AttachShader(program, shader)
}

// LinkProgram links a program and returns the info log on failure.
func (b *Backend) LinkProgram(program uint32) (string, bool) {
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(log))
		return strings.TrimRight(log, "\x00"), false
	}
	return "", true
}

// DeleteProgram deletes a program object.
func (b *Backend) DeleteProgram(program uint32) {
	gl.DeleteProgram(program)
}

// UseProgram installs a program for subsequent draws.
func (b *Backend) UseProgram(program uint32) {
	gl.UseProgram(program)
}

// UniformLocation resolves a uniform by name.
func (b *Backend) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

// UniformInts uploads a bool/int scalar or vector.
func (b *Backend) UniformInts(program uint32, location int32, v []int32) {
	if location < 0 || len(v) == 0 {
		return
	}
	switch len(v) {
	case 1:
		gl.ProgramUniform1iv(program, location, 1, &v[0])
	case 2:
		gl.ProgramUniform2iv(program, location, 1, &v[0])
	case 3:
		gl.ProgramUniform3iv(program, location, 1, &v[0])
	default:
		gl.ProgramUniform4iv(program, location, 1, &v[0])
	}
}

// UniformUints uploads a uint scalar or vector.
func (b *Backend) UniformUints(program uint32, location int32, v []uint32) {
	if location < 0 || len(v) == 0 {
		return
	}
	switch len(v) {
	case 1:
		gl.ProgramUniform1uiv(program, location, 1, &v[0])
	case 2:
		gl.ProgramUniform2uiv(program, location, 1, &v[0])
	case 3:
		gl.ProgramUniform3uiv(program, location, 1, &v[0])
	default:
		gl.ProgramUniform4uiv(program, location, 1, &v[0])
	}
}

// UniformFloats uploads a float scalar or vector.
func (b *Backend) UniformFloats(program uint32, location int32, v []float32) {
	if location < 0 || len(v) == 0 {
		return
	}
	switch len(v) {
	case 1:
		gl.ProgramUniform1fv(program, location, 1, &v[0])
	case 2:
		gl.ProgramUniform2fv(program, location, 1, &v[0])
	case 3:
		gl.ProgramUniform3fv(program, location, 1, &v[0])
	default:
		gl.ProgramUniform4fv(program, location, 1, &v[0])
	}
}

// UniformDoubles uploads a double scalar or vector.
func (b *Backend) UniformDoubles(program uint32, location int32, v []float64) {
	if location < 0 || len(v) == 0 {
		return
	}
	switch len(v) {
	case 1:
		gl.ProgramUniform1dv(program, location, 1, &v[0])
	case 2:
		gl.ProgramUniform2dv(program, location, 1, &v[0])
	case 3:
		gl.ProgramUniform3dv(program, location, 1, &v[0])
	default:
		gl.ProgramUniform4dv(program, location, 1, &v[0])
	}
}

// UniformMatrix uploads a column-major matrix without transpose.
func (b *Backend) UniformMatrix(program uint32, location int32, order int, m []float32) {
	if location < 0 || len(m) < order*order {
		return
	}
	switch order {
	case 2:
		gl.ProgramUniformMatrix2fv(program, location, 1, false, &m[0])
	case 3:
		gl.ProgramUniformMatrix3fv(program, location, 1, false, &m[0])
	case 4:
		gl.ProgramUniformMatrix4fv(program, location, 1, false, &m[0])
	}
}
