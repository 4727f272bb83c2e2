package shader

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/gogpu/varlet"
	"github.com/gogpu/varlet/backend"
)

// Sources holds the per-stage source text. Empty stages are skipped.
type Sources struct {
	Vertex   string
	Fragment string
	Geometry string
}

type stageSource struct {
	stage  backend.Stage
	source string
}

func (s Sources) stages() [3]stageSource {
	return [3]stageSource{
		{backend.StageVertex, s.Vertex},
		{backend.StageFragment, s.Fragment},
		{backend.StageGeometry, s.Geometry},
	}
}

// Shader is a linked backend program plus the uniform table reflected
// from its sources.
//
// Setters look the uniform location up by exact name and cache it.
// Setting a name the program does not declare is a silent no-op.
type Shader struct {
	b         backend.Programs
	program   uint32
	label     string
	linked    bool
	destroyed bool

	uniforms  []Uniform
	locations map[string]int32
}

// New compiles each non-empty stage, links the program and deletes the
// stage objects. Compile and link failures are logged as warnings and
// never fatal: the returned shader is always usable, possibly as a no-op.
func New(b backend.Programs, src Sources, opts ...Option) *Shader {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := &Shader{
		b:         b,
		label:     o.label,
		locations: make(map[string]int32),
	}
	log := varlet.Logger()

	s.program = b.CreateProgram()

	var compiled []uint32
	for _, st := range src.stages() {
		if st.source == "" {
			continue
		}
		if o.reflect {
			s.uniforms = append(s.uniforms, ExtractUniforms(st.source, o.types)...)
		}
		id, infoLog, ok := b.CompileShader(st.stage, st.source)
		if !ok {
			log.Warn("shader compile error",
				zap.Uint32("shader", id),
				zap.Stringer("stage", st.stage),
				zap.String("label", s.label),
				zap.String("log", infoLog))
		}
		if id != 0 {
			b.AttachShader(s.program, id)
			compiled = append(compiled, id)
		}
	}

	infoLog, ok := b.LinkProgram(s.program)
	if !ok {
		log.Warn("shader program link error",
			zap.Uint32("program", s.program),
			zap.String("label", s.label),
			zap.String("log", infoLog))
	}
	s.linked = ok

	for _, id := range compiled {
		b.DeleteShader(id)
	}
	return s
}

// ID returns the backend program id.
func (s *Shader) ID() uint32 { return s.program }

// Label returns the diagnostic label.
func (s *Shader) Label() string { return s.label }

// Linked reports whether the program linked successfully.
func (s *Shader) Linked() bool { return s.linked }

// Uniforms returns the reflected uniform table in source order.
func (s *Shader) Uniforms() []Uniform {
	out := make([]Uniform, len(s.uniforms))
	copy(out, s.uniforms)
	return out
}

// Uniform returns the first reflected uniform with the given name.
func (s *Shader) Uniform(name string) (Uniform, bool) {
	for _, u := range s.uniforms {
		if u.Name == name {
			return u, true
		}
	}
	return Uniform{}, false
}

// Use activates the program for subsequent draws.
func (s *Shader) Use() {
	if s.destroyed {
		return
	}
	s.b.UseProgram(s.program)
}

// Destroy deletes the program. Later calls are no-ops.
func (s *Shader) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	s.b.DeleteProgram(s.program)
	clear(s.locations)
}

// Destroyed reports whether Destroy has been called.
func (s *Shader) Destroyed() bool { return s.destroyed }

func (s *Shader) location(name string) int32 {
	if s.destroyed {
		return backend.InvalidLocation
	}
	if loc, ok := s.locations[name]; ok {
		return loc
	}
	loc := s.b.UniformLocation(s.program, name)
	s.locations[name] = loc
	return loc
}

func (s *Shader) ints(name string, v ...int32) {
	if loc := s.location(name); loc != backend.InvalidLocation {
		s.b.UniformInts(s.program, loc, v)
	}
}

func (s *Shader) uints(name string, v ...uint32) {
	if loc := s.location(name); loc != backend.InvalidLocation {
		s.b.UniformUints(s.program, loc, v)
	}
}

func (s *Shader) floats(name string, v ...float32) {
	if loc := s.location(name); loc != backend.InvalidLocation {
		s.b.UniformFloats(s.program, loc, v)
	}
}

func (s *Shader) doubles(name string, v ...float64) {
	if loc := s.location(name); loc != backend.InvalidLocation {
		s.b.UniformDoubles(s.program, loc, v)
	}
}

func (s *Shader) matrix(name string, order int, m []float32) {
	if loc := s.location(name); loc != backend.InvalidLocation {
		s.b.UniformMatrix(s.program, loc, order, m)
	}
}

// SetBool sets a bool uniform.
func (s *Shader) SetBool(name string, v bool) { s.ints(name, boolInts(v)...) }

// SetInt32 sets an int uniform.
func (s *Shader) SetInt32(name string, v int32) { s.ints(name, v) }

// SetUInt32 sets a uint uniform.
func (s *Shader) SetUInt32(name string, v uint32) { s.uints(name, v) }

// SetFloat sets a float uniform.
func (s *Shader) SetFloat(name string, v float32) { s.floats(name, v) }

// SetDouble sets a double uniform.
func (s *Shader) SetDouble(name string, v float64) { s.doubles(name, v) }

// SetBVec2 sets a bvec2 uniform.
func (s *Shader) SetBVec2(name string, v BVec2) { s.ints(name, boolInts(v[:]...)...) }

// SetBVec3 sets a bvec3 uniform.
func (s *Shader) SetBVec3(name string, v BVec3) { s.ints(name, boolInts(v[:]...)...) }

// SetBVec4 sets a bvec4 uniform.
func (s *Shader) SetBVec4(name string, v BVec4) { s.ints(name, boolInts(v[:]...)...) }

// SetIVec2 sets an ivec2 uniform.
func (s *Shader) SetIVec2(name string, v IVec2) { s.ints(name, v[:]...) }

// SetIVec3 sets an ivec3 uniform.
func (s *Shader) SetIVec3(name string, v IVec3) { s.ints(name, v[:]...) }

// SetIVec4 sets an ivec4 uniform.
func (s *Shader) SetIVec4(name string, v IVec4) { s.ints(name, v[:]...) }

// SetUVec2 sets a uvec2 uniform.
func (s *Shader) SetUVec2(name string, v UVec2) { s.uints(name, v[:]...) }

// SetUVec3 sets a uvec3 uniform.
func (s *Shader) SetUVec3(name string, v UVec3) { s.uints(name, v[:]...) }

// SetUVec4 sets a uvec4 uniform.
func (s *Shader) SetUVec4(name string, v UVec4) { s.uints(name, v[:]...) }

// SetVec2 sets a vec2 uniform.
func (s *Shader) SetVec2(name string, v mgl32.Vec2) { s.floats(name, v[:]...) }

// SetVec3 sets a vec3 uniform.
func (s *Shader) SetVec3(name string, v mgl32.Vec3) { s.floats(name, v[:]...) }

// SetVec4 sets a vec4 uniform.
func (s *Shader) SetVec4(name string, v mgl32.Vec4) { s.floats(name, v[:]...) }

// SetDVec2 sets a dvec2 uniform.
func (s *Shader) SetDVec2(name string, v mgl64.Vec2) { s.doubles(name, v[:]...) }

// SetDVec3 sets a dvec3 uniform.
func (s *Shader) SetDVec3(name string, v mgl64.Vec3) { s.doubles(name, v[:]...) }

// SetDVec4 sets a dvec4 uniform.
func (s *Shader) SetDVec4(name string, v mgl64.Vec4) { s.doubles(name, v[:]...) }

// SetMat2 uploads a column-major 2x2 matrix without transpose.
func (s *Shader) SetMat2(name string, m mgl32.Mat2) { s.matrix(name, 2, m[:]) }

// SetMat3 uploads a column-major 3x3 matrix without transpose.
func (s *Shader) SetMat3(name string, m mgl32.Mat3) { s.matrix(name, 3, m[:]) }

// SetMat4 uploads a column-major 4x4 matrix without transpose.
func (s *Shader) SetMat4(name string, m mgl32.Mat4) { s.matrix(name, 4, m[:]) }

// SetSampler binds a sampler uniform to a texture unit.
func (s *Shader) SetSampler(name string, unit int32) { s.ints(name, unit) }

// Set dispatches on the dynamic type of v to the matching typed setter.
// Samplers are set with an int32 unit. It returns ErrUnsupportedValue for
// Go types no setter accepts and for int values outside the int32 range;
// unknown names are still silent no-ops.
func (s *Shader) Set(name string, v any) error {
	switch v := v.(type) {
	case bool:
		s.SetBool(name, v)
	case int32:
		s.SetInt32(name, v)
	case int:
		if v < math.MinInt32 || v > math.MaxInt32 {
			return fmt.Errorf("shader: set %q to %d: outside int32: %w", name, v, ErrUnsupportedValue)
		}
		s.SetInt32(name, int32(v))
	case uint32:
		s.SetUInt32(name, v)
	case float32:
		s.SetFloat(name, v)
	case float64:
		s.SetDouble(name, v)
	case BVec2:
		s.SetBVec2(name, v)
	case BVec3:
		s.SetBVec3(name, v)
	case BVec4:
		s.SetBVec4(name, v)
	case IVec2:
		s.SetIVec2(name, v)
	case IVec3:
		s.SetIVec3(name, v)
	case IVec4:
		s.SetIVec4(name, v)
	case UVec2:
		s.SetUVec2(name, v)
	case UVec3:
		s.SetUVec3(name, v)
	case UVec4:
		s.SetUVec4(name, v)
	case mgl32.Vec2:
		s.SetVec2(name, v)
	case mgl32.Vec3:
		s.SetVec3(name, v)
	case mgl32.Vec4:
		s.SetVec4(name, v)
	case mgl64.Vec2:
		s.SetDVec2(name, v)
	case mgl64.Vec3:
		s.SetDVec3(name, v)
	case mgl64.Vec4:
		s.SetDVec4(name, v)
	case mgl32.Mat2:
		s.SetMat2(name, v)
	case mgl32.Mat3:
		s.SetMat3(name, v)
	case mgl32.Mat4:
		s.SetMat4(name, v)
	default:
		return fmt.Errorf("shader: set %q to %T: %w", name, v, ErrUnsupportedValue)
	}
	return nil
}
