// Package headless provides an in-memory graphics backend.
//
// The headless backend keeps every object (shaders, programs,
// framebuffers, textures, vertex arrays) in Go memory. Shader sources
// get a light driver-style validation (a main entry point and balanced
// delimiters), uniform locations are assigned from the declarations of
// the linked stages, framebuffers are CPU images that support Clear and
// read-back, and indexed draws are recorded rather than rasterized.
//
// It is registered as "headless" and is the lowest-priority backend:
//
//	import _ "github.com/gogpu/varlet/backend/headless"
//
// Tests use it as a fake GPU: Uniform, Draws and Stats expose the state
// a real driver would hide.
package headless

import (
	"fmt"
	"image"
	"regexp"
	"strings"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/varlet/backend"
)

// init registers the headless backend on package import.
func init() {
	backend.Register(backend.BackendHeadless, func() backend.Backend {
		return New()
	})
}

// Backend is the in-memory backend. The zero value is not usable; call New.
type Backend struct {
	initialized bool
	nextID      uint32

	shaders      map[uint32]*shaderObject
	programs     map[uint32]*program
	framebuffers map[uint32]*Framebuffer
	textures     map[uint32]*Texture
	vertexArrays map[uint32]*VertexArray

	current  uint32
	bound    *Framebuffer
	viewport image.Rectangle
	draws    []DrawCall
}

// New creates an uninitialized headless backend.
func New() *Backend {
	return &Backend{
		shaders:      make(map[uint32]*shaderObject),
		programs:     make(map[uint32]*program),
		framebuffers: make(map[uint32]*Framebuffer),
		textures:     make(map[uint32]*Texture),
		vertexArrays: make(map[uint32]*VertexArray),
	}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return backend.BackendHeadless
}

// Init initializes the backend.
func (b *Backend) Init() error {
	b.initialized = true
	return nil
}

// Initialized reports whether Init has been called.
func (b *Backend) Initialized() bool {
	return b.initialized
}

// Close releases all backend resources.
func (b *Backend) Close() {
	for _, fb := range b.framebuffers {
		fb.Destroy()
	}
	for _, tex := range b.textures {
		tex.Destroy()
	}
	for _, va := range b.vertexArrays {
		va.Destroy()
	}
	clear(b.shaders)
	clear(b.programs)
	b.current = 0
	b.bound = nil
	b.draws = nil
	b.initialized = false
}

func (b *Backend) allocID() uint32 {
	b.nextID++
	return b.nextID
}

// Stats counts live backend objects.
type Stats struct {
	Shaders      int
	Programs     int
	Framebuffers int
	Textures     int
	VertexArrays int
}

// Stats returns the number of live objects of each kind.
// Framebuffer color attachments are counted as textures.
func (b *Backend) Stats() Stats {
	return Stats{
		Shaders:      len(b.shaders),
		Programs:     len(b.programs),
		Framebuffers: len(b.framebuffers),
		Textures:     len(b.textures),
		VertexArrays: len(b.vertexArrays),
	}
}

// Ensure Backend implements backend.Backend.
var _ backend.Backend = (*Backend)(nil)

// ---------------------------------------------------------------------------
// Programs
// ---------------------------------------------------------------------------

type shaderObject struct {
	stage    backend.Stage
	source   string
	compiled bool
	log      string
}

type program struct {
	attached []uint32
	linked   bool
	log      string
	// locations maps declared uniform names to locations, assigned in
	// declaration order across the attached stages.
	locations map[string]int32
	values    map[int32]UniformValue
	writes    int
}

var (
	mainPattern    = regexp.MustCompile(`\bvoid\s+main\s*\(\s*(void)?\s*\)`)
	uniformPattern = regexp.MustCompile(`\buniform\s+(?:(?:lowp|mediump|highp)\s+)?(\w+)\s+(\w+)\s*(\[\s*\d*\s*\])?\s*[;=,\[]`)
)

// CompileShader validates the source and stores it.
func (b *Backend) CompileShader(stage backend.Stage, source string) (uint32, string, bool) {
	id := b.allocID()
	obj := &shaderObject{stage: stage, source: source}
	b.shaders[id] = obj

	if msg := validateSource(source); msg != "" {
		obj.log = fmt.Sprintf("0:1(1): error: %s", msg)
		return id, obj.log, false
	}
	obj.compiled = true
	return id, "", true
}

func validateSource(source string) string {
	if strings.TrimSpace(source) == "" {
		return "empty source"
	}
	if !mainPattern.MatchString(source) {
		return "missing entry point 'void main()'"
	}
	for _, pair := range [...][2]byte{{'{', '}'}, {'(', ')'}, {'[', ']'}} {
		if strings.Count(source, string(pair[0])) != strings.Count(source, string(pair[1])) {
			return fmt.Sprintf("unbalanced '%c%c'", pair[0], pair[1])
		}
	}
	return ""
}

// DeleteShader releases a compiled stage. Attached programs keep their
// link result.
func (b *Backend) DeleteShader(id uint32) {
	delete(b.shaders, id)
}

// CreateProgram allocates an empty program.
func (b *Backend) CreateProgram() uint32 {
	id := b.allocID()
	b.programs[id] = &program{
		locations: make(map[string]int32),
		values:    make(map[int32]UniformValue),
	}
	return id
}

// AttachShader attaches a stage to a program.
func (b *Backend) AttachShader(prog, shader uint32) {
	p, ok := b.programs[prog]
	if !ok {
		return
	}
	if _, ok := b.shaders[shader]; !ok {
		return
	}
	p.attached = append(p.attached, shader)
}

// LinkProgram links the attached stages. Linking fails when nothing is
// attached or any attached stage failed to compile.
func (b *Backend) LinkProgram(prog uint32) (string, bool) {
	p, ok := b.programs[prog]
	if !ok {
		return fmt.Sprintf("error: program %d does not exist", prog), false
	}
	p.linked = false
	clear(p.locations)
	clear(p.values)

	if len(p.attached) == 0 {
		p.log = "error: no shaders attached"
		return p.log, false
	}
	for _, id := range p.attached {
		s := b.shaders[id]
		if s == nil || !s.compiled {
			p.log = fmt.Sprintf("error: linking with uncompiled shader %d", id)
			return p.log, false
		}
	}

	var next int32
	for _, id := range p.attached {
		for _, m := range uniformPattern.FindAllStringSubmatch(b.shaders[id].source, -1) {
			name := m[2]
			if _, dup := p.locations[name]; dup {
				continue
			}
			p.locations[name] = next
			next++
		}
	}
	p.linked = true
	p.log = ""
	return "", true
}

// DeleteProgram releases a program.
func (b *Backend) DeleteProgram(prog uint32) {
	delete(b.programs, prog)
	if b.current == prog {
		b.current = 0
	}
}

// UseProgram activates a program for subsequent draws.
func (b *Backend) UseProgram(prog uint32) {
	b.current = prog
}

// CurrentProgram returns the program activated with UseProgram.
func (b *Backend) CurrentProgram() uint32 {
	return b.current
}

// UniformLocation resolves a uniform name on a linked program.
// "name[0]" resolves to the location of array uniform "name".
func (b *Backend) UniformLocation(prog uint32, name string) int32 {
	p, ok := b.programs[prog]
	if !ok || !p.linked {
		return backend.InvalidLocation
	}
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	if base, found := strings.CutSuffix(name, "[0]"); found {
		if loc, ok := p.locations[base]; ok {
			return loc
		}
	}
	return backend.InvalidLocation
}

// UniformKind identifies the upload family of a stored uniform value.
type UniformKind uint8

// Upload families.
const (
	KindInt UniformKind = iota + 1
	KindUint
	KindFloat
	KindDouble
	KindMatrix
)

// UniformValue is the last value uploaded to a uniform location.
type UniformValue struct {
	Kind    UniformKind
	Ints    []int32
	Uints   []uint32
	Floats  []float32
	Doubles []float64
	// Order is the matrix order for KindMatrix.
	Order int
}

func (b *Backend) store(prog uint32, location int32, v UniformValue) {
	if location == backend.InvalidLocation {
		return
	}
	p, ok := b.programs[prog]
	if !ok || !p.linked {
		return
	}
	p.values[location] = v
	p.writes++
}

// UniformInts uploads a bool/int scalar or vector.
func (b *Backend) UniformInts(prog uint32, location int32, v []int32) {
	b.store(prog, location, UniformValue{Kind: KindInt, Ints: append([]int32(nil), v...)})
}

// UniformUints uploads a uint scalar or vector.
func (b *Backend) UniformUints(prog uint32, location int32, v []uint32) {
	b.store(prog, location, UniformValue{Kind: KindUint, Uints: append([]uint32(nil), v...)})
}

// UniformFloats uploads a float scalar or vector.
func (b *Backend) UniformFloats(prog uint32, location int32, v []float32) {
	b.store(prog, location, UniformValue{Kind: KindFloat, Floats: append([]float32(nil), v...)})
}

// UniformDoubles uploads a double scalar or vector.
func (b *Backend) UniformDoubles(prog uint32, location int32, v []float64) {
	b.store(prog, location, UniformValue{Kind: KindDouble, Doubles: append([]float64(nil), v...)})
}

// UniformMatrix uploads a column-major square matrix.
func (b *Backend) UniformMatrix(prog uint32, location int32, order int, m []float32) {
	b.store(prog, location, UniformValue{Kind: KindMatrix, Order: order, Floats: append([]float32(nil), m...)})
}

// Uniform returns the last value uploaded to the named uniform.
func (b *Backend) Uniform(prog uint32, name string) (UniformValue, bool) {
	p, ok := b.programs[prog]
	if !ok {
		return UniformValue{}, false
	}
	loc, ok := p.locations[name]
	if !ok {
		return UniformValue{}, false
	}
	v, ok := p.values[loc]
	return v, ok
}

// UniformWrites returns the number of accepted uploads to a program.
func (b *Backend) UniformWrites(prog uint32) int {
	if p, ok := b.programs[prog]; ok {
		return p.writes
	}
	return 0
}

// Linked reports whether a program exists and linked successfully.
func (b *Backend) Linked(prog uint32) bool {
	p, ok := b.programs[prog]
	return ok && p.linked
}

// ---------------------------------------------------------------------------
// Geometry
// ---------------------------------------------------------------------------

// VertexArray is an in-memory vertex/index buffer pairing.
type VertexArray struct {
	owner    *Backend
	id       uint32
	vertices []backend.Vertex
	indices  []uint32
}

// CreateVertexArray copies the vertex and index data.
func (b *Backend) CreateVertexArray(vertices []backend.Vertex, indices []uint32) (backend.VertexArray, error) {
	for _, idx := range indices {
		if int(idx) >= len(vertices) {
			return nil, fmt.Errorf("headless: index %d out of range for %d vertices", idx, len(vertices))
		}
	}
	va := &VertexArray{
		owner:    b,
		id:       b.allocID(),
		vertices: append([]backend.Vertex(nil), vertices...),
		indices:  append([]uint32(nil), indices...),
	}
	b.vertexArrays[va.id] = va
	return va, nil
}

// ID returns the vertex array id.
func (va *VertexArray) ID() uint32 { return va.id }

// IndexCount returns the number of indices.
func (va *VertexArray) IndexCount() int { return len(va.indices) }

// Vertices returns the stored vertices.
func (va *VertexArray) Vertices() []backend.Vertex { return va.vertices }

// Destroy releases the vertex array.
func (va *VertexArray) Destroy() {
	if va.owner == nil {
		return
	}
	delete(va.owner.vertexArrays, va.id)
	va.owner = nil
}

// DrawCall records one indexed draw.
type DrawCall struct {
	Program     uint32
	VertexArray uint32
	Framebuffer uint32 // 0 for the default surface
	IndexCount  int
}

// DrawIndexed records the draw against the current program and bound framebuffer.
func (b *Backend) DrawIndexed(va backend.VertexArray) {
	if va == nil {
		return
	}
	var fb uint32
	if b.bound != nil {
		fb = b.bound.id
	}
	b.draws = append(b.draws, DrawCall{
		Program:     b.current,
		VertexArray: va.ID(),
		Framebuffer: fb,
		IndexCount:  va.IndexCount(),
	})
}

// Draws returns the recorded draw calls.
func (b *Backend) Draws() []DrawCall {
	return b.draws
}

// ResetDraws clears the recorded draw calls.
func (b *Backend) ResetDraws() {
	b.draws = b.draws[:0]
}

// Ensure VertexArray implements backend.VertexArray.
var _ backend.VertexArray = (*VertexArray)(nil)

// colorRGBA converts a float color to 8-bit channels with clamping.
func colorRGBA(c gputypes.Color) [4]uint8 {
	conv := func(v float64) uint8 {
		switch {
		case v <= 0:
			return 0
		case v >= 1:
			return 255
		default:
			return uint8(v*255 + 0.5)
		}
	}
	return [4]uint8{conv(c.R), conv(c.G), conv(c.B), conv(c.A)}
}
