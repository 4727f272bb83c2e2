package shader

import (
	"maps"
	"slices"
)

// TypeTag identifies the kind of a uniform.
type TypeTag uint8

// Uniform kinds.
const (
	TypeInvalid TypeTag = iota

	TypeBool
	TypeInt32
	TypeUInt32
	TypeFloat
	TypeDouble

	TypeBVec2
	TypeBVec3
	TypeBVec4
	TypeIVec2
	TypeIVec3
	TypeIVec4
	TypeUVec2
	TypeUVec3
	TypeUVec4
	TypeVector2
	TypeVector3
	TypeVector4
	TypeDVec2
	TypeDVec3
	TypeDVec4

	TypeMat2
	TypeMat3
	TypeMat4

	TypeSampler2D
	TypeSamplerCube
)

var typeNames = [...]string{
	TypeInvalid:     "Invalid",
	TypeBool:        "Bool",
	TypeInt32:       "Int32",
	TypeUInt32:      "UInt32",
	TypeFloat:       "Float",
	TypeDouble:      "Double",
	TypeBVec2:       "BoolVector2",
	TypeBVec3:       "BoolVector3",
	TypeBVec4:       "BoolVector4",
	TypeIVec2:       "Int32Vector2",
	TypeIVec3:       "Int32Vector3",
	TypeIVec4:       "Int32Vector4",
	TypeUVec2:       "UInt32Vector2",
	TypeUVec3:       "UInt32Vector3",
	TypeUVec4:       "UInt32Vector4",
	TypeVector2:     "Vector2",
	TypeVector3:     "Vector3",
	TypeVector4:     "Vector4",
	TypeDVec2:       "DoubleVector2",
	TypeDVec3:       "DoubleVector3",
	TypeDVec4:       "DoubleVector4",
	TypeMat2:        "Matrix2",
	TypeMat3:        "Matrix3",
	TypeMat4:        "Matrix4",
	TypeSampler2D:   "Sampler2D",
	TypeSamplerCube: "SamplerCube",
}

// String returns the tag name, e.g. "Vector3".
func (t TypeTag) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Invalid"
}

// Kind groups type tags into families.
type Kind uint8

// Type families.
const (
	KindInvalid Kind = iota
	KindScalar
	KindVector
	KindMatrix
	KindSampler
)

// Kind returns the family of t.
func (t TypeTag) Kind() Kind {
	switch {
	case t >= TypeBool && t <= TypeDouble:
		return KindScalar
	case t >= TypeBVec2 && t <= TypeDVec4:
		return KindVector
	case t >= TypeMat2 && t <= TypeMat4:
		return KindMatrix
	case t == TypeSampler2D || t == TypeSamplerCube:
		return KindSampler
	default:
		return KindInvalid
	}
}

// Components returns the number of scalar components for scalars and
// vectors, the order for matrices, and 1 for samplers.
func (t TypeTag) Components() int {
	switch t.Kind() {
	case KindVector:
		return int(t-TypeBVec2)%3 + 2
	case KindMatrix:
		return int(t-TypeMat2) + 2
	case KindScalar, KindSampler:
		return 1
	default:
		return 0
	}
}

// TypeTable maps shading-language type keywords to type tags. A table is
// immutable once built and safe to share between goroutines.
type TypeTable struct {
	types map[string]TypeTag
}

// NewTypeTable builds a table from keyword/tag pairs. The map is copied.
func NewTypeTable(types map[string]TypeTag) *TypeTable {
	return &TypeTable{types: maps.Clone(types)}
}

// Lookup returns the tag for a type keyword.
func (t *TypeTable) Lookup(keyword string) (TypeTag, bool) {
	tag, ok := t.types[keyword]
	return tag, ok
}

// Len returns the number of keywords.
func (t *TypeTable) Len() int { return len(t.types) }

// Keywords returns the sorted keywords.
func (t *TypeTable) Keywords() []string {
	return slices.Sorted(maps.Keys(t.types))
}

// DefaultTypes is the GLSL keyword table used when no table is supplied.
var DefaultTypes = NewTypeTable(map[string]TypeTag{
	"bool":        TypeBool,
	"int":         TypeInt32,
	"uint":        TypeUInt32,
	"float":       TypeFloat,
	"double":      TypeDouble,
	"bvec2":       TypeBVec2,
	"bvec3":       TypeBVec3,
	"bvec4":       TypeBVec4,
	"ivec2":       TypeIVec2,
	"ivec3":       TypeIVec3,
	"ivec4":       TypeIVec4,
	"uvec2":       TypeUVec2,
	"uvec3":       TypeUVec3,
	"uvec4":       TypeUVec4,
	"vec2":        TypeVector2,
	"vec3":        TypeVector3,
	"vec4":        TypeVector4,
	"dvec2":       TypeDVec2,
	"dvec3":       TypeDVec3,
	"dvec4":       TypeDVec4,
	"mat2":        TypeMat2,
	"mat3":        TypeMat3,
	"mat4":        TypeMat4,
	"sampler2D":   TypeSampler2D,
	"samplerCube": TypeSamplerCube,
})
