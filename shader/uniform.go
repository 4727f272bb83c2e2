package shader

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Uniform describes a uniform found by reflection.
type Uniform struct {
	Name string
	Type TypeTag

	// Default is an advisory value of the Go type the typed setter for
	// Type accepts. It is not uploaded by the shader itself.
	Default any
}

// DefaultValue returns the advisory default for a type tag: zero or
// false for scalars, all ones for vectors, identity for matrices and
// texture unit 0 for samplers.
func DefaultValue(t TypeTag) any {
	switch t {
	case TypeBool:
		return false
	case TypeInt32:
		return int32(0)
	case TypeUInt32:
		return uint32(0)
	case TypeFloat:
		return float32(0)
	case TypeDouble:
		return float64(0)
	case TypeBVec2:
		return BVec2{true, true}
	case TypeBVec3:
		return BVec3{true, true, true}
	case TypeBVec4:
		return BVec4{true, true, true, true}
	case TypeIVec2:
		return IVec2{1, 1}
	case TypeIVec3:
		return IVec3{1, 1, 1}
	case TypeIVec4:
		return IVec4{1, 1, 1, 1}
	case TypeUVec2:
		return UVec2{1, 1}
	case TypeUVec3:
		return UVec3{1, 1, 1}
	case TypeUVec4:
		return UVec4{1, 1, 1, 1}
	case TypeVector2:
		return mgl32.Vec2{1, 1}
	case TypeVector3:
		return mgl32.Vec3{1, 1, 1}
	case TypeVector4:
		return mgl32.Vec4{1, 1, 1, 1}
	case TypeDVec2:
		return mgl64.Vec2{1, 1}
	case TypeDVec3:
		return mgl64.Vec3{1, 1, 1}
	case TypeDVec4:
		return mgl64.Vec4{1, 1, 1, 1}
	case TypeMat2:
		return mgl32.Ident2()
	case TypeMat3:
		return mgl32.Ident3()
	case TypeMat4:
		return mgl32.Ident4()
	case TypeSampler2D, TypeSamplerCube:
		return int32(0)
	default:
		return nil
	}
}
