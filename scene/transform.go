package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/varlet/ecs"
)

// CapabilityTransform marks components that place an entity in the world.
var CapabilityTransform = ecs.RegisterCapability("transform")

var (
	worldForward = mgl32.Vec4{0, 0, -1, 0}
	worldRight   = mgl32.Vec4{1, 0, 0, 0}
	worldUp      = mgl32.Vec4{0, 1, 0, 0}
)

// Transform is an entity's position, rotation and scale.
//
// Rotation holds Euler angles in degrees: X is pitch, Y is yaw, Z is
// roll. They are applied yaw, then pitch, then roll, so a zero rotation
// looks down -Z with +Y up.
type Transform struct {
	ecs.Base

	position mgl32.Vec3
	rotation mgl32.Vec3
	scale    mgl32.Vec3
}

// Capabilities reports CapabilityTransform.
func (*Transform) Capabilities() ecs.CapabilitySet { return CapabilityTransform.Set() }

// OnConstructed sets unit scale.
func (t *Transform) OnConstructed() {
	t.scale = mgl32.Vec3{1, 1, 1}
}

// Position returns the world-space position.
func (t *Transform) Position() mgl32.Vec3 { return t.position }

// SetPosition moves the transform to p.
func (t *Transform) SetPosition(p mgl32.Vec3) { t.position = p }

// Translate moves the transform by d in world space.
func (t *Transform) Translate(d mgl32.Vec3) { t.position = t.position.Add(d) }

// Rotation returns pitch, yaw and roll in degrees.
func (t *Transform) Rotation() mgl32.Vec3 { return t.rotation }

// SetRotation sets pitch, yaw and roll in degrees.
func (t *Transform) SetRotation(r mgl32.Vec3) { t.rotation = r }

// Rotate adds d degrees to each Euler angle.
func (t *Transform) Rotate(d mgl32.Vec3) { t.rotation = t.rotation.Add(d) }

// Scale returns the per-axis scale.
func (t *Transform) Scale() mgl32.Vec3 { return t.scale }

// SetScale sets the per-axis scale.
func (t *Transform) SetScale(s mgl32.Vec3) { t.scale = s }

func (t *Transform) rotationMatrix() mgl32.Mat4 {
	yaw := mgl32.HomogRotate3DY(mgl32.DegToRad(t.rotation.Y()))
	pitch := mgl32.HomogRotate3DX(mgl32.DegToRad(t.rotation.X()))
	roll := mgl32.HomogRotate3DZ(mgl32.DegToRad(t.rotation.Z()))
	return yaw.Mul4(pitch).Mul4(roll)
}

// Matrix returns the model matrix: translation * rotation * scale.
func (t *Transform) Matrix() mgl32.Mat4 {
	tr := mgl32.Translate3D(t.position.X(), t.position.Y(), t.position.Z())
	sc := mgl32.Scale3D(t.scale.X(), t.scale.Y(), t.scale.Z())
	return tr.Mul4(t.rotationMatrix()).Mul4(sc)
}

// Forward returns the unit direction the transform faces.
func (t *Transform) Forward() mgl32.Vec3 {
	return t.rotationMatrix().Mul4x1(worldForward).Vec3().Normalize()
}

// Right returns the unit direction to the transform's right.
func (t *Transform) Right() mgl32.Vec3 {
	return t.rotationMatrix().Mul4x1(worldRight).Vec3().Normalize()
}

// Up returns the transform's unit up direction.
func (t *Transform) Up() mgl32.Vec3 {
	return t.rotationMatrix().Mul4x1(worldUp).Vec3().Normalize()
}

// ViewMatrix returns the view matrix of a camera placed at the transform.
// Scale is ignored.
func (t *Transform) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(t.position, t.position.Add(t.Forward()), t.Up())
}
