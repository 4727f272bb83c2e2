// Package scene provides the concrete components a scene is built from.
//
//   - Transform: position, Euler rotation in degrees and scale
//   - Camera: a render.CameraHost; the renderer attaches its CameraCore
//   - MeshRenderer: a render.Drawable drawing a mesh with a material
//   - Script: Lua behavior run by gopher-lua
//
// Components are created through the entity:
//
//	e := s.CreateEntity("crate")
//	t := ecs.AddComponent[scene.Transform](e)
//	t.SetPosition(mgl32.Vec3{0, 0, -5})
//	mr := ecs.AddComponent[scene.MeshRenderer](e)
//	mr.SetMesh(mesh)
//	mr.SetMaterial(shader.NewMaterial(sh))
package scene
