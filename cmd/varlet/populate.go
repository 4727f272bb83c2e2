package main

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/gogpu/varlet/asset"
	"github.com/gogpu/varlet/ecs"
	"github.com/gogpu/varlet/internal/injector"
	"github.com/gogpu/varlet/render"
	"github.com/gogpu/varlet/scene"
	"github.com/gogpu/varlet/shader"
)

const unlitVertex = `#version 410 core
layout(location = 0) in vec3 a_Position;
layout(location = 1) in vec3 a_Normal;
layout(location = 2) in vec2 a_UV;

uniform mat4 u_ViewProjection;
uniform mat4 u_Model;

out vec3 v_Normal;
out vec2 v_UV;

void main() {
	v_Normal = mat3(u_Model) * a_Normal;
	v_UV = a_UV;
	gl_Position = u_ViewProjection * u_Model * vec4(a_Position, 1.0);
}
`

const unlitFragment = `#version 410 core
in vec3 v_Normal;
in vec2 v_UV;
out vec4 o_Color;

uniform vec4 u_Color;
uniform vec3 u_LightDir;
uniform float u_Ambient;
uniform bool u_Textured;
uniform sampler2D u_Texture;

void main() {
	vec4 base = u_Color;
	if (u_Textured) {
		base *= texture(u_Texture, v_UV);
	}
	float diffuse = max(dot(normalize(v_Normal), -normalize(u_LightDir)), 0.0);
	o_Color = vec4(base.rgb * (u_Ambient + diffuse), base.a);
}
`

// populate adds the configured model entity to the scene. The returned
// func releases the mesh and textures it created.
func populate(ctx context.Context, eng *injector.Engine) (func(), error) {
	cfg := eng.Config

	sh, err := materialShader(ctx, eng)
	if err != nil {
		return nil, err
	}
	textures := render.NewTextureCache(eng.Renderer.Device(), 8)
	mat := shader.NewMaterial(sh)
	mat.Set("u_Color", mgl32.Vec4{0.8, 0.8, 0.8, 1})
	mat.Set("u_LightDir", mgl32.Vec3{-0.5, -1, -0.3})
	mat.Set("u_Ambient", float32(0.2))
	mat.Set("u_Textured", false)

	if cfg.Scene.Texture != "" {
		tex, err := textures.Load(cfg.Scene.Texture)
		if err != nil {
			return nil, err
		}
		tex.Bind(0)
		mat.Set("u_Texture", int32(0))
		mat.Set("u_Textured", true)
	}

	model := asset.Cube(1)
	name := "Cube"
	if cfg.Scene.Model != "" {
		if model, err = asset.Import(cfg.Scene.Model); err != nil {
			textures.Close()
			return nil, err
		}
		name = model.Root.Name
	}
	mesh, err := render.NewMeshFromModel(eng.Backend, model)
	if err != nil {
		textures.Close()
		return nil, err
	}
	release := func() {
		mesh.Destroy()
		textures.Close()
	}

	e := eng.Scene.CreateEntity(name)
	ecs.AddComponent[scene.Transform](e)
	mr := ecs.AddComponent[scene.MeshRenderer](e)
	mr.SetMesh(mesh)
	mr.SetMaterial(mat)

	if cfg.Scene.Script != "" {
		s := ecs.AddComponent[scene.Script](e)
		if err := s.LoadFile(cfg.Scene.Script); err != nil {
			release()
			return nil, err
		}
	}
	eng.Logger.Info("scene populated",
		zap.Stringer("entity", e),
		zap.Int("submeshes", len(mesh.SubMeshes())),
		zap.String("shader", sh.Label()))
	return release, nil
}

func materialShader(ctx context.Context, eng *injector.Engine) (*shader.Shader, error) {
	cfg := eng.Config.Shader
	if cfg.Vertex == "" {
		return eng.Shaders.Compile("unlit", shader.Sources{Vertex: unlitVertex, Fragment: unlitFragment}), nil
	}
	paths := shader.Paths{Vertex: cfg.Vertex, Fragment: cfg.Fragment, Geometry: cfg.Geometry}
	if err := eng.Shaders.Preload(ctx, map[string]shader.Paths{"material": paths}); err != nil {
		return nil, fmt.Errorf("load material shader: %w", err)
	}
	sh, _ := eng.Shaders.Get("material")
	return sh, nil
}
