// Package injector wires the editor bootstrap: logger, backend, scene,
// renderer, viewport and shader library.
package injector

import (
	"fmt"

	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/gogpu/varlet"
	"github.com/gogpu/varlet/backend"
	"github.com/gogpu/varlet/config"
	"github.com/gogpu/varlet/ecs"
	"github.com/gogpu/varlet/editor"
	"github.com/gogpu/varlet/internal/logging"
	"github.com/gogpu/varlet/render"
	"github.com/gogpu/varlet/shader"
)

// Engine is the assembled editor runtime.
type Engine struct {
	Config   *config.Config
	Logger   *zap.Logger
	Backend  backend.Backend
	Scene    *ecs.Scene
	Renderer *render.Renderer
	Input    *editor.Snapshot
	Viewport *editor.Viewport
	Shaders  *shader.Library
}

// ProviderSet is the wire provider set for Engine.
var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideBackend,
	ProvideScene,
	ProvideRenderer,
	ProvideInput,
	wire.Bind(new(editor.Input), new(*editor.Snapshot)),
	ProvideViewport,
	ProvideLibrary,
	wire.Struct(new(Engine), "*"),
)

// ProvideLogger builds the logger and installs it as the package logger.
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	log, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	varlet.SetLogger(log)
	return log, nil
}

// ProvideBackend selects the configured backend. The logger parameter
// orders logger installation before backend selection.
func ProvideBackend(cfg *config.Config, log *zap.Logger) (backend.Backend, error) {
	b, err := backend.Select(cfg.Engine.Backend)
	if err != nil {
		return nil, err
	}
	log.Info("backend selected",
		zap.String("backend", b.Name()),
		zap.Strings("available", backend.Available()))
	return b, nil
}

// ProvideScene creates an empty scene.
func ProvideScene() *ecs.Scene {
	return ecs.NewScene()
}

// ProvideRenderer creates and initializes the renderer on s.
func ProvideRenderer(cfg *config.Config, b backend.Backend, s *ecs.Scene) (*render.Renderer, func(), error) {
	r := render.NewRenderer(b,
		render.WithSelection(cfg.Engine.Selection),
		render.WithClearColor(cfg.Camera.Color()),
		render.WithResolution(cfg.Camera.Width, cfg.Camera.Height))
	if err := r.Init(s); err != nil {
		r.Close()
		return nil, nil, err
	}
	return r, r.Close, nil
}

// ProvideInput creates an empty input snapshot.
func ProvideInput() *editor.Snapshot {
	return &editor.Snapshot{
		Held:     map[editor.Key]bool{},
		Pressed:  map[editor.MouseButton]bool{},
		Released: map[editor.MouseButton]bool{},
		Buttons:  map[editor.MouseButton]bool{},
	}
}

// ProvideViewport creates the editor viewport. The renderer parameter
// orders renderer initialization first so the editor camera gets a core.
func ProvideViewport(in editor.Input, s *ecs.Scene, _ *render.Renderer) (*editor.Viewport, error) {
	vp := editor.NewViewport(in)
	if err := vp.Init(s); err != nil {
		return nil, err
	}
	return vp, nil
}

// ProvideLibrary creates the shader cache on the renderer's backend.
func ProvideLibrary(cfg *config.Config, r *render.Renderer) (*shader.Library, func()) {
	lib := shader.NewLibrary(r.Device().Backend(), shader.WithReflection(cfg.Shader.Reflection))
	return lib, lib.Close
}
